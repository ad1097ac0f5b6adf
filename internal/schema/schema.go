// Package schema owns the durable table layout and the demo seed data.
package schema

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql seed/*.sql
var files embed.FS

// Each set keeps its own version table so seeding stays optional and is
// recorded separately from the table layout.
const (
	MigrationsDir = "migrations"
	SeedDir       = "seed"

	migrationsTable = "goose_db_version"
	seedTable       = "goose_seed_version"
)

// goose keeps its settings in package globals.
var gooseMu sync.Mutex

// Files exposes the embedded migration sets.
func Files() fs.FS {
	return files
}

// Apply runs every pending table migration and, when seed is set, every
// pending seed migration. Applied versions are recorded, so reruns are no-ops.
func Apply(ctx context.Context, db *gorm.DB, dialect string, seed bool) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	sets := []struct{ dir, table string }{{MigrationsDir, migrationsTable}}
	if seed {
		sets = append(sets, struct{ dir, table string }{SeedDir, seedTable})
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	log := zap.L().Named("schema")
	goose.SetBaseFS(files)
	goose.SetLogger(gooseLogger{log.Sugar()})
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}

	for _, set := range sets {
		goose.SetTableName(set.table)
		if err := goose.UpContext(ctx, sqlDB, set.dir); err != nil {
			return fmt.Errorf("migrate %s: %w", set.dir, err)
		}
		version, err := goose.GetDBVersionContext(ctx, sqlDB)
		if err != nil {
			return fmt.Errorf("read %s version: %w", set.dir, err)
		}
		log.Info("applied", zap.String("set", set.dir), zap.Int64("version", version))
	}
	return nil
}

// gooseLogger routes goose output through zap.
type gooseLogger struct {
	s *zap.SugaredLogger
}

func (l gooseLogger) Printf(format string, v ...any) { l.s.Infof(format, v...) }
func (l gooseLogger) Fatalf(format string, v ...any) { l.s.Fatalf(format, v...) }

// EnsureAdmin inserts an HR_ADMIN login unless the username already exists.
// passwordHash must already be a bcrypt hash.
func EnsureAdmin(ctx context.Context, db *gorm.DB, username, passwordHash string) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).
		Table("users").
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	err := db.WithContext(ctx).Exec(
		"INSERT INTO users (username, password_hash, role, is_active) VALUES (?, ?, ?, ?)",
		username, passwordHash, "HR_ADMIN", true,
	).Error
	return err == nil, err
}
