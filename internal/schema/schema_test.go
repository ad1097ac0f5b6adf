package schema_test

import (
	"context"
	"io/fs"
	"regexp"
	"strings"
	"testing"

	"go-ems/internal/schema"
	"go-ems/internal/shared/dbtest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readMigration(t *testing.T, name string) string {
	t.Helper()
	raw, err := fs.ReadFile(schema.Files(), name)
	require.NoError(t, err)
	return string(raw)
}

func TestMigrations_Collected(t *testing.T) {
	goose.SetBaseFS(schema.Files())
	t.Cleanup(func() { goose.SetBaseFS(nil) })

	for _, dir := range []string{schema.MigrationsDir, schema.SeedDir} {
		migrations, err := goose.CollectMigrations(dir, 0, goose.MaxVersion)
		require.NoError(t, err, dir)
		require.Len(t, migrations, 1, dir)
		assert.Equal(t, int64(1), migrations[0].Version, dir)
	}
}

func TestMigrations_CreateTables(t *testing.T) {
	sql := readMigration(t, "migrations/00001_create_tables.sql")

	up, down, found := strings.Cut(sql, "-- +goose Down")
	require.True(t, found)
	assert.Contains(t, up, "-- +goose Up")

	tables := []string{
		"state", "city", "division", "job_titles", "employees", "address",
		"employee_division", "employee_job_titles", "payroll", "users",
		"audit_log", "outbox_events",
	}
	for _, table := range tables {
		assert.Contains(t, up, "CREATE TABLE IF NOT EXISTS "+table+" (")
		assert.Contains(t, down, "DROP TABLE IF EXISTS "+table+";")
	}
	assert.Less(t, strings.Index(down, "outbox_events"), strings.Index(down, "DROP TABLE IF EXISTS state;"))
}

func TestMigrations_SeedHasReferenceScenario(t *testing.T) {
	sql := readMigration(t, "seed/00001_demo_workforce.sql")

	assert.Contains(t, sql, "-- +goose Up")
	assert.Contains(t, sql, "'E1001'")
	assert.Contains(t, sql, "85000.00")
	assert.Contains(t, sql, "'E1003'")
	assert.Contains(t, sql, "78000.00")
	assert.Contains(t, sql, "'2024-02-29'")
}

func TestApply_UnsupportedDialect(t *testing.T) {
	db, _ := dbtest.New(t)

	err := schema.Apply(context.Background(), db, "oracle", true)
	assert.Error(t, err)
}

func TestEnsureAdmin(t *testing.T) {
	countSQL := regexp.QuoteMeta("SELECT count(*) FROM `users` WHERE username = ?")

	t.Run("inserts when missing", func(t *testing.T) {
		db, mock := dbtest.New(t)
		mock.ExpectQuery(countSQL).WithArgs("admin").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectExec("INSERT INTO users").
			WithArgs("admin", "hash", "HR_ADMIN", true).
			WillReturnResult(sqlmock.NewResult(1, 1))

		created, err := schema.EnsureAdmin(context.Background(), db, "admin", "hash")
		require.NoError(t, err)
		assert.True(t, created)
	})

	t.Run("keeps existing account", func(t *testing.T) {
		db, mock := dbtest.New(t)
		mock.ExpectQuery(countSQL).WithArgs("admin").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		created, err := schema.EnsureAdmin(context.Background(), db, "admin", "hash")
		require.NoError(t, err)
		assert.False(t, created)
	})
}
