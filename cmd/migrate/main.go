package main

import (
	"context"
	"flag"
	"os"
	"time"

	"go-ems/internal/schema"
	"go-ems/internal/shared/config"
	"go-ems/internal/shared/connection"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	seed := flag.Bool("seed", false, "load demo lookup and employee data")
	adminUser := flag.String("admin-user", os.Getenv("ADMIN_USERNAME"), "create an HR_ADMIN login with this username")
	adminPassword := flag.String("admin-password", os.Getenv("ADMIN_PASSWORD"), "password for -admin-user")
	flag.Parse()

	cfg := config.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	db, err := connection.ConnectGORMWithRetry(cfg.DB)
	if err != nil {
		logger.Fatal("connect database failed", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := schema.Apply(ctx, db, cfg.DB.Driver, *seed); err != nil {
		logger.Fatal("apply schema failed", zap.Error(err))
	}

	if *adminUser == "" {
		return
	}
	if len(*adminPassword) < 8 {
		logger.Fatal("admin password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(*adminPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatal("hash admin password failed", zap.Error(err))
	}
	created, err := schema.EnsureAdmin(ctx, db, *adminUser, string(hash))
	if err != nil {
		logger.Fatal("create admin failed", zap.Error(err))
	}
	logger.Info("admin login", zap.String("username", *adminUser), zap.Bool("created", created))
}
