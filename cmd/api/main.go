package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go-ems/internal/app"
	"go-ems/internal/bootstrap"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/config"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if err := run(cfg); err != nil {
		logger.Error("api stopped", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	apperror.Init()

	// build dependency + routes
	application, err := app.BuildApp(cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	auditLogger := bootstrap.NewRecordingAuditLogger(application.Audit)
	auditLogger.Log(context.Background(), bootstrap.AuditLog{
		Action:  bootstrap.ActionServerStarted,
		Message: "Server is starting",
		Meta:    map[string]any{"port": cfg.Port, "env": cfg.AppEnv},
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return bootstrap.RunHTTPServer(ctx, application.Router, bootstrap.NewServerConfig(cfg), auditLogger)
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
