package bootstrap

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go-ems/internal/shared/config"

	"go.uber.org/zap"
)

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

func NewServerConfig(cfg *config.Config) ServerConfig {
	return ServerConfig{
		Port:            cfg.Port,
		ReadTimeout:     cfg.HTTPReadTimeout,
		WriteTimeout:    cfg.HTTPWriteTimeout,
		IdleTimeout:     cfg.HTTPIdleTimeout,
		ShutdownTimeout: cfg.HTTPShutdownTimeout,
	}
}

// RunHTTPServer serves handler until ctx is cancelled, then drains in-flight
// requests. A listener failure is audited and returned so the caller can
// release the pool before exiting.
func RunHTTPServer(ctx context.Context, handler http.Handler, cfg ServerConfig, auditLogger AuditLogger) error {
	log := zap.L().Named("bootstrap.server")

	ln, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		auditFailure(auditLogger, cfg.Port, err)
		return err
	}

	server := &http.Server{
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server running", zap.String("addr", ln.Addr().String()))
		serveErr <- server.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		auditFailure(auditLogger, cfg.Port, err)
		return err
	case <-ctx.Done():
	}

	log.Info("shutdown requested")

	// recorded before shutdown so the row lands while the pool is open
	auditLogger.Log(context.Background(), AuditLog{
		Action:  ActionServerShutdown,
		Message: "Server is shutting down",
		Meta:    map[string]any{"cause": context.Cause(ctx).Error()},
	})

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
		return err
	}
	log.Info("server exited gracefully")
	return nil
}

func auditFailure(auditLogger AuditLogger, port string, err error) {
	auditLogger.Log(context.Background(), AuditLog{
		Action:  ActionServerFailed,
		Message: "HTTP listener failed",
		Meta:    map[string]any{"port": port, "error": err.Error()},
	})
}
