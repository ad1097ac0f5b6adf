package app

import (
	"context"
	"net/http"
	"time"

	"go-ems/internal/audit"
	"go-ems/internal/middleware"
	"go-ems/internal/shared/config"
	"go-ems/internal/shared/connection"
	"go-ems/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App owns the long-lived handles of the API process. The database pool is
// opened once here and closed by Close.
type App struct {
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
	Audit  audit.Service
}

func BuildApp(cfg *config.Config) (*App, error) {
	log := zap.L().Named("app")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := connection.ConnectGORMWithRetry(cfg.DB)
	if err != nil {
		return nil, err
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
		if err != nil {
			closeDB(db)
			return nil, err
		}
	} else {
		log.Warn("REDIS_ADDR not set; lookup cache and idempotency disabled")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID())

	modules, err := registerModules(router, cfg, db, rdb)
	if err != nil {
		closeDB(db)
		if rdb != nil {
			_ = rdb.Close()
		}
		return nil, err
	}

	router.GET("/healthz", healthHandler(db))

	return &App{Router: router, DB: db, Redis: rdb, Audit: modules.audit}, nil
}

func (a *App) Close() {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	closeDB(a.DB)
}

func closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		zap.L().Named("app").Warn("close database failed", zap.Error(err))
	}
}

func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"}, nil)
	}
}
