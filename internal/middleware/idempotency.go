package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-ems/internal/shared/contextutil"
	"go-ems/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	HeaderIdempotencyKey   = "Idempotency-Key"
	ContextIdempotencyKey  = "idempotency_cache_key"
	ContextIdempotencyLock = "idempotency_lock_key"

	idempotencyLockTTL   = 30 * time.Second
	idempotencyResultTTL = 24 * time.Hour
)

// Idempotency replays the stored result of a POST carrying an
// Idempotency-Key, and rejects a duplicate that arrives while the first is
// still running. Handlers call StoreIdempotentResult on success.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader(HeaderIdempotencyKey)
		if idempKey == "" || c.Request.Method != http.MethodPost || rdb == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		userID := contextutil.GetUserID(ctx)
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"

		if val, err := rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cached any
			if json.Unmarshal([]byte(val), &cached) == nil {
				c.Header("Idempotent-Replayed", "true")
				response.Success(c, http.StatusOK, cached, nil)
				c.Abort()
				return
			}
		}

		isNew, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			contextutil.GetLogger(ctx, zap.L()).Warn("idempotency lock unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !isNew {
			response.Error(c, http.StatusConflict, "PROCESSING",
				"A request with this idempotency key is still being processed", nil)
			c.Abort()
			return
		}

		c.Set(ContextIdempotencyKey, cacheKey)
		c.Set(ContextIdempotencyLock, lockKey)

		c.Next()

		_ = rdb.Del(ctx, lockKey).Err()
	}
}

// StoreIdempotentResult caches a successful result for replay.
func StoreIdempotentResult(c *gin.Context, rdb *redis.Client, result any) {
	if rdb == nil {
		return
	}
	cacheKey := c.GetString(ContextIdempotencyKey)
	if cacheKey == "" {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return
	}
	_ = rdb.Set(c.Request.Context(), cacheKey, payload, idempotencyResultTTL).Err()
}
