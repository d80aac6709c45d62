package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/romacabello/salon-scheduler/internal/httperr"
)

// RateLimit enforces a fixed-window per-IP limit on a route using Redis
// counters. Without a Redis client it is a no-op, and on Redis errors it
// fails open: losing rate limiting is better than losing bookings.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, log *zap.Logger) gin.HandlerFunc {
	if rdb == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		key := fmt.Sprintf("rl:%s:%s", c.FullPath(), c.ClientIP())

		count, err := rdb.Incr(c.Request.Context(), key).Result()
		if err != nil {
			log.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(c.Request.Context(), key, window)
		}

		if count > int64(limit) {
			httperr.TooManyRequests(c, "rate_limited", "Demasiadas solicitudes. Intentá de nuevo en un minuto.")
			c.Abort()
			return
		}

		c.Next()
	}
}
