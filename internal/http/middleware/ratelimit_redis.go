package middleware

import (
	"net/http"
	"strconv"
	"time"

	"taskboard/internal/logger"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// InitRedisRateLimiter shares client with the rate limiting middleware. A
// nil client makes RedisRateLimit use the in-memory window.
func InitRedisRateLimiter(client *redis.Client) {
	redisClient = client
}

// RedisRateLimit is a fixed-window limiter using INCR/EXPIRE on
// rl:<prefix>:<window_seconds>:<ip>. Without Redis it falls back to an
// in-memory window; on a Redis error the request is allowed.
func RedisRateLimit(prefix string, maxRequests int, window time.Duration) gin.HandlerFunc {
	fallback := newMemoryWindow(maxRequests, window)

	return func(c *gin.Context) {
		if redisClient == nil {
			fallback.handle(c)
			return
		}

		key := "rl:" + prefix + ":" + strconv.FormatInt(int64(window.Seconds()), 10) + ":" + c.ClientIP()
		ctx := c.Request.Context()

		val, err := redisClient.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn("rate limiter redis error", "error", err)
			c.Header("X-RateLimit-Error", "redis-error")
			c.Next()
			return
		}
		if val == 1 {
			redisClient.Expire(ctx, key, window)
		}

		setLimitHeaders(c, maxRequests, int(val))
		if val > int64(maxRequests) {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}
