package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"linguacademy/internal/platform/logger"
	"linguacademy/internal/transport/http/response"
)

// RateLimiter is a fixed-window counter in redis. A nil client disables it, and
// redis errors let the request through.
type RateLimiter struct {
	redisClient redis.Cmdable
	log         *logger.Logger
}

func NewRateLimiter(client redis.Cmdable, log *logger.Logger) *RateLimiter {
	if log == nil {
		log = logger.Nop()
	}
	return &RateLimiter{redisClient: client, log: log}
}

func (rl *RateLimiter) Limit(keySuffix string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil || rl.redisClient == nil || limit <= 0 {
			c.Next()
			return
		}

		who := c.GetString(UserIDKey)
		if who == "" {
			who = "ip:" + c.ClientIP()
		}
		key := fmt.Sprintf("rate_limit:%s:%s", keySuffix, who)

		count, err := rl.redisClient.Incr(c, key).Result()
		if err != nil {
			rl.log.Warn("rate limiter unavailable", "key", key, "error", err)
			c.Next()
			return
		}

		// first hit opens the window; a counter without a TTL would never reset
		if count == 1 {
			if err := rl.redisClient.Expire(c, key, window).Err(); err != nil {
				rl.log.Warn("rate limiter window not set, dropping counter", "key", key, "error", err)
				rl.redisClient.Del(c, key)
			}
		}

		if count > int64(limit) {
			ttl, _ := rl.redisClient.TTL(c, key).Result()
			if ttl > 0 {
				c.Header("Retry-After", fmt.Sprintf("%.0f", ttl.Seconds()))
			}
			response.AbortError(c, http.StatusTooManyRequests, response.CodeRateLimited,
				fmt.Errorf("too many requests, retry in %.0f seconds", ttl.Seconds()))
			return
		}
		c.Next()
	}
}
