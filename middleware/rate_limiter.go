package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/config"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/models"
)

// RateLimiter throttles an endpoint per IP using redis INCR with a rolling
// window. It shields the outbound Nova Poshta quota (the autocomplete
// endpoints) and the auth endpoints. Without redis it is a no-op.
func RateLimiter(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if config.RedisClient == nil {
			c.Next()
			return
		}

		key := "rl:" + c.ClientIP() + ":" + c.Request.Method + ":" + c.FullPath()
		resetKey := key + ":resetAt"

		count, err := config.RedisClient.Incr(config.Ctx, key).Result()
		if err != nil {
			// Redis trouble should not take the storefront down
			c.Next()
			return
		}

		if count == 1 {
			config.RedisClient.Expire(config.Ctx, key, window)
			resetAt := time.Now().Add(window)
			config.RedisClient.Set(config.Ctx, resetKey, resetAt.Unix(), window)
		}

		resetAtUnix, _ := config.RedisClient.Get(config.Ctx, resetKey).Int64()
		resetAt := time.Unix(resetAtUnix, 0)

		remaining := maxRequests - int(count)
		if remaining < 0 {
			remaining = 0
		}
		resetInSeconds := int(time.Until(resetAt).Seconds())
		if resetInSeconds < 0 {
			resetInSeconds = 0
		}

		rate := &models.RateLimiter{
			Limit:          maxRequests,
			Remaining:      remaining,
			ResetAt:        resetAt,
			ResetInSeconds: resetInSeconds,
		}
		c.Set("rateLimiter", rate)

		if int(count) > maxRequests {
			c.JSON(http.StatusTooManyRequests, models.ApiResponse{
				Message: "Too many requests",
				Error:   true,
				Rate:    rate,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
