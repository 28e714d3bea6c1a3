package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"chroma/internal/shared/logger"
	"chroma/internal/shared/utils"
)

// RateLimiter is a Redis-backed fixed-window counter per client IP. It sits
// in front of the quota tracker: the tracker budgets identities, this guards
// the process against one address hammering the API. All instances share the
// same Redis, so the limit holds across replicas.
type RateLimiter struct {
	redisClient *redis.Client
	limit       int
	window      time.Duration
	logger      logger.Interface
}

func NewRateLimiter(redisClient *redis.Client, limit int, window time.Duration, logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		redisClient: redisClient,
		limit:       limit,
		window:      window,
		logger:      logger,
	}
}

// Limit returns a Gin middleware enforcing the per-IP limit. Redis trouble
// fails open: blocking all traffic is worse than briefly not rate limiting.
// Without a Redis client (rate limiting disabled) it is a pass-through.
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	if rl.redisClient == nil || rl.limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		windowBucket := time.Now().Unix() / int64(rl.window.Seconds())
		key := fmt.Sprintf("ratelimit:ip:%s:%d", clientIP, windowBucket)

		ctx := context.Background()

		count, err := rl.redisClient.Incr(ctx, key).Result()
		if err != nil {
			rl.logger.Debugw("rate limiter unavailable, allowing request", "error", err)
			c.Next()
			return
		}

		// First hit in this window owns setting the TTL.
		if count == 1 {
			rl.redisClient.Expire(ctx, key, rl.window+time.Second)
		}

		if count > int64(rl.limit) {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
