package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/recipebox/backend/internal/logging"
	"github.com/pageza/recipebox/backend/internal/metrics"
)

type RateLimitConfig struct {
	Window time.Duration
	// Limit is the number of requests one account may make per Window.
	Limit     int
	KeyPrefix string
}

// Quota is what is left of an account's allowance after a counted request.
type Quota struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// RateLimiter counts requests per account in fixed Redis windows.
type RateLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
	now    func() time.Time
}

func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig) *RateLimiter {
	return &RateLimiter{redis: redisClient, config: config, now: time.Now}
}

// NewAIGenerationRateLimiter allows limit recipe generations per account per
// hour.
func NewAIGenerationRateLimiter(redisClient *redis.Client, limit int) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    time.Hour,
		Limit:     limit,
		KeyPrefix: "rate_limit:ai_generation",
	})
}

// RateLimitMiddleware must run after the access gate. When Redis cannot be
// reached the request is let through.
func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: "Not authorized, token missing"})
			return
		}

		quota, err := rl.Take(c.Request.Context(), userID.String())
		if err != nil {
			logging.Ctx(c.Request.Context()).Warn().Err(err).Str("limiter", rl.config.KeyPrefix).Msg("rate limit check failed")
			c.Next()
			return
		}

		h := c.Writer.Header()
		h.Set("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(quota.Remaining))
		h.Set("X-RateLimit-Reset", strconv.FormatInt(quota.ResetAt.Unix(), 10))

		if !quota.Allowed {
			metrics.RateLimited.WithLabelValues(rl.config.KeyPrefix).Inc()
			retryAfter := int(quota.ResetAt.Sub(rl.now()).Seconds()) + 1
			h.Set("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
				Message: fmt.Sprintf("Rate limit of %d requests per %v exceeded, try again in %ds", rl.config.Limit, rl.config.Window, retryAfter),
			})
			return
		}
		c.Next()
	}
}

// Take counts one request for key in the current window.
func (rl *RateLimiter) Take(ctx context.Context, key string) (Quota, error) {
	start := rl.now().Truncate(rl.config.Window)
	redisKey := rl.windowKey(key, start)

	var used *redis.IntCmd
	_, err := rl.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		used = pipe.Incr(ctx, redisKey)
		pipe.ExpireNX(ctx, redisKey, rl.config.Window)
		return nil
	})
	if err != nil {
		return Quota{}, err
	}

	count := int(used.Val())
	return Quota{
		Allowed:   count <= rl.config.Limit,
		Remaining: max(rl.config.Limit-count, 0),
		ResetAt:   start.Add(rl.config.Window),
	}, nil
}

func (rl *RateLimiter) windowKey(key string, start time.Time) string {
	return rl.config.KeyPrefix + ":" + key + ":" + strconv.FormatInt(start.Unix(), 10)
}
