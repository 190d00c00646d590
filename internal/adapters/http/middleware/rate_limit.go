package middleware

import (
	"fmt"
	"time"

	"github.com/Manaregr8/affiliate-platform/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimitRule describes one fixed-window limit
type RateLimitRule struct {
	Name   string
	Max    int64
	Window time.Duration
}

// Preset rules
var (
	// GeneralLimit applies to the whole API surface
	GeneralLimit = RateLimitRule{Name: "general", Max: 100, Window: time.Minute}

	// AuthLimit applies to login and registration
	AuthLimit = RateLimitRule{Name: "auth", Max: 5, Window: time.Minute}

	// SubmitLimit applies to public lead submission
	SubmitLimit = RateLimitRule{Name: "submit", Max: 10, Window: time.Minute}
)

// RateLimiter returns a fixed-window limiter backed by Redis so limits
// hold across instances. When no Redis client is configured, or Redis is
// unreachable, requests pass through rather than failing closed.
func RateLimiter(rdb *redis.Client, rule RateLimitRule) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rdb == nil {
			return c.Next()
		}

		key := fmt.Sprintf("ratelimit:%s:%s", rule.Name, c.IP())
		ctx := c.Context()

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			zap.L().Warn("rate limiter unavailable", zap.Error(err))
			return c.Next()
		}
		if count == 1 {
			rdb.Expire(ctx, key, rule.Window)
		}

		if count > rule.Max {
			return response.TooManyRequests(c, "Too many requests, please slow down")
		}

		return c.Next()
	}
}
