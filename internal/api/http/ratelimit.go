package http

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/agentdesk/internal/config"
	apperrors "github.com/spec-kit/agentdesk/pkg/util/errorutil"
)

// fixedWindow increments the counter and starts its expiry on the first hit.
// Returns the count and the remaining window in milliseconds.
var fixedWindow = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {n, redis.call("PTTL", KEYS[1])}
`)

// RateLimiter limits requests per client IP. With a Redis client the window is
// shared across instances; without one an in-memory limiter is used. When
// Redis is unreachable requests pass if cfg.FailOpen, otherwise they get 503.
func RateLimiter(client *redis.Client, cfg config.RateLimitConfig, prefix string, logger *zap.Logger) fiber.Handler {
	if cfg.Requests <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	window := cfg.Window
	if window <= 0 {
		window = time.Minute
	}
	if client == nil {
		return limiter.New(limiter.Config{
			Max:        cfg.Requests,
			Expiration: window,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return tooManyRequests(window)
			},
		})
	}

	return func(c *fiber.Ctx) error {
		key := prefix + ":ratelimit:" + c.IP()
		count, ttl, err := hit(c.UserContext(), client, key, window)
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Bool("fail_open", cfg.FailOpen), zap.Error(err))
			if cfg.FailOpen {
				return c.Next()
			}
			return apperrors.NewUnavailable("rate limiter unavailable")
		}

		remaining := cfg.Requests - int(count)
		if remaining < 0 {
			remaining = 0
		}
		c.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Requests))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if count > int64(cfg.Requests) {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int((ttl+time.Second-1)/time.Second)))
			return tooManyRequests(ttl)
		}
		return c.Next()
	}
}

func hit(ctx context.Context, client *redis.Client, key string, window time.Duration) (int64, time.Duration, error) {
	res, err := fixedWindow.Run(ctx, client, []string{key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, 0, err
	}
	if len(res) != 2 {
		return 0, 0, redis.Nil
	}
	ttl := time.Duration(res[1]) * time.Millisecond
	if ttl < 0 {
		ttl = window
	}
	return res[0], ttl, nil
}

func tooManyRequests(retryAfter time.Duration) error {
	return apperrors.NewDomainError("RATE_LIMITED", "Too many requests, please try again later", fiber.StatusTooManyRequests,
		map[string]any{"retryAfterSeconds": int((retryAfter + time.Second - 1) / time.Second)})
}
