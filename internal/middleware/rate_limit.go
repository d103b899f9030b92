package middleware

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/metrics"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type RequestRateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// RateLimit allows allowedPerMin requests per client IP for the named route group.
// A nil limiter disables limiting. When the limiter backend fails the request is
// let through.
func RateLimit(rateLimiter RequestRateLimiter, routeName string, allowedPerMin int, metricsManager *metrics.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rateLimiter == nil || allowedPerMin <= 0 {
			return c.Next()
		}

		key := fmt.Sprintf("rate::%s::%s", routeName, c.IP())
		res, err := rateLimiter.Allow(c.UserContext(), key, redis_rate.PerMinute(allowedPerMin))
		if err != nil {
			log.Errorf("rate limiter [%s]: %s", routeName, err)
			return c.Next()
		}
		if res.Allowed > 0 {
			return c.Next()
		}

		if metricsManager != nil {
			metricsManager.CounterRateLimited.Inc()
		}
		retryAfter := int(math.Ceil(res.RetryAfter.Seconds()))
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error":      "Too many requests",
			"retryAfter": retryAfter,
		})
	}
}
