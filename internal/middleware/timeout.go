package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Timeout puts a deadline on the request's user context. Handlers pass
// c.UserContext() down to the services, so a request that runs past the deadline
// has its queries cancelled and any open transaction rolled back.
func Timeout(d time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if d <= 0 {
			return c.Next()
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), d)
		defer cancel()
		c.SetUserContext(ctx)

		err := c.Next()
		if err == nil && ctx.Err() == context.DeadlineExceeded && c.Response().StatusCode() >= fiber.StatusInternalServerError {
			return fiber.NewError(fiber.StatusServiceUnavailable, "Request timed out")
		}
		return err
	}
}
