package middleware

import (
	"errors"
	"runtime/debug"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"
)

// ErrorHandler renders errors that escape the handlers (unknown routes, wrong
// methods, body limits, recovered panics) in the same {"error": ...} shape the
// handlers use.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	body := fiber.Map{"error": message}
	if code >= fiber.StatusInternalServerError && fiberErr == nil {
		body["details"] = err.Error()
		log.Errorf("unhandled error on %s %s: %s", c.Method(), c.Path(), err)
	}
	return c.Status(code).JSON(body)
}

// Recover turns a panic into a 500 and counts it.
func Recover(metricsManager *metrics.Manager) fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			log.Errorf("http: panic serving %s: %v\n%s", c.Path(), e, debug.Stack())
			if metricsManager != nil {
				metricsManager.CounterHandleRequestPanic.Inc()
			}
		},
	})
}
