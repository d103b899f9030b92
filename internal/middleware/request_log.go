package middleware

import (
	"strconv"
	"time"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	log "github.com/sirupsen/logrus"
)

// RequestLog writes one entry per request and records the request metrics. It
// must run after the requestid middleware and before the error handler has
// rendered, so it reads the final status from the response.
func RequestLog(metricsManager *metrics.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		begin := time.Now()
		if metricsManager != nil {
			metricsManager.GaugeRequests.Inc()
			defer metricsManager.GaugeRequests.Dec()
		}

		chainErr := c.Next()
		if chainErr != nil {
			// let the app error handler render now so the logged status is the real one
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		route := c.Route().Path
		elapsed := time.Since(begin)

		entry := log.WithFields(log.Fields{
			"request_id": c.Locals(requestid.ConfigDefault.ContextKey),
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"duration":   elapsed.String(),
			"ip":         c.IP(),
		})
		switch {
		case status >= fiber.StatusInternalServerError:
			entry.Error("request failed")
		case status >= fiber.StatusBadRequest:
			entry.Info("request rejected")
		default:
			entry.Debug("request served")
		}

		if metricsManager != nil {
			metricsManager.CounterRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
			metricsManager.HistRequestDuration.WithLabelValues(c.Method(), route).Observe(elapsed.Seconds())
		}
		return nil
	}
}
