package handlers

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

const healthCheckTimeout = 2 * time.Second

type databasePinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    databasePinger
	redis redis.Cmdable
}

// NewHealthHandler accepts a nil redis client when rate limiting runs without Redis.
func NewHealthHandler(db databasePinger, redisClient redis.Cmdable) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		log.Errorf("health check: postgres: %s", err)
		return unhealthy(c, "postgres", err)
	}
	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			log.Errorf("health check: redis: %s", err)
			return unhealthy(c, "redis", err)
		}
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func unhealthy(c *fiber.Ctx, dependency string, err error) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"status":     "unavailable",
		"dependency": dependency,
		"error":      err.Error(),
	})
}
