package handlers

import (
	"context"
	"errors"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type analyticsApplicationService interface {
	Report(ctx context.Context, userID int64, timeFrame string) (*models.AnalyticsReport, error)
}

type AnalyticsHandler struct {
	service analyticsApplicationService
}

func NewAnalyticsHandler(service analyticsApplicationService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

func (h *AnalyticsHandler) GetReport(c *fiber.Ctx) error {
	userID, present, err := queryID(c, "userId")
	if !present {
		return badRequest(c, "User ID is required")
	}
	if err != nil {
		return badRequest(c, "Invalid user id")
	}
	if ok, err := requireCaller(c, userID); !ok {
		return err
	}

	report, err := h.service.Report(c.UserContext(), userID, c.Query("timeFrame", "weekly"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			return badRequest(c, "Invalid request")
		case errors.Is(err, services.ErrProfileNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		default:
			return serverError(c, "Error fetching analytics data", err)
		}
	}
	return c.JSON(report)
}
