package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type nutritionApplicationService interface {
	Search(ctx context.Context, term string) ([]models.Nutrition, error)
	Get(ctx context.Context, id int64) (*models.Nutrition, error)
}

type NutritionHandler struct {
	service nutritionApplicationService
}

func NewNutritionHandler(service nutritionApplicationService) *NutritionHandler {
	return &NutritionHandler{service: service}
}

func (h *NutritionHandler) Search(c *fiber.Ctx) error {
	term := strings.TrimSpace(c.Query("term"))
	if term == "" {
		return badRequest(c, "Search term is required")
	}

	items, err := h.service.Search(c.UserContext(), term)
	if err != nil {
		return mapNutritionError(c, err)
	}
	return c.JSON(items)
}

func (h *NutritionHandler) GetItem(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid nutrition id")
	}

	item, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return mapNutritionError(c, err)
	}
	return c.JSON(item)
}

func mapNutritionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return badRequest(c, "Invalid request")
	case errors.Is(err, services.ErrNutritionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Nutrition item not found"})
	default:
		return serverError(c, "Failed to fetch nutrition data", err)
	}
}
