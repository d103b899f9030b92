package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type exerciseApplicationService interface {
	List(ctx context.Context, input services.ListExercisesInput) ([]models.Exercise, models.CatalogPagination, error)
	Get(ctx context.Context, id int64) (*models.Exercise, error)
}

type ExerciseHandler struct {
	service exerciseApplicationService
}

func NewExerciseHandler(service exerciseApplicationService) *ExerciseHandler {
	return &ExerciseHandler{service: service}
}

func (h *ExerciseHandler) ListExercises(c *fiber.Ctx) error {
	page, err := parsePageParam(c.Query("page"))
	if err != nil {
		return badRequest(c, "page must be a positive number")
	}
	limit, err := parsePageParam(c.Query("limit"))
	if err != nil {
		return badRequest(c, "limit must be a positive number")
	}

	exercises, pagination, err := h.service.List(c.UserContext(), services.ListExercisesInput{
		Page:     page,
		Limit:    limit,
		BodyPart: c.Query("bodyPart"),
		Search:   c.Query("search"),
	})
	if err != nil {
		return mapExerciseError(c, err)
	}

	return c.JSON(fiber.Map{
		"exercises":  exercises,
		"pagination": pagination,
	})
}

func (h *ExerciseHandler) GetExercise(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid exercise id")
	}

	exercise, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return mapExerciseError(c, err)
	}
	return c.JSON(exercise)
}

// parsePageParam leaves an absent value at 0 for the service default but rejects
// an explicit zero or negative value.
func parsePageParam(raw string) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	n, err := parseOptionalInt(raw)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, services.ErrInvalidInput
	}
	return n, nil
}

func mapExerciseError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return badRequest(c, "Invalid request")
	case errors.Is(err, services.ErrExerciseNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exercise not found"})
	default:
		return serverError(c, "Failed to fetch exercises", err)
	}
}
