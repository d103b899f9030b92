package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type intakeApplicationService interface {
	List(ctx context.Context, userID int64) ([]models.Intake, error)
	Create(ctx context.Context, userID int64, typeMeal string, items []services.IntakeItem) ([]models.Intake, error)
	Get(ctx context.Context, actorID, id int64) (*models.Intake, error)
	Delete(ctx context.Context, actorID, id int64) error
}

type IntakeHandler struct {
	service intakeApplicationService
}

func NewIntakeHandler(service intakeApplicationService) *IntakeHandler {
	return &IntakeHandler{service: service}
}

type createIntakeRequest struct {
	UserID   flexID `json:"userId"`
	TypeMeal string `json:"type_meal"`
	Items    []struct {
		NutritionID flexID  `json:"nutrition_id"`
		Quantity    float64 `json:"quantity"`
	} `json:"items"`
}

func (h *IntakeHandler) ListIntakes(c *fiber.Ctx) error {
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

	intakes, err := h.service.List(c.UserContext(), userID)
	if err != nil {
		return mapIntakeError(c, err)
	}
	return c.JSON(intakes)
}

func (h *IntakeHandler) CreateIntake(c *fiber.Ctx) error {
	var req createIntakeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.UserID <= 0 {
		return badRequest(c, "User ID is required")
	}
	if strings.TrimSpace(req.TypeMeal) == "" || len(req.Items) == 0 {
		return badRequest(c, "Invalid request data")
	}
	if ok, err := requireCaller(c, int64(req.UserID)); !ok {
		return err
	}

	items := make([]services.IntakeItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, services.IntakeItem{NutritionID: int64(it.NutritionID), Quantity: it.Quantity})
	}

	created, err := h.service.Create(c.UserContext(), int64(req.UserID), req.TypeMeal, items)
	if err != nil {
		return mapIntakeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *IntakeHandler) GetIntake(c *fiber.Ctx) error {
	actorID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid intake id")
	}

	intake, err := h.service.Get(c.UserContext(), actorID, id)
	if err != nil {
		return mapIntakeError(c, err)
	}
	return c.JSON(intake)
}

func (h *IntakeHandler) DeleteIntake(c *fiber.Ctx) error {
	actorID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid intake id")
	}

	if err := h.service.Delete(c.UserContext(), actorID, id); err != nil {
		return mapIntakeError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Intake deleted"})
}

func mapIntakeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return badRequest(c, "Invalid request data")
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Intake not found"})
	case errors.Is(err, services.ErrProfileNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	case errors.Is(err, services.ErrNutritionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Nutrition item not found"})
	default:
		return serverError(c, "Internal server error", err)
	}
}
