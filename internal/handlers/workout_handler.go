package handlers

import (
	"context"
	"errors"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type workoutApplicationService interface {
	Create(ctx context.Context, input services.CreateWorkoutsInput) (*services.CreateWorkoutsResult, error)
	ListRecent(ctx context.Context, userID int64, limit int) ([]models.Workout, error)
}

type WorkoutHandler struct {
	service workoutApplicationService
}

func NewWorkoutHandler(service workoutApplicationService) *WorkoutHandler {
	return &WorkoutHandler{service: service}
}

type createWorkoutsRequest struct {
	UserID        flexID                `json:"userId"`
	Workouts      []workoutEntryRequest `json:"workouts"`
	Steps         int                   `json:"steps"`
	ActiveMinutes int                   `json:"activeMinutes"`
}

func (h *WorkoutHandler) CreateWorkouts(c *fiber.Ctx) error {
	var req createWorkoutsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.UserID <= 0 {
		return badRequest(c, "User ID is required")
	}
	if len(req.Workouts) == 0 {
		return badRequest(c, "At least one workout is required")
	}
	if ok, err := requireCaller(c, int64(req.UserID)); !ok {
		return err
	}

	entries := make([]services.WorkoutEntry, 0, len(req.Workouts))
	for _, w := range req.Workouts {
		if w.ExerciseID <= 0 {
			return badRequest(c, "Every workout needs an exercise_id")
		}
		date, err := parseDate(w.Date)
		if err != nil {
			return badRequest(c, "Workout date must be a date")
		}
		entries = append(entries, services.WorkoutEntry{
			ExerciseID: int64(w.ExerciseID),
			Duration:   w.Duration,
			Date:       date,
		})
	}

	result, err := h.service.Create(c.UserContext(), services.CreateWorkoutsInput{
		UserID:        int64(req.UserID),
		Workouts:      entries,
		Steps:         req.Steps,
		ActiveMinutes: req.ActiveMinutes,
	})
	if err != nil {
		return mapWorkoutError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Workout saved successfully",
		"workouts": result.Workouts,
		"activity": result.Activity,
	})
}

func (h *WorkoutHandler) ListWorkouts(c *fiber.Ctx) error {
	userID, present, err := queryID(c, "userId")
	if !present {
		return badRequest(c, "User ID is required")
	}
	if err != nil {
		return badRequest(c, "Invalid user id")
	}
	limit, err := parseOptionalInt(c.Query("limit"))
	if err != nil || limit < 0 {
		return badRequest(c, "limit must be a positive number")
	}
	if ok, err := requireCaller(c, userID); !ok {
		return err
	}

	workouts, err := h.service.ListRecent(c.UserContext(), userID, limit)
	if err != nil {
		return mapWorkoutError(c, err)
	}
	return c.JSON(workouts)
}

func mapWorkoutError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return badRequest(c, "Invalid request")
	case errors.Is(err, services.ErrProfileNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	case errors.Is(err, services.ErrExerciseNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exercise not found"})
	default:
		return serverError(c, "Failed to save workout", err)
	}
}
