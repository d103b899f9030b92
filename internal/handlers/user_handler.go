package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/repository"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type userApplicationService interface {
	List(ctx context.Context) ([]models.UserWithProfile, error)
	Get(ctx context.Context, id int64) (*models.UserWithProfile, error)
	Update(ctx context.Context, input services.UpdateUserInput) (*models.UserWithProfile, error)
}

type UserHandler struct {
	service userApplicationService
}

func NewUserHandler(service userApplicationService) *UserHandler {
	return &UserHandler{service: service}
}

type progressRecordRequest struct {
	RecordDate    *string  `json:"record_date"`
	Weight        *float64 `json:"weight"`
	Height        *float64 `json:"height"`
	CaloriesBurnt float64  `json:"calories_burnt"`
	FatPercentage *float64 `json:"fat_percentage"`
}

type workoutEntryRequest struct {
	ExerciseID flexID  `json:"exercise_id"`
	Duration   int     `json:"duration"`
	Date       *string `json:"date"`
}

type intakeEntryRequest struct {
	NutritionID flexID  `json:"nutrition_id"`
	Quantity    float64 `json:"quantity"`
	TypeMeal    string  `json:"type_meal"`
}

type updateUserRequest struct {
	Email              string                 `json:"email"`
	Name               *string                `json:"name"`
	Phone              *string                `json:"phone"`
	EmailNotifications *bool                  `json:"email_notifications"`
	PushNotifications  *bool                  `json:"push_notifications"`
	SMSNotifications   *bool                  `json:"sms_notifications"`
	ResearchConsent    *bool                  `json:"research_consent"`
	ThirdPartySharing  *bool                  `json:"third_party_sharing"`
	Profile            *profileFields         `json:"profile"`
	ProgressRecord     *progressRecordRequest `json:"progressRecord"`
	Workout            *workoutEntryRequest   `json:"workout"`
	Intake             *intakeEntryRequest    `json:"intake"`
}

func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.service.List(c.UserContext())
	if err != nil {
		return mapUserError(c, err)
	}
	return c.JSON(users)
}

func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid user id")
	}

	user, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return mapUserError(c, err)
	}
	return c.JSON(user)
}

func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	actorID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Email) == "" {
		return badRequest(c, "Email is required for updating user")
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return badRequest(c, "name must not be empty")
	}
	if validationErr := validateProfileFields(req.Profile); validationErr != "" {
		return badRequest(c, validationErr)
	}

	input := services.UpdateUserInput{
		ActorID: actorID,
		Email:   req.Email,
		User: repository.UpdateUserInput{
			Name:               req.Name,
			Phone:              req.Phone,
			EmailNotifications: req.EmailNotifications,
			PushNotifications:  req.PushNotifications,
			SMSNotifications:   req.SMSNotifications,
			ResearchConsent:    req.ResearchConsent,
			ThirdPartySharing:  req.ThirdPartySharing,
		},
	}
	if req.Profile != nil {
		profile, err := req.Profile.toUpsert()
		if err != nil {
			return badRequest(c, "birthday must be a YYYY-MM-DD date")
		}
		input.Profile = &profile
	}
	if p := req.ProgressRecord; p != nil {
		recordDate, err := parseDate(p.RecordDate)
		if err != nil {
			return badRequest(c, "record_date must be a date")
		}
		input.Progress = &services.ProgressEntry{
			RecordDate:    recordDate,
			Weight:        p.Weight,
			Height:        p.Height,
			CaloriesBurnt: p.CaloriesBurnt,
			FatPercentage: p.FatPercentage,
		}
	}
	if w := req.Workout; w != nil {
		date, err := parseDate(w.Date)
		if err != nil {
			return badRequest(c, "workout date must be a date")
		}
		input.Workout = &services.WorkoutEntry{ExerciseID: int64(w.ExerciseID), Duration: w.Duration, Date: date}
	}
	if in := req.Intake; in != nil {
		input.Intake = &services.IntakeEntry{
			NutritionID: int64(in.NutritionID),
			Quantity:    in.Quantity,
			TypeMeal:    strings.TrimSpace(in.TypeMeal),
		}
	}

	user, err := h.service.Update(c.UserContext(), input)
	if err != nil {
		return mapUserError(c, err)
	}
	return c.JSON(user)
}

func mapUserError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return badRequest(c, "Invalid request")
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	case errors.Is(err, services.ErrProfileNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	case errors.Is(err, services.ErrExerciseNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exercise not found"})
	case errors.Is(err, services.ErrNutritionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Nutrition item not found"})
	default:
		return serverError(c, "Failed to process user request", err)
	}
}
