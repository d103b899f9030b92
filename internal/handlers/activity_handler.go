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

const defaultFitnessLevel = "BEGINNER"

type activityApplicationService interface {
	Dashboard(ctx context.Context, userID int64) (*models.Dashboard, error)
	LogPlan(ctx context.Context, input services.LogPlanInput) ([]models.Workout, error)
	LogSteps(ctx context.Context, userID int64, steps, minutes int) (*models.Activity, float64, error)
}

type profileSaver interface {
	Save(ctx context.Context, actorID int64, email string, input services.SaveProfileInput) (*models.User, *models.Profile, error)
}

type ActivityHandler struct {
	service  activityApplicationService
	profiles profileSaver
}

func NewActivityHandler(service activityApplicationService, profiles profileSaver) *ActivityHandler {
	return &ActivityHandler{service: service, profiles: profiles}
}

type planExerciseRequest struct {
	ExerciseID   flexID  `json:"exercise_id"`
	Title        string  `json:"title"`
	BodyPart     *string `json:"bodyPart"`
	Description  *string `json:"description"`
	Type         *string `json:"type"`
	Level        *string `json:"level"`
	YoutubeVideo *string `json:"youtube_video"`
	Duration     int     `json:"duration"`
	Date         *string `json:"date"`
}

type logPlanRequest struct {
	UserID         flexID                `json:"userId"`
	WorkoutPlan    []planExerciseRequest `json:"workoutPlan"`
	Steps          int                   `json:"steps"`
	ActiveMinutes  int                   `json:"activeMinutes"`
	CaloriesBurned float64               `json:"caloriesBurned"`
}

type logStepsRequest struct {
	UserID  flexID `json:"userId"`
	Steps   int    `json:"steps"`
	Minutes int    `json:"minutes"`
}

type personalInfoRequest struct {
	FirstName     string   `json:"firstName"`
	LastName      string   `json:"lastName"`
	PhoneNumber   *string  `json:"phoneNumber"`
	Gender        *string  `json:"gender"`
	Birthdate     *string  `json:"birthdate"`
	Height        *float64 `json:"height"`
	CurrentWeight *float64 `json:"currentWeight"`
	GoalWeight    *float64 `json:"goalWeight"`
	ProfileImage  *string  `json:"profileImage"`
}

type fitnessInfoRequest struct {
	FitnessLevel string   `json:"fitnessLevel"`
	FitnessGoals []string `json:"fitnessGoals"`
}

type updateActivityProfileRequest struct {
	Email       string `json:"email"`
	ProfileData *struct {
		PersonalInfo personalInfoRequest `json:"personalInfo"`
		FitnessInfo  fitnessInfoRequest  `json:"fitnessInfo"`
	} `json:"profileData"`
}

func (h *ActivityHandler) GetDashboard(c *fiber.Ctx) error {
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

	dashboard, err := h.service.Dashboard(c.UserContext(), userID)
	if err != nil {
		return mapActivityError(c, err)
	}
	return c.JSON(dashboard)
}

func (h *ActivityHandler) LogPlan(c *fiber.Ctx) error {
	var req logPlanRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.UserID <= 0 || req.WorkoutPlan == nil {
		return badRequest(c, "UserId and workoutPlan are required")
	}
	if ok, err := requireCaller(c, int64(req.UserID)); !ok {
		return err
	}

	plan := make([]services.PlanExercise, 0, len(req.WorkoutPlan))
	for _, e := range req.WorkoutPlan {
		if strings.TrimSpace(e.Title) == "" {
			return badRequest(c, "Every exercise needs a title")
		}
		date, err := parseDate(e.Date)
		if err != nil {
			return badRequest(c, "Exercise date must be a date")
		}
		plan = append(plan, services.PlanExercise{
			ExerciseID:   int64(e.ExerciseID),
			Title:        strings.TrimSpace(e.Title),
			BodyPart:     e.BodyPart,
			Description:  e.Description,
			Type:         e.Type,
			Level:        e.Level,
			YoutubeVideo: e.YoutubeVideo,
			Duration:     e.Duration,
			Date:         date,
		})
	}

	workouts, err := h.service.LogPlan(c.UserContext(), services.LogPlanInput{
		UserID:         int64(req.UserID),
		WorkoutPlan:    plan,
		Steps:          req.Steps,
		ActiveMinutes:  req.ActiveMinutes,
		CaloriesBurned: req.CaloriesBurned,
	})
	if err != nil {
		return mapActivityError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"workouts": workouts,
	})
}

func (h *ActivityHandler) LogSteps(c *fiber.Ctx) error {
	var req logStepsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.UserID <= 0 {
		return badRequest(c, "User ID is required")
	}
	if ok, err := requireCaller(c, int64(req.UserID)); !ok {
		return err
	}

	activity, calories, err := h.service.LogSteps(c.UserContext(), int64(req.UserID), req.Steps, req.Minutes)
	if err != nil {
		return mapActivityError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":       true,
		"activity":      activity,
		"caloriesBurnt": calories,
	})
}

// UpdateProfile saves the dashboard's profile form. The form always carries the
// complete profile, so every field is written.
func (h *ActivityHandler) UpdateProfile(c *fiber.Ctx) error {
	actorID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req updateActivityProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Email) == "" || req.ProfileData == nil {
		return badRequest(c, "Email and profile data are required")
	}

	info := req.ProfileData.PersonalInfo
	fitness := req.ProfileData.FitnessInfo
	level := strings.TrimSpace(fitness.FitnessLevel)
	if level == "" {
		level = defaultFitnessLevel
	}
	goals := fitness.FitnessGoals
	if goals == nil {
		goals = []string{}
	}
	fields := &profileFields{
		Gender:       info.Gender,
		Birthday:     info.Birthdate,
		Height:       info.Height,
		CurrWeight:   info.CurrentWeight,
		GoalWeight:   info.GoalWeight,
		FitnessLevel: &level,
		FitnessGoals: &goals,
		ProfilePic:   info.ProfileImage,
	}
	if validationErr := validateProfileFields(fields); validationErr != "" {
		return badRequest(c, validationErr)
	}
	profileInput, err := fields.toUpsert()
	if err != nil {
		return badRequest(c, "birthdate must be a YYYY-MM-DD date")
	}

	userInput := repository.UpdateUserInput{Phone: info.PhoneNumber}
	if name := strings.TrimSpace(info.FirstName + " " + info.LastName); name != "" {
		userInput.Name = &name
	}

	if _, _, err := h.profiles.Save(c.UserContext(), actorID, req.Email, services.SaveProfileInput{
		User:    userInput,
		Profile: profileInput,
	}); err != nil {
		return mapActivityError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Profile updated successfully"})
}

func mapActivityError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return badRequest(c, "Invalid request")
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	case errors.Is(err, services.ErrProfileNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User profile not found"})
	default:
		return serverError(c, "Failed to process activity data", err)
	}
}
