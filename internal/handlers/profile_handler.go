package handlers

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/repository"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

const maxPictureSizeBytes = 5 * 1024 * 1024

type profileApplicationService interface {
	Get(ctx context.Context, actorID int64, email string) (*models.User, *models.Profile, error)
	Save(ctx context.Context, actorID int64, email string, input services.SaveProfileInput) (*models.User, *models.Profile, error)
	SetPicture(ctx context.Context, userID int64, content []byte) (*models.Profile, error)
}

type ProfileHandler struct {
	service profileApplicationService
}

func NewProfileHandler(service profileApplicationService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

type userFields struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

type profileFields struct {
	Gender       *string   `json:"gender"`
	Birthday     *string   `json:"birthday"`
	Height       *float64  `json:"height"`
	CurrWeight   *float64  `json:"curr_weight"`
	GoalWeight   *float64  `json:"goal_weight"`
	FitnessLevel *string   `json:"fitness_level"`
	FitnessGoals *[]string `json:"fitness_goals"`
	ProfilePic   *string   `json:"profile_pic"`
}

type saveProfileRequest struct {
	User    *userFields    `json:"user"`
	Profile *profileFields `json:"profile"`
}

func (u *userFields) toUpdate() repository.UpdateUserInput {
	if u == nil {
		return repository.UpdateUserInput{}
	}
	in := repository.UpdateUserInput{Phone: u.Phone}
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		in.Name = &name
	}
	return in
}

func (p *profileFields) toUpsert() (repository.UpsertProfileInput, error) {
	if p == nil {
		return repository.UpsertProfileInput{}, nil
	}
	birthday, err := parseDate(p.Birthday)
	if err != nil {
		return repository.UpsertProfileInput{}, err
	}
	return repository.UpsertProfileInput{
		Gender:       p.Gender,
		Birthday:     birthday,
		CurrWeight:   p.CurrWeight,
		CurrHeight:   p.Height,
		GoalWeight:   p.GoalWeight,
		FitnessLevel: p.FitnessLevel,
		FitnessGoals: p.FitnessGoals,
		ProfilePic:   p.ProfilePic,
	}, nil
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		return badRequest(c, "Email is required")
	}

	actorID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	user, profile, err := h.service.Get(c.UserContext(), actorID, email)
	if err != nil {
		return mapProfileError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
		"profile": profile,
	})
}

func (h *ProfileHandler) SaveProfile(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		return badRequest(c, "Email is required")
	}

	actorID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req saveProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if validationErr := validateUserFields(req.User); validationErr != "" {
		return badRequest(c, validationErr)
	}
	if validationErr := validateProfileFields(req.Profile); validationErr != "" {
		return badRequest(c, validationErr)
	}
	profileInput, err := req.Profile.toUpsert()
	if err != nil {
		return badRequest(c, "birthday must be a YYYY-MM-DD date")
	}

	user, profile, err := h.service.Save(c.UserContext(), actorID, email, services.SaveProfileInput{
		User:    req.User.toUpdate(),
		Profile: profileInput,
	})
	if err != nil {
		return mapProfileError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
		"profile": profile,
	})
}

func (h *ProfileHandler) UploadPicture(c *fiber.Ctx) error {
	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	fileHeader, err := c.FormFile("picture")
	if err != nil {
		return badRequest(c, "picture file is required")
	}
	if fileHeader.Size <= 0 {
		return badRequest(c, "picture file is empty")
	}
	if fileHeader.Size > maxPictureSizeBytes {
		return badRequest(c, "picture file exceeds 5MB limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return serverError(c, "Failed to open picture file", err)
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxPictureSizeBytes))
	if err != nil {
		return serverError(c, "Failed to read picture file", err)
	}

	profile, err := h.service.SetPicture(c.UserContext(), userID, content)
	if err != nil {
		return mapProfileError(c, err)
	}

	return c.JSON(fiber.Map{
		"profile_pic": profile.ProfilePic,
		"profile":     profile,
	})
}

func mapProfileError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return badRequest(c, "Invalid request")
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	case errors.Is(err, services.ErrStorageDisabled):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Storage service is not configured"})
	default:
		return serverError(c, "Failed to process profile", err)
	}
}
