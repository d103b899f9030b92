package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type stubUserService struct {
	listResult  []models.UserWithProfile
	getResult   *models.UserWithProfile
	getErr      error
	updateErr   error
	lastID      int64
	lastUpdate  services.UpdateUserInput
	updateCalls int
}

func (s *stubUserService) List(_ context.Context) ([]models.UserWithProfile, error) {
	return s.listResult, nil
}

func (s *stubUserService) Get(_ context.Context, id int64) (*models.UserWithProfile, error) {
	s.lastID = id
	return s.getResult, s.getErr
}

func (s *stubUserService) Update(_ context.Context, input services.UpdateUserInput) (*models.UserWithProfile, error) {
	s.updateCalls++
	s.lastUpdate = input
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return &models.UserWithProfile{User: models.User{ID: input.ActorID, Email: input.Email}}, nil
}

func newUserTestApp(service *stubUserService) *fiber.App {
	handler := NewUserHandler(service)
	app := newAuthedApp("12")
	app.Get("/api/users", handler.ListUsers)
	app.Get("/api/users/:id", handler.GetUser)
	app.Put("/api/users", handler.UpdateUser)
	return app
}

func TestGetUserNotFound(t *testing.T) {
	service := &stubUserService{getErr: services.ErrUserNotFound}
	resp := doJSON(t, newUserTestApp(service), http.MethodGet, "/api/users/99", nil)
	expectStatus(t, resp, http.StatusNotFound)
	if service.lastID != 99 {
		t.Fatalf("expected id 99, got %d", service.lastID)
	}
}

func TestListUsersOmitsPasswordHash(t *testing.T) {
	service := &stubUserService{listResult: []models.UserWithProfile{
		{User: models.User{ID: 1, Name: "Ann", PasswordHash: "secret-hash"}},
	}}
	resp := doJSON(t, newUserTestApp(service), http.MethodGet, "/api/users", nil)
	expectStatus(t, resp, http.StatusOK)

	var body []map[string]any
	decodeJSON(t, resp, &body)
	if len(body) != 1 {
		t.Fatalf("unexpected users: %+v", body)
	}
	for key, value := range body[0] {
		if value == "secret-hash" {
			t.Fatalf("password hash leaked under %q", key)
		}
	}
}

func TestUpdateUserBuildsBatch(t *testing.T) {
	service := &stubUserService{}
	resp := doJSON(t, newUserTestApp(service), http.MethodPut, "/api/users", fiber.Map{
		"email":              "ann@example.com",
		"name":               "Ann Lee",
		"push_notifications": true,
		"profile":            fiber.Map{"curr_weight": 64.5, "fitness_level": "Intermediate"},
		"progressRecord":     fiber.Map{"weight": 64.5, "calories_burnt": 320, "record_date": "2026-04-02"},
		"workout":            fiber.Map{"exercise_id": "7", "duration": 30},
		"intake":             fiber.Map{"nutrition_id": 3, "quantity": 2, "type_meal": " Lunch "},
	})
	expectStatus(t, resp, http.StatusOK)

	in := service.lastUpdate
	if in.ActorID != 12 || in.Email != "ann@example.com" {
		t.Fatalf("unexpected actor or email: %+v", in)
	}
	if in.User.Name == nil || *in.User.Name != "Ann Lee" || in.User.PushNotifications == nil || !*in.User.PushNotifications {
		t.Fatalf("unexpected user columns: %+v", in.User)
	}
	if in.Profile == nil || in.Profile.CurrWeight == nil || *in.Profile.CurrWeight != 64.5 {
		t.Fatalf("unexpected profile: %+v", in.Profile)
	}
	if in.Progress == nil || in.Progress.RecordDate == nil || in.Progress.RecordDate.Day() != 2 || in.Progress.CaloriesBurnt != 320 {
		t.Fatalf("unexpected progress: %+v", in.Progress)
	}
	if in.Workout == nil || in.Workout.ExerciseID != 7 || in.Workout.Duration != 30 {
		t.Fatalf("unexpected workout: %+v", in.Workout)
	}
	if in.Intake == nil || in.Intake.NutritionID != 3 || in.Intake.TypeMeal != "Lunch" {
		t.Fatalf("unexpected intake: %+v", in.Intake)
	}
}

func TestUpdateUserRequiresEmail(t *testing.T) {
	service := &stubUserService{}
	resp := doJSON(t, newUserTestApp(service), http.MethodPut, "/api/users", fiber.Map{"name": "Ann"})
	expectStatus(t, resp, http.StatusBadRequest)
	if service.updateCalls != 0 {
		t.Fatalf("service should not be called")
	}
}

func TestUpdateUserMapsServiceErrors(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{services.ErrForbidden, http.StatusForbidden},
		{services.ErrUserNotFound, http.StatusNotFound},
		{services.ErrExerciseNotFound, http.StatusNotFound},
		{services.ErrNutritionNotFound, http.StatusNotFound},
		{services.ErrInvalidInput, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			service := &stubUserService{updateErr: tc.err}
			resp := doJSON(t, newUserTestApp(service), http.MethodPut, "/api/users", fiber.Map{"email": "x@example.com"})
			expectStatus(t, resp, tc.want)
		})
	}
}
