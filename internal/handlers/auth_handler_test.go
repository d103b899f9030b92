package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/services"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/gofiber/fiber/v2"
)

type stubAuthService struct {
	registerResult *services.AuthResult
	registerErr    error
	loginResult    *services.AuthResult
	loginErr       error
	meResult       *models.UserWithProfile
	meErr          error
	lastRegister   services.RegisterInput
	lastEmail      string
	lastUserID     int64
}

func (s *stubAuthService) Register(_ context.Context, input services.RegisterInput) (*services.AuthResult, error) {
	s.lastRegister = input
	return s.registerResult, s.registerErr
}

func (s *stubAuthService) Login(_ context.Context, email, _ string) (*services.AuthResult, error) {
	s.lastEmail = email
	return s.loginResult, s.loginErr
}

func (s *stubAuthService) Me(_ context.Context, userID int64) (*models.UserWithProfile, error) {
	s.lastUserID = userID
	return s.meResult, s.meErr
}

func newAuthTestApp(service *stubAuthService) *fiber.App {
	handler := NewAuthHandler(service)
	app := newAuthedApp("5")
	app.Post("/api/auth/register", handler.Register)
	app.Post("/api/auth/login", handler.Login)
	app.Get("/api/auth/me", handler.Me)
	return app
}

func TestRegisterReturnsCreatedToken(t *testing.T) {
	email := gofakeit.Email()
	service := &stubAuthService{
		registerResult: &services.AuthResult{Token: "tok", User: &models.User{ID: 5, Email: email, Role: models.RoleUser}},
	}
	app := newAuthTestApp(service)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", fiber.Map{
		"name":     gofakeit.Name(),
		"email":    "  " + email + " ",
		"password": "longenough",
	})
	expectStatus(t, resp, http.StatusCreated)

	var body services.AuthResult
	decodeJSON(t, resp, &body)
	if body.Token != "tok" || body.User.ID != 5 {
		t.Fatalf("unexpected response: %+v", body)
	}
	if service.lastRegister.Email != email {
		t.Fatalf("email was not normalized: %q", service.lastRegister.Email)
	}
}

func TestRegisterValidation(t *testing.T) {
	cases := map[string]fiber.Map{
		"missing name":   {"email": "a@b.co", "password": "longenough"},
		"bad email":      {"name": "Ann", "email": "nope", "password": "longenough"},
		"short password": {"name": "Ann", "email": "a@b.co", "password": "short"},
		"unknown role":   {"name": "Ann", "email": "a@b.co", "password": "longenough", "role": "admin"},
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			service := &stubAuthService{}
			resp := doJSON(t, newAuthTestApp(service), http.MethodPost, "/api/auth/register", payload)
			expectStatus(t, resp, http.StatusBadRequest)
			if service.lastRegister.Email != "" {
				t.Fatalf("service should not be called")
			}
		})
	}
}

func TestRegisterDuplicateEmailIsConflict(t *testing.T) {
	service := &stubAuthService{registerErr: services.ErrConflict}
	resp := doJSON(t, newAuthTestApp(service), http.MethodPost, "/api/auth/register", fiber.Map{
		"name": "Ann", "email": "ann@example.com", "password": "longenough",
	})
	expectStatus(t, resp, http.StatusConflict)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	service := &stubAuthService{loginErr: services.ErrInvalidCredentials}
	resp := doJSON(t, newAuthTestApp(service), http.MethodPost, "/api/auth/login", fiber.Map{
		"email": "Ann@Example.com", "password": "wrong-password",
	})
	expectStatus(t, resp, http.StatusUnauthorized)
	if service.lastEmail != "ann@example.com" {
		t.Fatalf("unexpected email: %q", service.lastEmail)
	}
}

func TestMeUsesTokenSubject(t *testing.T) {
	service := &stubAuthService{meResult: &models.UserWithProfile{User: models.User{ID: 5, Name: "Ann"}}}
	resp := doJSON(t, newAuthTestApp(service), http.MethodGet, "/api/auth/me", nil)
	expectStatus(t, resp, http.StatusOK)
	if service.lastUserID != 5 {
		t.Fatalf("expected subject 5, got %d", service.lastUserID)
	}
}

func TestMeFailureCarriesDetails(t *testing.T) {
	service := &stubAuthService{meErr: errors.New("connection reset")}
	resp := doJSON(t, newAuthTestApp(service), http.MethodGet, "/api/auth/me", nil)
	expectStatus(t, resp, http.StatusInternalServerError)

	var body map[string]string
	decodeJSON(t, resp, &body)
	if body["details"] != "connection reset" {
		t.Fatalf("expected details, got %+v", body)
	}
}
