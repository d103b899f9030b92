package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type stubIntakeService struct {
	err          error
	lastUserID   int64
	lastActorID  int64
	lastID       int64
	lastTypeMeal string
	lastItems    []services.IntakeItem
	deleted      bool
}

func (s *stubIntakeService) List(_ context.Context, userID int64) ([]models.Intake, error) {
	s.lastUserID = userID
	return []models.Intake{{ID: 1}}, s.err
}

func (s *stubIntakeService) Create(_ context.Context, userID int64, typeMeal string, items []services.IntakeItem) ([]models.Intake, error) {
	s.lastUserID = userID
	s.lastTypeMeal = typeMeal
	s.lastItems = items
	if s.err != nil {
		return nil, s.err
	}
	out := make([]models.Intake, len(items))
	for i, it := range items {
		out[i] = models.Intake{ID: int64(i + 1), NutritionID: it.NutritionID, Quantity: it.Quantity, TypeMeal: typeMeal}
	}
	return out, nil
}

func (s *stubIntakeService) Get(_ context.Context, actorID, id int64) (*models.Intake, error) {
	s.lastActorID = actorID
	s.lastID = id
	if s.err != nil {
		return nil, s.err
	}
	return &models.Intake{ID: id}, nil
}

func (s *stubIntakeService) Delete(_ context.Context, actorID, id int64) error {
	s.lastActorID = actorID
	s.lastID = id
	if s.err == nil {
		s.deleted = true
	}
	return s.err
}

func newIntakeTestApp(service *stubIntakeService) *fiber.App {
	handler := NewIntakeHandler(service)
	app := newAuthedApp("6")
	app.Get("/api/intake", handler.ListIntakes)
	app.Post("/api/intake", handler.CreateIntake)
	app.Get("/api/intake/:id", handler.GetIntake)
	app.Delete("/api/intake/:id", handler.DeleteIntake)
	return app
}

func TestCreateIntake(t *testing.T) {
	service := &stubIntakeService{}
	resp := doJSON(t, newIntakeTestApp(service), http.MethodPost, "/api/intake", fiber.Map{
		"userId":    6,
		"type_meal": "Breakfast",
		"items":     []fiber.Map{{"nutrition_id": 2, "quantity": 1.5}, {"nutrition_id": "3", "quantity": 1}},
	})
	expectStatus(t, resp, http.StatusCreated)

	var body []models.Intake
	decodeJSON(t, resp, &body)
	if len(body) != 2 || body[1].NutritionID != 3 {
		t.Fatalf("unexpected body: %+v", body)
	}
	if service.lastTypeMeal != "Breakfast" || service.lastItems[0].Quantity != 1.5 {
		t.Fatalf("unexpected input: %q %+v", service.lastTypeMeal, service.lastItems)
	}
}

func TestCreateIntakeValidation(t *testing.T) {
	cases := map[string]fiber.Map{
		"missing meal":  {"userId": 6, "items": []fiber.Map{{"nutrition_id": 2, "quantity": 1}}},
		"missing items": {"userId": 6, "type_meal": "Lunch"},
		"missing user":  {"type_meal": "Lunch", "items": []fiber.Map{{"nutrition_id": 2, "quantity": 1}}},
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			service := &stubIntakeService{}
			resp := doJSON(t, newIntakeTestApp(service), http.MethodPost, "/api/intake", payload)
			expectStatus(t, resp, http.StatusBadRequest)
			if service.lastItems != nil {
				t.Fatalf("service should not be called")
			}
		})
	}
}

func TestCreateIntakeUnknownNutrition(t *testing.T) {
	service := &stubIntakeService{err: services.ErrNutritionNotFound}
	resp := doJSON(t, newIntakeTestApp(service), http.MethodPost, "/api/intake", fiber.Map{
		"userId": 6, "type_meal": "Dinner", "items": []fiber.Map{{"nutrition_id": 404, "quantity": 1}},
	})
	expectStatus(t, resp, http.StatusNotFound)
}

func TestListIntakesForCaller(t *testing.T) {
	service := &stubIntakeService{}
	resp := doJSON(t, newIntakeTestApp(service), http.MethodGet, "/api/intake?userId=6", nil)
	expectStatus(t, resp, http.StatusOK)
	if service.lastUserID != 6 {
		t.Fatalf("unexpected user: %d", service.lastUserID)
	}

	resp = doJSON(t, newIntakeTestApp(service), http.MethodGet, "/api/intake?userId=7", nil)
	expectStatus(t, resp, http.StatusForbidden)
}

func TestDeleteIntake(t *testing.T) {
	service := &stubIntakeService{}
	resp := doJSON(t, newIntakeTestApp(service), http.MethodDelete, "/api/intake/15", nil)
	expectStatus(t, resp, http.StatusOK)

	var body map[string]any
	decodeJSON(t, resp, &body)
	if body["success"] != true || !service.deleted || service.lastActorID != 6 || service.lastID != 15 {
		t.Fatalf("unexpected delete: %+v", body)
	}
}

func TestIntakeByIDErrors(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{services.ErrNotFound, http.StatusNotFound},
		{services.ErrForbidden, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			app := newIntakeTestApp(&stubIntakeService{err: tc.err})
			expectStatus(t, doJSON(t, app, http.MethodGet, "/api/intake/15", nil), tc.want)
			expectStatus(t, doJSON(t, app, http.MethodDelete, "/api/intake/15", nil), tc.want)
		})
	}
}
