package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type bookingApplicationService interface {
	Create(ctx context.Context, input services.CreateBookingInput) (*models.Booking, error)
	List(ctx context.Context, userID int64) ([]models.Booking, error)
}

type BookingHandler struct {
	service bookingApplicationService
}

func NewBookingHandler(service bookingApplicationService) *BookingHandler {
	return &BookingHandler{service: service}
}

type createBookingRequest struct {
	UserID      flexID `json:"user_id"`
	TrainerID   flexID `json:"trainer_id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	SessionType string `json:"session_type"`
	Notes       string `json:"notes"`
}

func (h *BookingHandler) CreateBooking(c *fiber.Ctx) error {
	var req createBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.UserID <= 0 || req.TrainerID <= 0 || strings.TrimSpace(req.Date) == "" ||
		strings.TrimSpace(req.Time) == "" || strings.TrimSpace(req.SessionType) == "" {
		return badRequest(c, "Missing required fields")
	}
	if ok, err := requireCaller(c, int64(req.UserID)); !ok {
		return err
	}

	booking, err := h.service.Create(c.UserContext(), services.CreateBookingInput{
		UserID:      int64(req.UserID),
		TrainerID:   int64(req.TrainerID),
		Date:        req.Date,
		Time:        req.Time,
		SessionType: req.SessionType,
		Notes:       req.Notes,
	})
	if err != nil {
		return mapBookingError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"booking": booking,
	})
}

// ListBookings serves both clients and trainers: the caller's own id matches the
// bookings they made and the ones booked with them.
func (h *BookingHandler) ListBookings(c *fiber.Ctx) error {
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

	bookings, err := h.service.List(c.UserContext(), userID)
	if err != nil {
		return mapBookingError(c, err)
	}
	return c.JSON(fiber.Map{"bookings": bookings})
}

func mapBookingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return badRequest(c, "Invalid booking details")
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Trainer not found"})
	default:
		return serverError(c, "Failed to process booking", err)
	}
}
