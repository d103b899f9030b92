package services

import (
	"context"
	"strings"
	"time"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/repository"
)

const BookingDateLayout = "2006-01-02"

type bookingStore interface {
	Create(ctx context.Context, input repository.CreateBookingInput) (*models.Booking, error)
	ListForUser(ctx context.Context, userID int64) ([]models.Booking, error)
}

type BookingService struct {
	bookingRepo bookingStore
	userRepo    userReader
}

func NewBookingService(bookingRepo bookingStore, userRepo userReader) *BookingService {
	return &BookingService{bookingRepo: bookingRepo, userRepo: userRepo}
}

type CreateBookingInput struct {
	UserID      int64
	TrainerID   int64
	Date        string
	Time        string
	SessionType string
	Notes       string
}

func (s *BookingService) Create(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	input.Time = strings.TrimSpace(input.Time)
	input.SessionType = strings.TrimSpace(input.SessionType)
	if input.UserID <= 0 || input.TrainerID <= 0 || input.Time == "" || input.SessionType == "" {
		return nil, ErrInvalidInput
	}
	if input.UserID == input.TrainerID {
		return nil, ErrInvalidInput
	}
	date, err := time.Parse(BookingDateLayout, strings.TrimSpace(input.Date))
	if err != nil {
		return nil, ErrInvalidInput
	}

	trainer, err := s.userRepo.GetByID(ctx, input.TrainerID)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	if trainer.Role != models.RoleTrainer {
		return nil, ErrInvalidInput
	}

	booking, err := s.bookingRepo.Create(ctx, repository.CreateBookingInput{
		UserID:      input.UserID,
		TrainerID:   input.TrainerID,
		Date:        date,
		Time:        input.Time,
		SessionType: input.SessionType,
		Notes:       strings.TrimSpace(input.Notes),
	})
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return booking, nil
}

// List returns the bookings where userID is the client or the trainer, latest date first.
func (s *BookingService) List(ctx context.Context, userID int64) ([]models.Booking, error) {
	if userID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.bookingRepo.ListForUser(ctx, userID)
}
