package repository

import (
	"context"
	"time"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
	"github.com/jackc/pgx/v5"
)

const bookingColumns = `id, user_id, trainer_id, booking_date, booking_time, session_type, notes, status, created_at`

type BookingRepository struct {
	db DBTX
}

func NewBookingRepository(db DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

type CreateBookingInput struct {
	UserID      int64
	TrainerID   int64
	Date        time.Time
	Time        string
	SessionType string
	Notes       string
}

func scanBooking(row pgx.Row, booking *models.Booking) error {
	return row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.TrainerID,
		&booking.BookingDate,
		&booking.BookingTime,
		&booking.SessionType,
		&booking.Notes,
		&booking.Status,
		&booking.CreatedAt,
	)
}

func (r *BookingRepository) Create(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	query := `
		INSERT INTO bookings (user_id, trainer_id, booking_date, booking_time, session_type, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + bookingColumns
	var booking models.Booking
	err := scanBooking(r.db.QueryRow(ctx, query,
		input.UserID,
		input.TrainerID,
		input.Date,
		input.Time,
		input.SessionType,
		input.Notes,
		models.BookingStatusConfirmed,
	), &booking)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListForUser returns bookings where userID is either the client or the trainer.
func (r *BookingRepository) ListForUser(ctx context.Context, userID int64) ([]models.Booking, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE user_id = $1 OR trainer_id = $1
		ORDER BY booking_date DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]models.Booking, 0)
	for rows.Next() {
		var booking models.Booking
		if err := scanBooking(rows, &booking); err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}
