package services

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrExerciseNotFound   = errors.New("exercise not found")
	ErrNutritionNotFound  = errors.New("nutrition item not found")
	ErrConflict           = errors.New("conflict")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStorageDisabled    = errors.New("object storage is not configured")
)

// notFound swaps pgx.ErrNoRows for the given sentinel and passes anything else through.
func notFound(err, sentinel error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return sentinel
	}
	return err
}
