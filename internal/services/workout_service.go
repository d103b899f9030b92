package services

import (
	"context"
	"errors"
	"time"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultWorkoutListLimit = 20
	maxWorkoutListLimit     = 50
)

type recentWorkoutReader interface {
	ListRecentWithExercise(ctx context.Context, profileID int64, limit int) ([]models.Workout, error)
}

type WorkoutService struct {
	db          *pgxpool.Pool
	profileRepo profileReader
	workoutRepo recentWorkoutReader
	now         func() time.Time
}

func NewWorkoutService(db *pgxpool.Pool, profileRepo profileReader, workoutRepo recentWorkoutReader) *WorkoutService {
	return &WorkoutService{
		db:          db,
		profileRepo: profileRepo,
		workoutRepo: workoutRepo,
		now:         time.Now,
	}
}

type CreateWorkoutsInput struct {
	UserID        int64
	Workouts      []WorkoutEntry
	Steps         int
	ActiveMinutes int
}

type CreateWorkoutsResult struct {
	Workouts []models.Workout
	Activity *models.Activity
}

// Create stores a batch of workouts. Every referenced exercise must exist or
// nothing is written. Steps and minutes are merged into today's activity row.
func (s *WorkoutService) Create(ctx context.Context, input CreateWorkoutsInput) (*CreateWorkoutsResult, error) {
	if input.UserID <= 0 || len(input.Workouts) == 0 || input.Steps < 0 || input.ActiveMinutes < 0 {
		return nil, ErrInvalidInput
	}
	ids := make([]int64, 0, len(input.Workouts))
	for _, w := range input.Workouts {
		if w.ExerciseID <= 0 || w.Duration < 0 {
			return nil, ErrInvalidInput
		}
		ids = append(ids, w.ExerciseID)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	profile, err := repository.NewProfileRepository(tx).GetByUserID(ctx, input.UserID)
	if err != nil {
		return nil, notFound(err, ErrProfileNotFound)
	}

	exerciseRepo := repository.NewExerciseRepository(tx)
	existing, err := exerciseRepo.ExistingIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := existing[id]; !ok {
			return nil, ErrExerciseNotFound
		}
	}

	workoutRepo := repository.NewWorkoutRepository(tx)
	result := &CreateWorkoutsResult{Workouts: make([]models.Workout, 0, len(input.Workouts))}
	for _, w := range input.Workouts {
		workout, err := workoutRepo.Create(ctx, repository.CreateWorkoutInput{
			ProfileID:  profile.ID,
			ExerciseID: w.ExerciseID,
			Duration:   workoutMinutes(w.Duration),
			Date:       w.Date,
		})
		if err != nil {
			return nil, err
		}
		if workout.Exercise, err = exerciseRepo.GetByID(ctx, w.ExerciseID); err != nil {
			return nil, err
		}
		result.Workouts = append(result.Workouts, *workout)
	}

	if input.Steps > 0 || input.ActiveMinutes > 0 {
		activityRepo := repository.NewActivityRepository(tx)
		today, err := activityRepo.GetForDayForUpdate(ctx, profile.ID, s.now().UTC())
		switch {
		case err == nil:
			result.Activity, err = activityRepo.AddTo(ctx, today.ID, input.Steps, input.ActiveMinutes)
		case errors.Is(err, pgx.ErrNoRows):
			result.Activity, err = activityRepo.Create(ctx, repository.CreateActivityInput{
				ProfileID: profile.ID,
				Steps:     input.Steps,
				Minutes:   input.ActiveMinutes,
			})
		}
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

// workoutMinutes applies the default length to a workout logged without one.
func workoutMinutes(duration int) int {
	if duration == 0 {
		return defaultWorkoutDuration
	}
	return duration
}

func (s *WorkoutService) ListRecent(ctx context.Context, userID int64, limit int) ([]models.Workout, error) {
	if userID <= 0 || limit < 0 {
		return nil, ErrInvalidInput
	}
	if limit == 0 {
		limit = defaultWorkoutListLimit
	}
	if limit > maxWorkoutListLimit {
		limit = maxWorkoutListLimit
	}
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, notFound(err, ErrProfileNotFound)
	}
	return s.workoutRepo.ListRecentWithExercise(ctx, profile.ID, limit)
}
