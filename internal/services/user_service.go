package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userLister interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type profileLister interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Profile, error)
	ListByUserIDs(ctx context.Context, userIDs []int64) (map[int64]*models.Profile, error)
}

type UserService struct {
	db          *pgxpool.Pool
	userRepo    userLister
	profileRepo profileLister
}

func NewUserService(db *pgxpool.Pool, userRepo userLister, profileRepo profileLister) *UserService {
	return &UserService{db: db, userRepo: userRepo, profileRepo: profileRepo}
}

func (s *UserService) List(ctx context.Context) ([]models.UserWithProfile, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	profiles, err := s.profileRepo.ListByUserIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.UserWithProfile, 0, len(users))
	for _, u := range users {
		out = append(out, models.UserWithProfile{User: u, Profile: profiles[u.ID]})
	}
	return out, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*models.UserWithProfile, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	out := &models.UserWithProfile{User: *user}
	profile, err := s.profileRepo.GetByUserID(ctx, id)
	switch {
	case err == nil:
		out.Profile = profile
	case !errors.Is(err, pgx.ErrNoRows):
		return nil, err
	}
	return out, nil
}

type ProgressEntry struct {
	RecordDate    *time.Time
	Weight        *float64
	Height        *float64
	CaloriesBurnt float64
	FatPercentage *float64
}

type WorkoutEntry struct {
	ExerciseID int64
	Duration   int
	Date       *time.Time
}

type IntakeEntry struct {
	NutritionID int64
	Quantity    float64
	TypeMeal    string
}

type UpdateUserInput struct {
	ActorID  int64
	Email    string
	User     repository.UpdateUserInput
	Profile  *repository.UpsertProfileInput
	Progress *ProgressEntry
	Workout  *WorkoutEntry
	Intake   *IntakeEntry
}

// Update applies every part of the batch inside one transaction; a failure in any
// part leaves the account untouched.
func (s *UserService) Update(ctx context.Context, input UpdateUserInput) (*models.UserWithProfile, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Email == "" {
		return nil, ErrInvalidInput
	}
	if input.Workout != nil && (input.Workout.ExerciseID <= 0 || input.Workout.Duration < 0) {
		return nil, ErrInvalidInput
	}
	if input.Intake != nil && (input.Intake.NutritionID <= 0 || input.Intake.TypeMeal == "") {
		return nil, ErrInvalidInput
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	userRepo := repository.NewUserRepository(tx)
	if _, err := ownAccount(ctx, userRepo, input.ActorID, input.Email); err != nil {
		return nil, err
	}
	user, err := userRepo.UpdateByEmail(ctx, input.Email, input.User)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}

	profileRepo := repository.NewProfileRepository(tx)
	var profile *models.Profile
	if input.Profile != nil {
		profile, err = profileRepo.Upsert(ctx, user.ID, *input.Profile)
	} else {
		profile, err = profileRepo.GetByUserID(ctx, user.ID)
	}
	if err != nil {
		return nil, notFound(err, ErrProfileNotFound)
	}

	if p := input.Progress; p != nil {
		if _, err := repository.NewProgressRepository(tx).Create(ctx, repository.CreateProgressInput{
			ProfileID:     profile.ID,
			RecordDate:    p.RecordDate,
			Weight:        p.Weight,
			Height:        p.Height,
			CaloriesBurnt: p.CaloriesBurnt,
			FatPercentage: p.FatPercentage,
		}); err != nil {
			return nil, err
		}
	}

	if w := input.Workout; w != nil {
		if _, err := repository.NewExerciseRepository(tx).GetByID(ctx, w.ExerciseID); err != nil {
			return nil, notFound(err, ErrExerciseNotFound)
		}
		if _, err := repository.NewWorkoutRepository(tx).Create(ctx, repository.CreateWorkoutInput{
			ProfileID:  profile.ID,
			ExerciseID: w.ExerciseID,
			Duration:   workoutMinutes(w.Duration),
			Date:       w.Date,
		}); err != nil {
			return nil, err
		}
	}

	if in := input.Intake; in != nil {
		if _, err := repository.NewNutritionRepository(tx).GetByID(ctx, in.NutritionID); err != nil {
			return nil, notFound(err, ErrNutritionNotFound)
		}
		quantity := in.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		if _, err := repository.NewIntakeRepository(tx).Create(ctx, repository.CreateIntakeInput{
			ProfileID:   profile.ID,
			NutritionID: in.NutritionID,
			Quantity:    quantity,
			TypeMeal:    in.TypeMeal,
		}); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &models.UserWithProfile{User: *user, Profile: profile}, nil
}
