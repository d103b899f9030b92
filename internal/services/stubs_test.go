package services

import (
	"context"
	"time"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/repository"
	"github.com/jackc/pgx/v5"
)

type stubUsers struct {
	byID     map[int64]*models.User
	searched []models.ChatUser
}

func (s *stubUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return u, nil
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *stubUsers) List(_ context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(s.byID))
	for _, u := range s.byID {
		out = append(out, *u)
	}
	return out, nil
}

func (s *stubUsers) SearchByName(_ context.Context, _ string, _ int64) ([]models.ChatUser, error) {
	return s.searched, nil
}

type stubProfiles struct {
	byUser map[int64]*models.Profile
}

func (s *stubProfiles) GetByUserID(_ context.Context, userID int64) (*models.Profile, error) {
	p, ok := s.byUser[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return p, nil
}

func (s *stubProfiles) ListByUserIDs(_ context.Context, ids []int64) (map[int64]*models.Profile, error) {
	out := make(map[int64]*models.Profile)
	for _, id := range ids {
		if p, ok := s.byUser[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

type stubSubscriptions struct {
	byUser map[int64]*models.Subscription
	saved  []repository.UpsertSubscriptionInput
	err    error
}

func (s *stubSubscriptions) GetByUserID(_ context.Context, userID int64) (*models.Subscription, error) {
	sub, ok := s.byUser[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return sub, nil
}

func (s *stubSubscriptions) Upsert(_ context.Context, input repository.UpsertSubscriptionInput) (*models.Subscription, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.saved = append(s.saved, input)
	return &models.Subscription{
		ID:             1,
		UserID:         input.UserID,
		Cardholder:     input.Cardholder,
		CardLast4:      input.CardLast4,
		ExpDate:        input.ExpDate,
		PlanPurchased:  input.PlanPurchased,
		DateOfPurchase: time.Now(),
	}, nil
}

type stubWorkouts struct {
	recent []models.Workout
	since  []models.Workout
	traits []repository.WorkoutTraits

	lastLimit int
}

func (s *stubWorkouts) ListRecentWithExercise(_ context.Context, _ int64, limit int) ([]models.Workout, error) {
	s.lastLimit = limit
	if len(s.recent) > limit {
		return s.recent[:limit], nil
	}
	return s.recent, nil
}

func (s *stubWorkouts) ListSinceWithExercise(_ context.Context, _ int64, _ time.Time) ([]models.Workout, error) {
	return s.since, nil
}

func (s *stubWorkouts) ListTraits(_ context.Context, _ int64) ([]repository.WorkoutTraits, error) {
	return s.traits, nil
}

type stubActivities struct {
	recent []models.Activity

	lastLimit int
}

func (s *stubActivities) ListRecent(_ context.Context, _ int64, limit int) ([]models.Activity, error) {
	s.lastLimit = limit
	if len(s.recent) > limit {
		return s.recent[:limit], nil
	}
	return s.recent, nil
}

type stubProgress struct {
	recent   []models.ProgressRecord
	since    []models.ProgressRecord
	all      []models.ProgressRecord
	calories float64
}

func (s *stubProgress) ListRecent(_ context.Context, _ int64, _ int) ([]models.ProgressRecord, error) {
	return s.recent, nil
}

func (s *stubProgress) SumCalories(_ context.Context, _ int64) (float64, error) {
	return s.calories, nil
}

func (s *stubProgress) ListSince(_ context.Context, _ int64, _ time.Time) ([]models.ProgressRecord, error) {
	return s.since, nil
}

func (s *stubProgress) ListAll(_ context.Context, _ int64) ([]models.ProgressRecord, error) {
	return s.all, nil
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }
