package services

import (
	"context"
	"testing"
	"time"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRecommender struct {
	bodyParts []string
	limit     int
	exercises []models.Exercise
}

func (s *stubRecommender) ListByBodyParts(_ context.Context, bodyParts []string, limit int) ([]models.Exercise, error) {
	s.bodyParts, s.limit = bodyParts, limit
	return s.exercises, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func TestAnalyticsReport(t *testing.T) {
	recommender := &stubRecommender{exercises: []models.Exercise{
		{ID: 1, Title: "Push Up", BodyPart: strPtr("Chest")},
		{ID: 2, Title: "Mystery Move"},
	}}
	progress := &stubProgress{
		since: []models.ProgressRecord{{RecordDate: day(2026, 3, 9), CaloriesBurnt: 300}},
		all: []models.ProgressRecord{
			{RecordDate: day(2026, 3, 1), Weight: floatPtr(80)},
			{RecordDate: day(2026, 3, 5)},
			{RecordDate: day(2026, 3, 8), Weight: floatPtr(79.3)},
		},
	}
	workouts := &stubWorkouts{
		since: []models.Workout{{WorkoutDate: day(2026, 3, 9), Duration: 40}},
		traits: []repository.WorkoutTraits{
			{BodyPart: strPtr("Chest"), Level: strPtr("Advanced")},
			{BodyPart: strPtr("Legs")},
			{BodyPart: strPtr("Chest"), Level: strPtr("Intermediate")},
		},
	}
	service := NewAnalyticsService(
		&stubProfiles{byUser: map[int64]*models.Profile{7: {ID: 70, UserID: 7}}},
		progress, workouts, recommender,
	)
	service.now = func() time.Time { return day(2026, 3, 10) }

	report, err := service.Report(context.Background(), 7, "weekly")
	require.NoError(t, err)

	assert.Equal(t, []models.SeriesPoint{{Date: "2026-03-09", Value: 300}}, report.Calories)
	assert.Equal(t, []models.SeriesPoint{{Date: "2026-03-09", Value: 40}}, report.ExerciseTime)
	assert.Equal(t, []models.SeriesPoint{
		{Date: "2026-03-01", Value: 80},
		{Date: "2026-03-05", Value: 0},
		{Date: "2026-03-08", Value: 79.3},
	}, report.Weight)

	assert.Equal(t, []models.NamedCount{{Name: "Chest", Value: 2}, {Name: "Legs", Value: 1}}, report.BodyPartDistribution)
	assert.Equal(t, []models.NamedCount{
		{Name: "Beginner", Value: 1},
		{Name: "Intermediate", Value: 1},
		{Name: "Advanced", Value: 1},
	}, report.DifficultyDistribution)

	assert.Equal(t, []string{"Chest", "Legs"}, recommender.bodyParts)
	assert.Equal(t, 5, recommender.limit)
	require.Len(t, report.ExerciseRecommendations, 2)
	assert.Equal(t, models.ExerciseRecommendation{
		Title: "Mystery Move", Description: "", BodyPart: "General", Type: "Strength", Level: "Beginner",
	}, report.ExerciseRecommendations[1])

	// three recorded points plus four projected weeks
	require.Len(t, report.PredictiveWeight, 7)
	assert.Nil(t, report.PredictiveWeight[1].Value)
	first := report.PredictiveWeight[3]
	assert.True(t, first.IsPrediction)
	assert.Equal(t, "2026-03-15", first.Date)
	assert.InDelta(t, 79.3-0.1*7, *first.Value, 1e-9)
}

func TestAnalyticsReportSingleWeightHasNoPrediction(t *testing.T) {
	service := NewAnalyticsService(
		&stubProfiles{byUser: map[int64]*models.Profile{7: {ID: 70}}},
		&stubProgress{all: []models.ProgressRecord{{RecordDate: day(2026, 3, 1), Weight: floatPtr(80)}}},
		&stubWorkouts{},
		&stubRecommender{},
	)

	report, err := service.Report(context.Background(), 7, "monthly")
	require.NoError(t, err)
	assert.Empty(t, report.PredictiveWeight)
	assert.NotNil(t, report.PredictiveWeight)
	assert.Empty(t, report.BodyPartDistribution)
	assert.Len(t, report.DifficultyDistribution, 3)
}

func TestAnalyticsReportWithoutProfile(t *testing.T) {
	service := NewAnalyticsService(&stubProfiles{}, &stubProgress{}, &stubWorkouts{}, &stubRecommender{})

	_, err := service.Report(context.Background(), 7, "weekly")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
