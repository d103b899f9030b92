package services

import (
	"context"
	"time"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/repository"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/stats"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/tracing"
)

const recommendationLimit = 5

type analyticsProgressReader interface {
	ListSince(ctx context.Context, profileID int64, since time.Time) ([]models.ProgressRecord, error)
	ListAll(ctx context.Context, profileID int64) ([]models.ProgressRecord, error)
}

type analyticsWorkoutReader interface {
	ListSinceWithExercise(ctx context.Context, profileID int64, since time.Time) ([]models.Workout, error)
	ListTraits(ctx context.Context, profileID int64) ([]repository.WorkoutTraits, error)
}

type exerciseRecommender interface {
	ListByBodyParts(ctx context.Context, bodyParts []string, limit int) ([]models.Exercise, error)
}

type AnalyticsService struct {
	profileRepo  profileReader
	progressRepo analyticsProgressReader
	workoutRepo  analyticsWorkoutReader
	exerciseRepo exerciseRecommender
	now          func() time.Time
}

func NewAnalyticsService(
	profileRepo profileReader,
	progressRepo analyticsProgressReader,
	workoutRepo analyticsWorkoutReader,
	exerciseRepo exerciseRecommender,
) *AnalyticsService {
	return &AnalyticsService{
		profileRepo:  profileRepo,
		progressRepo: progressRepo,
		workoutRepo:  workoutRepo,
		exerciseRepo: exerciseRepo,
		now:          time.Now,
	}
}

func (s *AnalyticsService) Report(ctx context.Context, userID int64, timeFrame string) (report *models.AnalyticsReport, err error) {
	ctx, span := tracing.Tracer.Start(ctx, "analyticsService.report")
	defer func() { tracing.End(span, err) }()

	if userID <= 0 {
		return nil, ErrInvalidInput
	}
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, notFound(err, ErrProfileNotFound)
	}
	start := stats.WindowStart(s.now(), timeFrame)

	recent, err := s.progressRepo.ListSince(ctx, profile.ID, start)
	if err != nil {
		return nil, err
	}
	history, err := s.progressRepo.ListAll(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	workouts, err := s.workoutRepo.ListSinceWithExercise(ctx, profile.ID, start)
	if err != nil {
		return nil, err
	}
	traits, err := s.workoutRepo.ListTraits(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	report = &models.AnalyticsReport{
		Calories:         make([]models.SeriesPoint, 0, len(recent)),
		ExerciseTime:     make([]models.SeriesPoint, 0, len(workouts)),
		Weight:           make([]models.SeriesPoint, 0, len(history)),
		PredictiveWeight: predictWeight(history),
	}
	for _, r := range recent {
		report.Calories = append(report.Calories, models.SeriesPoint{Date: stats.FormatDay(r.RecordDate), Value: r.CaloriesBurnt})
	}
	for _, w := range workouts {
		report.ExerciseTime = append(report.ExerciseTime, models.SeriesPoint{Date: stats.FormatDay(w.WorkoutDate), Value: float64(w.Duration)})
	}
	for _, r := range history {
		report.Weight = append(report.Weight, models.SeriesPoint{Date: stats.FormatDay(r.RecordDate), Value: valueOr(r.Weight)})
	}

	bodyParts := make([]*string, 0, len(traits))
	levels := make([]*string, 0, len(traits))
	for _, t := range traits {
		bodyParts = append(bodyParts, t.BodyPart)
		levels = append(levels, t.Level)
	}
	bodyPartCounts := stats.BodyPartCounts(bodyParts)
	report.BodyPartDistribution = namedCounts(bodyPartCounts)
	report.DifficultyDistribution = namedCounts(stats.DifficultyCounts(levels))

	trained := make([]string, 0, len(bodyPartCounts))
	for _, c := range bodyPartCounts {
		trained = append(trained, c.Name)
	}
	exercises, err := s.exerciseRepo.ListByBodyParts(ctx, trained, recommendationLimit)
	if err != nil {
		return nil, err
	}
	report.ExerciseRecommendations = make([]models.ExerciseRecommendation, 0, len(exercises))
	for _, e := range exercises {
		report.ExerciseRecommendations = append(report.ExerciseRecommendations, models.ExerciseRecommendation{
			Title:        e.Title,
			Description:  stringOr(e.Description, ""),
			BodyPart:     stringOr(e.BodyPart, "General"),
			Type:         stringOr(e.Type, "Strength"),
			Level:        stringOr(e.Level, stats.LevelBeginner),
			YoutubeVideo: e.YoutubeVideo,
		})
	}
	return report, nil
}

// predictWeight returns the recorded weights followed by four weekly projected
// points. Without two weighed records there is nothing to project from and the
// result is empty.
func predictWeight(history []models.ProgressRecord) []models.WeightPoint {
	var weighed []models.ProgressRecord
	for _, r := range history {
		if r.Weight != nil {
			weighed = append(weighed, r)
		}
	}
	if len(weighed) < 2 {
		return []models.WeightPoint{}
	}

	out := make([]models.WeightPoint, 0, len(history)+stats.ProjectionWeeks)
	for _, r := range history {
		out = append(out, models.WeightPoint{Date: stats.FormatDay(r.RecordDate), Value: r.Weight})
	}

	prev, last := weighed[len(weighed)-2], weighed[len(weighed)-1]
	projected := stats.ProjectWeight(
		stats.Sample{At: prev.RecordDate, Value: *prev.Weight},
		stats.Sample{At: last.RecordDate, Value: *last.Weight},
	)
	for _, p := range projected {
		value := p.Value
		out = append(out, models.WeightPoint{Date: stats.FormatDay(p.At), Value: &value, IsPrediction: true})
	}
	return out
}

func namedCounts(counts []stats.Count) []models.NamedCount {
	out := make([]models.NamedCount, 0, len(counts))
	for _, c := range counts {
		out = append(out, models.NamedCount{Name: c.Name, Value: c.Value})
	}
	return out
}
