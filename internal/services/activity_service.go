package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/repository"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/stats"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/tracing"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	dashboardWorkoutLimit  = 20
	dashboardActivityLimit = 30
	dashboardProgressLimit = 12

	defaultWorkoutDuration = 15
	freePlan               = "Free"
)

type userReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type subscriptionReader interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Subscription, error)
}

type dashboardWorkoutReader interface {
	ListRecentWithExercise(ctx context.Context, profileID int64, limit int) ([]models.Workout, error)
}

type dashboardActivityReader interface {
	ListRecent(ctx context.Context, profileID int64, limit int) ([]models.Activity, error)
}

type dashboardProgressReader interface {
	ListRecent(ctx context.Context, profileID int64, limit int) ([]models.ProgressRecord, error)
	SumCalories(ctx context.Context, profileID int64) (float64, error)
}

type ActivityService struct {
	db               *pgxpool.Pool
	userRepo         userReader
	profileRepo      profileReader
	subscriptionRepo subscriptionReader
	workoutRepo      dashboardWorkoutReader
	activityRepo     dashboardActivityReader
	progressRepo     dashboardProgressReader
}

func NewActivityService(
	db *pgxpool.Pool,
	userRepo userReader,
	profileRepo profileReader,
	subscriptionRepo subscriptionReader,
	workoutRepo dashboardWorkoutReader,
	activityRepo dashboardActivityReader,
	progressRepo dashboardProgressReader,
) *ActivityService {
	return &ActivityService{
		db:               db,
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		subscriptionRepo: subscriptionRepo,
		workoutRepo:      workoutRepo,
		activityRepo:     activityRepo,
		progressRepo:     progressRepo,
	}
}

// Dashboard assembles the account overview. Each relation is capped at a fixed
// row count and the statistics are computed over those rows, except calories
// which sum every progress record.
func (s *ActivityService) Dashboard(ctx context.Context, userID int64) (dash *models.Dashboard, err error) {
	ctx, span := tracing.Tracer.Start(ctx, "activityService.dashboard")
	defer func() { tracing.End(span, err) }()

	if userID <= 0 {
		return nil, ErrInvalidInput
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}

	dash = &models.Dashboard{
		Workouts:        make([]models.DashboardWorkout, 0),
		Activities:      make([]models.DashboardActivity, 0),
		ProgressRecords: make([]models.DashboardProgress, 0),
	}
	first, last := splitName(user.Name)
	phone := ""
	if user.Phone != nil {
		phone = *user.Phone
	}
	dash.PersonalInfo = models.PersonalInfo{
		FirstName:   first,
		LastName:    last,
		Email:       user.Email,
		PhoneNumber: phone,
	}
	dash.FitnessInfo.FitnessGoals = []string{}
	dash.AccountInfo = models.AccountInfo{
		Username:     strings.SplitN(user.Email, "@", 2)[0],
		MemberSince:  stats.FormatDay(user.CreatedAt),
		Subscription: freePlan,
		NotificationPreferences: models.NotificationPreferences{
			Email: user.EmailNotifications,
			Push:  user.PushNotifications,
			SMS:   user.SMSNotifications,
		},
		DataSharing: models.DataSharing{
			AnonymizedResearch: user.ResearchConsent,
			ThirdPartyApps:     user.ThirdPartySharing,
		},
	}

	sub, err := s.subscriptionRepo.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		dash.AccountInfo.Subscription = sub.PlanPurchased
		dash.AccountInfo.SubscriptionRenewal = stats.FormatDay(sub.ExpDate)
	case !errors.Is(err, pgx.ErrNoRows):
		return nil, err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dash, nil
		}
		return nil, err
	}
	fillProfileInfo(dash, profile)

	if err := s.fillHistory(ctx, dash, profile.ID); err != nil {
		return nil, err
	}
	return dash, nil
}

func fillProfileInfo(dash *models.Dashboard, p *models.Profile) {
	if p.Gender != nil {
		dash.PersonalInfo.Gender = *p.Gender
	}
	if p.Birthday != nil {
		dash.PersonalInfo.Birthdate = stats.FormatDay(*p.Birthday)
	}
	dash.PersonalInfo.Height = valueOr(p.CurrHeight)
	dash.PersonalInfo.CurrentWeight = valueOr(p.CurrWeight)
	dash.PersonalInfo.GoalWeight = valueOr(p.GoalWeight)
	if p.ProfilePic != nil {
		dash.PersonalInfo.ProfileImage = *p.ProfilePic
	}
	if p.FitnessLevel != nil {
		dash.FitnessInfo.FitnessLevel = *p.FitnessLevel
	}
	if p.FitnessGoals != nil {
		dash.FitnessInfo.FitnessGoals = p.FitnessGoals
	}
}

func (s *ActivityService) fillHistory(ctx context.Context, dash *models.Dashboard, profileID int64) error {
	workouts, err := s.workoutRepo.ListRecentWithExercise(ctx, profileID, dashboardWorkoutLimit)
	if err != nil {
		return err
	}
	activities, err := s.activityRepo.ListRecent(ctx, profileID, dashboardActivityLimit)
	if err != nil {
		return err
	}
	records, err := s.progressRepo.ListRecent(ctx, profileID, dashboardProgressLimit)
	if err != nil {
		return err
	}
	calories, err := s.progressRepo.SumCalories(ctx, profileID)
	if err != nil {
		return err
	}

	totalDuration := 0
	dates := make([]time.Time, 0, len(workouts))
	for _, w := range workouts {
		totalDuration += w.Duration
		dates = append(dates, w.WorkoutDate)
		dash.Workouts = append(dash.Workouts, dashboardWorkout(w))
	}
	totalSteps := 0
	for _, a := range activities {
		totalSteps += a.Steps
		dash.Activities = append(dash.Activities, models.DashboardActivity{
			ID:      a.ID,
			Date:    a.ActivityDate,
			Steps:   a.Steps,
			Minutes: a.Minutes,
		})
	}
	for _, r := range records {
		dash.ProgressRecords = append(dash.ProgressRecords, models.DashboardProgress{
			RecordDate:      r.RecordDate,
			Weight:          valueOr(r.Weight),
			Height:          valueOr(r.Height),
			CaloriesBurnt:   r.CaloriesBurnt,
			FatPercentage:   valueOr(r.FatPercentage),
			Steps:           monthlySteps(activities, r.RecordDate),
			WorkoutDuration: monthlyDuration(workouts, r.RecordDate),
		})
	}

	current, longest := stats.Streaks(dates)
	dash.Statistics = models.DashboardStatistics{
		TotalWorkouts:        len(workouts),
		TotalDuration:        totalDuration,
		TotalSteps:           totalSteps,
		AverageWorkoutLength: stats.RoundedAverage(totalDuration, len(workouts)),
		LongestStreak:        longest,
		CurrentStreak:        current,
		CaloriesBurned:       calories,
	}
	return nil
}

func sameMonth(a, b time.Time) bool {
	a, b = a.UTC(), b.UTC()
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// monthlySteps sums the listed activities falling in the calendar month of day.
func monthlySteps(activities []models.Activity, day time.Time) int {
	total := 0
	for _, a := range activities {
		if sameMonth(a.ActivityDate, day) {
			total += a.Steps
		}
	}
	return total
}

func monthlyDuration(workouts []models.Workout, day time.Time) int {
	total := 0
	for _, w := range workouts {
		if sameMonth(w.WorkoutDate, day) {
			total += w.Duration
		}
	}
	return total
}

func dashboardWorkout(w models.Workout) models.DashboardWorkout {
	out := models.DashboardWorkout{
		ID:                  w.ID,
		Date:                w.WorkoutDate,
		Duration:            w.Duration,
		ExerciseType:        "Other",
		ExerciseName:        "Workout",
		ExerciseLevel:       stats.LevelBeginner,
		ExerciseDescription: "No description",
		ExerciseID:          w.ExerciseID,
	}
	if e := w.Exercise; e != nil {
		out.ExerciseName = e.Title
		out.ExerciseType = stringOr(e.Type, out.ExerciseType)
		out.ExerciseLevel = stringOr(e.Level, out.ExerciseLevel)
		out.ExerciseDescription = stringOr(e.Description, out.ExerciseDescription)
		out.YoutubeVideo = e.YoutubeVideo
		out.BodyPart = e.BodyPart
	}
	return out
}

type PlanExercise struct {
	ExerciseID   int64
	Title        string
	BodyPart     *string
	Description  *string
	Type         *string
	Level        *string
	YoutubeVideo *string
	Duration     int
	Date         *time.Time
}

type LogPlanInput struct {
	UserID         int64
	WorkoutPlan    []PlanExercise
	Steps          int
	ActiveMinutes  int
	CaloriesBurned float64
}

// LogPlan records a finished workout plan. Exercises are upserted into the
// catalog, every entry becomes a workout, and steps or minutes become one
// activity linked to the first workout. A progress record carries the calories.
func (s *ActivityService) LogPlan(ctx context.Context, input LogPlanInput) ([]models.Workout, error) {
	if input.UserID <= 0 || input.WorkoutPlan == nil || input.Steps < 0 || input.ActiveMinutes < 0 {
		return nil, ErrInvalidInput
	}
	for _, e := range input.WorkoutPlan {
		if strings.TrimSpace(e.Title) == "" || e.Duration < 0 {
			return nil, ErrInvalidInput
		}
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
	workoutRepo := repository.NewWorkoutRepository(tx)
	saved := make([]models.Workout, 0, len(input.WorkoutPlan))
	for _, e := range input.WorkoutPlan {
		exercise := &models.Exercise{
			ID:           e.ExerciseID,
			Title:        strings.TrimSpace(e.Title),
			BodyPart:     e.BodyPart,
			Type:         e.Type,
			Level:        e.Level,
			Description:  e.Description,
			YoutubeVideo: e.YoutubeVideo,
		}
		if err := exerciseRepo.Save(ctx, exercise); err != nil {
			return nil, err
		}

		workout, err := workoutRepo.Create(ctx, repository.CreateWorkoutInput{
			ProfileID:  profile.ID,
			ExerciseID: exercise.ID,
			Duration:   workoutMinutes(e.Duration),
			Date:       e.Date,
		})
		if err != nil {
			return nil, err
		}
		workout.Exercise = exercise
		saved = append(saved, *workout)
	}

	if input.Steps > 0 || input.ActiveMinutes > 0 {
		var workoutID *int64
		if len(saved) > 0 {
			workoutID = &saved[0].ID
		}
		if _, err := repository.NewActivityRepository(tx).Create(ctx, repository.CreateActivityInput{
			ProfileID: profile.ID,
			WorkoutID: workoutID,
			Steps:     input.Steps,
			Minutes:   input.ActiveMinutes,
		}); err != nil {
			return nil, err
		}
	}

	if _, err := repository.NewProgressRepository(tx).Create(ctx, repository.CreateProgressInput{
		ProfileID:     profile.ID,
		CaloriesBurnt: input.CaloriesBurned,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return saved, nil
}

// LogSteps stores a standalone step log and adds its estimated calories to the
// profile's running totals.
func (s *ActivityService) LogSteps(ctx context.Context, userID int64, steps, minutes int) (*models.Activity, float64, error) {
	if userID <= 0 || steps < 0 || minutes < 0 {
		return nil, 0, ErrInvalidInput
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	profileRepo := repository.NewProfileRepository(tx)
	profile, err := profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, 0, notFound(err, ErrProfileNotFound)
	}

	activity, err := repository.NewActivityRepository(tx).Create(ctx, repository.CreateActivityInput{
		ProfileID: profile.ID,
		Steps:     steps,
		Minutes:   minutes,
	})
	if err != nil {
		return nil, 0, err
	}

	calories := stats.ActivityCalories(steps, minutes)
	if err := profileRepo.AddActivityTotals(ctx, profile.ID, steps, calories); err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, err
	}
	return activity, calories, nil
}

func splitName(name string) (string, string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

func valueOr(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func stringOr(v *string, fallback string) string {
	if v == nil || *v == "" {
		return fallback
	}
	return *v
}
