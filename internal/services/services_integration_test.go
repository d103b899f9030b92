package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/database/dbtest"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/repository"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const integrationSecret = "integration-secret"

func newIntegrationAuth(pool *pgxpool.Pool) *AuthService {
	return NewAuthService(pool, repository.NewUserRepository(pool), repository.NewProfileRepository(pool), integrationSecret, time.Hour)
}

func registerTestUser(t *testing.T, ctx context.Context, pool *pgxpool.Pool, role string) *models.User {
	t.Helper()

	res, err := newIntegrationAuth(pool).Register(ctx, RegisterInput{
		Name:     gofakeit.Name(),
		Email:    fmt.Sprintf("it-%d-%s", time.Now().UnixNano(), gofakeit.Email()),
		Password: "correct-horse",
		Role:     role,
	})
	require.NoError(t, err)
	t.Cleanup(func() { dbtest.DeleteUsers(t, pool, res.User.ID) })
	return res.User
}

func seedExercise(t *testing.T, ctx context.Context, pool *pgxpool.Pool, bodyPart string) *models.Exercise {
	t.Helper()

	exercise := &models.Exercise{
		Title:    fmt.Sprintf("it exercise %d", time.Now().UnixNano()),
		BodyPart: &bodyPart,
	}
	require.NoError(t, repository.NewExerciseRepository(pool).Save(ctx, exercise))
	t.Cleanup(func() {
		if _, err := pool.Exec(context.Background(), "DELETE FROM exercises WHERE id = $1", exercise.ID); err != nil {
			t.Logf("cleanup exercise %d: %v", exercise.ID, err)
		}
	})
	return exercise
}

func TestRegisterCreatesStarterProfileAndLogin(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(t)
	auth := newIntegrationAuth(pool)
	user := registerTestUser(t, ctx, pool, models.RoleUser)

	me, err := auth.Me(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, me.Profile)

	records, err := repository.NewProgressRepository(pool).ListAll(ctx, me.Profile.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.DefaultWeightKG, *records[0].Weight)

	_, err = auth.Register(ctx, RegisterInput{Name: "Dup", Email: user.Email, Password: "another-pass"})
	assert.ErrorIs(t, err, ErrConflict)

	logged, err := auth.Login(ctx, user.Email, "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, logged.Token)

	_, err = auth.Login(ctx, user.Email, "wrong-horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestProfileSaveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(t)
	user := registerTestUser(t, ctx, pool, models.RoleUser)
	profileRepo := repository.NewProfileRepository(pool)
	service := NewProfileService(pool, repository.NewUserRepository(pool), profileRepo, nil)

	goals := []string{"strength", "mobility"}
	input := SaveProfileInput{Profile: repository.UpsertProfileInput{
		CurrWeight:   floatPtr(72.5),
		FitnessLevel: strPtr("INTERMEDIATE"),
		FitnessGoals: &goals,
	}}
	_, first, err := service.Save(ctx, user.ID, user.Email, input)
	require.NoError(t, err)
	_, second, err := service.Save(ctx, user.ID, user.Email, input)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, goals, second.FitnessGoals)

	var count int
	require.NoError(t, pool.QueryRow(ctx, "SELECT COUNT(*) FROM profiles WHERE user_id = $1", user.ID).Scan(&count))
	assert.Equal(t, 1, count)

	_, _, err = service.Save(ctx, user.ID+1, user.Email, input)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = service.SetPicture(ctx, user.ID, []byte("GIF89a"))
	assert.ErrorIs(t, err, ErrStorageDisabled)
}

func TestWorkoutCreateRollsBackOnUnknownExercise(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(t)
	// registered first so its cleanup runs after the user and their workouts are gone
	exercise := seedExercise(t, ctx, pool, "Back")
	user := registerTestUser(t, ctx, pool, models.RoleUser)
	workoutRepo := repository.NewWorkoutRepository(pool)
	service := NewWorkoutService(pool, repository.NewProfileRepository(pool), workoutRepo)

	_, err := service.Create(ctx, CreateWorkoutsInput{
		UserID:   user.ID,
		Workouts: []WorkoutEntry{{ExerciseID: exercise.ID, Duration: 20}, {ExerciseID: exercise.ID + 1_000_000}},
	})
	assert.ErrorIs(t, err, ErrExerciseNotFound)

	listed, err := service.ListRecent(ctx, user.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, listed)

	res, err := service.Create(ctx, CreateWorkoutsInput{
		UserID:        user.ID,
		Workouts:      []WorkoutEntry{{ExerciseID: exercise.ID}},
		Steps:         1000,
		ActiveMinutes: 5,
	})
	require.NoError(t, err)
	require.Len(t, res.Workouts, 1)
	assert.Equal(t, 15, res.Workouts[0].Duration)
	assert.Equal(t, exercise.Title, res.Workouts[0].Exercise.Title)
	require.NotNil(t, res.Activity)

	listed, err = service.ListRecent(ctx, user.ID, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, res.Workouts[0].ID, listed[0].ID)
	assert.Equal(t, 15, listed[0].Duration)
	assert.Equal(t, exercise.ID, listed[0].ExerciseID)
	require.NotNil(t, listed[0].Exercise)
	assert.Equal(t, exercise.Title, listed[0].Exercise.Title)
	require.NotNil(t, listed[0].Exercise.BodyPart)
	assert.Equal(t, "Back", *listed[0].Exercise.BodyPart)

	again, err := service.Create(ctx, CreateWorkoutsInput{
		UserID:   user.ID,
		Workouts: []WorkoutEntry{{ExerciseID: exercise.ID, Duration: 10}},
		Steps:    500,
	})
	require.NoError(t, err)
	assert.Equal(t, res.Activity.ID, again.Activity.ID)
	assert.Equal(t, 1500, again.Activity.Steps)
}

func TestLogPlanAndSteps(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(t)
	exercise := seedExercise(t, ctx, pool, "Legs")
	user := registerTestUser(t, ctx, pool, models.RoleUser)

	userRepo := repository.NewUserRepository(pool)
	profileRepo := repository.NewProfileRepository(pool)
	service := NewActivityService(
		pool,
		userRepo,
		profileRepo,
		repository.NewSubscriptionRepository(pool),
		repository.NewWorkoutRepository(pool),
		repository.NewActivityRepository(pool),
		repository.NewProgressRepository(pool),
	)

	saved, err := service.LogPlan(ctx, LogPlanInput{
		UserID: user.ID,
		WorkoutPlan: []PlanExercise{
			{ExerciseID: exercise.ID, Title: exercise.Title, BodyPart: exercise.BodyPart, Duration: 25},
		},
		Steps:          3000,
		ActiveMinutes:  30,
		CaloriesBurned: 240,
	})
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, exercise.ID, saved[0].ExerciseID)

	activity, calories, err := service.LogSteps(ctx, user.ID, 1000, 10)
	require.NoError(t, err)
	assert.Equal(t, 1000, activity.Steps)
	assert.InDelta(t, 80.0, calories, 1e-9)

	profile, err := profileRepo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1000, profile.TotalSteps)

	dash, err := service.Dashboard(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, dash.Statistics.TotalWorkouts)
	assert.Equal(t, 4000, dash.Statistics.TotalSteps)
	assert.InDelta(t, 240.0, dash.Statistics.CaloriesBurned, 1e-9)
	assert.Equal(t, 1, dash.Statistics.CurrentStreak)
	assert.Equal(t, 25, dash.Statistics.TotalDuration)
	require.Len(t, dash.Workouts, 1)
	assert.Equal(t, saved[0].ID, dash.Workouts[0].ID)
	assert.Equal(t, exercise.Title, dash.Workouts[0].ExerciseName)
	require.NotNil(t, dash.Workouts[0].BodyPart)
	assert.Equal(t, "Legs", *dash.Workouts[0].BodyPart)
}

func TestIntakeCreateIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(t)
	user := registerTestUser(t, ctx, pool, models.RoleUser)

	nutritionRepo := repository.NewNutritionRepository(pool)
	item := &models.Nutrition{FoodItem: fmt.Sprintf("it food %d", time.Now().UnixNano()), Calories: 120}
	inserted, err := nutritionRepo.InsertIfAbsent(ctx, item)
	require.NoError(t, err)
	require.True(t, inserted)
	t.Cleanup(func() {
		if _, err := pool.Exec(context.Background(), "DELETE FROM nutrition WHERE food_item = $1", item.FoodItem); err != nil {
			t.Logf("cleanup nutrition: %v", err)
		}
	})
	var nutritionID int64
	require.NoError(t, pool.QueryRow(ctx, "SELECT id FROM nutrition WHERE food_item = $1", item.FoodItem).Scan(&nutritionID))

	profileRepo := repository.NewProfileRepository(pool)
	service := NewIntakeService(pool, profileRepo, repository.NewIntakeRepository(pool))

	_, err = service.Create(ctx, user.ID, "dinner", []IntakeItem{
		{NutritionID: nutritionID, Quantity: 1},
		{NutritionID: nutritionID + 1_000_000, Quantity: 2},
	})
	assert.ErrorIs(t, err, ErrNutritionNotFound)

	list, err := service.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	created, err := service.Create(ctx, user.ID, "dinner", []IntakeItem{{NutritionID: nutritionID, Quantity: 1.5}})
	require.NoError(t, err)
	require.Len(t, created, 1)

	list, err = service.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Nutrition)
	assert.Equal(t, item.FoodItem, list[0].Nutrition.FoodItem)

	require.NoError(t, service.Delete(ctx, user.ID, created[0].ID))
}

func TestUserUpdateBatchIsAtomic(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(t)
	user := registerTestUser(t, ctx, pool, models.RoleUser)
	userRepo := repository.NewUserRepository(pool)
	service := NewUserService(pool, userRepo, repository.NewProfileRepository(pool))

	renamed := "Renamed Person"
	_, err := service.Update(ctx, UpdateUserInput{
		ActorID:  user.ID,
		Email:    user.Email,
		User:     repository.UpdateUserInput{Name: &renamed},
		Progress: &ProgressEntry{Weight: floatPtr(68), CaloriesBurnt: 120},
		Workout:  &WorkoutEntry{ExerciseID: 9_000_000_000, Duration: 30},
	})
	assert.ErrorIs(t, err, ErrExerciseNotFound)

	unchanged, err := userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Name, unchanged.Name)

	_, err = service.Update(ctx, UpdateUserInput{ActorID: user.ID + 1, Email: user.Email, User: repository.UpdateUserInput{Name: &renamed}})
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = service.Update(ctx, UpdateUserInput{ActorID: user.ID, Email: "nobody-" + user.Email, User: repository.UpdateUserInput{Name: &renamed}})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := service.Update(ctx, UpdateUserInput{
		ActorID:  user.ID,
		Email:    user.Email,
		User:     repository.UpdateUserInput{Name: &renamed},
		Progress: &ProgressEntry{Weight: floatPtr(68)},
	})
	require.NoError(t, err)
	assert.Equal(t, renamed, updated.Name)
	require.NotNil(t, updated.Profile)

	records, err := repository.NewProgressRepository(pool).ListAll(ctx, updated.Profile.ID)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestUserUpdateWorkoutUsesDefaultDuration(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(t)
	exercise := seedExercise(t, ctx, pool, "Core")
	user := registerTestUser(t, ctx, pool, models.RoleUser)
	profileRepo := repository.NewProfileRepository(pool)
	workoutRepo := repository.NewWorkoutRepository(pool)
	service := NewUserService(pool, repository.NewUserRepository(pool), profileRepo)

	updated, err := service.Update(ctx, UpdateUserInput{
		ActorID: user.ID,
		Email:   user.Email,
		Workout: &WorkoutEntry{ExerciseID: exercise.ID},
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Profile)

	workouts, err := NewWorkoutService(pool, profileRepo, workoutRepo).ListRecent(ctx, user.ID, 0)
	require.NoError(t, err)
	require.Len(t, workouts, 1)
	assert.Equal(t, defaultWorkoutDuration, workouts[0].Duration)

	_, err = service.Update(ctx, UpdateUserInput{
		ActorID: user.ID,
		Email:   user.Email,
		Workout: &WorkoutEntry{ExerciseID: exercise.ID, Duration: -5},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
