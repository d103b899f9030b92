package repository

import (
	"context"
	"time"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
)

type WorkoutRepository struct {
	db DBTX
}

func NewWorkoutRepository(db DBTX) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

type CreateWorkoutInput struct {
	ProfileID  int64
	ExerciseID int64
	Duration   int
	Date       *time.Time
}

func (r *WorkoutRepository) Create(ctx context.Context, input CreateWorkoutInput) (*models.Workout, error) {
	query := `
		INSERT INTO workouts (profile_id, exercise_id, duration, workout_date)
		VALUES ($1, $2, $3, COALESCE($4, NOW()))
		RETURNING id, profile_id, exercise_id, duration, workout_date
	`
	var workout models.Workout
	err := r.db.QueryRow(ctx, query, input.ProfileID, input.ExerciseID, input.Duration, input.Date).Scan(
		&workout.ID,
		&workout.ProfileID,
		&workout.ExerciseID,
		&workout.Duration,
		&workout.WorkoutDate,
	)
	if err != nil {
		return nil, err
	}
	return &workout, nil
}

// ListRecentWithExercise returns the newest workouts first with the exercise attached.
func (r *WorkoutRepository) ListRecentWithExercise(ctx context.Context, profileID int64, limit int) ([]models.Workout, error) {
	rows, err := r.db.Query(ctx, `
		SELECT w.id, w.profile_id, w.exercise_id, w.duration, w.workout_date,
			e.id, e.title, e.body_part, e.type, e.level, e.description, e.youtube_video
		FROM workouts w
		JOIN exercises e ON e.id = w.exercise_id
		WHERE w.profile_id = $1
		ORDER BY w.workout_date DESC, w.id DESC
		LIMIT $2
	`, profileID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := make([]models.Workout, 0)
	for rows.Next() {
		var (
			workout  models.Workout
			exercise models.Exercise
		)
		if err := rows.Scan(
			&workout.ID,
			&workout.ProfileID,
			&workout.ExerciseID,
			&workout.Duration,
			&workout.WorkoutDate,
			&exercise.ID,
			&exercise.Title,
			&exercise.BodyPart,
			&exercise.Type,
			&exercise.Level,
			&exercise.Description,
			&exercise.YoutubeVideo,
		); err != nil {
			return nil, err
		}
		workout.Exercise = &exercise
		workouts = append(workouts, workout)
	}
	return workouts, rows.Err()
}


// ListSinceWithExercise returns workouts on or after since in chronological order.
func (r *WorkoutRepository) ListSinceWithExercise(ctx context.Context, profileID int64, since time.Time) ([]models.Workout, error) {
	rows, err := r.db.Query(ctx, `
		SELECT w.id, w.profile_id, w.exercise_id, w.duration, w.workout_date,
			e.id, e.title, e.body_part, e.type, e.level, e.description, e.youtube_video
		FROM workouts w
		JOIN exercises e ON e.id = w.exercise_id
		WHERE w.profile_id = $1
		  AND w.workout_date >= $2
		ORDER BY w.workout_date ASC, w.id ASC
	`, profileID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := make([]models.Workout, 0)
	for rows.Next() {
		var (
			workout  models.Workout
			exercise models.Exercise
		)
		if err := rows.Scan(
			&workout.ID,
			&workout.ProfileID,
			&workout.ExerciseID,
			&workout.Duration,
			&workout.WorkoutDate,
			&exercise.ID,
			&exercise.Title,
			&exercise.BodyPart,
			&exercise.Type,
			&exercise.Level,
			&exercise.Description,
			&exercise.YoutubeVideo,
		); err != nil {
			return nil, err
		}
		workout.Exercise = &exercise
		workouts = append(workouts, workout)
	}
	return workouts, rows.Err()
}

type WorkoutTraits struct {
	BodyPart *string
	Level    *string
}

// ListTraits returns the body part and level of the exercise behind every workout
// the profile has logged.
func (r *WorkoutRepository) ListTraits(ctx context.Context, profileID int64) ([]WorkoutTraits, error) {
	rows, err := r.db.Query(ctx, `
		SELECT e.body_part, e.level
		FROM workouts w
		LEFT JOIN exercises e ON e.id = w.exercise_id
		WHERE w.profile_id = $1
		ORDER BY w.workout_date ASC, w.id ASC
	`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	traits := make([]WorkoutTraits, 0)
	for rows.Next() {
		var t WorkoutTraits
		if err := rows.Scan(&t.BodyPart, &t.Level); err != nil {
			return nil, err
		}
		traits = append(traits, t)
	}
	return traits, rows.Err()
}
