package repository

import (
	"context"
	"time"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
	"github.com/jackc/pgx/v5"
)

const activityColumns = `id, profile_id, workout_id, steps, minutes, activity_date`

type ActivityRepository struct {
	db DBTX
}

func NewActivityRepository(db DBTX) *ActivityRepository {
	return &ActivityRepository{db: db}
}

type CreateActivityInput struct {
	ProfileID int64
	WorkoutID *int64
	Steps     int
	Minutes   int
}

func scanActivity(row pgx.Row, activity *models.Activity) error {
	return row.Scan(
		&activity.ID,
		&activity.ProfileID,
		&activity.WorkoutID,
		&activity.Steps,
		&activity.Minutes,
		&activity.ActivityDate,
	)
}

func (r *ActivityRepository) Create(ctx context.Context, input CreateActivityInput) (*models.Activity, error) {
	query := `
		INSERT INTO activities (profile_id, workout_id, steps, minutes)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + activityColumns
	var activity models.Activity
	if err := scanActivity(r.db.QueryRow(ctx, query, input.ProfileID, input.WorkoutID, input.Steps, input.Minutes), &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *ActivityRepository) ListRecent(ctx context.Context, profileID int64, limit int) ([]models.Activity, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+activityColumns+`
		FROM activities
		WHERE profile_id = $1
		ORDER BY activity_date DESC, id DESC
		LIMIT $2
	`, profileID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := make([]models.Activity, 0)
	for rows.Next() {
		var activity models.Activity
		if err := scanActivity(rows, &activity); err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}
	return activities, rows.Err()
}

// GetForDayForUpdate locks the profile's activity row for the day containing day
// (UTC). It returns pgx.ErrNoRows when none exists.
func (r *ActivityRepository) GetForDayForUpdate(ctx context.Context, profileID int64, day time.Time) (*models.Activity, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	var activity models.Activity
	err := scanActivity(r.db.QueryRow(ctx, `
		SELECT `+activityColumns+`
		FROM activities
		WHERE profile_id = $1
		  AND activity_date >= $2
		  AND activity_date < $3
		ORDER BY id DESC
		LIMIT 1
		FOR UPDATE
	`, profileID, start, start.AddDate(0, 0, 1)), &activity)
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *ActivityRepository) AddTo(ctx context.Context, activityID int64, steps, minutes int) (*models.Activity, error) {
	var activity models.Activity
	err := scanActivity(r.db.QueryRow(ctx, `
		UPDATE activities
		SET steps = steps + $1,
			minutes = minutes + $2
		WHERE id = $3
		RETURNING `+activityColumns, steps, minutes, activityID), &activity)
	if err != nil {
		return nil, err
	}
	return &activity, nil
}
