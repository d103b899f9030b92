package repository

import (
	"context"
	"time"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
	"github.com/jackc/pgx/v5"
)

const progressColumns = `id, profile_id, record_date, weight, height, calories_burnt, fat_percentage`

type ProgressRepository struct {
	db DBTX
}

func NewProgressRepository(db DBTX) *ProgressRepository {
	return &ProgressRepository{db: db}
}

type CreateProgressInput struct {
	ProfileID     int64
	RecordDate    *time.Time
	Weight        *float64
	Height        *float64
	CaloriesBurnt float64
	FatPercentage *float64
}

func scanProgress(row pgx.Row, record *models.ProgressRecord) error {
	return row.Scan(
		&record.ID,
		&record.ProfileID,
		&record.RecordDate,
		&record.Weight,
		&record.Height,
		&record.CaloriesBurnt,
		&record.FatPercentage,
	)
}

func (r *ProgressRepository) Create(ctx context.Context, input CreateProgressInput) (*models.ProgressRecord, error) {
	query := `
		INSERT INTO progress_records (profile_id, record_date, weight, height, calories_burnt, fat_percentage)
		VALUES ($1, COALESCE($2, NOW()), $3, $4, $5, $6)
		RETURNING ` + progressColumns
	var record models.ProgressRecord
	err := scanProgress(r.db.QueryRow(ctx, query,
		input.ProfileID,
		input.RecordDate,
		input.Weight,
		input.Height,
		input.CaloriesBurnt,
		input.FatPercentage,
	), &record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *ProgressRepository) list(ctx context.Context, query string, args ...any) ([]models.ProgressRecord, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]models.ProgressRecord, 0)
	for rows.Next() {
		var record models.ProgressRecord
		if err := scanProgress(rows, &record); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// ListRecent returns the newest records first.
func (r *ProgressRepository) ListRecent(ctx context.Context, profileID int64, limit int) ([]models.ProgressRecord, error) {
	return r.list(ctx, `
		SELECT `+progressColumns+`
		FROM progress_records
		WHERE profile_id = $1
		ORDER BY record_date DESC, id DESC
		LIMIT $2
	`, profileID, limit)
}

// ListSince returns records on or after since, oldest first.
func (r *ProgressRepository) ListSince(ctx context.Context, profileID int64, since time.Time) ([]models.ProgressRecord, error) {
	return r.list(ctx, `
		SELECT `+progressColumns+`
		FROM progress_records
		WHERE profile_id = $1
		  AND record_date >= $2
		ORDER BY record_date ASC, id ASC
	`, profileID, since)
}

// ListAll returns the full history oldest first.
func (r *ProgressRepository) ListAll(ctx context.Context, profileID int64) ([]models.ProgressRecord, error) {
	return r.list(ctx, `
		SELECT `+progressColumns+`
		FROM progress_records
		WHERE profile_id = $1
		ORDER BY record_date ASC, id ASC
	`, profileID)
}

func (r *ProgressRepository) SumCalories(ctx context.Context, profileID int64) (float64, error) {
	var total float64
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(calories_burnt), 0)
		FROM progress_records
		WHERE profile_id = $1
	`, profileID).Scan(&total)
	return total, err
}
