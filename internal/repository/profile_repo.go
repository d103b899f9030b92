package repository

import (
	"context"
	"time"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
	"github.com/jackc/pgx/v5"
)

const profileColumns = `id, user_id, gender, birthday, curr_weight, curr_height, goal_weight,
	fitness_level, fitness_goals, profile_pic, total_steps, calories_burnt, created_at, updated_at`

type ProfileRepository struct {
	db DBTX
}

func NewProfileRepository(db DBTX) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func scanProfile(row pgx.Row, profile *models.Profile) error {
	return row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Gender,
		&profile.Birthday,
		&profile.CurrWeight,
		&profile.CurrHeight,
		&profile.GoalWeight,
		&profile.FitnessLevel,
		&profile.FitnessGoals,
		&profile.ProfilePic,
		&profile.TotalSteps,
		&profile.CaloriesBurnt,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
}

// CreateDefault inserts the starter profile every new account gets.
func (r *ProfileRepository) CreateDefault(ctx context.Context, userID int64) (*models.Profile, error) {
	query := `
		INSERT INTO profiles (user_id, curr_weight, curr_height)
		VALUES ($1, $2, $3)
		RETURNING ` + profileColumns
	var profile models.Profile
	if err := scanProfile(r.db.QueryRow(ctx, query, userID, models.DefaultWeightKG, models.DefaultHeightCM), &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	var profile models.Profile
	err := scanProfile(r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID), &profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) ListByUserIDs(ctx context.Context, userIDs []int64) (map[int64]*models.Profile, error) {
	rows, err := r.db.Query(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = ANY($1)`, userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := make(map[int64]*models.Profile, len(userIDs))
	for rows.Next() {
		var profile models.Profile
		if err := scanProfile(rows, &profile); err != nil {
			return nil, err
		}
		profiles[profile.UserID] = &profile
	}
	return profiles, rows.Err()
}

type UpsertProfileInput struct {
	Gender       *string
	Birthday     *time.Time
	CurrWeight   *float64
	CurrHeight   *float64
	GoalWeight   *float64
	FitnessLevel *string
	FitnessGoals *[]string
	ProfilePic   *string
}

// Upsert creates the profile when the user has none and otherwise overwrites only the
// supplied fields. user_id is unique so repeated calls converge on one row.
func (r *ProfileRepository) Upsert(ctx context.Context, userID int64, in UpsertProfileInput) (*models.Profile, error) {
	var goals any
	if in.FitnessGoals != nil {
		list := *in.FitnessGoals
		if list == nil {
			list = []string{}
		}
		goals = list
	}
	query := `
		INSERT INTO profiles (user_id, gender, birthday, curr_weight, curr_height, goal_weight,
			fitness_level, fitness_goals, profile_pic)
		VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, 'BEGINNER'), COALESCE($8, '{}'::text[]), $9)
		ON CONFLICT (user_id) DO UPDATE
		SET gender = COALESCE($2, profiles.gender),
			birthday = COALESCE($3, profiles.birthday),
			curr_weight = COALESCE($4, profiles.curr_weight),
			curr_height = COALESCE($5, profiles.curr_height),
			goal_weight = COALESCE($6, profiles.goal_weight),
			fitness_level = COALESCE($7, profiles.fitness_level),
			fitness_goals = COALESCE($8, profiles.fitness_goals),
			profile_pic = COALESCE($9, profiles.profile_pic),
			updated_at = NOW()
		RETURNING ` + profileColumns
	var profile models.Profile
	err := scanProfile(r.db.QueryRow(ctx, query,
		userID,
		in.Gender,
		in.Birthday,
		in.CurrWeight,
		in.CurrHeight,
		in.GoalWeight,
		in.FitnessLevel,
		goals,
		in.ProfilePic,
	), &profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// AddActivityTotals bumps the running step and calorie counters.
func (r *ProfileRepository) AddActivityTotals(ctx context.Context, profileID int64, steps int, calories float64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE profiles
		SET total_steps = total_steps + $1,
			calories_burnt = calories_burnt + $2,
			updated_at = NOW()
		WHERE id = $3
	`, steps, calories, profileID)
	return err
}
