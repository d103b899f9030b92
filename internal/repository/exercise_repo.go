package repository

import (
	"context"
	"errors"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
	"github.com/jackc/pgx/v5"
)

const exerciseColumns = `id, title, body_part, type, level, description, youtube_video`

type ExerciseRepository struct {
	db DBTX
}

func NewExerciseRepository(db DBTX) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

type ExerciseFilter struct {
	BodyPart string
	Search   string
	Limit    int
	Offset   int
}

func (r *ExerciseRepository) List(ctx context.Context, filter ExerciseFilter) ([]models.Exercise, int, error) {
	args := pgx.NamedArgs{
		"bodyPart": filter.BodyPart,
		"search":   filter.Search,
		"limit":    filter.Limit,
		"offset":   filter.Offset,
	}
	where := `
		WHERE (@bodyPart = '' OR body_part = @bodyPart)
		  AND (@search = '' OR title ILIKE '%' || @search || '%')
	`

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM exercises`+where, args).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, `SELECT `+exerciseColumns+` FROM exercises`+where+`
		ORDER BY title ASC, id ASC
		LIMIT @limit OFFSET @offset`, args)
	if err != nil {
		return nil, 0, err
	}
	exercises, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Exercise])
	if err != nil {
		return nil, 0, err
	}
	return exercises, total, nil
}

func (r *ExerciseRepository) GetByID(ctx context.Context, id int64) (*models.Exercise, error) {
	rows, err := r.db.Query(ctx, `SELECT `+exerciseColumns+` FROM exercises WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, err
	}
	exercise, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[models.Exercise])
	if err != nil {
		return nil, err
	}
	return exercise, nil
}

// ExistingIDs returns the subset of ids present in the catalog.
func (r *ExerciseRepository) ExistingIDs(ctx context.Context, ids []int64) (map[int64]struct{}, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM exercises WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	found, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, err
	}
	set := make(map[int64]struct{}, len(found))
	for _, id := range found {
		set[id] = struct{}{}
	}
	return set, nil
}

// Save updates the exercise in place when ID names an existing row; otherwise it is
// inserted, merging on title.
func (r *ExerciseRepository) Save(ctx context.Context, exercise *models.Exercise) error {
	args := pgx.NamedArgs{
		"id":           exercise.ID,
		"title":        exercise.Title,
		"bodyPart":     exercise.BodyPart,
		"type":         exercise.Type,
		"level":        exercise.Level,
		"description":  exercise.Description,
		"youtubeVideo": exercise.YoutubeVideo,
	}

	if exercise.ID > 0 {
		err := r.db.QueryRow(ctx, `
			UPDATE exercises
			SET title = @title,
				body_part = @bodyPart,
				type = @type,
				level = @level,
				description = @description,
				youtube_video = @youtubeVideo
			WHERE id = @id
			RETURNING id
		`, args).Scan(&exercise.ID)
		if err == nil {
			return nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO exercises (title, body_part, type, level, description, youtube_video)
		VALUES (@title, @bodyPart, @type, @level, @description, @youtubeVideo)
		ON CONFLICT (title) DO UPDATE
		SET body_part = EXCLUDED.body_part,
			type = EXCLUDED.type,
			level = EXCLUDED.level,
			description = EXCLUDED.description,
			youtube_video = EXCLUDED.youtube_video
		RETURNING id
	`, args).Scan(&exercise.ID)
}

// ListByBodyParts returns up to limit exercises in the given body parts. An empty
// list means no body-part restriction.
func (r *ExerciseRepository) ListByBodyParts(ctx context.Context, bodyParts []string, limit int) ([]models.Exercise, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if len(bodyParts) == 0 {
		rows, err = r.db.Query(ctx, `SELECT `+exerciseColumns+` FROM exercises ORDER BY id LIMIT $1`, limit)
	} else {
		rows, err = r.db.Query(ctx, `SELECT `+exerciseColumns+` FROM exercises WHERE body_part = ANY($1) ORDER BY id LIMIT $2`, bodyParts, limit)
	}
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.Exercise])
}
