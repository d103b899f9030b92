package repository

import (
	"context"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
	"github.com/jackc/pgx/v5"
)

const nutritionColumns = `id, food_item, category, calories, protein, carbs, fat, fiber, sugar, sodium, cholesterol`

type NutritionRepository struct {
	db DBTX
}

func NewNutritionRepository(db DBTX) *NutritionRepository {
	return &NutritionRepository{db: db}
}

func (r *NutritionRepository) Search(ctx context.Context, term string, limit int) ([]models.Nutrition, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+nutritionColumns+`
		FROM nutrition
		WHERE food_item ILIKE '%' || @term || '%'
		ORDER BY food_item ASC
		LIMIT @limit
	`, pgx.NamedArgs{"term": term, "limit": limit})
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.Nutrition])
}

func (r *NutritionRepository) GetByID(ctx context.Context, id int64) (*models.Nutrition, error) {
	rows, err := r.db.Query(ctx, `SELECT `+nutritionColumns+` FROM nutrition WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, err
	}
	return pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[models.Nutrition])
}

func (r *NutritionRepository) ExistingIDs(ctx context.Context, ids []int64) (map[int64]struct{}, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM nutrition WHERE id = ANY($1)`, ids)
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

// InsertIfAbsent reports false when an item with the same food_item already exists.
func (r *NutritionRepository) InsertIfAbsent(ctx context.Context, item *models.Nutrition) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO nutrition (food_item, category, calories, protein, carbs, fat, fiber, sugar, sodium, cholesterol)
		VALUES (@foodItem, @category, @calories, @protein, @carbs, @fat, @fiber, @sugar, @sodium, @cholesterol)
		ON CONFLICT (food_item) DO NOTHING
	`, pgx.NamedArgs{
		"foodItem":    item.FoodItem,
		"category":    item.Category,
		"calories":    item.Calories,
		"protein":     item.Protein,
		"carbs":       item.Carbs,
		"fat":         item.Fat,
		"fiber":       item.Fiber,
		"sugar":       item.Sugar,
		"sodium":      item.Sodium,
		"cholesterol": item.Cholesterol,
	})
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
