package repository

import (
	"context"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
	"github.com/jackc/pgx/v5"
)

const intakeWithNutritionQuery = `
	SELECT i.id, i.profile_id, i.nutrition_id, i.quantity, i.type_meal, i.intake_date,
		n.id, n.food_item, n.category, n.calories, n.protein, n.carbs, n.fat,
		n.fiber, n.sugar, n.sodium, n.cholesterol
	FROM intakes i
	JOIN nutrition n ON n.id = i.nutrition_id
`

type IntakeRepository struct {
	db DBTX
}

func NewIntakeRepository(db DBTX) *IntakeRepository {
	return &IntakeRepository{db: db}
}

type CreateIntakeInput struct {
	ProfileID   int64
	NutritionID int64
	Quantity    float64
	TypeMeal    string
}

func scanIntakeWithNutrition(row pgx.Row, intake *models.Intake) error {
	var n models.Nutrition
	if err := row.Scan(
		&intake.ID,
		&intake.ProfileID,
		&intake.NutritionID,
		&intake.Quantity,
		&intake.TypeMeal,
		&intake.IntakeDate,
		&n.ID,
		&n.FoodItem,
		&n.Category,
		&n.Calories,
		&n.Protein,
		&n.Carbs,
		&n.Fat,
		&n.Fiber,
		&n.Sugar,
		&n.Sodium,
		&n.Cholesterol,
	); err != nil {
		return err
	}
	intake.Nutrition = &n
	return nil
}

func (r *IntakeRepository) Create(ctx context.Context, input CreateIntakeInput) (*models.Intake, error) {
	query := `
		INSERT INTO intakes (profile_id, nutrition_id, quantity, type_meal)
		VALUES ($1, $2, $3, $4)
		RETURNING id, profile_id, nutrition_id, quantity, type_meal, intake_date
	`
	var intake models.Intake
	err := r.db.QueryRow(ctx, query, input.ProfileID, input.NutritionID, input.Quantity, input.TypeMeal).Scan(
		&intake.ID,
		&intake.ProfileID,
		&intake.NutritionID,
		&intake.Quantity,
		&intake.TypeMeal,
		&intake.IntakeDate,
	)
	if err != nil {
		return nil, err
	}
	return &intake, nil
}

func (r *IntakeRepository) ListByProfile(ctx context.Context, profileID int64) ([]models.Intake, error) {
	rows, err := r.db.Query(ctx, intakeWithNutritionQuery+`
		WHERE i.profile_id = $1
		ORDER BY i.intake_date DESC, i.id DESC
	`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	intakes := make([]models.Intake, 0)
	for rows.Next() {
		var intake models.Intake
		if err := scanIntakeWithNutrition(rows, &intake); err != nil {
			return nil, err
		}
		intakes = append(intakes, intake)
	}
	return intakes, rows.Err()
}

func (r *IntakeRepository) GetByID(ctx context.Context, id int64) (*models.Intake, error) {
	var intake models.Intake
	if err := scanIntakeWithNutrition(r.db.QueryRow(ctx, intakeWithNutritionQuery+` WHERE i.id = $1`, id), &intake); err != nil {
		return nil, err
	}
	return &intake, nil
}

// Delete returns pgx.ErrNoRows when nothing matched.
func (r *IntakeRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM intakes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
