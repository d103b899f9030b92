package models

import "time"

type Nutrition struct {
	ID          int64   `json:"id" db:"id"`
	FoodItem    string  `json:"food_item" db:"food_item"`
	Category    *string `json:"category" db:"category"`
	Calories    float64 `json:"calories" db:"calories"`
	Protein     float64 `json:"protein" db:"protein"`
	Carbs       float64 `json:"carbs" db:"carbs"`
	Fat         float64 `json:"fat" db:"fat"`
	Fiber       float64 `json:"fiber" db:"fiber"`
	Sugar       float64 `json:"sugar" db:"sugar"`
	Sodium      float64 `json:"sodium" db:"sodium"`
	Cholesterol float64 `json:"cholesterol" db:"cholesterol"`
}

type Intake struct {
	ID          int64      `json:"id"`
	ProfileID   int64      `json:"profile_id"`
	NutritionID int64      `json:"nutrition_id"`
	Quantity    float64    `json:"quantity"`
	TypeMeal    string     `json:"type_meal"`
	IntakeDate  time.Time  `json:"intake_date"`
	Nutrition   *Nutrition `json:"nutrition,omitempty"`
}
