package models

import "time"

const (
	DefaultWeightKG      = 70.0
	DefaultHeightCM      = 170.0
	DefaultFatPercentage = 20.0
)

type Profile struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"user_id"`
	Gender        *string    `json:"gender"`
	Birthday      *time.Time `json:"birthday"`
	CurrWeight    *float64   `json:"curr_weight"`
	CurrHeight    *float64   `json:"curr_height"`
	GoalWeight    *float64   `json:"goal_weight"`
	FitnessLevel  *string    `json:"fitness_level"`
	FitnessGoals  []string   `json:"fitness_goals"`
	ProfilePic    *string    `json:"profile_pic"`
	TotalSteps    int64      `json:"total_steps"`
	CaloriesBurnt float64    `json:"calories_burnt"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type ProgressRecord struct {
	ID            int64     `json:"id"`
	ProfileID     int64     `json:"profile_id"`
	RecordDate    time.Time `json:"record_date"`
	Weight        *float64  `json:"weight"`
	Height        *float64  `json:"height"`
	CaloriesBurnt float64   `json:"calories_burnt"`
	FatPercentage *float64  `json:"fat_percentage"`
}
