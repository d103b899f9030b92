package models

import "time"

type Exercise struct {
	ID           int64   `json:"id" db:"id"`
	Title        string  `json:"title" db:"title"`
	BodyPart     *string `json:"body_part" db:"body_part"`
	Type         *string `json:"type" db:"type"`
	Level        *string `json:"level" db:"level"`
	Description  *string `json:"description" db:"description"`
	YoutubeVideo *string `json:"youtube_video" db:"youtube_video"`
}

type Workout struct {
	ID          int64     `json:"id"`
	ProfileID   int64     `json:"profile_id"`
	ExerciseID  int64     `json:"exercise_id"`
	Duration    int       `json:"duration"`
	WorkoutDate time.Time `json:"workout_date"`
	Exercise    *Exercise `json:"exercise,omitempty"`
}

type Activity struct {
	ID           int64     `json:"id"`
	ProfileID    int64     `json:"profile_id"`
	WorkoutID    *int64    `json:"workout_id"`
	Steps        int       `json:"steps"`
	Minutes      int       `json:"minutes"`
	ActivityDate time.Time `json:"activity_date"`
}
