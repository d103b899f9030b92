package models

import "time"

type Dashboard struct {
	PersonalInfo    PersonalInfo        `json:"personalInfo"`
	FitnessInfo     FitnessInfo         `json:"fitnessInfo"`
	AccountInfo     AccountInfo         `json:"accountInfo"`
	Statistics      DashboardStatistics `json:"statistics"`
	Workouts        []DashboardWorkout  `json:"workouts"`
	Activities      []DashboardActivity `json:"activities"`
	ProgressRecords []DashboardProgress `json:"progressRecords"`
}

type PersonalInfo struct {
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	Email         string  `json:"email"`
	Gender        string  `json:"gender"`
	Birthdate     string  `json:"birthdate"`
	Height        float64 `json:"height"`
	CurrentWeight float64 `json:"currentWeight"`
	GoalWeight    float64 `json:"goalWeight"`
	PhoneNumber   string  `json:"phoneNumber"`
	ProfileImage  string  `json:"profileImage"`
}

type FitnessInfo struct {
	FitnessLevel string   `json:"fitnessLevel"`
	FitnessGoals []string `json:"fitnessGoals"`
}

type NotificationPreferences struct {
	Email bool `json:"email"`
	Push  bool `json:"push"`
	SMS   bool `json:"sms"`
}

type DataSharing struct {
	AnonymizedResearch bool `json:"anonymizedResearch"`
	ThirdPartyApps     bool `json:"thirdPartyApps"`
}

type AccountInfo struct {
	Username                string                  `json:"username"`
	MemberSince             string                  `json:"memberSince"`
	Subscription            string                  `json:"subscription"`
	SubscriptionRenewal     string                  `json:"subscriptionRenewal,omitempty"`
	NotificationPreferences NotificationPreferences `json:"notificationPreferences"`
	DataSharing             DataSharing             `json:"dataSharing"`
}

type DashboardStatistics struct {
	TotalWorkouts        int     `json:"totalWorkouts"`
	TotalDuration        int     `json:"totalDuration"`
	TotalSteps           int     `json:"totalSteps"`
	AverageWorkoutLength int     `json:"averageWorkoutLength"`
	LongestStreak        int     `json:"longestStreak"`
	CurrentStreak        int     `json:"currentStreak"`
	CaloriesBurned       float64 `json:"caloriesBurned"`
}

type DashboardWorkout struct {
	ID                  int64     `json:"id"`
	Date                time.Time `json:"date"`
	Duration            int       `json:"duration"`
	ExerciseType        string    `json:"exerciseType"`
	ExerciseName        string    `json:"exerciseName"`
	ExerciseLevel       string    `json:"exerciseLevel"`
	ExerciseDescription string    `json:"exerciseDescription"`
	YoutubeVideo        *string   `json:"youtubeVideo"`
	ExerciseID          int64     `json:"exerciseId"`
	BodyPart            *string   `json:"bodyPart"`
}

type DashboardActivity struct {
	ID      int64     `json:"id"`
	Date    time.Time `json:"date"`
	Steps   int       `json:"steps"`
	Minutes int       `json:"minutes"`
}

// DashboardProgress carries month roll-ups of the listed workouts and
// activities alongside the record itself.
type DashboardProgress struct {
	RecordDate      time.Time `json:"record_date"`
	Weight          float64   `json:"weight"`
	Height          float64   `json:"height"`
	CaloriesBurnt   float64   `json:"calories_burnt"`
	FatPercentage   float64   `json:"fat_percentage"`
	Steps           int       `json:"steps"`
	WorkoutDuration int       `json:"workout_duration"`
}
