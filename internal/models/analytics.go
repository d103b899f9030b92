package models

type SeriesPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type WeightPoint struct {
	Date         string   `json:"date"`
	Value        *float64 `json:"value"`
	IsPrediction bool     `json:"isPrediction,omitempty"`
}

type NamedCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type ExerciseRecommendation struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	BodyPart     string  `json:"bodyPart"`
	Type         string  `json:"type"`
	Level        string  `json:"level"`
	YoutubeVideo *string `json:"youtube_video"`
}

type AnalyticsReport struct {
	Calories                []SeriesPoint            `json:"calories"`
	ExerciseTime            []SeriesPoint            `json:"exerciseTime"`
	Weight                  []SeriesPoint            `json:"weight"`
	BodyPartDistribution    []NamedCount             `json:"bodyPartDistribution"`
	DifficultyDistribution  []NamedCount             `json:"difficultyDistribution"`
	PredictiveWeight        []WeightPoint            `json:"predictiveWeight"`
	ExerciseRecommendations []ExerciseRecommendation `json:"exerciseRecommendations"`
}
