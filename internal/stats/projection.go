package stats

import (
	"math"
	"time"
)

const (
	ProjectionWeeks = 4
	day             = 24 * time.Hour
)

type Sample struct {
	At    time.Time
	Value float64
}

type Projected struct {
	At    time.Time
	Value float64
}

// ProjectWeight draws the straight line through the two samples and reads it at
// 7, 14, 21 and 28 days after last. The day gap is rounded and never below one.
func ProjectWeight(prev, last Sample) []Projected {
	daysDiff := math.Round(last.At.Sub(prev.At).Hours() / 24)
	if daysDiff < 1 {
		daysDiff = 1
	}
	daily := (last.Value - prev.Value) / daysDiff

	out := make([]Projected, 0, ProjectionWeeks)
	for i := 1; i <= ProjectionWeeks; i++ {
		offset := i * 7
		out = append(out, Projected{
			At:    last.At.Add(time.Duration(offset) * day),
			Value: last.Value + daily*float64(offset),
		})
	}
	return out
}
