package stats

import (
	"strings"
	"time"
)

const (
	TimeFrameWeekly    = "weekly"
	TimeFrameMonthly   = "monthly"
	TimeFrameQuarterly = "quarterly"
)

// NormalizeTimeFrame maps unknown values to weekly.
func NormalizeTimeFrame(tf string) string {
	switch strings.ToLower(strings.TrimSpace(tf)) {
	case TimeFrameMonthly:
		return TimeFrameMonthly
	case TimeFrameQuarterly:
		return TimeFrameQuarterly
	default:
		return TimeFrameWeekly
	}
}

// WindowStart returns the inclusive lower bound of the analytics window ending at now.
func WindowStart(now time.Time, timeFrame string) time.Time {
	switch NormalizeTimeFrame(timeFrame) {
	case TimeFrameMonthly:
		return now.AddDate(0, -1, 0)
	case TimeFrameQuarterly:
		return now.AddDate(0, -3, 0)
	default:
		return now.AddDate(0, 0, -7)
	}
}

func FormatDay(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
