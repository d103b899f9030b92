// Package stats holds the arithmetic behind the dashboard and analytics endpoints.
// Everything here is pure so it can be tested without a database.
package stats

import (
	"sort"
	"time"
)

// DayKey truncates t to its UTC calendar day.
func DayKey(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Streaks walks the distinct workout days newest first. A run grows only while two
// neighbouring days are exactly one calendar day apart; any other gap starts a new
// run at 1. current is the run that contains the most recent day.
func Streaks(dates []time.Time) (current, longest int) {
	if len(dates) == 0 {
		return 0, 0
	}

	seen := make(map[time.Time]struct{}, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		key := DayKey(d)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		days = append(days, key)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	run := 1
	current = 0
	longest = 0
	for i := 1; i < len(days); i++ {
		if daysBetween(days[i], days[i-1]) == 1 {
			run++
			continue
		}
		if current == 0 {
			current = run
		}
		if run > longest {
			longest = run
		}
		run = 1
	}
	if current == 0 {
		current = run
	}
	if run > longest {
		longest = run
	}
	return current, longest
}

// daysBetween counts calendar days from a to b (b later). Dates are midnight UTC so
// the division is exact.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
