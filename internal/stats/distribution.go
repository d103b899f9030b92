package stats

const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"

	OtherBodyPart = "Other"
)

var difficultyOrder = []string{LevelBeginner, LevelIntermediate, LevelAdvanced}

type Count struct {
	Name  string
	Value int
}

// BodyPartCounts counts workouts per body part in first-seen order; nil or empty
// body parts are reported as Other.
func BodyPartCounts(bodyParts []*string) []Count {
	index := make(map[string]int)
	out := make([]Count, 0)
	for _, bp := range bodyParts {
		name := OtherBodyPart
		if bp != nil && *bp != "" {
			name = *bp
		}
		if i, ok := index[name]; ok {
			out[i].Value++
			continue
		}
		index[name] = len(out)
		out = append(out, Count{Name: name, Value: 1})
	}
	return out
}

// DifficultyCounts always reports the three levels; anything unrecognised counts
// as Beginner.
func DifficultyCounts(levels []*string) []Count {
	counts := map[string]int{}
	for _, lvl := range levels {
		name := LevelBeginner
		if lvl != nil {
			switch *lvl {
			case LevelIntermediate, LevelAdvanced:
				name = *lvl
			}
		}
		counts[name]++
	}

	out := make([]Count, 0, len(difficultyOrder))
	for _, name := range difficultyOrder {
		out = append(out, Count{Name: name, Value: counts[name]})
	}
	return out
}

// RoundedAverage mirrors Math.round semantics for non-negative totals.
func RoundedAverage(total, n int) int {
	if n <= 0 {
		return 0
	}
	return (2*total + n) / (2 * n)
}

// ActivityCalories estimates calories for a step/minute log.
func ActivityCalories(steps, minutes int) float64 {
	return float64(steps)*0.04 + float64(minutes)*4
}
