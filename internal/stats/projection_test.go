package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectWeightLiesOnLineThroughSamples(t *testing.T) {
	t1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.AddDate(0, 0, 10)
	prev := Sample{At: t1, Value: 80}
	last := Sample{At: t2, Value: 78}

	points := ProjectWeight(prev, last)
	require.Len(t, points, ProjectionWeeks)

	slope := (last.Value - prev.Value) / 10
	for i, p := range points {
		offset := (i + 1) * 7
		assert.Equal(t, t2.AddDate(0, 0, offset), p.At)
		assert.InDelta(t, last.Value+slope*float64(offset), p.Value, 1e-9)
	}
	assert.InDelta(t, 72.4, points[3].Value, 1e-9)
}

func TestProjectWeightSameDayUsesOneDayGap(t *testing.T) {
	at := time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC)
	points := ProjectWeight(Sample{At: at, Value: 70}, Sample{At: at.Add(3 * time.Hour), Value: 71})
	require.Len(t, points, 4)
	assert.InDelta(t, 78, points[0].Value, 1e-9)
}

func TestProjectWeightFlatTrend(t *testing.T) {
	t1 := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	points := ProjectWeight(Sample{At: t1, Value: 65}, Sample{At: t1.AddDate(0, 0, 3), Value: 65})
	for _, p := range points {
		assert.InDelta(t, 65, p.Value, 1e-9)
	}
}
