package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkoutMinutes(t *testing.T) {
	assert.Equal(t, defaultWorkoutDuration, workoutMinutes(0))
	assert.Equal(t, 1, workoutMinutes(1))
	assert.Equal(t, 45, workoutMinutes(45))
}
