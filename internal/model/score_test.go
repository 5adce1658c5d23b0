package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriorityForScore_Boundaries(t *testing.T) {
	assert.Equal(t, PriorityHigh, PriorityForScore(70))
	assert.Equal(t, PriorityMedium, PriorityForScore(69.99))
	assert.Equal(t, PriorityMedium, PriorityForScore(40))
	assert.Equal(t, PriorityLow, PriorityForScore(39.99))
}

func TestPriorityForScore_Extremes(t *testing.T) {
	assert.Equal(t, PriorityHigh, PriorityForScore(100))
	assert.Equal(t, PriorityLow, PriorityForScore(0))
}
