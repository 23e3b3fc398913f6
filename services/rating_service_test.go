package services

import (
	"testing"

	"github.com/edumart/course_market/models"
	"github.com/stretchr/testify/assert"
)

func TestRecomputeRatingEmpty(t *testing.T) {
	agg := RecomputeRating(nil)
	assert.Equal(t, models.Rating{}, agg)

	agg = RecomputeRating([]int{})
	assert.Equal(t, 0.0, agg.Average)
	assert.Equal(t, 0, agg.Count)
}

func TestRecomputeRatingSingle(t *testing.T) {
	agg := RecomputeRating([]int{4})
	assert.Equal(t, 4.0, agg.Average)
	assert.Equal(t, 1, agg.Count)
}

func TestRecomputeRatingMixed(t *testing.T) {
	agg := RecomputeRating([]int{5, 4, 3, 4})
	assert.InDelta(t, 4.0, agg.Average, 0.0001)
	assert.Equal(t, 4, agg.Count)

	agg = RecomputeRating([]int{1, 2})
	assert.InDelta(t, 1.5, agg.Average, 0.0001)
	assert.Equal(t, 2, agg.Count)
}

// A student re-reviewing replaces their old rating, so the count stays flat
// and the average moves to the new value.
func TestRecomputeRatingAfterReplace(t *testing.T) {
	before := RecomputeRating([]int{5, 1})
	assert.InDelta(t, 3.0, before.Average, 0.0001)
	assert.Equal(t, 2, before.Count)

	after := RecomputeRating([]int{5, 5})
	assert.InDelta(t, 5.0, after.Average, 0.0001)
	assert.Equal(t, 2, after.Count)
}
