package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReviewStats(t *testing.T) {
	avg, total := ReviewStats(nil)
	assert.Equal(t, 0.0, avg)
	assert.Equal(t, 0, total)

	avg, total = ReviewStats([]Review{{Rating: 4}})
	assert.Equal(t, 4.0, avg)
	assert.Equal(t, 1, total)

	// 4+5+3 = 12 over 3 reviews
	avg, total = ReviewStats([]Review{{Rating: 4}, {Rating: 5}, {Rating: 3}})
	assert.Equal(t, 4.0, avg)
	assert.Equal(t, 3, total)

	// 5+4 = 9 over 2 reviews rounds to one decimal
	avg, _ = ReviewStats([]Review{{Rating: 5}, {Rating: 4}})
	assert.Equal(t, 4.5, avg)

	// 1+2+2 = 5 over 3 reviews, 1.666... rounds to 1.7
	avg, _ = ReviewStats([]Review{{Rating: 1}, {Rating: 2}, {Rating: 2}})
	assert.Equal(t, 1.7, avg)
}
