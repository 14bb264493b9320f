package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePriority(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 0},
		{1, 1},
		{2, 2},
		{3, 0},
		{4, 1},
		{5, 2},
		{-1, 2},
		{-3, 0},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, NormalizePriority(tc.in), "input %d", tc.in)
	}
}

func TestRecordCompleted(t *testing.T) {
	var r Record
	assert.False(t, r.Completed())

	now := time.Now()
	r.CompletedAt = &now
	assert.True(t, r.Completed())
}
