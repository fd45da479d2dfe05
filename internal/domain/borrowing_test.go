package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLateFee(t *testing.T) {
	now := time.Date(2024, 12, 20, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	cases := []struct {
		name     string
		borrowed time.Time
		want     float64
	}{
		{"within window", now.Add(-10 * day), 0},
		{"exactly due", now.Add(-BorrowingPeriod), 0},
		{"one second late", now.Add(-BorrowingPeriod - time.Second), 0},
		{"one day late", now.Add(-BorrowingPeriod - day), 2.0},
		{"partial day rounds down", now.Add(-BorrowingPeriod - day - 23*time.Hour), 2.0},
		{"twenty days ago", now.Add(-20 * day), 12.0},
		{"borrowed in the future", now.Add(day), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, LateFee(tc.borrowed, now))
		})
	}
}

func TestLateFeeIsMonotonic(t *testing.T) {
	borrowed := time.Date(2024, 1, 1, 8, 30, 0, 0, time.UTC)
	prev := 0.0
	for step := 0; step < 24*60; step++ {
		now := borrowed.Add(time.Duration(step) * 37 * time.Minute)
		fee := LateFee(borrowed, now)
		assert.GreaterOrEqual(t, fee, prev, "fee decreased at %s", now)
		prev = fee
	}
	assert.Greater(t, prev, 0.0)
}

func TestBorrowingRecordDueDate(t *testing.T) {
	borrowed := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	rec := BorrowingRecord{BorrowedDate: borrowed}

	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), rec.DueDate())
	assert.False(t, rec.Returned())

	returned := borrowed.Add(time.Hour)
	rec.ReturnedDate = &returned
	assert.True(t, rec.Returned())
}
