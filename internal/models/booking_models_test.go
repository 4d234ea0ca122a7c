package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPeriod(t *testing.T) {
	assert.True(t, IsValidPeriod(PeriodMorning))
	assert.True(t, IsValidPeriod(PeriodEvening))
	assert.True(t, IsValidPeriod(PeriodBoth))
	assert.False(t, IsValidPeriod("afternoon"))
	assert.False(t, IsValidPeriod(""))
}

func TestPeriodsOverlap(t *testing.T) {
	cases := []struct {
		a, b    string
		overlap bool
	}{
		{PeriodMorning, PeriodMorning, true},
		{PeriodEvening, PeriodEvening, true},
		{PeriodBoth, PeriodBoth, true},
		{PeriodMorning, PeriodEvening, false},
		{PeriodEvening, PeriodMorning, false},
		{PeriodMorning, PeriodBoth, true},
		{PeriodBoth, PeriodMorning, true},
		{PeriodEvening, PeriodBoth, true},
		{PeriodBoth, PeriodEvening, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.overlap, PeriodsOverlap(tc.a, tc.b), "overlap(%s, %s)", tc.a, tc.b)
		assert.Equal(t, PeriodsOverlap(tc.a, tc.b), PeriodsOverlap(tc.b, tc.a), "rule must be symmetric")
	}
}

func TestHasConflict(t *testing.T) {
	existing := []Booking{
		{ID: 1, Date: "2024-06-10", Period: PeriodMorning},
	}

	assert.False(t, HasConflict(PeriodEvening, existing, 0))
	assert.True(t, HasConflict(PeriodMorning, existing, 0))
	assert.True(t, HasConflict(PeriodBoth, existing, 0))

	// A booking never conflicts with itself during an edit.
	assert.False(t, HasConflict(PeriodBoth, existing, 1))

	assert.False(t, HasConflict(PeriodBoth, nil, 0))
}
