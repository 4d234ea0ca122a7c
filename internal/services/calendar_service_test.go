package services

import (
	"testing"
	"time"

	"apartment_booking_backend/internal/models"
	"apartment_booking_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMonthGrid(t *testing.T) {
	// June 2024 starts on a Saturday, so six May cells lead the grid.
	grid := BuildMonthGrid(2024, time.June)
	require.Len(t, grid, 42)

	assert.Equal(t, "2024-05-26", grid[0].Date)
	assert.False(t, grid[0].IsCurrentMonth)
	assert.Equal(t, 31, grid[5].Day)

	assert.Equal(t, "2024-06-01", grid[6].Date)
	assert.True(t, grid[6].IsCurrentMonth)
	assert.Equal(t, "2024-06-30", grid[35].Date)
	assert.True(t, grid[35].IsCurrentMonth)

	assert.Equal(t, "2024-07-01", grid[36].Date)
	assert.False(t, grid[36].IsCurrentMonth)
	assert.Equal(t, "2024-07-06", grid[41].Date)
}

func TestBuildMonthGridMonthStartingOnSunday(t *testing.T) {
	// September 2024 starts on a Sunday, so there are no leading cells.
	grid := BuildMonthGrid(2024, time.September)
	require.Len(t, grid, 42)

	assert.Equal(t, "2024-09-01", grid[0].Date)
	assert.True(t, grid[0].IsCurrentMonth)
	assert.Equal(t, "2024-09-30", grid[29].Date)
	assert.False(t, grid[30].IsCurrentMonth)
}

func TestBuildMonthGridFebruaryLeapYear(t *testing.T) {
	// February 2024 starts on a Thursday and has 29 days.
	grid := BuildMonthGrid(2024, time.February)
	require.Len(t, grid, 42)

	assert.Equal(t, "2024-01-28", grid[0].Date)
	assert.Equal(t, "2024-02-29", grid[4+28].Date)
	assert.True(t, grid[4+28].IsCurrentMonth)
	assert.False(t, grid[4+29].IsCurrentMonth)
}

func TestGetMonthGridProjectsBookings(t *testing.T) {
	repo := repositories.NewMemoryBookingRepository()
	svc := NewCalendarService(repo)

	seedBooking(t, repo, "2024-06-10", models.PeriodMorning, "0501111111", 0)
	seedBooking(t, repo, "2024-06-15", models.PeriodBoth, "0502222222", 0)
	seedBooking(t, repo, "2024-07-02", models.PeriodMorning, "0503333333", 0)

	grid, err := svc.GetMonthGrid(2024, time.June)
	require.NoError(t, err)
	require.Len(t, grid, 42)

	byDate := map[string]models.CalendarDay{}
	for _, cell := range grid {
		byDate[cell.Date] = cell
	}

	morningOnly := byDate["2024-06-10"]
	require.NotNil(t, morningOnly.Bookings.Morning)
	assert.Nil(t, morningOnly.Bookings.Evening)
	assert.Equal(t, "0501111111", morningOnly.Bookings.Morning.PhoneNumber)

	fullDay := byDate["2024-06-15"]
	require.NotNil(t, fullDay.Bookings.Morning)
	require.NotNil(t, fullDay.Bookings.Evening)
	assert.Equal(t, fullDay.Bookings.Morning.ID, fullDay.Bookings.Evening.ID)

	// The July 2 booking falls on a trailing cell but belongs to the next
	// month, so it is not attached.
	for _, cell := range grid {
		if !cell.IsCurrentMonth {
			assert.Nil(t, cell.Bookings.Morning, "adjacent month cell %s should stay empty", cell.Date)
			assert.Nil(t, cell.Bookings.Evening, "adjacent month cell %s should stay empty", cell.Date)
		}
	}
}

func TestGetMonthGridRejectsInvalidMonth(t *testing.T) {
	svc := NewCalendarService(repositories.NewMemoryBookingRepository())

	_, err := svc.GetMonthGrid(2024, time.Month(0))
	assert.ErrorIs(t, err, ErrInvalidMonth)
	_, err = svc.GetMonthGrid(2024, time.Month(13))
	assert.ErrorIs(t, err, ErrInvalidMonth)
}
