package repositories

import (
	"sync"
	"testing"

	"apartment_booking_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBooking(date, period, phone string) *models.Booking {
	return &models.Booking{
		Date:        date,
		Period:      period,
		TenantName:  "Tenant",
		PhoneNumber: phone,
		PeopleCount: 1,
		CreatedBy:   1,
	}
}

func TestMemoryCreateAssignsMonotonicIDs(t *testing.T) {
	repo := NewMemoryBookingRepository()

	first, err := repo.CreateBooking(newBooking("2024-06-10", models.PeriodMorning, "0501234567"))
	require.NoError(t, err)
	second, err := repo.CreateBooking(newBooking("2024-06-11", models.PeriodMorning, "0501234568"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.False(t, first.CreatedAt.IsZero())
}

func TestMemoryCreateRoundTrip(t *testing.T) {
	repo := NewMemoryBookingRepository()

	notes := "late arrival"
	booking := newBooking("2024-06-10", models.PeriodMorning, "0501234567")
	booking.Paid = 100
	booking.Remaining = 50
	booking.PeopleCount = 2
	booking.Notes = &notes

	created, err := repo.CreateBooking(booking)
	require.NoError(t, err)

	fetched, err := repo.GetBookingByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "2024-06-10", fetched.Date)
	assert.Equal(t, models.PeriodMorning, fetched.Period)
	assert.Equal(t, 100, fetched.Paid)
	assert.Equal(t, 50, fetched.Remaining)
	assert.Equal(t, 2, fetched.PeopleCount)
	require.NotNil(t, fetched.Notes)
	assert.Equal(t, notes, *fetched.Notes)
}

func TestMemoryCreateConflicts(t *testing.T) {
	repo := NewMemoryBookingRepository()

	_, err := repo.CreateBooking(newBooking("2024-06-10", models.PeriodMorning, "0501234567"))
	require.NoError(t, err)

	// Evening on the same date does not overlap morning.
	_, err = repo.CreateBooking(newBooking("2024-06-10", models.PeriodEvening, "0501234568"))
	require.NoError(t, err)

	// A full-day booking overlaps both existing bookings.
	_, err = repo.CreateBooking(newBooking("2024-06-10", models.PeriodBoth, "0501234569"))
	assert.ErrorIs(t, err, ErrPeriodConflict)

	// Same date, same period.
	_, err = repo.CreateBooking(newBooking("2024-06-10", models.PeriodMorning, "0501234560"))
	assert.ErrorIs(t, err, ErrPeriodConflict)

	// A different date is unaffected.
	_, err = repo.CreateBooking(newBooking("2024-06-11", models.PeriodBoth, "0501234561"))
	assert.NoError(t, err)
}

func TestMemoryUpdateExcludesSelfFromConflictCheck(t *testing.T) {
	repo := NewMemoryBookingRepository()

	created, err := repo.CreateBooking(newBooking("2024-06-10", models.PeriodMorning, "0501234567"))
	require.NoError(t, err)

	// The only booking on the date may grow to the full day.
	created.Period = models.PeriodBoth
	updated, err := repo.UpdateBooking(created)
	require.NoError(t, err)
	assert.Equal(t, models.PeriodBoth, updated.Period)

	// A second booking now conflicts with the widened one.
	_, err = repo.CreateBooking(newBooking("2024-06-10", models.PeriodEvening, "0501234568"))
	assert.ErrorIs(t, err, ErrPeriodConflict)
}

func TestMemoryUpdateConflictsAgainstOthers(t *testing.T) {
	repo := NewMemoryBookingRepository()

	morning, err := repo.CreateBooking(newBooking("2024-06-10", models.PeriodMorning, "0501234567"))
	require.NoError(t, err)
	_, err = repo.CreateBooking(newBooking("2024-06-10", models.PeriodEvening, "0501234568"))
	require.NoError(t, err)

	morning.Period = models.PeriodBoth
	_, err = repo.UpdateBooking(morning)
	assert.ErrorIs(t, err, ErrPeriodConflict)
}

func TestMemoryUpdateMissing(t *testing.T) {
	repo := NewMemoryBookingRepository()

	missing := newBooking("2024-06-10", models.PeriodMorning, "0501234567")
	missing.ID = 99
	_, err := repo.UpdateBooking(missing)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryDateRangeIsInclusive(t *testing.T) {
	repo := NewMemoryBookingRepository()

	for _, date := range []string{"2024-05-31", "2024-06-01", "2024-06-15", "2024-06-30", "2024-07-01"} {
		_, err := repo.CreateBooking(newBooking(date, models.PeriodMorning, "0501234567"))
		require.NoError(t, err)
	}

	inRange, err := repo.GetBookingsByDateRange("2024-06-01", "2024-06-30")
	require.NoError(t, err)
	require.Len(t, inRange, 3)
	for _, b := range inRange {
		assert.GreaterOrEqual(t, b.Date, "2024-06-01")
		assert.LessOrEqual(t, b.Date, "2024-06-30")
	}
}

func TestMemoryRecentOrdering(t *testing.T) {
	repo := NewMemoryBookingRepository()

	for _, date := range []string{"2024-06-01", "2024-06-02", "2024-06-03"} {
		_, err := repo.CreateBooking(newBooking(date, models.PeriodMorning, "0501234567"))
		require.NoError(t, err)
	}

	recent, err := repo.GetRecentBookings(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "2024-06-03", recent[0].Date)
	assert.Equal(t, "2024-06-02", recent[1].Date)
}

func TestMemoryDeleteMissingSignalsNotFound(t *testing.T) {
	repo := NewMemoryBookingRepository()

	assert.ErrorIs(t, repo.DeleteBooking(42), ErrNotFound)

	created, err := repo.CreateBooking(newBooking("2024-06-10", models.PeriodMorning, "0501234567"))
	require.NoError(t, err)
	require.NoError(t, repo.DeleteBooking(created.ID))
	assert.ErrorIs(t, repo.DeleteBooking(created.ID), ErrNotFound)
}

func TestMemoryConcurrentCreatesSingleWinner(t *testing.T) {
	repo := NewMemoryBookingRepository()

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.CreateBooking(newBooking("2024-06-10", models.PeriodBoth, "0501234567"))
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, ErrPeriodConflict)
		}
	}
	assert.Equal(t, 1, winners)
}
