package repositories

import (
	"sort"
	"sync"
	"time"

	"apartment_booking_backend/internal/models"
)

// memoryBookingRepository is a process-lifetime booking store: a map guarded
// by a mutex, with monotonically assigned ids. The conflict check and the
// write happen under the same lock, so concurrent creates for the same
// date/period cannot both succeed.
type memoryBookingRepository struct {
	mu       sync.Mutex
	bookings map[int64]models.Booking
	nextID   int64
}

// NewMemoryBookingRepository creates an empty in-memory BookingRepository.
func NewMemoryBookingRepository() BookingRepository {
	return &memoryBookingRepository{
		bookings: make(map[int64]models.Booking),
		nextID:   1,
	}
}

// bookingsOnDateLocked returns the bookings for an exact date. Callers must
// hold r.mu.
func (r *memoryBookingRepository) bookingsOnDateLocked(date string) []models.Booking {
	var result []models.Booking
	for _, b := range r.bookings {
		if b.Date == date {
			result = append(result, b)
		}
	}
	return result
}

func (r *memoryBookingRepository) CreateBooking(booking *models.Booking) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if models.HasConflict(booking.Period, r.bookingsOnDateLocked(booking.Date), 0) {
		return nil, ErrPeriodConflict
	}

	booking.ID = r.nextID
	r.nextID++
	booking.CreatedAt = time.Now()
	r.bookings[booking.ID] = *booking

	created := *booking
	return &created, nil
}

func (r *memoryBookingRepository) GetBookingByID(id int64) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &booking, nil
}

func (r *memoryBookingRepository) GetBookingsByDate(date string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := []models.Booking{}
	for _, b := range r.bookings {
		if b.Date == date {
			result = append(result, b)
		}
	}
	return result, nil
}

func (r *memoryBookingRepository) GetBookingsByDateRange(startDate, endDate string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := []models.Booking{}
	for _, b := range r.bookings {
		if b.Date >= startDate && b.Date <= endDate {
			result = append(result, b)
		}
	}
	return result, nil
}

func (r *memoryBookingRepository) GetRecentBookings(limit int) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]models.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		result = append(result, b)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit >= 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *memoryBookingRepository) GetAllBookings() ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]models.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		result = append(result, b)
	}
	return result, nil
}

func (r *memoryBookingRepository) UpdateBooking(booking *models.Booking) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.bookings[booking.ID]
	if !ok {
		return nil, ErrNotFound
	}

	if models.HasConflict(booking.Period, r.bookingsOnDateLocked(booking.Date), booking.ID) {
		return nil, ErrPeriodConflict
	}

	// CreatedAt and CreatedBy are immutable.
	booking.CreatedAt = existing.CreatedAt
	booking.CreatedBy = existing.CreatedBy
	r.bookings[booking.ID] = *booking

	updated := *booking
	return &updated, nil
}

func (r *memoryBookingRepository) DeleteBooking(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[id]; !ok {
		return ErrNotFound
	}
	delete(r.bookings, id)
	return nil
}
