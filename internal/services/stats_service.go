package services

import (
	"fmt"
	"sync"
	"time"

	"apartment_booking_backend/internal/models"
	"apartment_booking_backend/internal/repositories"
	"apartment_booking_backend/pkg/utils"
)

// StatsService maintains the derived aggregate snapshot. Recompute fully
// replaces the previous snapshot; nothing is patched incrementally.
type StatsService interface {
	GetStats() models.Stats
	Recompute(now time.Time) (models.Stats, error)
}

type statsService struct {
	bookingRepo repositories.BookingRepository

	mu       sync.RWMutex
	snapshot models.Stats
}

// NewStatsService creates a StatsService and computes the initial snapshot.
func NewStatsService(br repositories.BookingRepository) StatsService {
	s := &statsService{bookingRepo: br}
	if _, err := s.Recompute(time.Now()); err != nil {
		utils.LogError(err, "statsService: initial recompute failed")
	}
	return s
}

// weekBounds returns the ISO dates of the Sunday and Saturday of the week
// containing now.
func weekBounds(now time.Time) (string, string) {
	start := now.AddDate(0, 0, -int(now.Weekday()))
	end := start.AddDate(0, 0, 6)
	return start.Format(models.DateLayout), end.Format(models.DateLayout)
}

func (s *statsService) GetStats() models.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func (s *statsService) Recompute(now time.Time) (models.Stats, error) {
	bookings, err := s.bookingRepo.GetAllBookings()
	if err != nil {
		return models.Stats{}, fmt.Errorf("failed to load bookings for stats: %w", err)
	}

	today := now.Format(models.DateLayout)
	weekStart, weekEnd := weekBounds(now)

	stats := models.Stats{LastUpdated: now}
	tenants := map[string]struct{}{}
	for _, b := range bookings {
		if b.Date == today {
			stats.TodayBookings++
		}
		if b.Date >= weekStart && b.Date <= weekEnd {
			stats.WeekBookings++
		}
		stats.TotalPayments += b.Paid
		tenants[b.PhoneNumber] = struct{}{}
	}
	stats.TotalTenants = len(tenants)

	s.mu.Lock()
	s.snapshot = stats
	s.mu.Unlock()

	return stats, nil
}
