package services

import (
	"errors"
	"fmt"
	"time"

	"apartment_booking_backend/internal/models"
	"apartment_booking_backend/internal/repositories"
)

// ErrInvalidMonth is returned for a month outside 1..12.
var ErrInvalidMonth = errors.New("month must be between 1 and 12")

// BuildMonthGrid generates the 42-cell (6 weeks, Sunday-first) month view.
// Cells before day 1 and after the last day are filled from the adjacent
// months and flagged IsCurrentMonth = false. No bookings are attached.
func BuildMonthGrid(year int, month time.Month) []models.CalendarDay {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	days := make([]models.CalendarDay, 0, 42)
	appendDay := func(d time.Time, current bool) {
		days = append(days, models.CalendarDay{
			Day:            d.Day(),
			Date:           d.Format(models.DateLayout),
			IsCurrentMonth: current,
		})
	}

	// Leading days from the previous month; Sunday starts the week.
	for i := int(first.Weekday()); i > 0; i-- {
		appendDay(first.AddDate(0, 0, -i), false)
	}

	daysInMonth := first.AddDate(0, 1, -1).Day()
	for i := 0; i < daysInMonth; i++ {
		appendDay(first.AddDate(0, 0, i), true)
	}

	// Trailing days from the next month, up to 6 full weeks.
	next := first.AddDate(0, 1, 0)
	for i := 0; len(days) < 42; i++ {
		appendDay(next.AddDate(0, 0, i), false)
	}

	return days
}

// CalendarService produces the month grid with bookings projected onto it.
type CalendarService interface {
	GetMonthGrid(year int, month time.Month) ([]models.CalendarDay, error)
}

type calendarService struct {
	bookingRepo repositories.BookingRepository
}

// NewCalendarService creates a new instance of CalendarService.
func NewCalendarService(br repositories.BookingRepository) CalendarService {
	return &calendarService{bookingRepo: br}
}

func (s *calendarService) GetMonthGrid(year int, month time.Month) ([]models.CalendarDay, error) {
	if month < time.January || month > time.December {
		return nil, ErrInvalidMonth
	}

	grid := BuildMonthGrid(year, month)

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	startDate := first.Format(models.DateLayout)
	endDate := first.AddDate(0, 1, -1).Format(models.DateLayout)

	bookings, err := s.bookingRepo.GetBookingsByDateRange(startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings for calendar: %w", err)
	}

	cellByDate := make(map[string]*models.CalendarDay, len(grid))
	for i := range grid {
		cellByDate[grid[i].Date] = &grid[i]
	}

	for i := range bookings {
		b := &bookings[i]
		cell, ok := cellByDate[b.Date]
		if !ok {
			continue
		}
		if b.Period == models.PeriodMorning || b.Period == models.PeriodBoth {
			cell.Bookings.Morning = b
		}
		if b.Period == models.PeriodEvening || b.Period == models.PeriodBoth {
			cell.Bookings.Evening = b
		}
	}

	return grid, nil
}
