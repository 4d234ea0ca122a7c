package services

import (
	"errors"
	"fmt"
	"time"

	"apartment_booking_backend/internal/models"
	"apartment_booking_backend/internal/repositories"
	"apartment_booking_backend/pkg/utils"
)

// --- Custom Service Errors for Booking ---
var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrPeriodUnavailable = errors.New("there is already a booking for this date and period")
	ErrBookingValidation = errors.New("booking data validation error")
)

// --- Booking DTOs ---
type CreateBookingRequest struct {
	Date        string  `json:"date" binding:"required"`
	Period      string  `json:"period" binding:"required"`
	TenantName  string  `json:"tenantName" binding:"required"`
	PhoneNumber string  `json:"phoneNumber" binding:"required"`
	Paid        *int    `json:"paid"`
	Remaining   *int    `json:"remaining"`
	PeopleCount *int    `json:"peopleCount"`
	Notes       *string `json:"notes"`
}

type UpdateBookingRequest struct {
	Date        *string `json:"date"`
	Period      *string `json:"period"`
	TenantName  *string `json:"tenantName"`
	PhoneNumber *string `json:"phoneNumber"`
	Paid        *int    `json:"paid"`
	Remaining   *int    `json:"remaining"`
	PeopleCount *int    `json:"peopleCount"`
	Notes       *string `json:"notes"`
}

// --- BookingService Interface ---
type BookingService interface {
	CreateBooking(req CreateBookingRequest, createdBy int64) (*models.Booking, error)
	GetBookingByID(id int64) (*models.Booking, error)
	GetBookingsByDate(date string) ([]models.Booking, error)
	GetBookingsByDateRange(startDate, endDate string) ([]models.Booking, error)
	GetRecentBookings(limit int) ([]models.Booking, error)
	GetBookingsByDay() (map[string]models.DaySummary, error)
	UpdateBooking(id int64, req UpdateBookingRequest) (*models.Booking, error)
	DeleteBooking(id int64) error
}

// --- bookingService Implementation ---
type bookingService struct {
	bookingRepo  repositories.BookingRepository
	statsService StatsService
}

// NewBookingService creates a new instance of BookingService.
func NewBookingService(br repositories.BookingRepository, ss StatsService) BookingService {
	return &bookingService{
		bookingRepo:  br,
		statsService: ss,
	}
}

// validateBookingFields checks the field-level constraints shared by create
// and update.
func validateBookingFields(b *models.Booking) error {
	if !utils.IsValidISODate(b.Date) {
		return fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrBookingValidation)
	}
	if !models.IsValidPeriod(b.Period) {
		return fmt.Errorf("%w: period must be one of 'morning', 'evening' or 'both'", ErrBookingValidation)
	}
	if utils.IsEmpty(b.TenantName) {
		return fmt.Errorf("%w: tenantName must not be empty", ErrBookingValidation)
	}
	if !utils.IsValidPhoneNumber(b.PhoneNumber) {
		return fmt.Errorf("%w: phoneNumber must start with 05 and contain 10 digits", ErrBookingValidation)
	}
	if b.Paid < 0 {
		return fmt.Errorf("%w: paid must not be negative", ErrBookingValidation)
	}
	if b.Remaining < 0 {
		return fmt.Errorf("%w: remaining must not be negative", ErrBookingValidation)
	}
	if b.PeopleCount < 1 {
		return fmt.Errorf("%w: peopleCount must be at least 1", ErrBookingValidation)
	}
	return nil
}

// refreshStats recomputes the stats snapshot after a mutation. The mutation
// has already committed, so a recompute failure is logged rather than
// surfaced.
func (s *bookingService) refreshStats() {
	if _, err := s.statsService.Recompute(time.Now()); err != nil {
		utils.LogError(err, "bookingService: failed to recompute stats after mutation")
	}
}

func (s *bookingService) CreateBooking(req CreateBookingRequest, createdBy int64) (*models.Booking, error) {
	booking := &models.Booking{
		Date:        req.Date,
		Period:      req.Period,
		TenantName:  req.TenantName,
		PhoneNumber: req.PhoneNumber,
		PeopleCount: 1,
		Notes:       req.Notes,
		CreatedBy:   createdBy,
	}
	if req.Paid != nil {
		booking.Paid = *req.Paid
	}
	if req.Remaining != nil {
		booking.Remaining = *req.Remaining
	}
	if req.PeopleCount != nil {
		booking.PeopleCount = *req.PeopleCount
	}

	if err := validateBookingFields(booking); err != nil {
		return nil, err
	}

	created, err := s.bookingRepo.CreateBooking(booking)
	if err != nil {
		if errors.Is(err, repositories.ErrPeriodConflict) {
			return nil, ErrPeriodUnavailable
		}
		return nil, fmt.Errorf("failed to create booking in repository: %w", err)
	}

	s.refreshStats()
	return created, nil
}

func (s *bookingService) GetBookingByID(id int64) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetBookingByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking by ID: %w", err)
	}
	return booking, nil
}

func (s *bookingService) GetBookingsByDate(date string) ([]models.Booking, error) {
	if !utils.IsValidISODate(date) {
		return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrBookingValidation)
	}
	bookings, err := s.bookingRepo.GetBookingsByDate(date)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings by date: %w", err)
	}
	return bookings, nil
}

func (s *bookingService) GetBookingsByDateRange(startDate, endDate string) ([]models.Booking, error) {
	if !utils.IsValidISODate(startDate) || !utils.IsValidISODate(endDate) {
		return nil, fmt.Errorf("%w: startDate and endDate must be in YYYY-MM-DD format", ErrBookingValidation)
	}
	bookings, err := s.bookingRepo.GetBookingsByDateRange(startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings by date range: %w", err)
	}
	return bookings, nil
}

func (s *bookingService) GetRecentBookings(limit int) ([]models.Booking, error) {
	if limit <= 0 {
		limit = 5
	}
	bookings, err := s.bookingRepo.GetRecentBookings(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent bookings: %w", err)
	}
	return bookings, nil
}

// GetBookingsByDay reshapes all bookings into per-date morning/evening
// summaries for the calendar overview. A "both" booking fills both slots.
func (s *bookingService) GetBookingsByDay() (map[string]models.DaySummary, error) {
	bookings, err := s.bookingRepo.GetAllBookings()
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	byDate := map[string]models.DaySummary{}
	for i := range bookings {
		b := bookings[i]
		day := byDate[b.Date]
		if b.Period == models.PeriodMorning || b.Period == models.PeriodBoth {
			day.Morning = b.Summary()
		}
		if b.Period == models.PeriodEvening || b.Period == models.PeriodBoth {
			day.Evening = b.Summary()
		}
		byDate[b.Date] = day
	}
	return byDate, nil
}

func (s *bookingService) UpdateBooking(id int64, req UpdateBookingRequest) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetBookingByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to find booking for update: %w", err)
	}

	// Merge partial fields onto the existing record.
	if req.Date != nil {
		booking.Date = *req.Date
	}
	if req.Period != nil {
		booking.Period = *req.Period
	}
	if req.TenantName != nil {
		booking.TenantName = *req.TenantName
	}
	if req.PhoneNumber != nil {
		booking.PhoneNumber = *req.PhoneNumber
	}
	if req.Paid != nil {
		booking.Paid = *req.Paid
	}
	if req.Remaining != nil {
		booking.Remaining = *req.Remaining
	}
	if req.PeopleCount != nil {
		booking.PeopleCount = *req.PeopleCount
	}
	if req.Notes != nil {
		booking.Notes = req.Notes
	}

	if err := validateBookingFields(booking); err != nil {
		return nil, err
	}

	updated, err := s.bookingRepo.UpdateBooking(booking)
	if err != nil {
		if errors.Is(err, repositories.ErrPeriodConflict) {
			return nil, ErrPeriodUnavailable
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to update booking in repository: %w", err)
	}

	s.refreshStats()
	return updated, nil
}

func (s *bookingService) DeleteBooking(id int64) error {
	if err := s.bookingRepo.DeleteBooking(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.refreshStats()
	return nil
}
