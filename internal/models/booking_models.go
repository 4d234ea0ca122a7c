package models

import "time"

// DateLayout is the wire format for booking dates. ISO dates sort
// lexicographically, which the range queries rely on.
const DateLayout = "2006-01-02"

// Booking period values. A "both" booking occupies the whole day.
const (
	PeriodMorning = "morning"
	PeriodEvening = "evening"
	PeriodBoth    = "both"
)

// Booking represents a reservation of the apartment for a single date.
type Booking struct {
	ID          int64     `json:"id"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Period      string    `json:"period"`
	TenantName  string    `json:"tenantName"`
	PhoneNumber string    `json:"phoneNumber"`
	Paid        int       `json:"paid"`
	Remaining   int       `json:"remaining"`
	PeopleCount int       `json:"peopleCount"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   int64     `json:"createdBy"`
}

// BookingSummary is the trimmed shape shown on calendar cells and day lists.
type BookingSummary struct {
	ID          int64  `json:"id"`
	TenantName  string `json:"tenantName"`
	PhoneNumber string `json:"phoneNumber"`
	Paid        int    `json:"paid"`
	Remaining   int    `json:"remaining"`
	PeopleCount int    `json:"peopleCount"`
}

// DaySummary groups a date's occupancy by period slot.
type DaySummary struct {
	Morning *BookingSummary `json:"morning,omitempty"`
	Evening *BookingSummary `json:"evening,omitempty"`
}

// Summary projects a booking into its calendar summary form.
func (b *Booking) Summary() *BookingSummary {
	return &BookingSummary{
		ID:          b.ID,
		TenantName:  b.TenantName,
		PhoneNumber: b.PhoneNumber,
		Paid:        b.Paid,
		Remaining:   b.Remaining,
		PeopleCount: b.PeopleCount,
	}
}

// IsValidPeriod reports whether period is one of the three enumerated values.
func IsValidPeriod(period string) bool {
	switch period {
	case PeriodMorning, PeriodEvening, PeriodBoth:
		return true
	}
	return false
}

// PeriodsOverlap reports whether two bookings on the same date would share
// time. The rule is symmetric: "both" overlaps everything, and equal periods
// overlap each other.
func PeriodsOverlap(a, b string) bool {
	return a == PeriodBoth || b == PeriodBoth || a == b
}

// HasConflict reports whether candidatePeriod collides with any booking in
// existing, ignoring the booking with excludeID. Pass excludeID 0 when
// creating; ids are assigned starting at 1.
func HasConflict(candidatePeriod string, existing []Booking, excludeID int64) bool {
	for _, b := range existing {
		if excludeID != 0 && b.ID == excludeID {
			continue
		}
		if PeriodsOverlap(candidatePeriod, b.Period) {
			return true
		}
	}
	return false
}
