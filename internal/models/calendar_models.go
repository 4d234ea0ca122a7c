package models

// DayBookings holds the bookings occupying a calendar cell. A "both" period
// booking fills morning and evening.
type DayBookings struct {
	Morning *Booking `json:"morning,omitempty"`
	Evening *Booking `json:"evening,omitempty"`
}

// CalendarDay is one cell of the 6x7 month grid. Cells filled from adjacent
// months carry IsCurrentMonth = false.
type CalendarDay struct {
	Day            int         `json:"day"`
	Date           string      `json:"date"`
	IsCurrentMonth bool        `json:"isCurrentMonth"`
	Bookings       DayBookings `json:"bookings"`
}
