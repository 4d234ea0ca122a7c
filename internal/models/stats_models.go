package models

import "time"

// Stats is the derived aggregate snapshot, fully recomputed after every
// booking mutation and otherwise served as-is.
type Stats struct {
	TodayBookings int       `json:"todayBookings"`
	WeekBookings  int       `json:"weekBookings"`
	TotalPayments int       `json:"totalPayments"`
	TotalTenants  int       `json:"totalTenants"`
	LastUpdated   time.Time `json:"lastUpdated"`
}
