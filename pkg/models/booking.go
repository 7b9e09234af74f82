package models

import "time"

// BookingRecord is one historical hotel booking row, either read from a
// CSV export or from the bookings table.
type BookingRecord struct {
	ID                          int       `json:"id,omitempty" db:"id"`
	ArrivalDate                 time.Time `json:"arrival_date" db:"arrival_date"`
	LeadTime                    int       `json:"lead_time" db:"lead_time"`
	StaysInWeekendNights        int       `json:"stays_in_weekend_nights" db:"stays_in_weekend_nights"`
	StaysInWeekNights           int       `json:"stays_in_week_nights" db:"stays_in_week_nights"`
	Adults                      int       `json:"adults" db:"adults"`
	Children                    int       `json:"children" db:"children"`
	Babies                      int       `json:"babies" db:"babies"`
	ADR                         float64   `json:"adr" db:"adr"`
	PreviousBookingsNotCanceled int       `json:"previous_bookings_not_canceled" db:"previous_bookings_not_canceled"`
}

// DailyAggregate collapses all bookings arriving on one date into a single
// training row. AvgLeadTime and AvgADR are per-booking means; the occupancy
// fields and SumPreviousBookings are sums over the day; TotalBookings is
// the row count and doubles as the check-in model's training label.
type DailyAggregate struct {
	ArrivalDate          time.Time `json:"arrival_date"`
	AvgLeadTime          float64   `json:"avg_lead_time"`
	StaysInWeekendNights float64   `json:"stays_in_weekend_nights"`
	StaysInWeekNights    float64   `json:"stays_in_week_nights"`
	Adults               float64   `json:"adults"`
	Children             float64   `json:"children"`
	Babies               float64   `json:"babies"`
	SumPreviousBookings  float64   `json:"sum_previous_bookings"`
	AvgADR               float64   `json:"avg_adr"`
	TotalBookings        int       `json:"total_bookings"`
}

// CalendarFeatures are the date-derived inputs shared by both models.
// DayOfWeek is Monday-indexed (Monday=0 .. Sunday=6) and IsWeekend holds
// exactly for Saturday and Sunday.
type CalendarFeatures struct {
	Year            int `json:"year"`
	Month           int `json:"month"`
	DayOfWeek       int `json:"day_of_week"`
	IsWeekend       int `json:"is_weekend"`
	IsHolidaySeason int `json:"is_holiday_season"`
	DaysOut         int `json:"days_out"`
}

// AverageProfile holds per-booking historical averages for one day of
// week. The serving path uses it to stand in for booking composition that
// is unknown at prediction time.
type AverageProfile struct {
	LeadTime             float64 `json:"lead_time"`
	StaysInWeekendNights float64 `json:"stays_in_weekend_nights"`
	StaysInWeekNights    float64 `json:"stays_in_week_nights"`
	Adults               float64 `json:"adults"`
	Children             float64 `json:"children"`
	Babies               float64 `json:"babies"`
}
