package features

import (
	"time"

	"github.com/hotelops/demand-forecaster/pkg/models"
)

// Months treated as the high-demand holiday season. Fixed policy, not
// configurable.
var holidaySeasonMonths = map[time.Month]bool{
	time.July:     true,
	time.August:   true,
	time.December: true,
}

// DayOfWeek converts Go's Sunday=0 weekday to the Monday=0 convention the
// models were trained with.
func DayOfWeek(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// Derive computes calendar features for a target arrival date.
//
// asOf is the reference date for days_out (normally "today" at serving
// time); days_out is clamped at zero for dates in the past. Training rows
// have no recorded booking snapshot, so the offline pipeline does not call
// this for days_out at all and reuses the rounded average lead time as a
// proxy instead.
func Derive(date, asOf time.Time) models.CalendarFeatures {
	dow := DayOfWeek(date)

	isWeekend := 0
	if dow >= 5 {
		isWeekend = 1
	}

	isHoliday := 0
	if holidaySeasonMonths[date.Month()] {
		isHoliday = 1
	}

	daysOut := int(midnight(date).Sub(midnight(asOf)).Hours() / 24)
	if daysOut < 0 {
		daysOut = 0
	}

	return models.CalendarFeatures{
		Year:            date.Year(),
		Month:           int(date.Month()),
		DayOfWeek:       dow,
		IsWeekend:       isWeekend,
		IsHolidaySeason: isHoliday,
		DaysOut:         daysOut,
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
