package features

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hotelops/demand-forecaster/pkg/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDerive_CalendarFeatures(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		asOf time.Time
		want models.CalendarFeatures
	}{
		{
			name: "summer friday is holiday season but not weekend",
			date: date(2025, time.July, 4),
			asOf: date(2025, time.July, 4),
			want: models.CalendarFeatures{
				Year: 2025, Month: 7, DayOfWeek: 4,
				IsWeekend: 0, IsHolidaySeason: 1, DaysOut: 0,
			},
		},
		{
			name: "december saturday is weekend and holiday season",
			date: date(2025, time.December, 6),
			asOf: date(2025, time.December, 6),
			want: models.CalendarFeatures{
				Year: 2025, Month: 12, DayOfWeek: 5,
				IsWeekend: 1, IsHolidaySeason: 1, DaysOut: 0,
			},
		},
		{
			name: "march monday is neither",
			date: date(2025, time.March, 3),
			asOf: date(2025, time.March, 3),
			want: models.CalendarFeatures{
				Year: 2025, Month: 3, DayOfWeek: 0,
				IsWeekend: 0, IsHolidaySeason: 0, DaysOut: 0,
			},
		},
		{
			name: "future date counts days out",
			date: date(2025, time.July, 14),
			asOf: date(2025, time.July, 4),
			want: models.CalendarFeatures{
				Year: 2025, Month: 7, DayOfWeek: 0,
				IsWeekend: 0, IsHolidaySeason: 1, DaysOut: 10,
			},
		},
		{
			name: "past date clamps days out to zero",
			date: date(2025, time.July, 1),
			asOf: date(2025, time.July, 4),
			want: models.CalendarFeatures{
				Year: 2025, Month: 7, DayOfWeek: 1,
				IsWeekend: 0, IsHolidaySeason: 1, DaysOut: 0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Derive(tt.date, tt.asOf))
		})
	}
}

func TestDayOfWeek_MondayIndexed(t *testing.T) {
	// 2025-07-07 is a Monday; walk the whole week.
	monday := date(2025, time.July, 7)
	for i := 0; i < 7; i++ {
		assert.Equal(t, i, DayOfWeek(monday.AddDate(0, 0, i)))
	}
}

func TestDerive_WeekendOnlySaturdaySunday(t *testing.T) {
	monday := date(2025, time.July, 7)
	for i := 0; i < 7; i++ {
		d := monday.AddDate(0, 0, i)
		cal := Derive(d, d)
		if cal.DayOfWeek >= 5 {
			assert.Equal(t, 1, cal.IsWeekend, "dow %d", cal.DayOfWeek)
		} else {
			assert.Equal(t, 0, cal.IsWeekend, "dow %d", cal.DayOfWeek)
		}
	}
}
