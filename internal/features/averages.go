package features

import (
	"github.com/hotelops/demand-forecaster/pkg/models"
)

// defaultProfile is the global fallback used when a day of week has no
// historical entry. Lookup must never block a prediction.
var defaultProfile = models.AverageProfile{
	LeadTime:             100.0,
	StaysInWeekendNights: 1.0,
	StaysInWeekNights:    2.0,
	Adults:               2.0,
	Children:             0.1,
	Babies:               0.0,
}

// AveragesTable holds per-day-of-week historical averages. It is built
// once by the offline pipeline, frozen into the model artifact, and only
// read afterwards.
type AveragesTable struct {
	ByDay map[int]models.AverageProfile `json:"by_day"`
}

// BuildAverages reduces daily aggregates into one per-booking average
// profile per day of week.
func BuildAverages(aggregates []models.DailyAggregate) *AveragesTable {
	type accum struct {
		profile models.AverageProfile
		days    int
	}
	sums := make(map[int]*accum)

	for _, agg := range aggregates {
		if agg.TotalBookings == 0 {
			continue
		}
		dow := DayOfWeek(agg.ArrivalDate)
		a, ok := sums[dow]
		if !ok {
			a = &accum{}
			sums[dow] = a
		}
		n := float64(agg.TotalBookings)
		a.profile.LeadTime += agg.AvgLeadTime
		a.profile.StaysInWeekendNights += agg.StaysInWeekendNights / n
		a.profile.StaysInWeekNights += agg.StaysInWeekNights / n
		a.profile.Adults += agg.Adults / n
		a.profile.Children += agg.Children / n
		a.profile.Babies += agg.Babies / n
		a.days++
	}

	table := &AveragesTable{ByDay: make(map[int]models.AverageProfile, len(sums))}
	for dow, a := range sums {
		n := float64(a.days)
		table.ByDay[dow] = models.AverageProfile{
			LeadTime:             a.profile.LeadTime / n,
			StaysInWeekendNights: a.profile.StaysInWeekendNights / n,
			StaysInWeekNights:    a.profile.StaysInWeekNights / n,
			Adults:               a.profile.Adults / n,
			Children:             a.profile.Children / n,
			Babies:               a.profile.Babies / n,
		}
	}
	return table
}

// Lookup returns the profile for a day of week, falling back to the fixed
// global default when the key is absent.
func (t *AveragesTable) Lookup(dayOfWeek int) models.AverageProfile {
	if t == nil || t.ByDay == nil {
		return defaultProfile
	}
	if profile, ok := t.ByDay[dayOfWeek]; ok {
		return profile
	}
	return defaultProfile
}

// DefaultProfile exposes the global fallback profile.
func DefaultProfile() models.AverageProfile {
	return defaultProfile
}
