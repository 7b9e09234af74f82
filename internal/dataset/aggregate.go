package dataset

import (
	"errors"
	"sort"
	"time"

	"github.com/hotelops/demand-forecaster/pkg/models"
)

// ErrNoRecords indicates the offline pipeline was handed an empty input.
// Training aborts on it; no artifact is produced.
var ErrNoRecords = errors.New("no booking records to aggregate")

// Aggregate reduces booking records into one DailyAggregate per distinct
// arrival date: means over lead time and rate, sums over occupancy and
// previous bookings, plus the booking count. Dates with zero bookings
// never appear. Output is ordered by ascending arrival date so identical
// input always yields an identical train/holdout split.
func Aggregate(records []models.BookingRecord) ([]models.DailyAggregate, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	byDate := make(map[time.Time]*models.DailyAggregate)
	for _, r := range records {
		day := time.Date(r.ArrivalDate.Year(), r.ArrivalDate.Month(), r.ArrivalDate.Day(), 0, 0, 0, 0, time.UTC)
		agg, ok := byDate[day]
		if !ok {
			agg = &models.DailyAggregate{ArrivalDate: day}
			byDate[day] = agg
		}
		agg.AvgLeadTime += float64(r.LeadTime)
		agg.AvgADR += r.ADR
		agg.StaysInWeekendNights += float64(r.StaysInWeekendNights)
		agg.StaysInWeekNights += float64(r.StaysInWeekNights)
		agg.Adults += float64(r.Adults)
		agg.Children += float64(r.Children)
		agg.Babies += float64(r.Babies)
		agg.SumPreviousBookings += float64(r.PreviousBookingsNotCanceled)
		agg.TotalBookings++
	}

	out := make([]models.DailyAggregate, 0, len(byDate))
	for _, agg := range byDate {
		n := float64(agg.TotalBookings)
		agg.AvgLeadTime /= n
		agg.AvgADR /= n
		out = append(out, *agg)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ArrivalDate.Before(out[j].ArrivalDate)
	})

	return out, nil
}
