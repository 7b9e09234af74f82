package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelops/demand-forecaster/pkg/models"
)

func arrival(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAggregate(t *testing.T) {
	records := []models.BookingRecord{
		{ArrivalDate: arrival(2025, time.July, 4), LeadTime: 10, Adults: 2, Children: 1, ADR: 100, PreviousBookingsNotCanceled: 1, StaysInWeekendNights: 2},
		{ArrivalDate: arrival(2025, time.July, 4), LeadTime: 30, Adults: 1, ADR: 200, StaysInWeekNights: 3},
		{ArrivalDate: arrival(2025, time.July, 2), LeadTime: 5, Adults: 2, ADR: 80},
	}

	aggregates, err := Aggregate(records)
	require.NoError(t, err)
	require.Len(t, aggregates, 2)

	// Sorted ascending by arrival date.
	assert.Equal(t, arrival(2025, time.July, 2), aggregates[0].ArrivalDate)
	assert.Equal(t, arrival(2025, time.July, 4), aggregates[1].ArrivalDate)

	july4 := aggregates[1]
	assert.Equal(t, 2, july4.TotalBookings)
	assert.InDelta(t, 20.0, july4.AvgLeadTime, 1e-9)  // mean of 10, 30
	assert.InDelta(t, 150.0, july4.AvgADR, 1e-9)      // mean of 100, 200
	assert.InDelta(t, 3.0, july4.Adults, 1e-9)        // sum
	assert.InDelta(t, 1.0, july4.Children, 1e-9)      // sum
	assert.InDelta(t, 1.0, july4.SumPreviousBookings, 1e-9)
	assert.InDelta(t, 2.0, july4.StaysInWeekendNights, 1e-9)
	assert.InDelta(t, 3.0, july4.StaysInWeekNights, 1e-9)

	july2 := aggregates[0]
	assert.Equal(t, 1, july2.TotalBookings)
	assert.InDelta(t, 5.0, july2.AvgLeadTime, 1e-9)
}

func TestAggregate_CollapsesTimeOfDay(t *testing.T) {
	records := []models.BookingRecord{
		{ArrivalDate: time.Date(2025, time.July, 4, 9, 30, 0, 0, time.UTC)},
		{ArrivalDate: time.Date(2025, time.July, 4, 18, 0, 0, 0, time.UTC)},
	}

	aggregates, err := Aggregate(records)
	require.NoError(t, err)
	require.Len(t, aggregates, 1)
	assert.Equal(t, 2, aggregates[0].TotalBookings)
}

func TestAggregate_NoRecords(t *testing.T) {
	_, err := Aggregate(nil)
	assert.ErrorIs(t, err, ErrNoRecords)

	_, err = Aggregate([]models.BookingRecord{})
	assert.ErrorIs(t, err, ErrNoRecords)
}
