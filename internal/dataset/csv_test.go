package dataset

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseHeader = "arrival_date_year,arrival_date_day_of_month,lead_time," +
	"stays_in_weekend_nights,stays_in_week_nights,adults,children,babies,adr," +
	"previous_bookings_not_canceled"

// The cleaned export keeps eleven month columns in the encoder's
// alphabetical order; April is the dropped baseline.
const monthHeader = "arrival_date_month_August,arrival_date_month_December," +
	"arrival_date_month_February,arrival_date_month_January," +
	"arrival_date_month_July,arrival_date_month_June," +
	"arrival_date_month_March,arrival_date_month_May," +
	"arrival_date_month_November,arrival_date_month_October," +
	"arrival_date_month_September"

const testHeader = baseHeader + "," + monthHeader + "\n"

const (
	julyCells     = "0,0,0,0,1,0,0,0,0,0,0"
	decemberCells = "0,1,0,0,0,0,0,0,0,0,0"
	allZeroCells  = "0,0,0,0,0,0,0,0,0,0,0"
)

func TestReadRecords(t *testing.T) {
	data := testHeader +
		"2025,4,45,1,2,2,0,0,120.5,3," + julyCells + "\n" +
		"2025,6,10,2,0,2,1,0,99.0,0," + decemberCells + "\n"

	records, skipped, err := ReadRecords(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 0, skipped)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, time.Date(2025, time.July, 4, 0, 0, 0, 0, time.UTC), first.ArrivalDate)
	assert.Equal(t, 45, first.LeadTime)
	assert.Equal(t, 2, first.Adults)
	assert.Equal(t, 120.5, first.ADR)
	assert.Equal(t, 3, first.PreviousBookingsNotCanceled)

	second := records[1]
	assert.Equal(t, time.December, second.ArrivalDate.Month())
}

func TestReadRecords_BaselineMonth(t *testing.T) {
	// All month columns zero: the row belongs to the one month missing
	// from the header, April for this export.
	data := testHeader + "2025,15,5,0,1,2,0,0,80.0,0," + allZeroCells + "\n"

	records, _, err := ReadRecords(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, time.April, records[0].ArrivalDate.Month())
}

func TestReadRecords_AmbiguousBaselineSkipsAllZeroRows(t *testing.T) {
	// A partial export without eleven month columns can still resolve
	// one-hot rows, but all-zero rows have no single candidate month.
	header := baseHeader + ",arrival_date_month_July,arrival_date_month_December\n"
	data := header +
		"2025,4,45,1,2,2,0,0,120.5,3,1,0\n" +
		"2025,15,5,0,1,2,0,0,80.0,0,0,0\n"

	records, skipped, err := ReadRecords(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	require.Len(t, records, 1)
	assert.Equal(t, time.July, records[0].ArrivalDate.Month())
}

func TestReadRecords_FloatEncodedInts(t *testing.T) {
	// Numeric exports frequently carry integers as floats and booleans as
	// 1.0/True.
	data := testHeader + "2025.0,4.0,45.0,1.0,2.0,2.0,0.0,0.0,120.5,3.0," +
		"0.0,0.0,0.0,0.0,True,0.0,0.0,0.0,0.0,0.0,0.0\n"

	records, skipped, err := ReadRecords(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 0, skipped)
	require.Len(t, records, 1)
	assert.Equal(t, 45, records[0].LeadTime)
	assert.Equal(t, time.July, records[0].ArrivalDate.Month())
}

func TestReadRecords_SkipsMalformedRows(t *testing.T) {
	data := testHeader +
		"2025,4,45,1,2,2,0,0,120.5,3," + julyCells + "\n" +
		"2025,not-a-day,45,1,2,2,0,0,120.5,3," + julyCells + "\n" +
		"2025,32,45,1,2,2,0,0,120.5,3," + julyCells + "\n" // day-of-month rollover

	records, skipped, err := ReadRecords(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 2, skipped)
	assert.Len(t, records, 1)
}

func TestReadRecords_MissingColumn(t *testing.T) {
	data := "arrival_date_year,arrival_date_month_July\n2025,1\n"

	_, _, err := ReadRecords(strings.NewReader(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required column")
}

func TestReadRecords_NoMonthColumns(t *testing.T) {
	data := baseHeader + "\n2025,4,45,1,2,2,0,0,120.5,3\n"

	_, _, err := ReadRecords(strings.NewReader(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "one-hot month columns")
}
