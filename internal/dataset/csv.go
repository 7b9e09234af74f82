package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hotelops/demand-forecaster/pkg/models"
)

// The cleaned bookings export carries the arrival date split across a
// year column, a day-of-month column, and one-hot month-name columns
// (arrival_date_month_August etc., with the alphabetically first month
// name dropped by the upstream encoder — April, for a full export). The
// loader reconstructs real dates from that shape, inferring the dropped
// month from whichever of the twelve has no column in the header.
const (
	colYear       = "arrival_date_year"
	colDayOfMonth = "arrival_date_day_of_month"
	monthPrefix   = "arrival_date_month_"
)

var monthsByName = map[string]time.Month{
	"January": time.January, "February": time.February, "March": time.March,
	"April": time.April, "May": time.May, "June": time.June,
	"July": time.July, "August": time.August, "September": time.September,
	"October": time.October, "November": time.November, "December": time.December,
}

// LoadCSV reads booking records from the cleaned bookings CSV file.
// Rows whose arrival date cannot be reconstructed are skipped; the count
// of skipped rows is returned for the caller to log.
func LoadCSV(path string) ([]models.BookingRecord, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	return ReadRecords(f)
}

// ReadRecords parses booking records from CSV data.
func ReadRecords(r io.Reader) ([]models.BookingRecord, int, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read dataset header: %w", err)
	}

	idx := make(map[string]int, len(header))
	monthCols := make(map[int]time.Month)
	for i, name := range header {
		name = strings.TrimSpace(name)
		idx[name] = i
		if monthName, ok := strings.CutPrefix(name, monthPrefix); ok {
			if m, known := monthsByName[monthName]; known {
				monthCols[i] = m
			}
		}
	}

	required := []string{
		colYear, colDayOfMonth, "lead_time",
		"stays_in_weekend_nights", "stays_in_week_nights",
		"adults", "children", "babies", "adr",
		"previous_bookings_not_canceled",
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, 0, fmt.Errorf("dataset is missing required column %q", name)
		}
	}
	if len(monthCols) == 0 {
		return nil, 0, fmt.Errorf("dataset has no one-hot month columns (%s*)", monthPrefix)
	}
	baseline, hasBaseline := baselineMonth(monthCols)

	var records []models.BookingRecord
	skipped := 0

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to read dataset row: %w", err)
		}

		record, ok := parseRow(row, idx, monthCols, baseline, hasBaseline)
		if !ok {
			skipped++
			continue
		}
		records = append(records, record)
	}

	return records, skipped, nil
}

func parseRow(row []string, idx map[string]int, monthCols map[int]time.Month, baseline time.Month, hasBaseline bool) (models.BookingRecord, bool) {
	year, ok := cellInt(row, idx[colYear])
	if !ok {
		return models.BookingRecord{}, false
	}
	day, ok := cellInt(row, idx[colDayOfMonth])
	if !ok {
		return models.BookingRecord{}, false
	}

	month, ok := reconstructMonth(row, monthCols, baseline, hasBaseline)
	if !ok {
		return models.BookingRecord{}, false
	}

	leadTime, ok1 := cellInt(row, idx["lead_time"])
	weekendNights, ok2 := cellInt(row, idx["stays_in_weekend_nights"])
	weekNights, ok3 := cellInt(row, idx["stays_in_week_nights"])
	adults, ok4 := cellInt(row, idx["adults"])
	children, ok5 := cellInt(row, idx["children"])
	babies, ok6 := cellInt(row, idx["babies"])
	adr, ok7 := cellFloat(row, idx["adr"])
	prevBookings, ok8 := cellInt(row, idx["previous_bookings_not_canceled"])
	if !(ok1 && ok2 && ok3 && ok4 && ok5 && ok6 && ok7 && ok8) {
		return models.BookingRecord{}, false
	}

	arrival := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	// Reject rollovers from out-of-range day-of-month values.
	if arrival.Day() != day || arrival.Month() != month {
		return models.BookingRecord{}, false
	}

	return models.BookingRecord{
		ArrivalDate:                 arrival,
		LeadTime:                    leadTime,
		StaysInWeekendNights:        weekendNights,
		StaysInWeekNights:           weekNights,
		Adults:                      adults,
		Children:                    children,
		Babies:                      babies,
		ADR:                         adr,
		PreviousBookingsNotCanceled: prevBookings,
	}, true
}

// baselineMonth infers the month the upstream encoder dropped: with
// eleven of the twelve month columns present, the absent one is the
// baseline. Any other column count leaves the baseline ambiguous and
// all-zero rows unresolvable.
func baselineMonth(monthCols map[int]time.Month) (time.Month, bool) {
	if len(monthCols) != len(monthsByName)-1 {
		return 0, false
	}
	present := make(map[time.Month]bool, len(monthCols))
	for _, m := range monthCols {
		present[m] = true
	}
	for _, m := range monthsByName {
		if !present[m] {
			return m, true
		}
	}
	return 0, false
}

// reconstructMonth finds the month column set to true. All-zero rows
// belong to the dropped baseline month, when the header pins one down.
func reconstructMonth(row []string, monthCols map[int]time.Month, baseline time.Month, hasBaseline bool) (time.Month, bool) {
	for i, month := range monthCols {
		if i >= len(row) {
			return 0, false
		}
		if cellTrue(row[i]) {
			return month, true
		}
	}
	if !hasBaseline {
		return 0, false
	}
	return baseline, true
}

func cellTrue(s string) bool {
	switch strings.TrimSpace(s) {
	case "1", "1.0", "true", "True", "TRUE":
		return true
	}
	return false
}

func cellInt(row []string, i int) (int, bool) {
	if i >= len(row) {
		return 0, false
	}
	s := strings.TrimSpace(row[i])
	if v, err := strconv.Atoi(s); err == nil {
		return v, true
	}
	// Numeric exports sometimes carry integer values as floats (12.0).
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f), true
	}
	return 0, false
}

func cellFloat(row []string, i int) (float64, bool) {
	if i >= len(row) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
