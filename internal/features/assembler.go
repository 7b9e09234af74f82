package features

import (
	"math"
	"time"

	"github.com/hotelops/demand-forecaster/pkg/models"
)

// DemandDrivers are the explicit inputs of a room-demand prediction.
// They arrive either directly from the request or derived from a target
// date plus the historical averages table.
type DemandDrivers struct {
	Year                int     `json:"year"`
	Month               int     `json:"month"`
	DayOfWeek           int     `json:"day_of_week"`
	IsWeekend           int     `json:"is_weekend"`
	IsHolidaySeason     int     `json:"is_holiday_season"`
	AvgLeadTime         float64 `json:"avg_lead_time"`
	SumPreviousBookings float64 `json:"sum_previous_bookings"`
	AvgADR              float64 `json:"avg_adr"`
	TotalChildren       float64 `json:"total_children"`
}

// AssembleCheckinsTraining builds the check-in model's training vector
// from one daily aggregate. days_out has no recorded booking snapshot in
// historical data, so the rounded average lead time stands in for it.
func AssembleCheckinsTraining(agg models.DailyAggregate) (Vector, error) {
	cal := Derive(agg.ArrivalDate, agg.ArrivalDate)

	v := Vector{
		"avg_lead_time":           agg.AvgLeadTime,
		"stays_in_weekend_nights": agg.StaysInWeekendNights,
		"stays_in_week_nights":    agg.StaysInWeekNights,
		"adults":                  agg.Adults,
		"children":                agg.Children,
		"babies":                  agg.Babies,
		"day_of_week":             float64(cal.DayOfWeek),
		"is_weekend":              float64(cal.IsWeekend),
		"month":                   float64(cal.Month),
		"is_holiday_season":       float64(cal.IsHolidaySeason),
		"days_out":                math.Round(agg.AvgLeadTime),
	}

	schema := CheckinsSchema()
	if err := schema.Validate(v); err != nil {
		return nil, err
	}
	return v, nil
}

// AssembleCheckinsServing builds the check-in model's serving vector for a
// target date. days_out is measured from asOf and doubles as the lead-time
// value, mirroring the training-time proxy; the occupancy composition
// comes from the frozen day-of-week averages.
func AssembleCheckinsServing(date, asOf time.Time, averages *AveragesTable) (Vector, error) {
	cal := Derive(date, asOf)
	avg := averages.Lookup(cal.DayOfWeek)
	leadTime := float64(cal.DaysOut)

	v := Vector{
		"avg_lead_time":           leadTime,
		"stays_in_weekend_nights": avg.StaysInWeekendNights,
		"stays_in_week_nights":    avg.StaysInWeekNights,
		"adults":                  avg.Adults,
		"children":                avg.Children,
		"babies":                  avg.Babies,
		"day_of_week":             float64(cal.DayOfWeek),
		"is_weekend":              float64(cal.IsWeekend),
		"month":                   float64(cal.Month),
		"is_holiday_season":       float64(cal.IsHolidaySeason),
		"days_out":                float64(cal.DaysOut),
	}

	schema := CheckinsSchema()
	if err := schema.Validate(v); err != nil {
		return nil, err
	}
	return v, nil
}

// AssembleDemandTraining builds the demand model's training vector from
// one daily aggregate.
func AssembleDemandTraining(agg models.DailyAggregate) (Vector, error) {
	cal := Derive(agg.ArrivalDate, agg.ArrivalDate)
	return AssembleDemand(DemandDrivers{
		Year:                cal.Year,
		Month:               cal.Month,
		DayOfWeek:           cal.DayOfWeek,
		IsWeekend:           cal.IsWeekend,
		IsHolidaySeason:     cal.IsHolidaySeason,
		AvgLeadTime:         agg.AvgLeadTime,
		SumPreviousBookings: agg.SumPreviousBookings,
		AvgADR:              agg.AvgADR,
		TotalChildren:       agg.Children,
	})
}

// AssembleDemand builds the demand vector from explicit drivers. The month
// never appears as its own column; it only selects the dummy block entry.
func AssembleDemand(d DemandDrivers) (Vector, error) {
	v := Vector{
		"year":                  float64(d.Year),
		"day_of_week":           float64(d.DayOfWeek),
		"is_weekend":            float64(d.IsWeekend),
		"is_holiday_season":     float64(d.IsHolidaySeason),
		"avg_lead_time":         d.AvgLeadTime,
		"sum_previous_bookings": d.SumPreviousBookings,
		"avg_adr":               d.AvgADR,
		"total_children":        d.TotalChildren,
	}
	for name, value := range MonthDummies(d.Month) {
		v[name] = value
	}

	schema := DemandSchema()
	if err := schema.Validate(v); err != nil {
		return nil, err
	}
	return v, nil
}

// DriversForDate derives demand drivers from a target date, using the
// averages table for the lead-time estimate and leaving the remaining
// history-derived drivers at zero unless the caller overrides them.
func DriversForDate(date, asOf time.Time, averages *AveragesTable) DemandDrivers {
	cal := Derive(date, asOf)
	avg := averages.Lookup(cal.DayOfWeek)
	return DemandDrivers{
		Year:            cal.Year,
		Month:           cal.Month,
		DayOfWeek:       cal.DayOfWeek,
		IsWeekend:       cal.IsWeekend,
		IsHolidaySeason: cal.IsHolidaySeason,
		AvgLeadTime:     avg.LeadTime,
		TotalChildren:   avg.Children,
	}
}
