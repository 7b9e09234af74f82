package features

import (
	"errors"
	"fmt"
	"sort"
)

// ErrSchemaMismatch indicates a feature vector whose key set diverges from
// the schema a model was trained against. This is always a programming or
// deployment defect, never a transient condition, and is surfaced loudly
// instead of being padded with zeros.
var ErrSchemaMismatch = errors.New("feature vector does not match schema")

type ColumnKind string

const (
	KindInt   ColumnKind = "int"
	KindFloat ColumnKind = "float"
)

// Column is one named, typed entry of a feature schema.
type Column struct {
	Name string     `json:"name"`
	Kind ColumnKind `json:"kind"`
}

// Schema is the fixed, ordered list of columns a trained model expects.
// It is frozen at training time and persisted inside the model artifact;
// the exact same schema must produce every inference-time vector.
type Schema struct {
	Columns []Column `json:"columns"`
}

// Vector maps schema column names to numeric values. Vectors stay named
// end to end; positional slices exist only inside the model adapter.
type Vector map[string]float64

func (s Schema) Len() int {
	return len(s.Columns)
}

func (s Schema) Names() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// Validate checks that the vector's key set equals the schema's column set
// exactly. Missing and unexpected keys are both reported.
func (s Schema) Validate(v Vector) error {
	var missing, extra []string

	want := make(map[string]bool, len(s.Columns))
	for _, c := range s.Columns {
		want[c.Name] = true
		if _, ok := v[c.Name]; !ok {
			missing = append(missing, c.Name)
		}
	}
	for name := range v {
		if !want[name] {
			extra = append(extra, name)
		}
	}

	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}

	sort.Strings(missing)
	sort.Strings(extra)
	return fmt.Errorf("%w: missing=%v extra=%v", ErrSchemaMismatch, missing, extra)
}

// Ordered flattens a vector into schema order. This is the single point
// where named features become positional values.
func (s Schema) Ordered(v Vector) ([]float64, error) {
	if err := s.Validate(v); err != nil {
		return nil, err
	}
	out := make([]float64, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = v[c.Name]
	}
	return out, nil
}

// Equal reports whether two schemas have identical columns in identical
// order.
func (s Schema) Equal(other Schema) bool {
	if len(s.Columns) != len(other.Columns) {
		return false
	}
	for i, c := range s.Columns {
		if other.Columns[i] != c {
			return false
		}
	}
	return true
}

// CheckinsSchema is the 11-column schema of the daily check-in model.
// Month stays a plain numeric column here; only the demand model uses
// dummy encoding.
func CheckinsSchema() Schema {
	return Schema{Columns: []Column{
		{Name: "avg_lead_time", Kind: KindFloat},
		{Name: "stays_in_weekend_nights", Kind: KindFloat},
		{Name: "stays_in_week_nights", Kind: KindFloat},
		{Name: "adults", Kind: KindFloat},
		{Name: "children", Kind: KindFloat},
		{Name: "babies", Kind: KindFloat},
		{Name: "day_of_week", Kind: KindInt},
		{Name: "is_weekend", Kind: KindInt},
		{Name: "month", Kind: KindInt},
		{Name: "is_holiday_season", Kind: KindInt},
		{Name: "days_out", Kind: KindInt},
	}}
}

// DemandSchema is the room-demand schema: eight driver columns followed by
// the month dummy block (month_2..month_12, month 1 is the dropped
// baseline).
func DemandSchema() Schema {
	cols := []Column{
		{Name: "year", Kind: KindInt},
		{Name: "day_of_week", Kind: KindInt},
		{Name: "is_weekend", Kind: KindInt},
		{Name: "is_holiday_season", Kind: KindInt},
		{Name: "avg_lead_time", Kind: KindFloat},
		{Name: "sum_previous_bookings", Kind: KindFloat},
		{Name: "avg_adr", Kind: KindFloat},
		{Name: "total_children", Kind: KindFloat},
	}
	for _, name := range MonthDummyColumns() {
		cols = append(cols, Column{Name: name, Kind: KindInt})
	}
	return Schema{Columns: cols}
}
