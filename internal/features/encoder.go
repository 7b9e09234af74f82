package features

import "fmt"

const (
	dummyMonthFirst = 2
	dummyMonthLast  = 12
)

// MonthDummyColumns returns the dummy column names month_2..month_12 in
// schema order. Month 1 is the dropped baseline and has no column of its
// own: it is implied by the all-zero row.
func MonthDummyColumns() []string {
	cols := make([]string, 0, dummyMonthLast-dummyMonthFirst+1)
	for m := dummyMonthFirst; m <= dummyMonthLast; m++ {
		cols = append(cols, fmt.Sprintf("month_%d", m))
	}
	return cols
}

// MonthDummies one-hot encodes a month with the drop-first convention.
//
// An out-of-domain month (outside 1..12) encodes as all zeros, collapsing
// to the baseline. That mirrors the trained models' behavior and is kept
// as an explicit policy; the HTTP boundary validates the month range
// separately so clients cannot reach this path with garbage input.
func MonthDummies(month int) Vector {
	v := make(Vector, dummyMonthLast-dummyMonthFirst+1)
	for m := dummyMonthFirst; m <= dummyMonthLast; m++ {
		v[fmt.Sprintf("month_%d", m)] = 0
	}
	if month >= dummyMonthFirst && month <= dummyMonthLast {
		v[fmt.Sprintf("month_%d", month)] = 1
	}
	return v
}
