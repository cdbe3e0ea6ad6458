// Package frame implements a small date-indexed table used to assemble
// per-game regression features. Columns are float series aligned on game
// date; cells a column never set are NaN, which keeps the outer-join
// semantics of the feature builder explicit (a date present in any column
// survives, with missing values staying missing).
package frame

import (
	"math"
	"sort"
)

// Frame is a per-game-date table of float columns. Dates are unique and
// reported in ascending order.
type Frame struct {
	order []string
	data  map[string]map[string]float64 // column -> date -> value
	dates map[string]bool
}

// New creates an empty frame.
func New() *Frame {
	return &Frame{
		data:  make(map[string]map[string]float64),
		dates: make(map[string]bool),
	}
}

// Set stores a value for (column, date), registering both as needed.
// NaN values still register the date: the row exists, the cell is missing.
func (f *Frame) Set(col, date string, v float64) {
	cells, ok := f.data[col]
	if !ok {
		cells = make(map[string]float64)
		f.data[col] = cells
		f.order = append(f.order, col)
	}
	cells[date] = v
	f.dates[date] = true
}

// Columns returns the column names in insertion order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// HasColumn reports whether the named column exists.
func (f *Frame) HasColumn(col string) bool {
	_, ok := f.data[col]
	return ok
}

// Dates returns every date seen by any column, ascending.
func (f *Frame) Dates() []string {
	out := make([]string, 0, len(f.dates))
	for d := range f.dates {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// NumRows returns the number of distinct dates.
func (f *Frame) NumRows() int { return len(f.dates) }

// Value returns the cell for (column, date), NaN when unset.
func (f *Frame) Value(col, date string) float64 {
	if cells, ok := f.data[col]; ok {
		if v, ok := cells[date]; ok {
			return v
		}
	}
	return math.NaN()
}

// Column returns the named column aligned to Dates(), with NaN for dates the
// column never saw. Returns nil for unknown columns.
func (f *Frame) Column(col string) []float64 {
	cells, ok := f.data[col]
	if !ok {
		return nil
	}
	dates := f.Dates()
	out := make([]float64, len(dates))
	for i, d := range dates {
		if v, ok := cells[d]; ok {
			out[i] = v
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// MissingFraction returns the fraction of rows where the column is NaN or
// unset. Unknown columns are fully missing.
func (f *Frame) MissingFraction(col string) float64 {
	n := f.NumRows()
	if n == 0 {
		return 1
	}
	cells, ok := f.data[col]
	if !ok {
		return 1
	}
	missing := 0
	for d := range f.dates {
		v, ok := cells[d]
		if !ok || math.IsNaN(v) {
			missing++
		}
	}
	return float64(missing) / float64(n)
}
