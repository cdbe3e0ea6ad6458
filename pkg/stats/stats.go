// Package stats provides statistical utility functions for analyzers.
// Aggregates skip NaN entries so that missing Statcast readings never
// poison a mean or deviation.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Percentile calculates the p-th percentile of a sorted slice.
// The slice must already be sorted in ascending order.
// Returns 0 if the slice is empty.
func Percentile(sorted []float64, p int) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (p * len(sorted)) / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// Finite returns the finite values of xs, dropping NaN and Inf.
func Finite(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			out = append(out, x)
		}
	}
	return out
}

// Count returns the number of finite values in xs.
func Count(xs []float64) int {
	n := 0
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			n++
		}
	}
	return n
}

// Mean returns the mean of the finite values in xs, NaN when none exist.
func Mean(xs []float64) float64 {
	vals := Finite(xs)
	if len(vals) == 0 {
		return math.NaN()
	}
	return stat.Mean(vals, nil)
}

// StdDev returns the sample standard deviation of the finite values in xs,
// NaN when fewer than two exist.
func StdDev(xs []float64) float64 {
	vals := Finite(xs)
	if len(vals) < 2 {
		return math.NaN()
	}
	return stat.StdDev(vals, nil)
}

// Correlation returns the Pearson correlation of two equal-length series,
// NaN when either side has zero variance.
func Correlation(xs, ys []float64) float64 {
	if len(xs) != len(ys) || len(xs) < 2 {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}
