package models

import "math"

// Safe converts a possibly-NaN/Inf float into a JSON-safe nullable value.
// Mirrors the boundary rule that "no data" serializes as null, never NaN.
func Safe(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Unsafe is the inverse of Safe: nil becomes NaN.
func Unsafe(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

// SafeSlice converts a slice of floats, mapping NaN/Inf entries to null.
func SafeSlice(vs []float64) []*float64 {
	out := make([]*float64, len(vs))
	for i, v := range vs {
		out[i] = Safe(v)
	}
	return out
}
