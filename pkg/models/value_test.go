package models

import (
	"math"
	"testing"
)

func TestSafe(t *testing.T) {
	if Safe(math.NaN()) != nil {
		t.Error("Safe(NaN) should be nil")
	}
	if Safe(math.Inf(1)) != nil || Safe(math.Inf(-1)) != nil {
		t.Error("Safe(Inf) should be nil")
	}
	if v := Safe(0); v == nil || *v != 0 {
		t.Error("Safe(0) should be a non-nil zero, not null")
	}
	if v := Safe(92.4); v == nil || *v != 92.4 {
		t.Errorf("Safe(92.4) = %v", v)
	}
}

func TestUnsafe(t *testing.T) {
	if !math.IsNaN(Unsafe(nil)) {
		t.Error("Unsafe(nil) should be NaN")
	}
	v := 3.5
	if Unsafe(&v) != 3.5 {
		t.Error("Unsafe should round-trip through Safe")
	}
}

func TestSafeSlice(t *testing.T) {
	out := SafeSlice([]float64{1, math.NaN(), math.Inf(1)})
	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}
	if out[0] == nil || *out[0] != 1 {
		t.Error("finite value should survive")
	}
	if out[1] != nil || out[2] != nil {
		t.Error("NaN and Inf should map to nil")
	}
}
