package testutil

import (
	"fmt"
	"math"
	"testing"
)

// MaxAbsDiff returns the largest |a[i]-b[i]| and the index where it occurs.
// The index is -1 for empty slices.
func MaxAbsDiff(a, b []float64) (diff float64, index int, err error) {
	if len(a) != len(b) {
		return 0, -1, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	index = -1
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if index < 0 || d > diff || math.IsNaN(d) {
			diff, index = d, i
			if math.IsNaN(d) {
				break
			}
		}
	}
	return diff, index, nil
}

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair differs by more than eps.
func RequireSliceNearlyEqual(t testing.TB, got, want []float64, eps float64) {
	t.Helper()
	diff, i, err := MaxAbsDiff(got, want)
	if err != nil {
		t.Fatal(err)
	}
	if !(diff <= eps) && i >= 0 {
		t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
	}
}

// RequireIdentical fails t unless got and want match bit for bit.
func RequireIdentical(t testing.TB, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if math.Float64bits(got[i]) != math.Float64bits(want[i]) {
			t.Fatalf("index %d: %v != %v", i, got[i], want[i])
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t testing.TB, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}
