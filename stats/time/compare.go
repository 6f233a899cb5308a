package time

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by the comparison functions.
var (
	ErrEmptyInput     = errors.New("time: empty input")
	ErrLengthMismatch = errors.New("time: length mismatch")
	ErrZeroVariance   = errors.New("time: zero variance")
)

// Correlation returns the Pearson correlation coefficient of a and b.
//
// It returns ErrZeroVariance (with a coefficient of 0) when either series is
// constant, since the coefficient is undefined there.
func Correlation(a, b []float64) (float64, error) {
	if err := checkPair(a, b); err != nil {
		return 0, err
	}

	ma, mb := Mean(a), Mean(b)

	var sab, saa, sbb float64
	for i := range a {
		da := a[i] - ma
		db := b[i] - mb
		sab += da * db
		saa += da * da
		sbb += db * db
	}

	if saa == 0 || sbb == 0 {
		return 0, ErrZeroVariance
	}

	r := sab / math.Sqrt(saa*sbb)
	return math.Max(-1, math.Min(1, r)), nil
}

// DiffStats summarizes b - a sample by sample.
type DiffStats struct {
	Mean   float64
	Std    float64
	MaxAbs float64
}

// Diff returns the mean, population standard deviation and maximum absolute
// value of b - a.
func Diff(a, b []float64) (DiffStats, error) {
	if err := checkPair(a, b); err != nil {
		return DiffStats{}, err
	}

	d := make([]float64, len(a))
	var maxAbs float64
	for i := range a {
		d[i] = b[i] - a[i]
		maxAbs = math.Max(maxAbs, math.Abs(d[i]))
	}

	st := Calculate(d)
	return DiffStats{Mean: st.Mean, Std: st.Std, MaxAbs: maxAbs}, nil
}

// NormalizedRMSDiff returns ||b - a||_2 / ||a||_2, or the absolute RMS
// difference when a is all zeros.
func NormalizedRMSDiff(a, b []float64) (float64, error) {
	if err := checkPair(a, b); err != nil {
		return 0, err
	}

	var num, den float64
	for i := range a {
		d := b[i] - a[i]
		num += d * d
		den += a[i] * a[i]
	}

	if den == 0 {
		return math.Sqrt(num / float64(len(a))), nil
	}
	return math.Sqrt(num / den), nil
}

func checkPair(a, b []float64) error {
	if len(a) == 0 || len(b) == 0 {
		return ErrEmptyInput
	}
	if len(a) != len(b) {
		return fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(a), len(b))
	}
	return nil
}
