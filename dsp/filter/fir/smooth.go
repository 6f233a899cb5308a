package fir

import (
	"errors"
	"fmt"
)

// ErrNegativeWidth is returned for a negative moving-average half-width.
var ErrNegativeWidth = errors.New("fir: half-width must be >= 0")

// MovingAverage returns a centered moving average of src with the given
// half-width. Near the edges the window shrinks symmetrically so that it
// stays centered: the first and last samples are passed through unchanged,
// their neighbours are averaged over three samples, and so on.
//
// A half-width of 0 returns a copy of src.
func MovingAverage(src []float64, halfWidth int) ([]float64, error) {
	if halfWidth < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeWidth, halfWidth)
	}

	n := len(src)
	out := make([]float64, n)
	if halfWidth == 0 || n < 3 {
		copy(out, src)
		return out, nil
	}

	// prefix[k] holds sum(src[:k]); window sums become two lookups.
	prefix := make([]float64, n+1)
	for i, v := range src {
		prefix[i+1] = prefix[i] + v
	}

	for i := range out {
		h := min(halfWidth, i, n-1-i)
		lo, hi := i-h, i+h+1
		out[i] = (prefix[hi] - prefix[lo]) / float64(hi-lo)
	}
	return out, nil
}
