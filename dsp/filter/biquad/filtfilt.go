package biquad

import "errors"

// Errors returned by FiltFilt.
var (
	ErrEmptyInput    = errors.New("biquad: empty input")
	ErrNoSections    = errors.New("biquad: no filter sections")
	ErrUnstableChain = errors.New("biquad: cascade has poles on or outside the unit circle")
)

// FiltFilt applies the cascade described by coeffs forward and then backward
// over x and returns a new slice of the same length. The phase responses of
// the two passes cancel, so the result has zero group delay and magnitude
// response |H(f)|^2.
//
// Edge transients are suppressed by extending the signal at both ends with an
// odd reflection about the end samples and starting each pass from the
// steady state of its first sample.
func FiltFilt(coeffs []Coefficients, x []float64) ([]float64, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}
	if len(coeffs) == 0 {
		return nil, ErrNoSections
	}

	chain := NewChain(coeffs)
	if !chain.IsStable() {
		return nil, ErrUnstableChain
	}

	n := len(x)
	pad := min(3*(2*len(coeffs)+1), n-1)

	ext := make([]float64, n+2*pad)
	for i := range pad {
		ext[i] = 2*x[0] - x[pad-i]
		ext[n+pad+i] = 2*x[n-1] - x[n-2-i]
	}
	copy(ext[pad:], x)

	chain.Prime(ext[0])
	chain.ProcessBlock(ext)

	reverse(ext)
	chain.Reset()
	chain.Prime(ext[0])
	chain.ProcessBlock(ext)
	reverse(ext)

	out := make([]float64, n)
	copy(out, ext[pad:pad+n])
	return out, nil
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}
