package deconv

import "math"

// SpectralFloor is the smallest denominator [SafeDivide] divides by.
const SpectralFloor = 1e-12

// Floors used by the refinement loop.
const (
	// KernelPowerFloor is the minimum peak |H|^2 a kernel needs to be
	// invertible at all.
	KernelPowerFloor = 1e-12

	// powerFloorRatio bounds the estimate power from below, relative to its
	// peak, so NSR stays finite in empty bins.
	powerFloorRatio = 1e-12

	// noiseFloorRatio bounds the residual noise power from below, relative
	// to the observed signal energy. It keeps a minimum of regularization in
	// kernel nulls once the residual has vanished.
	noiseFloorRatio = 1e-8
)

// SafeDivide returns num / max(den, SpectralFloor). A NaN denominator is
// treated as zero.
func SafeDivide(num complex128, den float64) complex128 {
	if !(den > SpectralFloor) {
		den = SpectralFloor
	}
	return complex(real(num)/den, imag(num)/den)
}

func peak(x []float64) float64 {
	var p float64
	for _, v := range x {
		p = math.Max(p, v)
	}
	return p
}
