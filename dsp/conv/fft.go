package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-hrf/dsp/core"
)

// FFT performs linear convolution by zero-padded frequency-domain
// multiplication. Returns a new slice of length len(a) + len(b) - 1.
func FFT(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	resultLen := len(a) + len(b) - 1
	fftSize := core.NextPowerOf2(resultLen)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	aFreq := make([]complex128, fftSize)
	bFreq := make([]complex128, fftSize)
	core.LoadReal(aFreq, a)
	core.LoadReal(bFreq, b)

	if err := plan.Forward(aFreq, aFreq); err != nil {
		return nil, fmt.Errorf("conv: forward FFT failed: %w", err)
	}
	if err := plan.Forward(bFreq, bFreq); err != nil {
		return nil, fmt.Errorf("conv: forward FFT failed: %w", err)
	}

	for i := range aFreq {
		aFreq[i] *= bFreq[i]
	}

	if err := plan.Inverse(aFreq, aFreq); err != nil {
		return nil, fmt.Errorf("conv: inverse FFT failed: %w", err)
	}

	result := make([]float64, resultLen)
	core.StoreReal(result, aFreq)
	return result, nil
}
