package deconv

import (
	"fmt"

	"github.com/cwbudde/algo-hrf/dsp/core"
	"github.com/cwbudde/algo-hrf/dsp/filter/biquad"
	"github.com/cwbudde/algo-hrf/dsp/filter/design/pass"
	"github.com/cwbudde/algo-hrf/dsp/filter/fir"
)

// LowPassOrder is the Butterworth order of the post-filter design. Applied
// forward and backward, the effective magnitude response is its square.
const LowPassOrder = 4

// PostFilter smooths x with a centered moving average of half-window smooth
// and then applies a zero-phase Butterworth low-pass at lowPass Hz for
// sampling interval tr. A zero smooth or lowPass skips that stage. x is not
// modified.
func PostFilter(x []float64, smooth int, lowPass, tr float64) ([]float64, error) {
	if len(x) == 0 {
		return nil, ErrEmptySignal
	}
	if smooth < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSmooth, smooth)
	}
	if lowPass != 0 {
		if err := validateLowPass(lowPass, tr); err != nil {
			return nil, err
		}
	}

	out := core.Clone(x)
	if smooth > 0 {
		var err error
		if out, err = fir.MovingAverage(out, smooth); err != nil {
			return nil, fmt.Errorf("deconv: smoothing: %w", err)
		}
	}

	if lowPass > 0 {
		fs := core.SamplingConfig{TR: tr}.SampleRate()
		sections := pass.ButterworthLP(lowPass, LowPassOrder, fs)
		var err error
		if out, err = biquad.FiltFilt(sections, out); err != nil {
			return nil, fmt.Errorf("deconv: low-pass: %w", err)
		}
	}

	return out, nil
}
