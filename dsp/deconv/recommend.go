package deconv

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-hrf/dsp/core"
)

// Recommendation holds the post-filter parameters derived from a Mode and TR.
type Recommendation struct {
	Smooth  int     // moving-average half-window in samples
	LowPass float64 // cutoff in Hz
}

// Recommend derives post-filter parameters from the acquisition mode and
// repetition time:
//
//	rest: Smooth = max(round(4/TR), 3), LowPass = min(0.2, 0.8*fn)
//	task: Smooth = max(round(2/TR), 2), LowPass = min(0.35, 0.9*fn)
//
// where fn = 1/(2*TR) is the Nyquist frequency. Rounding is half-to-even.
// ModeUnset yields the zero Recommendation.
func Recommend(mode Mode, tr float64) (Recommendation, error) {
	if err := validateTR(tr); err != nil {
		return Recommendation{}, err
	}
	fn := core.SamplingConfig{TR: tr}.Nyquist()

	switch mode {
	case ModeUnset:
		return Recommendation{}, nil
	case ModeRest:
		return Recommendation{
			Smooth:  max(core.RoundHalfEven(4/tr), 3),
			LowPass: math.Min(0.2, 0.8*fn),
		}, nil
	case ModeTask:
		return Recommendation{
			Smooth:  max(core.RoundHalfEven(2/tr), 2),
			LowPass: math.Min(0.35, 0.9*fn),
		}, nil
	default:
		return Recommendation{}, fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
	}
}

func validateTR(tr float64) error {
	if !(tr > 0) || math.IsInf(tr, 0) {
		return fmt.Errorf("%w: must be positive and finite: %g", ErrInvalidTR, tr)
	}
	return nil
}
