package hrf

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-hrf/dsp/core"
)

// ErrInvalidParams is returned for non-physical kernel parameters.
var ErrInvalidParams = errors.New("hrf: invalid parameters")

// Params describes a double-gamma response. All times are in seconds.
type Params struct {
	PeakDelay       float64 // delay of the response peak
	UndershootDelay float64 // delay of the undershoot
	PeakDispersion  float64
	UndershootDisp  float64
	Ratio           float64 // peak to undershoot amplitude ratio
	Onset           float64
	Length          float64 // kernel length
}

// DefaultParams returns the SPM canonical parameters [6 16 1 1 6 0 32].
func DefaultParams() Params {
	return Params{
		PeakDelay:       6,
		UndershootDelay: 16,
		PeakDispersion:  1,
		UndershootDisp:  1,
		Ratio:           6,
		Onset:           0,
		Length:          32,
	}
}

// Validate reports whether p describes a finite, positive response.
func (p Params) Validate() error {
	for _, v := range []float64{p.PeakDelay, p.UndershootDelay, p.PeakDispersion, p.UndershootDisp, p.Ratio, p.Length} {
		if !(v > 0) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: delays, dispersions, ratio and length must be positive and finite: %+v", ErrInvalidParams, p)
		}
	}
	if !core.IsFinite(p.Onset) || p.Onset < 0 {
		return fmt.Errorf("%w: onset must be >= 0: %g", ErrInvalidParams, p.Onset)
	}
	return nil
}

// Canonical returns the double-gamma response sampled every TR seconds from
// 0 to p.Length inclusive, floor(Length/TR)+1 samples, normalized to unit
// sum.
func Canonical(p Params, opts ...core.SamplingOption) ([]float64, error) {
	cfg := core.ApplySamplingOptions(opts...)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if cfg.TR > p.Length {
		return nil, fmt.Errorf("%w: TR %g exceeds kernel length %g", ErrInvalidParams, cfg.TR, p.Length)
	}

	n := int(math.Floor(p.Length/cfg.TR)) + 1
	out := make([]float64, n)

	var sum float64
	for k := range out {
		t := float64(k)*cfg.TR - p.Onset
		v := gammaPDF(t, p.PeakDelay/p.PeakDispersion, p.PeakDispersion) -
			gammaPDF(t, p.UndershootDelay/p.UndershootDisp, p.UndershootDisp)/p.Ratio
		out[k] = v
		sum += v
	}

	if !(sum > 0) {
		return nil, fmt.Errorf("%w: response sums to %g at TR %g", ErrInvalidParams, sum, cfg.TR)
	}
	for k := range out {
		out[k] /= sum
	}
	return out, nil
}

// TemporalDerivative returns the finite-difference derivative of [Canonical]
// with respect to onset, using a one second shift.
func TemporalDerivative(p Params, opts ...core.SamplingOption) ([]float64, error) {
	base, err := Canonical(p, opts...)
	if err != nil {
		return nil, err
	}

	const dp = 1.0
	shifted := p
	shifted.Onset += dp
	late, err := Canonical(shifted, opts...)
	if err != nil {
		return nil, err
	}

	for i := range base {
		base[i] = (base[i] - late[i]) / dp
	}
	return base, nil
}

// Exponential returns exp(-t/tau) sampled every TR seconds for n samples,
// normalized to unit sum.
func Exponential(tau float64, n int, opts ...core.SamplingOption) ([]float64, error) {
	cfg := core.ApplySamplingOptions(opts...)
	if !(tau > 0) || math.IsInf(tau, 0) {
		return nil, fmt.Errorf("%w: tau must be positive and finite: %g", ErrInvalidParams, tau)
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: length must be > 0: %d", ErrInvalidParams, n)
	}

	out := make([]float64, n)
	var sum float64
	for k := range out {
		out[k] = math.Exp(-float64(k) * cfg.TR / tau)
		sum += out[k]
	}
	for k := range out {
		out[k] /= sum
	}
	return out, nil
}

// PeakTime returns the time in seconds of the largest sample of kernel.
func PeakTime(kernel []float64, opts ...core.SamplingOption) float64 {
	cfg := core.ApplySamplingOptions(opts...)
	best := 0
	for i, v := range kernel {
		if v > kernel[best] {
			best = i
		}
	}
	return float64(best) * cfg.TR
}

// gammaPDF is the gamma density with the given shape and scale, zero for t <= 0.
func gammaPDF(t, shape, scale float64) float64 {
	if t <= 0 {
		return 0
	}
	lg, _ := math.Lgamma(shape)
	x := t / scale
	return math.Exp((shape-1)*math.Log(x)-x-lg) / scale
}
