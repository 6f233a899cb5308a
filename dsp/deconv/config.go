package deconv

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-hrf/dsp/core"
)

// Defaults applied when the corresponding field is zero.
const (
	DefaultMaxIter = 50
	DefaultTol     = 1e-4
)

// Disabled, assigned to Modal.Smooth or Modal.LowPass, turns that
// post-filter stage off even when Mode would recommend it.
const Disabled = -1

// Config is a deconvolution configuration: either [Legacy] or [Modal].
type Config interface {
	resolve() (settings, error)
}

// Legacy runs the Wiener refinement alone, without post-filtering.
//
// Iterations caps the refinement passes. Zero, the field's zero value, means
// unset and selects DefaultMaxIter; negative counts are rejected with
// ErrInvalidMaxIter. A single pass is Iterations: 1.
type Legacy struct {
	Iterations int
}

// Modal runs the Wiener refinement followed by an optional post-filter.
//
// With Mode set, zero Smooth and LowPass are replaced by the [Recommend]
// values for TR. With Mode unset, only explicitly given stages run. Either
// stage can be switched off with [Disabled].
type Modal struct {
	TR      float64 // repetition time in seconds; required by Mode and LowPass
	MaxIter int     // iteration cap; zero means unset (DefaultMaxIter)
	Tol     float64 // relative change threshold; DefaultTol when zero
	Mode    Mode
	Smooth  int     // moving-average half-window in samples
	LowPass float64 // zero-phase low-pass cutoff in Hz
}

// ModalOption mutates a Modal configuration.
type ModalOption func(*Modal)

// NewModal returns a Modal configuration for the given TR and mode with
// default iteration settings and recommended post-filtering.
func NewModal(tr float64, mode Mode, opts ...ModalOption) Modal {
	m := Modal{
		TR:      tr,
		MaxIter: DefaultMaxIter,
		Tol:     DefaultTol,
		Mode:    mode,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	return m
}

// WithMaxIter sets the iteration cap.
func WithMaxIter(n int) ModalOption {
	return func(m *Modal) {
		m.MaxIter = n
	}
}

// WithTol sets the convergence threshold.
func WithTol(tol float64) ModalOption {
	return func(m *Modal) {
		m.Tol = tol
	}
}

// WithSmooth overrides the moving-average half-window.
func WithSmooth(halfWidth int) ModalOption {
	return func(m *Modal) {
		m.Smooth = halfWidth
	}
}

// WithLowPass overrides the low-pass cutoff in Hz.
func WithLowPass(hz float64) ModalOption {
	return func(m *Modal) {
		m.LowPass = hz
	}
}

// WithNoSmoothing disables the moving-average stage.
func WithNoSmoothing() ModalOption {
	return func(m *Modal) {
		m.Smooth = Disabled
	}
}

// WithNoLowPass disables the low-pass stage.
func WithNoLowPass() ModalOption {
	return func(m *Modal) {
		m.LowPass = Disabled
	}
}

// settings is a validated configuration with defaults applied.
type settings struct {
	tr      float64
	maxIter int
	tol     float64
	mode    Mode
	smooth  int     // 0 disables the stage
	lowPass float64 // 0 disables the stage
}

func (s settings) postFilter() bool {
	return s.smooth > 0 || s.lowPass > 0
}

func (l Legacy) resolve() (settings, error) {
	if l.Iterations < 0 {
		return settings{}, fmt.Errorf("%w: iterations must be >= 1: %d", ErrInvalidMaxIter, l.Iterations)
	}
	return Modal{MaxIter: l.Iterations}.resolve()
}

func (m Modal) resolve() (settings, error) {
	s := settings{
		tr:      m.TR,
		maxIter: m.MaxIter,
		tol:     m.Tol,
		mode:    m.Mode,
	}

	if s.maxIter == 0 {
		s.maxIter = DefaultMaxIter
	}
	if s.maxIter < 1 {
		return settings{}, fmt.Errorf("%w: must be >= 1: %d", ErrInvalidMaxIter, m.MaxIter)
	}

	if s.tol == 0 {
		s.tol = DefaultTol
	}
	if !(s.tol > 0) || math.IsInf(s.tol, 0) {
		return settings{}, fmt.Errorf("%w: must be positive and finite: %g", ErrInvalidTol, m.Tol)
	}

	if !m.Mode.valid() {
		return settings{}, fmt.Errorf("%w: %d", ErrUnknownMode, int(m.Mode))
	}

	needTR := m.Mode != ModeUnset || (m.LowPass != 0 && m.LowPass != Disabled)
	if needTR || m.TR != 0 {
		if err := validateTR(m.TR); err != nil {
			return settings{}, err
		}
	}

	var rec Recommendation
	if m.Mode != ModeUnset {
		var err error
		if rec, err = Recommend(m.Mode, m.TR); err != nil {
			return settings{}, err
		}
	}

	switch {
	case m.Smooth == Disabled:
		s.smooth = 0
	case m.Smooth < 0:
		return settings{}, fmt.Errorf("%w: must be >= 0 or Disabled: %d", ErrInvalidSmooth, m.Smooth)
	case m.Smooth == 0:
		s.smooth = rec.Smooth
	default:
		s.smooth = m.Smooth
	}

	switch {
	case m.LowPass == Disabled:
		s.lowPass = 0
	case m.LowPass == 0:
		s.lowPass = rec.LowPass
	default:
		if err := validateLowPass(m.LowPass, m.TR); err != nil {
			return settings{}, err
		}
		s.lowPass = m.LowPass
	}

	return s, nil
}

func validateLowPass(hz, tr float64) error {
	if err := validateTR(tr); err != nil {
		return err
	}
	nyquist := core.SamplingConfig{TR: tr}.Nyquist()
	if !(hz > 0) || hz >= nyquist {
		return fmt.Errorf("%w: %g Hz outside (0, %g) for TR %g", ErrInvalidLowPass, hz, nyquist, tr)
	}
	return nil
}
