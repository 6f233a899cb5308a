package deconv

import (
	"errors"
	"fmt"
)

// ErrConfiguration is the root of all configuration errors. Every error in
// the family below satisfies errors.Is(err, ErrConfiguration).
var ErrConfiguration = errors.New("deconv: invalid configuration")

// Configuration errors, reported before any computation.
var (
	ErrEmptySignal    = fmt.Errorf("%w: empty signal", ErrConfiguration)
	ErrEmptyKernel    = fmt.Errorf("%w: empty kernel", ErrConfiguration)
	ErrNonFinite      = fmt.Errorf("%w: non-finite input", ErrConfiguration)
	ErrKernelTooLong  = fmt.Errorf("%w: kernel longer than signal", ErrConfiguration)
	ErrInvalidTR      = fmt.Errorf("%w: invalid TR", ErrConfiguration)
	ErrInvalidMaxIter = fmt.Errorf("%w: invalid iteration limit", ErrConfiguration)
	ErrInvalidTol     = fmt.Errorf("%w: invalid tolerance", ErrConfiguration)
	ErrInvalidSmooth  = fmt.Errorf("%w: invalid smoothing half-window", ErrConfiguration)
	ErrInvalidLowPass = fmt.Errorf("%w: invalid low-pass cutoff", ErrConfiguration)
	ErrUnknownMode    = fmt.Errorf("%w: unknown mode", ErrConfiguration)
)

// ErrNumericalDivergence reports a kernel without usable spectral energy or
// non-finite values surviving the spectral floor.
var ErrNumericalDivergence = errors.New("deconv: numerical divergence")
