package deconv

import (
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-hrf/dsp/core"
	"github.com/cwbudde/algo-hrf/dsp/spectrum"
)

// minFFTSize keeps tiny inputs on a plan size every FFT backend supports.
const minFFTSize = 16

// Result is the outcome of a deconvolution together with loop diagnostics.
type Result struct {
	// Output has the length of the observed signal.
	Output []float64

	// Iterations is the number of refinement passes performed.
	Iterations int

	// Converged reports whether the last change fell below the tolerance.
	// Reaching the iteration cap first is not an error.
	Converged bool

	// Change is the relative change of the last pass.
	Change float64

	// NoiseToSignal is the mean per-bin NSR of the last pass.
	NoiseToSignal float64

	// Baseline is the constant level restored after the refinement: the
	// final observed sample divided by the kernel's DC gain. It is zero when
	// the kernel has no DC response.
	Baseline float64

	// Smooth and LowPass are the post-filter parameters that were applied;
	// zero means the stage was skipped.
	Smooth  int
	LowPass float64
}

// Deconvolve estimates the driving signal whose convolution with kernel
// produced signal. The output has len(signal) samples; neither input is
// modified. A nil cfg behaves like Legacy{}.
func Deconvolve(signal, kernel []float64, cfg Config) ([]float64, error) {
	res, err := DeconvolveResult(signal, kernel, cfg)
	if err != nil {
		return nil, err
	}
	return res.Output, nil
}

// DeconvolveResult is [Deconvolve] with loop diagnostics.
func DeconvolveResult(signal, kernel []float64, cfg Config) (Result, error) {
	if cfg == nil {
		cfg = Legacy{}
	}
	s, err := cfg.resolve()
	if err != nil {
		return Result{}, err
	}
	if err := validateInputs(signal, kernel); err != nil {
		return Result{}, err
	}

	w, err := newWiener(signal, kernel)
	if err != nil {
		return Result{}, err
	}

	res := Result{}
	for iter := 1; iter <= s.maxIter; iter++ {
		change, nsr, err := w.step(iter)
		if err != nil {
			return Result{}, err
		}
		res.Iterations = iter
		res.Change = change
		res.NoiseToSignal = nsr
		if change < s.tol {
			res.Converged = true
			break
		}
	}

	out := w.est
	for i := range out {
		out[i] += w.baseline
	}
	res.Baseline = w.baseline

	if s.postFilter() {
		out, err = PostFilter(out, s.smooth, s.lowPass, s.tr)
		if err != nil {
			return Result{}, err
		}
		res.Smooth = s.smooth
		res.LowPass = s.lowPass
	}

	if i := core.FirstNonFinite(out); i >= 0 {
		return Result{}, fmt.Errorf("%w: non-finite output at sample %d", ErrNumericalDivergence, i)
	}

	res.Output = out
	return res, nil
}

func validateInputs(signal, kernel []float64) error {
	if len(signal) == 0 {
		return ErrEmptySignal
	}
	if len(kernel) == 0 {
		return ErrEmptyKernel
	}
	if len(kernel) > len(signal) {
		return fmt.Errorf("%w: %d > %d", ErrKernelTooLong, len(kernel), len(signal))
	}
	if i := core.FirstNonFinite(signal); i >= 0 {
		return fmt.Errorf("%w: signal[%d] = %g", ErrNonFinite, i, signal[i])
	}
	if i := core.FirstNonFinite(kernel); i >= 0 {
		return fmt.Errorf("%w: kernel[%d] = %g", ErrNonFinite, i, kernel[i])
	}
	return nil
}

// wiener holds the spectral working state of one call.
//
// The loop runs on the observed signal minus its final sample. Zero padding
// then continues the series without a step, so a constant offset never shows
// up as ringing; the offset returns as baseline once the loop is done.
type wiener struct {
	plan *algofft.Plan[complex128]

	y  []float64    // observed signal minus its final sample
	yf []complex128 // FFT of zero-padded y
	hf []complex128 // FFT of zero-padded kernel
	hp []float64    // |H|^2

	xf   []complex128 // FFT of the current estimate
	work []complex128
	xp   []float64 // |X|^2

	est  []float64
	cand []float64

	noiseFloor float64
	baseline   float64 // final sample / sum(kernel)
}

func newWiener(signal, kernel []float64) (*wiener, error) {
	n := len(signal)
	size := max(core.NextPowerOf2(n+len(kernel)-1), minFFTSize)

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("deconv: failed to create FFT plan: %w", err)
	}

	ref := signal[n-1]
	y := make([]float64, n)
	for i, v := range signal {
		y[i] = v - ref
	}

	w := &wiener{
		plan: plan,
		y:    y,
		yf:   make([]complex128, size),
		hf:   make([]complex128, size),
		hp:   make([]float64, size),
		xf:   make([]complex128, size),
		work: make([]complex128, size),
		xp:   make([]float64, size),
		est:  make([]float64, n),
		cand: make([]float64, n),
	}

	core.LoadReal(w.yf, y)
	core.LoadReal(w.hf, kernel)
	if err := plan.Forward(w.yf, w.yf); err != nil {
		return nil, fmt.Errorf("deconv: forward FFT failed: %w", err)
	}
	if err := plan.Forward(w.hf, w.hf); err != nil {
		return nil, fmt.Errorf("deconv: forward FFT failed: %w", err)
	}

	spectrum.PowerInto(w.hp, w.hf)
	p := peak(w.hp)
	if !(p >= KernelPowerFloor) {
		return nil, fmt.Errorf("%w: kernel peak spectral power %g below %g", ErrNumericalDivergence, p, KernelPowerFloor)
	}

	// A kernel without DC response cannot carry a constant level through.
	var gain float64
	for _, v := range kernel {
		gain += v
	}
	if gain*gain > powerFloorRatio*p {
		w.baseline = ref / gain
	}

	var energy float64
	for _, v := range y {
		energy += v * v
	}
	w.noiseFloor = noiseFloorRatio * energy

	copy(w.est, y)
	return w, nil
}

// step performs one refinement pass and returns the relative change of the
// estimate and the mean NSR used.
func (w *wiener) step(iter int) (change, meanNSR float64, err error) {
	// Residual of the current estimate against the observation.
	core.LoadReal(w.xf, w.est)
	if err := w.plan.Forward(w.xf, w.xf); err != nil {
		return 0, 0, fmt.Errorf("deconv: forward FFT failed: %w", err)
	}
	for k := range w.work {
		w.work[k] = w.xf[k] * w.hf[k]
	}
	if err := w.plan.Inverse(w.work, w.work); err != nil {
		return 0, 0, fmt.Errorf("deconv: inverse FFT failed: %w", err)
	}

	// White-noise level of the residual periodogram: sum |R|^2 / L = sum r^2.
	var pnn float64
	for i, v := range w.y {
		r := v - real(w.work[i])
		pnn += r * r
	}
	pnn = math.Max(pnn, w.noiseFloor)

	spectrum.PowerInto(w.xp, w.xf)
	floor := math.Max(powerFloorRatio*peak(w.xp), SpectralFloor)

	var nsrSum float64
	for k := range w.work {
		nsr := pnn / math.Max(w.xp[k], floor)
		nsrSum += nsr
		w.work[k] = SafeDivide(cmplx.Conj(w.hf[k]), w.hp[k]+nsr) * w.yf[k]
	}
	if err := w.plan.Inverse(w.work, w.work); err != nil {
		return 0, 0, fmt.Errorf("deconv: inverse FFT failed: %w", err)
	}
	core.StoreReal(w.cand, w.work)

	if i := core.FirstNonFinite(w.cand); i >= 0 {
		return 0, 0, fmt.Errorf("%w: non-finite estimate at sample %d in iteration %d", ErrNumericalDivergence, i, iter)
	}

	var diff, norm float64
	for i, v := range w.cand {
		d := v - w.est[i]
		diff += d * d
		norm += w.est[i] * w.est[i]
	}
	change = math.Sqrt(diff) / math.Max(math.Sqrt(norm), SpectralFloor)

	w.est, w.cand = w.cand, w.est
	return change, nsrSum / float64(len(w.work)), nil
}
