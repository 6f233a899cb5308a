package deconv

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/cwbudde/algo-hrf/dsp/conv"
	"github.com/cwbudde/algo-hrf/dsp/core"
	"github.com/cwbudde/algo-hrf/dsp/filter/fir"
	"github.com/cwbudde/algo-hrf/dsp/hrf"
	"github.com/cwbudde/algo-hrf/dsp/signal"
	"github.com/cwbudde/algo-hrf/dsp/spectrum"
	"github.com/cwbudde/algo-hrf/dsp/window"
	"github.com/cwbudde/algo-hrf/internal/testutil"
	stats "github.com/cwbudde/algo-hrf/stats/time"
)

// squareScenario returns a 0/1 block input, the 32-tap exponential kernel and
// their causal convolution.
func squareScenario(t testing.TB) (input, kernel, observed []float64) {
	t.Helper()
	input = testutil.SquareWave(200, 40, 0, 1)
	kernel = testutil.ExponentialKernel(32, 4)
	observed, err := conv.Causal(input, kernel)
	if err != nil {
		t.Fatalf("Causal: %v", err)
	}
	return input, kernel, observed
}

func correlation(t *testing.T, a, b []float64) float64 {
	t.Helper()
	r, err := stats.Correlation(a, b)
	if err != nil {
		t.Fatalf("Correlation: %v", err)
	}
	return r
}

func TestDeconvolveDeterministic(t *testing.T) {
	_, kernel, observed := squareScenario(t)
	cfg := NewModal(2, ModeRest)

	a, err := Deconvolve(observed, kernel, cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Deconvolve(observed, kernel, cfg)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireIdentical(t, a, b)
}

func TestDeconvolveLengthPreserved(t *testing.T) {
	tests := []struct {
		n, m int
	}{
		{1, 1},
		{2, 2},
		{17, 5},
		{64, 64},
		{100, 32},
		{257, 17},
	}

	for _, tt := range tests {
		x := testutil.DeterministicNoise(int64(tt.n), 1, tt.n)
		kernel := testutil.ExponentialKernel(tt.m, 3)

		for _, cfg := range []Config{Legacy{}, NewModal(2, ModeRest), NewModal(1, ModeTask)} {
			out, err := Deconvolve(x, kernel, cfg)
			if err != nil {
				t.Fatalf("n=%d m=%d cfg=%+v: %v", tt.n, tt.m, cfg, err)
			}
			if len(out) != tt.n {
				t.Fatalf("n=%d m=%d: len = %d", tt.n, tt.m, len(out))
			}
			testutil.RequireFinite(t, out)
		}
	}
}

func TestDeconvolveDoesNotModifyInputs(t *testing.T) {
	_, kernel, observed := squareScenario(t)
	signalCopy := core.Clone(observed)
	kernelCopy := core.Clone(kernel)

	if _, err := Deconvolve(observed, kernel, NewModal(2, ModeTask)); err != nil {
		t.Fatal(err)
	}
	testutil.RequireIdentical(t, observed, signalCopy)
	testutil.RequireIdentical(t, kernel, kernelCopy)
}

func TestDeconvolveLegacyEquivalence(t *testing.T) {
	_, kernel, observed := squareScenario(t)

	for _, k := range []int{1, 3, 50} {
		legacy, err := Deconvolve(observed, kernel, Legacy{Iterations: k})
		if err != nil {
			t.Fatal(err)
		}
		for _, cfg := range []Config{
			Modal{MaxIter: k},
			Modal{MaxIter: k, TR: 2},
			NewModal(2, ModeUnset, WithMaxIter(k)),
		} {
			modal, err := Deconvolve(observed, kernel, cfg)
			if err != nil {
				t.Fatal(err)
			}
			testutil.RequireIdentical(t, modal, legacy)
		}
	}

	nilCfg, err := Deconvolve(observed, kernel, nil)
	if err != nil {
		t.Fatal(err)
	}
	def, err := Deconvolve(observed, kernel, Legacy{Iterations: DefaultMaxIter})
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireIdentical(t, nilCfg, def)
}

func TestDeconvolveModesShareRefinement(t *testing.T) {
	_, kernel, observed := squareScenario(t)

	legacy, err := Deconvolve(observed, kernel, Legacy{})
	if err != nil {
		t.Fatal(err)
	}

	for _, mode := range []Mode{ModeRest, ModeTask} {
		res, err := DeconvolveResult(observed, kernel, NewModal(2, mode))
		if err != nil {
			t.Fatal(err)
		}
		want, err := PostFilter(legacy, res.Smooth, res.LowPass, 2)
		if err != nil {
			t.Fatal(err)
		}
		testutil.RequireIdentical(t, res.Output, want)
	}
}

func TestDeconvolveCleanRecovery(t *testing.T) {
	input, kernel, observed := squareScenario(t)

	first := -1.0
	var last float64
	for _, k := range []int{1, 2, 5, 10, 25, 50} {
		out, err := Deconvolve(observed, kernel, Legacy{Iterations: k})
		if err != nil {
			t.Fatal(err)
		}
		r := correlation(t, out, input)
		if first < 0 {
			first = r
		}
		last = r
	}

	if last < first {
		t.Fatalf("correlation fell with more iterations: %v -> %v", first, last)
	}
	if last < 0.95 {
		t.Fatalf("clean recovery correlation = %v, want > 0.95", last)
	}
}

func TestDeconvolveSquareWaveScenario(t *testing.T) {
	input, kernel, observed := squareScenario(t)

	res, err := DeconvolveResult(observed, kernel, Modal{
		TR:      2,
		MaxIter: 50,
		Tol:     1e-4,
		Mode:    ModeRest,
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(res.Output) != 200 {
		t.Fatalf("len = %d, want 200", len(res.Output))
	}
	testutil.RequireFinite(t, res.Output)
	if r := correlation(t, res.Output, input); r <= 0.8 {
		t.Fatalf("correlation = %v, want > 0.8", r)
	}
	if res.Smooth != 3 || res.LowPass != 0.2 {
		t.Fatalf("applied smooth=%d lowPass=%v, want 3 and 0.2", res.Smooth, res.LowPass)
	}
	if res.Iterations < 1 || res.Iterations > 50 {
		t.Fatalf("iterations = %d", res.Iterations)
	}
	if !res.Converged && res.Iterations != 50 {
		t.Fatalf("stopped after %d iterations without converging", res.Iterations)
	}
}

func TestDeconvolveRestAttenuatesAboveCutoff(t *testing.T) {
	_, kernel, observed := squareScenario(t)

	legacy, err := Deconvolve(observed, kernel, Legacy{})
	if err != nil {
		t.Fatal(err)
	}
	rest, err := Deconvolve(observed, kernel, NewModal(2, ModeRest))
	if err != nil {
		t.Fatal(err)
	}

	fs := core.SamplingConfig{TR: 2}.SampleRate()
	before, err := spectrum.Periodogram(legacy, fs, window.TypeHann)
	if err != nil {
		t.Fatal(err)
	}
	after, err := spectrum.Periodogram(rest, fs, window.TypeHann)
	if err != nil {
		t.Fatal(err)
	}

	hiBefore, hiAfter := before.Band(0.2, 0.25), after.Band(0.2, 0.25)
	if hiAfter >= 0.1*hiBefore {
		t.Fatalf("power above 0.2 Hz: %v after post-filter, %v before", hiAfter, hiBefore)
	}
	// Block content around the 0.0125 Hz fundamental still dominates.
	if after.Peak() > 0.02 {
		t.Fatalf("post-filtered peak at %v Hz", after.Peak())
	}
}

func TestDeconvolveCanonicalKernel(t *testing.T) {
	_, kernel, observed := canonicalScenario(t)

	for _, mode := range []Mode{ModeRest, ModeTask} {
		res, err := DeconvolveResult(observed, kernel, NewModal(2, mode))
		if err != nil {
			t.Fatalf("%v: %v", mode, err)
		}
		if len(res.Output) != len(observed) {
			t.Fatalf("%v: len = %d", mode, len(res.Output))
		}
		testutil.RequireFinite(t, res.Output)
	}
}

// canonicalScenario returns 30 s on/off blocks at TR 2 s convolved with the
// canonical HRF plus a little white noise.
func canonicalScenario(t *testing.T) (input, kernel, observed []float64) {
	t.Helper()
	gen := signal.NewGeneratorWithOptions([]core.SamplingOption{core.WithTR(2)}, signal.WithSeed(11))
	input, err := gen.Blocks(30, 30, 1, 240)
	if err != nil {
		t.Fatal(err)
	}
	kernel, err = hrf.Canonical(hrf.DefaultParams(), core.WithTR(2))
	if err != nil {
		t.Fatal(err)
	}
	clean, err := conv.Causal(input, kernel)
	if err != nil {
		t.Fatal(err)
	}
	observed, err = gen.AddGaussianNoise(clean, 0.01)
	if err != nil {
		t.Fatal(err)
	}
	return input, kernel, observed
}

func addOffset(x []float64, off float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v + off
	}
	return out
}

func TestDeconvolveBaselineOffset(t *testing.T) {
	canonIn, canonKernel, canonObs := canonicalScenario(t)
	squareIn, squareKernel, squareObs := squareScenario(t)

	tests := []struct {
		name     string
		input    []float64
		kernel   []float64
		observed []float64
		off      float64
	}{
		{"canonical no offset", canonIn, canonKernel, canonObs, 0},
		{"canonical +1", canonIn, canonKernel, canonObs, 1},
		{"canonical +100", canonIn, canonKernel, canonObs, 100},
		{"canonical +10000", canonIn, canonKernel, canonObs, 10000},
		{"square +100", squareIn, squareKernel, squareObs, 100},
		{"square -5000", squareIn, squareKernel, squareObs, -5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := DeconvolveResult(addOffset(tt.observed, tt.off), tt.kernel, NewModal(2, ModeRest))
			if err != nil {
				t.Fatal(err)
			}
			testutil.RequireFinite(t, res.Output)
			if r := correlation(t, res.Output, tt.input); r <= 0.8 {
				t.Fatalf("correlation = %v, want > 0.8", r)
			}
		})
	}
}

func TestDeconvolveOffsetShiftsOutput(t *testing.T) {
	_, kernel, observed := squareScenario(t)
	cfg := Modal{MaxIter: 10, Tol: 1e-300}

	var gain float64
	for _, v := range kernel {
		gain += v
	}

	base, err := DeconvolveResult(observed, kernel, cfg)
	if err != nil {
		t.Fatal(err)
	}

	const off = 250.0
	shifted, err := DeconvolveResult(addOffset(observed, off), kernel, cfg)
	if err != nil {
		t.Fatal(err)
	}

	if d := shifted.Baseline - base.Baseline; math.Abs(d-off/gain) > 1e-9 {
		t.Fatalf("baseline moved by %v, want %v", d, off/gain)
	}
	diff, i, err := testutil.MaxAbsDiff(addOffset(base.Output, off/gain), shifted.Output)
	if err != nil {
		t.Fatal(err)
	}
	if diff > 1e-8 {
		t.Fatalf("offset output differs by %v at sample %d", diff, i)
	}
}

func TestDeconvolveConstantSignal(t *testing.T) {
	tests := []struct {
		name         string
		kernel       []float64
		wantBaseline float64
	}{
		{"exponential", []float64{4, 2, 1, 1}, 7.0 / 8},
		{"no dc response", []float64{1, -1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := DeconvolveResult(testutil.DC(7, 64), tt.kernel, Legacy{})
			if err != nil {
				t.Fatal(err)
			}
			if !res.Converged || res.Iterations != 1 {
				t.Fatalf("converged=%v iterations=%d, want true and 1", res.Converged, res.Iterations)
			}
			if res.Baseline != tt.wantBaseline {
				t.Fatalf("baseline = %v, want %v", res.Baseline, tt.wantBaseline)
			}
			testutil.RequireIdentical(t, res.Output, testutil.DC(tt.wantBaseline, 64))
		})
	}
}

func TestDeconvolveZeroSignalConverges(t *testing.T) {
	res, err := DeconvolveResult(make([]float64, 64), testutil.ExponentialKernel(8, 2), Legacy{})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Converged || res.Iterations != 1 {
		t.Fatalf("converged=%v iterations=%d, want true and 1", res.Converged, res.Iterations)
	}
	for i, v := range res.Output {
		if v != 0 {
			t.Fatalf("output[%d] = %v, want 0", i, v)
		}
	}
}

func TestDeconvolveIterationCap(t *testing.T) {
	_, kernel, observed := squareScenario(t)

	res, err := DeconvolveResult(observed, kernel, Legacy{Iterations: 1})
	if err != nil {
		t.Fatal(err)
	}
	if res.Iterations != 1 {
		t.Fatalf("iterations = %d, want 1", res.Iterations)
	}
	if res.Converged {
		t.Fatalf("single pass from the observation reported convergence (change %v)", res.Change)
	}
	if !(res.NoiseToSignal > 0) {
		t.Fatalf("NoiseToSignal = %v, want positive", res.NoiseToSignal)
	}
}

func TestDeconvolveZeroKernelDiverges(t *testing.T) {
	x := testutil.DeterministicNoise(3, 1, 64)

	for _, kernel := range [][]float64{make([]float64, 8), {1e-9, 0, 0}} {
		out, err := Deconvolve(x, kernel, NewModal(2, ModeRest))
		if !errors.Is(err, ErrNumericalDivergence) {
			t.Fatalf("kernel %v: err = %v, want ErrNumericalDivergence", kernel, err)
		}
		if out != nil {
			t.Fatalf("kernel %v: got output on error", kernel)
		}
	}
}

func TestDeconvolveInputErrors(t *testing.T) {
	x := testutil.DeterministicNoise(5, 1, 16)
	kernel := testutil.ExponentialKernel(4, 2)

	tests := []struct {
		name      string
		x, kernel []float64
		cfg       Config
		want      error
	}{
		{"empty signal", nil, kernel, Legacy{}, ErrEmptySignal},
		{"empty kernel", x, nil, Legacy{}, ErrEmptyKernel},
		{"kernel too long", x[:3], kernel, Legacy{}, ErrKernelTooLong},
		{"nan signal", []float64{1, math.NaN(), 3, 4}, kernel, Legacy{}, ErrNonFinite},
		{"inf kernel", x, []float64{1, math.Inf(-1)}, Legacy{}, ErrNonFinite},
		{"bad config first", nil, nil, Legacy{Iterations: -2}, ErrInvalidMaxIter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Deconvolve(tt.x, tt.kernel, tt.cfg)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if !errors.Is(err, ErrConfiguration) {
				t.Fatalf("err = %v does not wrap ErrConfiguration", err)
			}
		})
	}
}

func TestDeconvolveSmoothOnly(t *testing.T) {
	_, kernel, observed := squareScenario(t)

	legacy, err := Deconvolve(observed, kernel, Legacy{})
	if err != nil {
		t.Fatal(err)
	}
	res, err := DeconvolveResult(observed, kernel, Modal{Smooth: 2})
	if err != nil {
		t.Fatal(err)
	}
	want, err := fir.MovingAverage(legacy, 2)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireIdentical(t, res.Output, want)
	if res.Smooth != 2 || res.LowPass != 0 {
		t.Fatalf("applied smooth=%d lowPass=%v", res.Smooth, res.LowPass)
	}
}

func TestDeconvolveConcurrent(t *testing.T) {
	_, kernel, observed := squareScenario(t)
	cfg := NewModal(2, ModeRest)

	want, err := Deconvolve(observed, kernel, cfg)
	if err != nil {
		t.Fatal(err)
	}

	const workers = 8
	results := make([][]float64, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = Deconvolve(observed, kernel, cfg)
		}()
	}
	wg.Wait()

	for i := range workers {
		if errs[i] != nil {
			t.Fatalf("worker %d: %v", i, errs[i])
		}
		testutil.RequireIdentical(t, results[i], want)
	}
}

func BenchmarkDeconvolve(b *testing.B) {
	_, kernel, observed := squareScenario(b)
	cfg := NewModal(2, ModeRest)

	b.ReportAllocs()
	for b.Loop() {
		if _, err := Deconvolve(observed, kernel, cfg); err != nil {
			b.Fatal(err)
		}
	}
}
