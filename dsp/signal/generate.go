package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-hrf/dsp/core"
)

// Generator creates deterministic signals from a shared sampling configuration.
type Generator struct {
	cfg  core.SamplingConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.SamplingOption) *Generator {
	return &Generator{
		cfg:  core.ApplySamplingOptions(opts...),
		seed: 1,
	}
}

// NewGeneratorWithOptions creates a configured signal generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.SamplingOption, opts ...Option) *Generator {
	g := NewGenerator(coreOpts...)
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator sampling configuration.
func (g *Generator) Config() core.SamplingConfig {
	return g.cfg
}

// Seed returns the noise seed.
func (g *Generator) Seed() int64 {
	return g.seed
}

// SetSeed replaces the noise seed.
func (g *Generator) SetSeed(seed int64) {
	g.seed = seed
}

// Sine generates a sine wave at freqHz, sampled every TR seconds.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}
	fs := g.cfg.SampleRate()
	if fs <= 0 {
		return nil, fmt.Errorf("sine sample rate must be > 0: %f", fs)
	}
	if freqHz < 0 || freqHz > fs/2 {
		return nil, fmt.Errorf("sine frequency must be in [0, %g]: %f", fs/2, freqHz)
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / fs
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// Blocks generates a block design: on for onSec seconds at amplitude, then
// off for offSec seconds at zero, repeated. Durations are rounded to whole
// samples and must cover at least one sample each.
func (g *Generator) Blocks(onSec, offSec, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("blocks samples must be > 0: %d", samples)
	}
	if g.cfg.TR <= 0 {
		return nil, fmt.Errorf("blocks TR must be > 0: %f", g.cfg.TR)
	}
	on := core.RoundHalfEven(onSec / g.cfg.TR)
	off := core.RoundHalfEven(offSec / g.cfg.TR)
	if on < 1 || off < 1 {
		return nil, fmt.Errorf("blocks durations must span at least one TR: on=%g off=%g", onSec, offSec)
	}

	out := make([]float64, samples)
	period := on + off
	for i := range out {
		if i%period < on {
			out[i] = amplitude
		}
	}
	return out, nil
}

// Events generates a stick function with one unit impulse per onset.
// Onsets are in seconds and snap to the nearest sample; onsets beyond the
// series are rejected.
func (g *Generator) Events(onsets []float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("events samples must be > 0: %d", samples)
	}
	if g.cfg.TR <= 0 {
		return nil, fmt.Errorf("events TR must be > 0: %f", g.cfg.TR)
	}

	out := make([]float64, samples)
	for _, t := range onsets {
		idx := core.RoundHalfEven(t / g.cfg.TR)
		if t < 0 || idx >= samples {
			return nil, fmt.Errorf("event onset %gs outside [0, %gs)", t, float64(samples)*g.cfg.TR)
		}
		out[idx]++
	}
	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// GaussianNoise generates deterministic zero-mean Gaussian noise with the
// given standard deviation.
func (g *Generator) GaussianNoise(std float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if std < 0 {
		return nil, fmt.Errorf("noise std must be >= 0: %f", std)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = rng.NormFloat64() * std
	}
	return out, nil
}

// AddGaussianNoise returns x plus Gaussian noise of the given standard
// deviation. x is not modified.
func (g *Generator) AddGaussianNoise(x []float64, std float64) ([]float64, error) {
	noise, err := g.GaussianNoise(std, len(x))
	if err != nil {
		return nil, err
	}
	for i, v := range x {
		noise[i] += v
	}
	return noise, nil
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		av := math.Abs(v)
		if av > maxAbs {
			maxAbs = av
		}
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}

// ZScore returns (x - mean) / std using the population standard deviation.
// A constant input maps to all zeros.
func ZScore(data []float64) ([]float64, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("zscore input must not be empty")
	}

	var mean float64
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	var ss float64
	for _, v := range data {
		d := v - mean
		ss += d * d
	}
	std := math.Sqrt(ss / float64(len(data)))

	out := make([]float64, len(data))
	if std == 0 {
		return out, nil
	}
	for i, v := range data {
		out[i] = (v - mean) / std
	}
	return out, nil
}
