package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	return DC(1.0, n)
}

// SquareWave generates a block-design boxcar: period samples per cycle, the
// first half at high and the second half at low.
func SquareWave(length, period int, low, high float64) []float64 {
	out := make([]float64, length)
	if period <= 0 {
		return out
	}
	half := period / 2
	for i := range out {
		if i%period < half {
			out[i] = high
		} else {
			out[i] = low
		}
	}
	return out
}

// ExponentialKernel returns length samples of exp(-n/tau).
func ExponentialKernel(length int, tau float64) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = math.Exp(-float64(i) / tau)
	}
	return out
}
