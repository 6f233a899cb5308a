package spectrum

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-hrf/dsp/core"
	"github.com/cwbudde/algo-hrf/dsp/window"
)

// PSD is a one-sided power spectral density estimate.
type PSD struct {
	Freqs []float64 // bin centres in Hz, 0 to Nyquist
	Power []float64 // density in units^2 / Hz
}

// Periodogram returns the one-sided PSD of x sampled at sampleRate Hz. The
// series is tapered with the given window type and zero-padded to the next
// power of two. Interior bins carry the power of their negative-frequency
// twin; with a rectangular taper the PSD integrates to the mean square of x.
func Periodogram(x []float64, sampleRate float64, taper window.Type) (PSD, error) {
	if len(x) == 0 {
		return PSD{}, fmt.Errorf("spectrum: periodogram requires a non-empty series")
	}
	if sampleRate <= 0 {
		return PSD{}, fmt.Errorf("spectrum: periodogram sample rate must be > 0: %f", sampleRate)
	}

	coeffs := window.Generate(taper, len(x))
	tapered, err := window.ApplyCoefficients(x, coeffs)
	if err != nil {
		return PSD{}, fmt.Errorf("spectrum: periodogram taper: %w", err)
	}
	var wss float64
	for _, c := range coeffs {
		wss += c * c
	}
	if wss == 0 {
		return PSD{}, fmt.Errorf("spectrum: periodogram taper has zero energy")
	}

	n := max(core.NextPowerOf2(len(x)), 2)
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return PSD{}, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}
	bins := make([]complex128, n)
	core.LoadReal(bins, tapered)
	if err := plan.Forward(bins, bins); err != nil {
		return PSD{}, fmt.Errorf("spectrum: forward FFT failed: %w", err)
	}

	half := n/2 + 1
	pow := make([]float64, half)
	PowerInto(pow, bins[:half])

	scale := 1 / (sampleRate * wss)
	freqs := make([]float64, half)
	for k := range pow {
		freqs[k] = BinFrequency(k, n, sampleRate)
		pow[k] *= scale
		if k > 0 && k < n/2 {
			pow[k] *= 2
		}
	}

	return PSD{Freqs: freqs, Power: pow}, nil
}

// Band integrates the density over bins whose centre lies in [lo, hi] Hz.
func (p PSD) Band(lo, hi float64) float64 {
	if len(p.Freqs) < 2 {
		return 0
	}
	df := p.Freqs[1] - p.Freqs[0]

	var sum float64
	for k, f := range p.Freqs {
		if f >= lo && f <= hi {
			sum += p.Power[k]
		}
	}
	return sum * df
}

// Peak returns the frequency of the largest density bin.
func (p PSD) Peak() float64 {
	best := -1
	for k, v := range p.Power {
		if best < 0 || v > p.Power[best] {
			best = k
		}
	}
	if best < 0 {
		return 0
	}
	return p.Freqs[best]
}
