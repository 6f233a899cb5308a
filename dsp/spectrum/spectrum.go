package spectrum

import (
	"fmt"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

func split(re, im []float64, in []complex128) {
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}
}

// Magnitude returns |X[k]| for each complex spectrum bin.
//
// This function uses SIMD-optimized implementations when available (AVX2, SSE2, NEON).
// Scratch buffers are pooled internally, so in steady state this allocates
// only the output slice.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))
	split(re, im, in)
	vecmath.Magnitude(out, re, im)
	putScratch(buf)
	return out
}

// Power returns |X[k]|^2 for each complex spectrum bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	PowerInto(out, in)
	return out
}

// PowerInto computes |X[k]|^2 into dst without allocating in steady state.
// dst must have the same length as in.
func PowerInto(dst []float64, in []complex128) {
	if len(dst) != len(in) {
		panic(fmt.Sprintf("spectrum: PowerInto length mismatch: dst=%d in=%d", len(dst), len(in)))
	}
	if len(in) == 0 {
		return
	}

	re, im, buf := getScratch(len(in))
	split(re, im, in)
	vecmath.Power(dst, re, im)
	putScratch(buf)
}

// PowerFromParts computes |X[k]|^2 = re[k]^2 + im[k]^2 into dst.
//
// This is the zero-allocation fast path for callers that already have real and
// imaginary parts in separate slices. All three slices must have the same length.
func PowerFromParts(dst, re, im []float64) {
	vecmath.Power(dst, re, im)
}

// Energy returns the time-domain energy sum |x[n]|^2 of the signal whose
// unnormalized DFT is in, using Parseval's relation.
func Energy(in []complex128) float64 {
	if len(in) == 0 {
		return 0
	}

	pow := Power(in)
	var sum float64
	for _, p := range pow {
		sum += p
	}
	return sum / float64(len(in))
}

// BinFrequency returns the frequency in Hz of bin k of an fftSize-point DFT.
// Bins above fftSize/2 map to negative frequencies.
func BinFrequency(k, fftSize int, sampleRate float64) float64 {
	if fftSize <= 0 {
		return 0
	}
	if k > fftSize/2 {
		k -= fftSize
	}
	return float64(k) * sampleRate / float64(fftSize)
}

// BandPower sums the power bins whose absolute frequency lies in [lo, hi] Hz.
// pow is a full-length (two-sided) power spectrum of an fftSize-point DFT.
func BandPower(pow []float64, sampleRate, lo, hi float64) (float64, error) {
	if len(pow) == 0 {
		return 0, fmt.Errorf("spectrum: band power requires a non-empty spectrum")
	}
	if sampleRate <= 0 {
		return 0, fmt.Errorf("spectrum: band power sample rate must be > 0: %f", sampleRate)
	}
	if lo > hi {
		return 0, fmt.Errorf("spectrum: band power range inverted: [%f, %f]", lo, hi)
	}

	var sum float64
	for k, p := range pow {
		f := BinFrequency(k, len(pow), sampleRate)
		if f < 0 {
			f = -f
		}
		if f >= lo && f <= hi {
			sum += p
		}
	}
	return sum, nil
}
