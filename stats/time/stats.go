package time

import "math"

// Stats holds time-domain signal statistics.
//
// Moments, extrema and energy are computed over the finite samples only;
// NaN and Inf count the samples that were skipped.
type Stats struct {
	Length        int
	NaN           int
	Inf           int
	Mean          float64
	Std           float64 // population standard deviation
	Variance      float64
	RMS           float64
	Min           float64
	MinPos        int
	Max           float64
	MaxPos        int
	Peak          float64 // max(|max|, |min|)
	Range         float64 // max - min
	Energy        float64 // sum of squares
	ZeroCrossings int
	Skewness      float64
	Kurtosis      float64 // excess kurtosis
}

// Finite reports whether every sample was finite.
func (s Stats) Finite() bool {
	return s.NaN == 0 && s.Inf == 0
}

// Calculate computes all time-domain statistics in a single pass using
// Welford's online algorithm for numerical stability on higher-order moments.
func Calculate(signal []float64) Stats {
	st := Stats{Length: len(signal), MinPos: -1, MaxPos: -1}

	var (
		mean, m2, m3, m4 float64
		count            int
		prev             float64
		havePrev         bool
	)

	for i, x := range signal {
		switch {
		case math.IsNaN(x):
			st.NaN++
			continue
		case math.IsInf(x, 0):
			st.Inf++
			continue
		}

		count++
		ni := float64(count)
		delta := x - mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(count-1)

		// M4 must be updated before M3, and M3 before M2.
		m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*m2 - 4*deltaN*m3
		m3 += term1*deltaN*(ni-2) - 3*deltaN*m2
		m2 += term1
		mean += deltaN

		st.Energy += x * x

		if st.MaxPos < 0 || x > st.Max {
			st.Max, st.MaxPos = x, i
		}
		if st.MinPos < 0 || x < st.Min {
			st.Min, st.MinPos = x, i
		}

		if havePrev && prev*x < 0 {
			st.ZeroCrossings++
		}
		prev, havePrev = x, true
	}

	if count == 0 {
		return st
	}

	n := float64(count)
	st.Mean = mean
	st.Variance = m2 / n
	st.Std = math.Sqrt(st.Variance)
	st.RMS = math.Sqrt(st.Energy / n)
	st.Peak = math.Max(math.Abs(st.Max), math.Abs(st.Min))
	st.Range = st.Max - st.Min

	if st.Variance > 0 {
		st.Skewness = (m3 / n) / (st.Variance * st.Std)
		st.Kurtosis = (m4/n)/(st.Variance*st.Variance) - 3
	}

	return st
}

// HasNonFinite reports whether signal contains any NaN or ±Inf.
func HasNonFinite(signal []float64) bool {
	for _, x := range signal {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return true
		}
	}
	return false
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}

// Mean returns the arithmetic mean of the signal.
func Mean(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	// Use Kahan summation for numerical stability.
	var sum, c float64
	for _, x := range signal {
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}

	return sum / float64(len(signal))
}

// CountNonFinite returns the number of NaN and ±Inf samples.
func CountNonFinite(signal []float64) (nan, inf int) {
	for _, x := range signal {
		switch {
		case math.IsNaN(x):
			nan++
		case math.IsInf(x, 0):
			inf++
		}
	}
	return nan, inf
}

// Summary is the compact per-output report: extrema, mean, population
// standard deviation and RMS over the finite samples, plus non-finite counts.
type Summary struct {
	Length int
	Min    float64
	Max    float64
	Mean   float64
	Std    float64
	RMS    float64
	NaN    int
	Inf    int
}

// Summarize reduces [Calculate] to a [Summary].
func Summarize(signal []float64) Summary {
	st := Calculate(signal)
	return Summary{
		Length: st.Length,
		Min:    st.Min,
		Max:    st.Max,
		Mean:   st.Mean,
		Std:    st.Std,
		RMS:    st.RMS,
		NaN:    st.NaN,
		Inf:    st.Inf,
	}
}
