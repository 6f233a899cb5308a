// Package window generates tapers for spectral estimates of short series.
//
// Only the cosine-sum family and the Tukey taper are provided; fMRI series
// are a few hundred samples long, and a Hann taper is the usual choice for
// inspecting where the post-filter cuts off.
package window
