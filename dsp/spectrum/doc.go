// Package spectrum provides FFT-adjacent spectrum-domain utilities.
//
// The package intentionally does not implement FFT itself. It operates on
// complex spectrum bins produced by an FFT backend and provides the power and
// magnitude reductions the deconvolution engine needs per iteration, plus bin
// frequency helpers for inspecting band content in tests and diagnostics.
package spectrum
