// Package deconv recovers a latent driving signal from an observed series
// that was convolved with a known haemodynamic response kernel.
//
// The engine runs an iterative Wiener deconvolution in the frequency domain:
// each pass estimates the noise level from the residual between the observed
// series and the kernel applied to the current estimate, rebuilds the Wiener
// gain conj(H)/(|H|^2 + NSR) per bin and reapplies it to the observed
// spectrum. Iteration stops when successive estimates change by less than a
// tolerance or after a fixed number of passes.
//
// Configuration is a tagged variant. [Legacy] runs the refinement only.
// [Modal] adds an optional post-filter (centered moving average followed by
// a zero-phase Butterworth low-pass) whose parameters are recommended from
// the acquisition [Mode] and repetition time unless given explicitly. Both
// variants share the refinement loop, so Legacy{Iterations: k} and
// Modal{MaxIter: k} produce bit-identical output.
//
// All entry points are pure: they never modify their inputs, keep no
// package-level state and may be called concurrently.
package deconv
