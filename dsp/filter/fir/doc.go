// Package fir provides centered (zero-phase) FIR smoothing for finite signals.
//
// [MovingAverage] is the boxcar smoother applied to deconvolved estimates
// before low-pass filtering. Its window shrinks symmetrically at the signal
// edges so every output sample stays centered.
package fir
