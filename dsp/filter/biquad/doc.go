// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. Multiple sections can be
// cascaded via [Chain] for higher-order filters such as Butterworth low-passes.
//
// [FiltFilt] runs a cascade forward and backward over a finite signal, which
// cancels the phase response and squares the magnitude response. This is the
// zero-phase low-pass used to post-filter deconvolved estimates.
//
// Coefficient design lives in dsp/filter/design/pass.
package biquad
