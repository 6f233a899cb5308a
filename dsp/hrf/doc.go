// Package hrf synthesizes haemodynamic response kernels sampled at a
// repetition time TR.
//
// [Canonical] is the double-gamma response used by SPM: a gamma peak at about
// 5 s minus a smaller, later undershoot, normalized to unit sum.
// [TemporalDerivative] is its finite-difference latency derivative, and
// [Exponential] a simple decaying kernel for synthetic tests.
package hrf
