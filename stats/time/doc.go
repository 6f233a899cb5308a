// Package time computes time-domain diagnostics for deconvolved series.
//
// [Calculate] summarizes one series (finite-value checks, min/max/mean/std
// and higher moments) in a single Welford pass. [Correlation] and [Diff]
// compare two series of equal length, typically the outputs of the same input
// deconvolved under different configurations.
package time
