// Package pass designs pass-band filter cascades as biquad coefficients.
//
// Designs are returned as []biquad.Coefficients so they can be run by a
// [biquad.Chain] or filtered with zero phase by [biquad.FiltFilt].
package pass
