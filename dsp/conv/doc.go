// Package conv provides linear convolution of finite real signals.
//
// Two strategies are offered:
//
//   - Direct convolution: O(N*M) time-domain convolution, best for short kernels
//   - FFT convolution: zero-padded frequency-domain multiplication, best for
//     long kernels
//
// [Convolve] picks between them by kernel length. [Causal] returns the first
// len(signal) samples of the convolution, which is how an observed series is
// modelled from a driving signal and a response kernel.
//
// # Usage
//
//	full, err := conv.Convolve(signal, kernel)   // len(signal)+len(kernel)-1
//	same, err := conv.ConvolveMode(signal, kernel, conv.ModeSame)
//	obs, err := conv.Causal(drive, hrf)          // len(drive)
package conv
