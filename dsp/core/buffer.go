package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Zero sets all values in buf to 0.
func Zero[T float64 | complex128](buf []T) {
	for i := range buf {
		buf[i] = 0
	}
}

// Clone returns a copy of src that does not alias it.
func Clone(src []float64) []float64 {
	if src == nil {
		return nil
	}
	out := make([]float64, len(src))
	copy(out, src)
	return out
}

// LoadReal writes src into the real parts of dst and zeroes everything else.
// Samples of src beyond len(dst) are dropped.
func LoadReal(dst []complex128, src []float64) {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = complex(src[i], 0)
	}
	Zero(dst[n:])
}

// StoreReal copies the real parts of src into dst and returns the number of
// copied elements.
func StoreReal(dst []float64, src []complex128) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = real(src[i])
	}
	return n
}

// NextPowerOf2 returns the smallest power of two >= n (1 for n <= 1).
func NextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
