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

// EnsureLenComplex returns a complex slice with the requested length, reusing
// buf capacity if possible.
func EnsureLenComplex(buf []complex128, n int) []complex128 {
	if n <= 0 {
		return buf[:0]
	}

	if cap(buf) >= n {
		return buf[:n]
	}

	return make([]complex128, n)
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// ZeroComplex sets all values in buf to 0.
func ZeroComplex(buf []complex128) {
	for i := range buf {
		buf[i] = 0
	}
}

// CopyInto copies src into dst and returns the number of copied elements.
func CopyInto(dst, src []float64) int {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}

	copy(dst[:n], src[:n])

	return n
}

// SplitComplex unpacks src into separate real and imaginary planes.
// Both destination slices must have the same length as src.
func SplitComplex(re, im []float64, src []complex128) {
	for i, c := range src {
		re[i] = real(c)
		im[i] = imag(c)
	}
}

// CombineComplex packs separate real and imaginary planes into dst.
// All three slices must have the same length.
func CombineComplex(dst []complex128, re, im []float64) {
	for i := range dst {
		dst[i] = complex(re[i], im[i])
	}
}
