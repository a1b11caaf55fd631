package rotate

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-burst/internal/testutil"
)

func TestIdentityIncrementLeavesInputUntouched(t *testing.T) {
	src := testutil.ComplexNoise(1, 1.0, 1024)
	dst := make([]complex128, len(src))

	r := New()
	r.Rotate(dst, src)

	for i := range src {
		if dst[i] != src[i] {
			t.Fatalf("dst[%d] = %v, want %v", i, dst[i], src[i])
		}
	}
}

func TestZeroValueIsIdentity(t *testing.T) {
	src := testutil.ComplexNoise(2, 1.0, 16)
	dst := make([]complex128, len(src))

	var r Rotator
	r.Rotate(dst, src)

	for i := range src {
		if dst[i] != src[i] {
			t.Fatalf("dst[%d] = %v, want %v", i, dst[i], src[i])
		}
	}
}

func TestRotateShiftsToneToDC(t *testing.T) {
	const (
		rate = 48000.0
		freq = 1500.0
		n    = 2048
	)

	src := testutil.ComplexTone(freq, rate, 1.0, n)
	dst := make([]complex128, n)

	shift := freq / rate

	r := New()
	r.SetPhaseIncrement(cmplx.Exp(complex(0, -2*math.Pi*shift)))
	r.SetPhase(1)
	r.Rotate(dst, src)

	ones := make([]complex128, n)
	for i := range ones {
		ones[i] = 1
	}

	testutil.RequireComplexSliceNearlyEqual(t, dst, ones, 1e-9)
}

func TestRotateOutputLengthMatchesInput(t *testing.T) {
	for _, n := range []int{1, 7, 512, 513, 4099} {
		src := testutil.ComplexNoise(3, 1.0, n)
		dst := make([]complex128, n)

		r := New()
		r.SetPhaseIncrement(cmplx.Exp(complex(0, 0.123)))
		r.Rotate(dst, src)

		if len(dst) != len(src) {
			t.Fatalf("n=%d: length changed", n)
		}
	}
}

func TestRenormalizationKeepsUnitMagnitude(t *testing.T) {
	const n = 100000

	src := make([]complex128, n)
	for i := range src {
		src[i] = 1
	}

	dst := make([]complex128, n)

	r := New()
	r.SetPhaseIncrement(cmplx.Exp(complex(0, 0.3)))
	r.Rotate(dst, src)

	for i, v := range dst {
		if math.Abs(cmplx.Abs(v)-1) > 1e-9 {
			t.Fatalf("sample %d: magnitude %v drifted", i, cmplx.Abs(v))
		}
	}
}

func TestResetStartsNewBurstAtUnityPhase(t *testing.T) {
	src := []complex128{1, 1, 1, 1}
	first := make([]complex128, len(src))
	second := make([]complex128, len(src))

	r := New()
	r.SetPhaseIncrement(cmplx.Exp(complex(0, 0.7)))
	r.Rotate(first, src)

	r.Reset()
	r.Rotate(second, src)

	testutil.RequireComplexSliceNearlyEqual(t, second, first, 1e-12)
}
