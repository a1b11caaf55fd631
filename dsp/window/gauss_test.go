package window

import (
	"math"
	"testing"
)

const tolerance = 1e-12

// referenceGaussian computes the taps directly from the defining formula.
func referenceGaussian(n int) []float64 {
	taps := make([]float64, n)
	sigma := float64(n) / 32
	twoSigmaSq := 2 * sigma * sigma

	for j := range taps {
		x := float64(j) - float64(n-1)/2
		taps[j] = math.Exp(-x * x / twoSigmaSq)
	}

	return taps
}

func TestGaussianMatchesDefinition(t *testing.T) {
	for _, n := range []int{2, 4, 32, 256, 257} {
		got := Gaussian(n)
		want := referenceGaussian(n)

		if len(got) != n {
			t.Fatalf("n=%d: len = %d", n, len(got))
		}

		for i := range got {
			if math.Abs(got[i]-want[i]) > tolerance {
				t.Fatalf("n=%d: taps[%d] = %v, want %v", n, i, got[i], want[i])
			}
		}
	}
}

func TestGaussianDegenerateSizes(t *testing.T) {
	if got := Gaussian(0); got != nil {
		t.Fatalf("n=0: got %v, want nil", got)
	}

	if got := Gaussian(1); len(got) != 1 || got[0] != 1 {
		t.Fatalf("n=1: got %v, want [1]", got)
	}
}

func TestGaussianSymmetric(t *testing.T) {
	taps := Gaussian(64)

	for i := range len(taps) / 2 {
		j := len(taps) - 1 - i
		if math.Abs(taps[i]-taps[j]) > tolerance {
			t.Fatalf("taps[%d]=%v != taps[%d]=%v", i, taps[i], j, taps[j])
		}
	}
}

func TestGaussianTapsInUnitRange(t *testing.T) {
	taps := Gaussian(128)

	for i, w := range taps {
		if w <= 0 || w > 1 {
			t.Fatalf("taps[%d] = %v out of (0, 1]", i, w)
		}
	}
}

func TestRMSGain(t *testing.T) {
	// All-ones window has RMS gain exactly 1.
	ones := []float64{1, 1, 1, 1}
	if got := RMSGain(ones); math.Abs(got-1) > tolerance {
		t.Fatalf("RMSGain(ones) = %v, want 1", got)
	}

	if got := RMSGain(nil); got != 0 {
		t.Fatalf("RMSGain(nil) = %v, want 0", got)
	}

	// Direct formula check against the generated window.
	taps := Gaussian(256)

	sum := 0.0
	for _, w := range taps {
		sum += w * w
	}

	want := math.Sqrt(sum / 256)
	if got := RMSGain(taps); math.Abs(got-want) > tolerance {
		t.Fatalf("RMSGain = %v, want %v", got, want)
	}
}
