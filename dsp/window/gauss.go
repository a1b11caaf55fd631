// Package window generates the analysis window used for burst PSD
// estimation and its gain normalization terms.
package window

import (
	"math"

	gwindow "gonum.org/v1/gonum/dsp/window"
)

// Gaussian returns the analysis window of length n.
//
// The taps follow w[j] = exp(-x^2 / (2*sigma^2)) with x = j - (n-1)/2 and
// sigma = n/32, scaling the taper with the transform size. This shape
// behaves better than sharper windows on heavily biased bursts.
func Gaussian(n int) []float64 {
	if n <= 0 {
		return nil
	}

	taps := make([]float64, n)
	for i := range taps {
		taps[i] = 1
	}

	if n == 1 {
		return taps
	}

	// gonum parameterizes sigma as a fraction of the half width (n-1)/2.
	sigma := float64(n) / (16 * float64(n-1))

	return gwindow.Gaussian{Sigma: sigma}.Transform(taps)
}

// RMSGain returns the non-coherent gain of a window: the RMS value of its
// taps, sqrt(sum(w[j]^2) / n). Returns 0 for an empty window.
func RMSGain(taps []float64) float64 {
	if len(taps) == 0 {
		return 0
	}

	sum := 0.0
	for _, w := range taps {
		sum += w * w
	}

	return math.Sqrt(sum / float64(len(taps)))
}
