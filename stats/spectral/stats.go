// Package spectral computes moments of a zero-centered power spectral
// density paired with its absolute frequency axis.
//
// All divisions by total energy fall back to 0 when the PSD sums to zero
// (an all-zero burst), so callers never see NaN from degenerate input.
package spectral

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Stats holds aggregate statistics of a PSD.
type Stats struct {
	BinCount int
	Energy   float64 // sum of PSD bins
	Max      float64
	MaxBin   int
	Centroid float64 // energy-weighted mean frequency (Hz)
	Spread   float64 // RMS bandwidth about the centroid (Hz)
}

// Calculate computes aggregate statistics from a PSD and its frequency axis.
// Both slices must have the same length.
func Calculate(bins, freqs []float64) Stats {
	n := len(bins)
	if n == 0 {
		return Stats{}
	}

	s := Stats{
		BinCount: n,
		Energy:   Energy(bins),
		Max:      bins[0],
	}

	for i, v := range bins {
		if v > s.Max {
			s.Max = v
			s.MaxBin = i
		}
	}

	s.Centroid = Centroid(bins, freqs)
	s.Spread = RMSBandwidth(bins, freqs, s.Centroid)

	return s
}

// Energy returns the sum of all PSD bins.
func Energy(bins []float64) float64 {
	return floats.Sum(bins)
}

// Centroid returns the energy-weighted mean frequency in Hz:
//
//	centroid = sum(f_i * PSD_i) / sum(PSD_i)
//
// Returns 0 when the PSD has zero total energy.
func Centroid(bins, freqs []float64) float64 {
	if len(bins) == 0 {
		return 0
	}

	energy := floats.Sum(bins)
	if energy == 0 {
		return 0
	}

	return floats.Dot(freqs, bins) / energy
}

// RMSBandwidth returns the RMS bandwidth of the PSD about center in Hz:
//
//	bw = sqrt(sum((f_i - center)^2 * PSD_i) / sum(PSD_i))
//
// Returns 0 when the PSD has zero total energy.
func RMSBandwidth(bins, freqs []float64, center float64) float64 {
	if len(bins) == 0 {
		return 0
	}

	energy := floats.Sum(bins)
	if energy == 0 {
		return 0
	}

	weighted := 0.0
	for i, v := range bins {
		diff := freqs[i] - center
		weighted += diff * diff * v
	}

	return math.Sqrt(weighted / energy)
}

// HalfPowerIndex returns the smallest index at which the cumulative sum of
// the PSD first reaches or exceeds half of its total energy. Returns 0 for
// an empty or all-zero PSD.
func HalfPowerIndex(bins []float64) int {
	if len(bins) == 0 {
		return 0
	}

	energy := floats.Sum(bins)
	if energy == 0 {
		return 0
	}

	half := energy / 2
	running := 0.0

	for i, v := range bins {
		running += v
		if running >= half {
			return i
		}
	}

	return len(bins) - 1
}

// BandPower sums the PSD bins whose frequency lies strictly inside the open
// interval (lo, hi).
func BandPower(bins, freqs []float64, lo, hi float64) float64 {
	sum := 0.0
	for i, v := range bins {
		if freqs[i] > lo && freqs[i] < hi {
			sum += v
		}
	}

	return sum
}
