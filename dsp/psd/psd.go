// Package psd estimates an averaged, zero-centered power spectral density
// from a finite burst of complex baseband samples.
//
// The burst is sliced into equal segments, each segment is windowed and
// transformed, and the per-bin squared magnitudes are averaged across
// segments. The result is fftshifted so bin 0 carries the most negative
// frequency, and is paired with an absolute frequency axis in Hz.
package psd

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-burst/dsp/core"
	"github.com/cwbudde/algo-burst/dsp/fftcache"
	vecmath "github.com/cwbudde/algo-vecmath"
)

// ErrEmptyBurst is returned for a zero-length input burst.
var ErrEmptyBurst = errors.New("psd: empty burst")

// Config holds PSD estimation parameters.
type Config struct {
	SampleRate      float64
	CenterFrequency float64
	MinFFTPower     int // soft recommendation, reported only
	MaxFFTPower     int // hard cap, must not exceed the plan cache
	MinSegments     int // minimum desired transform count per burst
}

// DefaultConfig returns the standard analysis parameters.
func DefaultConfig() Config {
	return Config{
		MinFFTPower: 5,
		MaxFFTPower: 8,
		MinSegments: 4,
	}
}

// Spectrum is the averaged, zero-centered PSD of one burst.
type Spectrum struct {
	Bins  []float64 // magnitude-squared, length FFTSize, bin 0 = lowest frequency
	Freqs []float64 // absolute frequency axis in Hz, same length as Bins

	Exponent int
	FFTSize  int
	Segments int
	Offset   int // start of the first segment within the burst

	Mag2Gain float64 // window/FFT processing gain of the size used

	Clamped    bool // derived exponent exceeded MaxFFTPower
	Undersized bool // burst shorter than the recommended minimum
}

func normalizeConfig(cfg Config) Config {
	def := DefaultConfig()

	if cfg.MinSegments < 1 {
		cfg.MinSegments = def.MinSegments
	}

	if cfg.MaxFFTPower < 0 {
		cfg.MaxFFTPower = def.MaxFFTPower
	}

	if cfg.MinFFTPower < 0 {
		cfg.MinFFTPower = def.MinFFTPower
	}

	return cfg
}

// Estimate computes the averaged PSD of burst using plans from cache.
//
// The derived FFT exponent is floor(log2(len(burst)/MinSegments)), clamped
// to [0, MaxFFTPower]. Undersized bursts are not rejected; the Spectrum
// flags report any degradation so the caller can log a diagnostic.
func Estimate(burst []complex128, cache *fftcache.Cache, cfg Config) (*Spectrum, error) {
	if len(burst) == 0 {
		return nil, ErrEmptyBurst
	}

	cfg = normalizeConfig(cfg)
	burstSize := len(burst)

	exponent := int(math.Floor(math.Log2(float64(burstSize) / float64(cfg.MinSegments))))

	clamped := false
	if exponent > cfg.MaxFFTPower {
		exponent = cfg.MaxFFTPower
		clamped = true
	}

	if exponent < 0 {
		exponent = 0
	}

	entry, err := cache.Get(exponent)
	if err != nil {
		return nil, fmt.Errorf("psd: %w", err)
	}

	fftSize := entry.Size
	segments := burstSize / fftSize
	offset := (burstSize - segments*fftSize) / 2

	re := make([]float64, fftSize)
	im := make([]float64, fftSize)
	segIn := make([]complex128, fftSize)
	segOut := make([]complex128, fftSize)
	power := make([]float64, fftSize)
	accum := make([]float64, fftSize)

	for i := range segments {
		start := offset + i*fftSize

		core.ZeroComplex(segIn)
		copy(segIn, burst[start:start+fftSize])

		// Window the segment on separate real/imaginary planes.
		core.SplitComplex(re, im, segIn)
		vecmath.MulBlockInPlace(re, entry.Window)
		vecmath.MulBlockInPlace(im, entry.Window)
		core.CombineComplex(segIn, re, im)

		if err := entry.Plan.Forward(segOut, segIn); err != nil {
			return nil, fmt.Errorf("psd: forward transform: %w", err)
		}

		core.SplitComplex(re, im, segOut)
		vecmath.Power(power, re, im)
		vecmath.AddBlockInPlace(accum, power)
	}

	vecmath.ScaleBlock(accum, accum, 1/float64(segments))
	Shift(accum)

	return &Spectrum{
		Bins:       accum,
		Freqs:      FreqAxis(cfg.CenterFrequency, cfg.SampleRate, fftSize),
		Exponent:   exponent,
		FFTSize:    fftSize,
		Segments:   segments,
		Offset:     offset,
		Mag2Gain:   entry.Mag2Gain,
		Clamped:    clamped,
		Undersized: burstSize < (1<<cfg.MinFFTPower)*cfg.MinSegments,
	}, nil
}

// Shift rotates bins in place by len(bins)/2 positions so that bin 0 holds
// the most negative frequency. Applying it twice on an even-length slice
// restores the original order.
func Shift(bins []float64) {
	half := len(bins) / 2
	if half == 0 {
		return
	}

	tmp := make([]float64, half)
	copy(tmp, bins[:half])
	copy(bins, bins[half:])
	copy(bins[len(bins)-half:], tmp)
}

// FreqAxis returns the absolute frequency in Hz of each zero-centered bin:
// freqs[i] = center - rate/2 + i*rate/n.
func FreqAxis(center, rate float64, n int) []float64 {
	if n <= 0 {
		return nil
	}

	step := rate / float64(n)
	start := center - rate/2

	freqs := make([]float64, n)
	for i := range freqs {
		freqs[i] = start + step*float64(i)
	}

	return freqs
}
