// Package testutil provides deterministic test signals and tolerance helpers
// shared across the estimation packages.
package testutil

import (
	"math"
	"math/rand"
)

// ComplexTone generates a deterministic complex exponential at the given
// baseband frequency: amplitude * exp(j*2*pi*freqHz/sampleRate * n).
func ComplexTone(freqHz, sampleRate, amplitude float64, length int) []complex128 {
	out := make([]complex128, length)
	step := 2 * math.Pi * freqHz / sampleRate

	for n := range out {
		phase := step * float64(n)
		out[n] = complex(amplitude*math.Cos(phase), amplitude*math.Sin(phase))
	}

	return out
}

// ComplexNoise generates complex white noise with a fixed seed for
// reproducibility. Real and imaginary parts are uniform in [-amplitude, amplitude].
func ComplexNoise(seed int64, amplitude float64, length int) []complex128 {
	out := make([]complex128, length)
	rng := rand.New(rand.NewSource(seed))

	for i := range out {
		re := (rng.Float64()*2 - 1) * amplitude
		im := (rng.Float64()*2 - 1) * amplitude
		out[i] = complex(re, im)
	}

	return out
}
