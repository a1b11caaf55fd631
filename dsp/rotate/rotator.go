// Package rotate applies a constant-increment phase rotation to complex
// sample blocks. It is the burst-correction primitive: rotating a burst by
// exp(-j*2*pi*shift) per sample translates its spectrum by -shift times the
// sample rate.
package rotate

import "math/cmplx"

// renormInterval bounds multiplicative drift of the accumulated phasor.
const renormInterval = 512

// Rotator multiplies samples by an accumulated phasor with a fixed per-sample
// increment. The zero value is usable: phase 1 and increment 1 (identity).
type Rotator struct {
	phase   complex128
	incr    complex128
	counter int
}

// New returns a rotator with phase 1 and increment 1.
func New() *Rotator {
	return &Rotator{phase: 1, incr: 1}
}

// SetPhaseIncrement sets the per-sample phasor increment.
func (r *Rotator) SetPhaseIncrement(incr complex128) {
	r.incr = incr
}

// SetPhase resets the accumulated phase.
func (r *Rotator) SetPhase(phase complex128) {
	r.phase = phase
	r.counter = 0
}

// Reset restores phase 1 for a new burst without touching the increment.
func (r *Rotator) Reset() {
	r.SetPhase(1)
}

// Rotate writes src rotated by the accumulated phasor into dst and advances
// the phase by one increment per sample. dst and src must have the same
// length. The phasor magnitude is renormalized periodically so long bursts
// do not drift in amplitude.
func (r *Rotator) Rotate(dst, src []complex128) {
	if r.phase == 0 {
		r.phase = 1
	}

	if r.incr == 0 {
		r.incr = 1
	}

	for i := range src {
		dst[i] = src[i] * r.phase
		r.phase *= r.incr

		r.counter++
		if r.counter%renormInterval == 0 {
			r.phase /= complex(cmplx.Abs(r.phase), 0)
		}
	}
}
