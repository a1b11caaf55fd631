// Package fftcache owns reusable forward FFT plans and matched analysis
// windows, one entry per power-of-two transform size.
//
// A cache is built once when an estimator is constructed and is only read
// afterwards, so any number of lookups may proceed without locking as long
// as no Ensure call runs concurrently.
package fftcache

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-burst/dsp/window"
)

// Errors returned by the plan cache.
var (
	ErrNegativePower = errors.New("fftcache: negative FFT power")
	ErrNotBuilt      = errors.New("fftcache: FFT power exceeds built cache")
)

// Entry holds the reusable state for one transform size.
type Entry struct {
	Size     int
	Plan     *algofft.Plan[complex128]
	Window   []float64
	Mag2Gain float64
}

// Cache maps FFT exponent k to a plan, window, and gain for size 2^k.
type Cache struct {
	entries []*Entry
}

// New returns a cache populated for every exponent in [0, maxPower].
func New(maxPower int) (*Cache, error) {
	c := &Cache{}
	if err := c.Ensure(maxPower); err != nil {
		return nil, err
	}

	return c, nil
}

// Ensure builds entries for every exponent from the current cache size up to
// power inclusive. Already-built entries are reused untouched.
func (c *Cache) Ensure(power int) error {
	if power < 0 {
		return ErrNegativePower
	}

	for k := len(c.entries); k <= power; k++ {
		size := 1 << k

		plan, err := algofft.NewPlan64(size)
		if err != nil {
			return fmt.Errorf("fftcache: plan for size %d: %w", size, err)
		}

		taps := window.Gaussian(size)
		rms := window.RMSGain(taps)

		c.entries = append(c.entries, &Entry{
			Size:     size,
			Plan:     plan,
			Window:   taps,
			Mag2Gain: float64(size) * float64(size) * rms * rms,
		})
	}

	return nil
}

// Get returns the entry for exponent power. It fails only when the exponent
// has not been built; the PSD estimator clamps its derived exponent to the
// configured maximum before calling Get.
func (c *Cache) Get(power int) (*Entry, error) {
	if power < 0 {
		return nil, ErrNegativePower
	}

	if power >= len(c.entries) {
		return nil, fmt.Errorf("%w: %d > %d", ErrNotBuilt, power, len(c.entries)-1)
	}

	return c.entries[power], nil
}

// MaxPower returns the largest built exponent, or -1 for an empty cache.
func (c *Cache) MaxPower() int {
	return len(c.entries) - 1
}

// Release drops all cached plans and windows.
func (c *Cache) Release() {
	c.entries = nil
}
