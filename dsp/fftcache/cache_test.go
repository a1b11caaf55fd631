package fftcache

import (
	"errors"
	"math"
	"testing"
)

func TestNewBuildsAllPowers(t *testing.T) {
	const maxPower = 8

	c, err := New(maxPower)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if c.MaxPower() != maxPower {
		t.Fatalf("MaxPower = %d, want %d", c.MaxPower(), maxPower)
	}

	for k := 0; k <= maxPower; k++ {
		e, err := c.Get(k)
		if err != nil {
			t.Fatalf("Get(%d): %v", k, err)
		}

		wantSize := 1 << k
		if e.Size != wantSize {
			t.Fatalf("entry %d: Size = %d, want %d", k, e.Size, wantSize)
		}

		if len(e.Window) != wantSize {
			t.Fatalf("entry %d: window length %d != plan size %d", k, len(e.Window), wantSize)
		}

		if e.Plan == nil {
			t.Fatalf("entry %d: nil plan", k)
		}

		if e.Mag2Gain <= 0 || math.IsNaN(e.Mag2Gain) {
			t.Fatalf("entry %d: Mag2Gain = %v", k, e.Mag2Gain)
		}
	}
}

func TestGetBeyondBuiltFails(t *testing.T) {
	c, err := New(4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := c.Get(5); !errors.Is(err, ErrNotBuilt) {
		t.Fatalf("Get(5) err = %v, want ErrNotBuilt", err)
	}

	if _, err := c.Get(-1); !errors.Is(err, ErrNegativePower) {
		t.Fatalf("Get(-1) err = %v, want ErrNegativePower", err)
	}
}

func TestEnsureExtendsAndIsIdempotent(t *testing.T) {
	c, err := New(3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	before, err := c.Get(2)
	if err != nil {
		t.Fatalf("Get(2): %v", err)
	}

	if err := c.Ensure(6); err != nil {
		t.Fatalf("Ensure(6): %v", err)
	}

	if c.MaxPower() != 6 {
		t.Fatalf("MaxPower = %d, want 6", c.MaxPower())
	}

	// Extending must not rebuild existing entries.
	after, err := c.Get(2)
	if err != nil {
		t.Fatalf("Get(2): %v", err)
	}

	if before != after {
		t.Fatal("Ensure rebuilt an existing entry")
	}

	// Ensuring a lower power is a no-op.
	if err := c.Ensure(1); err != nil {
		t.Fatalf("Ensure(1): %v", err)
	}

	if c.MaxPower() != 6 {
		t.Fatalf("MaxPower = %d after no-op Ensure, want 6", c.MaxPower())
	}
}

func TestEnsureNegativeFails(t *testing.T) {
	c := &Cache{}
	if err := c.Ensure(-1); !errors.Is(err, ErrNegativePower) {
		t.Fatalf("err = %v, want ErrNegativePower", err)
	}
}

func TestMag2GainFormula(t *testing.T) {
	c, err := New(5)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	e, err := c.Get(5)
	if err != nil {
		t.Fatalf("Get(5): %v", err)
	}

	sum := 0.0
	for _, w := range e.Window {
		sum += w * w
	}

	n := float64(e.Size)
	want := n * n * (sum / n)

	if math.Abs(e.Mag2Gain-want) > 1e-9*want {
		t.Fatalf("Mag2Gain = %v, want %v", e.Mag2Gain, want)
	}
}

func TestRelease(t *testing.T) {
	c, err := New(2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	c.Release()

	if c.MaxPower() != -1 {
		t.Fatalf("MaxPower = %d after Release, want -1", c.MaxPower())
	}

	if _, err := c.Get(0); !errors.Is(err, ErrNotBuilt) {
		t.Fatalf("Get(0) after Release err = %v, want ErrNotBuilt", err)
	}
}
