package cfest

import (
	"fmt"
	"strconv"
	"strings"
)

// Method selects the primary center-frequency estimation policy.
type Method int

// Estimation policies. The numeric values are part of the external
// configuration surface and must stay stable.
const (
	// MethodEnergyWeighted estimates the center frequency as the
	// energy-weighted mean of the PSD (RMS mean).
	MethodEnergyWeighted Method = iota

	// MethodHalfPower estimates the center frequency as the bin at which
	// cumulative energy first reaches half of the total.
	MethodHalfPower

	// MethodCoerceOnly performs no primary estimate; only channel coercion
	// contributes a correction.
	MethodCoerceOnly
)

// Valid reports whether m is a known method.
func (m Method) Valid() bool {
	switch m {
	case MethodEnergyWeighted, MethodHalfPower, MethodCoerceOnly:
		return true
	default:
		return false
	}
}

func (m Method) String() string {
	switch m {
	case MethodEnergyWeighted:
		return "energy-weighted"
	case MethodHalfPower:
		return "half-power"
	case MethodCoerceOnly:
		return "coerce-only"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// ParseMethod converts a method name or its numeric value into a Method.
// Accepted names: "energy-weighted" (alias "rms"), "half-power",
// "coerce-only", or the digits 0..2.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "energy-weighted", "rms":
		return MethodEnergyWeighted, nil
	case "half-power":
		return MethodHalfPower, nil
	case "coerce-only", "coerce":
		return MethodCoerceOnly, nil
	}

	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		m := Method(n)
		if m.Valid() {
			return m, nil
		}
	}

	return 0, fmt.Errorf("cfest: unknown method %q", s)
}
