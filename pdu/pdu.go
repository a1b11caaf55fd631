// Package pdu adapts the burst estimator to a metadata/data message
// boundary. It validates inbound message shape, maps metadata dictionaries
// to and from the typed form, and carries the estimator's output and debug
// spectra as outbound messages.
//
// The package exposes no scheduling concerns; a host integration layer
// simply calls [Handler.Handle] for each inbound message.
package pdu

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-burst/measure/cfest"
)

// Metadata dictionary keys.
const (
	KeyCenterFrequency   = "center_frequency"
	KeySampleRate        = "sample_rate"
	KeyRelativeFrequency = "relative_frequency"
	KeyNoiseDensity      = "noise_density"
	KeyBandwidth         = "bandwidth"
	KeyPowerDB           = "pwr_db"
	KeySNRDB             = "snr_db"
)

// Errors returned for structurally malformed messages.
var (
	ErrNoMetadata = errors.New("pdu: message has no metadata")
	ErrNoData     = errors.New("pdu: message has no sample data")
	ErrMissingKey = errors.New("pdu: missing required metadata key")
	ErrBadKeyType = errors.New("pdu: metadata value is not numeric")
)

// Message is one metadata/data pair crossing the processing boundary.
type Message struct {
	Meta map[string]any
	Data []complex128
}

// asFloat converts the numeric types a metadata dictionary may carry.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func floatKey(meta map[string]any, key string, def float64) (float64, error) {
	v, ok := meta[key]
	if !ok {
		return def, nil
	}

	f, ok := asFloat(v)
	if !ok {
		return 0, fmt.Errorf("%w: %s (%T)", ErrBadKeyType, key, v)
	}

	return f, nil
}

// ParseMetadata validates a metadata dictionary and returns its typed form.
// center_frequency and sample_rate are required; relative_frequency defaults
// to 0 and noise_density to absent (NaN).
func ParseMetadata(meta map[string]any) (cfest.Metadata, error) {
	var out cfest.Metadata

	if meta == nil {
		return out, ErrNoMetadata
	}

	for _, key := range []string{KeyCenterFrequency, KeySampleRate} {
		if _, ok := meta[key]; !ok {
			return out, fmt.Errorf("%w: %s", ErrMissingKey, key)
		}
	}

	var err error

	if out.CenterFrequency, err = floatKey(meta, KeyCenterFrequency, 0); err != nil {
		return out, err
	}

	if out.SampleRate, err = floatKey(meta, KeySampleRate, 0); err != nil {
		return out, err
	}

	if out.RelativeFrequency, err = floatKey(meta, KeyRelativeFrequency, 0); err != nil {
		return out, err
	}

	if out.NoiseDensity, err = floatKey(meta, KeyNoiseDensity, math.NaN()); err != nil {
		return out, err
	}

	return out, nil
}
