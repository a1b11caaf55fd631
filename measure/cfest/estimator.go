package cfest

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"sync"

	"github.com/cwbudde/algo-burst/dsp/core"
	"github.com/cwbudde/algo-burst/dsp/fftcache"
	"github.com/cwbudde/algo-burst/dsp/psd"
	"github.com/cwbudde/algo-burst/dsp/rotate"
	"github.com/cwbudde/algo-burst/logging"
	"github.com/cwbudde/algo-burst/stats/spectral"
)

// Errors returned by the estimator.
var (
	ErrEmptyBurst        = errors.New("cfest: empty burst")
	ErrInvalidSampleRate = errors.New("cfest: sample rate must be positive")
	ErrInvalidMethod     = errors.New("cfest: invalid method")
)

// Metadata describes one input burst.
type Metadata struct {
	CenterFrequency   float64 // Hz, required
	SampleRate        float64 // Hz, required
	RelativeFrequency float64 // Hz, optional; 0 means unset
	NoiseDensity      float64 // dB/Hz, optional; NaN means absent
}

// NewMetadata returns a Metadata with the noise density marked absent.
func NewMetadata(centerFrequency, sampleRate float64) Metadata {
	return Metadata{
		CenterFrequency: centerFrequency,
		SampleRate:      sampleRate,
		NoiseDensity:    math.NaN(),
	}
}

// HasNoiseDensity reports whether a noise-density figure was supplied.
func (m Metadata) HasNoiseDensity() bool {
	return !math.IsNaN(m.NoiseDensity)
}

// Result holds the corrected burst and the refined burst metadata.
type Result struct {
	// Samples is the phase-rotation-corrected burst, same length as the input.
	Samples []complex128

	// Metadata carries the corrected center frequency (and relative
	// frequency, when it was set) alongside the original rate and noise
	// density.
	Metadata Metadata

	// Shift is the combined fractional frequency correction that was
	// applied, as a fraction of the sample rate.
	Shift float64

	// Bandwidth is the RMS bandwidth about the corrected center in Hz.
	Bandwidth float64

	// PowerDB and SNRDB are populated only when the input carried a noise
	// density; otherwise both are NaN.
	PowerDB float64
	SNRDB   float64

	// FFTSize and Segments describe the analysis that produced the PSD.
	FFTSize  int
	Segments int

	// DebugPSD has FFTSize elements; each real part is the corresponding
	// PSD bin in dB and each imaginary part the estimated noise floor in
	// dB (NaN without a noise density).
	DebugPSD []complex128
}

// Estimator derives and corrects burst carrier-frequency offsets.
//
// The FFT plan cache is built once at construction and only read afterwards.
// Process must not be invoked concurrently; the method and channel list may
// be reconfigured from other goroutines via the setters.
type Estimator struct {
	cfg    Config
	cache  *fftcache.Cache
	rot    *rotate.Rotator
	logger logging.Logger

	mu           sync.Mutex
	method       Method
	channelFreqs []float64
}

// New constructs an estimator, building FFT plans and windows for every
// power of two up to the configured maximum.
func New(opts ...Option) (*Estimator, error) {
	cfg := normalizeConfig(ApplyOptions(opts...))

	cache, err := fftcache.New(cfg.MaxFFTPower)
	if err != nil {
		return nil, fmt.Errorf("cfest: %w", err)
	}

	e := &Estimator{
		cfg:          cfg,
		cache:        cache,
		rot:          rotate.New(),
		logger:       cfg.Logger.WithFields(logging.Fields{"component": "cfest"}),
		method:       cfg.Method,
		channelFreqs: cfg.ChannelFreqs,
	}

	if e.method == MethodCoerceOnly && len(e.channelFreqs) == 0 {
		e.logger.Warn("coerce-only method with empty channel frequency list; no correction will be applied")
	}

	return e, nil
}

// Close releases the cached FFT plans and windows.
func (e *Estimator) Close() {
	e.cache.Release()
}

// SetMethod selects the primary estimation policy for subsequent bursts.
func (e *Estimator) SetMethod(m Method) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidMethod, int(m))
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.method = m

	return nil
}

// SetChannelFreqs replaces the channel coercion list for subsequent bursts.
// An empty or nil list disables coercion.
func (e *Estimator) SetChannelFreqs(freqs []float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.channelFreqs = append([]float64(nil), freqs...)
}

func (e *Estimator) snapshot() (Method, []float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.method, e.channelFreqs
}

// Process estimates the carrier-frequency offset of one burst and returns
// the corrected burst with refined metadata. The input burst is not
// modified.
func (e *Estimator) Process(burst []complex128, meta Metadata) (*Result, error) {
	if len(burst) == 0 {
		return nil, ErrEmptyBurst
	}

	if meta.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, meta.SampleRate)
	}

	method, channelFreqs := e.snapshot()

	spectrum, err := psd.Estimate(burst, e.cache, psd.Config{
		SampleRate:      meta.SampleRate,
		CenterFrequency: meta.CenterFrequency,
		MinFFTPower:     e.cfg.MinFFTPower,
		MaxFFTPower:     e.cfg.MaxFFTPower,
		MinSegments:     e.cfg.MinSegments,
	})
	if err != nil {
		return nil, fmt.Errorf("cfest: %w", err)
	}

	if spectrum.Undersized {
		e.logger.Warn("burst shorter than recommended analysis window", logging.Fields{
			"burst_size": len(burst),
			"minimum":    (1 << e.cfg.MinFFTPower) * e.cfg.MinSegments,
		})
	}

	if spectrum.Clamped {
		e.logger.Debug("coercing FFT power to configured maximum", logging.Fields{
			"max_power": e.cfg.MaxFFTPower,
		})
	}

	e.logger.Debug("analysis plan", logging.Fields{
		"segments":   spectrum.Segments,
		"fftsize":    spectrum.FFTSize,
		"burst_size": len(burst),
	})

	energy := spectral.Energy(spectrum.Bins)

	shift := 0.0

	switch method {
	case MethodEnergyWeighted:
		if energy > 0 {
			centroid := spectral.Centroid(spectrum.Bins, spectrum.Freqs)
			shift = (centroid - meta.CenterFrequency) / meta.SampleRate
		}
	case MethodHalfPower:
		if energy > 0 {
			idx := spectral.HalfPowerIndex(spectrum.Bins)
			shift = float64(idx)/float64(spectrum.FFTSize) - 0.5
		}
	case MethodCoerceOnly:
		// No primary estimate.
	}

	shift += coerceShift(meta.CenterFrequency+shift*meta.SampleRate, meta.SampleRate, channelFreqs)

	correctedCF := meta.CenterFrequency + shift*meta.SampleRate
	bandwidth := spectral.RMSBandwidth(spectrum.Bins, spectrum.Freqs, correctedCF)

	powerDB := math.NaN()
	snrDB := math.NaN()

	if meta.HasNoiseDensity() {
		band := spectral.BandPower(spectrum.Bins, spectrum.Freqs,
			correctedCF-bandwidth/2, correctedCF+bandwidth/2)
		powerDB = core.LinearPowerToDB(band / spectrum.Mag2Gain)
		snrDB = powerDB - (meta.NoiseDensity + 10*math.Log10(bandwidth))
	}

	corrected := make([]complex128, len(burst))
	e.rot.SetPhaseIncrement(cmplx.Exp(complex(0, -2*math.Pi*shift)))
	e.rot.SetPhase(1)
	e.rot.Rotate(corrected, burst)

	outMeta := meta
	outMeta.CenterFrequency = correctedCF

	if meta.RelativeFrequency != 0 {
		outMeta.RelativeFrequency += shift * meta.SampleRate
	}

	return &Result{
		Samples:   corrected,
		Metadata:  outMeta,
		Shift:     shift,
		Bandwidth: bandwidth,
		PowerDB:   powerDB,
		SNRDB:     snrDB,
		FFTSize:   spectrum.FFTSize,
		Segments:  spectrum.Segments,
		DebugPSD:  debugPSD(spectrum, meta),
	}, nil
}

// coerceShift returns the additional fractional shift that snaps estimate
// to the nearest channel frequency. The first list entry wins ties; an
// empty list contributes nothing.
func coerceShift(estimate, sampleRate float64, channelFreqs []float64) float64 {
	if len(channelFreqs) == 0 {
		return 0
	}

	closest := channelFreqs[0]
	dist := math.Abs(closest - estimate)

	for _, f := range channelFreqs[1:] {
		if d := math.Abs(f - estimate); d < dist {
			dist = d
			closest = f
		}
	}

	return (closest - estimate) / sampleRate
}

// debugPSD renders the averaged PSD in dB, gain-corrected, with the
// estimated noise floor on the imaginary lane.
func debugPSD(spectrum *psd.Spectrum, meta Metadata) []complex128 {
	noiseFloor := meta.NoiseDensity + 10*math.Log10(meta.SampleRate/float64(spectrum.FFTSize))

	out := make([]complex128, spectrum.FFTSize)
	for i, v := range spectrum.Bins {
		out[i] = complex(core.LinearPowerToDB(v/spectrum.Mag2Gain), noiseFloor)
	}

	return out
}
