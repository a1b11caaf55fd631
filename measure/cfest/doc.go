// Package cfest estimates and corrects the carrier-frequency offset of a
// finite burst of complex baseband samples.
//
// A windowed, multi-segment PSD of the burst drives one of three selectable
// center-frequency estimators (energy-weighted mean, half-power point, or
// none), optionally followed by coercion to the nearest entry of a known
// channel list. The burst is then phase-rotated by the combined estimated
// shift. The PSD also yields the burst's RMS occupied bandwidth and, when a
// noise-density figure is supplied, its in-band power and SNR.
//
// # Usage
//
//	est, err := cfest.New(
//		cfest.WithMethod(cfest.MethodEnergyWeighted),
//		cfest.WithChannelFreqs([]float64{905e6, 915e6, 925e6}),
//	)
//	res, err := est.Process(burst, cfest.Metadata{
//		CenterFrequency: 915e6,
//		SampleRate:      1e6,
//		NoiseDensity:    -120,
//	})
//
// res.Samples holds the corrected burst, res.Metadata the refined center
// frequency, and res.Bandwidth/PowerDB/SNRDB the derived figures.
//
// An Estimator processes one burst at a time; concurrent Process calls must
// be serialized by the caller. SetMethod and SetChannelFreqs may be called
// from other goroutines at any time.
//
// Each invocation is a bounded, deterministic computation: O(n) for copying
// and windowing plus O(segments * fftsize * log(fftsize)) for transforms,
// with the transform size capped at 2^MaxFFTPower. FFT plans and windows are
// cached per instance at construction; no other state survives a burst.
package cfest
