package cfest

import "github.com/cwbudde/algo-burst/logging"

// Config holds estimator construction parameters.
type Config struct {
	Method       Method
	ChannelFreqs []float64

	MinFFTPower int // recommended minimum analysis exponent, diagnostic only
	MaxFFTPower int // largest cached transform exponent (size 2^MaxFFTPower)
	MinSegments int // desired transform count per burst

	Logger logging.Logger
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the standard estimator parameters.
func DefaultConfig() Config {
	return Config{
		Method:      MethodEnergyWeighted,
		MinFFTPower: 5,
		MaxFFTPower: 8,
		MinSegments: 4,
		Logger:      logging.Nop(),
	}
}

// WithMethod selects the primary estimation policy.
func WithMethod(m Method) Option {
	return func(cfg *Config) {
		if m.Valid() {
			cfg.Method = m
		}
	}
}

// WithChannelFreqs sets the list of nominal channel centers in Hz used for
// coercion. An empty list disables coercion.
func WithChannelFreqs(freqs []float64) Option {
	return func(cfg *Config) {
		cfg.ChannelFreqs = append([]float64(nil), freqs...)
	}
}

// WithFFTPowerRange sets the recommended minimum and the cached maximum FFT
// exponents.
func WithFFTPowerRange(minPower, maxPower int) Option {
	return func(cfg *Config) {
		if minPower >= 0 {
			cfg.MinFFTPower = minPower
		}

		if maxPower >= 0 {
			cfg.MaxFFTPower = maxPower
		}
	}
}

// WithMinSegments sets the desired transform count per burst.
func WithMinSegments(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.MinSegments = n
		}
	}
}

// WithLogger injects a diagnostics logger.
func WithLogger(logger logging.Logger) Option {
	return func(cfg *Config) {
		if logger != nil {
			cfg.Logger = logger
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

func normalizeConfig(cfg Config) Config {
	def := DefaultConfig()

	if !cfg.Method.Valid() {
		cfg.Method = def.Method
	}

	if cfg.MaxFFTPower < 0 {
		cfg.MaxFFTPower = def.MaxFFTPower
	}

	if cfg.MinFFTPower < 0 {
		cfg.MinFFTPower = def.MinFFTPower
	}

	if cfg.MinFFTPower > cfg.MaxFFTPower {
		cfg.MinFFTPower = cfg.MaxFFTPower
	}

	if cfg.MinSegments < 1 {
		cfg.MinSegments = def.MinSegments
	}

	if cfg.Logger == nil {
		cfg.Logger = logging.Nop()
	}

	return cfg
}
