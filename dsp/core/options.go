package core

// SamplingConfig describes a uniformly sampled time series.
type SamplingConfig struct {
	// TR is the repetition time (sampling interval) in seconds.
	TR float64
}

// SamplingOption mutates a SamplingConfig.
type SamplingOption func(*SamplingConfig)

// DefaultSamplingConfig returns the defaults used by the generators and
// kernel builders: a 2 s repetition time, typical for BOLD acquisitions.
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		TR: 2,
	}
}

// WithTR sets the repetition time in seconds. Non-positive values are ignored.
func WithTR(tr float64) SamplingOption {
	return func(cfg *SamplingConfig) {
		if tr > 0 {
			cfg.TR = tr
		}
	}
}

// ApplySamplingOptions applies zero or more options to the default config.
func ApplySamplingOptions(opts ...SamplingOption) SamplingConfig {
	cfg := DefaultSamplingConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// SampleRate returns 1/TR in Hz, or 0 when TR is not positive.
func (c SamplingConfig) SampleRate() float64 {
	if c.TR <= 0 {
		return 0
	}
	return 1 / c.TR
}

// Nyquist returns half the sample rate in Hz.
func (c SamplingConfig) Nyquist() float64 {
	return c.SampleRate() / 2
}
