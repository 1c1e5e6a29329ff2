package reverb

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-reverbz/dsp/params"
)

const (
	defaultMaxDelaySamples = 8192
	defaultMaxBlockSize    = 1024
	maxBlockSizeLimit      = 1 << 16
)

// Option configures a Plan.
type Option func(*config) error

type config struct {
	maxDelaySamples int
	explicitDelay   bool
	maxBlockSize    int
	smoothing       bool
	referenceRate   float64
	layout          params.Layout
}

func defaultConfig() config {
	return config{
		maxDelaySamples: defaultMaxDelaySamples,
		maxBlockSize:    defaultMaxBlockSize,
		smoothing:       true,
		referenceRate:   ReferenceSampleRate,
		layout:          params.DefaultLayout(),
	}
}

// WithMaxDelaySamples fixes the capacity of every delay line. Without this
// option the capacity is 8192 samples, grown to the next power of two when
// the sample rate needs more. An explicit capacity that cannot hold the
// longest scaled tap makes NewPlan fail with ErrCapacity.
func WithMaxDelaySamples(n int) Option {
	return func(cfg *config) error {
		if n <= 1 {
			return fmt.Errorf("reverb max delay samples must be > 1: %d", n)
		}

		cfg.maxDelaySamples = n
		cfg.explicitDelay = true

		return nil
	}
}

// WithMaxBlockSize sets the chunk length used by the block processing
// methods. Longer blocks are processed in several chunks.
func WithMaxBlockSize(n int) Option {
	return func(cfg *config) error {
		if n <= 0 || n > maxBlockSizeLimit {
			return fmt.Errorf("reverb max block size must be in [1, %d]: %d", maxBlockSizeLimit, n)
		}

		cfg.maxBlockSize = n

		return nil
	}
}

// WithParameterSmoothing enables or disables per-sample dezippering of the
// control-derived coefficients. It is on by default.
func WithParameterSmoothing(enabled bool) Option {
	return func(cfg *config) error {
		cfg.smoothing = enabled
		return nil
	}
}

// WithReferenceRate sets the sample rate at which the tap lengths are
// specified. The default is ReferenceSampleRate.
func WithReferenceRate(hz float64) Option {
	return func(cfg *config) error {
		if hz <= 0 || math.IsNaN(hz) || math.IsInf(hz, 0) {
			return fmt.Errorf("reverb reference rate must be > 0: %f", hz)
		}

		cfg.referenceRate = hz

		return nil
	}
}

// WithLayout sets the knob layout used by Engine.SetNormalized.
func WithLayout(l params.Layout) Option {
	return func(cfg *config) error {
		cfg.layout = l
		return nil
	}
}
