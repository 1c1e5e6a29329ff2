package params

import "github.com/cwbudde/algo-reverbz/dsp/core"

// SecondaryDiffusion returns the coefficient of the second input diffuser
// pair: 0.625 + (d-0.5)/6.
func SecondaryDiffusion(d float64) float64 {
	return 0.625 + (d-0.5)/6
}

// TankDiffusion returns the coefficient of the decay-side tank allpasses:
// decay+0.15 limited to [0.15, 0.5].
func TankDiffusion(decay float64) float64 {
	return core.Sanitize(decay+0.15, 0.15, 0.5)
}

// MixFraction converts a mix percentage to the wet fraction in [0,1].
func MixFraction(pct float64) float64 {
	return core.Sanitize(pct, 0, MaxMixPercent) / 100
}
