// Package smooth provides the one-pole dezipper used to glide control
// values toward their targets one sample at a time.
package smooth

import (
	"math"

	"github.com/cwbudde/algo-reverbz/dsp/core"
)

// MaxFactor is the largest accepted smoothing factor.
var MaxFactor = math.Nextafter(1, 0)

// Dezipper is a one-pole lowpass on a control signal:
//
//	y = (1-factor)*x + factor*y[n-1]
//
// A factor of 0 passes the target straight through.
type Dezipper struct {
	factor float64
	last   float64
}

// NewDezipper returns a dezipper with the smoothing factor clamped to
// [0, MaxFactor]. NaN maps to 0.
func NewDezipper(factor float64) *Dezipper {
	return &Dezipper{factor: core.Sanitize(factor, 0, MaxFactor)}
}

// Factor returns the smoothing factor.
func (d *Dezipper) Factor() float64 { return d.factor }

// Value returns the last smoothed output.
func (d *Dezipper) Value() float64 { return d.last }

// Smooth advances one sample toward target and returns the smoothed value.
func (d *Dezipper) Smooth(target float64) float64 {
	y := core.FlushDenormals((1-d.factor)*target + d.factor*d.last)
	d.last = y

	return y
}

// Reset snaps the memory to v.
func (d *Dezipper) Reset(v float64) {
	d.last = v
}

// SamplesToSettle returns the number of samples after which a unit step has
// settled to within tolerance of its target.
func (d *Dezipper) SamplesToSettle(tolerance float64) int {
	if d.factor == 0 || tolerance >= 1 {
		return 0
	}

	if tolerance <= 0 {
		return math.MaxInt
	}

	return int(math.Ceil(math.Log(tolerance) / math.Log(d.factor)))
}
