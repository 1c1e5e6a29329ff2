package params

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-reverbz/dsp/core"
)

// Curve is a taper applied to a normalized knob position.
type Curve int

const (
	// Linear maps x to x.
	Linear Curve = iota
	// Logarithmic rises fast at the start: log10(1+9x).
	Logarithmic
	// AntiLogarithmic rises slowly at the start: (10^x-1)/9.
	AntiLogarithmic
)

// String returns the curve name.
func (c Curve) String() string {
	switch c {
	case Linear:
		return "linear"
	case Logarithmic:
		return "log"
	case AntiLogarithmic:
		return "antilog"
	default:
		return fmt.Sprintf("Curve(%d)", int(c))
	}
}

// Apply shapes x in [0,1]. Both endpoints are fixed points of every curve.
func (c Curve) Apply(x float64) float64 {
	x = core.Sanitize(x, 0, 1)
	if x == 0 || x == 1 {
		return x
	}

	switch c {
	case Logarithmic:
		return math.Log10(1 + 9*x)
	case AntiLogarithmic:
		return (math.Pow(10, x) - 1) / 9
	default:
		return x
	}
}

// Invert is the inverse of Apply on [0,1].
func (c Curve) Invert(y float64) float64 {
	y = core.Sanitize(y, 0, 1)
	if y == 0 || y == 1 {
		return y
	}

	switch c {
	case Logarithmic:
		return (math.Pow(10, y) - 1) / 9
	case AntiLogarithmic:
		return math.Log10(1 + 9*y)
	default:
		return y
	}
}

// Range maps a normalized position onto [Min, Max] through Curve. When
// Inverted is set the knob runs from Max down to Min.
type Range struct {
	Min      float64
	Max      float64
	Curve    Curve
	Inverted bool
}

// Map returns the physical value for norm. norm is clamped to [0,1] and NaN
// maps to 0.
func (r Range) Map(norm float64) float64 {
	x := core.Sanitize(norm, 0, 1)
	if r.Inverted {
		x = 1 - x
	}

	return r.Min + (r.Max-r.Min)*r.Curve.Apply(x)
}

// Normalize returns the knob position that maps to value. value is clamped to
// the range first.
func (r Range) Normalize(value float64) float64 {
	if r.Max == r.Min {
		return 0
	}

	lo, hi := math.Min(r.Min, r.Max), math.Max(r.Min, r.Max)
	v := core.Sanitize(value, lo, hi)

	x := r.Curve.Invert((v - r.Min) / (r.Max - r.Min))
	if r.Inverted {
		x = 1 - x
	}

	return x
}

// Clamp limits value to the range. NaN maps to the lower bound.
func (r Range) Clamp(value float64) float64 {
	lo, hi := math.Min(r.Min, r.Max), math.Max(r.Min, r.Max)
	return core.Sanitize(value, lo, hi)
}
