// Package saturate implements the drive-dependent soft clippers used inside
// the reverb tank.
package saturate

import (
	"fmt"
	"math"
)

// Curve selects a transfer function.
type Curve int

const (
	// Arctangent: atan(x*d) normalized by atan(d).
	Arctangent Curve = iota
	// HyperbolicTangent: tanh(x*d) normalized by tanh(d).
	HyperbolicTangent
)

// String returns the curve name.
func (c Curve) String() string {
	switch c {
	case Arctangent:
		return "atan"
	case HyperbolicTangent:
		return "tanh"
	default:
		return fmt.Sprintf("Curve(%d)", int(c))
	}
}

// minLinearDrive is the drive below which both curves are treated as the
// identity. atan(x*d)/atan(d) and tanh(x*d)/tanh(d) both tend to x as d -> 0.
const minLinearDrive = 1e-9

// Saturator holds one drive setting shared by both curves. For drive d below
// unity the curves are normalized by f(d), which keeps unit input at unit
// output. From unity upward an extra linear term in the denominator
// ((0.9+0.1d) for atan, (0.7+0.3d) for tanh) pulls the level down as the drive
// grows.
type Saturator struct {
	driveDB  float64
	drive    float64
	atanNorm float64
	tanhNorm float64
	identity bool
}

// New returns a saturator with the given drive in dB.
func New(driveDB float64) *Saturator {
	s := &Saturator{}
	s.SetDrive(driveDB)

	return s
}

// SetDrive sets the drive in dB and precomputes both normalizers. NaN is
// treated as 0 dB.
func (s *Saturator) SetDrive(driveDB float64) {
	if math.IsNaN(driveDB) {
		driveDB = 0
	}

	if driveDB == s.driveDB && s.drive != 0 {
		return
	}

	s.driveDB = driveDB
	s.drive = dbToLinear(driveDB)
	s.identity = s.drive < minLinearDrive || math.IsInf(s.drive, 1)

	if s.identity {
		s.atanNorm, s.tanhNorm = 1, 1
		return
	}

	d := s.drive
	if d < 1 {
		s.atanNorm = 1 / math.Atan(d)
		s.tanhNorm = 1 / math.Tanh(d)

		return
	}

	s.atanNorm = 1 / ((0.9 + 0.1*d) * math.Atan(d))
	s.tanhNorm = 1 / ((0.7 + 0.3*d) * math.Tanh(d))
}

// Drive returns the drive in dB.
func (s *Saturator) Drive() float64 { return s.driveDB }

// LinearDrive returns 10^(drive/20).
func (s *Saturator) LinearDrive() float64 { return s.drive }

// Atan applies the arctangent curve.
func (s *Saturator) Atan(x float64) float64 {
	if s.identity {
		return x
	}

	return math.Atan(x*s.drive) * s.atanNorm
}

// Tanh applies the hyperbolic-tangent curve.
func (s *Saturator) Tanh(x float64) float64 {
	if s.identity {
		return x
	}

	return math.Tanh(x*s.drive) * s.tanhNorm
}

// Process applies the selected curve. Unknown curves pass x through.
func (s *Saturator) Process(c Curve, x float64) float64 {
	switch c {
	case Arctangent:
		return s.Atan(x)
	case HyperbolicTangent:
		return s.Tanh(x)
	default:
		return x
	}
}
