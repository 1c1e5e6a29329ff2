package params

import (
	"fmt"

	"github.com/cwbudde/algo-reverbz/dsp/core"
)

// Engine limits. Values outside are clamped, never rejected.
const (
	MaxDiffusion  = 0.999
	MaxDecay      = 0.85
	MaxDriveDB    = 60.0
	MaxMixPercent = 100.0

	// The tank lowpass never closes fully; below MinHFDampingHz the tank
	// feedback is lost.
	MinHFDampingHz = 400.0
	MaxHFDampingHz = 21999.0
)

// Controls holds the ten control values in physical units.
type Controls struct {
	PredelayMs      float64
	InputLowpassHz  float64
	InputHighpassHz float64
	Diffusion       float64
	Decay           float64
	DriveDB         float64
	HFDampingHz     float64
	LFDampingHz     float64
	MixPercent      float64
	Smoothed        bool
}

// DefaultControls returns the front-end defaults: no predelay, input filters
// wide open, diffusion 0.75, decay 0.5, 0.1 dB drive, 5 kHz HF damping, no LF
// damping, fully wet, smoothed mode off.
func DefaultControls() Controls {
	return Controls{
		PredelayMs:      0,
		InputLowpassHz:  22000,
		InputHighpassHz: 10,
		Diffusion:       0.75,
		Decay:           0.5,
		DriveDB:         0.1,
		HFDampingHz:     5000,
		LFDampingHz:     0,
		MixPercent:      100,
		Smoothed:        false,
	}
}

// Clamped returns c with every value limited to what the engine accepts.
// NaN maps to the lower bound. Predelay and the input and LF cutoffs are
// only bounded below here; their upper limits depend on the sample rate and
// buffer capacity.
func (c Controls) Clamped() Controls {
	return Controls{
		PredelayMs:      nonNegative(c.PredelayMs),
		InputLowpassHz:  nonNegative(c.InputLowpassHz),
		InputHighpassHz: nonNegative(c.InputHighpassHz),
		Diffusion:       core.Sanitize(c.Diffusion, 0, MaxDiffusion),
		Decay:           core.Sanitize(c.Decay, 0, MaxDecay),
		DriveDB:         core.Sanitize(c.DriveDB, 0, MaxDriveDB),
		HFDampingHz:     core.Sanitize(c.HFDampingHz, MinHFDampingHz, MaxHFDampingHz),
		LFDampingHz:     nonNegative(c.LFDampingHz),
		MixPercent:      core.Sanitize(c.MixPercent, 0, MaxMixPercent),
		Smoothed:        c.Smoothed,
	}
}

func nonNegative(v float64) float64 {
	if !(v > 0) {
		return 0
	}

	return v
}

// ControlID indexes a Normalized vector.
type ControlID int

const (
	Predelay ControlID = iota
	InputLowpass
	InputHighpass
	Diffusion
	Decay
	Drive
	HFDamping
	LFDamping
	Mix
	Smoothed

	NumControls
)

var controlNames = [NumControls]string{
	"predelay", "input-lowpass", "input-highpass", "diffusion", "decay",
	"drive", "hf-damping", "lf-damping", "mix", "smoothed",
}

// String returns the control name.
func (id ControlID) String() string {
	if id < 0 || id >= NumControls {
		return fmt.Sprintf("ControlID(%d)", int(id))
	}

	return controlNames[id]
}

// Normalized holds ten knob positions in [0,1], indexed by ControlID.
type Normalized [NumControls]float64

// Layout assigns a Range to every continuous control. The smoothed-mode
// switch is on when its position reaches SmoothedThreshold.
type Layout struct {
	PredelayMs        Range
	InputLowpassHz    Range
	InputHighpassHz   Range
	Diffusion         Range
	Decay             Range
	DriveDB           Range
	HFDampingHz       Range
	LFDampingHz       Range
	MixPercent        Range
	SmoothedThreshold float64
}

// DefaultLayout returns the ranges and tapers of the front ends. The HF
// damping knob is inverted so that turning it up lowers the cutoff.
func DefaultLayout() Layout {
	return Layout{
		PredelayMs:        Range{Min: 0, Max: 100, Curve: Linear},
		InputLowpassHz:    Range{Min: 500, Max: 22000, Curve: AntiLogarithmic},
		InputHighpassHz:   Range{Min: 10, Max: 3000, Curve: AntiLogarithmic},
		Diffusion:         Range{Min: 0, Max: MaxDiffusion, Curve: Linear},
		Decay:             Range{Min: 0, Max: MaxDecay, Curve: Linear},
		DriveDB:           Range{Min: 0.1, Max: 20, Curve: Linear},
		HFDampingHz:       Range{Min: 400, Max: 20000, Curve: Logarithmic, Inverted: true},
		LFDampingHz:       Range{Min: 0, Max: 3000, Curve: AntiLogarithmic},
		MixPercent:        Range{Min: 0, Max: MaxMixPercent, Curve: Linear},
		SmoothedThreshold: 0.5,
	}
}

// Map converts knob positions to physical controls.
func (l Layout) Map(n Normalized) Controls {
	return Controls{
		PredelayMs:      l.PredelayMs.Map(n[Predelay]),
		InputLowpassHz:  l.InputLowpassHz.Map(n[InputLowpass]),
		InputHighpassHz: l.InputHighpassHz.Map(n[InputHighpass]),
		Diffusion:       l.Diffusion.Map(n[Diffusion]),
		Decay:           l.Decay.Map(n[Decay]),
		DriveDB:         l.DriveDB.Map(n[Drive]),
		HFDampingHz:     l.HFDampingHz.Map(n[HFDamping]),
		LFDampingHz:     l.LFDampingHz.Map(n[LFDamping]),
		MixPercent:      l.MixPercent.Map(n[Mix]),
		Smoothed:        n[Smoothed] >= l.SmoothedThreshold,
	}
}

// Normalize converts physical controls to knob positions. Values outside a
// range land on its nearest end.
func (l Layout) Normalize(c Controls) Normalized {
	var n Normalized

	n[Predelay] = l.PredelayMs.Normalize(c.PredelayMs)
	n[InputLowpass] = l.InputLowpassHz.Normalize(c.InputLowpassHz)
	n[InputHighpass] = l.InputHighpassHz.Normalize(c.InputHighpassHz)
	n[Diffusion] = l.Diffusion.Normalize(c.Diffusion)
	n[Decay] = l.Decay.Normalize(c.Decay)
	n[Drive] = l.DriveDB.Normalize(c.DriveDB)
	n[HFDamping] = l.HFDampingHz.Normalize(c.HFDampingHz)
	n[LFDamping] = l.LFDampingHz.Normalize(c.LFDampingHz)
	n[Mix] = l.MixPercent.Normalize(c.MixPercent)

	if c.Smoothed {
		n[Smoothed] = 1
	}

	return n
}
