package reverb

import (
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-reverbz/dsp/core"
	"github.com/cwbudde/algo-reverbz/dsp/params"
)

// Control-derived coefficients, each with its own dezipper.
const (
	coefPredelay = iota
	coefInputLowpass
	coefInputHighpass
	coefDiffusion1
	coefDiffusion2
	coefDecay
	coefTankDiffusion
	coefDrive
	coefTankLowpass
	coefTankHighpass
	coefMix

	numCoefficients
)

var smoothingFactors = [numCoefficients]float64{
	coefPredelay:      0.95,
	coefInputLowpass:  0.95,
	coefInputHighpass: 0.95,
	coefDiffusion1:    0.999,
	coefDiffusion2:    0.95,
	coefDecay:         0.95,
	coefTankDiffusion: 0.95,
	coefDrive:         0.95,
	coefTankLowpass:   0.95,
	coefTankHighpass:  0.99,
	coefMix:           0.95,
}

// settleTolerance is the relative distance at which a gliding coefficient
// is snapped onto its target.
const settleTolerance = 1e-9

type atomicFloat struct {
	bits atomic.Uint64
}

func (f *atomicFloat) Load() float64 { return math.Float64frombits(f.bits.Load()) }

func (f *atomicFloat) Store(v float64) { f.bits.Store(math.Float64bits(v)) }

// controlState is written by the control setters and read by the audio
// path. Every cell is independent; a batch of updates may be observed one
// sample apart.
type controlState struct {
	targets  [numCoefficients]atomicFloat
	smoothed atomic.Bool
	applied  atomic.Pointer[params.Controls]
}

// SetControls sets all ten controls. Values are clamped to the engine
// limits; NaN maps to the lower bound. Safe to call concurrently with
// processing.
func (e *Engine) SetControls(c params.Controls) {
	c = e.clamp(c)
	fs := e.plan.sampleRate
	t := &e.controls.targets

	t[coefPredelay].Store(math.Min(math.Round(c.PredelayMs*fs/1000), float64(e.plan.capacity-1)))
	t[coefInputLowpass].Store(normalizedCutoff(c.InputLowpassHz, fs))
	t[coefInputHighpass].Store(normalizedCutoff(c.InputHighpassHz, fs))
	t[coefDiffusion1].Store(c.Diffusion)
	t[coefDiffusion2].Store(params.SecondaryDiffusion(c.Diffusion))
	t[coefDecay].Store(c.Decay)
	t[coefTankDiffusion].Store(params.TankDiffusion(c.Decay))
	t[coefDrive].Store(c.DriveDB)
	t[coefTankLowpass].Store(normalizedCutoff(c.HFDampingHz, fs))
	t[coefTankHighpass].Store(normalizedCutoff(c.LFDampingHz, fs))
	t[coefMix].Store(params.MixFraction(c.MixPercent))
	e.controls.smoothed.Store(c.Smoothed)
	e.controls.applied.Store(&c)
}

// SetControlParameters is SetControls with the controls passed one by one.
func (e *Engine) SetControlParameters(predelayMs, inputLowpassHz, inputHighpassHz,
	diffusion, decay, driveDB, hfDampingHz, lfDampingHz, mixPercent float64, smoothed bool,
) {
	e.SetControls(params.Controls{
		PredelayMs:      predelayMs,
		InputLowpassHz:  inputLowpassHz,
		InputHighpassHz: inputHighpassHz,
		Diffusion:       diffusion,
		Decay:           decay,
		DriveDB:         driveDB,
		HFDampingHz:     hfDampingHz,
		LFDampingHz:     lfDampingHz,
		MixPercent:      mixPercent,
		Smoothed:        smoothed,
	})
}

// SetNormalized maps ten knob positions through the engine's layout and
// applies the result.
func (e *Engine) SetNormalized(n params.Normalized) {
	e.SetControls(e.plan.cfg.layout.Map(n))
}

// Controls returns the last controls set, after clamping.
func (e *Engine) Controls() params.Controls {
	if c := e.controls.applied.Load(); c != nil {
		return *c
	}

	return params.Controls{}
}

// clamp applies the engine limits, including the ones that depend on the
// sample rate and line capacity.
func (e *Engine) clamp(c params.Controls) params.Controls {
	c = c.Clamped()

	maxHz := core.MaxNormalizedCutoff * e.plan.sampleRate / (2 * math.Pi)
	c.PredelayMs = math.Min(c.PredelayMs, e.plan.MaxPredelayMs())
	c.InputLowpassHz = math.Min(c.InputLowpassHz, maxHz)
	c.InputHighpassHz = math.Min(c.InputHighpassHz, maxHz)
	c.HFDampingHz = math.Min(c.HFDampingHz, maxHz)
	c.LFDampingHz = math.Min(c.LFDampingHz, maxHz)

	return c
}

func normalizedCutoff(hz, sampleRate float64) float64 {
	return core.Sanitize(core.NormalizeFrequency(hz, sampleRate), 0, core.MaxNormalizedCutoff)
}

// advanceControls moves every coefficient one sample toward its target and
// pushes the result into the network.
func (e *Engine) advanceControls() {
	for i := range e.coef {
		target := e.controls.targets[i].Load()

		if e.plan.cfg.smoothing {
			d := e.dezippers[i]

			v := d.Smooth(target)
			if math.Abs(v-target) <= settleTolerance*math.Max(1, math.Abs(target)) {
				d.Reset(target)
				v = target
			}

			target = v
		}

		e.coef[i] = target
	}

	if m := e.controls.smoothed.Load(); m != e.smoothedMode {
		e.setMode(m)
	}

	e.applyCoefficients()
}

// snapControls jumps every coefficient to its target.
func (e *Engine) snapControls() {
	for i := range e.coef {
		target := e.controls.targets[i].Load()
		e.dezippers[i].Reset(target)
		e.coef[i] = target
	}

	e.setMode(e.controls.smoothed.Load())
	e.applyCoefficients()
}

func (e *Engine) applyCoefficients() {
	c := &e.coef

	e.predelay.SetDelaySamples(core.RoundToInt(c[coefPredelay]))
	e.inputLowpass.SetNormalizedCutoff(c[coefInputLowpass])
	e.inputHighpass.SetNormalizedCutoff(c[coefInputHighpass])

	e.diffusers[0].SetFeedback(c[coefDiffusion1])
	e.diffusers[1].SetFeedback(c[coefDiffusion1])
	e.diffusers[2].SetFeedback(c[coefDiffusion2])
	e.diffusers[3].SetFeedback(c[coefDiffusion2])

	for _, ap := range e.tankAllpasses {
		ap.SetFeedback(c[coefTankDiffusion])
	}

	e.saturator.SetDrive(c[coefDrive])

	for i := range 2 {
		e.tankLowpass[i].SetNormalizedCutoff(c[coefTankLowpass])
		e.tankHighpass[i].SetNormalizedCutoff(c[coefTankHighpass])
	}
}
