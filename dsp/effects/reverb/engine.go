package reverb

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-reverbz/dsp/arena"
	"github.com/cwbudde/algo-reverbz/dsp/core"
	"github.com/cwbudde/algo-reverbz/dsp/delay"
	"github.com/cwbudde/algo-reverbz/dsp/filter/allpass"
	"github.com/cwbudde/algo-reverbz/dsp/filter/onepole"
	"github.com/cwbudde/algo-reverbz/dsp/lfo"
	"github.com/cwbudde/algo-reverbz/dsp/params"
	"github.com/cwbudde/algo-reverbz/dsp/saturate"
	"github.com/cwbudde/algo-reverbz/dsp/smooth"
)

const (
	modulatedCoefficient = 0.70
	plainWetGain         = 0.7
	smoothedWetGain      = 0.6
)

// ErrNilArena is returned by Initialize when no arena is given.
var ErrNilArena = errors.New("reverb: nil arena")

// Engine is an initialized plate reverb. It is created by Plan.Initialize
// or New and is the only type that processes audio.
//
// Processing methods and Reset must be called from one goroutine. The
// control setters may run concurrently on another goroutine; their values
// are picked up on the next processed sample.
type Engine struct {
	plan *Plan

	predelay      *delay.Line
	inputLowpass  *onepole.Filter
	inputHighpass *onepole.Filter
	diffusers     [numInputDiffusers]*allpass.Filter

	modulated     [2]*allpass.Filter
	lfos          [2]*lfo.Oscillator
	tankDelays    [numTankDelays]*delay.Line
	saturator     *saturate.Saturator
	tankLowpass   [2]*onepole.Filter
	tankHighpass  [2]*onepole.Filter
	tankAllpasses [numTankAllpasses]*allpass.Filter

	acc1, acc2   float64
	wetL, wetR   float64
	smoothedMode bool

	controls  controlState
	dezippers [numCoefficients]*smooth.Dezipper
	coef      [numCoefficients]float64

	scratchWetL []float64
	scratchWetR []float64
	scratchDry  []float64
	scratchMix  []float64
}

// New plans an engine for sampleRate, reserves a right-sized arena and
// initializes the engine with c.
func New(sampleRate float64, c params.Controls, opts ...Option) (*Engine, error) {
	p, err := NewPlan(sampleRate, opts...)
	if err != nil {
		return nil, err
	}

	a, err := arena.New(p.RequiredBytes())
	if err != nil {
		return nil, fmt.Errorf("reverb: reserve arena: %w", err)
	}

	return p.Initialize(a, c)
}

// Initialize carves every buffer of the plan from a, applies c with the
// smoothers snapped to their targets and seals a. The arena must hold at
// least RequiredBytes.
func (p *Plan) Initialize(a *arena.Arena, c params.Controls) (*Engine, error) {
	if a == nil {
		return nil, ErrNilArena
	}

	if a.Sealed() {
		return nil, fmt.Errorf("reverb: initialize: %w", arena.ErrSealed)
	}

	if need := p.RequiredBytes(); a.Remaining() < need {
		return nil, fmt.Errorf("reverb: initialize: %w: need %d bytes, %d remaining",
			arena.ErrExhausted, need, a.Remaining())
	}

	e := &Engine{plan: p}
	if err := e.carve(a); err != nil {
		return nil, fmt.Errorf("reverb: initialize: %w", err)
	}

	for i := range e.dezippers {
		e.dezippers[i] = smooth.NewDezipper(smoothingFactors[i])
	}

	e.SetControls(c)
	e.snapControls()
	a.Seal()

	return e, nil
}

func (e *Engine) carve(a *arena.Arena) error {
	p := e.plan
	capacity := p.capacity

	var err error

	if e.predelay, err = delay.New(a, capacity); err != nil {
		return err
	}

	if e.inputLowpass, err = onepole.New(onepole.Lowpass, core.MaxNormalizedCutoff); err != nil {
		return err
	}

	if e.inputHighpass, err = onepole.New(onepole.Highpass, 0); err != nil {
		return err
	}

	for i, n := range p.taps.InputDiffusers {
		if e.diffusers[i], err = allpass.New(a, capacity, n, 0); err != nil {
			return err
		}
	}

	for i, n := range p.taps.Modulated {
		if e.modulated[i], err = allpass.New(a, capacity, n, modulatedCoefficient); err != nil {
			return err
		}

		if e.lfos[i], err = lfo.New(a, p.sampleRate, modulationRates[i]); err != nil {
			return err
		}

		e.modulated[i].SetModulator(e.lfos[i])
	}

	for i, n := range p.taps.TankDelays {
		if e.tankDelays[i], err = delay.New(a, capacity); err != nil {
			return err
		}

		e.tankDelays[i].SetDelaySamples(n)
	}

	for i := range 2 {
		if e.tankLowpass[i], err = onepole.New(onepole.Lowpass, core.MaxNormalizedCutoff); err != nil {
			return err
		}

		if e.tankHighpass[i], err = onepole.New(onepole.Highpass, 0); err != nil {
			return err
		}
	}

	for i, n := range p.taps.TankAllpasses {
		if e.tankAllpasses[i], err = allpass.New(a, capacity, n, 0); err != nil {
			return err
		}
	}

	e.saturator = saturate.New(0)

	for _, s := range []*[]float64{&e.scratchWetL, &e.scratchWetR, &e.scratchDry, &e.scratchMix} {
		if *s, err = a.Carve(p.cfg.maxBlockSize); err != nil {
			return err
		}
	}

	return nil
}

// Plan returns the plan the engine was initialized from.
func (e *Engine) Plan() *Plan { return e.plan }

// SampleRate returns the sample rate in Hz.
func (e *Engine) SampleRate() float64 { return e.plan.sampleRate }

// Smoothed reports whether the smoothed tank topology is active.
func (e *Engine) Smoothed() bool { return e.smoothedMode }

// LastWet returns the fully wet left and right output of the last processed
// sample.
func (e *Engine) LastWet() (left, right float64) { return e.wetL, e.wetR }

// ProcessMono processes one mono sample. The wet signal is the mean of the
// two tank outputs.
func (e *Engine) ProcessMono(x float64) float64 {
	e.tick(x)

	return blend(x, (e.wetL+e.wetR)/2, e.coef[coefMix])
}

// ProcessStereo processes one stereo sample. The tank is fed with the
// half-sum of both inputs and each output blends its own dry input.
func (e *Engine) ProcessStereo(left, right float64) (float64, float64) {
	e.tick((left + right) / 2)
	mix := e.coef[coefMix]

	return blend(left, e.wetL, mix), blend(right, e.wetR, mix)
}

// blend returns dry*(1-mix) + wet*mix without fused multiply-add so that
// the block path produces identical results.
func blend(dry, wet, mix float64) float64 {
	return float64(dry*(1-mix)) + float64(wet*mix)
}

// tick advances the controls and the network by one sample and leaves the
// wet outputs in e.wetL and e.wetR.
func (e *Engine) tick(x float64) {
	e.advanceControls()
	decay := e.coef[coefDecay]

	in := e.predelay.ProcessSample(x)
	in = e.inputLowpass.ProcessSample(in)
	in = e.inputHighpass.ProcessSample(in)

	for _, ap := range e.diffusers {
		in = ap.ProcessSample(in)
	}

	// cross-feedback: each branch is seeded by the other one
	tank1 := in + e.acc2
	tank2 := in + e.acc1

	d1 := e.tankDelays[0].ProcessSample(e.modulated[0].ProcessSample(tank1))
	d3 := e.tankDelays[2].ProcessSample(e.modulated[1].ProcessSample(tank2))

	b1 := e.tankLowpass[0].ProcessSample(e.saturator.Atan(d1))
	b1 = e.tankHighpass[0].ProcessSample(b1)
	b2 := e.tankLowpass[1].ProcessSample(e.saturator.Tanh(d3))
	b2 = e.tankHighpass[1].ProcessSample(b2)

	ap5 := e.tankAllpasses[0].ProcessSample(b1) * decay
	ap6 := e.tankAllpasses[1].ProcessSample(b2) * decay

	d2 := e.tankDelays[1].ProcessSample(ap5)
	d4 := e.tankDelays[3].ProcessSample(ap6)

	if !e.smoothedMode {
		e.acc1 = core.FlushDenormals(decay * d2)
		e.acc2 = core.FlushDenormals(decay * d4)
		e.wetL = plainWetGain * (d3 - ap5 + d2)
		e.wetR = plainWetGain * (d1 - ap6 + d4)

		return
	}

	ap7 := e.tankAllpasses[2].ProcessSample(d2)
	ap8 := e.tankAllpasses[3].ProcessSample(d4)
	ap9 := e.tankAllpasses[4].ProcessSample(ap7)
	ap10 := e.tankAllpasses[5].ProcessSample(ap8)

	e.acc1 = core.FlushDenormals(decay * ap9)
	e.acc2 = core.FlushDenormals(decay * ap10)
	e.wetL = smoothedWetGain * (d3 - ap5 + d2 - ap8 + ap10)
	e.wetR = smoothedWetGain * (d1 - ap6 + d4 - ap7 + ap9)
}

// setMode switches between the plain and the smoothed tank. Allpasses 7 to
// 10 keep their contents while bypassed.
func (e *Engine) setMode(smoothed bool) {
	e.smoothedMode = smoothed

	for i, o := range e.lfos {
		if smoothed {
			o.SetDepth(e.plan.modDepth[i])
		} else {
			o.SetDepth(0)
		}
	}
}

// Reset clears every buffer, filter memory, accumulator and oscillator
// phase, and snaps the smoothers to the current control targets.
func (e *Engine) Reset() {
	e.predelay.Reset()
	e.inputLowpass.Reset()
	e.inputHighpass.Reset()

	for _, ap := range e.diffusers {
		ap.Reset()
	}

	for _, ap := range e.modulated {
		ap.Reset()
	}

	for _, d := range e.tankDelays {
		d.Reset()
	}

	for i := range 2 {
		e.tankLowpass[i].Reset()
		e.tankHighpass[i].Reset()
	}

	for _, ap := range e.tankAllpasses {
		ap.Reset()
	}

	e.acc1, e.acc2 = 0, 0
	e.wetL, e.wetR = 0, 0

	e.snapControls()
}
