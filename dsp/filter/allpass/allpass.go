// Package allpass provides the delay-line allpass diffuser used throughout
// the reverb network, with optional LFO modulation of the read position.
package allpass

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-reverbz/dsp/arena"
	"github.com/cwbudde/algo-reverbz/dsp/core"
	"github.com/cwbudde/algo-reverbz/dsp/delay"
	"github.com/cwbudde/algo-reverbz/dsp/lfo"
)

// MaxCoefficient is the largest accepted feedback coefficient.
var MaxCoefficient = math.Nextafter(1, 0)

// Filter is a Schroeder allpass section:
//
//	v[n] = x[n] - a*v[n-D]
//	y[n] = a*v[n] + v[n-D]
type Filter struct {
	line  *delay.Line
	coeff float64
	mod   *lfo.Oscillator
}

// New carves a filter with the given buffer capacity from a and sets its
// delay length and coefficient.
func New(a *arena.Arena, capacity, delaySamples int, coeff float64) (*Filter, error) {
	if delaySamples < 0 || delaySamples >= capacity {
		return nil, fmt.Errorf("allpass delay must be in [0,%d): %d", capacity, delaySamples)
	}

	line, err := delay.New(a, capacity)
	if err != nil {
		return nil, err
	}

	line.SetDelaySamples(delaySamples)

	f := &Filter{line: line}
	f.SetFeedback(coeff)

	return f, nil
}

// SetFeedback sets the feedback/feedforward coefficient, clamped to
// [0, MaxCoefficient].
func (f *Filter) SetFeedback(coeff float64) {
	f.coeff = core.Sanitize(coeff, 0, MaxCoefficient)
}

// Feedback returns the coefficient.
func (f *Filter) Feedback() float64 { return f.coeff }

// SetDelaySamples sets the delay length, clamped to the buffer capacity.
func (f *Filter) SetDelaySamples(n int) { f.line.SetDelaySamples(n) }

// DelaySamples returns the delay length.
func (f *Filter) DelaySamples() int { return f.line.DelaySamples() }

// Capacity returns the buffer capacity in samples.
func (f *Filter) Capacity() int { return f.line.Capacity() }

// SetModulator attaches an oscillator that displaces the read position on
// every sample. Passing nil detaches it.
func (f *Filter) SetModulator(o *lfo.Oscillator) { f.mod = o }

// Modulator returns the attached oscillator, if any.
func (f *Filter) Modulator() *lfo.Oscillator { return f.mod }

// ProcessSample filters one sample.
func (f *Filter) ProcessSample(x float64) float64 {
	var d float64
	if f.mod != nil {
		d = f.line.TapOffset(f.mod.NextOffset())
	} else {
		d = f.line.Tap()
	}

	v := x - d*f.coeff
	y := v*f.coeff + d
	f.line.Push(v)

	return core.FlushDenormals(y)
}

// ProcessInPlace filters buf in place.
func (f *Filter) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = f.ProcessSample(buf[i])
	}
}

// Reset clears the delay buffer and rewinds the modulator.
func (f *Filter) Reset() {
	f.line.Reset()
	if f.mod != nil {
		f.mod.Reset()
	}
}
