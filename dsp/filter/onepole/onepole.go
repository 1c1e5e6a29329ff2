// Package onepole provides single-coefficient lowpass and highpass stages
// parameterized by a normalized angular cutoff.
package onepole

import (
	"fmt"

	"github.com/cwbudde/algo-reverbz/dsp/core"
)

// Kind selects the response of a Filter.
type Kind int

const (
	Lowpass Kind = iota
	Highpass
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Lowpass:
		return "lowpass"
	case Highpass:
		return "highpass"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Filter is a one-pole IIR stage with pole beta = exp(-wc).
//
// Lowpass:  y = (1-beta)*x + beta*y[n-1]
//
// Highpass: m = x + beta*m[n-1]; y = m - m[n-1]
//
// The highpass output is computed as beta*(m - m[n-1]), flushed, and then
// divided by beta so the passband gain stays near 0 dB. At a zero cutoff
// (beta = 1) the highpass passes its input and keeps no state, since m would
// integrate any DC offset without bound.
type Filter struct {
	kind  Kind
	wc    float64
	beta  float64
	state float64
}

// New returns a filter of the given kind with cutoff wc in radians per
// sample.
func New(kind Kind, wc float64) (*Filter, error) {
	if kind != Lowpass && kind != Highpass {
		return nil, fmt.Errorf("onepole kind is invalid: %d", kind)
	}

	f := &Filter{kind: kind, wc: -1}
	f.SetNormalizedCutoff(wc)

	return f, nil
}

// Kind returns the filter response type.
func (f *Filter) Kind() Kind { return f.kind }

// SetNormalizedCutoff sets the cutoff in radians per sample, clamped to
// [0, pi).
func (f *Filter) SetNormalizedCutoff(wc float64) {
	wc = core.Sanitize(wc, 0, core.MaxNormalizedCutoff)
	if wc == f.wc {
		return
	}

	f.wc = wc
	f.beta = mathExp(-wc)
}

// NormalizedCutoff returns the cutoff in radians per sample.
func (f *Filter) NormalizedCutoff() float64 { return f.wc }

// Coefficient returns the pole beta.
func (f *Filter) Coefficient() float64 { return f.beta }

// ProcessSample filters one sample.
func (f *Filter) ProcessSample(x float64) float64 {
	if f.kind == Lowpass {
		y := core.FlushDenormals((1-f.beta)*x + f.beta*f.state)
		f.state = y

		return y
	}

	if f.wc == 0 {
		f.state = 0
		return core.FlushDenormals(x)
	}

	mid := x + f.beta*f.state
	y := core.FlushDenormals(f.beta * (mid - f.state))
	f.state = mid

	return y / f.beta
}

// ProcessInPlace filters buf in place.
func (f *Filter) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = f.ProcessSample(buf[i])
	}
}

// Reset clears the filter memory.
func (f *Filter) Reset() {
	f.state = 0
}
