// Package lfo provides a table-driven sine oscillator used to modulate delay
// read positions.
package lfo

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-reverbz/dsp/arena"
)

// Oscillator steps through one precomputed sine period, one entry per
// sample. Its output is scaled by a depth expressed in samples.
type Oscillator struct {
	table []float64
	index int
	depth float64
	rate  float64
}

// TableLen returns the number of samples in one period of a sine at freqHz
// when sampled at sampleRate.
func TableLen(sampleRate, freqHz float64) int {
	return int(math.Round(sampleRate / freqHz))
}

// New carves a one-period sine table from a and returns an oscillator with
// zero depth.
func New(a *arena.Arena, sampleRate, freqHz float64) (*Oscillator, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("lfo sample rate must be > 0: %f", sampleRate)
	}

	if freqHz <= 0 || math.IsNaN(freqHz) || math.IsInf(freqHz, 0) {
		return nil, fmt.Errorf("lfo frequency must be > 0: %f", freqHz)
	}

	n := TableLen(sampleRate, freqHz)
	if n < 1 {
		return nil, fmt.Errorf("lfo frequency %f Hz exceeds sample rate %f", freqHz, sampleRate)
	}

	table, err := a.Carve(n)
	if err != nil {
		return nil, fmt.Errorf("lfo: carve %d samples: %w", n, err)
	}

	for i := range table {
		table[i] = math.Sin(2 * math.Pi * float64(i) / float64(n))
	}

	return &Oscillator{table: table, rate: freqHz}, nil
}

// SetDepth sets the modulation depth in samples. Negative or NaN depths
// disable modulation.
func (o *Oscillator) SetDepth(samples float64) {
	if !(samples > 0) || math.IsInf(samples, 0) {
		samples = 0
	}

	o.depth = samples
}

// Depth returns the modulation depth in samples.
func (o *Oscillator) Depth() float64 { return o.depth }

// Rate returns the oscillator frequency in Hz.
func (o *Oscillator) Rate() float64 { return o.rate }

// Len returns the table length in samples.
func (o *Oscillator) Len() int { return len(o.table) }

// Phase returns the current table index.
func (o *Oscillator) Phase() int { return o.index }

// Next returns depth*sin at the current phase and advances by one sample.
func (o *Oscillator) Next() float64 {
	v := o.depth * o.table[o.index]

	o.index++
	if o.index >= len(o.table) {
		o.index = 0
	}

	return v
}

// NextOffset returns Next rounded to whole samples.
func (o *Oscillator) NextOffset() int {
	return int(math.Round(o.Next()))
}

// Reset rewinds the phase to the start of the period.
func (o *Oscillator) Reset() { o.index = 0 }
