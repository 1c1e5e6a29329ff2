package delay

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-reverbz/dsp/arena"
	"github.com/cwbudde/algo-reverbz/dsp/core"
)

// ErrCapacity is returned when a line is requested with a non-positive
// capacity.
var ErrCapacity = errors.New("delay: capacity must be > 0")

// Line is a circular delay line over an arena-carved buffer.
//
// The read cursor trails the write cursor by the current delay length and
// both wrap modulo the capacity.
type Line struct {
	buffer   []float64
	writePos int
	delay    int
}

// New carves a line of the given capacity from a.
func New(a *arena.Arena, capacity int) (*Line, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrCapacity, capacity)
	}

	buf, err := a.Carve(capacity)
	if err != nil {
		return nil, fmt.Errorf("delay: carve %d samples: %w", capacity, err)
	}

	return &Line{buffer: buf}, nil
}

// Capacity returns the fixed buffer length in samples.
func (d *Line) Capacity() int {
	return len(d.buffer)
}

// DelaySamples returns the current delay length.
func (d *Line) DelaySamples() int {
	return d.delay
}

// SetDelaySamples sets the delay length, clamped to [0, Capacity()-1].
func (d *Line) SetDelaySamples(n int) {
	if n < 0 {
		n = 0
	}

	if n > len(d.buffer)-1 {
		n = len(d.buffer) - 1
	}

	d.delay = n
}

// ProcessSample returns the sample written DelaySamples() calls ago and
// stores x. With a zero delay the input is returned unchanged.
func (d *Line) ProcessSample(x float64) float64 {
	y := d.Tap()
	d.Push(x)

	if d.delay == 0 {
		return x
	}

	return y
}

// Tap returns the sample at the read cursor without advancing.
func (d *Line) Tap() float64 {
	return d.buffer[d.wrap(d.writePos-d.delay)]
}

// TapOffset returns the sample at the read cursor displaced by offset
// samples, wrapped into the buffer.
func (d *Line) TapOffset(offset int) float64 {
	return d.buffer[d.wrap(d.writePos-d.delay+offset)]
}

// Push writes x at the write cursor and advances it.
func (d *Line) Push(x float64) {
	d.buffer[d.writePos] = x

	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Reset zero-fills the buffer and rewinds the cursors. The delay length is
// kept.
func (d *Line) Reset() {
	core.Zero(d.buffer)
	d.writePos = 0
}

func (d *Line) wrap(i int) int {
	n := len(d.buffer)

	i %= n
	if i < 0 {
		i += n
	}

	return i
}
