package arena

import (
	"errors"
	"fmt"
)

// SampleSize is the size in bytes of one stored sample.
const SampleSize = 8

// Errors returned by arena operations.
var (
	ErrInvalidSize = errors.New("arena: size must be a positive multiple of the sample size")
	ErrExhausted   = errors.New("arena: capacity exhausted")
	ErrSealed      = errors.New("arena: carve after seal")
)

// Arena is an append-only bump allocator over one zero-initialized region of
// float64 samples.
type Arena struct {
	mem    []float64
	offset int
	sealed bool
}

// New reserves a zero-initialized arena of capacityBytes bytes.
func New(capacityBytes int) (*Arena, error) {
	if capacityBytes <= 0 || capacityBytes%SampleSize != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, capacityBytes)
	}

	return &Arena{mem: make([]float64, capacityBytes/SampleSize)}, nil
}

// BytesFor returns the number of bytes needed to hold samples samples.
func BytesFor(samples int) int {
	return samples * SampleSize
}

// Carve returns a new span of samples samples. Spans never overlap and their
// capacity is capped so that appending cannot reach a neighbour.
func (a *Arena) Carve(samples int) ([]float64, error) {
	if a.sealed {
		return nil, ErrSealed
	}

	if samples <= 0 {
		return nil, fmt.Errorf("%w: %d samples", ErrInvalidSize, samples)
	}

	if samples > len(a.mem)-a.offset {
		return nil, fmt.Errorf("%w: need %d bytes, %d of %d remaining",
			ErrExhausted, BytesFor(samples), a.Remaining(), a.Cap())
	}

	start := a.offset
	a.offset += samples

	return a.mem[start:a.offset:a.offset], nil
}

// CarveBytes is Carve with the request expressed in bytes.
func (a *Arena) CarveBytes(n int) ([]float64, error) {
	if n <= 0 || n%SampleSize != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}

	return a.Carve(n / SampleSize)
}

// Seal ends the initialization phase.
func (a *Arena) Seal() { a.sealed = true }

// Sealed reports whether Seal has been called.
func (a *Arena) Sealed() bool { return a.sealed }

// Cap returns the arena capacity in bytes.
func (a *Arena) Cap() int { return BytesFor(len(a.mem)) }

// Used returns the number of carved bytes.
func (a *Arena) Used() int { return BytesFor(a.offset) }

// Remaining returns the number of bytes still available for carving.
func (a *Arena) Remaining() int { return BytesFor(len(a.mem) - a.offset) }
