package response

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-reverbz/dsp/core"
)

// ErrEmptyIR is returned for an empty impulse response.
var ErrEmptyIR = errors.New("response: impulse response is empty")

// Spectrum returns the one-sided complex spectrum (bins 0..N/2) of ir,
// zero-padded to the next power of two of max(len(ir), minSize).
func Spectrum(ir []float64, minSize int) ([]complex128, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}

	n := nextPowerOf2(max(len(ir), minSize, 2))

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("response: failed to create FFT plan: %w", err)
	}

	in := make([]complex128, n)
	for i, v := range ir {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("response: forward FFT: %w", err)
	}

	return out[:n/2+1], nil
}

// Magnitude returns |H(k)| for bins 0..N/2.
func Magnitude(ir []float64, minSize int) ([]float64, error) {
	bins, err := Spectrum(ir, minSize)
	if err != nil {
		return nil, err
	}

	re := make([]float64, len(bins))
	im := make([]float64, len(bins))

	for i, c := range bins {
		re[i] = real(c)
		im[i] = imag(c)
	}

	out := make([]float64, len(bins))
	vecmath.Magnitude(out, re, im)

	return out, nil
}

// MagnitudeDB returns 20*log10|H(k)| for bins 0..N/2.
func MagnitudeDB(ir []float64, minSize int) ([]float64, error) {
	mag, err := Magnitude(ir, minSize)
	if err != nil {
		return nil, err
	}

	for i, m := range mag {
		mag[i] = core.LinearToDB(m)
	}

	return mag, nil
}

// Phase returns arg H(k) for bins 0..N/2 in radians.
func Phase(ir []float64, minSize int) ([]float64, error) {
	bins, err := Spectrum(ir, minSize)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(bins))
	for i, c := range bins {
		out[i] = cmplx.Phase(c)
	}

	return out, nil
}

// BinFrequency returns the centre frequency in Hz of bin k for an FFT of
// length fftSize.
func BinFrequency(k, fftSize int, sampleRate float64) float64 {
	return float64(k) * sampleRate / float64(fftSize)
}

// FFTSize returns the transform length Spectrum uses for the given inputs.
func FFTSize(irLen, minSize int) int {
	return nextPowerOf2(max(irLen, minSize, 2))
}

// Flatness returns the minimum and maximum of mag.
func Flatness(mag []float64) (lo, hi float64) {
	if len(mag) == 0 {
		return 0, 0
	}

	lo, hi = mag[0], mag[0]
	for _, m := range mag[1:] {
		lo = math.Min(lo, m)
		hi = math.Max(hi, m)
	}

	return lo, hi
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p *= 2
	}

	return p
}
