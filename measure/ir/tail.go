package ir

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Onset returns the index of the first sample whose magnitude exceeds
// threshold, or -1.
func Onset(ir []float64, threshold float64) int {
	for i, v := range ir {
		if math.Abs(v) > threshold {
			return i
		}
	}

	return -1
}

// Energy returns the sum of squares of ir.
func Energy(ir []float64) float64 {
	var sum float64
	for _, v := range ir {
		sum += v * v
	}

	return sum
}

// Envelope returns the RMS of consecutive non-overlapping windows of ir. The
// last window may be shorter. A window below 1 is treated as 1.
func Envelope(ir []float64, window int) []float64 {
	window = max(window, 1)
	if len(ir) == 0 {
		return nil
	}

	out := make([]float64, 0, (len(ir)+window-1)/window)
	sq := make([]float64, window)

	for off := 0; off < len(ir); off += window {
		seg := ir[off:min(off+window, len(ir))]
		s := sq[:len(seg)]
		vecmath.MulBlock(s, seg, seg)

		var sum float64
		for _, v := range s {
			sum += v
		}

		out = append(out, math.Sqrt(sum/float64(len(seg))))
	}

	return out
}

// Taps returns the indices of local magnitude maxima above threshold. On a
// plateau only the first sample is reported.
func Taps(ir []float64, threshold float64) []int {
	var taps []int

	for i, v := range ir {
		m := math.Abs(v)
		if m <= threshold {
			continue
		}

		if i > 0 && math.Abs(ir[i-1]) >= m {
			continue
		}

		if i+1 < len(ir) && math.Abs(ir[i+1]) > m {
			continue
		}

		taps = append(taps, i)
	}

	return taps
}
