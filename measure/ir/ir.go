package ir

import (
	"errors"
	"math"
)

// Errors returned by the analyzer.
var (
	ErrEmptyIR           = errors.New("ir: impulse response is empty")
	ErrInvalidSampleRate = errors.New("ir: sample rate must be positive")
	ErrNoDecay           = errors.New("ir: insufficient decay for RT calculation")
)

// schroederFloorDB is reported where the remaining energy is zero.
const schroederFloorDB = -200.0

// Metrics holds the analysis of one impulse response channel.
type Metrics struct {
	PeakIndex  int     // index of the absolute maximum
	Onset      int     // first index above the onset threshold, -1 when silent
	Energy     float64 // sum of squares
	EDT        float64 // early decay time in seconds
	T20        float64 // decay time from the -5 to -25 dB slope, seconds
	T30        float64 // decay time from the -5 to -35 dB slope, seconds
	RT60       float64 // T30, or T20 when T30 is unavailable
	CenterTime float64 // energy centroid after the onset, seconds
}

// Analyzer computes Metrics at a fixed sample rate. Samples with magnitude
// at or below OnsetThreshold count as silence when locating the onset.
type Analyzer struct {
	SampleRate     float64
	OnsetThreshold float64
}

// NewAnalyzer returns an analyzer with a zero onset threshold.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{SampleRate: sampleRate}
}

// Analyze computes every metric of ir. Decay metrics start at the onset, so
// predelay does not inflate them. A silent response yields zero decay
// metrics and an onset of -1.
func (a *Analyzer) Analyze(ir []float64) (Metrics, error) {
	if len(ir) == 0 {
		return Metrics{}, ErrEmptyIR
	}

	if !(a.SampleRate > 0) {
		return Metrics{}, ErrInvalidSampleRate
	}

	m := Metrics{
		PeakIndex: peakIndex(ir),
		Onset:     Onset(ir, a.OnsetThreshold),
		Energy:    Energy(ir),
	}

	if m.Onset < 0 {
		return m, nil
	}

	tail := ir[m.Onset:]
	curve := schroeder(tail)

	m.EDT = a.decayTime(curve, 0, -10)
	m.T20 = a.decayTime(curve, -5, -25)
	m.T30 = a.decayTime(curve, -5, -35)
	m.CenterTime = a.centerTime(tail)

	m.RT60 = m.T30
	if m.RT60 == 0 {
		m.RT60 = m.T20
	}

	return m, nil
}

// RT60 returns the decay time of ir measured from its onset. It fails with
// ErrNoDecay when the response does not fall by 25 dB.
func (a *Analyzer) RT60(ir []float64) (float64, error) {
	m, err := a.Analyze(ir)
	if err != nil {
		return 0, err
	}

	if m.RT60 == 0 {
		return 0, ErrNoDecay
	}

	return m.RT60, nil
}

// SchroederCurve returns the backward-integrated energy decay of ir in dB
// relative to its total energy:
//
//	S[n] = 10*log10( sum_{k>=n} h[k]^2 / sum_k h[k]^2 )
func (a *Analyzer) SchroederCurve(ir []float64) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}

	return schroeder(ir), nil
}

func schroeder(ir []float64) []float64 {
	out := make([]float64, len(ir))

	var sum float64
	for i := len(ir) - 1; i >= 0; i-- {
		sum += ir[i] * ir[i]
		out[i] = sum
	}

	total := out[0]
	for i, v := range out {
		if total <= 0 || v <= 0 {
			out[i] = schroederFloorDB
			continue
		}

		out[i] = 10 * math.Log10(v/total)
	}

	return out
}

// decayTime fits a line to the curve between hiDB and loDB and extrapolates
// it to -60 dB. It returns 0 when the range is not reached or the fit does
// not fall.
func (a *Analyzer) decayTime(curve []float64, hiDB, loDB float64) float64 {
	start, end := -1, -1

	for i, v := range curve {
		if start < 0 && v <= hiDB {
			start = i
		}

		if start >= 0 && v <= loDB {
			end = i
			break
		}
	}

	if start < 0 || end <= start {
		return 0
	}

	var sx, sy, sxx, sxy float64

	for i := start; i <= end; i++ {
		x := float64(i - start)
		y := curve[i]
		sx += x
		sy += y
		sxx += x * x
		sxy += x * y
	}

	n := float64(end - start + 1)

	den := n*sxx - sx*sx
	if den == 0 {
		return 0
	}

	slope := (n*sxy - sx*sy) / den // dB per sample
	if slope >= 0 {
		return 0
	}

	return -60 / (slope * a.SampleRate)
}

func (a *Analyzer) centerTime(ir []float64) float64 {
	var num, den float64

	for i, v := range ir {
		e := v * v
		num += float64(i) * e
		den += e
	}

	if den <= 0 {
		return 0
	}

	return num / den / a.SampleRate
}

func peakIndex(ir []float64) int {
	idx, peak := 0, 0.0

	for i, v := range ir {
		if av := math.Abs(v); av > peak {
			idx, peak = i, av
		}
	}

	return idx
}
