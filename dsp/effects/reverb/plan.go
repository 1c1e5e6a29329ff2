package reverb

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-reverbz/dsp/arena"
	"github.com/cwbudde/algo-reverbz/dsp/lfo"
)

// ReferenceSampleRate is the rate at which the tap lengths below are given.
const ReferenceSampleRate = 29761.0

// modulationReferenceRate is the rate at which the modulation depths are given.
const modulationReferenceRate = 48000.0

const (
	numInputDiffusers = 4
	numTankDelays     = 4
	numTankAllpasses  = 6
	numDelayLines     = 1 + numInputDiffusers + 2 + numTankDelays + numTankAllpasses
	numScratch        = 4
)

// Reference tap lengths in samples at ReferenceSampleRate.
var (
	inputDiffuserTaps = [numInputDiffusers]float64{142, 107, 379, 277}
	modulatedTaps     = [2]float64{672, 908}
	// delays 1 to 4
	tankDelayTaps = [numTankDelays]float64{4453, 4217, 3720, 3163}
	// allpasses 5 to 10
	tankAllpassTaps = [numTankAllpasses]float64{1800, 2656, 1511, 2003, 1709, 2411}
)

var (
	modulationRates  = [2]float64{0.6, 0.8}
	modulationDepths = [2]float64{24, 48}
)

// ErrCapacity is returned when the delay line capacity cannot hold a tap.
var ErrCapacity = errors.New("reverb: delay capacity too small")

// Taps lists the tap lengths of a Plan in samples at its sample rate.
type Taps struct {
	InputDiffusers [numInputDiffusers]int
	Modulated      [2]int
	// TankDelays holds delays 1 to 4. Branch 1 runs through delays 1 and 2,
	// branch 2 through delays 3 and 4.
	TankDelays [numTankDelays]int
	// TankAllpasses holds allpasses 5 to 10. Odd numbers sit on branch 1.
	TankAllpasses [numTankAllpasses]int
}

// Longest returns the longest tap.
func (t Taps) Longest() int {
	longest := 0

	for _, group := range [][]int{t.InputDiffusers[:], t.Modulated[:], t.TankDelays[:], t.TankAllpasses[:]} {
		for _, n := range group {
			longest = max(longest, n)
		}
	}

	return longest
}

// Shortest returns the shortest tap.
func (t Taps) Shortest() int {
	shortest := math.MaxInt

	for _, group := range [][]int{t.InputDiffusers[:], t.Modulated[:], t.TankDelays[:], t.TankAllpasses[:]} {
		for _, n := range group {
			shortest = min(shortest, n)
		}
	}

	return shortest
}

// Plan is the first phase of the engine lifecycle. It fixes the sample rate,
// the tap lengths and the memory layout but owns no sample memory. Only
// Initialize turns a Plan into a processing Engine.
type Plan struct {
	sampleRate float64
	cfg        config
	taps       Taps
	capacity   int
	modDepth   [2]float64
	lfoLen     [2]int
}

// NewPlan validates the sample rate and options and scales the tap lengths.
func NewPlan(sampleRate float64, opts ...Option) (*Plan, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("reverb sample rate must be > 0: %f", sampleRate)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	p := &Plan{sampleRate: sampleRate, cfg: cfg}

	scale := sampleRate / cfg.referenceRate
	for i, n := range inputDiffuserTaps {
		p.taps.InputDiffusers[i] = scaleTap(n, scale)
	}

	for i, n := range modulatedTaps {
		p.taps.Modulated[i] = scaleTap(n, scale)
		p.modDepth[i] = modulationDepths[i] * sampleRate / modulationReferenceRate
		p.lfoLen[i] = lfo.TableLen(sampleRate, modulationRates[i])
	}

	for i, n := range tankDelayTaps {
		p.taps.TankDelays[i] = scaleTap(n, scale)
	}

	for i, n := range tankAllpassTaps {
		p.taps.TankAllpasses[i] = scaleTap(n, scale)
	}

	if s := p.taps.Shortest(); s < 1 {
		return nil, fmt.Errorf("reverb sample rate too low for the tap set: %f", sampleRate)
	}

	for i, n := range p.taps.Modulated {
		if float64(n)-math.Round(p.modDepth[i]) < 1 {
			return nil, fmt.Errorf("reverb modulation depth %f exceeds tap %d", p.modDepth[i], n)
		}

		if p.lfoLen[i] < 1 {
			return nil, fmt.Errorf("reverb sample rate too low for %g Hz modulation: %f", modulationRates[i], sampleRate)
		}
	}

	required := p.requiredCapacity()
	switch {
	case cfg.explicitDelay && cfg.maxDelaySamples < required:
		return nil, fmt.Errorf("%w: %d samples, need %d", ErrCapacity, cfg.maxDelaySamples, required)
	case cfg.explicitDelay:
		p.capacity = cfg.maxDelaySamples
	default:
		p.capacity = cfg.maxDelaySamples
		for p.capacity < required {
			p.capacity *= 2
		}
	}

	return p, nil
}

func scaleTap(n, scale float64) int {
	return int(math.Round(n * scale))
}

// requiredCapacity is the smallest line capacity that holds the longest tap
// including the furthest modulated read.
func (p *Plan) requiredCapacity() int {
	need := p.taps.Longest()
	for i, n := range p.taps.Modulated {
		need = max(need, n+int(math.Round(p.modDepth[i])))
	}

	return need + 1
}

// SampleRate returns the engine sample rate in Hz.
func (p *Plan) SampleRate() float64 { return p.sampleRate }

// Taps returns the scaled tap lengths.
func (p *Plan) Taps() Taps { return p.taps }

// Capacity returns the per-line buffer capacity in samples.
func (p *Plan) Capacity() int { return p.capacity }

// MaxBlockSize returns the block chunk length.
func (p *Plan) MaxBlockSize() int { return p.cfg.maxBlockSize }

// ModulationDepths returns the smoothed-mode modulation depths of the two
// tank branches in samples.
func (p *Plan) ModulationDepths() [2]float64 { return p.modDepth }

// MaxPredelayMs returns the longest predelay the capacity allows.
func (p *Plan) MaxPredelayMs() float64 {
	return float64(p.capacity-1) * 1000 / p.sampleRate
}

// RequiredSamples returns the number of samples Initialize carves.
func (p *Plan) RequiredSamples() int {
	return numDelayLines*p.capacity + p.lfoLen[0] + p.lfoLen[1] + numScratch*p.cfg.maxBlockSize
}

// RequiredBytes returns the arena size Initialize needs.
func (p *Plan) RequiredBytes() int {
	return arena.BytesFor(p.RequiredSamples())
}
