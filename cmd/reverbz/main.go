// Command reverbz renders the impulse response of the plate reverb and
// prints its decay and frequency response.
//
// Usage:
//
//	reverbz [flags]
//
// Examples:
//
//	reverbz -decay 0.8 -hf 8000
//	reverbz -smoothed -predelay 20 -out plate.wav
//	reverbz -rate 96000 -seconds 8 -mono
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-reverbz/dsp/effects/reverb"
	"github.com/cwbudde/algo-reverbz/dsp/params"
	"github.com/cwbudde/algo-reverbz/measure/ir"
	"github.com/cwbudde/algo-reverbz/measure/response"
)

const wavBitDepth = 24

// octave band centers reported in the response summary
var bandCenters = []float64{63, 125, 250, 500, 1000, 2000, 4000, 8000, 16000}

type options struct {
	rate     float64
	seconds  float64
	out      string
	mono     bool
	controls params.Controls
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}

	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	left, right, err := render(opts)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if err := report(stdout, opts, left, right); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if opts.out != "" {
		if err := writeWAV(opts.out, int(opts.rate), left, right); err != nil {
			_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}

		_, _ = fmt.Fprintf(stdout, "\nwrote %s\n", opts.out)
	}

	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	d := params.DefaultControls()
	o := options{}

	fs := flag.NewFlagSet("reverbz", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.Float64Var(&o.rate, "rate", 48000, "sample rate in Hz")
	fs.Float64Var(&o.seconds, "seconds", 5, "length of the rendered response in seconds")
	fs.StringVar(&o.out, "out", "", "write the response as a 24-bit WAV file")
	fs.BoolVar(&o.mono, "mono", false, "render a single channel through the mono path")

	c := &o.controls
	fs.Float64Var(&c.PredelayMs, "predelay", d.PredelayMs, "predelay in ms")
	fs.Float64Var(&c.InputLowpassHz, "input-lp", d.InputLowpassHz, "input lowpass cutoff in Hz")
	fs.Float64Var(&c.InputHighpassHz, "input-hp", d.InputHighpassHz, "input highpass cutoff in Hz")
	fs.Float64Var(&c.Diffusion, "diffusion", d.Diffusion, "input diffusion [0, 0.999]")
	fs.Float64Var(&c.Decay, "decay", d.Decay, "tank decay [0, 0.85]")
	fs.Float64Var(&c.DriveDB, "drive", d.DriveDB, "tank saturation drive in dB")
	fs.Float64Var(&c.HFDampingHz, "hf", d.HFDampingHz, "HF damping cutoff in Hz")
	fs.Float64Var(&c.LFDampingHz, "lf", d.LFDampingHz, "LF damping cutoff in Hz")
	fs.Float64Var(&c.MixPercent, "mix", d.MixPercent, "wet mix in percent")
	fs.BoolVar(&c.Smoothed, "smoothed", d.Smoothed, "use the smoothed tank with modulation")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: reverbz [flags]\n\n")
		_, _ = fmt.Fprintf(stderr, "Renders the plate reverb impulse response and prints its decay\n")
		_, _ = fmt.Fprintf(stderr, "metrics and octave band levels.\n\n")
		_, _ = fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return o, err
	}

	if fs.NArg() > 0 {
		return o, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if !(o.seconds > 0) || math.IsInf(o.seconds, 0) {
		return o, fmt.Errorf("seconds must be > 0: %f", o.seconds)
	}

	return o, nil
}

// render feeds a unit impulse and returns the response of both channels.
// In mono mode both channels hold the mono output.
func render(o options) (left, right []float64, err error) {
	e, err := reverb.New(o.rate, o.controls)
	if err != nil {
		return nil, nil, err
	}

	n := int(math.Round(o.seconds * o.rate))
	left = make([]float64, n)
	right = make([]float64, n)
	left[0], right[0] = 1, 1

	if o.mono {
		e.ProcessInPlace(left)
		copy(right, left)

		return left, right, nil
	}

	e.ProcessStereoBlock(left, right, left, right)

	return left, right, nil
}

func report(w io.Writer, o options, left, right []float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	a := ir.NewAnalyzer(o.rate)

	if _, err := fmt.Fprintf(tw, "Channel\tOnset [ms]\tEDT [s]\tT20 [s]\tT30 [s]\tRT60 [s]\tCenter [ms]\tEnergy\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, ch := range []struct {
		name string
		data []float64
	}{{"left", left}, {"right", right}} {
		m, err := a.Analyze(ch.data)
		if err != nil {
			return fmt.Errorf("analyze %s: %w", ch.name, err)
		}

		if _, err := fmt.Fprintf(tw, "%s\t%.2f\t%.3f\t%.3f\t%.3f\t%.3f\t%.1f\t%.4f\n",
			ch.name,
			float64(m.Onset)*1000/o.rate,
			m.EDT, m.T20, m.T30, m.RT60,
			m.CenterTime*1000,
			m.Energy,
		); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}

	levels, err := bandLevels(left, o.rate)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\n"); err != nil {
		return err
	}

	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Band [Hz]\tLevel [dB]\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, f := range bandCenters {
		if math.IsNaN(levels[i]) {
			continue
		}

		if _, err := fmt.Fprintf(tw, "%g\t%.1f\n", f, levels[i]); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	return tw.Flush()
}

// bandLevels returns the mean power of each octave band of x in dB. Bands
// above Nyquist or without a bin are NaN.
func bandLevels(x []float64, rate float64) ([]float64, error) {
	mag, err := response.Magnitude(x, 0)
	if err != nil {
		return nil, fmt.Errorf("response: %w", err)
	}

	size := response.FFTSize(len(x), 0)
	levels := make([]float64, len(bandCenters))

	for i, fc := range bandCenters {
		lo, hi := fc/math.Sqrt2, fc*math.Sqrt2

		var (
			sum float64
			n   int
		)

		for k, m := range mag {
			f := response.BinFrequency(k, size, rate)
			if f >= lo && f < hi {
				sum += m * m
				n++
			}
		}

		if n == 0 || hi > rate/2 {
			levels[i] = math.NaN()
			continue
		}

		levels[i] = 10 * math.Log10(math.Max(sum/float64(n), 1e-20))
	}

	return levels, nil
}

func writeWAV(path string, rate int, left, right []float64) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	const full = 1<<(wavBitDepth-1) - 1

	data := make([]int, 2*len(left))
	for i := range left {
		data[2*i] = int(math.Round(clampUnit(left[i]) * full))
		data[2*i+1] = int(math.Round(clampUnit(right[i]) * full))
	}

	enc := wav.NewEncoder(f, rate, wavBitDepth, 2, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: rate},
		Data:           data,
		SourceBitDepth: wavBitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finish %s: %w", path, err)
	}

	return nil
}

func clampUnit(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}
