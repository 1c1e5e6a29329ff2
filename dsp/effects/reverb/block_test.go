package reverb

import (
	"testing"

	"github.com/cwbudde/algo-reverbz/dsp/params"
	"github.com/cwbudde/algo-reverbz/internal/testutil"
)

func TestMonoBlockMatchesSamples(t *testing.T) {
	c := params.DefaultControls()
	c.MixPercent = 35
	c.Smoothed = true

	in := testutil.DeterministicNoise(7, 0.7, 10000)

	ref := newTestEngine(t, c)
	want := make([]float64, len(in))
	for i, x := range in {
		want[i] = ref.ProcessMono(x)
	}

	e := newTestEngine(t, c, WithMaxBlockSize(64))
	got := make([]float64, len(in))
	e.ProcessMonoBlock(got, in)

	testutil.RequireSliceNearlyEqual(t, got, want, 0)
}

func TestStereoBlockMatchesSamples(t *testing.T) {
	c := params.DefaultControls()
	c.MixPercent = 60
	c.PredelayMs = 12

	inL := testutil.DeterministicNoise(8, 0.7, 10000)
	inR := testutil.DeterministicSine(440, testRate, 0.5, 10000)

	ref := newTestEngine(t, c)
	wantL := make([]float64, len(inL))
	wantR := make([]float64, len(inR))
	for i := range inL {
		wantL[i], wantR[i] = ref.ProcessStereo(inL[i], inR[i])
	}

	e := newTestEngine(t, c, WithMaxBlockSize(100))
	gotL := make([]float64, len(inL))
	gotR := make([]float64, len(inR))
	e.ProcessStereoBlock(gotL, gotR, inL, inR)

	testutil.RequireSliceNearlyEqual(t, gotL, wantL, 0)
	testutil.RequireSliceNearlyEqual(t, gotR, wantR, 0)
}

func TestBlockFollowsControlChanges(t *testing.T) {
	c := params.DefaultControls()
	c.MixPercent = 80

	changes := map[int]func(*params.Controls){
		1500: func(c *params.Controls) { c.Decay = 0.8; c.MixPercent = 20 },
		4000: func(c *params.Controls) { c.Smoothed = true; c.HFDampingHz = 9000 },
		7000: func(c *params.Controls) { c.PredelayMs = 40; c.Diffusion = 0.3 },
	}
	bounds := []int{0, 1500, 4000, 7000, 12000}

	in := testutil.DeterministicNoise(9, 0.5, 12000)

	ref := newTestEngine(t, c)
	rc := c
	want := make([]float64, len(in))
	for i, x := range in {
		if f, ok := changes[i]; ok {
			f(&rc)
			ref.SetControls(rc)
		}

		want[i] = ref.ProcessMono(x)
	}

	e := newTestEngine(t, c, WithMaxBlockSize(256))
	ec := c
	got := make([]float64, len(in))
	for k := 0; k+1 < len(bounds); k++ {
		if f, ok := changes[bounds[k]]; ok {
			f(&ec)
			e.SetControls(ec)
		}

		e.ProcessMonoBlock(got[bounds[k]:bounds[k+1]], in[bounds[k]:bounds[k+1]])
	}

	testutil.RequireSliceNearlyEqual(t, got, want, 0)
}

func TestProcessInPlace(t *testing.T) {
	c := params.DefaultControls()
	c.MixPercent = 50

	in := testutil.DeterministicNoise(10, 1, 3000)

	ref := newTestEngine(t, c)
	want := make([]float64, len(in))
	ref.ProcessMonoBlock(want, in)

	e := newTestEngine(t, c)
	buf := append([]float64(nil), in...)
	e.ProcessInPlace(buf)

	testutil.RequireSliceNearlyEqual(t, buf, want, 0)
}

func TestBlockUsesShortestSlice(t *testing.T) {
	e := newTestEngine(t, params.DefaultControls())

	dstL := make([]float64, 10)
	dstR := make([]float64, 8)
	src := testutil.Impulse(12, 0)

	for i := range dstL {
		dstL[i] = 42
	}

	e.ProcessStereoBlock(dstL, dstR, src, src)

	if dstL[8] != 42 || dstL[9] != 42 {
		t.Fatalf("samples past the shortest slice were written: %v", dstL[8:])
	}

	mono := []float64{1, 2, 3}
	e.ProcessMonoBlock(mono[:0], mono)

	if mono[0] != 1 {
		t.Fatalf("empty destination modified the source: %v", mono)
	}
}
