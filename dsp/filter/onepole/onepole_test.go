package onepole

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-reverbz/dsp/core"
	"github.com/cwbudde/algo-reverbz/internal/testutil"
)

func TestNewValidation(t *testing.T) {
	if _, err := New(Kind(7), 0.5); err == nil {
		t.Fatal("expected error for invalid kind")
	}

	f, err := New(Lowpass, 0.5)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if f.Kind() != Lowpass {
		t.Fatalf("Kind() = %v, want %v", f.Kind(), Lowpass)
	}
}

func TestCutoffClamp(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{name: "negative", in: -1, want: 0},
		{name: "nan", in: math.NaN(), want: 0},
		{name: "inside", in: 1.25, want: 1.25},
		{name: "pi", in: math.Pi, want: core.MaxNormalizedCutoff},
		{name: "huge", in: 100, want: core.MaxNormalizedCutoff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New(Lowpass, tt.in)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			if got := f.NormalizedCutoff(); got != tt.want {
				t.Fatalf("NormalizedCutoff() = %v, want %v", got, tt.want)
			}

			if got, want := f.Coefficient(), math.Exp(-tt.want); math.Abs(got-want) > 1e-12 {
				t.Fatalf("Coefficient() = %v, want %v", got, want)
			}
		})
	}
}

func TestLowpassDifferenceEquation(t *testing.T) {
	wc := 0.3
	beta := math.Exp(-wc)

	f, err := New(Lowpass, wc)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	in := testutil.DeterministicNoise(3, 0.5, 64)
	prev := 0.0

	for i, x := range in {
		want := (1-beta)*x + beta*prev
		got := f.ProcessSample(x)

		if math.Abs(got-want) > 1e-15 {
			t.Fatalf("sample %d: got %v, want %v", i, got, want)
		}

		prev = got
	}
}

func TestLowpassDCGain(t *testing.T) {
	f, err := New(Lowpass, 0.2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	var y float64
	for range 2000 {
		y = f.ProcessSample(1)
	}

	if math.Abs(y-1) > 1e-9 {
		t.Fatalf("DC gain = %v, want 1", y)
	}
}

func TestHighpassBlocksDC(t *testing.T) {
	f, err := New(Highpass, 0.05)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	var y float64
	for range 5000 {
		y = f.ProcessSample(1)
	}

	if math.Abs(y) > 1e-9 {
		t.Fatalf("DC output = %v, want ~0", y)
	}
}

func TestHighpassPassesNyquist(t *testing.T) {
	f, err := New(Highpass, 0.01)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	var peak float64

	for i := range 4000 {
		x := 1.0
		if i%2 == 1 {
			x = -1
		}

		y := f.ProcessSample(x)
		if i > 3000 {
			peak = math.Max(peak, math.Abs(y))
		}
	}

	// Nyquist gain is 2/(1+beta).
	if peak < 0.95 || peak > 1.05 {
		t.Fatalf("Nyquist gain = %v, want ~1", peak)
	}
}

func TestZeroCutoffHighpassIsIdentity(t *testing.T) {
	f, err := New(Highpass, 0)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	in := testutil.DeterministicNoise(9, 1, 128)
	for i, x := range in {
		if got := f.ProcessSample(x); math.Abs(got-x) > 1e-12 {
			t.Fatalf("sample %d: got %v, want %v", i, got, x)
		}
	}
}

func TestDenormalFlush(t *testing.T) {
	f, err := New(Lowpass, 0.001)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if got := f.ProcessSample(1e-300); got != 0 {
		t.Fatalf("tiny input produced %v, want 0", got)
	}
}

func TestReset(t *testing.T) {
	f, err := New(Lowpass, 0.1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	in := testutil.DeterministicNoise(1, 1, 32)
	first := make([]float64, len(in))
	copy(first, in)
	f.ProcessInPlace(first)

	f.Reset()

	second := make([]float64, len(in))
	copy(second, in)
	f.ProcessInPlace(second)

	testutil.RequireSliceNearlyEqual(t, second, first, 0)
}

func BenchmarkProcessSample(b *testing.B) {
	f, err := New(Highpass, 0.02)
	if err != nil {
		b.Fatal(err)
	}

	for i := 0; i < b.N; i++ {
		_ = f.ProcessSample(float64(i & 1))
	}
}

func TestHighpassZeroCutoffDoesNotIntegrate(t *testing.T) {
	f, err := New(Highpass, 0)
	if err != nil {
		t.Fatal(err)
	}

	for i := range 1_000_000 {
		x := 0.75 + 1e-6*float64(i%3)
		if y := f.ProcessSample(x); y != x {
			t.Fatalf("sample %d: got %v, want %v", i, y, x)
		}
	}

	if f.state != 0 {
		t.Fatalf("state = %v, want 0", f.state)
	}

	// opening the cutoff starts from clean memory
	f.SetNormalizedCutoff(0.01)
	if y := f.ProcessSample(1); math.Abs(y-1) > 1e-12 {
		t.Fatalf("first sample after opening = %v, want 1", y)
	}
}
