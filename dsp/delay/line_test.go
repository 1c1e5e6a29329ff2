package delay

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-reverbz/dsp/arena"
)

func newLine(t *testing.T, capacity int) *Line {
	t.Helper()

	a, err := arena.New(arena.BytesFor(capacity))
	if err != nil {
		t.Fatal(err)
	}

	d, err := New(a, capacity)
	if err != nil {
		t.Fatal(err)
	}

	return d
}

// --- construction and validation ---

func TestNewValidation(t *testing.T) {
	a, err := arena.New(64)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := New(a, 0); !errors.Is(err, ErrCapacity) {
		t.Fatalf("capacity=0 err = %v, want ErrCapacity", err)
	}

	if _, err := New(a, 9); !errors.Is(err, arena.ErrExhausted) {
		t.Fatalf("oversized err = %v, want arena.ErrExhausted", err)
	}
}

func TestNewDefaults(t *testing.T) {
	d := newLine(t, 16)

	if d.Capacity() != 16 {
		t.Fatalf("Capacity: got %d want 16", d.Capacity())
	}

	if d.DelaySamples() != 0 {
		t.Fatalf("DelaySamples: got %d want 0", d.DelaySamples())
	}
}

// --- impulse timing ---

func TestImpulseDelay(t *testing.T) {
	const capacity = 64

	for _, n := range []int{1, 2, 7, 31, capacity - 1} {
		d := newLine(t, capacity)
		d.SetDelaySamples(n)

		for i := 0; i < 3*capacity; i++ {
			x := 0.0
			if i == 0 {
				x = 1
			}

			y := d.ProcessSample(x)

			want := 0.0
			if i == n {
				want = 1
			}

			if y != want {
				t.Fatalf("delay %d, sample %d: got %v want %v", n, i, y, want)
			}
		}
	}
}

func TestZeroDelayBypass(t *testing.T) {
	d := newLine(t, 8)

	for i := 0; i < 20; i++ {
		x := float64(i) + 0.5
		if got := d.ProcessSample(x); got != x {
			t.Fatalf("sample %d: got %v want %v", i, got, x)
		}
	}
}

func TestSetDelayClamp(t *testing.T) {
	d := newLine(t, 8)

	d.SetDelaySamples(100)
	if d.DelaySamples() != 7 {
		t.Fatalf("clamped high: got %d want 7", d.DelaySamples())
	}

	d.SetDelaySamples(-3)
	if d.DelaySamples() != 0 {
		t.Fatalf("clamped low: got %d want 0", d.DelaySamples())
	}
}

func TestDelayChangeTakesEffectNextSample(t *testing.T) {
	d := newLine(t, 16)
	d.SetDelaySamples(4)

	for i := 0; i < 10; i++ {
		d.ProcessSample(float64(i + 1))
	}

	// Last written value is 10; delay 1 reads it back.
	d.SetDelaySamples(1)

	if got := d.ProcessSample(0); got != 10 {
		t.Fatalf("got %v want 10", got)
	}
}

func TestTapOffsetWraps(t *testing.T) {
	d := newLine(t, 4)
	d.SetDelaySamples(1)

	for i := 0; i < 10; i++ {
		d.Push(float64(i))
	}
	// buffer holds [8, 9, 6, 7], write cursor at 2.
	if got := d.Tap(); got != 9 {
		t.Fatalf("Tap: got %v want 9", got)
	}

	if got := d.TapOffset(-1); got != 8 {
		t.Fatalf("TapOffset(-1): got %v want 8", got)
	}

	if got := d.TapOffset(-6); got != 7 {
		t.Fatalf("TapOffset(-6): got %v want 7", got)
	}

	if got := d.TapOffset(5); got != 6 {
		t.Fatalf("TapOffset(5): got %v want 6", got)
	}
}

func TestReset(t *testing.T) {
	d := newLine(t, 4)
	d.SetDelaySamples(2)

	d.ProcessSample(1)
	d.ProcessSample(2)
	d.Reset()

	for i := 0; i < 4; i++ {
		if got := d.ProcessSample(0); got != 0 {
			t.Fatalf("after reset sample %d: got %v want 0", i, got)
		}
	}

	if d.DelaySamples() != 2 {
		t.Fatalf("Reset changed delay length to %d", d.DelaySamples())
	}
}

// --- benchmarks ---

func BenchmarkProcessSample(b *testing.B) {
	a, _ := arena.New(arena.BytesFor(8192))
	d, _ := New(a, 8192)
	d.SetDelaySamples(7182)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		d.ProcessSample(0.5)
	}
}
