package response

import (
	"errors"
	"math"
	"testing"
)

func TestEmpty(t *testing.T) {
	if _, err := Magnitude(nil, 16); !errors.Is(err, ErrEmptyIR) {
		t.Fatalf("err = %v, want ErrEmptyIR", err)
	}
}

func TestFFTSize(t *testing.T) {
	if got := FFTSize(1000, 0); got != 1024 {
		t.Fatalf("FFTSize(1000, 0) = %d, want 1024", got)
	}
	if got := FFTSize(3, 4096); got != 4096 {
		t.Fatalf("FFTSize(3, 4096) = %d, want 4096", got)
	}
}

func TestUnitImpulseIsFlat(t *testing.T) {
	mag, err := Magnitude([]float64{1}, 256)
	if err != nil {
		t.Fatal(err)
	}

	if len(mag) != 129 {
		t.Fatalf("len = %d, want 129", len(mag))
	}

	lo, hi := Flatness(mag)
	if math.Abs(lo-1) > 1e-12 || math.Abs(hi-1) > 1e-12 {
		t.Fatalf("flatness = [%v, %v], want [1, 1]", lo, hi)
	}
}

func TestTwoTapAverage(t *testing.T) {
	// y = (x[n] + x[n-1]) / 2 has |H| = |cos(w/2)|: 1 at DC, 0 at Nyquist.
	mag, err := Magnitude([]float64{0.5, 0.5}, 64)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(mag[0]-1) > 1e-12 {
		t.Fatalf("DC = %v, want 1", mag[0])
	}

	if mag[len(mag)-1] > 1e-12 {
		t.Fatalf("Nyquist = %v, want 0", mag[len(mag)-1])
	}

	quarter := len(mag) / 2
	if want := math.Cos(math.Pi / 4); math.Abs(mag[quarter]-want) > 1e-12 {
		t.Fatalf("fs/4 = %v, want %v", mag[quarter], want)
	}
}

func TestPureDelayPhase(t *testing.T) {
	ir := make([]float64, 3)
	ir[2] = 1

	phase, err := Phase(ir, 16)
	if err != nil {
		t.Fatal(err)
	}
	// H(k) = exp(-j*2*pi*k*2/16); bin 1 phase = -pi/4.
	if math.Abs(phase[1]+math.Pi/4) > 1e-12 {
		t.Fatalf("phase[1] = %v, want -pi/4", phase[1])
	}
}

func TestBinFrequency(t *testing.T) {
	if got := BinFrequency(512, 1024, 48000); got != 24000 {
		t.Fatalf("BinFrequency = %v, want 24000", got)
	}
}

func TestMagnitudeDB(t *testing.T) {
	db, err := MagnitudeDB([]float64{0.5, 0.5}, 8)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(db[0]) > 1e-12 {
		t.Fatalf("DC = %v dB, want 0", db[0])
	}

	// half the band: |H| = cos(pi/4)
	if want := 20 * math.Log10(math.Sqrt2/2); math.Abs(db[2]-want) > 1e-9 {
		t.Fatalf("fs/4 = %v dB, want %v", db[2], want)
	}

	if n := len(db) - 1; db[n] > -200 {
		t.Fatalf("Nyquist = %v dB, want a null", db[n])
	}
}
