package core

import "math"

const defaultEpsilon = 1e-12

// DenormalThreshold is the magnitude below which recursive stages flush
// their output to zero.
const DenormalThreshold = 3e-34

// MaxNormalizedCutoff is the largest normalized angular frequency accepted by
// the one-pole stages. It is the float64 immediately below pi.
var MaxNormalizedCutoff = math.Nextafter(math.Pi, 0)

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// Sanitize clamps value to [min, max] and maps NaN to min.
//
// Control inputs go through Sanitize so that the audio path never sees a
// value outside its documented range.
func Sanitize(value, min, max float64) float64 {
	if math.IsNaN(value) {
		if min > max {
			return max
		}
		return min
	}

	return Clamp(value, min, max)
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// FlushDenormals converts values with magnitude below DenormalThreshold to
// exact zero.
func FlushDenormals(x float64) float64 {
	if x > -DenormalThreshold && x < DenormalThreshold {
		return 0
	}

	return x
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// NormalizeFrequency converts a frequency in Hz to a normalized angular
// frequency 2*pi*f/fs in radians per sample.
func NormalizeFrequency(hz, sampleRate float64) float64 {
	if sampleRate <= 0 {
		return 0
	}

	return 2 * math.Pi * hz / sampleRate
}

// RoundToInt rounds half away from zero and converts to int.
func RoundToInt(x float64) int {
	return int(math.Round(x))
}
