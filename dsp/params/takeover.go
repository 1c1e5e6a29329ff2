package params

import (
	"math"

	"github.com/cwbudde/algo-reverbz/dsp/core"
)

// TakeoverThreshold is the distance a pot must move away from the stored
// position before it takes control.
const TakeoverThreshold = 0.025

// CombinePotCV adds a control voltage to a pot position and limits the sum
// to [0,1].
func CombinePotCV(pot, cv float64) float64 {
	return core.Sanitize(pot+cv, 0, 1)
}

// SoftTakeover returns current once it differs from stored by more than
// TakeoverThreshold, and stored otherwise.
func SoftTakeover(current, stored float64) float64 {
	if math.Abs(current-stored) > TakeoverThreshold {
		return current
	}

	return stored
}

// SoftTakeoverCV applies SoftTakeover to the pot and CV sum.
func SoftTakeoverCV(pot, cv, stored float64) float64 {
	return SoftTakeover(CombinePotCV(pot, cv), stored)
}
