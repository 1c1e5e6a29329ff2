//go:build fastmath

package saturate

import (
	"math"

	"github.com/meko-christian/algo-approx"
)

// dbToLinear computes 10^(db/20) as e^(db*ln(10)/20) using fast approximation.
func dbToLinear(db float64) float64 {
	return approx.FastExp(db * math.Ln10 / 20)
}
