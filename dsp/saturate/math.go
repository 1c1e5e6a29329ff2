//go:build !fastmath

package saturate

import "github.com/cwbudde/algo-reverbz/dsp/core"

func dbToLinear(db float64) float64 {
	return core.DBToLinear(db)
}
