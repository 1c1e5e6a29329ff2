package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-reverbz/dsp/core"
)

func ExampleSanitize() {
	fmt.Println(core.Sanitize(0.9, 0.15, 0.5))
	fmt.Println(core.Sanitize(-3, 0, 100))

	// Output:
	// 0.5
	// 0
}

func ExampleFlushDenormals() {
	fmt.Println(core.FlushDenormals(1e-40), core.FlushDenormals(0.125))

	// Output:
	// 0 0.125
}
