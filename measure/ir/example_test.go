package ir_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-reverbz/measure/ir"
)

func ExampleAnalyzer_Analyze() {
	// 100 ms of predelay followed by an exponential tail with RT60 = 0.5 s.
	sampleRate := 8000.0
	predelay := 800
	decayRate := 6.9078 / 0.5

	response := make([]float64, int(sampleRate*1.5))
	for i := predelay; i < len(response); i++ {
		response[i] = math.Exp(-decayRate * float64(i-predelay) / sampleRate)
	}

	m, err := ir.NewAnalyzer(sampleRate).Analyze(response)
	if err != nil {
		panic(err)
	}

	fmt.Printf("onset = %d\n", m.Onset)
	fmt.Printf("RT60  = %.2f s\n", m.RT60)
	fmt.Printf("EDT   = %.2f s\n", m.EDT)

	// Output:
	// onset = 800
	// RT60  = 0.50 s
	// EDT   = 0.50 s
}

func ExampleEnvelope() {
	response := []float64{1, -1, 0.5, -0.5, 0, 0, 0.25}

	for _, v := range ir.Envelope(response, 2) {
		fmt.Printf("%.3f ", v)
	}
	fmt.Println()

	// Output: 1.000 0.500 0.000 0.250
}

func ExampleTaps() {
	response := []float64{0, 0.9, 0.2, 0, -0.6, 0.1, 0.05, 0.3, 0}
	fmt.Println(ir.Taps(response, 0.1))

	// Output: [1 4 7]
}
