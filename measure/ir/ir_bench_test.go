package ir

import "testing"

func BenchmarkAnalyze(b *testing.B) {
	response := exponentialTail(48000, 1.2, 3, 2400)
	a := NewAnalyzer(48000)

	for range b.N {
		if _, err := a.Analyze(response); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEnvelope(b *testing.B) {
	response := exponentialTail(48000, 1.2, 3, 0)

	for range b.N {
		_ = Envelope(response, 480)
	}
}
