// Package ir analyzes rendered reverb impulse responses.
//
// Tail helpers work on raw sample slices:
//
//   - Onset: first sample above a threshold (predelay plus network latency)
//   - Envelope: windowed RMS of the tail
//   - Taps: positions of distinguishable echoes
//
// Analyzer derives decay metrics from the Schroeder backward integral of the
// squared response, measured from the onset:
//
//   - EDT: early decay time (0 to -10 dB, extrapolated to -60 dB)
//   - T20, T30: decay time from the -5 to -25 dB and -5 to -35 dB slopes
//   - RT60: T30 when available, T20 otherwise
//
// # Usage
//
//	m, err := ir.NewAnalyzer(48000).Analyze(left)
//	fmt.Printf("onset %d, RT60 %.2f s\n", m.Onset, m.RT60)
package ir
