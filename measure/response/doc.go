// Package response computes the frequency response of a linear processor
// from its impulse response.
//
// The impulse response is zero-padded to a power-of-two FFT size and
// transformed with algo-fft; magnitudes are computed with algo-vecmath.
package response
