// Package params maps knob positions to the physical control values of the
// plate reverb and holds the rules that derive secondary coefficients from
// them.
//
// A host works with either Controls (milliseconds, Hz, dB, percent) or a
// Normalized vector of ten [0,1] knob positions. A Layout translates between
// the two through per-control Ranges, each with its own taper Curve.
// DefaultLayout reproduces the ranges of the hardware and plugin front ends.
//
// The soft-takeover helpers serve control surfaces whose pots are shared
// between parameter pages.
package params
