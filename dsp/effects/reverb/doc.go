// Package reverb implements a saturated plate reverb built on the classic
// figure-of-eight tank.
//
// The input passes a predelay, a one-pole lowpass and highpass and four
// series allpass diffusers. It then feeds two tank branches. Each branch runs
// a modulated allpass, a long delay, a soft clipper (arctangent on the first
// branch, hyperbolic tangent on the second), HF and LF damping, a diffusing
// allpass scaled by the decay and a second long delay. Each branch's output
// seeds the other branch on the next sample.
//
// In smoothed mode each branch gains two more allpasses after its second
// delay and the modulated allpasses sweep their read positions. The wet
// output then combines five taps per channel instead of three.
//
// Tap lengths are given at 29761 Hz and rescaled to the engine rate, so the
// character does not depend on the sample rate.
//
// Construction has two phases. NewPlan fixes the rate, the tap lengths and
// the memory footprint without touching sample memory. Plan.Initialize carves
// every buffer from an arena.Arena and returns the Engine, the only type
// with processing methods. New runs both phases with a right-sized arena.
//
//	e, err := reverb.New(48000, params.DefaultControls())
//	if err != nil {
//		return err
//	}
//	l, r := e.ProcessStereo(inL, inR)
package reverb
