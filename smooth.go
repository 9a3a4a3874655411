package panzoom

import "math"

// ConvergenceAccuracy is the distance below which SmoothDamp snaps to its
// target. Every camera animation terminates through this snap.
const ConvergenceAccuracy = 0.001

// decayRate is -ln(ConvergenceAccuracy): after timeConstant seconds the
// remaining distance has decayed to ConvergenceAccuracy of its start.
var decayRate = -math.Log(ConvergenceAccuracy)

// SmoothDamp moves current toward target with critically-damped exponential
// decay. timeConstant is the time in seconds to close all but
// ConvergenceAccuracy of the gap; dt is the frame delta in seconds.
//
// The result is exactly target once |target-current| < ConvergenceAccuracy.
// The step fraction is capped at 1, so a long frame lands on the target
// instead of passing it.
func SmoothDamp(current, target, timeConstant, dt float64) float64 {
	if math.Abs(target-current) < ConvergenceAccuracy {
		return target
	}
	if timeConstant <= 0 {
		return target
	}
	k := dt * decayRate / timeConstant
	if k >= 1 {
		return target
	}
	return current + (target-current)*k
}

// Clamp restricts value to [lo, hi].
func Clamp(value, lo, hi float64) float64 {
	return math.Max(lo, math.Min(value, hi))
}
