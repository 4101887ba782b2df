// Package curve defines the easing curve type shared by every synthesis
// layer, plus the base catalog of classical closed-form curves.
//
// A Curve maps normalized progress to a shaping value. Curves hold no
// mutable state after construction and may be called concurrently.
package curve

import "math"

// Curve is a pure mapping from progress to value. Output is not confined
// to [0,1]; overshooting families leave it on purpose.
type Curve func(t float64) float64

// Clamp01 clamps x in [0,1]. NaN is passed through.
func Clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Linear is the identity curve.
func Linear(t float64) float64 { return t }

// Zero is the constant 0 curve, used for degenerate compositions.
func Zero(float64) float64 { return 0 }

// Pinned wraps c so that progress outside (0,1) maps exactly onto the
// endpoints: f(t<=0)=0 and f(t>=1)=1.
func Pinned(c Curve) Curve {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return c(t)
	}
}

// Reverse turns an ease-in into the matching ease-out: t -> 1-c(1-t).
func Reverse(c Curve) Curve {
	return func(t float64) float64 {
		return 1 - c(1-t)
	}
}

// Flip turns c upside down: t -> 1-c(t). The result runs from 1 to 0.
func Flip(c Curve) Curve {
	return func(t float64) float64 {
		return 1 - c(t)
	}
}

// Mirror builds an in-out curve from an ease-in: the first half runs c
// compressed, the second half its reverse.
func Mirror(c Curve) Curve {
	return func(t float64) float64 {
		if t < 0.5 {
			return c(2*t) / 2
		}
		return 1 - c(2-2*t)/2
	}
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
