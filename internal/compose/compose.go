// Package compose combines existing curves into new ones: sequencing,
// blending and conditional dispatch.
package compose

import "github.com/coreman2200/easelab/internal/curve"

// Predicate selects a branch of a conditional curve.
type Predicate func(t float64) bool

// Branch pairs a predicate with the curve used when it matches.
type Branch struct {
	When  Predicate
	Curve curve.Curve
}

// Sequence plays curves one after another, each over its own slice of the
// progress domain sized by its normalized weight. Inside a slice, t is
// remapped to local [0,1] before evaluation. The last slice includes t=1.
// With no curves the result is the constant 0 curve.
func Sequence(curves []curve.Curve, weights []float64) curve.Curve {
	n := len(curves)
	if n == 0 {
		return curve.Zero
	}
	segs := Segments(NormalizeWeights(weights, n))
	cs := append([]curve.Curve(nil), curves...)
	last := n - 1
	return func(t float64) float64 {
		for i, s := range segs {
			if s.Weight <= 0 {
				continue
			}
			if t >= s.Offset && (t < s.End() || (i == last && t <= s.End())) {
				return cs[i](curve.Clamp01((t - s.Offset) / s.Weight))
			}
		}
		// Rounding can leave the summed ends a hair under 1, or t sits
		// outside the domain.
		if t >= 1 {
			for i := last; i >= 0; i-- {
				if segs[i].Weight > 0 {
					return cs[i](1)
				}
			}
		}
		if t < 0 {
			for i, s := range segs {
				if s.Weight > 0 {
					return cs[i](0)
				}
			}
		}
		return 0
	}
}

// Blend returns the weighted sum of curves. Every curve is evaluated on
// every call. With no curves the result is the constant 0 curve.
func Blend(curves []curve.Curve, weights []float64) curve.Curve {
	n := len(curves)
	if n == 0 {
		return curve.Zero
	}
	ws := NormalizeWeights(weights, n)
	cs := append([]curve.Curve(nil), curves...)
	return func(t float64) float64 {
		v := 0.0
		for i, c := range cs {
			v += ws[i] * c(t)
		}
		return v
	}
}

// Conditional evaluates branches in order and returns the output of the
// first whose predicate matches. If none match, t is returned unchanged.
func Conditional(branches ...Branch) curve.Curve {
	bs := make([]Branch, 0, len(branches))
	for _, b := range branches {
		if b.When != nil && b.Curve != nil {
			bs = append(bs, b)
		}
	}
	return func(t float64) float64 {
		for _, b := range bs {
			if b.When(t) {
				return b.Curve(t)
			}
		}
		return t
	}
}

// Below matches progress strictly less than x.
func Below(x float64) Predicate { return func(t float64) bool { return t < x } }

// Within matches progress in [lo, hi).
func Within(lo, hi float64) Predicate { return func(t float64) bool { return t >= lo && t < hi } }
