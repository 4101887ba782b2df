package curve

import "math"

// DefaultBezierTableSize is the number of x samples precomputed per Bezier
// curve.
const DefaultBezierTableSize = 1000

const (
	newtonIterations = 4
	newtonMinSlope   = 1e-3
	bisectPrecision  = 1e-7
	bisectMaxIter    = 20
)

// bezier is a CSS-style timing curve with P0=(0,0) and P3=(1,1). xs holds
// x(s) at evenly spaced s; it is read-only once built.
type bezier struct {
	x1, y1, x2, y2 float64
	xs             []float64
	step           float64
}

// Bezier returns a cubic-Bezier timing curve with control points
// (x1,y1) and (x2,y2), backed by a table of DefaultBezierTableSize entries.
func Bezier(x1, y1, x2, y2 float64) Curve {
	return BezierWithTable(DefaultBezierTableSize, x1, y1, x2, y2)
}

// BezierWithTable is Bezier with an explicit table size (minimum 2).
// x control points are clamped to [0,1] so x(s) stays monotonic.
func BezierWithTable(n int, x1, y1, x2, y2 float64) Curve {
	if n < 2 {
		n = 2
	}
	b := &bezier{x1: Clamp01(x1), y1: y1, x2: Clamp01(x2), y2: y2}
	if b.x1 == b.y1 && b.x2 == b.y2 {
		return Pinned(Linear)
	}
	b.step = 1 / float64(n-1)
	b.xs = make([]float64, n)
	for i := range b.xs {
		b.xs[i] = calc(float64(i)*b.step, b.x1, b.x2)
	}
	return Pinned(b.eval)
}

// calc evaluates one coordinate of the curve at parameter s, given the two
// inner control coordinates.
func calc(s, a1, a2 float64) float64 {
	u := 1 - s
	return 3*u*u*s*a1 + 3*u*s*s*a2 + s*s*s
}

func slope(s, a1, a2 float64) float64 {
	u := 1 - s
	return 3*u*u*a1 + 6*u*s*(a2-a1) + 3*s*s*(1-a2)
}

func (b *bezier) eval(x float64) float64 {
	return calc(b.paramForX(x), b.y1, b.y2)
}

// paramForX inverts x(s) using the table for an initial guess, then Newton
// steps, falling back to bisection where the slope is too flat.
func (b *bezier) paramForX(x float64) float64 {
	last := len(b.xs) - 1
	i := 0
	lo, hi := 0, last
	for lo <= hi {
		mid := (lo + hi) / 2
		if b.xs[mid] <= x {
			i = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	if i >= last {
		return 1
	}
	start := float64(i) * b.step
	span := b.xs[i+1] - b.xs[i]
	guess := start
	if span > 0 {
		guess += (x - b.xs[i]) / span * b.step
	}

	if d := slope(guess, b.x1, b.x2); d >= newtonMinSlope {
		s := guess
		for k := 0; k < newtonIterations; k++ {
			d = slope(s, b.x1, b.x2)
			if d == 0 {
				break
			}
			s -= (calc(s, b.x1, b.x2) - x) / d
		}
		return Clamp01(s)
	} else if d == 0 {
		return guess
	}
	return b.bisect(x, start, start+b.step)
}

func (b *bezier) bisect(x, lo, hi float64) float64 {
	s := lo
	for k := 0; k < bisectMaxIter; k++ {
		s = lo + (hi-lo)/2
		cur := calc(s, b.x1, b.x2) - x
		if math.Abs(cur) <= bisectPrecision {
			break
		}
		if cur > 0 {
			hi = s
		} else {
			lo = s
		}
	}
	return s
}
