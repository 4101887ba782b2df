package family

import (
	"errors"
	"fmt"
	"math"

	"github.com/coreman2200/easelab/internal/curve"
)

// ErrUnknownFamily is returned by New for names it does not recognise.
var ErrUnknownFamily = errors.New("unknown curve family")

// Family names accepted by New.
const (
	NameSpring     = "spring"
	NamePolynomial = "polynomial"
	NameElastic    = "elastic"
	NameSimulated  = "simulated"
)

// Names lists the families in a stable order.
func Names() []string {
	return []string{NameSpring, NamePolynomial, NameElastic, NameSimulated}
}

// New builds the named family from p.
func New(name string, p Params) (curve.Curve, error) {
	switch name {
	case NameSpring:
		return Spring(p), nil
	case NamePolynomial:
		return Polynomial(p), nil
	case NameElastic:
		return Elastic(p), nil
	case NameSimulated:
		return Simulated(p), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, name)
	}
}

// clampT clamps progress to [0,1]; NaN becomes 0.
func clampT(t float64) float64 {
	if math.IsNaN(t) {
		return 0
	}
	return curve.Clamp01(t)
}

// Spring is a damped sinusoid settling on 1:
//
//	1 - exp(-decay*t) * (cos(w*t) + decay*sin(w*t)/w)
//
// with w = oscillation*2π and decay = damping*5. Intensity scales the
// remaining distance to 1, anticipation dips below the start for t<0.3
// and followThrough bumps the end for t>0.8. The result is clamped to
// [0,1] and the endpoints are exact.
func Spring(p Params) curve.Curve {
	r := p.resolve(springDefaults)
	omega := r.oscillation * 2 * math.Pi
	decay := r.damping * 5
	return func(t float64) float64 {
		t = clampT(t)
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		osc := math.Cos(omega * t)
		if omega != 0 {
			osc += decay * math.Sin(omega*t) / omega
		} else {
			// sin(w*t)/w -> t as w -> 0
			osc += decay * t
		}
		v := 1 - math.Exp(-decay*t)*osc
		v = 1 - (1-v)*r.intensity
		if r.anticipation != 0 && t < 0.3 {
			v -= r.anticipation * 0.1 * math.Sin(math.Pi*t/0.3)
		}
		if r.followThrough != 0 && t > 0.8 {
			v += r.followThrough * 0.05 * math.Sin(math.Pi*(t-0.8)/0.2)
		}
		return curve.Clamp01(v)
	}
}

// Polynomial is a power curve with exponent 1+4*intensity. Symmetry above
// 0.5 fades in a mirror-symmetric in-out shape; at or below 0.5 the shape
// is chosen by the asymmetric selector shared with Elastic.
func Polynomial(p Params) curve.Curve {
	r := p.resolve(polynomialDefaults)
	n := 1 + 4*r.intensity
	in := func(t float64) float64 { return math.Pow(t, n) }
	out := func(t float64) float64 { return 1 - math.Pow(1-t, n) }
	inOut := func(t float64) float64 {
		if t < 0.5 {
			return math.Pow(2, n-1) * math.Pow(t, n)
		}
		return 1 - math.Pow(2-2*t, n)/2
	}
	s := r.symmetry
	return func(t float64) float64 {
		t = clampT(t)
		if s > 0.5 {
			w := math.Min((s-0.5)*2, 1)
			return (1-w)*t + w*inOut(t)
		}
		return asymmetric(t, s, in, out)
	}
}

// asymmetric blends linear with the ease-in shape by a = 1-2*symmetry
// when a > 0, otherwise with the ease-out shape by -a. Symmetry 0 is pure
// ease-in, 0.5 linear and 1 pure ease-out.
func asymmetric(t, symmetry float64, in, out func(float64) float64) float64 {
	a := math.Max(-1, math.Min(1, 1-symmetry*2))
	if a > 0 {
		return (1-a)*t + a*in(t)
	}
	return (1+a)*t - a*out(t)
}

// minElasticOscillation keeps at least one full cycle in an elastic curve.
const minElasticOscillation = 1.0

// Elastic is the classic damped elastic pair with period 1/oscillation,
// an exponential envelope whose rate is 20*damping (10 at the default) and
// overshoot as the amplitude multiplier. Symmetry below 0.5 blends the
// ease-in shape with linear, above 0.5 the ease-out shape.
func Elastic(p Params) curve.Curve {
	r := p.resolve(elasticDefaults)
	period := 1 / math.Max(r.oscillation, minElasticOscillation)
	k := 20 * r.damping
	amp := r.overshoot
	var shift float64
	if amp < 1 {
		amp = 1
		shift = period / 4
	} else {
		shift = period / (2 * math.Pi) * math.Asin(1/amp)
	}
	w := 2 * math.Pi / period

	out := func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return amp*math.Pow(2, -k*t)*math.Sin((t-shift)*w) + 1
	}
	in := func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return -(amp * math.Pow(2, k*(t-1)) * math.Sin((t-1-shift)*w))
	}
	s := r.symmetry
	return func(t float64) float64 {
		return asymmetric(clampT(t), s, in, out)
	}
}
