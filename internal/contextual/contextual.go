package contextual

import (
	"math"

	"github.com/fogleman/ease"

	"github.com/coreman2200/easelab/internal/curve"
)

// Curve is a curve that also reads animation state. A nil context is the
// zero context: forward, first iteration, no kinematics.
type Curve func(t float64, ctx *Context) float64

// Lift adapts a plain curve; the context is ignored.
func Lift(c curve.Curve) Curve {
	return func(t float64, _ *Context) float64 { return c(t) }
}

// Defaults for the parameterised contextual curves.
const (
	DefaultMass      = 1.0
	DefaultFriction  = 0.3
	DefaultDepletion = 0.1
	DefaultRecovery  = 0.05
	DefaultGravity   = 9.8
	DefaultBounce    = 0.3
	// DefaultPhysicalFriction is the friction Physical uses when the
	// caller has none.
	DefaultPhysicalFriction = 0.2
)

// inertiaGain converts velocity into a progress offset.
const inertiaGain = 0.16

func clampT(t float64) float64 {
	if math.IsNaN(t) {
		return 0
	}
	return curve.Clamp01(t)
}

// Directional picks forward or backward by ctx.Direction. Alternating uses
// forward on even iterations and backward on odd ones.
func Directional(forward, backward curve.Curve) Curve {
	return func(t float64, ctx *Context) float64 {
		c := orZero(ctx)
		switch c.Direction {
		case Backward:
			return backward(t)
		case Alternating:
			if c.Iteration%2 == 0 {
				return forward(t)
			}
			return backward(t)
		default:
			return forward(t)
		}
	}
}

// Inertial eases out quadratically and carries over the driver's velocity.
// Without both PreviousValue and Velocity in the context the base value is
// returned as is. ctx.Resistance overrides friction.
func Inertial(mass, friction float64) Curve {
	return func(t float64, ctx *Context) float64 {
		t = clampT(t)
		base := ease.OutQuad(t)
		c := orZero(ctx)
		if c.PreviousValue == nil || c.Velocity == nil {
			return base
		}
		resistance := friction
		if c.Resistance != nil {
			resistance = *c.Resistance
		}
		factor := 0.0
		if mass > 0 {
			factor = math.Max(0, 1-resistance/mass)
		}
		return curve.Clamp01(base + *c.Velocity*factor*inertiaGain)
	}
}

// EnergyModel describes how energy drains and recovers across iterations.
type EnergyModel struct {
	Depletion float64 `json:"depletion" yaml:"depletion"`
	Recovery  float64 `json:"recovery" yaml:"recovery"`
}

// EnergyAdaptive scales progress by 0.5+0.5*energy before an ease-out
// quad, so a tired animation lags behind. Energy defaults to 1.
func EnergyAdaptive(depletion, recovery float64) Curve {
	return EnergyModel{Depletion: depletion, Recovery: recovery}.Curve()
}

// Curve returns the energy-adaptive curve. The model's rates do not change
// a single sample; they only feed Next.
func (m EnergyModel) Curve() Curve {
	return func(t float64, ctx *Context) float64 {
		t = clampT(t)
		energy := 1.0
		if c := orZero(ctx); c.Energy != nil {
			energy = *c.Energy
		}
		return ease.OutQuad(t * (0.5 + 0.5*energy))
	}
}

// Next is the energy after one completed iteration: drain Depletion, then
// win back Recovery of whatever is missing. The result is in [0,1].
func (m EnergyModel) Next(energy float64) float64 {
	e := curve.Clamp01(energy) - m.Depletion
	e += m.Recovery * (1 - e)
	return curve.Clamp01(e)
}

// Physical falls quadratically (2t²) for the first half and then rebounds:
// the rebound is a half sine damped by bounce^iteration and reduced by
// (1-friction), subtracted from 1. ctx.Resistance overrides friction and
// iterations below 1 count as 1. Gravity is carried for callers that
// report it (ctx.Gravity overrides it) but does not change the shape.
func Physical(gravity, bounce, friction float64) Curve {
	return func(t float64, ctx *Context) float64 {
		t = clampT(t)
		if t >= 1 {
			return 1
		}
		if t < 0.5 {
			return 2 * t * t
		}
		c := orZero(ctx)
		f := friction
		if c.Resistance != nil {
			f = *c.Resistance
		}
		iter := c.Iteration
		if iter < 1 {
			iter = 1
		}
		phase := (t - 0.5) * 2
		height := math.Sin(math.Pi*phase) * math.Pow(bounce, float64(iter))
		return 1 - height*(1-f)
	}
}
