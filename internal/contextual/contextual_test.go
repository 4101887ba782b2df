package contextual

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/easelab/internal/curve"
)

func TestDirectionalBackwardNeverCallsForward(t *testing.T) {
	forwardCalls := 0
	f := func(x float64) float64 { forwardCalls++; return x }
	g := func(x float64) float64 { return 1 - x }
	c := Directional(f, g)
	ctx := &Context{Direction: Backward}
	for x := 0.0; x <= 1.0; x += 0.01 {
		assert.InDelta(t, 1-x, c(x, ctx), 1e-12)
	}
	assert.Zero(t, forwardCalls)
}

func TestDirectionalAlternating(t *testing.T) {
	c := Directional(func(float64) float64 { return 1 }, func(float64) float64 { return -1 })
	for i := 0; i < 6; i++ {
		want := 1.0
		if i%2 == 1 {
			want = -1
		}
		assert.Equal(t, want, c(0.5, &Context{Direction: Alternating, Iteration: i}))
	}
	assert.Equal(t, 1.0, c(0.5, nil))
	assert.Equal(t, 1.0, c(0.5, &Context{Direction: Forward, Iteration: 3}))
}

func TestDirectionUnmarshal(t *testing.T) {
	var ctx Context
	require.NoError(t, json.Unmarshal([]byte(`{"direction":"alternating","iteration":2}`), &ctx))
	assert.Equal(t, Alternating, ctx.Direction)
	assert.Equal(t, 2, ctx.Iteration)

	var d Direction
	assert.Error(t, json.Unmarshal([]byte(`"sideways"`), &d))
	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	assert.Equal(t, Forward, d)
}

func TestInertial(t *testing.T) {
	c := Inertial(DefaultMass, DefaultFriction)

	// first sample: no kinematics yet
	assert.InDelta(t, 0.75, c(0.5, nil), 1e-12)
	assert.InDelta(t, 0.75, c(0.5, &Context{Velocity: Float(2)}), 1e-12)

	ctx := &Context{PreviousValue: Float(0.6), Velocity: Float(1)}
	assert.InDelta(t, 0.75+1*0.7*0.16, c(0.5, ctx), 1e-12)

	ctx.Resistance = Float(0.5)
	assert.InDelta(t, 0.75+1*0.5*0.16, c(0.5, ctx), 1e-12)

	ctx.Resistance = Float(5)
	assert.InDelta(t, 0.75, c(0.5, ctx), 1e-12)

	fast := &Context{PreviousValue: Float(0.9), Velocity: Float(10)}
	assert.Equal(t, 1.0, c(0.9, fast))

	massless := Inertial(0, 0.3)
	assert.InDelta(t, 0.75, massless(0.5, &Context{PreviousValue: Float(0), Velocity: Float(3)}), 1e-12)
}

func TestCurvesDoNotMutateContext(t *testing.T) {
	ctx := &Context{
		Direction: Alternating, Iteration: 3,
		PreviousValue: Float(0.2), Velocity: Float(0.5), Energy: Float(0.4),
		Gravity: Float(2), Resistance: Float(0.1),
	}
	before := ctx.Clone()
	curves := []Curve{
		Directional(curve.Linear, curve.Linear),
		Inertial(1, 0.3),
		EnergyAdaptive(0.1, 0.05),
		Physical(1, 0.5, 0.1),
		Lift(curve.Linear),
	}
	for _, c := range curves {
		for x := 0.0; x <= 1.0; x += 0.1 {
			c(x, ctx)
		}
	}
	assert.Equal(t, before, ctx)
}

func TestEnergyAdaptive(t *testing.T) {
	c := EnergyAdaptive(DefaultDepletion, DefaultRecovery)
	assert.InDelta(t, 0.75, c(0.5, nil), 1e-12)
	assert.Equal(t, 1.0, c(1, nil))

	tired := c(0.5, &Context{Energy: Float(0)})
	assert.InDelta(t, 1-0.75*0.75, tired, 1e-12)
	assert.Less(t, tired, c(0.5, nil))
	// empty tank never finishes the move
	assert.InDelta(t, 0.75, c(1, &Context{Energy: Float(0)}), 1e-12)
}

func TestEnergyModelNext(t *testing.T) {
	m := EnergyModel{Depletion: 0.2, Recovery: 0.5}
	assert.InDelta(t, 0.9, m.Next(1), 1e-12) // 0.8 + 0.5*0.2
	e := 1.0
	for i := 0; i < 50; i++ {
		e = m.Next(e)
		assert.GreaterOrEqual(t, e, 0.0)
		assert.LessOrEqual(t, e, 1.0)
	}
	// fixed point of e = (e-d) + r(1-e+d): e = 1 - d(1-r)/r
	assert.InDelta(t, 1-0.2*0.5/0.5, e, 1e-6)

	drain := EnergyModel{Depletion: 0.5}
	assert.Equal(t, 0.0, drain.Next(drain.Next(drain.Next(1))))
}

func TestPhysical(t *testing.T) {
	c := Physical(DefaultGravity, DefaultBounce, DefaultPhysicalFriction)
	assert.Equal(t, 0.0, c(0, nil))
	assert.InDelta(t, 2*0.3*0.3, c(0.3, nil), 1e-12)
	assert.Equal(t, 1.0, c(1, nil))

	// peak rebound at t=0.75
	first := c(0.75, &Context{Iteration: 1})
	assert.Equal(t, first, c(0.75, nil))
	third := c(0.75, &Context{Iteration: 3})
	assert.Greater(t, third, first)

	// gravity does not change the shape
	assert.Equal(t, first, c(0.75, &Context{Iteration: 1, Gravity: Float(2)}))
	assert.Equal(t, first, Physical(1, DefaultBounce, DefaultPhysicalFriction)(0.75, nil))

	for x := 0.0; x <= 1.0; x += 0.01 {
		assert.False(t, math.IsNaN(c(x, nil)))
	}
}

func TestPhysicalReferenceValues(t *testing.T) {
	c := Physical(DefaultGravity, DefaultBounce, DefaultPhysicalFriction)
	cases := []struct {
		name string
		t    float64
		ctx  *Context
		want float64
	}{
		{"fall", 0.25, nil, 0.125},
		{"peak, first bounce", 0.75, nil, 1 - 0.3*0.8},
		{"peak, second bounce", 0.75, &Context{Iteration: 2}, 1 - 0.09*0.8},
		{"resistance overrides friction", 0.75, &Context{Iteration: 1, Resistance: Float(0.5)}, 0.85},
		{"quarter of the rebound", 0.625, nil, 1 - math.Sin(math.Pi/4)*0.3*0.8},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, c(tc.t, tc.ctx), 1e-12)
		})
	}
	assert.Equal(t, 0.3, DefaultBounce)
	assert.Equal(t, 0.2, DefaultPhysicalFriction)
	assert.Equal(t, 9.8, DefaultGravity)
}

func TestLiftIgnoresContext(t *testing.T) {
	sq := Lift(func(x float64) float64 { return x * x })
	assert.Equal(t, 0.25, sq(0.5, nil))
	assert.Equal(t, 0.25, sq(0.5, &Context{Direction: Backward}))
}

func TestCloneNil(t *testing.T) {
	var c *Context
	assert.Equal(t, &Context{}, c.Clone())
}
