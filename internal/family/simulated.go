package family

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/coreman2200/easelab/internal/curve"
)

// SimulatedSteps is the number of spring integration steps sampled into
// the lookup table of a Simulated curve.
const SimulatedSteps = 240

// Simulated steps a harmonica spring from 0 toward 1 over unit time and
// samples its position into a fixed table. Oscillation sets the angular
// frequency (cycles*2π) and damping the damping ratio, so values below 1
// ring and 1 settles without overshoot. Lookups
// interpolate linearly; endpoints are pinned to 0 and 1.
func Simulated(p Params) curve.Curve {
	r := p.resolve(elasticDefaults)
	dt := 1 / float64(SimulatedSteps)
	spring := harmonica.NewSpring(dt, r.oscillation*2*math.Pi, r.damping)

	table := make([]float64, SimulatedSteps+1)
	pos, vel := 0.0, 0.0
	for i := 1; i <= SimulatedSteps; i++ {
		pos, vel = spring.Update(pos, vel, 1)
		table[i] = pos
	}

	return curve.Pinned(func(t float64) float64 {
		x := clampT(t) * SimulatedSteps
		i := int(x)
		if i >= SimulatedSteps {
			return table[SimulatedSteps]
		}
		f := x - float64(i)
		return table[i] + (table[i+1]-table[i])*f
	})
}
