package semantic

import (
	"fmt"
	"sort"

	"github.com/coreman2200/easelab/internal/compose"
	"github.com/coreman2200/easelab/internal/contextual"
	"github.com/coreman2200/easelab/internal/curve"
)

// TopCandidates is how many candidates survive into the blend.
const TopCandidates = 3

// Candidate is one base curve scored against a descriptor.
type Candidate struct {
	Name   string
	Curve  curve.Curve
	Weight float64
}

// candidateTable fixes the candidate order; earlier rows win ties.
var candidateTable = []struct {
	label  string
	curve  string
	weight func(c Characteristics) float64
}{
	{"fluid", curve.NameInOutSine, func(c Characteristics) float64 { return c.Fluidity }},
	{"heavy", curve.NameInOutBack, func(c Characteristics) float64 { return c.Weight }},
	{"elastic", curve.NameOutElastic, func(c Characteristics) float64 { return c.Elasticity }},
	{"simple", curve.NameInOutQuad, func(c Characteristics) float64 { return 1 - c.Complexity }},
	{"playful", curve.NameOutBounce, func(c Characteristics) float64 { return c.Playfulness }},
	{"mechanical", curve.NameLinear, func(c Characteristics) float64 { return 1 - c.Organicity }},
}

// Synthesizer turns movement profiles into curves. It is immutable after
// construction and safe for concurrent use.
type Synthesizer struct {
	curves []curve.Curve
}

// NewSynthesizer resolves the candidate curves from reg.
func NewSynthesizer(reg *curve.Registry) (*Synthesizer, error) {
	s := &Synthesizer{curves: make([]curve.Curve, len(candidateTable))}
	for i, row := range candidateTable {
		c, ok := reg.Get(row.curve)
		if !ok {
			return nil, fmt.Errorf("synthesizer: curve %q not in registry", row.curve)
		}
		s.curves[i] = c
	}
	return s, nil
}

// Candidates scores every candidate against c, in table order.
func (s *Synthesizer) Candidates(c Characteristics) []Candidate {
	out := make([]Candidate, len(candidateTable))
	for i, row := range candidateTable {
		out[i] = Candidate{Name: row.label, Curve: s.curves[i], Weight: row.weight(c)}
	}
	return out
}

// Select returns the TopCandidates highest-weighted candidates with their
// weights renormalized to sum to 1.
func (s *Synthesizer) Select(c Characteristics) []Candidate {
	cands := s.Candidates(c)
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].Weight > cands[j].Weight })
	top := cands[:TopCandidates]
	ws := make([]float64, len(top))
	for i, cd := range top {
		ws[i] = cd.Weight
	}
	ws = compose.NormalizeWeights(ws, len(top))
	for i := range top {
		top[i].Weight = ws[i]
	}
	return top
}

// Synthesize blends the top candidates for p into a single curve. The
// same profile always produces the same curve.
func (s *Synthesizer) Synthesize(p Profile) curve.Curve {
	top := s.Select(p.Characteristics)
	cs := make([]curve.Curve, len(top))
	ws := make([]float64, len(top))
	for i, cd := range top {
		cs[i] = cd.Curve
		ws[i] = cd.Weight
	}
	return compose.Blend(cs, ws)
}

// Contextual is Synthesize with the animation context taken into account.
// A heavy profile (weight > 0.6) swinging back and forth in an alternating
// animation carries inertia with mass weight*2 and friction
// (1-fluidity)/2. Otherwise an organic, weighted profile (organicity > 0.7
// and weight > 0.4) falls and bounces with gravity weight*15, bounce
// elasticity*0.7 and friction (1-fluidity)/2. Everything else uses the
// plain blend.
func (s *Synthesizer) Contextual(p Profile) contextual.Curve {
	c := p.Characteristics
	base := s.Synthesize(p)
	friction := (1 - c.Fluidity) * 0.5
	pendulum := contextual.Inertial(c.Weight*2, friction)
	physical := contextual.Physical(c.Weight*15, c.Elasticity*0.7, friction)
	heavy := c.Weight > 0.6
	organic := c.Organicity > 0.7 && c.Weight > 0.4
	return func(t float64, ctx *contextual.Context) float64 {
		if heavy && ctx != nil && ctx.Direction == contextual.Alternating {
			return pendulum(t, ctx)
		}
		if organic {
			return physical(t, ctx)
		}
		return base(t)
	}
}
