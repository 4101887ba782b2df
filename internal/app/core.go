// Package app wires the curve catalog, semantic profiles and parametric
// families into one resolver for serialized curve specs.
package app

import (
	"errors"
	"fmt"

	"github.com/coreman2200/easelab/internal/compose"
	"github.com/coreman2200/easelab/internal/config"
	"github.com/coreman2200/easelab/internal/contextual"
	"github.com/coreman2200/easelab/internal/curve"
	"github.com/coreman2200/easelab/internal/family"
	"github.com/coreman2200/easelab/internal/semantic"
	"github.com/coreman2200/easelab/internal/sequence"
)

// ErrUnknownCurve is returned for catalog names and profiles that do not
// exist.
var ErrUnknownCurve = errors.New("unknown curve")

// Core bundles the curve catalog, the movement profiles and the
// synthesizer, and resolves serialized specs against them.
type Core struct {
	Curves   *curve.Registry
	Profiles *semantic.Catalog
	Synth    *semantic.Synthesizer

	bezierTable int
}

var _ sequence.Resolver = (*Core)(nil)

// InitCore builds a Core from cfg. A nil cfg uses config.Default().
func InitCore(cfg *config.Config) (*Core, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	reg := curve.Default()
	synth, err := semantic.NewSynthesizer(reg)
	if err != nil {
		return nil, err
	}
	profiles := semantic.Builtin()
	if cfg.ProfilesPath != "" {
		if profiles, err = semantic.LoadCatalog(cfg.ProfilesPath); err != nil {
			return nil, fmt.Errorf("profiles: %w", err)
		}
	}
	table := cfg.BezierTableSize
	if table <= 0 {
		table = curve.DefaultBezierTableSize
	}
	return &Core{Curves: reg, Profiles: profiles, Synth: synth, bezierTable: table}, nil
}

// Named implements sequence.Resolver.
func (c *Core) Named(name string) (curve.Curve, bool) { return c.Curves.Get(name) }

// Resolve implements sequence.Resolver. An empty spec is linear.
func (c *Core) Resolve(s sequence.Spec) (contextual.Curve, error) {
	switch s.Contextual {
	case "":
		pc, err := c.Plain(s)
		if err != nil {
			return nil, err
		}
		return contextual.Lift(pc), nil
	case "directional":
		fwd := curve.Curve(curve.Linear)
		if s.Of != nil {
			var err error
			if fwd, err = c.Plain(*s.Of); err != nil {
				return nil, fmt.Errorf("directional forward: %w", err)
			}
		}
		bwd := curve.Reverse(fwd)
		if s.Backward != nil {
			var err error
			if bwd, err = c.Plain(*s.Backward); err != nil {
				return nil, fmt.Errorf("directional backward: %w", err)
			}
		}
		return contextual.Directional(fwd, bwd), nil
	case "inertial":
		return contextual.Inertial(or(s.Mass, contextual.DefaultMass), or(s.Friction, contextual.DefaultFriction)), nil
	case "energy":
		return s.Energy().Curve(), nil
	case "physical":
		return contextual.Physical(
			or(s.Gravity, contextual.DefaultGravity),
			or(s.Bounce, contextual.DefaultBounce),
			or(s.Friction, contextual.DefaultPhysicalFriction),
		), nil
	case "semantic":
		p, ok := c.Profiles.Get(s.Profile)
		if !ok {
			return nil, fmt.Errorf("%w: profile %q", ErrUnknownCurve, s.Profile)
		}
		return c.Synth.Contextual(p), nil
	default:
		return nil, fmt.Errorf("%w: contextual %q", ErrUnknownCurve, s.Contextual)
	}
}

// Plain resolves a spec that does not depend on animation context.
func (c *Core) Plain(s sequence.Spec) (curve.Curve, error) {
	if s.Flip {
		s.Flip = false
		pc, err := c.Plain(s)
		if err != nil {
			return nil, err
		}
		return curve.Flip(pc), nil
	}
	switch {
	case s.Contextual != "":
		return nil, fmt.Errorf("contextual %q used where a plain curve is required", s.Contextual)
	case len(s.Sequence) > 0:
		cs, err := c.plainAll(s.Sequence)
		if err != nil {
			return nil, fmt.Errorf("sequence: %w", err)
		}
		return compose.Sequence(cs, s.Weights), nil
	case len(s.Blend) > 0:
		cs, err := c.plainAll(s.Blend)
		if err != nil {
			return nil, fmt.Errorf("blend: %w", err)
		}
		return compose.Blend(cs, s.Weights), nil
	case s.Profile != "":
		p, ok := c.Profiles.Get(s.Profile)
		if !ok {
			return nil, fmt.Errorf("%w: profile %q", ErrUnknownCurve, s.Profile)
		}
		return c.Synth.Synthesize(p), nil
	case s.Family != "":
		return family.New(s.Family, s.Params)
	case s.Bezier != nil:
		if len(s.Bezier) != 4 {
			return nil, fmt.Errorf("bezier needs 4 control values, got %d", len(s.Bezier))
		}
		b := s.Bezier
		return curve.BezierWithTable(c.bezierTable, b[0], b[1], b[2], b[3]), nil
	case s.Name != "":
		cv, ok := c.Curves.Get(s.Name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCurve, s.Name)
		}
		return cv, nil
	default:
		return curve.Linear, nil
	}
}

func (c *Core) plainAll(specs []sequence.Spec) ([]curve.Curve, error) {
	out := make([]curve.Curve, len(specs))
	for i, s := range specs {
		cv, err := c.Plain(s)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out[i] = cv
	}
	return out, nil
}

func or(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
