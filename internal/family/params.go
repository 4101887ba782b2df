// Package family synthesizes easing curves from continuous, physically
// flavoured parameters instead of picking from a fixed catalog.
package family

import (
	"math"

	"github.com/coreman2200/easelab/internal/curve"
)

// Params is the shared parameter vocabulary. Every field is optional; nil
// means "use the family default". Not every family reads every field.
type Params struct {
	Intensity     *float64 `json:"intensity,omitempty" yaml:"intensity,omitempty"`         // 0..1, overall strength
	Overshoot     *float64 `json:"overshoot,omitempty" yaml:"overshoot,omitempty"`         // >=0, amplitude past target
	Oscillation   *float64 `json:"oscillation,omitempty" yaml:"oscillation,omitempty"`     // >=0, cycles over the curve
	Damping       *float64 `json:"damping,omitempty" yaml:"damping,omitempty"`             // 0..1, decay of oscillation
	Symmetry      *float64 `json:"symmetry,omitempty" yaml:"symmetry,omitempty"`           // 0..1, in/out/in-out balance
	Smoothness    *float64 `json:"smoothness,omitempty" yaml:"smoothness,omitempty"`       // 0..1, reserved
	Anticipation  *float64 `json:"anticipation,omitempty" yaml:"anticipation,omitempty"`   // 0..1, dip near t=0
	FollowThrough *float64 `json:"followThrough,omitempty" yaml:"followThrough,omitempty"` // 0..1, bump near t=1
}

// Float returns a pointer to v, for filling Params literals.
func Float(v float64) *float64 { return &v }

// Family defaults.
const (
	DefaultIntensity  = 0.5
	DefaultDamping    = 0.5
	DefaultSmoothness = 0.5

	DefaultSpringOscillation = 3.0
	DefaultSpringOvershoot   = 1.70158

	DefaultPolynomialSymmetry = 0.5

	DefaultElasticOscillation = 3.0
	DefaultElasticOvershoot   = 1.5
	DefaultElasticSymmetry    = 0.0
)

// defaults are the per-family values for the fields whose default
// differs between families.
type defaults struct {
	oscillation, overshoot, symmetry float64
}

var (
	springDefaults     = defaults{DefaultSpringOscillation, DefaultSpringOvershoot, DefaultPolynomialSymmetry}
	polynomialDefaults = defaults{0, 0, DefaultPolynomialSymmetry}
	elasticDefaults    = defaults{DefaultElasticOscillation, DefaultElasticOvershoot, DefaultElasticSymmetry}
)

// resolved is Params with every default applied and every field clamped
// to its range.
type resolved struct {
	intensity, overshoot, oscillation, damping float64
	symmetry, smoothness                       float64
	anticipation, followThrough                float64
}

func or(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// unit clamps to [0,1]; NaN becomes 0.
func unit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return curve.Clamp01(v)
}

// nonNegative clamps to [0,+Inf); NaN becomes 0.
func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

func (p Params) resolve(d defaults) resolved {
	return resolved{
		intensity:     unit(or(p.Intensity, DefaultIntensity)),
		overshoot:     nonNegative(or(p.Overshoot, d.overshoot)),
		oscillation:   nonNegative(or(p.Oscillation, d.oscillation)),
		damping:       unit(or(p.Damping, DefaultDamping)),
		symmetry:      unit(or(p.Symmetry, d.symmetry)),
		smoothness:    unit(or(p.Smoothness, DefaultSmoothness)),
		anticipation:  or(p.Anticipation, 0),
		followThrough: or(p.FollowThrough, 0),
	}
}
