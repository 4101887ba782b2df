// Package semantic maps designer-facing descriptions of motion quality to
// concrete easing curves.
package semantic

// Characteristics is the 9-dimensional movement descriptor. Fields are
// conventionally in [0,1]; nothing enforces it.
type Characteristics struct {
	Fluidity       float64 `json:"fluidity" yaml:"fluidity"`
	Weight         float64 `json:"weight" yaml:"weight"`
	Elasticity     float64 `json:"elasticity" yaml:"elasticity"`
	Predictability float64 `json:"predictability" yaml:"predictability"`
	Complexity     float64 `json:"complexity" yaml:"complexity"`
	Energy         float64 `json:"energy" yaml:"energy"`
	Organicity     float64 `json:"organicity" yaml:"organicity"`
	Playfulness    float64 `json:"playfulness" yaml:"playfulness"`
	Aggression     float64 `json:"aggression" yaml:"aggression"`
}

// Partial is Characteristics with every field optional.
type Partial struct {
	Fluidity       *float64 `json:"fluidity,omitempty" yaml:"fluidity,omitempty"`
	Weight         *float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
	Elasticity     *float64 `json:"elasticity,omitempty" yaml:"elasticity,omitempty"`
	Predictability *float64 `json:"predictability,omitempty" yaml:"predictability,omitempty"`
	Complexity     *float64 `json:"complexity,omitempty" yaml:"complexity,omitempty"`
	Energy         *float64 `json:"energy,omitempty" yaml:"energy,omitempty"`
	Organicity     *float64 `json:"organicity,omitempty" yaml:"organicity,omitempty"`
	Playfulness    *float64 `json:"playfulness,omitempty" yaml:"playfulness,omitempty"`
	Aggression     *float64 `json:"aggression,omitempty" yaml:"aggression,omitempty"`
}

// DefaultValue fills every characteristic a profile leaves unset.
const DefaultValue = 0.5

// DefaultCharacteristics returns a vector with every field at DefaultValue.
func DefaultCharacteristics() Characteristics {
	return Characteristics{
		Fluidity: DefaultValue, Weight: DefaultValue, Elasticity: DefaultValue,
		Predictability: DefaultValue, Complexity: DefaultValue, Energy: DefaultValue,
		Organicity: DefaultValue, Playfulness: DefaultValue, Aggression: DefaultValue,
	}
}

// Overlay returns c with every set field of p copied over it.
func (c Characteristics) Overlay(p Partial) Characteristics {
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&c.Fluidity, p.Fluidity)
	set(&c.Weight, p.Weight)
	set(&c.Elasticity, p.Elasticity)
	set(&c.Predictability, p.Predictability)
	set(&c.Complexity, p.Complexity)
	set(&c.Energy, p.Energy)
	set(&c.Organicity, p.Organicity)
	set(&c.Playfulness, p.Playfulness)
	set(&c.Aggression, p.Aggression)
	return c
}

// Profile is a named, described movement descriptor. Treat it as a value;
// nothing in this package mutates one after construction.
type Profile struct {
	Name            string          `json:"name" yaml:"name"`
	Description     string          `json:"description" yaml:"description"`
	Characteristics Characteristics `json:"characteristics" yaml:"characteristics"`
}

// NewProfile overlays p onto the default vector.
func NewProfile(name, description string, p Partial) Profile {
	return Profile{
		Name:            name,
		Description:     description,
		Characteristics: DefaultCharacteristics().Overlay(p),
	}
}

func v(x float64) *float64 { return &x }
