package semantic

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Catalog holds named profiles.
type Catalog struct{ m map[string]Profile }

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog { return &Catalog{m: map[string]Profile{}} }

// Add stores p under its name, replacing any previous entry.
func (c *Catalog) Add(p Profile) {
	if p.Name == "" {
		return
	}
	c.m[p.Name] = p
}

// Get looks a profile up by name.
func (c *Catalog) Get(name string) (Profile, bool) { p, ok := c.m[name]; return p, ok }

// List returns the profile names, sorted.
func (c *Catalog) List() []string {
	out := make([]string, 0, len(c.m))
	for k := range c.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Builtin returns a catalog seeded with the stock profiles: the seven
// classic styles (natural, mechanical, playful, liquid, aggressive,
// robotic, ethereal) plus a few scene-oriented extras.
func Builtin() *Catalog {
	c := NewCatalog()
	for _, p := range []Profile{
		NewProfile("natural", "Organic motion with small nuances and variation", Partial{
			Fluidity: v(0.8), Weight: v(0.6), Elasticity: v(0.4), Predictability: v(0.7),
			Complexity: v(0.5), Energy: v(0.6), Organicity: v(0.9), Playfulness: v(0.3), Aggression: v(0.2),
		}),
		NewProfile("mechanical", "Crisp, exact motion with a fixed rhythm", Partial{
			Fluidity: v(0.3), Weight: v(0.7), Elasticity: v(0.2), Predictability: v(0.9),
			Complexity: v(0.3), Energy: v(0.5), Organicity: v(0.1), Playfulness: v(0.1), Aggression: v(0.3),
		}),
		NewProfile("playful", "Lively, unpredictable and bouncy", Partial{
			Fluidity: v(0.7), Weight: v(0.3), Elasticity: v(0.8), Predictability: v(0.3),
			Complexity: v(0.7), Energy: v(0.9), Organicity: v(0.7), Playfulness: v(0.95), Aggression: v(0.4),
		}),
		NewProfile("liquid", "Smooth, flowing motion with little resistance", Partial{
			Fluidity: v(0.95), Weight: v(0.4), Elasticity: v(0.5), Predictability: v(0.6),
			Complexity: v(0.4), Energy: v(0.4), Organicity: v(0.8), Playfulness: v(0.3), Aggression: v(0.1),
		}),
		NewProfile("aggressive", "Sharp, intense and hard to predict", Partial{
			Fluidity: v(0.3), Weight: v(0.7), Elasticity: v(0.5), Predictability: v(0.2),
			Complexity: v(0.6), Energy: v(0.9), Organicity: v(0.4), Playfulness: v(0.2), Aggression: v(0.9),
		}),
		NewProfile("robotic", "Segmented motion with clear stops between moves", Partial{
			Fluidity: v(0.1), Weight: v(0.6), Elasticity: v(0.1), Predictability: v(0.8),
			Complexity: v(0.5), Energy: v(0.6), Organicity: v(0), Playfulness: v(0.1), Aggression: v(0.3),
		}),
		NewProfile("ethereal", "Light and airy, almost weightless", Partial{
			Fluidity: v(0.9), Weight: v(0.1), Elasticity: v(0.7), Predictability: v(0.5),
			Complexity: v(0.6), Energy: v(0.4), Organicity: v(0.7), Playfulness: v(0.5), Aggression: v(0),
		}),

		NewProfile("underwater", "Slow, heavy and dampened, as if moving through liquid", Partial{
			Fluidity: v(0.95), Weight: v(0.8), Elasticity: v(0.1), Predictability: v(0.8),
			Complexity: v(0.2), Energy: v(0.2), Organicity: v(0.8), Playfulness: v(0.1), Aggression: v(0.05),
		}),
		NewProfile("heavy", "Massive object that winds up and settles", Partial{
			Fluidity: v(0.4), Weight: v(0.95), Elasticity: v(0.2), Predictability: v(0.7),
			Complexity: v(0.4), Energy: v(0.3), Organicity: v(0.5), Playfulness: v(0.1), Aggression: v(0.4),
		}),
		NewProfile("energetic", "Fast and springy with visible overshoot", Partial{
			Fluidity: v(0.5), Weight: v(0.2), Elasticity: v(0.9), Predictability: v(0.4),
			Complexity: v(0.5), Energy: v(0.95), Organicity: v(0.6), Playfulness: v(0.6), Aggression: v(0.5),
		}),
		NewProfile("gentle", "Soft, simple and calm", Partial{
			Fluidity: v(0.9), Weight: v(0.3), Elasticity: v(0.1), Predictability: v(0.9),
			Complexity: v(0.1), Energy: v(0.3), Organicity: v(0.7), Playfulness: v(0.2), Aggression: v(0),
		}),
		NewProfile("elastic", "Rubber-band motion that rings at the end", Partial{
			Fluidity: v(0.5), Weight: v(0.3), Elasticity: v(1), Predictability: v(0.3),
			Complexity: v(0.7), Energy: v(0.7), Organicity: v(0.6), Playfulness: v(0.7), Aggression: v(0.3),
		}),
	} {
		c.Add(p)
	}
	return c
}

// profileFile is the on-disk YAML shape: a list of partial profiles.
type profileFile struct {
	Profiles []struct {
		Name            string  `yaml:"name"`
		Description     string  `yaml:"description"`
		Characteristics Partial `yaml:"characteristics"`
	} `yaml:"profiles"`
}

// Parse adds the profiles described by a YAML document to c. Unset
// characteristics default to DefaultValue.
func (c *Catalog) Parse(b []byte) error {
	var f profileFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("parse profiles: %w", err)
	}
	for i, p := range f.Profiles {
		if p.Name == "" {
			return fmt.Errorf("parse profiles: entry %d has no name", i)
		}
		c.Add(NewProfile(p.Name, p.Description, p.Characteristics))
	}
	return nil
}

// LoadCatalog returns the built-in catalog extended by the profiles in
// the YAML file at path.
func LoadCatalog(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Builtin()
	if err := c.Parse(b); err != nil {
		return nil, err
	}
	return c, nil
}
