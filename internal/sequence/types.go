package sequence

import (
	"errors"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/coreman2200/easelab/internal/contextual"
	"github.com/coreman2200/easelab/internal/curve"
	"github.com/coreman2200/easelab/internal/family"
)

// ErrNoClips is returned when loading an empty program.
var ErrNoClips = errors.New("program has no clips")

// Keyframe represents a value at time T (seconds) with an easing curve
// that applies to the segment starting at this keyframe.
type Keyframe struct {
	T    float64 `json:"t" yaml:"t"`
	V    float64 `json:"v" yaml:"v"`
	Ease string  `json:"ease,omitempty" yaml:"ease,omitempty"` // registry name, "" is linear
}

// Envelope is a sorted list of keyframes; Eval(t) interpolates a value.
type Envelope struct {
	Keys []Keyframe `json:"keys" yaml:"keys"`

	eases []curve.Curve // resolved per key by Resolve
}

// Spec selects a curve in serializable form. Exactly one of the selector
// groups should be set; Resolve checks them in the order listed.
type Spec struct {
	// Contextual wraps other specs: "directional" uses Of and Backward,
	// "semantic" uses Profile, and "inertial", "energy" and "physical" use
	// the numeric fields below.
	Contextual string `json:"contextual,omitempty" yaml:"contextual,omitempty"`
	Of         *Spec  `json:"of,omitempty" yaml:"of,omitempty"`
	Backward   *Spec  `json:"backward,omitempty" yaml:"backward,omitempty"`

	Mass      *float64 `json:"mass,omitempty" yaml:"mass,omitempty"`
	Friction  *float64 `json:"friction,omitempty" yaml:"friction,omitempty"`
	Depletion *float64 `json:"depletion,omitempty" yaml:"depletion,omitempty"`
	Recovery  *float64 `json:"recovery,omitempty" yaml:"recovery,omitempty"`
	Gravity   *float64 `json:"gravity,omitempty" yaml:"gravity,omitempty"`
	Bounce    *float64 `json:"bounce,omitempty" yaml:"bounce,omitempty"`

	// Composition of plain curves.
	Sequence []Spec    `json:"sequence,omitempty" yaml:"sequence,omitempty"`
	Blend    []Spec    `json:"blend,omitempty" yaml:"blend,omitempty"`
	Weights  []float64 `json:"weights,omitempty" yaml:"weights,omitempty"`

	Profile string        `json:"profile,omitempty" yaml:"profile,omitempty"`
	Family  string        `json:"family,omitempty" yaml:"family,omitempty"`
	Params  family.Params `json:"params,omitempty" yaml:"params,omitempty"`
	Bezier  []float64     `json:"bezier,omitempty" yaml:"bezier,omitempty"` // x1 y1 x2 y2
	Name    string        `json:"name,omitempty" yaml:"name,omitempty"`

	// Flip turns the resolved plain curve upside down (1 - f(t)).
	Flip bool `json:"flip,omitempty" yaml:"flip,omitempty"`
}

// Energy returns the energy model of an "energy" spec, or nil.
func (s Spec) Energy() *contextual.EnergyModel {
	if s.Contextual != "energy" {
		return nil
	}
	m := contextual.EnergyModel{Depletion: contextual.DefaultDepletion, Recovery: contextual.DefaultRecovery}
	if s.Depletion != nil {
		m.Depletion = *s.Depletion
	}
	if s.Recovery != nil {
		m.Recovery = *s.Recovery
	}
	return &m
}

// Resolver turns specs and keyframe ease names into curves.
type Resolver interface {
	Resolve(s Spec) (contextual.Curve, error)
	Named(name string) (curve.Curve, bool)
}

// Clip animates one property from From to To over DurationS seconds,
// Repeat times, shaped by Ease. FromColor/ToColor make it a colour clip.
type Clip struct {
	Name      string               `json:"name"`
	Property  string               `json:"property"`
	From      float64              `json:"from"`
	To        float64              `json:"to"`
	FromColor string               `json:"fromColor,omitempty"`
	ToColor   string               `json:"toColor,omitempty"`
	DurationS float64              `json:"durationS"`
	Repeat    int                  `json:"repeat,omitempty"` // iterations, <=0 means 1
	Direction contextual.Direction `json:"direction,omitempty"`
	Ease      Spec                 `json:"ease"`
	Params    map[string]Envelope  `json:"params,omitempty"` // side parameters over clip time
}

// Program is a full sequence of clips.
type Program struct {
	Version string `json:"version"` // e.g., "seq.v1"
	Loop    bool   `json:"loop,omitempty"`
	Clips   []Clip `json:"clips"`
}

// PlayerState enumerates sequencer states.
type PlayerState string

const (
	Idle    PlayerState = "idle"
	Running PlayerState = "running"
	Paused  PlayerState = "paused"
)

// Hooks are dependency-injected callbacks into whatever owns the animated
// properties.
type Hooks struct {
	SetParam func(name string, v float64)
	SetColor func(name string, c colorful.Color)
	// OnClip fires when a clip becomes active.
	OnClip func(name string)
	// OnDone fires when a non-looping program runs out.
	OnDone func()
}

// loadedClip is a Clip with its curve and colours resolved.
type loadedClip struct {
	Clip
	curve    contextual.Curve
	energy   *contextual.EnergyModel
	color    bool
	from, to colorful.Color
}

func (c *loadedClip) repeats() int {
	if c.Repeat <= 0 {
		return 1
	}
	return c.Repeat
}

func (c *loadedClip) total() float64 { return c.DurationS * float64(c.repeats()) }

// Player owns the current Program timeline and uses Hooks to drive
// properties. It also owns the animation context fed to contextual curves.
type Player struct {
	State PlayerState

	clips []loadedClip
	loop  bool
	nowS  float64 // position within the current pass of the program
	idx   int     // current clip index

	ctx contextual.Context

	hooks Hooks
}
