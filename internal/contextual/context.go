// Package contextual provides curves that also read external animation
// state: direction, iteration, kinematics and environment.
//
// Contextual curves never modify the Context they are given. Evolving it
// between samples is the job of whatever drives the animation.
package contextual

import "fmt"

// Direction is the playback direction of the current iteration.
type Direction string

const (
	Forward     Direction = "forward"
	Backward    Direction = "backward"
	Alternating Direction = "alternating"
)

// UnmarshalText accepts the three direction names; empty means forward.
func (d *Direction) UnmarshalText(b []byte) error {
	switch s := Direction(b); s {
	case Forward, Backward, Alternating:
		*d = s
	case "":
		*d = Forward
	default:
		return fmt.Errorf("unknown direction %q", string(b))
	}
	return nil
}

// Context is the animation state a contextual curve may consult. Pointer
// fields are optional; nil means the driver has no value yet.
type Context struct {
	Direction Direction `json:"direction,omitempty"`
	Iteration int       `json:"iteration"`

	// kinematics, in progress units per second
	PreviousValue *float64 `json:"previousValue,omitempty"`
	Velocity      *float64 `json:"velocity,omitempty"`
	Acceleration  *float64 `json:"acceleration,omitempty"`

	// environment
	Gravity    *float64 `json:"gravity,omitempty"`
	Resistance *float64 `json:"resistance,omitempty"`

	Energy   *float64 `json:"energy,omitempty"` // 0..1
	Phase    string   `json:"phase,omitempty"`
	Elapsed  float64  `json:"elapsed,omitempty"`  // seconds into the clip
	Duration float64  `json:"duration,omitempty"` // seconds per iteration
	Distance *float64 `json:"distance,omitempty"` // spatial extent of the move
}

// Clone returns a deep copy of c, so a driver can snapshot state.
func (c *Context) Clone() *Context {
	if c == nil {
		return &Context{}
	}
	out := *c
	for _, p := range []**float64{
		&out.PreviousValue, &out.Velocity, &out.Acceleration,
		&out.Gravity, &out.Resistance, &out.Energy, &out.Distance,
	} {
		if *p != nil {
			v := **p
			*p = &v
		}
	}
	return &out
}

var zero Context

func orZero(c *Context) *Context {
	if c == nil {
		return &zero
	}
	return c
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }
