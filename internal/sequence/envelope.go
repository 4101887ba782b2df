package sequence

import "github.com/coreman2200/easelab/internal/curve"

// Resolve looks up each key's ease by name. Unknown names keep linear.
func (e *Envelope) Resolve(r Resolver) {
	e.eases = make([]curve.Curve, len(e.Keys))
	for i, k := range e.Keys {
		if c, ok := r.Named(k.Ease); ok {
			e.eases[i] = c
		}
	}
}

func (e Envelope) ease(i int, x float64) float64 {
	if i < len(e.eases) && e.eases[i] != nil {
		return e.eases[i](x)
	}
	return x
}

// Eval returns the value of the envelope at time t (seconds).
// If there are no keys, returns 0; if one key, returns its value.
// Keys must be sorted by T ascending.
func (e Envelope) Eval(t float64) float64 {
	n := len(e.Keys)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return e.Keys[0].V
	}
	// before first
	if t <= e.Keys[0].T {
		return e.Keys[0].V
	}
	// after last
	if t >= e.Keys[n-1].T {
		return e.Keys[n-1].V
	}
	for i := 0; i < n-1; i++ {
		a := e.Keys[i]
		b := e.Keys[i+1]
		if t >= a.T && t <= b.T {
			den := b.T - a.T
			if den <= 0 {
				return b.V
			}
			u := e.ease(i, curve.Clamp01((t-a.T)/den))
			return a.V + (b.V-a.V)*u
		}
	}
	return e.Keys[n-1].V
}
