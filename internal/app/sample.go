package app

import (
	"github.com/coreman2200/easelab/internal/contextual"
	"github.com/coreman2200/easelab/internal/diagnostics"
	"github.com/coreman2200/easelab/internal/sequence"
)

// Point is one sample of a curve.
type Point struct {
	T float64 `json:"t"`
	V float64 `json:"v"`
}

// Report is a sampled curve with its diagnostics.
type Report struct {
	Samples     []Point                  `json:"samples"`
	Diagnostics []diagnostics.Diagnostic `json:"diagnostics"`
}

// Sample resolves s and evaluates it at n+1 evenly spaced points with the
// given context (nil for none).
func (c *Core) Sample(s sequence.Spec, n int, ctx *contextual.Context) (*Report, error) {
	cv, err := c.Resolve(s)
	if err != nil {
		return nil, err
	}
	if n < 1 {
		n = 1
	}
	plain := func(t float64) float64 { return cv(t, ctx) }
	r := &Report{Samples: make([]Point, n+1)}
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		r.Samples[i] = Point{T: t, V: plain(t)}
	}
	r.Diagnostics = diagnostics.Inspect(describe(s), plain, n)
	if r.Diagnostics == nil {
		r.Diagnostics = []diagnostics.Diagnostic{}
	}
	return r, nil
}

func describe(s sequence.Spec) string {
	switch {
	case s.Contextual != "":
		return "contextual:" + s.Contextual
	case len(s.Sequence) > 0:
		return "sequence"
	case len(s.Blend) > 0:
		return "blend"
	case s.Profile != "":
		return "profile:" + s.Profile
	case s.Family != "":
		return "family:" + s.Family
	case s.Bezier != nil:
		return "bezier"
	case s.Name != "":
		return s.Name
	default:
		return "linear"
	}
}
