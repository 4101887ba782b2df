// Package diagnostics reports problems and notable traits of a curve in a
// form the debugger can push to clients.
package diagnostics

import (
	"math"

	"github.com/coreman2200/easelab/internal/curve"
)

// Severity ranks a diagnostic.
type Severity string

const (
	Info Severity = "info"
	Warn Severity = "warning"
	Err  Severity = "error"
)

// Diagnostic is one finding about a curve, shaped for JSON clients.
type Diagnostic struct {
	Severity       Severity       `json:"severity"`
	Code           string         `json:"code"`
	Summary        string         `json:"summary"`
	Detail         string         `json:"detail,omitempty"`
	LikelyCauses   []string       `json:"likely_causes,omitempty"`
	SuggestedFixes []string       `json:"suggested_fixes,omitempty"`
	Evidence       map[string]any `json:"evidence,omitempty"`
}

// Codes emitted by Inspect.
const (
	CodeNonFinite = "CURVE.NONFINITE"
	CodeBoundary  = "CURVE.BOUNDARY"
	CodeOvershoot = "CURVE.OVERSHOOT"
)

// boundaryTolerance is how far f(0) and f(1) may drift from 0 and 1.
const boundaryTolerance = 1e-9

// Inspect samples c at samples+1 evenly spaced points over [0,1].
func Inspect(name string, c curve.Curve, samples int) []Diagnostic {
	if samples < 1 {
		samples = 1
	}
	var out []Diagnostic
	lo, hi := math.Inf(1), math.Inf(-1)
	var bad []float64
	for i := 0; i <= samples; i++ {
		t := float64(i) / float64(samples)
		v := c(t)
		if !curve.IsFinite(v) {
			bad = append(bad, t)
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if len(bad) > 0 {
		out = append(out, Diagnostic{
			Severity:       Err,
			Code:           CodeNonFinite,
			Summary:        "Curve produces NaN or infinite values",
			Detail:         name,
			LikelyCauses:   []string{"division by zero in a custom curve", "NaN parameters"},
			SuggestedFixes: []string{"clamp progress before evaluating", "check parameter records for NaN"},
			Evidence:       map[string]any{"t": bad, "count": len(bad)},
		})
	}

	start, end := c(0), c(1)
	if math.Abs(start) > boundaryTolerance || math.Abs(end-1) > boundaryTolerance {
		out = append(out, Diagnostic{
			Severity:     Warn,
			Code:         CodeBoundary,
			Summary:      "Curve does not start at 0 and end at 1",
			Detail:       name,
			LikelyCauses: []string{"energy or inertia left the move unfinished", "unpinned custom curve"},
			Evidence:     map[string]any{"f0": finiteOrNil(start), "f1": finiteOrNil(end)},
		})
	}

	if len(bad) <= samples && (lo < -boundaryTolerance || hi > 1+boundaryTolerance) {
		out = append(out, Diagnostic{
			Severity: Info,
			Code:     CodeOvershoot,
			Summary:  "Curve leaves [0,1]",
			Detail:   name,
			Evidence: map[string]any{"min": lo, "max": hi},
		})
	}
	return out
}

// finiteOrNil keeps NaN out of JSON encoding, which rejects it.
func finiteOrNil(v float64) any {
	if curve.IsFinite(v) {
		return v
	}
	return nil
}
