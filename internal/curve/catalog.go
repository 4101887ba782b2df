package curve

import (
	"sort"

	"github.com/fogleman/ease"
)

// Registry is a named set of curves.
type Registry struct{ m map[string]Curve }

// NewRegistry returns an empty registry.
func NewRegistry() *Registry { return &Registry{m: map[string]Curve{}} }

// Register adds or replaces a named curve. Nil curves are ignored.
func (r *Registry) Register(name string, c Curve) {
	if c == nil || name == "" {
		return
	}
	r.m[name] = c
}

// Get looks a curve up by name.
func (r *Registry) Get(name string) (Curve, bool) { c, ok := r.m[name]; return c, ok }

// MustGet returns the named curve or linear if it is not registered.
func (r *Registry) MustGet(name string) Curve {
	if c, ok := r.m[name]; ok {
		return c
	}
	return Linear
}

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	out := make([]string, 0, len(r.m))
	for k := range r.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Len is the number of registered curves.
func (r *Registry) Len() int { return len(r.m) }

// Catalog names used by the synthesis layers.
const (
	NameLinear     = "linear"
	NameInOutSine  = "easeInOutSine"
	NameInOutBack  = "easeInOutBack"
	NameOutElastic = "easeOutElastic"
	NameInOutQuad  = "easeInOutQuad"
	NameOutBounce  = "easeOutBounce"
	NameOutQuad    = "easeOutQuad"

	NameSmoothstep   = "smoothstep"
	NameSmootherstep = "smootherstep"

	// CSS timing-function presets, built as cubic-Bezier curves.
	NameEase      = "ease"
	NameEaseIn    = "easeIn"
	NameEaseOut   = "easeOut"
	NameEaseInOut = "easeInOut"
)

// bezierPresets holds the control points of the CSS presets.
var bezierPresets = []struct {
	name           string
	x1, y1, x2, y2 float64
}{
	{NameEase, 0.25, 0.1, 0.25, 1},
	{NameEaseIn, 0.42, 0, 1, 1},
	{NameEaseOut, 0, 0, 0.58, 1},
	{NameEaseInOut, 0.42, 0, 0.58, 1},
}

// base lists the classical families in In, Out, InOut order.
var base = []struct {
	family        string
	in, out, both ease.Function
}{
	{"Sine", ease.InSine, ease.OutSine, ease.InOutSine},
	{"Quad", ease.InQuad, ease.OutQuad, ease.InOutQuad},
	{"Cubic", ease.InCubic, ease.OutCubic, ease.InOutCubic},
	{"Quart", ease.InQuart, ease.OutQuart, ease.InOutQuart},
	{"Quint", ease.InQuint, ease.OutQuint, ease.InOutQuint},
	{"Expo", ease.InExpo, ease.OutExpo, ease.InOutExpo},
	{"Circ", ease.InCirc, ease.OutCirc, ease.InOutCirc},
	{"Back", ease.InBack, ease.OutBack, ease.InOutBack},
	{"Elastic", ease.InElastic, ease.OutElastic, ease.InOutElastic},
	{"Bounce", ease.InBounce, ease.OutBounce, ease.InOutBounce},
}

// Smoothstep is the classic 3x^2 - 2x^3.
func Smoothstep(x float64) float64 { return x * x * (3 - 2*x) }

// Smootherstep is 6x^5 - 15x^4 + 10x^3.
func Smootherstep(x float64) float64 { return x * x * x * (x*(x*6-15) + 10) }

// Default returns a new registry holding linear, smoothstep, smootherstep,
// the CSS presets (ease, easeIn, easeOut, easeInOut) and the classical
// In/Out/InOut families under names like "easeInOutSine". Every entry is
// pinned to exact endpoints.
func Default() *Registry {
	r := NewRegistry()
	r.Register(NameLinear, Pinned(ease.Linear))
	r.Register(NameSmoothstep, Pinned(Smoothstep))
	r.Register(NameSmootherstep, Pinned(Smootherstep))
	for _, b := range bezierPresets {
		r.Register(b.name, Bezier(b.x1, b.y1, b.x2, b.y2))
	}
	for _, b := range base {
		r.Register("easeIn"+b.family, Pinned(Curve(b.in)))
		r.Register("easeOut"+b.family, Pinned(Curve(b.out)))
		r.Register("easeInOut"+b.family, Pinned(Curve(b.both)))
	}
	return r
}
