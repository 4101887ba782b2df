package sequence

import (
	"errors"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/easelab/internal/contextual"
	"github.com/coreman2200/easelab/internal/curve"
)

// fakeResolver resolves catalog names plus two contextual kinds.
type fakeResolver struct{ reg *curve.Registry }

func newFakeResolver() fakeResolver { return fakeResolver{reg: curve.Default()} }

func (f fakeResolver) Named(name string) (curve.Curve, bool) { return f.reg.Get(name) }

func (f fakeResolver) Resolve(s Spec) (contextual.Curve, error) {
	switch s.Contextual {
	case "directional":
		return contextual.Directional(curve.Linear, func(t float64) float64 { return 1 - t }), nil
	case "energy":
		m := s.Energy()
		return m.Curve(), nil
	}
	c, ok := f.reg.Get(s.Name)
	if !ok {
		return nil, errors.New("unknown curve " + s.Name)
	}
	return contextual.Lift(c), nil
}

type recorder struct {
	params map[string][]float64
	colors []colorful.Color
	clips  []string
	done   int
}

func (r *recorder) hooks() Hooks {
	r.params = map[string][]float64{}
	return Hooks{
		SetParam: func(name string, v float64) { r.params[name] = append(r.params[name], v) },
		SetColor: func(name string, c colorful.Color) { r.colors = append(r.colors, c) },
		OnClip:   func(name string) { r.clips = append(r.clips, name) },
		OnDone:   func() { r.done++ },
	}
}

func TestEnvelopeEval(t *testing.T) {
	env := Envelope{Keys: []Keyframe{
		{T: 0, V: 0, Ease: "linear"},
		{T: 10, V: 10, Ease: "linear"},
	}}
	if v := env.Eval(-1); v != 0 {
		t.Fatalf("expected 0 before start, got %v", v)
	}
	if v := env.Eval(0); v != 0 {
		t.Fatalf("expected 0 at t=0, got %v", v)
	}
	if v := env.Eval(5); v != 5 {
		t.Fatalf("expected 5 at t=5, got %v", v)
	}
	if v := env.Eval(10); v != 10 {
		t.Fatalf("expected 10 at t=10, got %v", v)
	}
	if v := env.Eval(11); v != 10 {
		t.Fatalf("expected 10 after end, got %v", v)
	}
}

func TestEnvelopeResolvedEase(t *testing.T) {
	env := Envelope{Keys: []Keyframe{
		{T: 0, V: 0, Ease: "easeInQuad"},
		{T: 2, V: 4, Ease: "no-such-curve"},
		{T: 4, V: 0},
	}}
	env.Resolve(newFakeResolver())
	assert.InDelta(t, 1.0, env.Eval(1), 1e-12) // 4 * 0.5^2
	assert.InDelta(t, 2.0, env.Eval(3), 1e-12) // unknown name stays linear
	assert.Equal(t, 0.0, Envelope{}.Eval(3))
	assert.Equal(t, 7.0, Envelope{Keys: []Keyframe{{T: 1, V: 7}}}.Eval(3))
}

func TestPlayerLinearClip(t *testing.T) {
	var rec recorder
	p := NewPlayer(rec.hooks())
	prog := Program{Version: "seq.v1", Clips: []Clip{
		{Name: "slide", Property: "x", From: 0, To: 10, DurationS: 1, Ease: Spec{Name: "linear"}},
	}}
	require.NoError(t, p.Load(prog, newFakeResolver()))
	p.Start()
	p.Tick(0.25)
	p.Tick(0.25)
	p.Tick(0.5)

	require.Len(t, rec.params["x"], 3)
	assert.InDelta(t, 2.5, rec.params["x"][0], 1e-12)
	assert.InDelta(t, 5.0, rec.params["x"][1], 1e-12)
	assert.InDelta(t, 10.0, rec.params["x"][2], 1e-12)
	assert.Equal(t, Idle, p.State)
	assert.Equal(t, 1, rec.done)
	assert.Equal(t, []string{"slide"}, rec.clips)

	// idle players ignore ticks
	p.Tick(0.5)
	assert.Len(t, rec.params["x"], 3)
}

func TestPlayerAlternatingRepeats(t *testing.T) {
	var rec recorder
	p := NewPlayer(rec.hooks())
	prog := Program{Clips: []Clip{{
		Name: "swing", Property: "x", From: 0, To: 10, DurationS: 1, Repeat: 2,
		Direction: contextual.Alternating, Ease: Spec{Contextual: "directional"},
	}}}
	require.NoError(t, p.Load(prog, newFakeResolver()))
	p.Start()
	for i := 0; i < 4; i++ {
		p.Tick(0.5)
	}
	want := []float64{5, 10, 5, 0}
	require.Len(t, rec.params["x"], len(want))
	for i, w := range want {
		assert.InDelta(t, w, rec.params["x"][i], 1e-12, "sample %d", i)
	}
	assert.Equal(t, Idle, p.State)
}

func TestPlayerKinematicsFeedback(t *testing.T) {
	p := NewPlayer(Hooks{})
	prog := Program{Clips: []Clip{{Name: "a", Property: "x", DurationS: 1, Ease: Spec{Name: "easeInQuad"}}}}
	require.NoError(t, p.Load(prog, newFakeResolver()))
	p.Start()

	p.Tick(0.1)
	ctx := p.Context()
	require.NotNil(t, ctx.PreviousValue)
	assert.Nil(t, ctx.Velocity)
	assert.InDelta(t, 0.01, *ctx.PreviousValue, 1e-12)

	p.Tick(0.1)
	ctx = p.Context()
	require.NotNil(t, ctx.Velocity)
	assert.InDelta(t, (0.04-0.01)/0.1, *ctx.Velocity, 1e-9)
	assert.Nil(t, ctx.Acceleration)

	p.Tick(0.1)
	ctx = p.Context()
	require.NotNil(t, ctx.Acceleration)
	assert.InDelta(t, ((0.09-0.04)/0.1-(0.04-0.01)/0.1)/0.1, *ctx.Acceleration, 1e-6)
	assert.InDelta(t, 0.3, ctx.Elapsed, 1e-12)
	assert.Equal(t, 1.0, ctx.Duration)
}

func TestPlayerEnergyDrainsAcrossIterations(t *testing.T) {
	depletion, recovery := 0.3, 0.0
	p := NewPlayer(Hooks{})
	prog := Program{Clips: []Clip{{
		Name: "tired", Property: "x", DurationS: 1, Repeat: 3,
		Ease: Spec{Contextual: "energy", Depletion: &depletion, Recovery: &recovery},
	}}}
	require.NoError(t, p.Load(prog, newFakeResolver()))
	p.Start()

	p.Tick(0.5)
	assert.Nil(t, p.Context().Energy)
	p.Tick(1.0) // iteration 1
	require.NotNil(t, p.Context().Energy)
	assert.InDelta(t, 0.7, *p.Context().Energy, 1e-12)
	p.Tick(1.0) // iteration 2
	assert.InDelta(t, 0.4, *p.Context().Energy, 1e-12)
	assert.Equal(t, 2, p.Context().Iteration)
}

func TestPlayerClipOrderAndLoop(t *testing.T) {
	var rec recorder
	p := NewPlayer(rec.hooks())
	prog := Program{
		Version: "seq.v1",
		Loop:    true,
		Clips: []Clip{
			{Name: "A", Property: "a", DurationS: 1, Ease: Spec{Name: "linear"}},
			{Name: "B", Property: "b", DurationS: 2, Ease: Spec{Name: "linear"}},
		},
	}
	require.NoError(t, p.Load(prog, newFakeResolver()))
	p.Start()
	p.Tick(0.5) // A
	p.Tick(0.5) // A ends
	p.Tick(1.0) // B
	p.Tick(1.0) // B ends, loop
	p.Tick(0.5) // A again

	assert.Equal(t, []string{"A", "B", "A"}, rec.clips)
	assert.Equal(t, Running, p.State)
	assert.Zero(t, rec.done)
	idx, now := p.Position()
	assert.Equal(t, 0, idx)
	assert.InDelta(t, 0.5, now, 1e-12)
	assert.InDelta(t, 0.5, rec.params["a"][len(rec.params["a"])-1], 1e-12)
}

func TestPlayerColorClip(t *testing.T) {
	var rec recorder
	p := NewPlayer(rec.hooks())
	prog := Program{Clips: []Clip{{
		Name: "tint", Property: "fill", FromColor: "#ff0000", ToColor: "#0000ff",
		DurationS: 1, Ease: Spec{Name: "linear"},
	}}}
	require.NoError(t, p.Load(prog, newFakeResolver()))
	p.Start()
	p.Tick(0.5)
	p.Tick(0.5)
	require.Len(t, rec.colors, 2)
	assert.Equal(t, "#0000ff", rec.colors[1].Hex())
	assert.Empty(t, rec.params["fill"])
}

func TestPlayerParamsEnvelope(t *testing.T) {
	var rec recorder
	p := NewPlayer(rec.hooks())
	prog := Program{Clips: []Clip{{
		Name: "a", Property: "x", DurationS: 2, Ease: Spec{Name: "linear"},
		Params: map[string]Envelope{"glow": {Keys: []Keyframe{{T: 0, V: 0, Ease: "easeInQuad"}, {T: 2, V: 1}}}},
	}}}
	require.NoError(t, p.Load(prog, newFakeResolver()))
	p.Start()
	p.Tick(1)
	require.Len(t, rec.params["glow"], 1)
	assert.InDelta(t, 0.25, rec.params["glow"][0], 1e-12)
}

func TestPlayerLoadErrors(t *testing.T) {
	p := NewPlayer(Hooks{})
	r := newFakeResolver()
	assert.ErrorIs(t, p.Load(Program{}, r), ErrNoClips)
	assert.Error(t, p.Load(Program{Clips: []Clip{{Name: "z", Ease: Spec{Name: "linear"}}}}, r))
	assert.Error(t, p.Load(Program{Clips: []Clip{{Name: "u", DurationS: 1, Ease: Spec{Name: "nope"}}}}, r))
	assert.Error(t, p.Load(Program{Clips: []Clip{{
		Name: "c", DurationS: 1, Ease: Spec{Name: "linear"}, FromColor: "#fff", ToColor: "blue",
	}}}, r))

	// Start without a program is a no-op.
	p.Start()
	assert.Equal(t, Idle, p.State)
}

func TestPlayerPauseSeekStop(t *testing.T) {
	var rec recorder
	p := NewPlayer(rec.hooks())
	prog := Program{Clips: []Clip{
		{Name: "A", Property: "x", To: 1, DurationS: 1, Ease: Spec{Name: "linear"}},
		{Name: "B", Property: "x", To: 1, DurationS: 1, Ease: Spec{Name: "linear"}},
	}}
	require.NoError(t, p.Load(prog, newFakeResolver()))
	p.Start()
	p.Pause()
	p.Tick(0.5)
	assert.Empty(t, rec.params["x"])
	p.Resume()

	p.Seek(1.5)
	idx, now := p.Position()
	assert.Equal(t, 1, idx)
	assert.Equal(t, 1.5, now)
	p.Tick(0.25)
	assert.InDelta(t, 0.75, rec.params["x"][0], 1e-12)

	p.Seek(99)
	idx, _ = p.Position()
	assert.Equal(t, 1, idx)

	p.Stop()
	assert.Equal(t, Idle, p.State)
	idx, now = p.Position()
	assert.Zero(t, idx)
	assert.Zero(t, now)
	assert.Equal(t, []string{"A", "B", "B"}, rec.clips)
}

func TestSafePlayer(t *testing.T) {
	s := NewSafePlayer(Hooks{})
	s.With(func(p *Player) {
		assert.Equal(t, Idle, p.State)
	})
}
