package sequence

import (
	"fmt"
	"math"
	"sync"

	"github.com/coreman2200/easelab/internal/contextual"
	"github.com/coreman2200/easelab/internal/interp"
)

// NewPlayer constructs a Player with provided hooks.
func NewPlayer(h Hooks) *Player {
	return &Player{
		State: Idle,
		hooks: h,
	}
}

// Load resolves every clip of prog through r and replaces the current
// program. Resets time and state to Idle. On error the previous program
// stays loaded.
func (p *Player) Load(prog Program, r Resolver) error {
	if len(prog.Clips) == 0 {
		return ErrNoClips
	}
	clips := make([]loadedClip, len(prog.Clips))
	for i, c := range prog.Clips {
		if c.DurationS <= 0 {
			return fmt.Errorf("clip %d (%s): duration must be positive", i, c.Name)
		}
		cv, err := r.Resolve(c.Ease)
		if err != nil {
			return fmt.Errorf("clip %d (%s): %w", i, c.Name, err)
		}
		lc := loadedClip{Clip: c, curve: cv, energy: c.Ease.Energy()}
		if c.FromColor != "" || c.ToColor != "" {
			if lc.from, err = interp.ParseHex(c.FromColor); err != nil {
				return fmt.Errorf("clip %d (%s): fromColor: %w", i, c.Name, err)
			}
			if lc.to, err = interp.ParseHex(c.ToColor); err != nil {
				return fmt.Errorf("clip %d (%s): toColor: %w", i, c.Name, err)
			}
			lc.color = true
		}
		if len(c.Params) > 0 {
			lc.Params = make(map[string]Envelope, len(c.Params))
			for name, env := range c.Params {
				env.Resolve(r)
				lc.Params[name] = env
			}
		}
		clips[i] = lc
	}
	p.clips = clips
	p.loop = prog.Loop
	p.nowS = 0
	p.idx = 0
	p.State = Idle
	p.resetContext()
	return nil
}

// Start moves to Running and primes the current clip.
func (p *Player) Start() {
	if p.State == Running || len(p.clips) == 0 {
		return
	}
	p.State = Running
	p.enterClip()
}

// Pause pauses playback.
func (p *Player) Pause() {
	if p.State == Running {
		p.State = Paused
	}
}

// Resume resumes playback.
func (p *Player) Resume() {
	if p.State == Paused {
		p.State = Running
	}
}

// Stop stops and resets to start.
func (p *Player) Stop() {
	p.State = Idle
	p.nowS = 0
	p.idx = 0
	p.resetContext()
}

// Context returns a snapshot of the animation context.
func (p *Player) Context() *contextual.Context { return p.ctx.Clone() }

// Position returns the current clip index and the time within the
// current pass of the program.
func (p *Player) Position() (int, float64) { return p.idx, p.nowS }

// Seek jumps to absolute program time t. Clamps into [0, totalDur).
func (p *Player) Seek(t float64) {
	if len(p.clips) == 0 {
		return
	}
	if t < 0 {
		t = 0
	}
	total := p.totalDuration()
	if t >= total {
		// Clamp to just before end
		t = math.Nextafter(total, -1)
	}
	acc := 0.0
	idx := len(p.clips) - 1
	for i := range p.clips {
		if t < acc+p.clips[i].total() {
			idx = i
			break
		}
		acc += p.clips[i].total()
	}
	p.idx = idx
	p.nowS = t
	p.resetContext()
	if p.State == Running {
		p.enterClip()
	}
}

// Tick advances the sequencer by dt seconds, samples the active clip once
// and emits hooks.
func (p *Player) Tick(dt float64) {
	if p.State != Running || len(p.clips) == 0 {
		return
	}
	if dt <= 0 {
		return
	}
	p.nowS += dt

	clip, localT := p.currentClipAndLocalT()
	p.sample(clip, localT, dt)

	// Clip end?
	if localT >= clip.total() {
		p.advanceClip()
	}
}

// sample evaluates clip at localT and feeds the result back into the
// context for the next sample.
func (p *Player) sample(clip *loadedClip, localT, dt float64) {
	n := clip.repeats()
	iter := int(localT / clip.DurationS)
	progress := 1.0
	if iter < n {
		progress = (localT - float64(iter)*clip.DurationS) / clip.DurationS
	} else {
		iter = n - 1
	}

	if iter != p.ctx.Iteration {
		if clip.energy != nil {
			e := 1.0
			if p.ctx.Energy != nil {
				e = *p.ctx.Energy
			}
			for i := p.ctx.Iteration; i < iter; i++ {
				e = clip.energy.Next(e)
			}
			p.ctx.Energy = &e
		}
		p.ctx.Iteration = iter
		// a new pass starts from scratch
		p.ctx.PreviousValue = nil
		p.ctx.Velocity = nil
		p.ctx.Acceleration = nil
	}
	p.ctx.Direction = clip.Direction
	p.ctx.Elapsed = localT
	p.ctx.Duration = clip.DurationS

	v := clip.curve(progress, &p.ctx)

	if p.ctx.PreviousValue != nil {
		vel := (v - *p.ctx.PreviousValue) / dt
		if p.ctx.Velocity != nil {
			acc := (vel - *p.ctx.Velocity) / dt
			p.ctx.Acceleration = &acc
		}
		p.ctx.Velocity = &vel
	}
	p.ctx.PreviousValue = &v

	if clip.color {
		if p.hooks.SetColor != nil {
			p.hooks.SetColor(clip.Property, interp.Color(clip.from, clip.to, v))
		}
	} else if p.hooks.SetParam != nil {
		p.hooks.SetParam(clip.Property, interp.Float(clip.From, clip.To, v))
	}
	if p.hooks.SetParam != nil {
		for name, env := range clip.Params {
			p.hooks.SetParam(name, env.Eval(localT))
		}
	}
}

func (p *Player) currentClipAndLocalT() (*loadedClip, float64) {
	acc := 0.0
	for i := 0; i < p.idx; i++ {
		acc += p.clips[i].total()
	}
	return &p.clips[p.idx], p.nowS - acc
}

func (p *Player) totalDuration() float64 {
	total := 0.0
	for i := range p.clips {
		total += p.clips[i].total()
	}
	return total
}

func (p *Player) nextIndex() int {
	ni := p.idx + 1
	if ni >= len(p.clips) {
		if p.loop {
			return 0
		}
		return -1
	}
	return ni
}

func (p *Player) advanceClip() {
	next := p.nextIndex()
	if next == -1 {
		// End of program
		p.State = Idle
		p.nowS = 0
		p.idx = 0
		p.resetContext()
		if p.hooks.OnDone != nil {
			p.hooks.OnDone()
		}
		return
	}
	if next == 0 {
		// looping: carry the overshoot into the next pass
		p.nowS = math.Max(0, p.nowS-p.totalDuration())
	}
	p.idx = next
	p.resetContext()
	p.enterClip()
}

func (p *Player) enterClip() {
	if p.hooks.OnClip != nil {
		p.hooks.OnClip(p.clips[p.idx].Name)
	}
}

func (p *Player) resetContext() {
	p.ctx = contextual.Context{}
}

// --- Lightweight synchronization helpers (optional) ---

// SafePlayer guards a Player with a mutex for use across goroutines.
type SafePlayer struct {
	mu sync.Mutex
	P  *Player
}

// NewSafePlayer wraps a new Player built with h.
func NewSafePlayer(h Hooks) *SafePlayer {
	return &SafePlayer{P: NewPlayer(h)}
}

// With runs f with the lock held.
func (s *SafePlayer) With(f func(p *Player)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(s.P)
}
