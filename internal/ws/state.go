package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/easelab/internal/app"
	"github.com/coreman2200/easelab/internal/contextual"
	diag "github.com/coreman2200/easelab/internal/diagnostics"
	"github.com/coreman2200/easelab/internal/sequence"
)

const writeWait = 200 * time.Millisecond

// MaxSamples caps the points a /curve request may ask for, unless the
// configured default is larger.
const MaxSamples = 10000

// State is the debugger backend: the preview player and the connected
// sockets.
type State struct {
	mu      sync.RWMutex
	wmu     sync.Mutex // serializes writes to broadcast sockets
	Core    *app.Core
	FPS     int
	Samples int

	Player *sequence.SafePlayer

	fpsChanged chan struct{}

	values      map[string]float64
	colors      map[string]string
	clip        string
	frameID     uint64
	startTime   time.Time
	clients     map[*websocket.Conn]bool
	diagClients map[*websocket.Conn]bool
}

// NewState builds the debugger state around core. fps is the preview
// tick rate and samples the default point count for /curve requests.
func NewState(core *app.Core, fps, samples int) *State {
	s := &State{
		Core:        core,
		FPS:         fps,
		Samples:     samples,
		fpsChanged:  make(chan struct{}, 1),
		values:      map[string]float64{},
		colors:      map[string]string{},
		startTime:   time.Now(),
		clients:     map[*websocket.Conn]bool{},
		diagClients: map[*websocket.Conn]bool{},
	}
	s.Player = sequence.NewSafePlayer(sequence.Hooks{
		SetParam: func(name string, v float64) {
			s.mu.Lock()
			s.values[name] = v
			s.mu.Unlock()
		},
		SetColor: func(name string, c colorful.Color) {
			s.mu.Lock()
			s.colors[name] = c.Hex()
			s.mu.Unlock()
		},
		OnClip: func(name string) {
			s.mu.Lock()
			s.clip = name
			s.mu.Unlock()
		},
		OnDone: func() {
			s.pushDiag(diag.Diagnostic{Severity: diag.Info, Code: "PROGRAM.DONE", Summary: "Program finished"})
		},
	})
	return s
}

// LoadProgram replaces the preview program and starts it.
func (s *State) LoadProgram(prog sequence.Program) error {
	var err error
	s.Player.With(func(p *sequence.Player) {
		if err = p.Load(prog, s.Core); err == nil {
			p.Start()
		}
	})
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.values = map[string]float64{}
	s.colors = map[string]string{}
	s.mu.Unlock()
	return nil
}

// RunPreviewLoop ticks the preview player at FPS and broadcasts each frame
// until ctx is done. FPS changes made through /control take effect on the
// next tick.
func (s *State) RunPreviewLoop(ctx context.Context) {
	fps := s.fps()
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.fpsChanged:
			fps = s.fps()
			ticker.Reset(time.Second / time.Duration(fps))
		case <-ticker.C:
			s.Step(1.0 / float64(fps))
		}
	}
}

// fps reads the preview rate, at least 1.
func (s *State) fps() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FPS < 1 {
		return 1
	}
	return s.FPS
}

// SetFPS changes the preview rate of a running RunPreviewLoop.
func (s *State) SetFPS(fps int) {
	s.mu.Lock()
	s.FPS = fps
	s.mu.Unlock()
	select {
	case s.fpsChanged <- struct{}{}:
	default:
	}
}

// Step advances the preview by dt seconds and broadcasts the frame.
func (s *State) Step(dt float64) {
	var st sequence.PlayerState
	var pctx *contextual.Context
	s.Player.With(func(p *sequence.Player) {
		p.Tick(dt)
		st = p.State
		pctx = p.Context()
	})
	s.mu.Lock()
	s.frameID++
	f := s.frame(st, pctx)
	s.mu.Unlock()
	s.broadcastFrame(f)
}

type frame struct {
	T       int64                `json:"t"`
	FrameID uint64               `json:"frame_id"`
	State   sequence.PlayerState `json:"state"`
	Clip    string               `json:"clip,omitempty"`
	Values  map[string]float64   `json:"values"`
	Colors  map[string]string    `json:"colors,omitempty"`
	Context *contextual.Context  `json:"context"`
}

// frame snapshots the preview. Caller holds s.mu.
func (s *State) frame(st sequence.PlayerState, ctx *contextual.Context) frame {
	f := frame{
		T:       time.Now().UnixNano(),
		FrameID: s.frameID,
		State:   st,
		Clip:    s.clip,
		Values:  make(map[string]float64, len(s.values)),
		Colors:  make(map[string]string, len(s.colors)),
		Context: ctx,
	}
	for k, v := range s.values {
		f.Values[k] = v
	}
	for k, v := range s.colors {
		f.Colors[k] = v
	}
	return f
}

// HandleFramesWS streams preview frames to the client.
func (s *State) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	conn := s.upgrade(w, r)
	if conn == nil {
		return
	}
	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()
	go s.drain(conn, s.clients)
}

// HandleDiagWS pushes diagnostics to the client as they occur.
func (s *State) HandleDiagWS(w http.ResponseWriter, r *http.Request) {
	conn := s.upgrade(w, r)
	if conn == nil {
		return
	}
	s.mu.Lock()
	s.diagClients[conn] = true
	s.mu.Unlock()
	go s.drain(conn, s.diagClients)
}

// curveRequest is a Spec plus sampling options.
type curveRequest struct {
	sequence.Spec
	Samples int                 `json:"samples,omitempty"`
	Context *contextual.Context `json:"context,omitempty"`
}

type errorReply struct {
	Error string `json:"error"`
}

// HandleCurveWS answers each Spec message with its samples and
// diagnostics.
func (s *State) HandleCurveWS(w http.ResponseWriter, r *http.Request) {
	conn := s.upgrade(w, r)
	if conn == nil {
		return
	}
	defer conn.Close()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var req curveRequest
		if err := json.Unmarshal(data, &req); err != nil {
			s.reply(conn, errorReply{Error: err.Error()})
			continue
		}
		n := s.sampleCount(req.Samples)
		rep, err := s.Core.Sample(req.Spec, n, req.Context)
		if err != nil {
			s.reply(conn, errorReply{Error: err.Error()})
			continue
		}
		s.reply(conn, rep)
		for _, d := range rep.Diagnostics {
			s.pushDiag(d)
		}
	}
}

// sampleCount applies the default and the cap to a requested count.
func (s *State) sampleCount(n int) int {
	limit := MaxSamples
	if s.Samples > limit {
		limit = s.Samples
	}
	if n <= 0 {
		n = s.Samples
	}
	if n > limit {
		n = limit
	}
	return n
}

// controlMsg drives the preview player. Program, when set, is loaded and
// started before Cmd runs.
type controlMsg struct {
	Program *sequence.Program `json:"program,omitempty"`
	Cmd     string            `json:"cmd,omitempty"` // start | pause | resume | stop | seek
	T       float64           `json:"t,omitempty"`
	FPS     int               `json:"fps,omitempty"`
}

// HandleControlWS applies control messages and answers each with the
// current status.
func (s *State) HandleControlWS(w http.ResponseWriter, r *http.Request) {
	conn := s.upgrade(w, r)
	if conn == nil {
		return
	}
	defer conn.Close()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg controlMsg
		if err := json.Unmarshal(data, &msg); err != nil {
			s.reply(conn, errorReply{Error: err.Error()})
			continue
		}
		if err := s.applyControl(msg); err != nil {
			s.pushDiag(diag.Diagnostic{Severity: diag.Err, Code: "PROGRAM.LOAD", Summary: "Program failed to load", Detail: err.Error()})
			s.reply(conn, errorReply{Error: err.Error()})
			continue
		}
		s.reply(conn, s.status())
	}
}

func (s *State) applyControl(msg controlMsg) error {
	if msg.Program != nil {
		if err := s.LoadProgram(*msg.Program); err != nil {
			return err
		}
	}
	if msg.FPS > 0 {
		s.SetFPS(msg.FPS)
	}
	s.Player.With(func(p *sequence.Player) {
		switch msg.Cmd {
		case "start":
			p.Start()
		case "pause":
			p.Pause()
		case "resume":
			p.Resume()
		case "stop":
			p.Stop()
		case "seek":
			p.Seek(msg.T)
		}
	})
	return nil
}

func (s *State) status() map[string]any {
	var st sequence.PlayerState
	var idx int
	var pos float64
	s.Player.With(func(p *sequence.Player) {
		st = p.State
		idx, pos = p.Position()
	})
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]any{
		"frame_id": s.frameID,
		"uptime_s": time.Since(s.startTime).Seconds(),
		"fps":      s.FPS,
		"state":    st,
		"clip":     s.clip,
		"index":    idx,
		"pos_s":    pos,
		"curves":   s.Core.Curves.Len(),
	}
}

// HandleHealth writes the status as JSON.
func (s *State) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.status())
}

func (s *State) upgrade(w http.ResponseWriter, r *http.Request) *websocket.Conn {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Str("path", r.URL.Path).Msg("upgrade")
		return nil
	}
	return conn
}

// drain discards client messages until the socket closes, then removes it
// from set.
func (s *State) drain(conn *websocket.Conn, set map[*websocket.Conn]bool) {
	defer func() {
		s.mu.Lock()
		delete(set, conn)
		s.mu.Unlock()
		conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *State) reply(conn *websocket.Conn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Debug().Err(err).Msg("marshal reply")
		b, _ = json.Marshal(errorReply{Error: err.Error()})
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
		log.Debug().Err(err).Msg("write reply")
	}
}

func (s *State) broadcastFrame(f frame) {
	b, err := json.Marshal(f)
	if err != nil {
		log.Debug().Err(err).Msg("marshal frame")
		return
	}
	s.wmu.Lock()
	defer s.wmu.Unlock()
	s.mu.RLock()
	defer s.mu.RUnlock()
	for c := range s.clients {
		c.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			log.Debug().Err(err).Msg("write frame")
		}
	}
}

func (s *State) pushDiag(d diag.Diagnostic) {
	b, err := json.Marshal(d)
	if err != nil {
		log.Debug().Err(err).Msg("marshal diagnostic")
		return
	}
	s.wmu.Lock()
	defer s.wmu.Unlock()
	s.mu.RLock()
	defer s.mu.RUnlock()
	for c := range s.diagClients {
		c.SetWriteDeadline(time.Now().Add(writeWait))
		_ = c.WriteMessage(websocket.TextMessage, b)
	}
}
