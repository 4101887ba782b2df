package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/physic"

	"github.com/coreman2200/easelab/internal/app"
	"github.com/coreman2200/easelab/internal/config"
	"github.com/coreman2200/easelab/internal/sequence"
	"github.com/coreman2200/easelab/internal/ws"
)

func main() {
	// ---- Flags (config.yaml overrides them when present) ----
	def := config.Default()
	rate := physic.Frequency(def.Debugger.FPS) * physic.Hertz
	flag.Var(&rate, "rate", "preview tick rate, e.g. 60Hz")
	var (
		addr       = flag.String("addr", def.Debugger.Addr, "HTTP listen address")
		samples    = flag.Int("samples", def.Samples, "points per sampled curve")
		level      = flag.String("log-level", def.LogLevel, "log level: debug | info | warn | error")
		configPath = flag.String("config", "curvelab.yaml", "path to config yaml")
		profiles   = flag.String("profiles", "", "extra movement profiles (yaml)")
		program    = flag.String("program", "", "program JSON to preview")
		specJSON   = flag.String("spec", "", "curve spec JSON (sample)")
		specFile   = flag.String("spec-file", "", "curve spec JSON file (sample)")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [serve|sample]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	// ---- Effective config ----
	cfg := config.Default()
	cfg.LogLevel = *level
	cfg.Debugger.Addr = *addr
	cfg.Debugger.FPS = fpsOf(rate)
	cfg.Samples = *samples
	cfg.ProfilesPath = *profiles
	cfg.ProgramPath = *program
	if c, err := config.Load(*configPath); err != nil {
		log.Debug().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
	} else {
		cfg = c
		if cfg.ProfilesPath == "" {
			cfg.ProfilesPath = *profiles
		}
		if cfg.ProgramPath == "" {
			cfg.ProgramPath = *program
		}
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	} else {
		log.Warn().Str("level", cfg.LogLevel).Msg("unknown log level; using info")
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	core, err := app.InitCore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("init")
	}

	switch cmd := flag.Arg(0); cmd {
	case "", "serve":
		serve(cfg, core)
	case "sample":
		if err := sample(cfg, core, *specJSON, *specFile); err != nil {
			log.Fatal().Err(err).Msg("sample")
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func serve(cfg *config.Config, core *app.Core) {
	state := ws.NewState(core, cfg.Debugger.FPS, cfg.Samples)
	if cfg.ProgramPath != "" {
		prog, err := readProgram(cfg.ProgramPath)
		if err == nil {
			err = state.LoadProgram(prog)
		}
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.ProgramPath).Msg("preview program not loaded")
		}
	}

	// ---- HTTP routes ----
	mux := http.NewServeMux()
	mux.HandleFunc("/curve", state.HandleCurveWS)
	mux.HandleFunc("/frames", state.HandleFramesWS)
	mux.HandleFunc("/diag", state.HandleDiagWS)
	mux.HandleFunc("/control", state.HandleControlWS)
	mux.HandleFunc("/health", state.HandleHealth)

	srv := &http.Server{
		Addr:         cfg.Debugger.Addr,
		Handler:      withCORS(mux),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go state.RunPreviewLoop(ctx)
	go func() {
		log.Info().Str("addr", cfg.Debugger.Addr).Int("fps", cfg.Debugger.FPS).Msg("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server crashed")
		}
	}()

	// ---- Graceful shutdown ----
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	s := <-ch
	log.Info().Str("signal", s.String()).Msg("shutting down")

	cancel()
	shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
	defer done()
	_ = srv.Shutdown(shutdownCtx)
}

func sample(cfg *config.Config, core *app.Core, specJSON, specFile string) error {
	data := []byte(specJSON)
	if specFile != "" {
		b, err := os.ReadFile(specFile)
		if err != nil {
			return err
		}
		data = b
	}
	var spec sequence.Spec
	if len(data) > 0 {
		if err := json.Unmarshal(data, &spec); err != nil {
			return fmt.Errorf("spec: %w", err)
		}
	}
	rep, err := core.Sample(spec, cfg.Samples, nil)
	if err != nil {
		return err
	}
	for _, d := range rep.Diagnostics {
		log.Warn().Str("code", d.Code).Str("severity", string(d.Severity)).Interface("evidence", d.Evidence).Msg(d.Summary)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rep.Samples)
}

func readProgram(path string) (sequence.Program, error) {
	var prog sequence.Program
	b, err := os.ReadFile(path)
	if err != nil {
		return prog, err
	}
	if err := json.Unmarshal(b, &prog); err != nil {
		return prog, fmt.Errorf("program %s: %w", path, err)
	}
	return prog, nil
}

// fpsOf converts a tick rate to whole frames per second, at least 1.
func fpsOf(f physic.Frequency) int {
	fps := int(f / physic.Hertz)
	if fps < 1 {
		return 1
	}
	return fps
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(200)
			return
		}
		h.ServeHTTP(w, r)
	})
}
