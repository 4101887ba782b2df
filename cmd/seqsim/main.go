package main

import (
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/easelab/internal/app"
	"github.com/coreman2200/easelab/internal/config"
	"github.com/coreman2200/easelab/internal/sequence"
)

func main() {
	var programPath, profilesPath string
	var fps int
	var fast, verbose bool
	flag.StringVar(&programPath, "program", "", "Path to Program JSON (seq.v1)")
	flag.StringVar(&profilesPath, "profiles", "", "Extra movement profiles (yaml)")
	flag.IntVar(&fps, "fps", 60, "Simulation frames per second")
	flag.BoolVar(&fast, "fast", false, "Tick as fast as possible instead of in real time")
	flag.BoolVar(&verbose, "v", false, "Log every property update")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if programPath == "" {
		log.Fatal().Msg("Provide -program path to a Program JSON")
	}
	if fps < 1 {
		fps = 1
	}

	data, err := os.ReadFile(programPath)
	if err != nil {
		log.Fatal().Err(err).Msg("read program")
	}
	var prog sequence.Program
	if err := json.Unmarshal(data, &prog); err != nil {
		log.Fatal().Err(err).Msg("json")
	}

	cfg := config.Default()
	cfg.ProfilesPath = profilesPath
	core, err := app.InitCore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("init")
	}

	done := false
	h := sequence.Hooks{
		SetParam: func(name string, v float64) {
			log.Debug().Str("param", name).Float64("v", v).Msg("SetParam")
		},
		SetColor: func(name string, c colorful.Color) {
			log.Debug().Str("param", name).Str("color", c.Hex()).Msg("SetColor")
		},
		OnClip: func(name string) {
			log.Info().Str("clip", name).Msg("clip")
		},
		OnDone: func() { done = true },
	}
	player := sequence.NewPlayer(h)
	if err := player.Load(prog, core); err != nil {
		log.Fatal().Err(err).Msg("load")
	}
	player.Start()

	dt := time.Second / time.Duration(fps)
	ticker := time.NewTicker(dt)
	defer ticker.Stop()

	simulated := 0.0
	for !done {
		if !fast {
			<-ticker.C
		}
		player.Tick(dt.Seconds())
		simulated += dt.Seconds()
	}
	log.Info().Float64("t", simulated).Msg("done")
}
