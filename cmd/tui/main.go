package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"

	"github.com/Garsondee/Defender/internal/audio"
	"github.com/Garsondee/Defender/internal/logger"
	"github.com/Garsondee/Defender/internal/sim"
	"github.com/Garsondee/Defender/internal/tui"
	"github.com/gdamore/tcell/v2"
)

func main() {
	var mission string
	var difficulty float64
	var weapons string
	var shield string
	var seed int64
	var sound bool
	var logPath string

	flag.StringVar(&mission, "mission", "attack", "mission kind: attack, defend or comet")
	flag.Float64Var(&difficulty, "difficulty", 1, "difficulty multiplier (> 0)")
	flag.StringVar(&weapons, "weapons", "gun_basic:2,missile_seeker:10", "loadout as id[:count],...")
	flag.StringVar(&shield, "shield", "shield_light", "shield id, or none")
	flag.Int64Var(&seed, "seed", 0, "RNG seed (0 picks one from the clock)")
	flag.BoolVar(&sound, "sound", false, "play sound effects")
	flag.StringVar(&logPath, "log", "", "append logs to this file while the terminal is in use")
	flag.Parse()

	logger.Init()
	log := logger.Log

	kind, err := sim.ParseMissionKind(mission)
	if err != nil {
		log.WithError(err).Fatal("bad -mission")
	}
	loadout, err := sim.ParseLoadout(weapons, shield)
	if err != nil {
		log.WithError(err).Fatal("bad loadout")
	}

	var sink sim.AudioSink = sim.NopAudio{}
	if sound {
		board := audio.NewSoundBoard()
		if err := board.Initialize(); err != nil {
			log.WithError(err).Warn("audio unavailable, continuing without sound")
		} else {
			defer board.Cleanup()
			sink = board
		}
	}

	newSim := func() (*sim.Simulation, error) {
		opts := []sim.Option{sim.WithAudio(sink), sim.WithLogger(log)}
		if seed != 0 {
			opts = append(opts, sim.WithSeed(seed))
		}
		return sim.New(kind, difficulty, loadout, opts...)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.WithError(err).Fatal("no terminal")
	}
	if err := screen.Init(); err != nil {
		log.WithError(err).Fatal("terminal init failed")
	}
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.Clear()

	// Log lines would scribble over the screen; divert them until Fini.
	log.SetOutput(io.Discard)
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err == nil {
			defer f.Close()
			log.SetOutput(f)
		}
	}

	app, err := tui.NewApp(screen, newSim)
	if err != nil {
		screen.Fini()
		log.SetOutput(os.Stderr)
		log.WithError(err).Error("cannot start mission")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = app.Run(ctx)
	stop()
	screen.Fini()
	log.SetOutput(os.Stderr)

	if out := app.Sim().Outcome(); out != nil {
		log.WithField("run_id", app.Sim().RunID()).Info(out.String())
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Error("terminal loop failed")
		os.Exit(1)
	}
}
