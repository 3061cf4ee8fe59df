package main

import (
	"flag"
	"os"

	"github.com/Garsondee/Defender/internal/audio"
	"github.com/Garsondee/Defender/internal/game"
	"github.com/Garsondee/Defender/internal/logger"
	"github.com/Garsondee/Defender/internal/sim"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var mission string
	var difficulty float64
	var weapons string
	var shield string
	var seed int64
	var mute bool
	var verbose bool

	flag.StringVar(&mission, "mission", "attack", "mission kind: attack, defend or comet")
	flag.Float64Var(&difficulty, "difficulty", 1, "difficulty multiplier (> 0)")
	flag.StringVar(&weapons, "weapons", "gun_basic:2,missile_seeker:10", "loadout as id[:count],...")
	flag.StringVar(&shield, "shield", "shield_light", "shield id, or none")
	flag.Int64Var(&seed, "seed", 0, "RNG seed (0 picks one from the clock)")
	flag.BoolVar(&mute, "mute", false, "start with sound off")
	flag.BoolVar(&verbose, "verbose", false, "record per-tick movement in the event log")
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

	sound := audio.NewSoundBoard()
	if err := sound.Initialize(); err != nil {
		log.WithError(err).Warn("audio unavailable, continuing without sound")
	}
	defer sound.Cleanup()
	sound.SetMuted(mute)

	newSim := func() (*sim.Simulation, error) {
		opts := []sim.Option{
			sim.WithAudio(sound),
			sim.WithLogger(log),
			sim.WithVerbose(verbose),
		}
		if seed != 0 {
			opts = append(opts, sim.WithSeed(seed))
		}
		return sim.New(kind, difficulty, loadout, opts...)
	}

	g, err := game.New(game.Config{NewSim: newSim, Sound: sound})
	if err != nil {
		log.WithError(err).Error("cannot start mission")
		os.Exit(1)
	}

	w, h := g.Layout(0, 0)
	ebiten.SetWindowTitle("Defender")
	ebiten.SetWindowSize(w, h)
	if err := ebiten.RunGame(g); err != nil {
		log.WithError(err).Error("game loop failed")
		sound.Cleanup()
		os.Exit(1)
	}
}
