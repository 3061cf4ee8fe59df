// Package game hosts a simulation in an ebiten window: it samples the
// keyboard into sim.Input once per frame and draws the resulting snapshot.
// No gameplay rules live here.
package game

import (
	"errors"

	"github.com/Garsondee/Defender/internal/logger"
	"github.com/Garsondee/Defender/internal/sim"
	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

const statusTicks = 120

// SoundControl is the part of the audio backend the host toggles.
type SoundControl interface {
	SetMuted(bool)
	Muted() bool
}

// Config wires a Game. NewSim is called once up front and again for every
// restart, so each mission gets fresh state.
type Config struct {
	NewSim func() (*sim.Simulation, error)
	Sound  SoundControl // optional
}

// Game implements ebiten.Game.
type Game struct {
	newSim func() (*sim.Simulation, error)
	sim    *sim.Simulation
	sound  SoundControl
	feed   *EventFeed
	face   *text.GoXFace

	width, height int // playfield size, excluding the feed panel

	prevKeys     map[ebiten.Key]bool
	paused       bool
	confirmAbort bool

	status      string
	statusTicks int

	copyText func(string) error
}

var errNoSimulation = errors.New("game: Config.NewSim is required")

// New builds the first mission through cfg.NewSim.
func New(cfg Config) (*Game, error) {
	if cfg.NewSim == nil {
		return nil, errNoSimulation
	}
	s, err := cfg.NewSim()
	if err != nil {
		return nil, err
	}
	t := s.Tuning()
	return &Game{
		newSim:   cfg.NewSim,
		sim:      s,
		sound:    cfg.Sound,
		feed:     NewEventFeed(),
		face:     text.NewGoXFace(basicfont.Face7x13),
		width:    int(t.Width),
		height:   int(t.Height),
		prevKeys: map[ebiten.Key]bool{},
		copyText: clipboard.WriteAll,
	}, nil
}

// Sim returns the running simulation.
func (g *Game) Sim() *sim.Simulation {
	return g.sim
}

func (g *Game) Update() error {
	// Handle input every frame; the sim decides what pausing freezes.
	in := g.handleInput(ebiten.IsKeyPressed)
	g.sim.Tick(in)
	g.feed.Sync(g.sim.SimLog())
	if g.statusTicks > 0 {
		g.statusTicks--
	}
	return nil
}

// restart swaps in a fresh mission. On failure the finished one stays up.
func (g *Game) restart() {
	s, err := g.newSim()
	if err != nil {
		logger.Log.WithError(err).Error("restart failed")
		g.setStatus("restart failed")
		return
	}
	logger.Log.WithField("previous_run", g.sim.RunID()).Info("mission restarted")
	g.sim = s
	g.feed = NewEventFeed()
	g.paused = false
	g.confirmAbort = false
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusTicks = statusTicks
}

func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.sim.Snapshot()
	screen.Fill(spaceColor)

	g.drawWorld(screen, snap)
	g.drawHUD(screen, snap)
	g.drawOverlays(screen, snap)
	g.feed.Draw(screen, g.width, g.height)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width + feedPanelWidth, g.height
}

// GameWidth returns the playfield width (excluding the feed panel).
func (g *Game) GameWidth() int {
	return g.width
}
