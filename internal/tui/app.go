// Package tui hosts a simulation in a terminal through tcell.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Garsondee/Defender/internal/logger"
	"github.com/Garsondee/Defender/internal/sim"
	"github.com/gdamore/tcell/v2"
)

var errNoSimulation = errors.New("tui: NewSim is required")

// App drives one simulation per mission from terminal key events.
type App struct {
	screen tcell.Screen
	newSim func() (*sim.Simulation, error)
	sim    *sim.Simulation
	keys   *keyState

	paused       bool
	confirmAbort bool
	quit         bool
	abort        bool // consumed by the next frame
}

// NewApp builds the first mission. The screen must already be initialised;
// the caller owns Fini.
func NewApp(screen tcell.Screen, newSim func() (*sim.Simulation, error)) (*App, error) {
	if newSim == nil {
		return nil, errNoSimulation
	}
	s, err := newSim()
	if err != nil {
		return nil, err
	}
	return &App{screen: screen, newSim: newSim, sim: s, keys: newKeyState()}, nil
}

func (a *App) Sim() *sim.Simulation { return a.sim }

// Run polls input on its own goroutine and ticks once per frame until the
// player quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 32)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(sim.FrameDuration)
	defer ticker.Stop()

	for {
		// Drain everything that arrived since the previous frame.
	drain:
		for {
			select {
			case ev, ok := <-events:
				if !ok {
					return nil
				}
				a.handleEvent(ev, time.Now())
			default:
				break drain
			}
		}
		if a.quit {
			return nil
		}

		a.frame(time.Now())
		a.draw()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// frame ticks the simulation once with the controls held at now.
func (a *App) frame(now time.Time) *sim.Outcome {
	in := a.keys.input(now)
	in.Abort = a.abort
	in.Pause = !a.abort && (a.paused || a.confirmAbort)
	a.abort = false
	return a.sim.Tick(in)
}

func (a *App) handleEvent(ev tcell.Event, now time.Time) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		a.handleKey(ev.Key(), ev.Rune(), now)
	case *tcell.EventResize:
		a.screen.Sync()
	}
}

// handleKey applies one key press.
//
//	Esc    open the abort dialog, or close it
//	y/n    confirm or cancel the abort
//	p      pause
//	r      restart once the mission is over
//	q      quit
func (a *App) handleKey(k tcell.Key, r rune, now time.Time) {
	if k == tcell.KeyCtrlC {
		a.quit = true
		return
	}
	ended := a.sim.Outcome() != nil

	switch {
	case a.confirmAbort:
		switch {
		case r == 'y' || r == 'Y':
			a.confirmAbort = false
			a.abort = true
		case r == 'n' || r == 'N' || k == tcell.KeyEscape:
			a.confirmAbort = false
		}
		return
	case k == tcell.KeyEscape && !ended:
		a.confirmAbort = true
		a.keys.reset()
		return
	case k == tcell.KeyRune && (r == 'q' || r == 'Q'):
		a.quit = true
		return
	case k == tcell.KeyRune && (r == 'p' || r == 'P') && !ended:
		a.paused = !a.paused
		a.keys.reset()
		return
	case k == tcell.KeyRune && (r == 'r' || r == 'R') && ended:
		a.restart()
		return
	}

	if c, ok := mapKey(k, r); ok {
		a.keys.press(c, now)
	}
}

func (a *App) restart() {
	s, err := a.newSim()
	if err != nil {
		logger.Log.WithError(err).Error("restart failed")
		return
	}
	a.sim = s
	a.keys.reset()
	a.paused = false
	a.confirmAbort = false
}

func (a *App) draw() {
	a.screen.Clear()
	cols, rows := a.screen.Size()
	snap := a.sim.Snapshot()
	v := newViewport(cols, rows, snap.Width, snap.Height)

	renderWorld(a.screen, v, snap)
	renderHUD(a.screen, v, snap)
	if lines, style, ok := a.banner(snap); ok {
		renderBanner(a.screen, v, lines, style)
	}
	a.screen.Show()
}

// banner picks the overlay for the current state, if any.
func (a *App) banner(snap sim.Snapshot) ([]string, tcell.Style, bool) {
	switch {
	case snap.State == sim.MissionSucceeded:
		return []string{"MISSION COMPLETE", a.scoreLine(snap), "r restart  q quit"}, styleGood, true
	case snap.State == sim.MissionFailed:
		title := "MISSION FAILED"
		if snap.Reason == sim.ReasonAborted {
			title = "MISSION ABORTED"
		}
		return []string{title, a.scoreLine(snap), "r restart  q quit"}, styleWarn, true
	case a.confirmAbort:
		return []string{"Abort the mission?", "y abort  n resume"}, styleHUD, true
	case a.paused:
		return []string{"PAUSED", "p resume"}, styleHUD, true
	}
	return nil, styleHUD, false
}

func (a *App) scoreLine(snap sim.Snapshot) string {
	return fmt.Sprintf("score %d  grade %s", snap.Score, sim.GradePilot(a.sim.Report()).Grade)
}
