package game

import (
	"github.com/Garsondee/Defender/internal/sim"
	"github.com/hajimehoshi/ebiten/v2"
)

// keyReader reports whether a key is currently held. Update passes
// ebiten.IsKeyPressed; tests pass a map lookup.
type keyReader func(ebiten.Key) bool

var (
	thrustKeys    = []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp}
	brakeKeys     = []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown}
	leftKeys      = []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}
	rightKeys     = []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}
	primaryKeys   = []ebiten.Key{ebiten.KeySpace, ebiten.Key1}
	secondaryKeys = []ebiten.Key{ebiten.KeyX, ebiten.Key2}
	tertiaryKeys  = []ebiten.Key{ebiten.KeyM, ebiten.Key3}
)

// Edge-triggered keys, tracked through prevKeys.
var edgeKeys = []ebiten.Key{
	ebiten.KeyEscape, ebiten.KeyY, ebiten.KeyN, ebiten.KeyP,
	ebiten.KeyR, ebiten.KeyF9, ebiten.KeyF10,
}

func anyPressed(pressed keyReader, keys []ebiten.Key) bool {
	for _, k := range keys {
		if pressed(k) {
			return true
		}
	}
	return false
}

// controls samples the held flight and fire keys.
func controls(pressed keyReader) sim.Input {
	return sim.Input{
		Thrust:        anyPressed(pressed, thrustKeys),
		Brake:         anyPressed(pressed, brakeKeys),
		Left:          anyPressed(pressed, leftKeys),
		Right:         anyPressed(pressed, rightKeys),
		FirePrimary:   anyPressed(pressed, primaryKeys),
		FireSecondary: anyPressed(pressed, secondaryKeys),
		FireTertiary:  anyPressed(pressed, tertiaryKeys),
	}
}

// handleInput processes the menu keys (edge-triggered) and returns the input
// for this frame's tick.
//
//	Esc  open the abort dialog, or close it
//	Y/N  confirm or cancel the abort
//	P    pause
//	R    restart once the mission is over
//	F9   copy a mission report to the clipboard
//	F10  mute
func (g *Game) handleInput(pressed keyReader) sim.Input {
	currentKeys := make(map[ebiten.Key]bool, len(edgeKeys))
	for _, k := range edgeKeys {
		currentKeys[k] = pressed(k)
	}
	just := func(k ebiten.Key) bool { return currentKeys[k] && !g.prevKeys[k] }
	defer func() { g.prevKeys = currentKeys }()

	ended := g.sim.Outcome() != nil
	in := controls(pressed)

	switch {
	case ended:
		g.confirmAbort = false
		if just(ebiten.KeyR) {
			g.restart()
		}
	case g.confirmAbort:
		switch {
		case just(ebiten.KeyY):
			g.confirmAbort = false
			in.Abort = true
		case just(ebiten.KeyN), just(ebiten.KeyEscape):
			g.confirmAbort = false
		}
	case just(ebiten.KeyEscape):
		g.confirmAbort = true
	case just(ebiten.KeyP):
		g.paused = !g.paused
	}

	if just(ebiten.KeyF9) {
		g.copyReport()
	}
	if just(ebiten.KeyF10) && g.sound != nil {
		g.sound.SetMuted(!g.sound.Muted())
		if g.sound.Muted() {
			g.setStatus("sound off")
		} else {
			g.setStatus("sound on")
		}
	}

	in.Pause = !in.Abort && (g.paused || g.confirmAbort)
	return in
}
