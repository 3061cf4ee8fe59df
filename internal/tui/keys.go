package tui

import (
	"time"

	"github.com/Garsondee/Defender/internal/sim"
	"github.com/gdamore/tcell/v2"
)

// holdWindow is how long a key counts as held after its last press or
// auto-repeat. Terminals never report key releases.
const holdWindow = 150 * time.Millisecond

type control int

const (
	ctlThrust control = iota
	ctlBrake
	ctlLeft
	ctlRight
	ctlPrimary
	ctlSecondary
	ctlTertiary
	controlCount
)

// mapKey resolves a terminal key to a flight or fire control.
func mapKey(k tcell.Key, r rune) (control, bool) {
	switch k {
	case tcell.KeyUp:
		return ctlThrust, true
	case tcell.KeyDown:
		return ctlBrake, true
	case tcell.KeyLeft:
		return ctlLeft, true
	case tcell.KeyRight:
		return ctlRight, true
	case tcell.KeyRune:
	default:
		return 0, false
	}
	switch r {
	case 'w', 'W':
		return ctlThrust, true
	case 's', 'S':
		return ctlBrake, true
	case 'a', 'A':
		return ctlLeft, true
	case 'd', 'D':
		return ctlRight, true
	case ' ', '1':
		return ctlPrimary, true
	case 'x', 'X', '2':
		return ctlSecondary, true
	case 'm', 'M', '3':
		return ctlTertiary, true
	}
	return 0, false
}

// keyState remembers when each control was last pressed.
type keyState struct {
	last [controlCount]time.Time
	hold time.Duration
}

func newKeyState() *keyState {
	return &keyState{hold: holdWindow}
}

func (ks *keyState) press(c control, now time.Time) {
	ks.last[c] = now
}

func (ks *keyState) held(c control, now time.Time) bool {
	t := ks.last[c]
	return !t.IsZero() && now.Sub(t) < ks.hold
}

// reset forgets every press, e.g. when a dialog opens.
func (ks *keyState) reset() {
	ks.last = [controlCount]time.Time{}
}

// input samples the held controls at now.
func (ks *keyState) input(now time.Time) sim.Input {
	return sim.Input{
		Thrust:        ks.held(ctlThrust, now),
		Brake:         ks.held(ctlBrake, now),
		Left:          ks.held(ctlLeft, now),
		Right:         ks.held(ctlRight, now),
		FirePrimary:   ks.held(ctlPrimary, now),
		FireSecondary: ks.held(ctlSecondary, now),
		FireTertiary:  ks.held(ctlTertiary, now),
	}
}
