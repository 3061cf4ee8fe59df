package sim

import "math"

// Autopilot flies the ship from snapshots alone. It holds a firing line near
// the bottom of the screen, tracks the lowest threat horizontally and sidesteps
// incoming shots and rams. Headless runs and soak tests use it.
type Autopilot struct {
	LineOffset  float64 // preferred distance above the bottom edge
	Deadband    float64 // horizontal slack before correcting
	DodgeRadius float64 // how close a threat may get before sidestepping
}

func NewAutopilot() *Autopilot {
	return &Autopilot{LineOffset: 110, Deadband: 8, DodgeRadius: 90}
}

// Next returns the input for the coming tick.
func (a *Autopilot) Next(snap Snapshot) Input {
	in := Input{FirePrimary: true, FireSecondary: true, FireTertiary: true}
	me := snap.Player.Pos

	lineY := snap.Height - a.LineOffset
	switch {
	case me.Y > lineY+10:
		in.Thrust = true
	case me.Y < lineY-10:
		in.Brake = true
	}

	if dx, ok := a.threat(snap); ok {
		// Move away from the threat; prefer the side with more room.
		if dx > 0 || (dx == 0 && me.X > snap.Width/2) {
			in.Left = true
		} else {
			in.Right = true
		}
		return in
	}

	targetX, ok := a.target(snap)
	if !ok {
		targetX = snap.Width / 2
	}
	switch {
	case targetX > me.X+a.Deadband:
		in.Right = true
	case targetX < me.X-a.Deadband:
		in.Left = true
	}
	return in
}

// threat finds the nearest hostile shot or hostile body about to reach the
// ship and returns its horizontal offset (threat minus ship).
func (a *Autopilot) threat(snap Snapshot) (float64, bool) {
	me := snap.Player.Pos
	best := math.Inf(1)
	var dx float64
	consider := func(p Vec, reach float64) {
		if p.Y > me.Y+10 || math.Abs(p.X-me.X) > reach {
			return
		}
		if d := dist(p, me); d < a.DodgeRadius+reach && d < best {
			best, dx = d, p.X-me.X
		}
	}
	for _, pr := range snap.Projectiles {
		if pr.Hostile {
			consider(pr.Pos, 25)
		}
	}
	for _, h := range snap.Hostiles {
		consider(h.Pos, h.W/2+30)
	}
	return dx, !math.IsInf(best, 1)
}

// target picks the lowest hostile, or the boss when nothing else is near.
func (a *Autopilot) target(snap Snapshot) (float64, bool) {
	var (
		bestY = math.Inf(-1)
		x     float64
		found bool
	)
	for _, h := range snap.Hostiles {
		if h.Pos.Y > 0 && h.Pos.Y > bestY {
			bestY, x, found = h.Pos.Y, h.Pos.X, true
		}
	}
	if !found && snap.Boss != nil {
		return snap.Boss.Pos.X, true
	}
	return x, found
}
