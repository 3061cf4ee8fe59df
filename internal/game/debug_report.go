package game

import (
	"fmt"
	"strings"

	"github.com/Garsondee/Defender/internal/logger"
	"github.com/Garsondee/Defender/internal/sim"
)

const reportTicks = 600

// missionDebugReport assembles the text copied by F9: the mission tallies,
// a snapshot summary, per-hostile damage dealt by the player and the raw
// event log for the last lastTicks ticks.
func missionDebugReport(s *sim.Simulation, lastTicks int) string {
	if lastTicks <= 0 {
		lastTicks = 120
	}
	snap := s.Snapshot()
	toTick := snap.Tick
	fromTick := toTick - lastTicks + 1
	if fromTick < 0 {
		fromTick = 0
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- Defender debug report ---\n")
	fmt.Fprintf(&b, "run=%s seed=%d tick_range=[%d..%d]\n\n", s.RunID(), s.Seed(), fromTick, toTick)
	b.WriteString(s.Report().Format())
	b.WriteByte('\n')
	b.WriteString(s.SimLog().Summary(snap))
	b.WriteByte('\n')

	if dealt := damageByTarget(s.SimLog().FilterTickRange(fromTick, toTick)); len(dealt) > 0 {
		b.WriteString("damage dealt:\n")
		for _, d := range dealt {
			tag := ""
			if d.killed {
				tag = " [KILLED]"
			}
			fmt.Fprintf(&b, "  %-5s hits=%-3d dmg=%.0f%s\n", d.label, d.hits, d.damage, tag)
		}
		b.WriteByte('\n')
	}

	b.WriteString("events:\n")
	b.WriteString(s.SimLog().FormatRange(fromTick, toTick))
	return b.String()
}

type targetDamage struct {
	label  string
	hits   int
	damage float64
	killed bool
}

// damageByTarget folds hit and kill entries per target, in first-hit order.
func damageByTarget(entries []sim.SimLogEntry) []targetDamage {
	var out []targetDamage
	index := map[string]int{}
	for _, e := range entries {
		if e.Category != sim.LogCombat {
			continue
		}
		switch e.Key {
		case "hit", "boss_hit", "kill", "boss_down":
		default:
			continue
		}
		i, ok := index[e.Actor]
		if !ok {
			i = len(out)
			index[e.Actor] = i
			out = append(out, targetDamage{label: e.Actor})
		}
		switch e.Key {
		case "hit", "boss_hit":
			out[i].hits++
			out[i].damage += e.NumVal
		case "kill":
			// The killing blow is logged without its damage.
			out[i].hits++
			out[i].killed = true
		default:
			out[i].killed = true
		}
	}
	return out
}

func (g *Game) copyReport() {
	text := missionDebugReport(g.sim, reportTicks)
	if err := g.copyText(text); err != nil {
		logger.Log.WithError(err).Warn("clipboard unavailable")
		g.setStatus("copy failed")
		return
	}
	g.setStatus("report copied")
}
