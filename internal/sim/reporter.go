package sim

import (
	"fmt"
	"strings"
)

// reportWindowTicks is the default sliding window for recent-behaviour reports (~10s at 60TPS).
const reportWindowTicks = 600

// --- Snapshot reports ---

// TickReport is a compact sample of one tick.
type TickReport struct {
	Tick          int
	Health        float64
	Shield        float64
	Hostiles      int
	HostileShots  int
	FriendlyShots int
	Pickups       int
	Score         int
	Progress      int
}

// WindowReport aggregates the samples inside the reporter window.
type WindowReport struct {
	FromTick, ToTick int
	Samples          int
	AvgHealth        float64
	MinHealth        float64
	AvgShield        float64
	AvgHostiles      float64
	PeakHostiles     int
	ScoreGained      int
	KillsGained      int
}

// MissionReporter samples snapshots and summarises recent play over a
// sliding window.
type MissionReporter struct {
	history     []TickReport
	windowTicks int
}

// NewMissionReporter creates a reporter with the given window size.
func NewMissionReporter(windowTicks int) *MissionReporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &MissionReporter{windowTicks: windowTicks}
}

// Collect records one sample. Call it periodically (e.g. every 60 ticks).
func (r *MissionReporter) Collect(snap Snapshot) {
	rep := TickReport{
		Tick:     snap.Tick,
		Health:   snap.Player.Health,
		Shield:   snap.Player.Shield,
		Hostiles: len(snap.Hostiles),
		Pickups:  len(snap.Pickups),
		Score:    snap.Score,
		Progress: snap.Progress,
	}
	for _, p := range snap.Projectiles {
		if p.Hostile {
			rep.HostileShots++
		} else {
			rep.FriendlyShots++
		}
	}
	r.history = append(r.history, rep)

	// Prune beyond two windows of once-a-second samples.
	maxKeep := r.windowTicks / 60 * 2
	if maxKeep < 100 {
		maxKeep = 100
	}
	if len(r.history) > maxKeep {
		r.history = r.history[len(r.history)-maxKeep:]
	}
}

// Latest returns the most recent sample, or nil if none collected yet.
func (r *MissionReporter) Latest() *TickReport {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// WindowSummary aggregates the samples within windowTicks of the latest one.
func (r *MissionReporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}
	latest := r.history[len(r.history)-1]
	cutoff := latest.Tick - r.windowTicks
	first := len(r.history) - 1
	for first > 0 && r.history[first-1].Tick >= cutoff {
		first--
	}
	window := r.history[first:]

	w := &WindowReport{
		FromTick:  window[0].Tick,
		ToTick:    latest.Tick,
		Samples:   len(window),
		MinHealth: window[0].Health,
	}
	for _, s := range window {
		w.AvgHealth += s.Health
		w.AvgShield += s.Shield
		w.AvgHostiles += float64(s.Hostiles)
		if s.Health < w.MinHealth {
			w.MinHealth = s.Health
		}
		if s.Hostiles > w.PeakHostiles {
			w.PeakHostiles = s.Hostiles
		}
	}
	n := float64(len(window))
	w.AvgHealth /= n
	w.AvgShield /= n
	w.AvgHostiles /= n
	w.ScoreGained = latest.Score - window[0].Score
	w.KillsGained = latest.Progress - window[0].Progress
	return w
}

func (w *WindowReport) Format() string {
	if w == nil {
		return "No data.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Window T=%d..%d (%d samples) ---\n", w.FromTick, w.ToTick, w.Samples)
	fmt.Fprintf(&sb, "Health: avg=%.1f min=%.1f  shield avg=%.1f\n", w.AvgHealth, w.MinHealth, w.AvgShield)
	fmt.Fprintf(&sb, "Hostiles: avg=%.1f peak=%d\n", w.AvgHostiles, w.PeakHostiles)
	fmt.Fprintf(&sb, "Gained: score=%d kills=%d\n", w.ScoreGained, w.KillsGained)
	return sb.String()
}

// --- Mission report ---

// MissionReport is the end-of-run digest built from the SimLog.
type MissionReport struct {
	RunID      string
	Seed       int64
	Mission    MissionKind
	Difficulty float64
	Ticks      int
	State      MissionState
	Reason     EndReason
	Score      int
	Kills      int
	Required   int

	ShotsFired     int
	FireDenied     int
	HostileShots   int
	Hits           int
	BossHits       int
	Rammed         int
	DamageTaken    float64
	ShieldAbsorbed float64
	Pickups        int
	Drops          int
	FinalHealth    float64
	FinalShield    float64
	MaxHealth      float64
}

// Report digests the run so far.
func (s *Simulation) Report() MissionReport {
	sl := s.simLog
	return MissionReport{
		RunID:          s.runID,
		Seed:           s.seed,
		Mission:        s.mission.Kind,
		Difficulty:     s.difficulty,
		Ticks:          s.tick,
		State:          s.mission.State,
		Reason:         s.mission.Reason,
		Score:          s.score,
		Kills:          s.mission.Progress,
		Required:       s.mission.Required,
		ShotsFired:     int(sl.SumCategory(LogWeapon, "fired")),
		FireDenied:     sl.CountCategory(LogWeapon, "denied"),
		HostileShots:   sl.CountCategory(LogWeapon, "hostile_fired"),
		Hits:           sl.CountCategory(LogCombat, "hit") + sl.CountCategory(LogCombat, "kill"),
		BossHits:       sl.CountCategory(LogCombat, "boss_hit"),
		Rammed:         sl.CountCategory(LogCombat, "contact"),
		DamageTaken:    sl.SumCategory(LogPlayer, "damage"),
		ShieldAbsorbed: sl.SumCategory(LogPlayer, "shield_absorb"),
		Pickups:        sl.CountCategory(LogPickup, "collected"),
		Drops:          sl.CountCategory(LogPickup, "drop"),
		FinalHealth:    s.player.Health,
		FinalShield:    s.player.Shield,
		MaxHealth:      s.player.MaxHealth,
	}
}

// Accuracy is hits per projectile fired.
func (r MissionReport) Accuracy() float64 {
	if r.ShotsFired == 0 {
		return 0
	}
	return float64(r.Hits+r.BossHits) / float64(r.ShotsFired)
}

func (r MissionReport) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Mission %s  run=%s seed=%d ===\n", r.Mission, r.RunID, r.Seed)
	fmt.Fprintf(&sb, "Difficulty: %.1f  ticks=%d  result=%s (%s)\n", r.Difficulty, r.Ticks, r.State, r.Reason)
	if r.Required > 0 {
		fmt.Fprintf(&sb, "Kills: %d/%d", r.Kills, r.Required)
	} else {
		fmt.Fprintf(&sb, "Kills: %d  boss_hits=%d", r.Kills, r.BossHits)
	}
	fmt.Fprintf(&sb, "  score=%d\n", r.Score)
	fmt.Fprintf(&sb, "Fire: shots=%d denied=%d hits=%d accuracy=%.2f\n", r.ShotsFired, r.FireDenied, r.Hits+r.BossHits, r.Accuracy())
	fmt.Fprintf(&sb, "Defence: taken=%.0f absorbed=%.0f rammed=%d hostile_shots=%d\n",
		r.DamageTaken, r.ShieldAbsorbed, r.Rammed, r.HostileShots)
	fmt.Fprintf(&sb, "Pickups: collected=%d dropped=%d\n", r.Pickups, r.Drops)
	fmt.Fprintf(&sb, "Final: hp=%.0f shield=%.0f\n", r.FinalHealth, r.FinalShield)
	sb.WriteString(GradePilot(r).Format())
	return sb.String()
}
