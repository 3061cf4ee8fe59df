package sim

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"
)

func TestNew_RejectsBadConfig(t *testing.T) {
	if _, err := New(MissionAttack, 0, DefaultLoadout()); !errors.Is(err, ErrInvalidDifficulty) {
		t.Errorf("difficulty 0: expected ErrInvalidDifficulty, got %v", err)
	}
	if _, err := New(MissionAttack, 1, Loadout{}); !errors.Is(err, ErrInvalidLoadout) {
		t.Errorf("empty loadout: expected ErrInvalidLoadout, got %v", err)
	}
}

func TestNew_InitialState(t *testing.T) {
	s, err := New(MissionDefend, 2, DefaultLoadout(), WithSeed(7))
	if err != nil {
		t.Fatal(err)
	}
	snap := s.Snapshot()
	if snap.Player.Pos != (Vec{300, 540}) {
		t.Errorf("expected ship at (300,540), got %+v", snap.Player.Pos)
	}
	if snap.Player.Health != 100 || snap.Player.Shield != 100 {
		t.Errorf("expected full health and shield, got %.0f/%.0f", snap.Player.Health, snap.Player.Shield)
	}
	if snap.Required != 80 || snap.State != MissionRunning {
		t.Errorf("defend d=2: expected quota 80 running, got %d %s", snap.Required, snap.State)
	}
	if len(snap.Stars) != 100 {
		t.Errorf("expected 100 stars, got %d", len(snap.Stars))
	}
	if snap.Boss != nil {
		t.Error("only comet missions have a boss")
	}
	if s.RunID() == "" {
		t.Error("expected a run id")
	}
}

func TestNew_RunIDsAreUnique(t *testing.T) {
	a, _ := New(MissionAttack, 1, DefaultLoadout())
	b, _ := New(MissionAttack, 1, DefaultLoadout())
	if a.RunID() == b.RunID() {
		t.Fatalf("two runs share id %s", a.RunID())
	}
	c, _ := New(MissionAttack, 1, DefaultLoadout(), WithRunID("fixed"))
	if c.RunID() != "fixed" {
		t.Errorf("WithRunID ignored, got %s", c.RunID())
	}
}

func TestSnapshot_DoesNotAlias(t *testing.T) {
	s, _ := newQuietSim(t, MissionComet, mustLoadout(t, "gun_basic", ""))
	placeHostile(s, KindTumbler, Vec{100, 100}, 50)
	snap := s.Snapshot()
	snap.Stars[0].Pos.X = -999
	snap.Hostiles[0].Hull[0].X = -999
	snap.Boss.Percent = -1

	again := s.Snapshot()
	if again.Stars[0].Pos.X == -999 || again.Hostiles[0].Hull[0].X == -999 || again.Boss.Percent == -1 {
		t.Fatal("mutating a snapshot leaked into the simulation")
	}
}

func TestSpawner_FirstSpawnImmediate(t *testing.T) {
	h, err := NewHarness(MissionAttack, 1, DefaultLoadout(), WithSeed(3))
	if err != nil {
		t.Fatal(err)
	}
	h.Step(Input{})
	snap := h.Sim.Snapshot()
	if len(snap.Hostiles) != 1 {
		t.Fatalf("expected one hostile on the first tick, got %d", len(snap.Hostiles))
	}
	if x := h.Sim.hostiles[0].StartX; x < 20 || x > 580 {
		t.Errorf("spawn x=%.1f outside the side margins", x)
	}
}

func TestSpawner_IntervalScalesWithDifficulty(t *testing.T) {
	tu := DefaultTuning()
	easy := newSpawner(MissionAttack, 1, &tu)
	hard := newSpawner(MissionAttack, 5, &tu)
	if d := easy.interval - 1500*time.Millisecond; d < -time.Microsecond || d > time.Microsecond {
		t.Errorf("d=1: expected 1.5s, got %v", easy.interval)
	}
	if hard.interval >= easy.interval {
		t.Errorf("harder missions should spawn faster: %v vs %v", hard.interval, easy.interval)
	}
	comet := newSpawner(MissionComet, 5, &tu)
	if comet.interval != tu.CometSpawn || len(comet.kinds) != 1 || comet.kinds[0] != KindTumbler {
		t.Errorf("comet spawner: got %v %v", comet.interval, comet.kinds)
	}
}

func TestSpawner_QuotaMissionsNeverDrawTumblers(t *testing.T) {
	tu := DefaultTuning()
	for _, kind := range []MissionKind{MissionAttack, MissionDefend} {
		sp := newSpawner(kind, 1, &tu)
		rng := rand.New(rand.NewSource(9))
		seen := map[HostileKind]int{}
		for i := 0; i < 300; i++ {
			seen[sp.pick(rng)]++
		}
		if seen[KindTumbler] != 0 {
			t.Errorf("%s: drew %d tumblers", kind, seen[KindTumbler])
		}
		for _, k := range []HostileKind{KindLightFast, KindWeaver, KindShooter} {
			if seen[k] == 0 {
				t.Errorf("%s: never drew %s in 300 picks", kind, k)
			}
		}
	}
}

func TestSpawner_AttackRunLogsNoTumblers(t *testing.T) {
	tu := DefaultTuning()
	tu.SpawnBase = 100 * time.Millisecond
	h, err := NewHarness(MissionAttack, 1, DefaultLoadout(), WithSeed(3), WithTuning(tu))
	if err != nil {
		t.Fatal(err)
	}
	spawned := func(h *Harness) int { return h.Sim.SimLog().CountCategory(LogSpawn, "hostile") }
	h.RunUntil(func(h *Harness) bool { return spawned(h) >= 40 || h.Sim.Outcome() != nil }, 2000)

	if n := spawned(h); n < 5 {
		t.Fatalf("expected a stream of spawns, got %d", n)
	}
	if h.Sim.SimLog().HasEntry(LogSpawn, "hostile", "tumbler") {
		t.Errorf("tumblers spawned in an attack mission:\n%s", h.Sim.SimLog().Format())
	}
}

func TestSpawner_CometHeldUntilBossHovers(t *testing.T) {
	h, err := NewHarness(MissionComet, 1, DefaultLoadout(), WithSeed(5))
	if err != nil {
		t.Fatal(err)
	}
	h.RunTicks(200, Input{})
	if n := len(h.Sim.Snapshot().Hostiles); n != 0 {
		t.Fatalf("no hostiles may spawn while the boss descends, got %d", n)
	}
	h.Sim.boss.Pos.Y = h.Sim.tuning.BossHoverY
	h.Step(Input{})
	snap := h.Sim.Snapshot()
	if len(snap.Hostiles) != 1 || snap.Hostiles[0].Kind != KindTumbler {
		t.Fatalf("expected one tumbler once the boss hovers, got %+v", snap.Hostiles)
	}
}

func TestDeterminism_SameSeedSameRun(t *testing.T) {
	run := func() Snapshot {
		h, err := NewHarness(MissionAttack, 2, DefaultLoadout(), WithSeed(42))
		if err != nil {
			t.Fatal(err)
		}
		h.Fly(900)
		return h.Sim.Snapshot()
	}
	a, b := run(), run()
	if a.Tick != b.Tick || a.Score != b.Score || a.Progress != b.Progress || a.Player.Pos != b.Player.Pos {
		t.Fatalf("seeded runs diverged: tick %d/%d score %d/%d pos %+v/%+v",
			a.Tick, b.Tick, a.Score, b.Score, a.Player.Pos, b.Player.Pos)
	}
	if len(a.Hostiles) != len(b.Hostiles) {
		t.Fatalf("seeded runs diverged: %d vs %d hostiles", len(a.Hostiles), len(b.Hostiles))
	}
}

// --- Soak invariants ---

func TestInvariants_AutopilotSoak(t *testing.T) {
	missions := []struct {
		kind       MissionKind
		difficulty float64
		loadout    string
		shield     string
	}{
		{MissionAttack, 1, "gun_basic:2,missile_seeker:10", "shield_light"},
		{MissionDefend, 3, "laser_red,mine_rack:5", ""},
		{MissionComet, 1, "gun_basic:3,missile_seeker:20,mine_rack:3", "shield_heavy"},
	}
	for _, m := range missions {
		t.Run(m.kind.String(), func(t *testing.T) {
			ends := 0
			h, err := NewHarness(m.kind, m.difficulty, mustLoadout(t, m.loadout, m.shield),
				WithSeed(11), WithMissionEnd(func(Outcome) { ends++ }))
			if err != nil {
				t.Fatal(err)
			}
			var endTick int
			for i := 0; i < 4000; i++ {
				out := h.Step(h.Pilot.Next(h.Sim.Snapshot()))
				checkInvariants(t, h.Sim)
				if out != nil && endTick == 0 {
					endTick = h.Sim.tick
				}
				if out != nil && h.Sim.tick != endTick {
					t.Fatalf("tick advanced after the mission ended")
				}
			}
			if ends > 1 {
				t.Fatalf("mission end fired %d times", ends)
			}
			t.Logf("%s: %s", m.kind, h.Sim.Report().Format())
		})
	}
}

func checkInvariants(t *testing.T, s *Simulation) {
	t.Helper()
	p := s.player
	if p.Health < 0 || p.Health > p.MaxHealth {
		t.Fatalf("T=%d: health %.2f out of range", s.tick, p.Health)
	}
	if p.Shield < 0 || p.Shield > p.ShieldCap {
		t.Fatalf("T=%d: shield %.2f out of [0,%.0f]", s.tick, p.Shield, p.ShieldCap)
	}
	for _, w := range p.weapons {
		if w.ammo < 0 {
			t.Fatalf("T=%d: %s ammo %d", s.tick, w.spec.ID, w.ammo)
		}
	}
	for _, h := range s.hostiles {
		if !h.Alive() {
			t.Fatalf("T=%d: dead hostile H%d survived the tick", s.tick, h.ID)
		}
	}
	if s.mission.Running() {
		for _, pr := range s.projectiles {
			if s.outOfBounds(pr.Pos) {
				t.Fatalf("T=%d: projectile left alive out of bounds at %+v", s.tick, pr.Pos)
			}
		}
	}
	if s.mission.HasQuota() && s.mission.Progress > s.mission.Required && s.mission.Running() {
		t.Fatalf("T=%d: progress %d passed quota %d while running", s.tick, s.mission.Progress, s.mission.Required)
	}
}

// --- SimLog and reports ---

func TestSimLog_FilterAndFormat(t *testing.T) {
	sl := NewSimLog(false)
	sl.Add(1, "P", LogWeapon, "fired", "gun_basic x2", 2)
	sl.Add(2, "H3", LogCombat, "kill", "weaver by cannon", 1)
	sl.Add(3, "P", LogWeapon, "fired", "gun_basic x2", 2)
	sl.AddVerbose(3, "P", LogPlayer, "pos", "(1,2)", 0)

	if n := sl.CountCategory(LogWeapon, "fired"); n != 2 {
		t.Errorf("expected 2 fired, got %d", n)
	}
	if sum := sl.SumCategory(LogWeapon, "fired"); sum != 4 {
		t.Errorf("expected 4 projectiles, got %.0f", sum)
	}
	if len(sl.Entries()) != 3 {
		t.Errorf("verbose entry should be dropped, got %d entries", len(sl.Entries()))
	}
	if e, ok := sl.LastOf(LogWeapon, ""); !ok || e.Tick != 3 {
		t.Errorf("LastOf: got %+v %v", e, ok)
	}
	if !sl.HasEntry(LogCombat, "kill", "weaver") {
		t.Error("HasEntry should match the value substring")
	}
	if got := len(sl.FilterActor("H3")); got != 1 {
		t.Errorf("FilterActor: expected 1, got %d", got)
	}
	if !strings.Contains(sl.FormatRange(2, 2), "[T=002] H3") {
		t.Errorf("FormatRange output unexpected:\n%s", sl.FormatRange(2, 2))
	}
}

func TestReport_TalliesFromLog(t *testing.T) {
	s, clock := newQuietSim(t, MissionAttack, mustLoadout(t, "gun_basic:2,missile_seeker:1", "shield_light"))
	for i := 0; i < 3; i++ {
		s.Tick(Input{FirePrimary: true, FireSecondary: true})
		clock.Advance(750 * time.Millisecond)
	}
	p := s.player.Pos
	placeShot(s, Vec{p.X, p.Y - 10}, Vec{0, 5}, 10, true)
	s.Tick(Input{})

	r := s.Report()
	if r.ShotsFired != 7 {
		t.Errorf("expected 3 twin-cannon shots and 1 missile = 7 projectiles, got %d", r.ShotsFired)
	}
	if r.FireDenied != 2 {
		t.Errorf("expected 2 denied missile attempts, got %d", r.FireDenied)
	}
	if r.DamageTaken != 10 || r.ShieldAbsorbed != 10 {
		t.Errorf("expected 10 taken and absorbed, got %.0f/%.0f", r.DamageTaken, r.ShieldAbsorbed)
	}
	if !strings.Contains(r.Format(), "Kills: 0/20") {
		t.Errorf("report format missing quota line:\n%s", r.Format())
	}
}

func TestMissionReporter_Window(t *testing.T) {
	r := NewMissionReporter(120)
	for tick := 60; tick <= 600; tick += 60 {
		r.Collect(Snapshot{
			Tick:     tick,
			Score:    tick * 10,
			Progress: tick / 60,
			Player:   PlayerView{Health: float64(100 - tick/10)},
			Hostiles: make([]HostileView, tick/60),
		})
	}
	w := r.WindowSummary()
	if w.FromTick != 480 || w.ToTick != 600 || w.Samples != 3 {
		t.Fatalf("expected window 480..600 with 3 samples, got %d..%d (%d)", w.FromTick, w.ToTick, w.Samples)
	}
	if w.MinHealth != 40 || w.PeakHostiles != 10 {
		t.Errorf("expected min health 40 peak 10, got %.0f %d", w.MinHealth, w.PeakHostiles)
	}
	if w.ScoreGained != 1200 || w.KillsGained != 2 {
		t.Errorf("expected gains 1200/2, got %d/%d", w.ScoreGained, w.KillsGained)
	}
	if r.Latest().Tick != 600 {
		t.Errorf("Latest: expected T=600, got %d", r.Latest().Tick)
	}
}

func TestAutopilot_DodgesIncomingShot(t *testing.T) {
	snap := Snapshot{
		Width: 600, Height: 640,
		Player:      PlayerView{Pos: Vec{300, 530}},
		Projectiles: []ProjectileView{{Pos: Vec{305, 480}, Hostile: true}},
	}
	in := NewAutopilot().Next(snap)
	if !in.Left || in.Right {
		t.Fatalf("shot slightly right of the ship: expected to break left, got %+v", in)
	}
	if !in.FirePrimary {
		t.Error("autopilot should keep firing while dodging")
	}
}

func TestAutopilot_TracksLowestHostile(t *testing.T) {
	snap := Snapshot{
		Width: 600, Height: 640,
		Player: PlayerView{Pos: Vec{300, 530}},
		Hostiles: []HostileView{
			{Pos: Vec{100, 100}, W: 30},
			{Pos: Vec{500, 250}, W: 30},
		},
	}
	in := NewAutopilot().Next(snap)
	if !in.Right {
		t.Fatalf("expected to move toward the lowest hostile at x=500, got %+v", in)
	}
}
