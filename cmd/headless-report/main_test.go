package main

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/Garsondee/Defender/internal/sim"
	"github.com/sirupsen/logrus"
)

func quietLog() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testConfig(t *testing.T, ticks int) runConfig {
	t.Helper()
	l, err := sim.ParseLoadout("gun_basic:2,missile_seeker:10", "shield_light")
	if err != nil {
		t.Fatal(err)
	}
	return runConfig{kind: sim.MissionAttack, difficulty: 1, loadout: l, ticks: ticks}
}

func TestFirstTick(t *testing.T) {
	entries := []sim.SimLogEntry{
		{Tick: 3, Category: sim.LogWeapon, Key: "fired", Value: "gun_basic x2"},
		{Tick: 9, Category: sim.LogCombat, Key: "kill", Value: "weaver by cannon"},
		{Tick: 12, Category: sim.LogCombat, Key: "kill", Value: "tumbler by missile"},
	}
	if got := firstTick(entries, sim.LogCombat, "kill", ""); got != 9 {
		t.Errorf("first kill: got %d", got)
	}
	if got := firstTick(entries, sim.LogCombat, "kill", "missile"); got != 12 {
		t.Errorf("first missile kill: got %d", got)
	}
	if got := firstTick(entries, sim.LogPlayer, "damage", ""); got != -1 {
		t.Errorf("missing marker should be -1, got %d", got)
	}
}

func TestAggregate_CountsOutcomes(t *testing.T) {
	all := []runStats{
		{
			outcome:       &sim.Outcome{Success: true, Reason: sim.ReasonQuotaReached, Tick: 1000},
			report:        sim.MissionReport{Kills: 20, Score: 4000, ShotsFired: 100, Hits: 50},
			firstKillTick: 120,
			killsByKind:   map[string]int{"weaver": 12, "tumbler": 8},
		},
		{
			outcome:       &sim.Outcome{Reason: sim.ReasonPlayerDestroyed, Tick: 2000},
			report:        sim.MissionReport{Kills: 6, Score: 1200, DamageTaken: 100},
			firstKillTick: 300,
			killsByKind:   map[string]int{"weaver": 6},
		},
		{
			timedOut:      true,
			report:        sim.MissionReport{Kills: 1, Score: 200},
			firstKillTick: -1,
		},
	}
	a := aggregate(all)
	if a.runs != 3 || a.successes != 1 || a.failures != 1 || a.timeouts != 1 {
		t.Fatalf("unexpected tallies %+v", a)
	}
	if a.avgTicks != 1500 {
		t.Errorf("avg ticks should only count finished runs, got %.1f", a.avgTicks)
	}
	if a.avgKills != 9 {
		t.Errorf("avg kills: got %.1f", a.avgKills)
	}
	if a.killsByKind["weaver"] != 18 || a.killsByKind["tumbler"] != 8 {
		t.Errorf("kills by kind: %v", a.killsByKind)
	}
	if got := avgTickString(a.firstKillTicks); got != "210.0" {
		t.Errorf("first kill average: %s", got)
	}
	if a.reasons["quota_reached"] != 1 || a.reasons["player_destroyed"] != 1 || len(a.reasons) != 2 {
		t.Errorf("reasons: %v", a.reasons)
	}
	if r := a.winRate(); r < 33 || r > 34 {
		t.Errorf("win rate: %.1f", r)
	}
}

func TestJoinCounts(t *testing.T) {
	if got := joinCounts(map[string]int{"b": 2, "a": 1}); got != "a=1,b=2" {
		t.Errorf("got %q", got)
	}
	if got := joinCounts(nil); got != "none" {
		t.Errorf("got %q", got)
	}
}

func TestRunAll_OrderedAndDeterministic(t *testing.T) {
	cfg := testConfig(t, 600)
	first, err := runAll(context.Background(), cfg, 3, 7, 5, 3, quietLog())
	if err != nil {
		t.Fatalf("runAll: %v", err)
	}
	for i, rs := range first {
		if rs.runIndex != i+1 || rs.seed != 7+int64(i)*5 {
			t.Fatalf("run %d out of order: index=%d seed=%d", i, rs.runIndex, rs.seed)
		}
		if rs.report.Ticks == 0 {
			t.Fatalf("run %d did not tick", rs.runIndex)
		}
	}

	again, err := runAll(context.Background(), cfg, 3, 7, 5, 1, quietLog())
	if err != nil {
		t.Fatalf("runAll: %v", err)
	}
	for i := range first {
		a, b := first[i].report, again[i].report
		a.RunID, b.RunID = "", ""
		if a != b {
			t.Errorf("seed %d not reproducible:\n%+v\n%+v", first[i].seed, a, b)
		}
	}
}

func TestRunAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := runAll(ctx, testConfig(t, 600), 2, 1, 1, 2, quietLog())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRunMission_BadConfig(t *testing.T) {
	cfg := testConfig(t, 10)
	cfg.difficulty = 0
	if _, err := runMission(context.Background(), cfg, 1, 1, quietLog()); !errors.Is(err, sim.ErrInvalidDifficulty) {
		t.Fatalf("expected ErrInvalidDifficulty, got %v", err)
	}
}

func TestPrintCatalog_ListsParsableIDs(t *testing.T) {
	var b strings.Builder
	printCatalog(&b)
	out := b.String()
	for _, id := range []string{"gun_basic", "laser_red", "missile_seeker", "mine_rack", "shield_light"} {
		if !strings.Contains(out, id) {
			t.Errorf("catalog missing %s:\n%s", id, out)
		}
	}
	for _, w := range sim.Weapons() {
		if _, err := sim.ParseLoadout(w.ID, "none"); err != nil {
			t.Errorf("listed weapon %s does not parse: %v", w.ID, err)
		}
	}
	for _, sh := range sim.Shields() {
		if _, err := sim.ParseLoadout("gun_basic", sh.ID); err != nil {
			t.Errorf("listed shield %s does not parse: %v", sh.ID, err)
		}
	}
}
