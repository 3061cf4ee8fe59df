package sim

import (
	"math"
	"slices"
	"strings"
	"testing"
)

func TestLetterGrade(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{100, "A+"}, {93, "A+"}, {92.9, "A"}, {85, "A"}, {78, "B+"},
		{70, "B"}, {62, "C+"}, {55, "C"}, {45, "D"}, {44.9, "F"}, {0, "F"},
	}
	for _, tc := range cases {
		if got := LetterGrade(tc.score); got != tc.want {
			t.Errorf("LetterGrade(%.1f) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestGradePilot_CleanWin(t *testing.T) {
	r := MissionReport{
		Ticks: 2000, State: MissionSucceeded, Reason: ReasonQuotaReached,
		Kills: 20, Required: 20,
		ShotsFired: 40, Hits: 30,
		FinalHealth: 100, MaxHealth: 100,
	}
	g := GradePilot(r)
	if g.Gunnery != 85 || g.Survival != 100 || g.Objective != 100 {
		t.Fatalf("sub-scores: %+v", g)
	}
	if g.Economy != -1 {
		t.Errorf("no drops means economy is ungraded, got %.1f", g.Economy)
	}
	if g.Score < 99.9 || g.Grade != "A+" {
		t.Errorf("expected a capped A+, got %.1f %s", g.Score, g.Grade)
	}
	if !slices.Contains(g.GoodTraits, "sharpshooter") || !slices.Contains(g.GoodTraits, "untouched") {
		t.Errorf("good traits: %v", g.GoodTraits)
	}
	if len(g.BadTraits) != 0 {
		t.Errorf("bad traits: %v", g.BadTraits)
	}
}

func TestGradePilot_ShotDown(t *testing.T) {
	r := MissionReport{
		Ticks: 1500, State: MissionFailed, Reason: ReasonPlayerDestroyed,
		Kills: 5, Required: 20,
		ShotsFired: 60, Hits: 6, FireDenied: 12,
		Rammed: 3, DamageTaken: 100, Drops: 4,
		MaxHealth: 100,
	}
	g := GradePilot(r)
	if g.Survival != 10 {
		t.Errorf("destroyed pilots survive with 10, got %.1f", g.Survival)
	}
	if math.Abs(g.Objective-22.5) > 1e-9 {
		t.Errorf("objective: %.2f", g.Objective)
	}
	if g.Economy != 40 {
		t.Errorf("economy: %.1f", g.Economy)
	}
	if g.Grade != "F" {
		t.Errorf("expected F, got %s (%.1f)", g.Grade, g.Score)
	}
	for _, want := range []string{"spray_and_pray", "dry_magazine", "rammer", "shot_down"} {
		if !slices.Contains(g.BadTraits, want) {
			t.Errorf("missing bad trait %s in %v", want, g.BadTraits)
		}
	}
}

func TestGradePilot_ShortRunOnlyGradesObjective(t *testing.T) {
	r := MissionReport{Ticks: 100, State: MissionRunning, Kills: 12, Required: 20, ShotsFired: 5}
	g := GradePilot(r)
	if g.Gunnery != -1 || g.Survival != -1 {
		t.Fatalf("short runs should leave gunnery and survival ungraded: %+v", g)
	}
	if math.Abs(g.Score-g.Objective) > 1e-9 || math.Abs(g.Objective-54) > 1e-9 {
		t.Errorf("score should equal the objective score 54, got %.1f/%.1f", g.Score, g.Objective)
	}
	out := g.Format()
	if !strings.Contains(out, "Grade: D (54.0)") || !strings.Contains(out, "gunnery=n/a") {
		t.Errorf("unexpected format:\n%s", out)
	}
	if strings.Contains(out, "Traits:") {
		t.Errorf("no traits line expected:\n%s", out)
	}
}

func TestGradePilot_Aborted(t *testing.T) {
	g := GradePilot(MissionReport{Ticks: 600, State: MissionFailed, Reason: ReasonAborted, Required: 20, MaxHealth: 100, FinalHealth: 100})
	if g.Objective != 0 || !slices.Contains(g.BadTraits, "abandoned") {
		t.Errorf("aborted run: %+v", g)
	}
}
