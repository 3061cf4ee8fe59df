package sim

import (
	"math"
	"testing"
)

func testPlayer(shield, health float64) *Player {
	return &Player{
		Body:      Body{Health: health, MaxHealth: 100},
		Shield:    shield,
		ShieldCap: 100,
	}
}

func TestApplyDamage_ShieldAbsorbs(t *testing.T) {
	p := testPlayer(100, 100)
	if !p.ApplyDamage(40, 10) {
		t.Fatal("expected shield to report the hit")
	}
	if p.Shield != 60 || p.Health != 100 {
		t.Fatalf("expected shield=60 health=100, got shield=%.1f health=%.1f", p.Shield, p.Health)
	}
	if p.Flash != 10 {
		t.Errorf("expected flash=10, got %d", p.Flash)
	}
}

func TestApplyDamage_OverflowIntoHealth(t *testing.T) {
	p := testPlayer(30, 100)
	p.ApplyDamage(50, 10)
	if p.Shield != 0 || p.Health != 80 {
		t.Fatalf("expected shield=0 health=80, got shield=%.1f health=%.1f", p.Shield, p.Health)
	}
}

func TestApplyDamage_UnshieldedHitsHealth(t *testing.T) {
	p := testPlayer(0, 100)
	if p.ApplyDamage(30, 10) {
		t.Fatal("empty shield should not report the hit")
	}
	if p.Health != 70 {
		t.Fatalf("expected health=70, got %.1f", p.Health)
	}
}

func TestApplyDamage_HealthFloorsAtZero(t *testing.T) {
	p := testPlayer(0, 10)
	p.ApplyDamage(50, 10)
	if p.Health != 0 {
		t.Fatalf("expected health=0, got %.1f", p.Health)
	}
	if p.Alive() {
		t.Error("player at zero health should not be alive")
	}
}

func TestApplyDamage_ConservesPoolWhileShielded(t *testing.T) {
	for _, dmg := range []float64{1, 5, 29.5, 30, 60, 120} {
		p := testPlayer(30, 100)
		before := p.Shield + p.Health
		p.ApplyDamage(dmg, 10)
		if got := before - (p.Shield + p.Health); math.Abs(got-dmg) > 1e-9 {
			t.Errorf("damage %.1f: pool dropped by %.3f", dmg, got)
		}
	}
}

func TestRegen_RatePerSecondAndCap(t *testing.T) {
	tu := DefaultTuning()
	p := testPlayer(50, 100)
	p.ShieldRegen = 2
	for i := 0; i < 60; i++ {
		p.regen(&tu)
	}
	if math.Abs(p.Shield-52) > 1e-9 {
		t.Fatalf("expected shield=52 after one second, got %.6f", p.Shield)
	}

	p.Shield = 99.99
	p.regen(&tu)
	if p.Shield != 100 {
		t.Fatalf("expected shield capped at 100, got %.6f", p.Shield)
	}
}

func TestRegen_CountsFlashDown(t *testing.T) {
	tu := DefaultTuning()
	p := testPlayer(0, 100)
	p.Flash = 2
	p.regen(&tu)
	p.regen(&tu)
	p.regen(&tu)
	if p.Flash != 0 {
		t.Fatalf("expected flash=0, got %d", p.Flash)
	}
}

func TestIntegrate_ThrustAndDrag(t *testing.T) {
	tu := DefaultTuning()
	p := newPlayer(&tu, DefaultLoadout())
	startY := p.Pos.Y
	p.integrate(Input{Thrust: true}, &tu)
	wantVel := -tu.Accel * tu.Drag
	if math.Abs(p.Vel.Y-wantVel) > 1e-9 {
		t.Fatalf("expected vy=%.4f, got %.4f", wantVel, p.Vel.Y)
	}
	if math.Abs(p.Pos.Y-(startY+wantVel)) > 1e-9 {
		t.Fatalf("expected y=%.4f, got %.4f", startY+wantVel, p.Pos.Y)
	}

	// Coasting decays velocity geometrically.
	p.integrate(Input{}, &tu)
	if math.Abs(p.Vel.Y-wantVel*tu.Drag) > 1e-9 {
		t.Errorf("expected coasting vy=%.4f, got %.4f", wantVel*tu.Drag, p.Vel.Y)
	}
}

func TestIntegrate_StaysInsideEnvelope(t *testing.T) {
	tu := DefaultTuning()
	p := newPlayer(&tu, DefaultLoadout())
	minX, maxX, minY, maxY := tu.movementBounds()
	inputs := []Input{{Left: true, Thrust: true}, {Right: true, Brake: true}}
	for _, in := range inputs {
		for i := 0; i < 300; i++ {
			p.integrate(in, &tu)
			if p.Pos.X < minX || p.Pos.X > maxX || p.Pos.Y < minY || p.Pos.Y > maxY {
				t.Fatalf("tick %d: player left the envelope at (%.1f,%.1f)", i, p.Pos.X, p.Pos.Y)
			}
		}
	}
	if p.Pos.X != maxX || p.Pos.Y != maxY {
		t.Errorf("expected to be pinned at (%.0f,%.0f), got (%.1f,%.1f)", maxX, maxY, p.Pos.X, p.Pos.Y)
	}
}

func TestNewPlayer_ShieldFromLoadout(t *testing.T) {
	tu := DefaultTuning()
	l, err := ParseLoadout("gun_basic", "")
	if err != nil {
		t.Fatal(err)
	}
	p := newPlayer(&tu, l)
	if p.Shield != 0 || p.ShieldCap != 0 {
		t.Errorf("no shield equipped: expected 0/0, got %.0f/%.0f", p.Shield, p.ShieldCap)
	}
	p = newPlayer(&tu, DefaultLoadout())
	if p.Shield != 100 || p.ShieldCap != 100 {
		t.Errorf("light shield: expected 100/100, got %.0f/%.0f", p.Shield, p.ShieldCap)
	}
}
