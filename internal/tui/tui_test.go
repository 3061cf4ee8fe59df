package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Garsondee/Defender/internal/sim"
	"github.com/gdamore/tcell/v2"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// grid records SetContent calls, like a screen without a terminal.
type grid map[[2]int]rune

func (g grid) SetContent(x, y int, mainc rune, _ []rune, _ tcell.Style) {
	g[[2]int{x, y}] = mainc
}

func (g grid) row(y, width int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		if r, ok := g[[2]int{x, y}]; ok {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func (g grid) count(r rune) int {
	n := 0
	for _, c := range g {
		if c == r {
			n++
		}
	}
	return n
}

func TestMapKey(t *testing.T) {
	cases := []struct {
		key  tcell.Key
		r    rune
		want control
		ok   bool
	}{
		{tcell.KeyUp, 0, ctlThrust, true},
		{tcell.KeyLeft, 0, ctlLeft, true},
		{tcell.KeyRune, 'D', ctlRight, true},
		{tcell.KeyRune, 's', ctlBrake, true},
		{tcell.KeyRune, ' ', ctlPrimary, true},
		{tcell.KeyRune, '2', ctlSecondary, true},
		{tcell.KeyRune, 'm', ctlTertiary, true},
		{tcell.KeyRune, 'q', 0, false},
		{tcell.KeyEnter, 0, 0, false},
	}
	for _, tc := range cases {
		got, ok := mapKey(tc.key, tc.r)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("mapKey(%v, %q) = %v,%v; want %v,%v", tc.key, tc.r, got, ok, tc.want, tc.ok)
		}
	}
}

func TestKeyState_HoldWindow(t *testing.T) {
	ks := newKeyState()
	ks.press(ctlLeft, epoch)
	ks.press(ctlPrimary, epoch.Add(100*time.Millisecond))

	in := ks.input(epoch.Add(120 * time.Millisecond))
	if !in.Left || !in.FirePrimary || in.Right {
		t.Fatalf("expected left+fire held, got %+v", in)
	}
	in = ks.input(epoch.Add(holdWindow))
	if in.Left {
		t.Fatal("left should lapse exactly holdWindow after its press")
	}
	if !in.FirePrimary {
		t.Fatal("fire was pressed later and should still be held")
	}

	ks.reset()
	if in := ks.input(epoch.Add(110 * time.Millisecond)); in != (sim.Input{}) {
		t.Fatalf("reset should release everything, got %+v", in)
	}
}

func TestViewport_Cell(t *testing.T) {
	v := newViewport(60, 34, 600, 640)
	if v.rows != 32 {
		t.Fatalf("expected HUD rows reserved, got %d playfield rows", v.rows)
	}
	x, y, ok := v.cell(sim.Vec{X: 300, Y: 320})
	if !ok || x != 30 || y != 16 {
		t.Fatalf("centre maps to (%d,%d,%v)", x, y, ok)
	}
	if _, _, ok := v.cell(sim.Vec{X: 300, Y: -100}); ok {
		t.Fatal("off-screen spawns must not be drawn")
	}
	if _, _, ok := v.cell(sim.Vec{X: 600, Y: 10}); ok {
		t.Fatal("right edge is exclusive")
	}
}

func TestRenderWorld(t *testing.T) {
	v := newViewport(60, 34, 600, 640)
	snap := sim.Snapshot{
		Width: 600, Height: 640,
		Player: sim.PlayerView{Pos: sim.Vec{X: 300, Y: 540}, W: 50, H: 55},
		Hostiles: []sim.HostileView{
			{Kind: sim.KindWeaver, Pos: sim.Vec{X: 150, Y: 100}},
			{Kind: sim.KindTumbler, Pos: sim.Vec{X: 450, Y: 100}},
			{Kind: sim.KindShooter, Pos: sim.Vec{X: 150, Y: -50}},
		},
		Projectiles: []sim.ProjectileView{
			{Pos: sim.Vec{X: 300, Y: 400}, Category: sim.CategoryCannon},
			{Pos: sim.Vec{X: 150, Y: 400}, Hostile: true},
		},
		Pickups: []sim.PickupView{{Pos: sim.Vec{X: 450, Y: 300}, Kind: sim.PickupHealth}},
		Boss:    &sim.BossView{Pos: sim.Vec{X: 300, Y: 160}, W: 72, H: 72},
	}
	g := grid{}
	renderWorld(g, v, snap)

	want := map[[2]int]rune{
		{30, 27}: 'A',
		{15, 5}:  'w',
		{45, 5}:  '@',
		{30, 20}: '|',
		{15, 20}: 'o',
		{45, 15}: '+',
	}
	for at, r := range want {
		if g[at] != r {
			t.Errorf("cell %v: got %q, want %q", at, g[at], r)
		}
	}
	if g.count('V') != 0 {
		t.Error("hostiles above the playfield must not be drawn")
	}
	// 72 units is 7.2 columns and 3.6 rows, rounded up.
	if n := g.count('#'); n != 8*4 {
		t.Errorf("boss should cover 8x4 cells, got %d", n)
	}
}

func TestRenderHUDAndBanner(t *testing.T) {
	v := newViewport(80, 24, 600, 640)
	snap := sim.Snapshot{
		Mission: sim.MissionAttack, Required: 20, Progress: 3, Score: 600,
		Player: sim.PlayerView{Health: 50, MaxHealth: 100, Shield: 40, ShieldCap: 40},
		Weapons: []sim.WeaponView{
			{Name: "Auto-Cannon", Category: sim.CategoryCannon},
			{Name: "Stalker Missile", Category: sim.CategoryMissile, AmmoBased: true, Ammo: 9},
		},
	}
	g := grid{}
	renderHUD(g, v, snap)
	status := g.row(v.rows, 80)
	for _, want := range []string{"HP █████░░░░░  50", "SH ██████  40", "SCORE 600", "attack 3/20"} {
		if !strings.Contains(status, want) {
			t.Errorf("status line %q missing %q", status, want)
		}
	}
	if w := g.row(v.rows+1, 80); !strings.HasPrefix(w, "[1] Auto-Cannon  [2] Stalker Missile 9") {
		t.Errorf("unexpected weapons line %q", w)
	}

	g = grid{}
	renderBanner(g, v, []string{"PAUSED", "p resume"}, styleHUD)
	if g.count('+') != 4 {
		t.Errorf("banner should have four corners, got %d", g.count('+'))
	}
}

func TestGauge(t *testing.T) {
	if got := gauge(0.5, 4); got != "██░░" {
		t.Errorf("got %q", got)
	}
	if got := gauge(-1, 3); got != "░░░" {
		t.Errorf("negative ratio should clamp, got %q", got)
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 40)

	seed := int64(0)
	app, err := NewApp(screen, func() (*sim.Simulation, error) {
		seed++
		clock := sim.NewManualClock(epoch)
		return sim.New(sim.MissionAttack, 1, sim.DefaultLoadout(), sim.WithSeed(seed), sim.WithClock(clock))
	})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	return app
}

func TestNewApp_Errors(t *testing.T) {
	if _, err := NewApp(nil, nil); !errors.Is(err, errNoSimulation) {
		t.Fatalf("expected errNoSimulation, got %v", err)
	}
	boom := errors.New("boom")
	if _, err := NewApp(nil, func() (*sim.Simulation, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected factory error, got %v", err)
	}
}

func TestApp_HeldKeysReachTheSim(t *testing.T) {
	app := newTestApp(t)
	start := app.Sim().Snapshot().Player.Pos.X

	now := epoch
	for i := 0; i < 10; i++ {
		app.handleKey(tcell.KeyLeft, 0, now)
		app.frame(now)
		now = now.Add(sim.FrameDuration)
	}
	if x := app.Sim().Snapshot().Player.Pos.X; x >= start {
		t.Fatalf("holding left should move the ship left: %.1f -> %.1f", start, x)
	}
}

func TestApp_AbortDialog(t *testing.T) {
	app := newTestApp(t)
	app.frame(epoch)
	tick := app.Sim().Snapshot().Tick

	app.handleKey(tcell.KeyEscape, 0, epoch)
	app.frame(epoch)
	if app.Sim().Snapshot().Tick != tick {
		t.Fatal("the abort dialog should pause gameplay")
	}
	lines, _, ok := app.banner(app.Sim().Snapshot())
	if !ok || lines[0] != "Abort the mission?" {
		t.Fatalf("expected the abort prompt, got %v", lines)
	}

	app.handleKey(tcell.KeyRune, 'n', epoch)
	app.frame(epoch)
	if app.Sim().Snapshot().Tick != tick+1 {
		t.Fatal("n should resume")
	}

	app.handleKey(tcell.KeyEscape, 0, epoch)
	app.handleKey(tcell.KeyRune, 'y', epoch)
	out := app.frame(epoch)
	if out == nil || out.Reason != sim.ReasonAborted {
		t.Fatalf("expected an aborted mission, got %v", out)
	}
	lines, _, _ = app.banner(app.Sim().Snapshot())
	if lines[0] != "MISSION ABORTED" || !strings.Contains(lines[1], "grade F") {
		t.Fatalf("expected the abort banner with a grade, got %v", lines)
	}

	first := app.Sim().RunID()
	app.handleKey(tcell.KeyRune, 'r', epoch)
	if app.Sim().RunID() == first || app.Sim().Outcome() != nil {
		t.Fatal("r should start a fresh mission after the end")
	}
}

func TestApp_PauseAndQuit(t *testing.T) {
	app := newTestApp(t)
	app.handleKey(tcell.KeyRune, 'p', epoch)
	app.frame(epoch)
	if app.Sim().Snapshot().Tick != 0 {
		t.Fatal("paused frames must not advance the sim")
	}
	app.handleKey(tcell.KeyRune, 'r', epoch)
	if app.Sim().Seed() != 1 {
		t.Fatal("r must not restart a running mission")
	}
	app.handleKey(tcell.KeyCtrlC, 0, epoch)
	if !app.quit {
		t.Fatal("Ctrl-C should quit")
	}
}

func TestApp_Draw(t *testing.T) {
	app := newTestApp(t)
	app.frame(epoch)
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("draw panicked: %v", r)
		}
	}()
	app.draw()
}
