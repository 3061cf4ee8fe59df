package game

import (
	"image/color"
	"math"

	"github.com/Garsondee/Defender/internal/sim"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	spaceColor  = color.RGBA{R: 4, G: 6, B: 14, A: 255}
	starColor   = color.RGBA{R: 200, G: 210, B: 255, A: 255}
	shipColor   = color.RGBA{R: 120, G: 190, B: 255, A: 255}
	flameColor  = color.RGBA{R: 255, G: 150, B: 40, A: 220}
	shieldColor = color.RGBA{R: 80, G: 200, B: 255, A: 255}
	bossColor   = color.RGBA{R: 200, G: 60, B: 160, A: 255}
)

var hostileColors = map[sim.HostileKind]color.RGBA{
	sim.KindLightFast: {R: 230, G: 70, B: 60, A: 255},
	sim.KindWeaver:    {R: 170, G: 90, B: 230, A: 255},
	sim.KindShooter:   {R: 240, G: 150, B: 40, A: 255},
}

// Tumbler hull shades, indexed by HostileView.Shade.
var rockPalette = []color.RGBA{
	{R: 120, G: 110, B: 100, A: 255},
	{R: 95, G: 88, B: 80, A: 255},
	{R: 140, G: 125, B: 105, A: 255},
	{R: 105, G: 100, B: 110, A: 255},
	{R: 80, G: 72, B: 66, A: 255},
}

func projectileColor(p sim.ProjectileView) color.RGBA {
	if p.Hostile {
		return color.RGBA{R: 255, G: 80, B: 80, A: 255}
	}
	switch p.Category {
	case sim.CategoryBeam:
		return color.RGBA{R: 255, G: 40, B: 90, A: 255}
	case sim.CategoryMissile:
		return color.RGBA{R: 250, G: 250, B: 250, A: 255}
	case sim.CategoryMine:
		return color.RGBA{R: 250, G: 220, B: 60, A: 255}
	}
	return color.RGBA{R: 255, G: 240, B: 150, A: 255}
}

func pickupColor(k sim.PickupKind) color.RGBA {
	switch k {
	case sim.PickupHealth:
		return color.RGBA{R: 70, G: 220, B: 90, A: 255}
	case sim.PickupAmmo:
		return color.RGBA{R: 240, G: 200, B: 60, A: 255}
	}
	return color.RGBA{R: 255, G: 120, B: 230, A: 255}
}

// withAlpha scales a colour's alpha by a in [0,1], keeping it premultiplied.
func withAlpha(c color.RGBA, a float64) color.RGBA {
	a = math.Max(0, math.Min(1, a))
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

// rotated returns hull vertices turned by angle and moved to pos.
func rotated(hull []sim.Vec, pos sim.Vec, angle float64) []sim.Vec {
	sin, cos := math.Sincos(angle)
	out := make([]sim.Vec, len(hull))
	for i, v := range hull {
		out[i] = sim.Vec{
			X: pos.X + v.X*cos - v.Y*sin,
			Y: pos.Y + v.X*sin + v.Y*cos,
		}
	}
	return out
}

func fillPolygon(screen *ebiten.Image, pts []sim.Vec, c color.RGBA) {
	if len(pts) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(c)
	vector.FillPath(screen, &path, &vector.FillOptions{}, op)
}

func strokePolygon(screen *ebiten.Image, pts []sim.Vec, width float32, c color.RGBA) {
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, c, true)
	}
}

// drawWorld renders back to front: stars, pickups, hostiles, boss, shots,
// the player, then sparks on top.
func (g *Game) drawWorld(screen *ebiten.Image, snap sim.Snapshot) {
	for _, s := range snap.Stars {
		a := 0.3 + math.Min(s.Speed/5, 1)*0.7
		vector.FillRect(screen, float32(s.Pos.X), float32(s.Pos.Y), float32(s.Size), float32(s.Size), withAlpha(starColor, a), false)
	}

	for _, p := range snap.Pickups {
		c := pickupColor(p.Kind)
		half := float32(p.Size / 2)
		vector.FillRect(screen, float32(p.Pos.X)-half, float32(p.Pos.Y)-half, float32(p.Size), float32(p.Size), withAlpha(c, 0.35), false)
		vector.StrokeRect(screen, float32(p.Pos.X)-half, float32(p.Pos.Y)-half, float32(p.Size), float32(p.Size), 2, c, false)
	}

	for _, h := range snap.Hostiles {
		drawHostile(screen, h)
	}
	if snap.Boss != nil {
		drawBoss(screen, *snap.Boss)
	}
	for _, p := range snap.Projectiles {
		drawProjectile(screen, p)
	}
	if !snap.Player.Destroyed {
		drawPlayer(screen, snap.Player, snap.Tick)
	}

	for _, p := range snap.Particles {
		vector.FillCircle(screen, float32(p.Pos.X), float32(p.Pos.Y), float32(p.Size), withAlpha(p.Color, p.Life), false)
	}
}

func drawHostile(screen *ebiten.Image, h sim.HostileView) {
	if h.Kind == sim.KindTumbler {
		pts := rotated(h.Hull, h.Pos, h.Rotation)
		fillPolygon(screen, pts, rockPalette[h.Shade%len(rockPalette)])
		strokePolygon(screen, pts, 1, color.RGBA{R: 40, G: 36, B: 32, A: 255})
		return
	}

	c := hostileColors[h.Kind]
	x, y := h.Pos.X, h.Pos.Y
	hw, hh := h.W/2, h.H/2
	// Hostiles fly nose-down.
	hull := []sim.Vec{
		{X: x, Y: y + hh},
		{X: x - hw, Y: y - hh},
		{X: x, Y: y - hh*0.4},
		{X: x + hw, Y: y - hh},
	}
	fillPolygon(screen, hull, c)

	if h.Health < 1 {
		drawBar(screen, x-hw, y-hh-6, h.W, 3, h.Health, c)
	}
}

func drawBoss(screen *ebiten.Image, b sim.BossView) {
	c := bossColor
	if b.Flash > 0 {
		c = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	cx, cy := float32(b.Pos.X), float32(b.Pos.Y)
	vector.FillCircle(screen, cx, cy, float32(b.W/2), withAlpha(c, 0.85), true)
	vector.StrokeCircle(screen, cx, cy, float32(b.W/2)+4, 2, withAlpha(c, 0.5), true)
	vector.FillCircle(screen, cx, cy, float32(b.W/6), color.RGBA{R: 255, G: 230, B: 120, A: 255}, true)
}

func drawProjectile(screen *ebiten.Image, p sim.ProjectileView) {
	c := projectileColor(p)
	x, y := float32(p.Pos.X), float32(p.Pos.Y)
	switch {
	case p.Hostile:
		vector.FillCircle(screen, x, y, 3, c, true)
	case p.Category == sim.CategoryMine:
		vector.StrokeCircle(screen, x, y, 5, 2, c, true)
	default:
		// Streak opposite to the heading.
		length := 10.0
		if p.Category == sim.CategoryBeam {
			length = 18
		}
		sin, cos := math.Sincos(p.Heading)
		tx, ty := float32(p.Pos.X-cos*length), float32(p.Pos.Y-sin*length)
		vector.StrokeLine(screen, tx, ty, x, y, 2, c, true)
	}
}

func drawPlayer(screen *ebiten.Image, p sim.PlayerView, tick int) {
	x, y := p.Pos.X, p.Pos.Y
	hw, hh := p.W/2, p.H/2
	bank := math.Max(-1, math.Min(1, p.Tilt/6)) * hw * 0.3

	if p.Thrusting {
		flicker := float64(tick%3) * 3
		flame := []sim.Vec{{X: x - 8, Y: y + hh - 4}, {X: x + 8, Y: y + hh - 4}, {X: x, Y: y + hh + 12 + flicker}}
		fillPolygon(screen, flame, flameColor)
	}

	c := shipColor
	if p.Flash > 0 && p.Flash%2 == 0 {
		c = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	hull := []sim.Vec{
		{X: x, Y: y - hh},
		{X: x + hw - bank, Y: y + hh},
		{X: x, Y: y + hh*0.5},
		{X: x - hw - bank, Y: y + hh},
	}
	fillPolygon(screen, hull, c)

	if p.ShieldCap > 0 && p.Shield > 0 {
		vector.StrokeCircle(screen, float32(x), float32(y), float32(math.Max(hw, hh)+6), 2, withAlpha(shieldColor, 0.2+0.6*p.Shield/p.ShieldCap), true)
	}
}

// drawBar fills a horizontal gauge at ratio of its width.
func drawBar(screen *ebiten.Image, x, y, w, h, ratio float64, c color.RGBA) {
	ratio = math.Max(0, math.Min(1, ratio))
	vector.FillRect(screen, float32(x), float32(y), float32(w), float32(h), color.RGBA{R: 30, G: 30, B: 40, A: 200}, false)
	vector.FillRect(screen, float32(x), float32(y), float32(w*ratio), float32(h), c, false)
}
