package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/Garsondee/Defender/internal/sim"
	"github.com/gdamore/tcell/v2"
)

// cellWriter is the slice of tcell.Screen the renderer draws through.
type cellWriter interface {
	SetContent(x, y int, mainc rune, combc []rune, style tcell.Style)
}

// hudRows are reserved at the bottom of the terminal for the status lines.
const hudRows = 2

// viewport maps playfield coordinates onto terminal cells.
type viewport struct {
	cols, rows int // playfield cells, excluding the HUD
	w, h       float64
}

func newViewport(cols, rows int, w, h float64) viewport {
	rows -= hudRows
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	return viewport{cols: cols, rows: rows, w: w, h: h}
}

// cell returns the cell holding p, or false when p is off the playfield.
func (v viewport) cell(p sim.Vec) (int, int, bool) {
	if p.X < 0 || p.Y < 0 || p.X >= v.w || p.Y >= v.h {
		return 0, 0, false
	}
	return int(p.X / v.w * float64(v.cols)), int(p.Y / v.h * float64(v.rows)), true
}

// span returns how many cells a length covers horizontally and vertically,
// at least one each.
func (v viewport) span(w, h float64) (int, int) {
	cw := int(math.Ceil(w / v.w * float64(v.cols)))
	ch := int(math.Ceil(h / v.h * float64(v.rows)))
	return max(cw, 1), max(ch, 1)
}

var (
	styleBase    = tcell.StyleDefault.Background(tcell.ColorBlack)
	styleStar    = styleBase.Foreground(tcell.Color(240))
	stylePlayer  = styleBase.Foreground(tcell.ColorAqua).Bold(true)
	styleFlash   = styleBase.Foreground(tcell.ColorWhite).Bold(true)
	styleShot    = styleBase.Foreground(tcell.ColorYellow)
	styleEnemyFx = styleBase.Foreground(tcell.ColorRed)
	styleBoss    = styleBase.Foreground(tcell.ColorFuchsia)
	styleHUD     = styleBase.Foreground(tcell.ColorLightGray)
	styleWarn    = styleBase.Foreground(tcell.ColorRed).Bold(true)
	styleGood    = styleBase.Foreground(tcell.ColorGreen).Bold(true)
)

func hostileGlyph(k sim.HostileKind) (rune, tcell.Style) {
	switch k {
	case sim.KindLightFast:
		return 'v', styleBase.Foreground(tcell.ColorRed)
	case sim.KindWeaver:
		return 'w', styleBase.Foreground(tcell.ColorPurple)
	case sim.KindShooter:
		return 'V', styleBase.Foreground(tcell.ColorOrange)
	}
	return '@', styleBase.Foreground(tcell.Color(137))
}

func projectileGlyph(p sim.ProjectileView) (rune, tcell.Style) {
	if p.Hostile {
		return 'o', styleEnemyFx
	}
	switch p.Category {
	case sim.CategoryBeam:
		return '!', styleBase.Foreground(tcell.ColorHotPink)
	case sim.CategoryMissile:
		return '^', styleBase.Foreground(tcell.ColorWhite)
	case sim.CategoryMine:
		return '*', styleShot
	}
	return '|', styleShot
}

func pickupGlyph(k sim.PickupKind) (rune, tcell.Style) {
	switch k {
	case sim.PickupHealth:
		return '+', styleGood
	case sim.PickupAmmo:
		return '=', styleShot
	}
	return '$', styleBoss.Bold(true)
}

func drawString(s cellWriter, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}

func (v viewport) put(s cellWriter, p sim.Vec, r rune, style tcell.Style) {
	if x, y, ok := v.cell(p); ok {
		s.SetContent(x, y, r, nil, style)
	}
}

// renderWorld draws the playfield back to front. The caller clears first.
func renderWorld(s cellWriter, v viewport, snap sim.Snapshot) {
	for _, st := range snap.Stars {
		v.put(s, st.Pos, '.', styleStar)
	}
	for _, p := range snap.Pickups {
		r, st := pickupGlyph(p.Kind)
		v.put(s, p.Pos, r, st)
	}
	for _, h := range snap.Hostiles {
		r, st := hostileGlyph(h.Kind)
		v.put(s, h.Pos, r, st)
	}
	if b := snap.Boss; b != nil {
		style := styleBoss
		if b.Flash > 0 {
			style = styleFlash
		}
		cw, ch := v.span(b.W, b.H)
		if x0, y0, ok := v.cell(sim.Vec{X: b.Pos.X - b.W/2, Y: b.Pos.Y - b.H/2}); ok {
			for dy := 0; dy < ch; dy++ {
				for dx := 0; dx < cw; dx++ {
					s.SetContent(x0+dx, y0+dy, '#', nil, style)
				}
			}
		}
	}
	for _, p := range snap.Projectiles {
		r, st := projectileGlyph(p)
		v.put(s, p.Pos, r, st)
	}
	for _, p := range snap.Particles {
		if p.Life > 0.4 {
			v.put(s, p.Pos, '\'', styleShot)
		}
	}
	if pl := snap.Player; !pl.Destroyed {
		style := stylePlayer
		if pl.Flash > 0 && pl.Flash%2 == 0 {
			style = styleFlash
		}
		v.put(s, pl.Pos, 'A', style)
		if pl.Thrusting {
			v.put(s, sim.Vec{X: pl.Pos.X, Y: pl.Pos.Y + pl.H/2 + v.h/float64(v.rows)}, '"', styleEnemyFx)
		}
	}
}

// gauge renders ratio as a fixed-width bar.
func gauge(ratio float64, width int) string {
	ratio = math.Max(0, math.Min(1, ratio))
	full := int(math.Round(ratio * float64(width)))
	return strings.Repeat("█", full) + strings.Repeat("░", width-full)
}

func statusLine(snap sim.Snapshot) string {
	p := snap.Player
	var b strings.Builder
	fmt.Fprintf(&b, "HP %s %3.0f", gauge(p.Health/p.MaxHealth, 10), p.Health)
	if p.ShieldCap > 0 {
		fmt.Fprintf(&b, "  SH %s %3.0f", gauge(p.Shield/p.ShieldCap, 6), p.Shield)
	}
	fmt.Fprintf(&b, "  SCORE %d  %s", snap.Score, snap.Mission)
	switch {
	case snap.Required > 0:
		fmt.Fprintf(&b, " %d/%d", snap.Progress, snap.Required)
	case snap.Boss != nil:
		fmt.Fprintf(&b, " boss %d%%", snap.Boss.Percent)
	}
	return b.String()
}

func weaponsLine(snap sim.Snapshot) string {
	parts := make([]string, 0, len(snap.Weapons))
	for _, w := range snap.Weapons {
		key := w.Category.Trigger() + 1
		if w.AmmoBased {
			parts = append(parts, fmt.Sprintf("[%d] %s %d", key, w.Name, w.Ammo))
		} else {
			parts = append(parts, fmt.Sprintf("[%d] %s", key, w.Name))
		}
	}
	return strings.Join(parts, "  ")
}

func renderHUD(s cellWriter, v viewport, snap sim.Snapshot) {
	style := styleHUD
	if snap.Player.Health < snap.Player.MaxHealth/4 {
		style = styleWarn
	}
	drawString(s, 0, v.rows, statusLine(snap), style)
	drawString(s, 0, v.rows+1, weaponsLine(snap), styleHUD)
}

// renderBanner centres a boxed message over the playfield.
func renderBanner(s cellWriter, v viewport, lines []string, style tcell.Style) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	x0 := max((v.cols-width-4)/2, 0)
	y0 := max((v.rows-len(lines)-2)/2, 0)
	border := "+" + strings.Repeat("-", width+2) + "+"
	drawString(s, x0, y0, border, style)
	for i, l := range lines {
		pad := strings.Repeat(" ", width-len([]rune(l)))
		drawString(s, x0, y0+1+i, "| "+l+pad+" |", style)
	}
	drawString(s, x0, y0+1+len(lines), border, style)
}
