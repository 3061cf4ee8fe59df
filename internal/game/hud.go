package game

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/Defender/internal/sim"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const hudLineHeight = 15

var (
	hudText     = color.RGBA{R: 220, G: 225, B: 235, A: 255}
	hudDim      = color.RGBA{R: 120, G: 125, B: 140, A: 255}
	healthColor = color.RGBA{R: 80, G: 210, B: 100, A: 255}
	lowColor    = color.RGBA{R: 230, G: 70, B: 60, A: 255}
	winColor    = color.RGBA{R: 110, G: 230, B: 130, A: 255}
)

func (g *Game) drawText(screen *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, g.face, op)
}

// objectiveLine describes mission progress for the HUD.
func objectiveLine(snap sim.Snapshot) string {
	switch {
	case snap.Required > 0:
		return fmt.Sprintf("%s  %d/%d", snap.Mission, snap.Progress, snap.Required)
	case snap.Boss != nil:
		return fmt.Sprintf("%s  boss %d%%", snap.Mission, snap.Boss.Percent)
	}
	return snap.Mission.String()
}

// weaponLine shows one loadout slot: its trigger, name and ammo.
func weaponLine(w sim.WeaponView) string {
	key := map[sim.Trigger]string{
		sim.TriggerPrimary:   "1",
		sim.TriggerSecondary: "2",
		sim.TriggerTertiary:  "3",
	}[w.Category.Trigger()]
	if !w.AmmoBased {
		return fmt.Sprintf("[%s] %s", key, w.Name)
	}
	return fmt.Sprintf("[%s] %s %d", key, w.Name, w.Ammo)
}

func (g *Game) drawHUD(screen *ebiten.Image, snap sim.Snapshot) {
	p := snap.Player
	const x, barW = 8.0, 120.0

	hc := healthColor
	if p.Health < p.MaxHealth/4 {
		hc = lowColor
	}
	drawBar(screen, x, 8, barW, 8, p.Health/p.MaxHealth, hc)
	if p.ShieldCap > 0 {
		drawBar(screen, x, 19, barW, 5, p.Shield/p.ShieldCap, shieldColor)
	}

	g.drawText(screen, fmt.Sprintf("SCORE %d", snap.Score), float64(g.width)-110, 6, hudText)
	g.drawText(screen, objectiveLine(snap), x, 28, hudText)

	y := float64(g.height) - float64(len(snap.Weapons))*hudLineHeight - 6
	for _, w := range snap.Weapons {
		c := hudText
		switch {
		case w.AmmoBased && w.Ammo == 0:
			c = lowColor
		case !w.Ready:
			c = hudDim
		}
		g.drawText(screen, weaponLine(w), x, y, c)
		y += hudLineHeight
	}

	if snap.Boss != nil {
		bx := float64(g.width)/2 - 100
		drawBar(screen, bx, 30, 200, 6, float64(snap.Boss.Percent)/100, bossColor)
	}
}

// endBanner returns the headline and detail shown once the mission is over.
func endBanner(snap sim.Snapshot) (string, string) {
	switch snap.Reason {
	case sim.ReasonQuotaReached:
		return "MISSION COMPLETE", fmt.Sprintf("%d hostiles destroyed", snap.Progress)
	case sim.ReasonBossDestroyed:
		return "MISSION COMPLETE", "comet destroyed"
	case sim.ReasonPlayerDestroyed:
		return "MISSION FAILED", "your ship was destroyed"
	case sim.ReasonAborted:
		return "MISSION ABORTED", "returned to base"
	}
	return "", ""
}

func (g *Game) drawPanel(screen *ebiten.Image, lines []string, title string, tc color.Color) {
	w, h := 280.0, float64(40+hudLineHeight*len(lines))
	px, py := (float64(g.width)-w)/2, (float64(g.height)-h)/2
	vector.FillRect(screen, float32(px), float32(py), float32(w), float32(h), color.RGBA{R: 10, G: 12, B: 24, A: 230}, false)
	vector.StrokeRect(screen, float32(px), float32(py), float32(w), float32(h), 1, color.RGBA{R: 70, G: 80, B: 120, A: 255}, false)
	g.drawText(screen, title, px+14, py+10, tc)
	for i, l := range lines {
		g.drawText(screen, l, px+14, py+32+float64(i*hudLineHeight), hudText)
	}
}

func (g *Game) drawOverlays(screen *ebiten.Image, snap sim.Snapshot) {
	switch {
	case snap.State != sim.MissionRunning:
		title, detail := endBanner(snap)
		tc := lowColor
		if snap.State == sim.MissionSucceeded {
			tc = winColor
		}
		grade := sim.GradePilot(g.sim.Report())
		lines := []string{detail, fmt.Sprintf("score %d  grade %s", snap.Score, grade.Grade), "R restart  F9 copy report"}
		g.drawPanel(screen, lines, title, tc)
	case g.confirmAbort:
		g.drawPanel(screen, []string{"Abort the mission?", "Y abort  N resume"}, "PAUSED", hudText)
	case g.paused:
		g.drawText(screen, "PAUSED  P resume", float64(g.width)/2-56, float64(g.height)/2, hudText)
	}

	if g.statusTicks > 0 {
		g.drawText(screen, g.status, 8, 44, hudDim)
	}
}
