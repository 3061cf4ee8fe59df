package sim

import (
	"image/color"
	"math"
	"math/rand"
)

// PickupKind is what a collectible restores.
type PickupKind int

const (
	PickupHealth PickupKind = iota
	PickupAmmo
	PickupBonus
)

func (k PickupKind) String() string {
	switch k {
	case PickupHealth:
		return "health"
	case PickupAmmo:
		return "ammo"
	case PickupBonus:
		return "bonus"
	default:
		return "unknown"
	}
}

// Pickup drifts down the screen until collected or lost off the bottom.
type Pickup struct {
	Pos  Vec
	VY   float64
	Size float64
	Kind PickupKind
}

func newPickup(pos Vec, kind PickupKind, t *Tuning) *Pickup {
	vy := t.PickupFall
	if kind == PickupBonus {
		vy = t.BonusFall
	}
	return &Pickup{Pos: pos, VY: vy, Size: t.PickupSize, Kind: kind}
}

func (p *Pickup) advance() { p.Pos.Y += p.VY }

// --- Cosmetics ---

// Particle is a short-lived spark. It never affects gameplay.
type Particle struct {
	Pos   Vec
	Vel   Vec
	Life  float64 // 1 at birth, removed at 0
	Size  float64
	Color color.RGBA
}

var (
	sparkHot  = color.RGBA{0xfb, 0xbf, 0x24, 0xff}
	sparkCold = color.RGBA{0x60, 0xa5, 0xfa, 0xff}
	sparkBoss = color.RGBA{0xf4, 0x72, 0xb6, 0xff}
)

func newBurst(rng *rand.Rand, at Vec, n int, speed float64, c color.RGBA) []*Particle {
	out := make([]*Particle, n)
	for i := range out {
		a := rng.Float64() * 2 * math.Pi
		s := speed * (0.3 + rng.Float64()*0.7)
		out[i] = &Particle{
			Pos:   at,
			Vel:   Vec{math.Cos(a) * s, math.Sin(a) * s},
			Life:  1,
			Size:  1 + rng.Float64()*3,
			Color: c,
		}
	}
	return out
}

// Star is one background parallax point.
type Star struct {
	Pos   Vec
	Speed float64
	Size  float64
}

func newStarfield(rng *rand.Rand, t *Tuning) []Star {
	stars := make([]Star, t.StarCount)
	for i := range stars {
		stars[i] = Star{
			Pos:   Vec{rng.Float64() * t.Width, rng.Float64() * t.Height},
			Speed: 0.5 + rng.Float64()*4.5,
			Size:  1 + rng.Float64()*2,
		}
	}
	return stars
}
