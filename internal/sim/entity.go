package sim

import "math"

// Vec is a position or displacement in playfield units.
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

func dist(a, b Vec) float64 { return a.Sub(b).Len() }

// Rect is an axis-aligned box; X,Y is the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies strictly inside r.
func (r Rect) Contains(p Vec) bool {
	return p.X > r.X && p.X < r.X+r.W && p.Y > r.Y && p.Y < r.Y+r.H
}

// Body is the shared shape of every damageable object: a centre point, a box
// extent and a health pool.
type Body struct {
	Pos       Vec
	W, H      float64
	Health    float64
	MaxHealth float64
}

func newBody(pos Vec, w, h, health float64) Body {
	return Body{Pos: pos, W: w, H: h, Health: health, MaxHealth: health}
}

// Bounds returns the box centred on Pos.
func (b *Body) Bounds() Rect {
	return Rect{X: b.Pos.X - b.W/2, Y: b.Pos.Y - b.H/2, W: b.W, H: b.H}
}

func (b *Body) Alive() bool { return b.Health > 0 }

// HealthRatio is Health/MaxHealth clamped to [0,1].
func (b *Body) HealthRatio() float64 {
	if b.MaxHealth <= 0 {
		return 0
	}
	return clamp(b.Health/b.MaxHealth, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// pan maps a horizontal position to stereo balance in [-1,1].
func pan(x, width float64) float64 {
	return clamp(x/width*2-1, -1, 1)
}

// normalizeAngle wraps a into (-π, π].
func normalizeAngle(a float64) float64 {
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}
