package sim

import (
	"math"
	"math/rand"
)

// HostileID identifies a hostile (or the boss) for weak references such as
// missile locks. Zero is never assigned.
type HostileID uint64

// HostileKind selects a behavior.
type HostileKind int

const (
	KindLightFast HostileKind = iota // straight, fast descent
	KindWeaver                       // sinusoidal lateral motion
	KindShooter                      // slow, fires downward periodically
	KindTumbler                      // rotating irregular rock
	hostileKindCount
)

func (k HostileKind) String() string {
	switch k {
	case KindLightFast:
		return "light_fast"
	case KindWeaver:
		return "weaver"
	case KindShooter:
		return "shooter"
	case KindTumbler:
		return "tumbler"
	default:
		return "unknown"
	}
}

// hostileProfile is the per-kind baseline. Tumbler size and descent get a
// random spread on top of these.
type hostileProfile struct {
	health  float64 // per difficulty point
	size    float64
	descent float64
}

var hostileProfiles = [hostileKindCount]hostileProfile{
	KindLightFast: {health: 20, size: 30, descent: 3.5},
	KindWeaver:    {health: 30, size: 30, descent: 2.5},
	KindShooter:   {health: 60, size: 45, descent: 1},
	KindTumbler:   {health: 80, size: 40, descent: 2},
}

// rockShades is the palette index range for tumbler hulls.
const rockShades = 5

// Hostile is one enemy ship or rock.
type Hostile struct {
	Body
	ID        HostileID
	Kind      HostileKind
	Vel       Vec
	StartX    float64
	Phase     float64
	Rotation  float64
	Spin      float64
	FireTimer float64

	// Hull is the tumbler outline relative to Pos, before rotation.
	Hull  []Vec
	Shade int
}

func newHostile(id HostileID, kind HostileKind, pos Vec, difficulty float64, rng *rand.Rand) *Hostile {
	p := hostileProfiles[kind]
	size, descent := p.size, p.descent
	if kind == KindTumbler {
		size += rng.Float64() * 40
		descent += rng.Float64() * 2.5
	}
	h := &Hostile{
		Body:      newBody(pos, size, size, p.health*difficulty),
		ID:        id,
		Kind:      kind,
		Vel:       Vec{0, descent},
		StartX:    pos.X,
		Phase:     rng.Float64() * 2 * math.Pi,
		Rotation:  rng.Float64() * 2 * math.Pi,
		FireTimer: rng.Float64() * 100,
	}
	if kind == KindTumbler {
		h.Spin = (rng.Float64() - 0.5) * 0.04
		h.Shade = rng.Intn(rockShades)
		n := 6 + rng.Intn(6)
		h.Hull = make([]Vec, n)
		for i := range h.Hull {
			a := float64(i) / float64(n) * 2 * math.Pi
			r := size / 2 * (0.6 + rng.Float64()*0.7)
			h.Hull[i] = Vec{math.Cos(a) * r, math.Sin(a) * r}
		}
	}
	return h
}

// update advances the hostile one tick. A shooter whose timer expires
// returns the shot it fired.
func (h *Hostile) update(t *Tuning) *Projectile {
	h.Pos.Y += h.Vel.Y
	switch h.Kind {
	case KindWeaver:
		h.Pos.X = h.StartX + math.Sin(h.Pos.Y*t.WeaveFrequency+h.Phase)*t.WeaveAmplitude
	case KindShooter:
		h.FireTimer++
		if h.FireTimer > t.ShooterFireTicks {
			h.FireTimer = 0
			return newProjectile(h.Pos, Vec{0, t.HostileShotSpeed}, t.HostileShotDamage, CategoryCannon, true)
		}
	case KindTumbler:
		h.Rotation += h.Spin
	}
	return nil
}

// contactRadius is the centre distance at which the hostile rams the player.
func (h *Hostile) contactRadius(t *Tuning) float64 {
	if h.Kind == KindTumbler {
		return h.W/2 + t.TumblerContactPad
	}
	return t.ContactRadius
}

// --- Boss ---

// Boss is the comet-mission capital target. It descends to a hover line and
// stays there.
type Boss struct {
	Body
	ID    HostileID
	Flash int
}

func newBoss(id HostileID, t *Tuning, difficulty float64) *Boss {
	return &Boss{
		Body: newBody(Vec{t.Width / 2, t.BossStartY}, t.BossSize, t.BossSize, t.BossHealth*difficulty),
		ID:   id,
	}
}

func (b *Boss) update(t *Tuning) {
	if b.Pos.Y < t.BossHoverY {
		b.Pos.Y += t.BossDescent
	}
	if b.Flash > 0 {
		b.Flash--
	}
}

// Hovering reports whether the boss has reached its hover line.
func (b *Boss) Hovering(t *Tuning) bool {
	return b.Pos.Y >= t.BossHoverY
}

// HealthPercent rounds up so a live boss never reads 0%.
func (b *Boss) HealthPercent() int {
	return int(math.Ceil(b.HealthRatio() * 100))
}
