package sim

import "math"

// Projectile is anything fired: cannon rounds, beams, missiles, mines and
// hostile shots. Speed and Heading are kept in sync with Vel.
type Projectile struct {
	Pos      Vec
	Vel      Vec
	Speed    float64
	Heading  float64 // radians, 0 = +X, -π/2 = straight up
	Damage   float64
	Category WeaponCategory
	Hostile  bool

	// Target is the locked hostile for missiles; zero means unguided.
	Target HostileID
}

func newProjectile(pos, vel Vec, damage float64, category WeaponCategory, hostile bool) *Projectile {
	return &Projectile{
		Pos:      pos,
		Vel:      vel,
		Speed:    vel.Len(),
		Heading:  math.Atan2(vel.Y, vel.X),
		Damage:   damage,
		Category: category,
		Hostile:  hostile,
	}
}

// guide turns the heading a fixed fraction of the way toward target, keeping
// speed constant. A nil target (lost lock) leaves the projectile unguided.
func (p *Projectile) guide(target *Body, gain float64) {
	if target == nil {
		return
	}
	d := target.Pos.Sub(p.Pos)
	bearing := math.Atan2(d.Y, d.X)
	p.Heading += normalizeAngle(bearing-p.Heading) * gain
	p.Vel = Vec{math.Cos(p.Heading) * p.Speed, math.Sin(p.Heading) * p.Speed}
}

// headingError is the signed angle from the current heading to target.
func (p *Projectile) headingError(target Vec) float64 {
	d := target.Sub(p.Pos)
	return normalizeAngle(math.Atan2(d.Y, d.X) - p.Heading)
}

func (p *Projectile) advance() {
	p.Pos = p.Pos.Add(p.Vel)
}
