package sim

import "math"

const (
	shipWidth  = 50
	shipHeight = 55
)

// Player is the controlled ship.
type Player struct {
	Body
	Vel         Vec
	Shield      float64
	ShieldCap   float64
	ShieldRegen float64 // points per second
	Flash       int

	weapons []weaponState
}

func newPlayer(t *Tuning, l Loadout) *Player {
	p := &Player{Body: newBody(t.playerStart(), shipWidth, shipHeight, t.MaxHealth)}
	if l.Shield != nil {
		p.ShieldCap = l.Shield.Capacity
		p.ShieldRegen = l.Shield.RegenRate
		p.Shield = p.ShieldCap
	}
	for _, w := range l.Weapons {
		p.weapons = append(p.weapons, newWeaponState(w))
	}
	return p
}

// integrate applies thrust, drag and the movement envelope for one tick.
func (p *Player) integrate(in Input, t *Tuning) {
	if in.Thrust {
		p.Vel.Y -= t.Accel
	}
	if in.Brake {
		p.Vel.Y += t.Accel
	}
	if in.Left {
		p.Vel.X -= t.Accel
	}
	if in.Right {
		p.Vel.X += t.Accel
	}
	p.Vel.X *= t.Drag
	p.Vel.Y *= t.Drag
	p.Pos = p.Pos.Add(p.Vel)

	minX, maxX, minY, maxY := t.movementBounds()
	p.Pos.X = clamp(p.Pos.X, minX, maxX)
	p.Pos.Y = clamp(p.Pos.Y, minY, maxY)
}

// ApplyDamage routes damage through the shield first and overflows the rest
// into health, which is floored at zero. It reports whether the shield took
// the hit.
func (p *Player) ApplyDamage(amount float64, flashTicks int) (shielded bool) {
	if amount <= 0 {
		return false
	}
	p.Flash = flashTicks
	if p.Shield > 0 {
		p.Shield -= amount
		if p.Shield < 0 {
			p.Health += p.Shield
			p.Shield = 0
		}
		shielded = true
	} else {
		p.Health -= amount
	}
	p.Health = math.Max(p.Health, 0)
	return shielded
}

// regen restores shield at ShieldRegen per second and counts the flash down.
func (p *Player) regen(t *Tuning) {
	if p.Shield < p.ShieldCap {
		p.Shield = math.Min(p.ShieldCap, p.Shield+p.ShieldRegen/t.TicksPerSec)
	}
	if p.Flash > 0 {
		p.Flash--
	}
}

// heal does nothing for a destroyed ship.
func (p *Player) heal(amount, limit float64) {
	if !p.Alive() {
		return
	}
	p.Health = math.Min(limit, p.Health+amount)
}

// restockAmmo adds n rounds to every ammo-based weapon.
func (p *Player) restockAmmo(n int) {
	for i := range p.weapons {
		if p.weapons[i].spec.AmmoBased {
			p.weapons[i].ammo += n
		}
	}
}
