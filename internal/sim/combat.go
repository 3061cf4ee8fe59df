package sim

import (
	"fmt"
	"math"
	"time"
)

const bossLabel = "BOSS"

// --- Firing ---

// fireWeapons discharges every weapon whose trigger is held and whose
// cooldown has elapsed. An empty ammo weapon plays the denied cue and keeps
// its cooldown untouched.
func (s *Simulation) fireWeapons(in Input, now time.Time) {
	p := s.player
	for i := range p.weapons {
		w := &p.weapons[i]
		cat := w.spec.Category
		if !in.pulled(cat.Trigger()) || !w.ready(now) {
			continue
		}
		if w.spec.AmmoBased {
			if w.ammo <= 0 {
				s.audio.FireDenied(cat)
				s.simLog.Add(s.tick, "P", LogWeapon, "denied", w.spec.ID, 0)
				continue
			}
			w.ammo--
		}

		var target HostileID
		if cat == CategoryMissile {
			target = s.nearestTarget(p.Pos)
		}
		vel := Vec{0, -s.tuning.ProjectileSpeed}
		if cat == CategoryMine {
			vel = Vec{0, s.tuning.MineDrift}
		}
		n := w.barrels()
		for j := 0; j < n; j++ {
			offset := (float64(j) - float64(n-1)/2) * s.tuning.BarrelSpacing
			origin := Vec{p.Pos.X + offset, p.Pos.Y - s.tuning.MuzzleOffset}
			pr := newProjectile(origin, vel, w.spec.Damage, cat, false)
			pr.Target = target
			s.projectiles = append(s.projectiles, pr)
		}
		w.lastFire = now
		w.fired = true
		s.audio.WeaponFired(cat, s.panAt(p.Pos.X))
		s.simLog.Add(s.tick, "P", LogWeapon, "fired", fmt.Sprintf("%s x%d", w.spec.ID, n), float64(n))
	}
}

// nearestTarget picks the closest live hostile or boss for a missile lock.
func (s *Simulation) nearestTarget(from Vec) HostileID {
	var best HostileID
	bestDist := math.Inf(1)
	if s.boss != nil && s.boss.Alive() {
		best, bestDist = s.boss.ID, dist(from, s.boss.Pos)
	}
	for _, h := range s.hostiles {
		if !h.Alive() {
			continue
		}
		if d := dist(from, h.Pos); d < bestDist {
			best, bestDist = h.ID, d
		}
	}
	return best
}

// targetBody resolves a missile lock; nil means the target is gone.
func (s *Simulation) targetBody(id HostileID) *Body {
	if id == 0 {
		return nil
	}
	if s.boss != nil && s.boss.ID == id {
		if s.boss.Alive() {
			return &s.boss.Body
		}
		return nil
	}
	for _, h := range s.hostiles {
		if h.ID == id && h.Alive() {
			return &h.Body
		}
	}
	return nil
}

// --- Projectiles ---

// updateProjectiles moves, culls and resolves every projectile in two passes:
// the player's shots first (boss, then hostiles), then hostile shots against
// the player. Each projectile resolves against at most one target. If the
// boss dies the pass stops and the rest of the world is left as it was.
func (s *Simulation) updateProjectiles() {
	s.projectilePass(false)
	s.projectilePass(true)
	s.sweepHostiles()
}

// projectilePass advances and resolves the projectiles owned by one side,
// keeping list order.
func (s *Simulation) projectilePass(hostile bool) {
	t := &s.tuning
	kept := s.projectiles[:0]
	for _, pr := range s.projectiles {
		if pr.Hostile != hostile || s.outcome != nil {
			kept = append(kept, pr)
			continue
		}
		if pr.Target != 0 {
			pr.guide(s.targetBody(pr.Target), t.HomingGain)
		}
		pr.advance()
		if s.outOfBounds(pr.Pos) {
			continue
		}
		if s.resolveProjectile(pr) {
			continue
		}
		kept = append(kept, pr)
	}
	clear(s.projectiles[len(kept):])
	s.projectiles = kept
}

func (s *Simulation) outOfBounds(p Vec) bool {
	m := s.tuning.BoundsMargin
	return p.Y < -m || p.Y > s.tuning.Height+m || p.X < -m || p.X > s.tuning.Width+m
}

// resolveProjectile applies the first hit and reports whether the projectile
// was consumed. Friendly fire checks the boss first, then hostiles newest to
// oldest.
func (s *Simulation) resolveProjectile(pr *Projectile) bool {
	if pr.Hostile {
		if dist(pr.Pos, s.player.Pos) < s.tuning.PlayerHitRadius {
			s.damagePlayer(pr.Damage, "shot")
			return true
		}
		return false
	}
	if b := s.boss; b != nil && b.Alive() && b.Bounds().Contains(pr.Pos) {
		s.hitBoss(pr)
		return true
	}
	for i := len(s.hostiles) - 1; i >= 0; i-- {
		h := s.hostiles[i]
		if h.Alive() && h.Bounds().Contains(pr.Pos) {
			s.hitHostile(h, pr)
			return true
		}
	}
	return false
}

func (s *Simulation) hitBoss(pr *Projectile) {
	t := &s.tuning
	b := s.boss
	b.Health -= pr.Damage
	b.Flash = t.BossFlashTicks
	pn := s.panAt(pr.Pos.X)
	s.audio.Explosion(pn, 0.4)
	s.particles = append(s.particles, newBurst(s.rng, pr.Pos, t.BossHitSparks, 3, sparkBoss)...)
	s.simLog.Add(s.tick, bossLabel, LogCombat, "boss_hit", pr.Category.String(), pr.Damage)
	if b.Alive() {
		return
	}

	s.audio.Explosion(pn, 2.0)
	s.particles = append(s.particles, newBurst(s.rng, b.Pos, 40, 6, sparkBoss)...)
	if t.BossSpawnsBonus {
		s.pickups = append(s.pickups, newPickup(b.Pos, PickupBonus, t))
	}
	s.simLog.Add(s.tick, bossLabel, LogCombat, "boss_down", "", 0)
	s.boss = nil
	s.finish(true, ReasonBossDestroyed)
}

func (s *Simulation) hitHostile(h *Hostile, pr *Projectile) {
	t := &s.tuning
	h.Health -= pr.Damage
	pn := s.panAt(h.Pos.X)
	label := hostileLabel(h.ID)
	if h.Alive() {
		s.audio.Explosion(pn, 0.2)
		s.simLog.Add(s.tick, label, LogCombat, "hit", pr.Category.String(), pr.Damage)
		return
	}

	s.audio.Explosion(pn, 0.8)
	s.score += t.KillScore
	s.mission.recordKill()
	s.particles = append(s.particles, newBurst(s.rng, h.Pos, 12, 4, sparkHot)...)
	s.simLog.Add(s.tick, label, LogCombat, "kill",
		fmt.Sprintf("%s by %s", h.Kind, pr.Category), float64(s.mission.Progress))

	if s.rng.Float64() < t.DropChance {
		kind := PickupHealth
		if s.rng.Float64() < 0.5 {
			kind = PickupAmmo
		}
		s.pickups = append(s.pickups, newPickup(h.Pos, kind, t))
		s.simLog.Add(s.tick, label, LogPickup, "drop", kind.String(), 0)
	}
}

// sweepHostiles drops everything destroyed this tick.
func (s *Simulation) sweepHostiles() {
	kept := s.hostiles[:0]
	for _, h := range s.hostiles {
		if h.Alive() {
			kept = append(kept, h)
		}
	}
	clear(s.hostiles[len(kept):])
	s.hostiles = kept
}

// --- Hostiles ---

// updateHostiles moves each hostile, collects its shots and resolves ramming.
// Hostiles that fall off the bottom vanish without effect.
func (s *Simulation) updateHostiles() {
	t := &s.tuning
	kept := s.hostiles[:0]
	for _, h := range s.hostiles {
		shot := h.update(t)
		if h.Pos.Y > t.Height+t.BoundsMargin {
			continue
		}
		if shot != nil {
			s.projectiles = append(s.projectiles, shot)
			s.audio.WeaponFired(CategoryCannon, s.panAt(h.Pos.X))
			s.simLog.Add(s.tick, hostileLabel(h.ID), LogWeapon, "hostile_fired", h.Kind.String(), shot.Damage)
		}
		if dist(h.Pos, s.player.Pos) < h.contactRadius(t) {
			s.ram(h)
			continue
		}
		kept = append(kept, h)
	}
	clear(s.hostiles[len(kept):])
	s.hostiles = kept
}

// ram destroys h against the player. Collisions award no score or progress.
func (s *Simulation) ram(h *Hostile) {
	h.Health = 0
	s.audio.Explosion(s.panAt(h.Pos.X), 1.2)
	s.particles = append(s.particles, newBurst(s.rng, h.Pos, 16, 5, sparkHot)...)
	s.simLog.Add(s.tick, hostileLabel(h.ID), LogCombat, "contact", h.Kind.String(), s.tuning.ContactDamage[h.Kind])
	s.damagePlayer(s.tuning.ContactDamage[h.Kind], "contact")
}

// damagePlayer applies damage and the matching sound cue.
func (s *Simulation) damagePlayer(amount float64, source string) {
	p := s.player
	before := p.Shield
	shielded := p.ApplyDamage(amount, s.tuning.FlashTicks)
	pn := s.panAt(p.Pos.X)
	if shielded {
		s.audio.ShieldHit(pn)
		s.simLog.Add(s.tick, "P", LogPlayer, "shield_absorb", source, before-p.Shield)
	} else {
		s.audio.Explosion(pn, 0.5)
		s.particles = append(s.particles, newBurst(s.rng, p.Pos, 6, 3, sparkCold)...)
	}
	s.simLog.Add(s.tick, "P", LogPlayer, "damage", source, amount)
}

// --- Pickups ---

func (s *Simulation) updatePickups() {
	t := &s.tuning
	kept := s.pickups[:0]
	for _, pk := range s.pickups {
		pk.advance()
		if s.player.Alive() && dist(pk.Pos, s.player.Pos) < t.PickupRadius {
			s.collect(pk)
			continue
		}
		if pk.Pos.Y > t.Height {
			continue
		}
		kept = append(kept, pk)
	}
	clear(s.pickups[len(kept):])
	s.pickups = kept
}

func (s *Simulation) collect(pk *Pickup) {
	t := &s.tuning
	p := s.player
	switch pk.Kind {
	case PickupHealth:
		p.heal(t.HealthRestore, p.MaxHealth)
	case PickupAmmo:
		p.restockAmmo(t.AmmoRestore)
	case PickupBonus:
		p.restockAmmo(t.BonusAmmo)
		s.score += t.BonusScore
	}
	s.audio.PickupCollected(pk.Kind)
	s.simLog.Add(s.tick, "P", LogPickup, "collected", pk.Kind.String(), 0)
}
