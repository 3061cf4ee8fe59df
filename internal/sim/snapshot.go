package sim

import "image/color"

// Snapshot is a read-only copy of everything a renderer or HUD needs.
// Nothing in it aliases mutable simulation state.
type Snapshot struct {
	Tick          int
	Width, Height float64
	Paused        bool

	Mission  MissionKind
	State    MissionState
	Reason   EndReason
	Progress int
	Required int
	Score    int

	Player  PlayerView
	Weapons []WeaponView
	Boss    *BossView // nil outside comet missions or once destroyed

	Hostiles    []HostileView
	Projectiles []ProjectileView
	Pickups     []PickupView
	Particles   []ParticleView
	Stars       []Star
}

type PlayerView struct {
	Pos       Vec
	W, H      float64
	Tilt      float64 // horizontal velocity, for banking the sprite
	Health    float64
	MaxHealth float64
	Shield    float64
	ShieldCap float64
	Flash     int
	Thrusting bool
	Destroyed bool
}

type WeaponView struct {
	ID        string
	Name      string
	Category  WeaponCategory
	AmmoBased bool
	Ammo      int
	Ready     bool
}

type BossView struct {
	Pos      Vec
	W, H     float64
	Percent  int
	Flash    int
	Hovering bool
}

type HostileView struct {
	ID       HostileID
	Kind     HostileKind
	Pos      Vec
	W, H     float64
	Health   float64 // ratio in [0,1]
	Rotation float64
	Hull     []Vec
	Shade    int
}

type ProjectileView struct {
	Pos      Vec
	Heading  float64
	Category WeaponCategory
	Hostile  bool
}

type PickupView struct {
	Pos  Vec
	Size float64
	Kind PickupKind
}

type ParticleView struct {
	Pos   Vec
	Life  float64
	Size  float64
	Color color.RGBA
}

// Snapshot copies the current state.
func (s *Simulation) Snapshot() Snapshot {
	now := s.clock.Now()
	p := s.player
	snap := Snapshot{
		Tick:     s.tick,
		Width:    s.tuning.Width,
		Height:   s.tuning.Height,
		Paused:   s.paused,
		Mission:  s.mission.Kind,
		State:    s.mission.State,
		Reason:   s.mission.Reason,
		Progress: s.mission.Progress,
		Required: s.mission.Required,
		Score:    s.score,
		Player: PlayerView{
			Pos:       p.Pos,
			W:         p.W,
			H:         p.H,
			Tilt:      p.Vel.X,
			Health:    p.Health,
			MaxHealth: p.MaxHealth,
			Shield:    p.Shield,
			ShieldCap: p.ShieldCap,
			Flash:     p.Flash,
			Thrusting: s.lastInput.Thrust,
			Destroyed: !p.Alive(),
		},
		Stars: append([]Star(nil), s.stars...),
	}

	snap.Weapons = make([]WeaponView, len(p.weapons))
	for i := range p.weapons {
		w := &p.weapons[i]
		snap.Weapons[i] = WeaponView{
			ID:        w.spec.ID,
			Name:      w.spec.Name,
			Category:  w.spec.Category,
			AmmoBased: w.spec.AmmoBased,
			Ammo:      w.ammo,
			Ready:     w.ready(now) && (!w.spec.AmmoBased || w.ammo > 0),
		}
	}

	if b := s.boss; b != nil {
		snap.Boss = &BossView{
			Pos:      b.Pos,
			W:        b.W,
			H:        b.H,
			Percent:  b.HealthPercent(),
			Flash:    b.Flash,
			Hovering: b.Hovering(&s.tuning),
		}
	}

	snap.Hostiles = make([]HostileView, 0, len(s.hostiles))
	for _, h := range s.hostiles {
		snap.Hostiles = append(snap.Hostiles, HostileView{
			ID:       h.ID,
			Kind:     h.Kind,
			Pos:      h.Pos,
			W:        h.W,
			H:        h.H,
			Health:   h.HealthRatio(),
			Rotation: h.Rotation,
			Hull:     append([]Vec(nil), h.Hull...),
			Shade:    h.Shade,
		})
	}

	snap.Projectiles = make([]ProjectileView, 0, len(s.projectiles))
	for _, pr := range s.projectiles {
		snap.Projectiles = append(snap.Projectiles, ProjectileView{
			Pos:      pr.Pos,
			Heading:  pr.Heading,
			Category: pr.Category,
			Hostile:  pr.Hostile,
		})
	}

	snap.Pickups = make([]PickupView, 0, len(s.pickups))
	for _, pk := range s.pickups {
		snap.Pickups = append(snap.Pickups, PickupView{Pos: pk.Pos, Size: pk.Size, Kind: pk.Kind})
	}

	snap.Particles = make([]ParticleView, 0, len(s.particles))
	for _, pt := range s.particles {
		snap.Particles = append(snap.Particles, ParticleView{Pos: pt.Pos, Life: pt.Life, Size: pt.Size, Color: pt.Color})
	}
	return snap
}
