package sim

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// WeaponCategory decides trigger binding, projectile motion and sound.
type WeaponCategory int

const (
	CategoryCannon WeaponCategory = iota
	CategoryBeam
	CategoryMissile
	CategoryMine
)

func (c WeaponCategory) String() string {
	switch c {
	case CategoryCannon:
		return "cannon"
	case CategoryBeam:
		return "beam"
	case CategoryMissile:
		return "missile"
	case CategoryMine:
		return "mine"
	default:
		return "unknown"
	}
}

// Trigger is one of the three fire buttons.
type Trigger int

const (
	TriggerPrimary Trigger = iota
	TriggerSecondary
	TriggerTertiary
)

// Trigger returns the fire button that discharges weapons of this category.
func (c WeaponCategory) Trigger() Trigger {
	switch c {
	case CategoryMissile:
		return TriggerSecondary
	case CategoryMine:
		return TriggerTertiary
	default:
		return TriggerPrimary
	}
}

// WeaponSpec describes one equipped weapon.
// For ammo-based weapons Count is the starting ammunition; otherwise it is
// the number of barrels that fire together.
type WeaponSpec struct {
	ID        string
	Name      string
	Category  WeaponCategory
	Damage    float64
	FireRate  float64 // shots per second
	AmmoBased bool
	Count     int
}

// Interval is the minimum wall-clock gap between two shots.
func (w WeaponSpec) Interval() time.Duration {
	if w.FireRate <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / w.FireRate)
}

// ShieldSpec describes the equipped shield generator.
type ShieldSpec struct {
	ID        string
	Name      string
	Capacity  float64
	RegenRate float64 // points per second
}

// Loadout is the equipment a mission starts with.
type Loadout struct {
	Weapons []WeaponSpec
	Shield  *ShieldSpec
}

// ErrInvalidLoadout is wrapped by every loadout validation failure.
var ErrInvalidLoadout = errors.New("invalid loadout")

// Validate rejects equipment the simulation cannot run.
func (l Loadout) Validate() error {
	if len(l.Weapons) == 0 {
		return fmt.Errorf("%w: no weapons equipped", ErrInvalidLoadout)
	}
	for _, w := range l.Weapons {
		switch {
		case w.FireRate <= 0:
			return fmt.Errorf("%w: %s: fire rate must be positive", ErrInvalidLoadout, w.ID)
		case w.Damage < 0:
			return fmt.Errorf("%w: %s: negative damage", ErrInvalidLoadout, w.ID)
		case w.Count < 0:
			return fmt.Errorf("%w: %s: negative count", ErrInvalidLoadout, w.ID)
		case w.Category < CategoryCannon || w.Category > CategoryMine:
			return fmt.Errorf("%w: %s: unknown category %d", ErrInvalidLoadout, w.ID, w.Category)
		}
	}
	if s := l.Shield; s != nil && (s.Capacity < 0 || s.RegenRate < 0) {
		return fmt.Errorf("%w: %s: negative shield capacity or regen", ErrInvalidLoadout, s.ID)
	}
	return nil
}

// --- Catalog ---

var weaponCatalog = []WeaponSpec{
	{ID: "gun_basic", Name: "Auto-Cannon", Category: CategoryCannon, Damage: 10, FireRate: 6},
	{ID: "laser_red", Name: "Ruby Beam", Category: CategoryBeam, Damage: 15, FireRate: 10},
	{ID: "missile_seeker", Name: "Stalker Missile", Category: CategoryMissile, Damage: 35, FireRate: 1.5, AmmoBased: true},
	{ID: "mine_rack", Name: "Static Mine", Category: CategoryMine, Damage: 120, FireRate: 0.5, AmmoBased: true},
}

var shieldCatalog = []ShieldSpec{
	{ID: "shield_light", Name: "Plasma Skin", Capacity: 100, RegenRate: 2},
	{ID: "shield_heavy", Name: "Aegis Core", Capacity: 500, RegenRate: 5},
}

// Weapons returns a copy of the weapon catalog.
func Weapons() []WeaponSpec {
	return append([]WeaponSpec(nil), weaponCatalog...)
}

// Shields returns a copy of the shield catalog.
func Shields() []ShieldSpec {
	return append([]ShieldSpec(nil), shieldCatalog...)
}

// WeaponByID looks up a catalog weapon; Count is left at zero.
func WeaponByID(id string) (WeaponSpec, bool) {
	for _, w := range weaponCatalog {
		if w.ID == id {
			return w, true
		}
	}
	return WeaponSpec{}, false
}

func ShieldByID(id string) (ShieldSpec, bool) {
	for _, s := range shieldCatalog {
		if s.ID == id {
			return s, true
		}
	}
	return ShieldSpec{}, false
}

// DefaultLoadout is a twin auto-cannon, ten seeker missiles and a light shield.
func DefaultLoadout() Loadout {
	l, err := ParseLoadout("gun_basic:2,missile_seeker:10", "shield_light")
	if err != nil {
		panic(err)
	}
	return l
}

// ParseLoadout builds a Loadout from a comma-separated "id[:count]" list and
// an optional shield id. An empty shield string or "none" means no shield.
//
//	ParseLoadout("gun_basic:2,missile_seeker:10", "shield_light")
func ParseLoadout(weapons, shield string) (Loadout, error) {
	var l Loadout
	for _, field := range strings.Split(weapons, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		id, countStr, hasCount := strings.Cut(field, ":")
		w, ok := WeaponByID(id)
		if !ok {
			return Loadout{}, fmt.Errorf("%w: unknown weapon %q", ErrInvalidLoadout, id)
		}
		w.Count = 1
		if hasCount {
			n, err := strconv.Atoi(countStr)
			if err != nil {
				return Loadout{}, fmt.Errorf("%w: weapon %s: bad count %q: %v", ErrInvalidLoadout, id, countStr, err)
			}
			w.Count = n
		}
		l.Weapons = append(l.Weapons, w)
	}
	switch shield = strings.TrimSpace(shield); shield {
	case "", "none":
	default:
		s, ok := ShieldByID(shield)
		if !ok {
			return Loadout{}, fmt.Errorf("%w: unknown shield %q", ErrInvalidLoadout, shield)
		}
		l.Shield = &s
	}
	if err := l.Validate(); err != nil {
		return Loadout{}, err
	}
	return l, nil
}

// --- Per-weapon runtime state ---

// weaponState tracks cooldown and ammunition for one equipped weapon.
type weaponState struct {
	spec     WeaponSpec
	ammo     int
	lastFire time.Time
	fired    bool
}

func newWeaponState(spec WeaponSpec) weaponState {
	ws := weaponState{spec: spec}
	if spec.AmmoBased {
		ws.ammo = spec.Count
	}
	return ws
}

// ready reports whether the cooldown has elapsed; a weapon that has never
// fired is always ready.
func (w *weaponState) ready(now time.Time) bool {
	return !w.fired || now.Sub(w.lastFire) > w.spec.Interval()
}

// barrels is how many projectiles one shot releases.
func (w *weaponState) barrels() int {
	if w.spec.AmmoBased || w.spec.Count < 1 {
		return 1
	}
	return w.spec.Count
}
