package sim

import "time"

// Tuning holds every gameplay constant. Distances are playfield units,
// speeds are units per tick, durations are wall-clock.
type Tuning struct {
	Width, Height float64

	// Player movement envelope.
	SideMargin   float64 // keep-out from the left and right edges
	TopMargin    float64 // HUD strip at the top
	BottomMargin float64
	Accel        float64
	Drag         float64 // velocity multiplier applied every tick
	MaxHealth    float64
	FlashTicks   int // hit-flash length after any damage
	TicksPerSec  float64

	// Projectiles.
	ProjectileSpeed float64
	MuzzleOffset    float64 // spawn distance ahead of the ship nose
	BarrelSpacing   float64 // horizontal gap between simultaneous barrels
	MineDrift       float64 // downward drift so mines hold station against the scroll
	HomingGain      float64 // fraction of the heading error corrected per tick
	BoundsMargin    float64 // off-playfield distance before projectiles/hostiles are culled
	PlayerHitRadius float64 // hostile projectile vs player centre

	// Hostiles.
	HostileShotSpeed  float64
	HostileShotDamage float64
	ShooterFireTicks  float64
	WeaveAmplitude    float64
	WeaveFrequency    float64
	SpawnY            float64
	SpawnEdge         float64 // min distance from the side walls for new spawns
	SpawnBase         time.Duration
	SpawnDifficulty   float64 // interval = SpawnBase / (difficulty * SpawnDifficulty)
	CometSpawn        time.Duration
	ContactRadius     float64 // non-tumbler hostile vs player
	TumblerContactPad float64 // tumbler contact radius = width/2 + pad
	ContactDamage     [hostileKindCount]float64
	KillScore         int
	DropChance        float64

	// Boss.
	BossSize        float64
	BossHealth      float64 // per difficulty point
	BossStartY      float64
	BossHoverY      float64
	BossDescent     float64
	BossFlashTicks  int
	BossHitSparks   int
	BossSpawnsBonus bool

	// Pickups.
	PickupSize     float64
	PickupRadius   float64
	PickupFall     float64
	BonusFall      float64
	HealthRestore  float64
	AmmoRestore    int
	BonusAmmo      int
	BonusScore     int
	AttackQuota    float64 // kills per difficulty point
	DefendQuota    float64
	ParticleDecay  float64
	StarCount      int
	CometStarBoost float64 // star drift multiplier during comet missions

	// AnimateWhilePaused keeps the starfield drifting while the sim is paused.
	AnimateWhilePaused bool
}

// DefaultTuning returns the stock arcade feel on a 600x640 playfield.
func DefaultTuning() Tuning {
	return Tuning{
		Width:        600,
		Height:       640,
		SideMargin:   35,
		TopMargin:    60,
		BottomMargin: 35,
		Accel:        0.55,
		Drag:         0.92,
		MaxHealth:    100,
		FlashTicks:   10,
		TicksPerSec:  60,

		ProjectileSpeed: 12,
		MuzzleOffset:    20,
		BarrelSpacing:   24,
		MineDrift:       1,
		HomingGain:      0.12,
		BoundsMargin:    100,
		PlayerHitRadius: 20,

		HostileShotSpeed:  5,
		HostileShotDamage: 10,
		ShooterFireTicks:  120,
		WeaveAmplitude:    60,
		WeaveFrequency:    0.05,
		SpawnY:            -100,
		SpawnEdge:         20,
		SpawnBase:         1200 * time.Millisecond,
		SpawnDifficulty:   0.8,
		CometSpawn:        400 * time.Millisecond,
		ContactRadius:     45,
		TumblerContactPad: 5,
		ContactDamage: [hostileKindCount]float64{
			KindLightFast: 30,
			KindWeaver:    30,
			KindShooter:   30,
			KindTumbler:   40,
		},
		KillScore:  200,
		DropChance: 0.15,

		BossSize:        72,
		BossHealth:      8000,
		BossStartY:      -150,
		BossHoverY:      160,
		BossDescent:     0.4,
		BossFlashTicks:  5,
		BossHitSparks:   3,
		BossSpawnsBonus: true,

		PickupSize:     20,
		PickupRadius:   35,
		PickupFall:     1.5,
		BonusFall:      1,
		HealthRestore:  25,
		AmmoRestore:    20,
		BonusAmmo:      100,
		BonusScore:     5000,
		AttackQuota:    20,
		DefendQuota:    40,
		ParticleDecay:  0.03,
		StarCount:      100,
		CometStarBoost: 4,
	}
}

// playerStart is where a fresh ship appears.
func (t *Tuning) playerStart() Vec {
	return Vec{X: t.Width / 2, Y: t.Height - 100}
}

// movementBounds returns the rectangle the player centre is confined to.
func (t *Tuning) movementBounds() (minX, maxX, minY, maxY float64) {
	return t.SideMargin, t.Width - t.SideMargin, t.TopMargin, t.Height - t.BottomMargin
}
