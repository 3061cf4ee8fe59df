package sim

import (
	"math/rand"
	"time"
)

var (
	mixedWave = []HostileKind{KindLightFast, KindWeaver, KindShooter}
	rockStorm = []HostileKind{KindTumbler}
)

// spawner schedules new hostiles on a wall-clock interval.
type spawner struct {
	interval time.Duration
	kinds    []HostileKind
	last     time.Time
	primed   bool
}

func newSpawner(kind MissionKind, difficulty float64, t *Tuning) spawner {
	if kind == MissionComet {
		return spawner{interval: t.CometSpawn, kinds: rockStorm}
	}
	interval := time.Duration(float64(t.SpawnBase) / (difficulty * t.SpawnDifficulty))
	return spawner{interval: interval, kinds: mixedWave}
}

// due reports whether the interval has elapsed. The first spawn is immediate.
func (sp *spawner) due(now time.Time) bool {
	return !sp.primed || now.Sub(sp.last) > sp.interval
}

func (sp *spawner) mark(now time.Time) {
	sp.last = now
	sp.primed = true
}

func (sp *spawner) pick(rng *rand.Rand) HostileKind {
	return sp.kinds[rng.Intn(len(sp.kinds))]
}

// spawnHostiles adds at most one hostile per tick. During a boss mission
// nothing spawns until the boss has reached its hover line.
func (s *Simulation) spawnHostiles(now time.Time) {
	if s.boss != nil && !s.boss.Hovering(&s.tuning) {
		return
	}
	if !s.spawner.due(now) {
		return
	}
	s.spawner.mark(now)

	kind := s.spawner.pick(s.rng)
	x := s.rng.Float64()*(s.tuning.Width-2*s.tuning.SpawnEdge) + s.tuning.SpawnEdge
	h := newHostile(s.allocID(), kind, Vec{x, s.tuning.SpawnY}, s.difficulty, s.rng)
	s.hostiles = append(s.hostiles, h)
	s.simLog.Add(s.tick, hostileLabel(h.ID), LogSpawn, "hostile", kind.String(), h.Health)
}
