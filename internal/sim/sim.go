package sim

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Input is the per-tick control state. Hosts translate their own key or
// pad bindings into it.
type Input struct {
	Thrust, Brake, Left, Right bool

	FirePrimary   bool // cannons and beams
	FireSecondary bool // missiles
	FireTertiary  bool // mines

	Pause bool // freeze gameplay this tick
	Abort bool // end the mission as a failure
}

func (in Input) pulled(t Trigger) bool {
	switch t {
	case TriggerPrimary:
		return in.FirePrimary
	case TriggerSecondary:
		return in.FireSecondary
	case TriggerTertiary:
		return in.FireTertiary
	}
	return false
}

// ErrInvalidDifficulty is returned by New for a non-positive difficulty.
var ErrInvalidDifficulty = errors.New("invalid difficulty")

// Simulation owns every entity of one mission and advances them one tick at
// a time. It is not safe for concurrent use; hosts drive it from one loop.
type Simulation struct {
	tuning     Tuning
	difficulty float64
	loadout    Loadout
	runID      string

	clock  Clock
	rng    *rand.Rand
	seed   int64
	audio  AudioSink
	onEnd  func(Outcome)
	log    logrus.FieldLogger
	simLog *SimLog

	tick      int
	paused    bool
	lastInput Input
	nextID    HostileID

	player      *Player
	boss        *Boss
	hostiles    []*Hostile
	projectiles []*Projectile
	pickups     []*Pickup
	particles   []*Particle
	stars       []Star

	spawner spawner
	mission Mission
	score   int
	outcome *Outcome
}

// Option configures a Simulation in New.
type Option func(*Simulation)

// WithSeed makes hostile placement, drops and cosmetics reproducible.
func WithSeed(seed int64) Option {
	return func(s *Simulation) { s.seed = seed }
}

func WithClock(c Clock) Option {
	return func(s *Simulation) { s.clock = c }
}

func WithAudio(a AudioSink) Option {
	return func(s *Simulation) {
		if a != nil {
			s.audio = a
		}
	}
}

// WithMissionEnd registers the callback invoked once when the mission ends.
func WithMissionEnd(fn func(Outcome)) Option {
	return func(s *Simulation) { s.onEnd = fn }
}

func WithTuning(t Tuning) Option {
	return func(s *Simulation) { s.tuning = t }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.log = l
		}
	}
}

// WithVerbose records per-tick player movement in the SimLog.
func WithVerbose(v bool) Option {
	return func(s *Simulation) { s.simLog = NewSimLog(v) }
}

// WithRunID overrides the generated run identifier.
func WithRunID(id string) Option {
	return func(s *Simulation) { s.runID = id }
}

// New builds a mission ready for its first tick.
func New(kind MissionKind, difficulty float64, loadout Loadout, opts ...Option) (*Simulation, error) {
	if difficulty <= 0 {
		return nil, fmt.Errorf("%w: %v (must be positive)", ErrInvalidDifficulty, difficulty)
	}
	if err := loadout.Validate(); err != nil {
		return nil, err
	}

	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	s := &Simulation{
		tuning:     DefaultTuning(),
		difficulty: difficulty,
		loadout:    loadout,
		clock:      SystemClock(),
		seed:       time.Now().UnixNano(),
		audio:      NopAudio{},
		log:        quiet,
		simLog:     NewSimLog(false),
	}
	for _, o := range opts {
		o(s)
	}
	if s.runID == "" {
		s.runID = uuid.NewString()
	}
	s.rng = rand.New(rand.NewSource(s.seed)) // #nosec G404 -- gameplay randomness
	s.log = s.log.WithFields(logrus.Fields{
		"run_id":     s.runID,
		"mission":    kind.String(),
		"difficulty": difficulty,
	})

	s.player = newPlayer(&s.tuning, loadout)
	s.mission = newMission(kind, difficulty, &s.tuning)
	s.spawner = newSpawner(kind, difficulty, &s.tuning)
	s.stars = newStarfield(s.rng, &s.tuning)
	if kind == MissionComet {
		s.boss = newBoss(s.allocID(), &s.tuning, difficulty)
	}

	s.log.WithFields(logrus.Fields{
		"seed":     s.seed,
		"weapons":  len(loadout.Weapons),
		"required": s.mission.Required,
	}).Info("mission started")
	s.simLog.Add(0, "--", LogMission, "start", kind.String(), difficulty)
	return s, nil
}

func (s *Simulation) RunID() string { return s.runID }

func (s *Simulation) Seed() int64 { return s.seed }

func (s *Simulation) Tuning() Tuning { return s.tuning }

func (s *Simulation) SimLog() *SimLog { return s.simLog }

// Outcome returns the final result, or nil while the mission is running.
func (s *Simulation) Outcome() *Outcome { return s.outcome }

func (s *Simulation) allocID() HostileID {
	s.nextID++
	return s.nextID
}

// Tick advances the simulation one frame and returns the outcome once the
// mission has ended. After that only cosmetics move.
func (s *Simulation) Tick(in Input) *Outcome {
	if s.outcome != nil {
		s.animateCosmetics()
		return s.outcome
	}
	if in.Abort {
		s.finish(false, ReasonAborted)
		return s.outcome
	}
	s.paused = in.Pause
	if in.Pause {
		if s.tuning.AnimateWhilePaused {
			s.driftStars()
		}
		return nil
	}
	s.tick++
	s.lastInput = in
	now := s.clock.Now()

	// 1. MOVE
	s.player.integrate(in, &s.tuning)
	if s.boss != nil {
		s.boss.update(&s.tuning)
	}
	s.simLog.AddVerbose(s.tick, "P", LogPlayer, "pos",
		fmt.Sprintf("(%.1f,%.1f)", s.player.Pos.X, s.player.Pos.Y), s.player.Vel.Len())

	// 2. FIRE
	s.fireWeapons(in, now)

	// 3. PROJECTILES (a boss kill ends the tick here)
	s.updateProjectiles()
	if s.outcome != nil {
		return s.outcome
	}

	// 4. HOSTILES
	s.spawnHostiles(now)
	s.updateHostiles()

	// 5. PICKUPS
	s.updatePickups()

	// 6. COSMETICS AND REGEN
	s.animateCosmetics()
	s.player.regen(&s.tuning)

	// 7. MISSION
	s.evaluateMission()
	return s.outcome
}

// evaluateMission applies the end-of-tick rules: death beats quota.
func (s *Simulation) evaluateMission() {
	switch {
	case !s.player.Alive():
		s.finish(false, ReasonPlayerDestroyed)
	case s.mission.quotaReached():
		s.finish(true, ReasonQuotaReached)
	}
}

// finish ends the mission and fires the callback; later calls are ignored.
func (s *Simulation) finish(success bool, reason EndReason) {
	if !s.mission.end(success, reason) {
		return
	}
	s.outcome = &Outcome{
		Success: success,
		Reason:  reason,
		Tick:    s.tick,
		Score:   s.score,
		Kills:   s.mission.Progress,
	}
	s.simLog.Add(s.tick, "--", LogMission, "end", s.outcome.String(), float64(s.score))
	s.log.WithFields(logrus.Fields{
		"success": success,
		"reason":  reason.String(),
		"tick":    s.tick,
		"score":   s.score,
		"kills":   s.mission.Progress,
	}).Info("mission ended")
	if s.onEnd != nil {
		s.onEnd(*s.outcome)
	}
}

func (s *Simulation) panAt(x float64) float64 { return pan(x, s.tuning.Width) }

// --- Cosmetics ---

func (s *Simulation) animateCosmetics() {
	s.driftStars()
	kept := s.particles[:0]
	for _, p := range s.particles {
		p.Pos = p.Pos.Add(p.Vel)
		p.Life -= s.tuning.ParticleDecay
		if p.Life > 0 {
			kept = append(kept, p)
		}
	}
	clear(s.particles[len(kept):])
	s.particles = kept
}

func (s *Simulation) driftStars() {
	boost := 1.0
	if s.mission.Kind == MissionComet {
		boost = s.tuning.CometStarBoost
	}
	for i := range s.stars {
		st := &s.stars[i]
		st.Pos.Y += st.Speed * boost
		if st.Pos.Y > s.tuning.Height {
			st.Pos.Y -= s.tuning.Height
		}
	}
}

func hostileLabel(id HostileID) string {
	return fmt.Sprintf("H%d", id)
}
