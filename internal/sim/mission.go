package sim

import (
	"fmt"
	"math"
	"strings"
)

// MissionKind selects the win condition and spawn mix.
type MissionKind int

const (
	MissionAttack MissionKind = iota // kill quota, mixed hostiles
	MissionDefend                    // larger kill quota, mixed hostiles
	MissionComet                     // destroy the boss under a rock storm
)

func (k MissionKind) String() string {
	switch k {
	case MissionAttack:
		return "attack"
	case MissionDefend:
		return "defend"
	case MissionComet:
		return "comet"
	default:
		return "unknown"
	}
}

// ParseMissionKind accepts the names produced by MissionKind.String.
func ParseMissionKind(s string) (MissionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "attack":
		return MissionAttack, nil
	case "defend":
		return MissionDefend, nil
	case "comet":
		return MissionComet, nil
	default:
		return 0, fmt.Errorf("unknown mission %q (want attack, defend or comet)", s)
	}
}

type MissionState int

const (
	MissionRunning MissionState = iota
	MissionSucceeded
	MissionFailed
)

func (s MissionState) String() string {
	switch s {
	case MissionRunning:
		return "running"
	case MissionSucceeded:
		return "succeeded"
	case MissionFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// EndReason records which rule ended the mission.
type EndReason int

const (
	ReasonNone EndReason = iota
	ReasonQuotaReached
	ReasonBossDestroyed
	ReasonPlayerDestroyed
	ReasonAborted
)

func (r EndReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonQuotaReached:
		return "quota_reached"
	case ReasonBossDestroyed:
		return "boss_destroyed"
	case ReasonPlayerDestroyed:
		return "player_destroyed"
	case ReasonAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Outcome is delivered exactly once when the mission leaves Running.
type Outcome struct {
	Success bool
	Reason  EndReason
	Tick    int
	Score   int
	Kills   int
}

func (o Outcome) String() string {
	verdict := "failure"
	if o.Success {
		verdict = "success"
	}
	return fmt.Sprintf("%s (%s) at T=%d score=%d kills=%d", verdict, o.Reason, o.Tick, o.Score, o.Kills)
}

// Mission is the objective state machine. Transitions out of Running happen
// at most once.
type Mission struct {
	Kind     MissionKind
	Required int // zero for boss missions
	Progress int
	State    MissionState
	Reason   EndReason
}

func newMission(kind MissionKind, difficulty float64, t *Tuning) Mission {
	m := Mission{Kind: kind}
	switch kind {
	case MissionAttack:
		m.Required = int(math.Round(t.AttackQuota * difficulty))
	case MissionDefend:
		m.Required = int(math.Round(t.DefendQuota * difficulty))
	}
	return m
}

func (m *Mission) Running() bool { return m.State == MissionRunning }

// HasQuota reports whether the mission is won by kill count.
func (m *Mission) HasQuota() bool { return m.Kind != MissionComet }

func (m *Mission) recordKill() {
	if m.Running() {
		m.Progress++
	}
}

func (m *Mission) quotaReached() bool {
	return m.HasQuota() && m.Progress >= m.Required
}

// end moves the mission to a terminal state; it is a no-op once terminal.
func (m *Mission) end(success bool, reason EndReason) bool {
	if !m.Running() {
		return false
	}
	m.State = MissionFailed
	if success {
		m.State = MissionSucceeded
	}
	m.Reason = reason
	return true
}
