package sim

import "time"

// Harness drives a Simulation on a ManualClock that advances one frame per
// tick, so runs are reproducible and independent of wall time. Headless
// reports and tests use it.
type Harness struct {
	Sim         *Simulation
	Clock       *ManualClock
	Pilot       *Autopilot
	Reporter    *MissionReporter
	SampleEvery int // ticks between reporter samples
}

// harnessEpoch is the fixed start time of every harness clock.
var harnessEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// NewHarness builds a mission on a fresh ManualClock. Options may still
// override the clock, in which case Clock stays unused.
func NewHarness(kind MissionKind, difficulty float64, l Loadout, opts ...Option) (*Harness, error) {
	clock := NewManualClock(harnessEpoch)
	s, err := New(kind, difficulty, l, append([]Option{WithClock(clock)}, opts...)...)
	if err != nil {
		return nil, err
	}
	return &Harness{
		Sim:         s,
		Clock:       clock,
		Pilot:       NewAutopilot(),
		Reporter:    NewMissionReporter(0),
		SampleEvery: 60,
	}, nil
}

// Step advances the clock one frame and ticks once.
func (h *Harness) Step(in Input) *Outcome {
	h.Clock.Advance(FrameDuration)
	out := h.Sim.Tick(in)
	if h.SampleEvery > 0 && h.Sim.tick%h.SampleEvery == 0 {
		h.Reporter.Collect(h.Sim.Snapshot())
	}
	return out
}

// RunTicks holds the same input for n ticks, stopping early on mission end.
func (h *Harness) RunTicks(n int, in Input) *Outcome {
	for i := 0; i < n; i++ {
		if out := h.Step(in); out != nil {
			return out
		}
	}
	return nil
}

// RunUntil advances up to maxTicks with the autopilot, stopping early when
// pred returns true. Returns the tick at which pred held, or -1.
func (h *Harness) RunUntil(pred func(*Harness) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		h.Step(h.Pilot.Next(h.Sim.Snapshot()))
		if pred(h) {
			return h.Sim.tick
		}
	}
	return -1
}

// Fly lets the autopilot play until the mission ends or maxTicks pass.
func (h *Harness) Fly(maxTicks int) *Outcome {
	for i := 0; i < maxTicks; i++ {
		if out := h.Step(h.Pilot.Next(h.Sim.Snapshot())); out != nil {
			return out
		}
	}
	return nil
}
