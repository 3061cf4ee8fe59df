package audio

import (
	"math"
	"time"

	"github.com/Garsondee/Defender/internal/sim"
	"github.com/gopxl/beep"
)

// voice describes one synthesised cue: a frequency sweep blended with noise
// under an exponential decay.
type voice struct {
	length time.Duration
	from   float64 // Hz at the start
	to     float64 // Hz at the end
	noise  float64 // 0 = pure tone, 1 = pure noise
	decay  float64 // envelope steepness
	amp    float64
}

var (
	cannonVoice  = voice{length: 90 * time.Millisecond, from: 420, to: 180, noise: 0.35, decay: 5, amp: 0.25}
	beamVoice    = voice{length: 140 * time.Millisecond, from: 1800, to: 700, noise: 0.05, decay: 3, amp: 0.18}
	missileVoice = voice{length: 350 * time.Millisecond, from: 160, to: 520, noise: 0.6, decay: 2, amp: 0.22}
	mineVoice    = voice{length: 220 * time.Millisecond, from: 90, to: 60, noise: 0.2, decay: 4, amp: 0.3}
	deniedVoice  = voice{length: 150 * time.Millisecond, from: 120, to: 120, noise: 0.1, decay: 1, amp: 0.2}
	shieldVoice  = voice{length: 180 * time.Millisecond, from: 880, to: 1320, noise: 0.15, decay: 4, amp: 0.2}
)

func weaponVoice(c sim.WeaponCategory) voice {
	switch c {
	case sim.CategoryBeam:
		return beamVoice
	case sim.CategoryMissile:
		return missileVoice
	case sim.CategoryMine:
		return mineVoice
	default:
		return cannonVoice
	}
}

// explosionVoice lengthens and deepens with intensity (0.2 for a scratch,
// 2.0 for the boss).
func explosionVoice(intensity float64) voice {
	intensity = math.Max(0.1, math.Min(intensity, 3))
	return voice{
		length: time.Duration(float64(250*time.Millisecond) * (0.5 + intensity)),
		from:   140 / (0.5 + intensity),
		to:     40,
		noise:  0.75,
		decay:  4 / (0.5 + intensity*0.5),
		amp:    0.35,
	}
}

func pickupVoice(k sim.PickupKind) voice {
	switch k {
	case sim.PickupHealth:
		return voice{length: 200 * time.Millisecond, from: 520, to: 1040, decay: 2, amp: 0.2}
	case sim.PickupAmmo:
		return voice{length: 160 * time.Millisecond, from: 660, to: 880, noise: 0.1, decay: 2, amp: 0.2}
	default:
		return voice{length: 600 * time.Millisecond, from: 440, to: 1760, decay: 1, amp: 0.25}
	}
}

// toneGenerator streams a voice indefinitely; callers bound it with beep.Take.
type toneGenerator struct {
	sr    beep.SampleRate
	v     voice
	total int
	pos   int
	phase float64
	seed  uint32
}

func newToneGenerator(sr beep.SampleRate, v voice) *toneGenerator {
	total := sr.N(v.length)
	if total < 1 {
		total = 1
	}
	return &toneGenerator{sr: sr, v: v, total: total, seed: 0x2545f491}
}

func (g *toneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		progress := math.Min(float64(g.pos)/float64(g.total), 1)
		freq := g.v.from + (g.v.to-g.v.from)*progress
		g.phase += 2 * math.Pi * freq / float64(g.sr)
		if g.phase > 2*math.Pi {
			g.phase -= 2 * math.Pi
		}

		g.seed = g.seed*1664525 + 1013904223
		noise := float64(g.seed)/math.MaxUint32*2 - 1

		env := math.Exp(-progress * g.v.decay)
		// Short fade-in avoids a click on the first sample.
		if attack := float64(g.pos) / (float64(g.sr) * 0.003); attack < 1 {
			env *= attack
		}
		sample := env * g.v.amp * ((1-g.v.noise)*math.Sin(g.phase) + g.v.noise*noise)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *toneGenerator) Err() error {
	return nil
}
