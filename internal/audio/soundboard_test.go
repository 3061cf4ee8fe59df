package audio

import (
	"math"
	"testing"

	"github.com/Garsondee/Defender/internal/sim"
	"github.com/gopxl/beep"
)

var _ sim.AudioSink = (*SoundBoard)(nil)

// TestSoundBoardGracefulDegradation verifies cues are safe without a speaker.
func TestSoundBoardGracefulDegradation(t *testing.T) {
	b := NewSoundBoard()
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("cue panicked without initialization: %v", r)
		}
	}()

	b.WeaponFired(sim.CategoryMissile, -0.5)
	b.FireDenied(sim.CategoryMine)
	b.Explosion(0.3, 2)
	b.ShieldHit(1)
	b.PickupCollected(sim.PickupBonus)
	b.Cleanup()
}

func TestSoundBoardInitialization(t *testing.T) {
	b := NewSoundBoard()
	if err := b.Initialize(); err != nil {
		t.Logf("speaker unavailable (expected in CI): %v", err)
		return
	}
	if err := b.Initialize(); err != nil {
		t.Errorf("second initialization should be a no-op, got %v", err)
	}
	b.Explosion(0, 1)
	b.Cleanup()
}

func TestSoundBoard_MuteAndGain(t *testing.T) {
	b := NewSoundBoard()
	b.SetMuted(true)
	if !b.Muted() {
		t.Error("expected muted")
	}
	b.SetGain(4)
	if b.gain != 1 {
		t.Errorf("gain should clamp to 1, got %.2f", b.gain)
	}
}

func TestToneGenerator_Bounded(t *testing.T) {
	voices := []voice{
		weaponVoice(sim.CategoryCannon),
		weaponVoice(sim.CategoryBeam),
		weaponVoice(sim.CategoryMissile),
		weaponVoice(sim.CategoryMine),
		deniedVoice,
		shieldVoice,
		explosionVoice(2),
		pickupVoice(sim.PickupHealth),
	}
	for _, v := range voices {
		stream := beep.Take(sampleRate.N(v.length), newToneGenerator(sampleRate, v))
		buf := make([][2]float64, 512)
		total := 0
		for {
			n, ok := stream.Stream(buf)
			for _, s := range buf[:n] {
				if math.IsNaN(s[0]) || math.Abs(s[0]) > 1 || s[0] != s[1] {
					t.Fatalf("voice %+v produced bad sample %v", v, s)
				}
			}
			total += n
			if !ok {
				break
			}
		}
		if total != sampleRate.N(v.length) {
			t.Errorf("voice %+v: expected %d samples, got %d", v, sampleRate.N(v.length), total)
		}
	}
}

func TestExplosionVoice_ScalesWithIntensity(t *testing.T) {
	small, big := explosionVoice(0.2), explosionVoice(2)
	if big.length <= small.length {
		t.Errorf("bigger explosions should ring longer: %v vs %v", big.length, small.length)
	}
	if big.from >= small.from {
		t.Errorf("bigger explosions should start deeper: %.0f vs %.0f", big.from, small.from)
	}
}

func TestChain_PansAndAttenuates(t *testing.T) {
	b := NewSoundBoard()
	s := b.chain(beamVoice, -1, 1)
	buf := make([][2]float64, 2048)
	n, _ := s.Stream(buf)
	var left, right float64
	for _, x := range buf[:n] {
		left += math.Abs(x[0])
		right += math.Abs(x[1])
	}
	if left == 0 || right > left*0.01 {
		t.Fatalf("hard-left pan should silence the right channel: left=%.3f right=%.3f", left, right)
	}

	silent := b.chain(beamVoice, 0, 0)
	n, _ = silent.Stream(buf)
	for _, x := range buf[:n] {
		if x[0] != 0 || x[1] != 0 {
			t.Fatal("zero level should be silent")
		}
	}
}
