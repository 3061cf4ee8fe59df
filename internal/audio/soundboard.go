// Package audio renders simulation sound cues through the system speaker.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/Garsondee/Defender/internal/sim"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// SoundBoard synthesises every cue on the fly and mixes them into a single
// speaker stream. It implements sim.AudioSink; all methods are safe to call
// before Initialize or after Cleanup, in which case they do nothing.
type SoundBoard struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	gain        float64
}

func NewSoundBoard() *SoundBoard {
	return &SoundBoard{mixer: &beep.Mixer{}, gain: 0.8}
}

// Initialize opens the speaker. Hosts should keep running without sound if
// this fails.
func (b *SoundBoard) Initialize() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*50)); err != nil {
		return err
	}
	speaker.Play(b.mixer)
	b.initialized = true
	return nil
}

// Cleanup silences everything still playing.
func (b *SoundBoard) Cleanup() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}
	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()
	b.initialized = false
}

func (b *SoundBoard) SetMuted(m bool) {
	b.mu.Lock()
	b.muted = m
	b.mu.Unlock()
}

func (b *SoundBoard) Muted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.muted
}

// SetGain sets the master level; 0 is silent, 1 is full scale.
func (b *SoundBoard) SetGain(g float64) {
	b.mu.Lock()
	b.gain = math.Max(0, math.Min(1, g))
	b.mu.Unlock()
}

// --- sim.AudioSink ---

func (b *SoundBoard) WeaponFired(c sim.WeaponCategory, pan float64) {
	b.play(weaponVoice(c), pan, 1)
}

func (b *SoundBoard) FireDenied(sim.WeaponCategory) {
	b.play(deniedVoice, 0, 1)
}

func (b *SoundBoard) Explosion(pan, intensity float64) {
	b.play(explosionVoice(intensity), pan, math.Min(1, 0.4+intensity*0.3))
}

func (b *SoundBoard) ShieldHit(pan float64) {
	b.play(shieldVoice, pan, 1)
}

func (b *SoundBoard) PickupCollected(k sim.PickupKind) {
	b.play(pickupVoice(k), 0, 1)
}

func (b *SoundBoard) play(v voice, pan, level float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized || b.muted {
		return
	}
	s := b.chain(v, pan, level)
	speaker.Lock()
	b.mixer.Add(s)
	speaker.Unlock()
}

// chain builds the streamer for one cue: tone, then pan, then volume.
func (b *SoundBoard) chain(v voice, pan, level float64) beep.Streamer {
	tone := beep.Take(sampleRate.N(v.length), newToneGenerator(sampleRate, v))
	panned := &effects.Pan{Streamer: tone, Pan: pan}
	return volume(panned, b.gain*level)
}

// volume converts a linear level to beep's logarithmic control.
func volume(s beep.Streamer, level float64) beep.Streamer {
	if level <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(level), Silent: false}
}
