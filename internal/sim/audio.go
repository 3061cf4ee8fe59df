package sim

//go:generate go tool mockgen -destination=./mocks/audio_mock.go -package=mocks . AudioSink

// AudioSink receives sound cues. Pan is stereo balance in [-1,1] derived from
// the horizontal position of the event; intensity scales explosion size.
// Calls happen synchronously inside Tick and must not block.
type AudioSink interface {
	WeaponFired(category WeaponCategory, pan float64)
	FireDenied(category WeaponCategory)
	Explosion(pan, intensity float64)
	ShieldHit(pan float64)
	PickupCollected(kind PickupKind)
}

// NopAudio discards every cue.
type NopAudio struct{}

func (NopAudio) WeaponFired(WeaponCategory, float64) {}
func (NopAudio) FireDenied(WeaponCategory)           {}
func (NopAudio) Explosion(float64, float64)          {}
func (NopAudio) ShieldHit(float64)                   {}
func (NopAudio) PickupCollected(PickupKind)          {}
