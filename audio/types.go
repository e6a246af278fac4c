package audio

// SoundType represents different sound effects
type SoundType int

const (
	SoundFire    SoundType = iota // Projectile spawned
	SoundHit                      // Target struck
	SoundRespawn                  // Target visible again
	soundTypeCount
)

var soundNames = [soundTypeCount]string{"fire", "hit", "respawn"}

func (s SoundType) String() string {
	if s >= 0 && s < soundTypeCount {
		return soundNames[s]
	}
	return "unknown"
}

// AudioConfig holds playback settings
type AudioConfig struct {
	Enabled       bool
	MasterVolume  float64               // 0.0 - 1.0
	EffectVolumes map[SoundType]float64 // Per-effect multiplier
	SampleRate    int
}
