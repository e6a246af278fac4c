package audio

import "github.com/lixenwraith/vi-blaster/parameter"

// DefaultAudioConfig returns enabled audio at moderate volume
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: 0.5,
		EffectVolumes: map[SoundType]float64{
			SoundFire:    0.6,
			SoundHit:     0.9,
			SoundRespawn: 0.5,
		},
		SampleRate: parameter.AudioSampleRate,
	}
}

// effectVolume combines master and per-effect volume
func (c *AudioConfig) effectVolume(s SoundType) float64 {
	v, ok := c.EffectVolumes[s]
	if !ok {
		v = 1
	}
	return v * c.MasterVolume
}
