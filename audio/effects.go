package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/vi-blaster/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves, optionally sweeping linearly in frequency
type oscillator struct {
	freq     float64
	freqEnd  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a fixed-frequency oscillator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator gliding from freq to freqEnd over duration
func NewSweep(freq, freqEnd float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		freqEnd:  freqEnd,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		freq := o.freq
		if o.freqEnd != o.freq && o.duration > 0 {
			freq += (o.freqEnd - o.freq) * float64(o.position) / float64(o.duration)
		}
		o.phase += freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/sustain/release envelope
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = float64(remaining) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear volume, math.Log2(0) is -Inf so zero is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateFireSound generates a short descending zap
func CreateFireSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	zap := NewSweep(parameter.FireSoundStartHz, parameter.FireSoundEndHz, parameter.FireSoundDuration, WaveSquare, rate)
	shaped := NewEnvelope(zap, parameter.FireSoundDuration, parameter.FireSoundAttack, parameter.FireSoundRelease, rate)

	return newVolume(shaped, 0.4*cfg.effectVolume(SoundFire))
}

// CreateHitSound generates a noise burst over a low thump
func CreateHitSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	noise := NewOscillator(0, parameter.HitSoundDuration, WaveNoise, rate)
	noiseShaped := NewEnvelope(noise, parameter.HitSoundDuration, parameter.HitSoundAttack, parameter.HitSoundRelease, rate)

	thump := NewSweep(parameter.HitSoundThumpHz*2, parameter.HitSoundThumpHz, parameter.HitSoundDuration, WaveSine, rate)
	thumpShaped := NewEnvelope(thump, parameter.HitSoundDuration, parameter.HitSoundAttack, parameter.HitSoundRelease, rate)

	mixed := beep.Mix(
		newVolume(noiseShaped, 0.35),
		newVolume(thumpShaped, 0.65),
	)
	return newVolume(mixed, cfg.effectVolume(SoundHit))
}

// CreateRespawnSound generates a two-note rising chime
func CreateRespawnSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	n1 := NewOscillator(parameter.RespawnNote1Hz, parameter.RespawnNoteDuration, WaveSine, rate)
	n1Shaped := NewEnvelope(n1, parameter.RespawnNoteDuration, parameter.RespawnNoteAttack, parameter.RespawnNoteRelease, rate)

	n2 := NewOscillator(parameter.RespawnNote2Hz, parameter.RespawnNoteDuration, WaveSine, rate)
	n2Shaped := NewEnvelope(n2, parameter.RespawnNoteDuration, parameter.RespawnNoteAttack, parameter.RespawnNoteRelease, rate)

	return newVolume(beep.Seq(n1Shaped, n2Shaped), cfg.effectVolume(SoundRespawn))
}

// GetSoundEffect returns the streamer for a sound type
func GetSoundEffect(soundType SoundType, cfg *AudioConfig) beep.Streamer {
	switch soundType {
	case SoundFire:
		return CreateFireSound(cfg)
	case SoundHit:
		return CreateHitSound(cfg)
	case SoundRespawn:
		return CreateRespawnSound(cfg)
	default:
		return nil
	}
}
