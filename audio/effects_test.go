package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drain streams s to completion and returns total samples produced
func drain(t *testing.T, s beep.Streamer) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for j := 0; j < n; j++ {
			require.LessOrEqual(t, buf[j][0], 1.0)
			require.GreaterOrEqual(t, buf[j][0], -1.0)
		}
		total += n
		if !ok {
			return total
		}
	}
	t.Fatal("streamer never finished")
	return total
}

func TestOscillatorWaves(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		osc := NewOscillator(440, 100*time.Millisecond, wave, rate)
		samples := make([][2]float64, 100)
		n, ok := osc.Stream(samples)
		assert.True(t, ok)
		assert.Equal(t, 100, n)
		assert.NoError(t, osc.Err())
	}
}

func TestOscillatorFinishes(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(100, 100*time.Millisecond, WaveSine, rate)
	assert.Equal(t, 100, drain(t, osc))
}

func TestSweepEndsNearTargetFrequency(t *testing.T) {
	rate := beep.SampleRate(8000)
	osc := NewSweep(1000, 100, 50*time.Millisecond, WaveSaw, rate)
	assert.Equal(t, rate.N(50*time.Millisecond), drain(t, osc))
}

func TestEnvelopeShapesAttack(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(0, 100*time.Millisecond, WaveSquare, rate) // constant +1
	env := NewEnvelope(osc, 100*time.Millisecond, 10*time.Millisecond, 10*time.Millisecond, rate)

	buf := make([][2]float64, 100)
	n, _ := env.Stream(buf)
	require.Equal(t, 100, n)
	assert.Equal(t, 0.0, buf[0][0])
	assert.InDelta(t, 0.5, buf[5][0], 1e-9)
	assert.Equal(t, 1.0, buf[50][0])
	assert.Less(t, buf[99][0], 0.2)
}

func TestSoundEffectsFinish(t *testing.T) {
	cfg := DefaultAudioConfig()
	for s := SoundFire; s < soundTypeCount; s++ {
		streamer := GetSoundEffect(s, cfg)
		require.NotNil(t, streamer, s.String())
		assert.Positive(t, drain(t, streamer), s.String())
	}
	assert.Nil(t, GetSoundEffect(soundTypeCount, cfg))
}

func TestSilentVolume(t *testing.T) {
	cfg := DefaultAudioConfig()
	cfg.MasterVolume = 0
	s := CreateFireSound(cfg)
	buf := make([][2]float64, 64)
	n, _ := s.Stream(buf)
	for i := 0; i < n; i++ {
		assert.Equal(t, 0.0, buf[i][0])
	}
}
