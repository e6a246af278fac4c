package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/vi-blaster/parameter"
)

// SoundManager owns the speaker and a mixer of one-shot cues
// All Play calls are safe without initialization and become no-ops
type SoundManager struct {
	mu          sync.Mutex
	cfg         *AudioConfig
	mixer       *beep.Mixer
	initialized bool
	lastPlayed  [soundTypeCount]time.Time
	now         func() time.Time
}

// NewSoundManager creates a new sound manager; nil cfg uses defaults
func NewSoundManager(cfg *AudioConfig) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	return &SoundManager{
		cfg:   cfg,
		mixer: &beep.Mixer{},
		now:   time.Now,
	}
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.cfg.Enabled {
		return nil
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Initialized reports whether the speaker is running
func (sm *SoundManager) Initialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	// beep has no speaker Close; clearing the mixer leaves it silent
	sm.initialized = false
}

// Play queues a one-shot cue; repeats inside MinSoundGap are dropped
// Returns true if the cue was queued
func (sm *SoundManager) Play(s SoundType) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || s < 0 || s >= soundTypeCount {
		return false
	}

	now := sm.now()
	if now.Sub(sm.lastPlayed[s]) < parameter.MinSoundGap {
		return false
	}

	streamer := GetSoundEffect(s, sm.cfg)
	if streamer == nil {
		return false
	}
	sm.lastPlayed[s] = now

	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
	return true
}
