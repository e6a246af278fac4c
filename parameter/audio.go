package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 50 * time.Millisecond

	// MinSoundGap between consecutive cues of the same type
	MinSoundGap = 30 * time.Millisecond
)

// Fire Sound: descending square zap
const (
	FireSoundDuration = 90 * time.Millisecond
	FireSoundAttack   = 2 * time.Millisecond
	FireSoundRelease  = 60 * time.Millisecond
	FireSoundStartHz  = 1400.0
	FireSoundEndHz    = 300.0
)

// Hit Sound: noise burst over a low thump
const (
	HitSoundDuration = 180 * time.Millisecond
	HitSoundAttack   = 1 * time.Millisecond
	HitSoundRelease  = 150 * time.Millisecond
	HitSoundThumpHz  = 90.0
)

// Respawn Sound: two rising sine notes
const (
	RespawnNoteDuration = 80 * time.Millisecond
	RespawnNoteAttack   = 5 * time.Millisecond
	RespawnNoteRelease  = 50 * time.Millisecond
	RespawnNote1Hz      = 659.25 // E5
	RespawnNote2Hz      = 987.77 // B5
)
