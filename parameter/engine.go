package parameter

import "time"

// Simulation Loop Timing
const (
	// TickRate is the simulation rate in ticks per second
	TickRate = 60

	// TickInterval is the wall-clock duration of one simulation tick (~60 Hz)
	TickInterval = time.Second / TickRate

	// FrameUpdateInterval is the terminal render interval
	FrameUpdateInterval = 33 * time.Millisecond

	// MaxStepsPerTick caps delta-scaled catch-up after a stall
	MaxStepsPerTick = 4.0
)

// Input Queue Limits
const (
	// EventQueueSize is the fixed capacity of the key event ring buffer
	EventQueueSize = 512

	// EventBufferMask is the bitmask for fast modulo operations (512 - 1)
	EventBufferMask = EventQueueSize - 1

	// EventReleaseReserve slots are only usable by key releases, so a flood of presses never strands a held key
	EventReleaseReserve = 64
)

// Terminal Key Release Synthesis
const (
	// KeyHoldTimeout is how long a key counts as held after its last press/repeat
	// Terminals report presses only; typical auto-repeat is 30-40ms after an initial ~250-500ms delay
	KeyHoldTimeout = 550 * time.Millisecond

	// KeyRepeatTimeout applies once a key is confirmed repeating
	KeyRepeatTimeout = 120 * time.Millisecond
)
