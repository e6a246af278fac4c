package engine

import (
	"sync"
	"time"
)

// TimeSource supplies the clock scheduler's notion of now
type TimeSource interface {
	Now() time.Time
}

// SystemTime reads the wall clock, keeping the monotonic reading
type SystemTime struct{}

func (SystemTime) Now() time.Time { return time.Now() }

// ManualTime only moves when told to; used by tests and deterministic replays
type ManualTime struct {
	mu  sync.Mutex
	now time.Time
}

func NewManualTime(start time.Time) *ManualTime {
	return &ManualTime{now: start}
}

func (m *ManualTime) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Set jumps to t, which may be earlier than the current reading
func (m *ManualTime) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

// Advance moves forward by d and returns the new reading
func (m *ManualTime) Advance(d time.Duration) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
	return m.now
}
