package input

import "sync"

// State tracks held keys and the one-shot fire request
// Holding a fire key never repeats; a shot is requested on release only
type State struct {
	mu       sync.Mutex
	held     map[Key]struct{}
	fire     bool
	bindings *Bindings
}

// NewState creates an empty state over the given bindings (defaults when nil)
func NewState(b *Bindings) *State {
	if b == nil {
		b = DefaultBindings()
	}
	return &State{
		held:     make(map[Key]struct{}),
		bindings: b,
	}
}

// KeyDown marks key as held, idempotent
func (s *State) KeyDown(key Key) {
	s.mu.Lock()
	s.held[key] = struct{}{}
	s.mu.Unlock()
}

// KeyUp releases key; releasing a fire key requests one shot
func (s *State) KeyUp(key Key) {
	s.mu.Lock()
	delete(s.held, key)
	if s.bindings.Is(ActionFire, key) {
		s.fire = true
	}
	s.mu.Unlock()
}

// Apply routes a queued event to KeyDown/KeyUp
func (s *State) Apply(ev KeyEvent) {
	if ev.Down {
		s.KeyDown(ev.Key)
	} else {
		s.KeyUp(ev.Key)
	}
}

// ConsumeFireRequest returns the pending fire flag and clears it
func (s *State) ConsumeFireRequest() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.fire
	s.fire = false
	return f
}

// IsHeld reports whether key is currently down
func (s *State) IsHeld(key Key) bool {
	s.mu.Lock()
	_, ok := s.held[key]
	s.mu.Unlock()
	return ok
}

// Held reports whether any key bound to action is down
func (s *State) Held(a Action) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range s.bindings.Keys(a) {
		if _, ok := s.held[k]; ok {
			return true
		}
	}
	return false
}

// Reset releases all keys without requesting fire
func (s *State) Reset() {
	s.mu.Lock()
	clear(s.held)
	s.fire = false
	s.mu.Unlock()
}

// Bindings returns the active bindings
func (s *State) Bindings() *Bindings {
	return s.bindings
}
