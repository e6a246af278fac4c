package engine

import (
	"slices"

	"github.com/lixenwraith/vi-blaster/combat"
)

// ActionKind tags a deferred action
type ActionKind uint8

const (
	ActionRespawn ActionKind = iota + 1
)

// Action is a deferred scene mutation due at a tick
type Action struct {
	Kind   ActionKind
	Target combat.TargetID
	Due    uint64

	seq uint64
}

// Scheduler queues deferred actions for the tick loop
// Actions run at the start of the tick they fall due, ordered by due tick then insertion
// Not thread-safe; owned by the scene and touched only inside a tick
type Scheduler struct {
	pending []Action
	seq     uint64
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Schedule queues a at a.Due
func (s *Scheduler) Schedule(a Action) {
	s.seq++
	a.seq = s.seq
	i, _ := slices.BinarySearchFunc(s.pending, a, func(e, t Action) int {
		if e.Due != t.Due {
			if e.Due < t.Due {
				return -1
			}
			return 1
		}
		if e.seq < t.seq {
			return -1
		}
		return 1
	})
	s.pending = slices.Insert(s.pending, i, a)
}

// ScheduleRespawn queues a target respawn, ignored when one is already pending for the target
func (s *Scheduler) ScheduleRespawn(id combat.TargetID, due uint64) {
	if s.PendingRespawn(id) {
		return
	}
	s.Schedule(Action{Kind: ActionRespawn, Target: id, Due: due})
}

// PendingRespawn reports whether a respawn is queued for the target
func (s *Scheduler) PendingRespawn(id combat.TargetID) bool {
	for _, a := range s.pending {
		if a.Kind == ActionRespawn && a.Target == id {
			return true
		}
	}
	return false
}

// RunDue pops every action with Due <= tick in order and calls fn
// Actions scheduled by fn for the same tick run in the same call
func (s *Scheduler) RunDue(tick uint64, fn func(Action)) int {
	n := 0
	for len(s.pending) > 0 && s.pending[0].Due <= tick {
		a := s.pending[0]
		s.pending = s.pending[1:]
		fn(a)
		n++
	}
	if len(s.pending) == 0 {
		s.pending = nil
	}
	return n
}

// Len returns the number of pending actions
func (s *Scheduler) Len() int {
	return len(s.pending)
}

// NextDue returns the earliest due tick
func (s *Scheduler) NextDue() (uint64, bool) {
	if len(s.pending) == 0 {
		return 0, false
	}
	return s.pending[0].Due, true
}
