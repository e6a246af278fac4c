package engine

import (
	"github.com/lixenwraith/vi-blaster/avatar"
	"github.com/lixenwraith/vi-blaster/combat"
	"github.com/lixenwraith/vi-blaster/physics"
	"github.com/lixenwraith/vi-blaster/vmath"
)

// ProjectileView is a read-only copy of a live projectile
type ProjectileView struct {
	Handle   physics.Handle
	Position vmath.Vec3
	Velocity vmath.Vec3
	Yaw      float64
	Age      float64
}

// Snapshot is a consistent copy of scene state for renderers and tests
type Snapshot struct {
	Tick        uint64
	Now         float64
	Pose        avatar.Pose
	AvatarReady bool
	Projectiles []ProjectileView
	Targets     []combat.Target
	Pending     int // Deferred actions queued
}

// Snapshot copies current state under the read lock
func (s *Scene) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Tick:        s.tick,
		Now:         s.now,
		Pose:        s.pose,
		AvatarReady: s.avatarReady,
		Projectiles: make([]ProjectileView, 0, len(s.projectiles)),
		Targets:     make([]combat.Target, 0, len(s.targets)),
		Pending:     s.sched.Len(),
	}
	for _, p := range s.projectiles {
		snap.Projectiles = append(snap.Projectiles, ProjectileView{
			Handle:   p.Handle,
			Position: p.Position,
			Velocity: p.Velocity,
			Yaw:      p.Yaw,
			Age:      p.Age,
		})
	}
	for _, t := range s.targets {
		snap.Targets = append(snap.Targets, *t)
	}
	return snap
}
