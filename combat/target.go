package combat

import (
	"github.com/lixenwraith/vi-blaster/physics"
	"github.com/lixenwraith/vi-blaster/vmath"
)

// TargetID indexes a target within the scene
type TargetID int

// Target is a shootable object, hidden while waiting to respawn
// Targets are reused and never removed from the scene
type Target struct {
	ID       TargetID
	Handle   physics.Handle
	Position vmath.Vec3
	Visible  bool
}

// NewTarget creates a visible target
func NewTarget(id TargetID, h physics.Handle, pos vmath.Vec3) *Target {
	return &Target{ID: id, Handle: h, Position: pos, Visible: true}
}

// Hit records one projectile striking one target
type Hit struct {
	Target     TargetID
	Projectile physics.Handle
	Position   vmath.Vec3 // Projectile position at impact
	RespawnAt  uint64     // Tick at which the target reappears
}
