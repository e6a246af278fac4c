package engine

import (
	"github.com/lixenwraith/vi-blaster/asset"
	"github.com/lixenwraith/vi-blaster/combat"
	"github.com/lixenwraith/vi-blaster/physics"
	"github.com/lixenwraith/vi-blaster/vmath"
)

// World registers positionable objects by opaque handle
type World interface {
	AddObject(kind asset.Kind, pos vmath.Vec3, yaw float64) physics.Handle
	RemoveObject(h physics.Handle)
	SetTransform(h physics.Handle, pos vmath.Vec3, yaw float64)
	SetVisible(h physics.Handle, visible bool)
}

// Templates reports which object templates are loaded
type Templates interface {
	Ready(kind asset.Kind) bool
	Template(kind asset.Kind) (asset.Template, bool)
}

// FireEvent describes a spawned projectile
type FireEvent struct {
	Tick     uint64 // Simulation tick, floor of elapsed ticks, same clock as Hit.RespawnAt
	Handle   physics.Handle
	Position vmath.Vec3
	Velocity vmath.Vec3
}

// Listener receives scene events after each tick, outside the scene lock
// Tick arguments are simulation ticks, so OnRespawn's tick equals the matching Hit.RespawnAt
type Listener interface {
	OnFire(ev FireEvent)
	OnHit(hit combat.Hit)
	OnRespawn(id combat.TargetID, tick uint64)
}

type nopWorld struct{}

func (nopWorld) AddObject(asset.Kind, vmath.Vec3, float64) physics.Handle { return 0 }
func (nopWorld) RemoveObject(physics.Handle)                             {}
func (nopWorld) SetTransform(physics.Handle, vmath.Vec3, float64)        {}
func (nopWorld) SetVisible(physics.Handle, bool)                         {}
