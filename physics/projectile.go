package physics

import (
	"github.com/lixenwraith/vi-blaster/parameter"
	"github.com/lixenwraith/vi-blaster/vmath"
)

// Handle identifies an object registered in the world
// Zero value means no world object is attached
type Handle uint64

// Bounds is the removal policy for projectiles
// Zero fields disable the corresponding check
type Bounds struct {
	Radius float64 // Max distance from world origin
	MaxAge float64 // Max age in ticks
}

// DefaultBounds returns the bounds from tuning parameters
func DefaultBounds() Bounds {
	return Bounds{
		Radius: parameter.ProjectileBoundRadius,
		MaxAge: parameter.ProjectileMaxAge,
	}
}

// Projectile is a single fired shot
// Velocity is in units per tick; Age counts elapsed ticks
type Projectile struct {
	Handle   Handle
	Position vmath.Vec3
	Velocity vmath.Vec3
	Yaw      float64
	Age      float64

	bounds Bounds
	remove bool
}

// NewProjectile creates a live projectile
func NewProjectile(h Handle, pos, vel vmath.Vec3, bounds Bounds) *Projectile {
	return &Projectile{
		Handle:   h,
		Position: pos,
		Velocity: vel,
		bounds:   bounds,
	}
}

// Advance integrates position over step ticks and updates the removal flag
// No-op once flagged
func (p *Projectile) Advance(step float64) {
	if p.remove || step <= 0 {
		return
	}

	p.Position = vmath.Translate(p.Position, p.Velocity, step)
	p.Age += step

	if p.bounds.Radius > 0 && p.Position.LenSqr() > p.bounds.Radius*p.bounds.Radius {
		p.remove = true
	}
	if p.bounds.MaxAge > 0 && p.Age > p.bounds.MaxAge {
		p.remove = true
	}
}

// ShouldRemove reports whether the projectile left its bounds or hit something
func (p *Projectile) ShouldRemove() bool {
	return p.remove
}

// MarkRemove flags the projectile for removal, used on impact
func (p *Projectile) MarkRemove() {
	p.remove = true
}

// PositionAfter returns the closed-form position after n ticks of unobstructed flight
func (p *Projectile) PositionAfter(n float64) vmath.Vec3 {
	return vmath.Translate(p.Position, p.Velocity, n)
}
