package combat

import (
	"time"

	"github.com/lixenwraith/vi-blaster/parameter"
	"github.com/lixenwraith/vi-blaster/physics"
	"github.com/lixenwraith/vi-blaster/vmath"
)

// World is the object registry the resolver detaches and hides through
type World interface {
	RemoveObject(h physics.Handle)
	SetVisible(h physics.Handle, visible bool)
}

// RespawnScheduler queues a target to reappear at a future tick
type RespawnScheduler interface {
	ScheduleRespawn(id TargetID, due uint64)
}

// Resolver removes spent projectiles and applies projectile/target hits
type Resolver struct {
	HitRadiusSq  float64
	RespawnTicks uint64
	World        World // Optional
}

// NewResolver returns a resolver with default threshold and delay
func NewResolver(w World) *Resolver {
	return &Resolver{
		HitRadiusSq:  parameter.HitRadiusSq,
		RespawnTicks: DelayTicks(parameter.RespawnDelay, parameter.TickRate),
		World:        w,
	}
}

// DelayTicks converts a duration to whole ticks at rate Hz, rounding to nearest
func DelayTicks(d time.Duration, rate int) uint64 {
	if d <= 0 || rate <= 0 {
		return 0
	}
	return uint64((d*time.Duration(rate) + time.Second/2) / time.Second)
}

// Resolve runs one tick of collision over projectiles and targets
// Projectiles flagged for removal, or that hit a visible target, are detached and
// swap-removed; survivors are returned in unspecified order
// Each projectile hits at most one target; hidden targets are skipped
func (r *Resolver) Resolve(projectiles []*physics.Projectile, targets []*Target, sched RespawnScheduler, tick uint64) ([]*physics.Projectile, []Hit) {
	var hits []Hit

	// Reverse iteration so swap-remove never skips an entry
	for i := len(projectiles) - 1; i >= 0; i-- {
		p := projectiles[i]
		if p == nil {
			projectiles = swapRemove(projectiles, i)
			continue
		}

		if p.ShouldRemove() {
			r.detach(p)
			projectiles = swapRemove(projectiles, i)
			continue
		}

		for _, t := range targets {
			if t == nil || !t.Visible {
				continue
			}
			if vmath.DistSq(p.Position, t.Position) >= r.HitRadiusSq {
				continue
			}

			p.MarkRemove()
			r.detach(p)
			projectiles = swapRemove(projectiles, i)

			t.Visible = false
			if r.World != nil {
				r.World.SetVisible(t.Handle, false)
			}

			due := tick + r.RespawnTicks
			if sched != nil {
				sched.ScheduleRespawn(t.ID, due)
			}

			hits = append(hits, Hit{
				Target:     t.ID,
				Projectile: p.Handle,
				Position:   p.Position,
				RespawnAt:  due,
			})
			break
		}
	}

	return projectiles, hits
}

// Respawn makes a hidden target visible again
func (r *Resolver) Respawn(t *Target) {
	if t == nil || t.Visible {
		return
	}
	t.Visible = true
	if r.World != nil {
		r.World.SetVisible(t.Handle, true)
	}
}

func (r *Resolver) detach(p *physics.Projectile) {
	if r.World != nil && p.Handle != 0 {
		r.World.RemoveObject(p.Handle)
	}
}

func swapRemove(s []*physics.Projectile, i int) []*physics.Projectile {
	last := len(s) - 1
	s[i] = s[last]
	s[last] = nil
	return s[:last]
}
