package world

import (
	"cmp"
	"slices"
	"sync"

	"github.com/mlange-42/ark/ecs"

	"github.com/lixenwraith/vi-blaster/asset"
	"github.com/lixenwraith/vi-blaster/physics"
	"github.com/lixenwraith/vi-blaster/vmath"
)

// Object is a read-only copy of a registered object
type Object struct {
	Handle   physics.Handle
	Kind     asset.Kind
	Position vmath.Vec3
	Yaw      float64
	Visible  bool
}

// Registry is the ECS-backed object world the scene publishes into
// Handles are never reused within a registry
type Registry struct {
	mu sync.RWMutex

	world   ecs.World
	objects *ecs.Map3[Transform, Appearance, Tag]
	filter  *ecs.Filter3[Transform, Appearance, Tag]

	entities map[physics.Handle]ecs.Entity
	next     physics.Handle
}

// NewRegistry creates an empty world
func NewRegistry() *Registry {
	r := &Registry{
		world:    ecs.NewWorld(),
		entities: make(map[physics.Handle]ecs.Entity),
	}
	r.objects = ecs.NewMap3[Transform, Appearance, Tag](&r.world)
	r.filter = ecs.NewFilter3[Transform, Appearance, Tag](&r.world)
	return r
}

// AddObject registers a visible object and returns its handle
func (r *Registry) AddObject(kind asset.Kind, pos vmath.Vec3, yaw float64) physics.Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	h := r.next
	e := r.objects.NewEntity(
		&Transform{Position: pos, Yaw: yaw},
		&Appearance{Kind: kind, Visible: true},
		&Tag{Handle: h},
	)
	r.entities[h] = e
	return h
}

// RemoveObject deletes an object; unknown handles are ignored
func (r *Registry) RemoveObject(h physics.Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entities[h]
	if !ok {
		return
	}
	delete(r.entities, h)
	if r.world.Alive(e) {
		r.world.RemoveEntity(e)
	}
}

// SetTransform moves an object
func (r *Registry) SetTransform(h physics.Handle, pos vmath.Vec3, yaw float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entities[h]
	if !ok {
		return
	}
	t, _, _ := r.objects.Get(e)
	t.Position = pos
	t.Yaw = yaw
}

// SetVisible shows or hides an object
func (r *Registry) SetVisible(h physics.Handle, visible bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entities[h]
	if !ok {
		return
	}
	_, a, _ := r.objects.Get(e)
	a.Visible = visible
}

// Get returns a copy of one object
func (r *Registry) Get(h physics.Handle) (Object, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entities[h]
	if !ok {
		return Object{}, false
	}
	t, a, tag := r.objects.Get(e)
	return Object{Handle: tag.Handle, Kind: a.Kind, Position: t.Position, Yaw: t.Yaw, Visible: a.Visible}, true
}

// Objects returns copies of all objects ordered by handle
func (r *Registry) Objects() []Object {
	// Queries lock the ECS world, so readers are exclusive here
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Object, 0, len(r.entities))
	query := r.filter.Query()
	for query.Next() { // Query closes itself when exhausted
		t, a, tag := query.Get()
		out = append(out, Object{
			Handle:   tag.Handle,
			Kind:     a.Kind,
			Position: t.Position,
			Yaw:      t.Yaw,
			Visible:  a.Visible,
		})
	}
	slices.SortFunc(out, func(a, b Object) int { return cmp.Compare(a.Handle, b.Handle) })
	return out
}

// Len returns the number of registered objects
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entities)
}
