package engine

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-blaster/asset"
	"github.com/lixenwraith/vi-blaster/avatar"
	"github.com/lixenwraith/vi-blaster/combat"
	"github.com/lixenwraith/vi-blaster/input"
	"github.com/lixenwraith/vi-blaster/parameter"
	"github.com/lixenwraith/vi-blaster/physics"
	"github.com/lixenwraith/vi-blaster/status"
	"github.com/lixenwraith/vi-blaster/vmath"
)

// Options tunes a scene; DefaultOptions mirrors the parameter package
type Options struct {
	MoveStep        float64
	TurnStep        float64
	ProjectileSpeed float64
	Bounds          physics.Bounds
	MuzzleHeight    float64
	HitRadiusSq     float64
	RespawnTicks    uint64
	AvatarStart     avatar.Pose
	Targets         []vmath.Vec3
	Bindings        *input.Bindings
}

// DefaultOptions returns the stock scene: one target at (1,0,0), avatar behind it facing +Z
func DefaultOptions() Options {
	targets := make([]vmath.Vec3, 0, len(parameter.DefaultTargets))
	for _, t := range parameter.DefaultTargets {
		targets = append(targets, vmath.Vec3(t))
	}
	return Options{
		MoveStep:        parameter.MoveStep,
		TurnStep:        parameter.TurnStep,
		ProjectileSpeed: parameter.ProjectileSpeed,
		Bounds:          physics.DefaultBounds(),
		MuzzleHeight:    parameter.MuzzleHeight,
		HitRadiusSq:     parameter.HitRadiusSq,
		RespawnTicks:    combat.DelayTicks(parameter.RespawnDelay, parameter.TickRate),
		AvatarStart:     avatar.Pose{Position: vmath.Vec3(parameter.AvatarStart)},
		Targets:         targets,
	}
}

// Scene owns all simulation state and advances it one tick at a time
// Tick is called from a single goroutine; Snapshot and input may be used from any goroutine
type Scene struct {
	mu sync.RWMutex

	opts      Options
	world     World
	templates Templates
	listeners []Listener
	logger    zerolog.Logger

	queue      *input.Queue
	input      *input.State
	controller *avatar.Controller
	resolver   *combat.Resolver
	sched      *Scheduler

	pose         avatar.Pose
	avatarHandle physics.Handle
	avatarReady  bool
	targetsReady bool

	projectiles []*physics.Projectile
	targets     []*combat.Target

	tick uint64
	now  float64 // Elapsed simulation time in ticks

	// Cached metric pointers
	statTicks       *atomic.Int64
	statShots       *atomic.Int64
	statDropped     *atomic.Int64
	statHits        *atomic.Int64
	statRespawns    *atomic.Int64
	statProjectiles *atomic.Int64
	statExpired     *atomic.Int64
}

// NewScene creates a scene; nil world or registry fall back to no-op sinks
func NewScene(opts Options, world World, templates Templates, reg *status.Registry, logger zerolog.Logger) *Scene {
	if world == nil {
		world = nopWorld{}
	}
	if reg == nil {
		reg = status.NewRegistry()
	}

	resolver := combat.NewResolver(world)
	resolver.HitRadiusSq = opts.HitRadiusSq
	resolver.RespawnTicks = opts.RespawnTicks

	return &Scene{
		opts:       opts,
		world:      world,
		templates:  templates,
		logger:     logger,
		queue:      input.NewQueue(),
		input:      input.NewState(opts.Bindings),
		controller: &avatar.Controller{MoveStep: opts.MoveStep, TurnStep: opts.TurnStep},
		resolver:   resolver,
		sched:      NewScheduler(),
		pose:       opts.AvatarStart,

		statTicks:       reg.Ints.Get(status.KeyTicks),
		statShots:       reg.Ints.Get(status.KeyShots),
		statDropped:     reg.Ints.Get(status.KeyDropped),
		statHits:        reg.Ints.Get(status.KeyHits),
		statRespawns:    reg.Ints.Get(status.KeyRespawns),
		statProjectiles: reg.Ints.Get(status.KeyProjectiles),
		statExpired:     reg.Ints.Get(status.KeyExpired),
	}
}

// AddListener registers a listener, must be called before the clock starts
func (s *Scene) AddListener(l Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}

// Input returns the queue input sources push key events into
func (s *Scene) Input() *input.Queue {
	return s.queue
}

// Bindings returns the active key bindings
func (s *Scene) Bindings() *input.Bindings {
	return s.input.Bindings()
}

type respawnEvent struct {
	id   combat.TargetID
	tick uint64
}

// Tick advances the scene by step ticks (1.0 for a fixed-step loop)
func (s *Scene) Tick(step float64) {
	if step <= 0 || math.IsNaN(step) {
		return
	}

	var (
		fires    []FireEvent
		hits     []combat.Hit
		respawns []respawnEvent
	)

	s.mu.Lock()

	s.tick++
	s.now += step
	simTick := uint64(math.Floor(s.now))

	// 1. Input
	s.queue.Drain(s.input.Apply)

	// 2. Deferred actions due this tick
	s.sched.RunDue(simTick, func(a Action) {
		if a.Kind != ActionRespawn {
			return
		}
		t := s.target(a.Target)
		if t == nil || t.Visible {
			return
		}
		s.resolver.Respawn(t)
		respawns = append(respawns, respawnEvent{id: t.ID, tick: simTick})
	})

	s.attachPending()

	// 3. Movement, facing sampled at tick start
	if s.avatarReady {
		s.controller.Update(&s.pose, s.input, s.pose.Facing(), step)
	}

	// 4. Fire
	if s.input.ConsumeFireRequest() {
		if ev, ok := s.spawnProjectile(simTick); ok {
			fires = append(fires, ev)
		} else {
			s.statDropped.Add(1)
			s.logger.Debug().Uint64("tick", simTick).Msg("fire dropped, not ready")
		}
	}

	// 5-6. Advance and collide in slices of at most one tick, a scaled step must not tunnel past a target
	for remaining := step; remaining > 0; {
		sub := math.Min(remaining, 1)
		remaining -= sub

		for _, p := range s.projectiles {
			p.Advance(sub)
			if p.ShouldRemove() {
				s.statExpired.Add(1)
			}
		}

		var subHits []combat.Hit
		s.projectiles, subHits = s.resolver.Resolve(s.projectiles, s.targets, s.sched, simTick)
		hits = append(hits, subHits...)
	}
	for _, p := range s.projectiles {
		s.world.SetTransform(p.Handle, p.Position, p.Yaw)
	}

	// 7. Publish
	if s.avatarReady {
		s.world.SetTransform(s.avatarHandle, s.pose.Position, s.pose.Yaw)
	}

	s.statTicks.Store(int64(s.tick))
	s.statHits.Add(int64(len(hits)))
	s.statRespawns.Add(int64(len(respawns)))
	s.statProjectiles.Store(int64(len(s.projectiles)))

	listeners := s.listeners
	s.mu.Unlock()

	for _, l := range listeners {
		for _, ev := range fires {
			l.OnFire(ev)
		}
		for _, h := range hits {
			l.OnHit(h)
		}
		for _, r := range respawns {
			l.OnRespawn(r.id, r.tick)
		}
	}
}

// attachPending registers the avatar and targets once their templates are loaded
func (s *Scene) attachPending() {
	if s.templates == nil {
		return
	}
	if !s.avatarReady && s.templates.Ready(asset.KindBlaster) {
		s.avatarHandle = s.world.AddObject(asset.KindBlaster, s.pose.Position, s.pose.Yaw)
		s.avatarReady = true
		s.logger.Info().Uint64("handle", uint64(s.avatarHandle)).Msg("avatar attached")
	}
	if !s.targetsReady && s.templates.Ready(asset.KindTarget) {
		for i, pos := range s.opts.Targets {
			h := s.world.AddObject(asset.KindTarget, pos, 0)
			s.targets = append(s.targets, combat.NewTarget(combat.TargetID(i), h, pos))
		}
		s.targetsReady = true
		s.logger.Info().Int("count", len(s.targets)).Msg("targets attached")
	}
}

// spawnProjectile fires from the muzzle along the current facing
func (s *Scene) spawnProjectile(tick uint64) (FireEvent, bool) {
	if !s.avatarReady || s.templates == nil || !s.templates.Ready(asset.KindProjectile) {
		return FireEvent{}, false
	}

	facing := s.pose.Facing()
	pos := s.pose.Position.Add(vmath.Vec3{0, s.opts.MuzzleHeight, 0})
	pos = vmath.Translate(pos, facing, s.muzzleForward())
	vel := facing.Mul(s.opts.ProjectileSpeed)

	h := s.world.AddObject(asset.KindProjectile, pos, s.pose.Yaw)
	p := physics.NewProjectile(h, pos, vel, s.opts.Bounds)
	p.Yaw = s.pose.Yaw
	s.projectiles = append(s.projectiles, p)
	s.statShots.Add(1)

	return FireEvent{Tick: tick, Handle: h, Position: pos, Velocity: vel}, true
}

// muzzleForward is half the blaster depth
func (s *Scene) muzzleForward() float64 {
	if t, ok := s.templates.Template(asset.KindBlaster); ok && t.Size.Z() > 0 {
		return t.Size.Z() * 0.5
	}
	return parameter.MuzzleForwardFallback
}

func (s *Scene) target(id combat.TargetID) *combat.Target {
	for _, t := range s.targets {
		if t.ID == id {
			return t
		}
	}
	return nil
}
