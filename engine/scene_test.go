package engine

import (
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-blaster/asset"
	"github.com/lixenwraith/vi-blaster/avatar"
	"github.com/lixenwraith/vi-blaster/combat"
	"github.com/lixenwraith/vi-blaster/input"
	"github.com/lixenwraith/vi-blaster/physics"
	"github.com/lixenwraith/vi-blaster/status"
	"github.com/lixenwraith/vi-blaster/vmath"
)

const eps = 1e-9

type recordingWorld struct {
	mu      sync.Mutex
	next    physics.Handle
	kinds   map[physics.Handle]asset.Kind
	visible map[physics.Handle]bool
	removed []physics.Handle
}

func newRecordingWorld() *recordingWorld {
	return &recordingWorld{
		kinds:   make(map[physics.Handle]asset.Kind),
		visible: make(map[physics.Handle]bool),
	}
}

func (w *recordingWorld) AddObject(kind asset.Kind, _ vmath.Vec3, _ float64) physics.Handle {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.next++
	w.kinds[w.next] = kind
	w.visible[w.next] = true
	return w.next
}

func (w *recordingWorld) RemoveObject(h physics.Handle) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.kinds, h)
	w.removed = append(w.removed, h)
}

func (w *recordingWorld) SetTransform(physics.Handle, vmath.Vec3, float64) {}

func (w *recordingWorld) SetVisible(h physics.Handle, v bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.visible[h] = v
}

type recordingListener struct {
	fires    []FireEvent
	hits     []combat.Hit
	respawns []uint64
}

func (l *recordingListener) OnFire(ev FireEvent)   { l.fires = append(l.fires, ev) }
func (l *recordingListener) OnHit(h combat.Hit)    { l.hits = append(l.hits, h) }
func (l *recordingListener) OnRespawn(_ combat.TargetID, tick uint64) {
	l.respawns = append(l.respawns, tick)
}

func allTemplates() *asset.Library {
	return asset.NewStaticLibrary(
		asset.Template{Name: "blaster", Kind: asset.KindBlaster, Size: vmath.Vec3{0.1, 0.2, 0.5}},
		asset.Template{Name: "bullet", Kind: asset.KindProjectile},
		asset.Template{Name: "target", Kind: asset.KindTarget},
	)
}

// originScene puts the avatar at the origin facing +Z with the given targets
func originScene(t *testing.T, targets ...vmath.Vec3) (*Scene, *recordingWorld, *recordingListener, *status.Registry) {
	t.Helper()
	opts := DefaultOptions()
	opts.AvatarStart = avatar.Pose{}
	opts.Targets = targets

	w := newRecordingWorld()
	reg := status.NewRegistry()
	s := NewScene(opts, w, allTemplates(), reg, zerolog.Nop())
	l := &recordingListener{}
	s.AddListener(l)
	return s, w, l, reg
}

func tap(s *Scene, k input.Key) {
	s.Input().Push(input.KeyEvent{Key: k, Down: true})
	s.Input().Push(input.KeyEvent{Key: k, Down: false})
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, uint64(60), opts.RespawnTicks)
	require.Len(t, opts.Targets, 1)
	assert.Equal(t, vmath.Vec3{1, 0, 0}, opts.Targets[0])
	assert.Equal(t, vmath.Vec3{0, 0, -3}, opts.AvatarStart.Position)
}

func TestFirePlusZScenario(t *testing.T) {
	s, _, l, reg := originScene(t)

	tap(s, input.KeySpace)
	s.Tick(1)

	require.Len(t, l.fires, 1)
	assert.Equal(t, vmath.Vec3{0, 0, 0.2}, l.fires[0].Velocity)
	spawn := l.fires[0].Position
	assert.InDelta(t, 0.06, spawn.Y(), eps)
	assert.InDelta(t, 0.25, spawn.Z(), eps, "muzzle is half the blaster depth ahead")

	for i := 1; i < 50; i++ {
		s.Tick(1)
	}

	snap := s.Snapshot()
	require.Len(t, snap.Projectiles, 1)
	assert.InDelta(t, spawn.Z()+10.0, snap.Projectiles[0].Position.Z(), 1e-9)
	assert.InDelta(t, 0.0, snap.Projectiles[0].Position.X(), eps)
	assert.Equal(t, int64(1), reg.Ints.Get(status.KeyShots).Load())
	assert.Equal(t, int64(50), reg.Ints.Get(status.KeyTicks).Load())
}

func TestHeldFireNeverSpawns(t *testing.T) {
	s, _, l, _ := originScene(t)

	s.Input().Push(input.KeyEvent{Key: input.KeySpace, Down: true})
	for i := 0; i < 120; i++ {
		s.Tick(1)
	}
	assert.Empty(t, l.fires)
	assert.Empty(t, s.Snapshot().Projectiles)

	s.Input().Push(input.KeyEvent{Key: input.KeySpace, Down: false})
	s.Tick(1)
	s.Tick(1)
	assert.Len(t, l.fires, 1, "one release, one shot")
}

func TestHitHidesThenRespawnsAfterDelay(t *testing.T) {
	// Projectile reaches z=0.85 on tick 3: distSq 0.04 to the target
	s, w, l, reg := originScene(t, vmath.Vec3{0, 0.06, 1.05})

	tap(s, input.KeySpace)
	s.Tick(1)
	s.Tick(1)
	assert.True(t, s.Snapshot().Targets[0].Visible)

	s.Tick(1) // tick 3
	snap := s.Snapshot()
	require.Len(t, l.hits, 1)
	assert.False(t, snap.Targets[0].Visible)
	assert.Empty(t, snap.Projectiles)
	assert.Equal(t, uint64(63), l.hits[0].RespawnAt)
	assert.False(t, w.visible[snap.Targets[0].Handle])
	assert.Len(t, w.removed, 1)

	for s.Snapshot().Tick < 62 {
		s.Tick(1)
		assert.False(t, s.Snapshot().Targets[0].Visible, "tick %d", s.Snapshot().Tick)
	}

	s.Tick(1) // tick 63
	snap = s.Snapshot()
	assert.True(t, snap.Targets[0].Visible)
	assert.True(t, w.visible[snap.Targets[0].Handle])
	assert.Equal(t, []uint64{63}, l.respawns)
	assert.Equal(t, 0, snap.Pending)
	assert.Equal(t, int64(1), reg.Ints.Get(status.KeyHits).Load())
	assert.Equal(t, int64(1), reg.Ints.Get(status.KeyRespawns).Load())
}

func TestHiddenTargetImmuneInScene(t *testing.T) {
	s, _, l, _ := originScene(t, vmath.Vec3{0, 0.06, 1.05})

	tap(s, input.KeySpace)
	s.Tick(1)
	tap(s, input.KeySpace)
	s.Tick(1)

	for i := 0; i < 10; i++ {
		s.Tick(1)
	}

	snap := s.Snapshot()
	assert.Len(t, l.fires, 2)
	assert.Len(t, l.hits, 1, "second projectile passes the hidden target")
	assert.Len(t, snap.Projectiles, 1)
	assert.Equal(t, 1, snap.Pending, "no second respawn scheduled")
}

func TestFireDroppedWhenNotReady(t *testing.T) {
	opts := DefaultOptions()
	reg := status.NewRegistry()
	lib := asset.NewStaticLibrary(asset.Template{Kind: asset.KindBlaster})
	s := NewScene(opts, nil, lib, reg, zerolog.Nop())

	tap(s, input.KeySpace)
	s.Tick(1)
	assert.Empty(t, s.Snapshot().Projectiles)
	assert.Equal(t, int64(1), reg.Ints.Get(status.KeyDropped).Load())

	// Dropped requests are not queued
	s.Tick(1)
	assert.Equal(t, int64(0), reg.Ints.Get(status.KeyShots).Load())
}

func TestNilTemplatesNeverSpawn(t *testing.T) {
	s := NewScene(DefaultOptions(), nil, nil, nil, zerolog.Nop())
	s.Input().Push(input.KeyEvent{Key: "a", Down: true})
	tap(s, input.KeySpace)
	s.Tick(1)

	snap := s.Snapshot()
	assert.False(t, snap.AvatarReady)
	assert.Empty(t, snap.Projectiles)
	assert.Empty(t, snap.Targets)
	assert.Equal(t, 0.0, snap.Pose.Yaw, "avatar does not move before it is attached")
}

func TestMovementThroughScene(t *testing.T) {
	s, _, _, _ := originScene(t)

	s.Input().Push(input.KeyEvent{Key: "a", Down: true})
	for i := 0; i < 10; i++ {
		s.Tick(1)
	}
	assert.InDelta(t, 0.2, s.Snapshot().Pose.Yaw, 1e-9)

	s.Input().Push(input.KeyEvent{Key: input.KeyShift, Down: true})
	s.Tick(1)
	assert.InDelta(t, 0.2, s.Snapshot().Pose.Yaw, 1e-9, "strafe keeps yaw")

	s.Input().Push(input.KeyEvent{Key: "a", Down: false})
	s.Input().Push(input.KeyEvent{Key: input.KeyShift, Down: false})
	s.Input().Push(input.KeyEvent{Key: "w", Down: true})
	before := s.Snapshot().Pose.Position
	s.Tick(1)
	moved := s.Snapshot().Pose.Position.Sub(before)
	want := vmath.Facing(0.2).Mul(0.1)
	assert.InDelta(t, want.X(), moved.X(), 1e-9)
	assert.InDelta(t, want.Z(), moved.Z(), 1e-9)
}

func TestStepScalesProjectileAndRespawnClock(t *testing.T) {
	s, _, l, _ := originScene(t)

	tap(s, input.KeySpace)
	s.Tick(2)
	snap := s.Snapshot()
	require.Len(t, snap.Projectiles, 1)
	assert.InDelta(t, l.fires[0].Position.Z()+0.4, snap.Projectiles[0].Position.Z(), eps)
	assert.InDelta(t, 2.0, snap.Now, eps)
	assert.Equal(t, uint64(1), snap.Tick)

	s.Tick(0)
	s.Tick(-1)
	assert.Equal(t, uint64(1), s.Snapshot().Tick, "non-positive steps are ignored")
}

func TestScaledStepsHitTargetBetweenSamples(t *testing.T) {
	// Spawn z=0.25 at 0.2 per tick: a step of 4 samples z=1.05 and z=1.85, both outside the hit radius of z=1.45
	for _, step := range []float64{1, 2, 3, 4} {
		s, _, l, _ := originScene(t, vmath.Vec3{0, 0.06, 1.45})

		tap(s, input.KeySpace)
		for i := 0; i < 40 && len(l.hits) == 0; i++ {
			s.Tick(step)
		}

		require.Len(t, l.hits, 1, "step %v", step)
		assert.Empty(t, s.Snapshot().Projectiles, "step %v", step)
		assert.False(t, s.Snapshot().Targets[0].Visible, "step %v", step)
	}
}

func TestEventTicksShareSimulationClock(t *testing.T) {
	s, _, l, _ := originScene(t, vmath.Vec3{0, 0.06, 1.45})

	tap(s, input.KeySpace)
	for i := 0; i < 40 && len(l.respawns) == 0; i++ {
		s.Tick(4)
	}

	require.Len(t, l.fires, 1)
	require.Len(t, l.hits, 1)
	require.Len(t, l.respawns, 1)
	assert.Equal(t, uint64(4), l.fires[0].Tick)
	assert.Equal(t, uint64(68), l.hits[0].RespawnAt, "hit during the tick reaching simulation tick 8")
	assert.Equal(t, l.hits[0].RespawnAt, l.respawns[0])
	assert.Equal(t, uint64(17), s.Snapshot().Tick)
}

func TestProjectileExpiresAtBound(t *testing.T) {
	opts := DefaultOptions()
	opts.AvatarStart = avatar.Pose{}
	opts.Targets = nil
	opts.Bounds = physics.Bounds{Radius: 1}
	w := newRecordingWorld()
	reg := status.NewRegistry()
	s := NewScene(opts, w, allTemplates(), reg, zerolog.Nop())

	tap(s, input.KeySpace)
	for i := 0; i < 10; i++ {
		s.Tick(1)
	}
	assert.Empty(t, s.Snapshot().Projectiles)
	assert.Equal(t, int64(1), reg.Ints.Get(status.KeyExpired).Load())
	assert.Len(t, w.removed, 1)
}
