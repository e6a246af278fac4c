package avatar

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/vi-blaster/input"
	"github.com/lixenwraith/vi-blaster/vmath"
)

const eps = 1e-9

func held(keys ...input.Key) *input.State {
	s := input.NewState(nil)
	for _, k := range keys {
		s.KeyDown(k)
	}
	return s
}

func TestRotateLeftRight(t *testing.T) {
	c := NewController()
	p := &Pose{}

	c.Update(p, held("a"), p.Facing(), 1)
	assert.InDelta(t, 0.02, p.Yaw, eps)
	assert.Equal(t, vmath.Vec3{}, p.Position, "rotation does not translate")

	c.Update(p, held(input.KeyArrowRight), p.Facing(), 1)
	c.Update(p, held("d"), p.Facing(), 1)
	assert.InDelta(t, -0.02, p.Yaw, eps)
}

func TestLeftTakesPrecedence(t *testing.T) {
	c := NewController()
	p := &Pose{}
	c.Update(p, held("a", "d"), p.Facing(), 1)
	assert.InDelta(t, 0.02, p.Yaw, eps)
}

func TestForwardBack(t *testing.T) {
	c := NewController()
	p := &Pose{}

	c.Update(p, held("w"), p.Facing(), 1)
	assert.InDelta(t, 0.1, p.Position.Z(), eps)

	c.Update(p, held("s"), p.Facing(), 1)
	c.Update(p, held("s"), p.Facing(), 1)
	assert.InDelta(t, -0.1, p.Position.Z(), eps)

	// Forward wins over back
	c.Update(p, held("w", "s"), p.Facing(), 1)
	assert.InDelta(t, 0.0, p.Position.Z(), eps)
}

func TestStrafeNeverChangesYaw(t *testing.T) {
	c := NewController()
	p := &Pose{Yaw: 0.3}

	for i := 0; i < 10; i++ {
		c.Update(p, held(input.KeyShift, "a"), p.Facing(), 1)
	}
	assert.InDelta(t, 0.3, p.Yaw, eps)

	// Strafe left is facing rotated +90°
	want := vmath.RotateY(vmath.Facing(0.3), math.Pi/2).Mul(1.0)
	assert.InDelta(t, want.X(), p.Position.X(), 1e-9)
	assert.InDelta(t, want.Z(), p.Position.Z(), 1e-9)
}

func TestStrafeRightFromZeroYaw(t *testing.T) {
	c := NewController()
	p := &Pose{}
	c.Update(p, held(input.KeyShift, "d"), p.Facing(), 1)
	assert.InDelta(t, -0.1, p.Position.X(), eps)
	assert.InDelta(t, 0.0, p.Position.Z(), eps)
	assert.Equal(t, 0.0, p.Yaw)
}

func TestForwardIndependentOfModifier(t *testing.T) {
	c := NewController()
	p := &Pose{}
	c.Update(p, held(input.KeyShift, "w"), p.Facing(), 1)
	assert.InDelta(t, 0.1, p.Position.Z(), eps)
}

func TestYawChangesOnlyWhenRotating(t *testing.T) {
	c := NewController()
	combos := [][]input.Key{
		{},
		{"w"},
		{"s"},
		{input.KeyShift},
		{input.KeyShift, "a"},
		{input.KeyShift, "d", "w"},
		{"x", "q"},
	}
	for _, keys := range combos {
		p := &Pose{Yaw: 1}
		c.Update(p, held(keys...), p.Facing(), 1)
		assert.Equal(t, 1.0, p.Yaw, "keys=%v", keys)
	}
}

func TestStepScales(t *testing.T) {
	c := NewController()
	p := &Pose{}
	c.Update(p, held("w", "a"), p.Facing(), 2.5)
	assert.InDelta(t, 0.25, p.Position.Z(), eps)
	assert.InDelta(t, 0.05, p.Yaw, eps)
}

func TestNilIsNoop(t *testing.T) {
	c := NewController()
	c.Update(nil, held("w"), vmath.BaseForward, 1)

	p := &Pose{Yaw: 0.5}
	c.Update(p, nil, vmath.BaseForward, 1)
	assert.Equal(t, Pose{Yaw: 0.5}, *p)
}
