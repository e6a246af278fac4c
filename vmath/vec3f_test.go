package vmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-9

func TestFacingYawZeroIsPlusZ(t *testing.T) {
	f := Facing(0)
	assert.InDelta(t, 0.0, f.X(), eps)
	assert.InDelta(t, 0.0, f.Y(), eps)
	assert.InDelta(t, 1.0, f.Z(), eps)
}

func TestRotateYPositiveTurnsTowardPlusX(t *testing.T) {
	v := RotateY(BaseForward, HalfTurn)
	assert.InDelta(t, 1.0, v.X(), eps)
	assert.InDelta(t, 0.0, v.Z(), eps)

	v = RotateY(BaseForward, -HalfTurn)
	assert.InDelta(t, -1.0, v.X(), eps)
}

func TestRotateYPreservesLength(t *testing.T) {
	v := Vec3{3, 2, -4}
	for _, a := range []float64{0.02, -1.3, math.Pi, 7} {
		assert.InDelta(t, v.Len(), RotateY(v, a).Len(), eps)
		assert.InDelta(t, v.Y(), RotateY(v, a).Y(), eps, "rotation about Y keeps height")
	}
}

func TestDistSq(t *testing.T) {
	assert.InDelta(t, 0.04, DistSq(Vec3{1, 0, 0}, Vec3{1, 0, 0.2}), eps)
	assert.Equal(t, 0.0, DistSq(Vec3{}, Vec3{}))
}

func TestYawOfRoundTrip(t *testing.T) {
	for _, yaw := range []float64{0, 0.5, -2, 3} {
		assert.InDelta(t, yaw, YawOf(Facing(yaw)), 1e-9)
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi, math.Pi},
		{2*math.Pi + 0.5, 0.5},
		{-2*math.Pi - 0.5, -0.5},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, NormalizeAngle(tt.in), 1e-9, "in=%v", tt.in)
	}
}

func TestFlatten(t *testing.T) {
	f := Flatten(Vec3{0, 5, 2})
	assert.InDelta(t, 1.0, f.Z(), eps)
	assert.Equal(t, Vec3{}, Flatten(Vec3{0, 1, 0}))
}
