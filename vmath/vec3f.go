package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is the world-space vector used by all simulation state
// Y is up, yaw rotates about Y, yaw 0 faces +Z
type Vec3 = mgl64.Vec3

// Axis and reference vectors
var (
	Up          = Vec3{0, 1, 0}
	BaseForward = Vec3{0, 0, 1}
)

// HalfTurn is a quarter rotation in radians, used for strafe directions
const HalfTurn = math.Pi * 0.5

// RotateY rotates v about the world up axis by angle radians
// Positive angles turn +Z toward +X
func RotateY(v Vec3, angle float64) Vec3 {
	return mgl64.Rotate3DY(angle).Mul3x1(v)
}

// Facing returns the unit facing direction for a yaw angle
func Facing(yaw float64) Vec3 {
	return RotateY(BaseForward, yaw)
}

// DistSq returns squared distance between two points
func DistSq(a, b Vec3) float64 {
	return a.Sub(b).LenSqr()
}

// Translate moves p along dir by dist
// dir is not re-normalized; callers pass unit directions
func Translate(p, dir Vec3, dist float64) Vec3 {
	return p.Add(dir.Mul(dist))
}

// Flatten projects v onto the XZ plane and renormalizes
// Returns zero vector when v is vertical
func Flatten(v Vec3) Vec3 {
	f := Vec3{v.X(), 0, v.Z()}
	if f.LenSqr() == 0 {
		return Vec3{}
	}
	return f.Normalize()
}

// NormalizeAngle wraps radians into (-π, π]
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// YawOf returns the yaw whose facing points along v projected onto XZ
func YawOf(v Vec3) float64 {
	return math.Atan2(v.X(), v.Z())
}
