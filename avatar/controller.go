package avatar

import (
	"github.com/lixenwraith/vi-blaster/input"
	"github.com/lixenwraith/vi-blaster/parameter"
	"github.com/lixenwraith/vi-blaster/vmath"
)

// Pose is the avatar transform, yaw in radians about world up
type Pose struct {
	Position vmath.Vec3
	Yaw      float64
}

// Facing returns the unit direction the pose looks along
func (p Pose) Facing() vmath.Vec3 {
	return vmath.Facing(p.Yaw)
}

// Controls is the held-action view the controller reads
type Controls interface {
	Held(a input.Action) bool
}

// Controller applies held movement keys to a pose once per tick
type Controller struct {
	MoveStep float64 // Units per tick
	TurnStep float64 // Radians per tick
}

// NewController returns a controller with default steps
func NewController() *Controller {
	return &Controller{
		MoveStep: parameter.MoveStep,
		TurnStep: parameter.TurnStep,
	}
}

// Update moves pose for step ticks using the facing direction sampled at tick start
// Left wins over right and forward over back when both are held
// With strafe held, left/right translate sideways and yaw is untouched
func (c *Controller) Update(pose *Pose, in Controls, facing vmath.Vec3, step float64) {
	if pose == nil || in == nil || step <= 0 {
		return
	}

	strafe := in.Held(input.ActionStrafe)
	left := in.Held(input.ActionLeft)
	right := !left && in.Held(input.ActionRight)

	if !strafe {
		switch {
		case left:
			pose.Yaw = vmath.NormalizeAngle(pose.Yaw + c.TurnStep*step)
		case right:
			pose.Yaw = vmath.NormalizeAngle(pose.Yaw - c.TurnStep*step)
		}
	}

	dist := c.MoveStep * step
	switch {
	case in.Held(input.ActionForward):
		pose.Position = vmath.Translate(pose.Position, facing, dist)
	case in.Held(input.ActionBack):
		pose.Position = vmath.Translate(pose.Position, facing, -dist)
	}

	if strafe {
		switch {
		case left:
			pose.Position = vmath.Translate(pose.Position, vmath.RotateY(facing, vmath.HalfTurn), dist)
		case right:
			pose.Position = vmath.Translate(pose.Position, vmath.RotateY(facing, -vmath.HalfTurn), dist)
		}
	}
}
