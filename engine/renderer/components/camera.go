package components

import (
	stdmath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/tavolo/engine/core"
)

// Direction of camera movement relative to its current orientation.
type Direction uint8

const (
	Forward Direction = iota
	Backward
	Left
	Right
	Up
	Down
)

const (
	defaultYaw              = -90.0
	defaultPitch            = -20.0
	defaultMovementSpeed    = 5.0
	defaultMouseSensitivity = 0.1
)

// Camera is a free-flying viewer. The view matrix is rebuilt lazily
// whenever position or orientation changes.
type Camera struct {
	Position  mgl32.Vec3
	Front     mgl32.Vec3
	Upward    mgl32.Vec3
	Rightward mgl32.Vec3
	WorldUp   mgl32.Vec3

	// Euler angles in degrees.
	Yaw   float32
	Pitch float32

	MovementSpeed    float32
	MouseSensitivity float32

	isDirty    bool
	viewMatrix mgl32.Mat4
}

func NewCamera(position mgl32.Vec3) *Camera {
	c := &Camera{
		Position:         position,
		WorldUp:          mgl32.Vec3{0, 1, 0},
		Yaw:              defaultYaw,
		Pitch:            defaultPitch,
		MovementSpeed:    defaultMovementSpeed,
		MouseSensitivity: defaultMouseSensitivity,
		isDirty:          true,
	}
	c.updateVectors()
	return c
}

// GetView returns the view matrix, rebuilding it only when needed.
func (c *Camera) GetView() mgl32.Mat4 {
	if c.isDirty {
		c.viewMatrix = mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Upward)
		c.isDirty = false
	}
	return c.viewMatrix
}

// ProcessKeyboard moves the camera along one of its axes, scaled by frame time.
func (c *Camera) ProcessKeyboard(direction Direction, deltaTime float32) {
	velocity := c.MovementSpeed * deltaTime
	switch direction {
	case Forward:
		c.Position = c.Position.Add(c.Front.Mul(velocity))
	case Backward:
		c.Position = c.Position.Sub(c.Front.Mul(velocity))
	case Left:
		c.Position = c.Position.Sub(c.Rightward.Mul(velocity))
	case Right:
		c.Position = c.Position.Add(c.Rightward.Mul(velocity))
	case Up:
		c.Position = c.Position.Add(c.WorldUp.Mul(velocity))
	case Down:
		c.Position = c.Position.Sub(c.WorldUp.Mul(velocity))
	}
	c.isDirty = true
}

// ProcessMouseMovement applies a cursor offset to yaw and pitch. Pitch is
// clamped short of the poles to avoid gimbal flip.
func (c *Camera) ProcessMouseMovement(xOffset, yOffset float32) {
	c.Yaw += xOffset * c.MouseSensitivity
	c.Pitch += yOffset * c.MouseSensitivity
	c.Pitch = core.Clamp(c.Pitch, -89.0, 89.0)
	c.updateVectors()
}

// ProcessMouseScroll adjusts movement speed with the scroll wheel.
func (c *Camera) ProcessMouseScroll(yOffset float32) {
	c.MovementSpeed = core.Clamp(c.MovementSpeed+yOffset, 0.1, 10.0)
}

func (c *Camera) updateVectors() {
	yaw := float64(mgl32.DegToRad(c.Yaw))
	pitch := float64(mgl32.DegToRad(c.Pitch))

	front := mgl32.Vec3{
		float32(stdmath.Cos(yaw) * stdmath.Cos(pitch)),
		float32(stdmath.Sin(pitch)),
		float32(stdmath.Sin(yaw) * stdmath.Cos(pitch)),
	}
	c.Front = front.Normalize()
	c.Rightward = c.Front.Cross(c.WorldUp).Normalize()
	c.Upward = c.Rightward.Cross(c.Front).Normalize()
	c.isDirty = true
}
