package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraMovement is a WASD direction.
type CameraMovement int

const (
	Forward CameraMovement = iota
	Backward
	Left
	Right
)

const (
	DefaultYaw         float32 = -90
	DefaultPitch       float32 = 0
	DefaultSpeed       float32 = 2.5
	DefaultSensitivity float32 = 0.1
	DefaultZoom        float32 = 45

	MaxPitch float32 = 89
	MinZoom  float32 = 1
	MaxZoom  float32 = 45

	NearPlane float32 = 0.1
	FarPlane  float32 = 100
)

// unitTolerance is how far from 1 a front's length may be and still count
// as normalised.
const unitTolerance float32 = 1e-4

// Camera is a fly camera driven by Euler angles. Front is always unit length.
type Camera struct {
	Position mgl32.Vec3
	Front    mgl32.Vec3
	Up       mgl32.Vec3
	Right    mgl32.Vec3
	WorldUp  mgl32.Vec3

	Yaw   float32 // degrees
	Pitch float32 // degrees

	MovementSpeed    float32
	MouseSensitivity float32
	Zoom             float32 // vertical field of view, degrees
}

func NewCamera(position mgl32.Vec3) *Camera {
	c := &Camera{
		Position:         position,
		WorldUp:          mgl32.Vec3{0, 1, 0},
		Yaw:              DefaultYaw,
		Pitch:            DefaultPitch,
		MovementSpeed:    DefaultSpeed,
		MouseSensitivity: DefaultSensitivity,
		Zoom:             DefaultZoom,
	}
	c.updateVectors()
	return c
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}

// Projection returns the perspective matrix for the given aspect ratio.
func (c *Camera) Projection(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.Zoom), aspect, NearPlane, FarPlane)
}

// ProcessKeyboard moves the camera along its own axes, scaled by deltaTime.
func (c *Camera) ProcessKeyboard(direction CameraMovement, deltaTime float32) {
	velocity := c.MovementSpeed * deltaTime
	switch direction {
	case Forward:
		c.Position = c.Position.Add(c.Front.Mul(velocity))
	case Backward:
		c.Position = c.Position.Sub(c.Front.Mul(velocity))
	case Left:
		c.Position = c.Position.Sub(c.Right.Mul(velocity))
	case Right:
		c.Position = c.Position.Add(c.Right.Mul(velocity))
	}
}

// ProcessMouseMovement turns the camera by a cursor offset. Pitch is clamped
// so the view never flips.
func (c *Camera) ProcessMouseMovement(xoffset, yoffset float32) {
	c.Yaw += xoffset * c.MouseSensitivity
	c.Pitch += yoffset * c.MouseSensitivity
	c.Pitch = clampPitch(c.Pitch)
	c.updateVectors()
}

// ProcessMouseScroll zooms by changing the field of view within [1, 45].
func (c *Camera) ProcessMouseScroll(yoffset float32) {
	c.Zoom -= yoffset
	c.Zoom = math32.Max(MinZoom, math32.Min(MaxZoom, c.Zoom))
}

// SetFront points the camera exactly along front and re-derives yaw and
// pitch from it, so later mouse movement continues from this orientation.
// A unit-length front is kept bit for bit; a zero vector is ignored.
func (c *Camera) SetFront(front mgl32.Vec3) {
	l := front.Len()
	if l < 1e-6 {
		return
	}
	if math32.Abs(l-1) > unitTolerance {
		front = front.Mul(1 / l)
	}
	c.Front = front
	c.Pitch = clampPitch(mgl32.RadToDeg(math32.Asin(mgl32.Clamp(front.Y(), -1, 1))))
	c.Yaw = mgl32.RadToDeg(math32.Atan2(front.Z(), front.X()))
	c.updateBasis()
}

func (c *Camera) updateVectors() {
	yaw := mgl32.DegToRad(c.Yaw)
	pitch := mgl32.DegToRad(c.Pitch)
	front := mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}
	c.Front = front.Normalize()
	c.updateBasis()
}

// updateBasis derives Right and Up from Front. Looking straight up or down
// the right vector comes from yaw instead.
func (c *Camera) updateBasis() {
	right := c.Front.Cross(c.WorldUp)
	if right.Len() < 1e-6 {
		yaw := mgl32.DegToRad(c.Yaw)
		right = mgl32.Vec3{-math32.Sin(yaw), 0, math32.Cos(yaw)}
	}
	c.Right = right.Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}

func clampPitch(p float32) float32 {
	return mgl32.Clamp(p, -MaxPitch, MaxPitch)
}
