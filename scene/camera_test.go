package scene

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertVecNear(t *testing.T, want, got mgl32.Vec3, msgs ...interface{}) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], 1e-4, msgs...)
	}
}

func TestNewCamera_Defaults(t *testing.T) {
	c := NewCamera(mgl32.Vec3{0, 0, 3})
	assert.Equal(t, DefaultYaw, c.Yaw)
	assert.Equal(t, DefaultPitch, c.Pitch)
	assert.Equal(t, DefaultZoom, c.Zoom)
	assertVecNear(t, mgl32.Vec3{0, 0, -1}, c.Front)
	assertVecNear(t, mgl32.Vec3{1, 0, 0}, c.Right)
	assertVecNear(t, mgl32.Vec3{0, 1, 0}, c.Up)
}

func TestProcessKeyboard(t *testing.T) {
	c := NewCamera(mgl32.Vec3{0, 0, 3})

	c.ProcessKeyboard(Forward, 0.4) // 2.5 * 0.4 = 1 unit
	assertVecNear(t, mgl32.Vec3{0, 0, 2}, c.Position)

	c.ProcessKeyboard(Right, 0.4)
	assertVecNear(t, mgl32.Vec3{1, 0, 2}, c.Position)

	c.ProcessKeyboard(Backward, 0.4)
	c.ProcessKeyboard(Left, 0.4)
	assertVecNear(t, mgl32.Vec3{0, 0, 3}, c.Position)
}

func TestProcessMouseMovement_ClampsPitch(t *testing.T) {
	c := NewCamera(mgl32.Vec3{})
	c.ProcessMouseMovement(0, 10000)
	assert.Equal(t, MaxPitch, c.Pitch)

	c.ProcessMouseMovement(0, -20000)
	assert.Equal(t, -MaxPitch, c.Pitch)
	assert.InDelta(t, 1, c.Front.Len(), 1e-5)
}

func TestProcessMouseMovement_Yaw(t *testing.T) {
	c := NewCamera(mgl32.Vec3{})
	c.ProcessMouseMovement(900, 0) // +90 degrees
	assert.InDelta(t, 0, c.Yaw, 1e-4)
	assertVecNear(t, mgl32.Vec3{1, 0, 0}, c.Front)
}

func TestProcessMouseScroll_ClampsZoom(t *testing.T) {
	c := NewCamera(mgl32.Vec3{})
	c.ProcessMouseScroll(10)
	assert.Equal(t, float32(35), c.Zoom)
	c.ProcessMouseScroll(100)
	assert.Equal(t, MinZoom, c.Zoom)
	c.ProcessMouseScroll(-100)
	assert.Equal(t, MaxZoom, c.Zoom)
}

func TestSetFront_SurvivesZeroMouseDelta(t *testing.T) {
	c := NewCamera(mgl32.Vec3{})
	want := mgl32.Vec3{0.3, -0.4, 0.5}.Normalize()

	c.SetFront(mgl32.Vec3{0.3, -0.4, 0.5})
	assertVecNear(t, want, c.Front)

	c.ProcessMouseMovement(0, 0)
	assertVecNear(t, want, c.Front)
}

func TestSetFront_KeepsUnitFrontExactly(t *testing.T) {
	fronts := []mgl32.Vec3{
		{0.21266672, -0.09879875, -0.9721172},
		{0, 1, 0},
		{0, -1, 0},
	}
	for _, f := range fronts {
		c := NewCamera(mgl32.Vec3{})
		c.SetFront(f)
		assert.Equal(t, f, c.Front)
		for i := 0; i < 3; i++ {
			assert.False(t, math32.IsNaN(c.Right[i]), "right %v", c.Right)
			assert.False(t, math32.IsNaN(c.Up[i]), "up %v", c.Up)
		}
		assert.InDelta(t, 1, c.Right.Len(), 1e-5)
		assert.InDelta(t, 0, c.Right.Dot(c.Front), 1e-5)
	}
}

func TestSetFront_IgnoresZero(t *testing.T) {
	c := NewCamera(mgl32.Vec3{})
	before := c.Front
	c.SetFront(mgl32.Vec3{})
	assert.Equal(t, before, c.Front)
}

func TestViewAndProjection(t *testing.T) {
	c := NewCamera(mgl32.Vec3{0, 0, 3})
	v := c.ViewMatrix()
	p := v.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, -3, p.Z(), 1e-5, "origin sits 3 units in front of the camera")

	proj := c.Projection(1600.0 / 1200.0)
	assert.InDelta(t, 1/math32.Tan(mgl32.DegToRad(22.5))/(4.0/3.0), proj.At(0, 0), 1e-4)
	assert.NotPanics(t, func() { c.Projection(0) })
}
