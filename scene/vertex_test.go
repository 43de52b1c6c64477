package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestVerticesFromFloats(t *testing.T) {
	data := []float32{
		1, 2, 3, 0, 1, 0, 0.5, 0.25,
		4, 5, 6, 0, 0, 1, 1, 1,
		9, 9, // partial vertex
	}
	verts := VerticesFromFloats(data)
	assert.Len(t, verts, 2)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, verts[0].Position)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, verts[0].Normal)
	assert.Equal(t, mgl32.Vec2{0.5, 0.25}, verts[0].UV)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, verts[1].Normal)
}

func TestTransformMatrix(t *testing.T) {
	id := NewTransform()
	assert.True(t, id.Matrix().ApproxEqual(mgl32.Ident4()))

	// translate then scale: the origin lands on the translation
	tr := Transform{Translate: mgl32.Vec3{0, 5, 0}, Scale: mgl32.Vec3{30, 10, 30}}
	p := tr.Matrix().Mul4x1(mgl32.Vec4{0.5, 0.5, 0.5, 1})
	assert.InDelta(t, 15, p.X(), 1e-5)
	assert.InDelta(t, 10, p.Y(), 1e-5)
	assert.InDelta(t, 15, p.Z(), 1e-5)

	// -90 degrees about X maps +Z onto +Y
	rot := Transform{Axis: mgl32.Vec3{1, 0, 0}, AngleDeg: -90, Scale: mgl32.Vec3{1, 1, 1}}
	q := rot.Matrix().Mul4x1(mgl32.Vec4{0, 0, 1, 1})
	assert.InDelta(t, 0, q.X(), 1e-5)
	assert.InDelta(t, 1, q.Y(), 1e-5)
	assert.InDelta(t, 0, q.Z(), 1e-5)
}

func TestTransformNormalMatrix_FlatScaleKeepsUp(t *testing.T) {
	floor := Transform{Scale: mgl32.Vec3{30, 0, 30}}
	n := floor.NormalMatrix().Mul3x1(mgl32.Vec3{0, 1, 0}).Normalize()
	assert.InDelta(t, 1, n.Y(), 1e-5)

	// non-uniform scale tilts a slanted normal towards the squashed axis
	squash := Transform{Scale: mgl32.Vec3{1, 0.5, 1}}
	s := squash.NormalMatrix().Mul3x1(mgl32.Vec3{1, 1, 0}.Normalize()).Normalize()
	assert.Greater(t, s.Y(), s.X())
}
