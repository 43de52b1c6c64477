package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is the interleaved layout shared by literal geometry and loaded
// models: position, normal, texture coordinate. Eight tightly packed floats.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

// FloatsPerVertex is the number of float32 values in one Vertex.
const FloatsPerVertex = 8

// VerticesFromFloats splits an interleaved pos/normal/uv array into vertices.
// Trailing values that do not fill a whole vertex are dropped.
func VerticesFromFloats(data []float32) []Vertex {
	n := len(data) / FloatsPerVertex
	out := make([]Vertex, n)
	for i := range out {
		d := data[i*FloatsPerVertex:]
		out[i] = Vertex{
			Position: mgl32.Vec3{d[0], d[1], d[2]},
			Normal:   mgl32.Vec3{d[3], d[4], d[5]},
			UV:       mgl32.Vec2{d[6], d[7]},
		}
	}
	return out
}

// Transform is a translate, rotate-about-axis, scale chain applied in that
// order, matching how the room layout is written down.
type Transform struct {
	Translate mgl32.Vec3
	Axis      mgl32.Vec3 // zero axis means no rotation
	AngleDeg  float32
	Scale     mgl32.Vec3
}

// NewTransform returns the identity transform.
func NewTransform() Transform {
	return Transform{Scale: mgl32.Vec3{1, 1, 1}}
}

// Matrix composes T * R * S.
func (t Transform) Matrix() mgl32.Mat4 {
	m := mgl32.Translate3D(t.Translate.X(), t.Translate.Y(), t.Translate.Z())
	if t.Axis.Len() > 0 && t.AngleDeg != 0 {
		m = m.Mul4(mgl32.HomogRotate3D(mgl32.DegToRad(t.AngleDeg), t.Axis.Normalize()))
	}
	return m.Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}

// NormalMatrix is the inverse-transpose of the upper 3x3 of Matrix. Axes
// scaled to zero (flat floor and glass quads) are treated as unscaled so the
// result stays invertible and their normals survive.
func (t Transform) NormalMatrix() mgl32.Mat3 {
	s := t.Scale
	for i := range s {
		if s[i] == 0 {
			s[i] = 1
		}
	}
	safe := t
	safe.Scale = s
	return safe.Matrix().Mat3().Inv().Transpose()
}
