package scene

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Attenuation holds the constant/linear/quadratic falloff terms.
type Attenuation struct {
	Constant  float32
	Linear    float32
	Quadratic float32
}

// Colors is the ambient/diffuse/specular triple every light carries.
type Colors struct {
	Ambient  mgl32.Vec3
	Diffuse  mgl32.Vec3
	Specular mgl32.Vec3
}

// Zero reports whether all three contributions are black.
func (c Colors) Zero() bool {
	return c.Ambient == (mgl32.Vec3{}) && c.Diffuse == (mgl32.Vec3{}) && c.Specular == (mgl32.Vec3{})
}

type PointLight struct {
	Position mgl32.Vec3
	Colors
	Attenuation
}

type DirLight struct {
	Direction mgl32.Vec3
	Colors
}

// SpotLight cut-offs are cosines of the inner and outer cone half-angles.
type SpotLight struct {
	Position    mgl32.Vec3
	Direction   mgl32.Vec3
	CutOff      float32
	OuterCutOff float32
	Colors
	Attenuation
}

// Effective returns the light as it is uploaded: disabled lights keep their
// geometry but contribute nothing.
func (l PointLight) Effective(enabled bool) PointLight {
	if !enabled {
		l.Colors = Colors{}
	}
	return l
}

func (l DirLight) Effective(enabled bool) DirLight {
	if !enabled {
		l.Colors = Colors{}
	}
	return l
}

func (l SpotLight) Effective(enabled bool) SpotLight {
	if !enabled {
		l.Colors = Colors{}
	}
	return l
}

// Validate reports a cone whose outer edge lies inside its inner edge.
func (l SpotLight) Validate() error {
	if l.OuterCutOff > l.CutOff {
		return fmt.Errorf("spot light outer cut-off cos %.4f exceeds inner cut-off cos %.4f", l.OuterCutOff, l.CutOff)
	}
	return nil
}

// CosDeg is the cosine of an angle in degrees.
func CosDeg(deg float32) float32 {
	return math32.Cos(mgl32.DegToRad(deg))
}

// Lights is the fixed light rig of the room.
type Lights struct {
	Point PointLight
	Dir   DirLight
	Spot  SpotLight
}

// DefaultLights returns the ceiling lamp rig: a point light and a downward
// spot light at the lamp, plus a dim directional fill.
func DefaultLights() Lights {
	return Lights{
		Point: PointLight{
			Position: mgl32.Vec3{0, 8, 0},
			Colors: Colors{
				Ambient:  mgl32.Vec3{0.9, 0.9, 0.9},
				Diffuse:  mgl32.Vec3{0.6, 0.6, 0.6},
				Specular: mgl32.Vec3{1, 1, 1},
			},
			Attenuation: Attenuation{Constant: 1, Linear: 0.09, Quadratic: 0.032},
		},
		Dir: DirLight{
			Direction: mgl32.Vec3{0, -1, 0},
			Colors: Colors{
				Ambient:  mgl32.Vec3{0.01, 0.01, 0.01},
				Diffuse:  mgl32.Vec3{0.2, 0.2, 0.2},
				Specular: mgl32.Vec3{0.2, 0.2, 0.2},
			},
		},
		Spot: SpotLight{
			Position:    mgl32.Vec3{0, 8, 0},
			Direction:   mgl32.Vec3{0, -1, 0},
			CutOff:      CosDeg(75),
			OuterCutOff: CosDeg(87),
			Colors: Colors{
				Ambient:  mgl32.Vec3{0.7, 0.7, 0.6},
				Diffuse:  mgl32.Vec3{4, 4, 3.5},
				Specular: mgl32.Vec3{3, 3, 2.7},
			},
			Attenuation: Attenuation{Constant: 0.9, Linear: 0.15, Quadratic: 0.05},
		},
	}
}

// Toggles selects which lights contribute.
type Toggles struct {
	Dir   bool
	Point bool
	Spot  bool
}

// Effective applies t to every light.
func (l Lights) Effective(t Toggles) Lights {
	return Lights{
		Point: l.Point.Effective(t.Point),
		Dir:   l.Dir.Effective(t.Dir),
		Spot:  l.Spot.Effective(t.Spot),
	}
}
