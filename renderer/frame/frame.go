// Package frame computes everything one rendered frame needs from the
// application context, without touching GL.
package frame

import (
	"github.com/go-gl/mathgl/mgl32"

	"room-renderer/app"
	"room-renderer/scene"
)

// Shininess is the material.shininess uniform for every surface.
const Shininess float32 = 32

// Frame is the per-frame input to the renderer.
type Frame struct {
	View         mgl32.Mat4
	Projection   mgl32.Mat4
	ViewPosition mgl32.Vec3

	// Lights already have disabled lights' colours zeroed.
	Lights   scene.Lights
	Exposure float32

	ClearColor mgl32.Vec3
	HDR        bool
	Room       scene.Room
}

// Build snapshots ctx for a framebuffer of width x height pixels.
func Build(ctx *app.Context, width, height int) Frame {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	return Frame{
		View:         ctx.Camera.ViewMatrix(),
		Projection:   ctx.Camera.Projection(aspect),
		ViewPosition: ctx.Camera.Position,
		Lights:       ctx.Lights.Effective(ctx.Toggles()),
		Exposure:     ctx.Exposure(),
		ClearColor:   ctx.ClearColor,
		HDR:          ctx.HDR,
		Room:         scene.NewRoomLayout(ctx.BackpackPosition, ctx.BackpackScale),
	}
}

// Uniforms lists the lighting uniforms by GLSL name. Every light is present
// whether or not it is switched on.
func (f Frame) Uniforms() (vec3s map[string]mgl32.Vec3, floats map[string]float32) {
	l := f.Lights
	vec3s = map[string]mgl32.Vec3{
		"viewPosition": f.ViewPosition,

		"pointLight.position": l.Point.Position,
		"pointLight.ambient":  l.Point.Ambient,
		"pointLight.diffuse":  l.Point.Diffuse,
		"pointLight.specular": l.Point.Specular,

		"dirLight.direction": l.Dir.Direction,
		"dirLight.ambient":   l.Dir.Ambient,
		"dirLight.diffuse":   l.Dir.Diffuse,
		"dirLight.specular":  l.Dir.Specular,

		"spotLight.position":  l.Spot.Position,
		"spotLight.direction": l.Spot.Direction,
		"spotLight.ambient":   l.Spot.Ambient,
		"spotLight.diffuse":   l.Spot.Diffuse,
		"spotLight.specular":  l.Spot.Specular,
	}
	floats = map[string]float32{
		"material.shininess": Shininess,

		"pointLight.constant":  l.Point.Constant,
		"pointLight.linear":    l.Point.Linear,
		"pointLight.quadratic": l.Point.Quadratic,

		"spotLight.constant":    l.Spot.Constant,
		"spotLight.linear":      l.Spot.Linear,
		"spotLight.quadratic":   l.Spot.Quadratic,
		"spotLight.cutOff":      l.Spot.CutOff,
		"spotLight.outerCutOff": l.Spot.OuterCutOff,
	}
	return vec3s, floats
}

// Draw is one item with the raster state it needs.
type Draw struct {
	Item  scene.Item
	Cull  bool
	Blend bool
}

// Plan orders the room's items pass by pass: opaque, then models, then
// blended. Only blended items turn blending on.
func Plan(room scene.Room) []Draw {
	out := make([]Draw, 0, len(room.Items))
	for _, pass := range []scene.Pass{scene.PassOpaque, scene.PassModels, scene.PassBlended} {
		for _, it := range room.ItemsIn(pass) {
			out = append(out, Draw{
				Item:  it,
				Cull:  !it.DisableCull,
				Blend: pass == scene.PassBlended,
			})
		}
	}
	return out
}
