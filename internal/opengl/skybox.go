package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Skybox draws an inverted unit cube behind everything. The vertex shader
// uses the xyww trick so every fragment lands at NDC depth 1.0. With a
// cubemap it samples the six faces; without one it falls back to a built-in
// gradient.
type Skybox struct {
	vao uint32
	vbo uint32

	cubemap uint32   // 0 when the gradient is used
	prog    *Program // cubemap program, owned by the caller

	gradProg   uint32
	gradVPLoc  int32
	zenithLoc  int32
	horizonLoc int32
	groundLoc  int32

	ZenithColor  mgl32.Vec3
	HorizonColor mgl32.Vec3
	GroundColor  mgl32.Vec3
}

// ── Gradient fallback shaders ─────────────────────────────────────────────────

const skyVertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;

uniform mat4 skyVP;

out vec3 fragDir;

void main() {
    fragDir = inPosition;
    vec4 pos = skyVP * vec4(inPosition, 1.0);
    gl_Position = pos.xyww;
}
` + "\x00"

const skyFragSrc = `
#version 410 core
in vec3 fragDir;
out vec4 outColor;

uniform vec3 zenith;
uniform vec3 horizon;
uniform vec3 ground;

void main() {
    float t = normalize(fragDir).y;
    vec3 color;
    if (t >= 0.0) {
        color = mix(horizon, zenith, pow(t, 0.4));
    } else {
        color = mix(horizon, ground, min(-t * 3.0, 1.0));
    }
    outColor = vec4(color, 1.0);
}
` + "\x00"

// ── Cube geometry ─────────────────────────────────────────────────────────────

// 36 positions (xyz) for a unit cube, CCW from the outside. Culling is
// disabled during the draw so the inside faces show.
var skyboxVerts = []float32{
	// -Z face
	-1, -1, -1, 1, 1, -1, 1, -1, -1,
	1, 1, -1, -1, -1, -1, -1, 1, -1,
	// +Z face
	-1, -1, 1, 1, -1, 1, 1, 1, 1,
	1, 1, 1, -1, 1, 1, -1, -1, 1,
	// -X face
	-1, 1, 1, -1, 1, -1, -1, -1, -1,
	-1, -1, -1, -1, -1, 1, -1, 1, 1,
	// +X face
	1, 1, 1, 1, -1, -1, 1, 1, -1,
	1, -1, -1, 1, 1, 1, 1, -1, 1,
	// -Y face
	-1, -1, -1, 1, -1, -1, 1, -1, 1,
	1, -1, 1, -1, -1, 1, -1, -1, -1,
	// +Y face
	-1, 1, -1, 1, 1, 1, 1, 1, -1,
	1, 1, 1, -1, 1, -1, -1, 1, 1,
}

// ── Constructor ───────────────────────────────────────────────────────────────

// NewSkybox uploads the cube. cubemap and prog may be zero and nil, in which
// case the gradient is drawn instead.
func NewSkybox(cubemap uint32, prog *Program) (*Skybox, error) {
	sb := &Skybox{
		cubemap:      cubemap,
		prog:         prog,
		ZenithColor:  mgl32.Vec3{0.10, 0.30, 0.70},
		HorizonColor: mgl32.Vec3{0.60, 0.80, 1.00},
		GroundColor:  mgl32.Vec3{0.30, 0.25, 0.20},
	}

	if !sb.HasCubemap() {
		gp, err := newProgram(skyVertSrc, skyFragSrc)
		if err != nil {
			return nil, fmt.Errorf("skybox gradient shader: %w", err)
		}
		sb.gradProg = gp
		sb.gradVPLoc = gl.GetUniformLocation(gp, gl.Str("skyVP\x00"))
		sb.zenithLoc = gl.GetUniformLocation(gp, gl.Str("zenith\x00"))
		sb.horizonLoc = gl.GetUniformLocation(gp, gl.Str("horizon\x00"))
		sb.groundLoc = gl.GetUniformLocation(gp, gl.Str("ground\x00"))
	}

	gl.GenVertexArrays(1, &sb.vao)
	gl.GenBuffers(1, &sb.vbo)
	gl.BindVertexArray(sb.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, sb.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(skyboxVerts)*4, gl.Ptr(skyboxVerts), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 12, gl.PtrOffset(0))
	gl.BindVertexArray(0)

	return sb, nil
}

// HasCubemap reports whether the textured cubemap path is active.
func (sb *Skybox) HasCubemap() bool {
	return sb.cubemap != 0 && sb.prog != nil
}

// ── Draw ──────────────────────────────────────────────────────────────────────

// Draw renders the sky last. Depth test is relaxed to LEQUAL with writes off,
// then restored to LESS.
func (sb *Skybox) Draw(view, proj mgl32.Mat4) {
	// drop the translation so the sky stays at infinity
	skyVP := proj.Mul4(view.Mat3().Mat4())

	gl.DepthFunc(gl.LEQUAL)
	gl.DepthMask(false)
	gl.Disable(gl.CULL_FACE)

	if sb.HasCubemap() {
		sb.prog.Use()
		sb.prog.SetMat4("skyVP", skyVP)
		sb.prog.SetInt("skybox", 0)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_CUBE_MAP, sb.cubemap)
	} else {
		gl.UseProgram(sb.gradProg)
		gl.UniformMatrix4fv(sb.gradVPLoc, 1, false, &skyVP[0])
		gl.Uniform3f(sb.zenithLoc, sb.ZenithColor.X(), sb.ZenithColor.Y(), sb.ZenithColor.Z())
		gl.Uniform3f(sb.horizonLoc, sb.HorizonColor.X(), sb.HorizonColor.Y(), sb.HorizonColor.Z())
		gl.Uniform3f(sb.groundLoc, sb.GroundColor.X(), sb.GroundColor.Y(), sb.GroundColor.Z())
	}

	gl.BindVertexArray(sb.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 36)
	gl.BindVertexArray(0)

	gl.Enable(gl.CULL_FACE)
	gl.DepthMask(true)
	gl.DepthFunc(gl.LESS)
}

// Destroy frees the cube, the cubemap texture and the gradient program.
func (sb *Skybox) Destroy() {
	gl.DeleteVertexArrays(1, &sb.vao)
	gl.DeleteBuffers(1, &sb.vbo)
	if sb.cubemap != 0 {
		gl.DeleteTextures(1, &sb.cubemap)
		sb.cubemap = 0
	}
	if sb.gradProg != 0 {
		gl.DeleteProgram(sb.gradProg)
		sb.gradProg = 0
	}
}
