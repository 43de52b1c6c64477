package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/inkyblackness/imgui-go/v4"
)

// ImguiRenderer draws ImGui draw data with the GL 4.1 core profile.
type ImguiRenderer struct {
	prog       uint32
	texLoc     int32
	projMtxLoc int32

	vbo         uint32
	ebo         uint32
	fontTexture uint32
}

// ── Shaders ───────────────────────────────────────────────────────────────────

const imguiVertSrc = `
#version 410 core
layout(location = 0) in vec2 Position;
layout(location = 1) in vec2 UV;
layout(location = 2) in vec4 Color;

uniform mat4 ProjMtx;

out vec2 Frag_UV;
out vec4 Frag_Color;

void main() {
    Frag_UV = UV;
    Frag_Color = Color;
    gl_Position = ProjMtx * vec4(Position.xy, 0.0, 1.0);
}
` + "\x00"

// The font atlas is single channel, so red carries coverage.
const imguiFragSrc = `
#version 410 core
in vec2 Frag_UV;
in vec4 Frag_Color;

uniform sampler2D Texture;

out vec4 Out_Color;

void main() {
    Out_Color = vec4(Frag_Color.rgb, Frag_Color.a * texture(Texture, Frag_UV.st).r);
}
` + "\x00"

// ── Constructor ───────────────────────────────────────────────────────────────

// NewImguiRenderer compiles the UI program and uploads the font atlas of io.
func NewImguiRenderer(io imgui.IO) (*ImguiRenderer, error) {
	prog, err := newProgram(imguiVertSrc, imguiFragSrc)
	if err != nil {
		return nil, fmt.Errorf("imgui shader: %w", err)
	}
	r := &ImguiRenderer{
		prog:       prog,
		texLoc:     gl.GetUniformLocation(prog, gl.Str("Texture\x00")),
		projMtxLoc: gl.GetUniformLocation(prog, gl.Str("ProjMtx\x00")),
	}
	gl.GenBuffers(1, &r.vbo)
	gl.GenBuffers(1, &r.ebo)

	image := io.Fonts().TextureDataAlpha8()
	gl.GenTextures(1, &r.fontTexture)
	gl.BindTexture(gl.TEXTURE_2D, r.fontTexture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(image.Width), int32(image.Height),
		0, gl.RED, gl.UNSIGNED_BYTE, image.Pixels)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	io.Fonts().SetTextureID(imgui.TextureID(r.fontTexture))

	return r, nil
}

// ── Render ────────────────────────────────────────────────────────────────────

// Render draws drawData over the default framebuffer. displaySize is in
// window coordinates, framebufferSize in pixels. It leaves depth test and
// culling on, blending and scissor off.
func (r *ImguiRenderer) Render(displaySize, framebufferSize [2]float32, drawData imgui.DrawData) {
	dw, dh := displaySize[0], displaySize[1]
	fbw, fbh := framebufferSize[0], framebufferSize[1]
	if dw <= 0 || dh <= 0 || fbw <= 0 || fbh <= 0 || !drawData.Valid() {
		return
	}
	drawData.ScaleClipRects(imgui.Vec2{X: fbw / dw, Y: fbh / dh})

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)
	gl.Viewport(0, 0, int32(fbw), int32(fbh))

	ortho := [16]float32{
		2 / dw, 0, 0, 0,
		0, -2 / dh, 0, 0,
		0, 0, -1, 0,
		-1, 1, 0, 1,
	}
	gl.UseProgram(r.prog)
	gl.Uniform1i(r.texLoc, 0)
	gl.UniformMatrix4fv(r.projMtxLoc, 1, false, &ortho[0])
	gl.ActiveTexture(gl.TEXTURE0)

	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)

	vertexSize, posOff, uvOff, colOff := imgui.VertexBufferLayout()
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, int32(vertexSize), gl.PtrOffset(posOff))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, int32(vertexSize), gl.PtrOffset(uvOff))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.UNSIGNED_BYTE, true, int32(vertexSize), gl.PtrOffset(colOff))

	indexSize := imgui.IndexBufferLayout()
	drawType := uint32(gl.UNSIGNED_SHORT)
	if indexSize == 4 {
		drawType = gl.UNSIGNED_INT
	}

	for _, list := range drawData.CommandLists() {
		vb, vbSize := list.VertexBuffer()
		gl.BufferData(gl.ARRAY_BUFFER, vbSize, vb, gl.STREAM_DRAW)
		ib, ibSize := list.IndexBuffer()
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, ibSize, ib, gl.STREAM_DRAW)

		offset := 0
		for _, cmd := range list.Commands() {
			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
			} else {
				gl.BindTexture(gl.TEXTURE_2D, uint32(cmd.TextureID()))
				clip := cmd.ClipRect()
				gl.Scissor(int32(clip.X), int32(fbh)-int32(clip.W), int32(clip.Z-clip.X), int32(clip.W-clip.Y))
				gl.DrawElements(gl.TRIANGLES, int32(cmd.ElementCount()), drawType, gl.PtrOffset(offset))
			}
			offset += cmd.ElementCount() * indexSize
		}
	}

	gl.DeleteVertexArrays(1, &vao)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.Disable(gl.SCISSOR_TEST)
	gl.Disable(gl.BLEND)
	gl.Enable(gl.CULL_FACE)
	gl.Enable(gl.DEPTH_TEST)
}

// Destroy frees the program, buffers and font texture.
func (r *ImguiRenderer) Destroy() {
	gl.DeleteBuffers(1, &r.vbo)
	gl.DeleteBuffers(1, &r.ebo)
	if r.fontTexture != 0 {
		gl.DeleteTextures(1, &r.fontTexture)
		r.fontTexture = 0
	}
	gl.DeleteProgram(r.prog)
}
