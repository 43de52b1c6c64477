package opengl

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/rs/zerolog"
)

// HDRTarget is an off-screen RGBA16F render target resolved to the default
// framebuffer by a tonemapping pass.
type HDRTarget struct {
	FBO      uint32 // framebuffer object
	ColorTex uint32 // RGBA16F colour attachment
	DepthTex uint32 // DEPTH_COMPONENT32F depth attachment
	Width    int32
	Height   int32

	prog    *Program
	quadVAO uint32 // empty VAO for the fullscreen triangle
	log     zerolog.Logger
}

// NewHDRTarget allocates the target. prog is the tonemap program (hdr.vs and
// hdr.fs); it samples hdrBuffer on unit 0 and reads the exposure uniform.
func NewHDRTarget(log zerolog.Logger, prog *Program, width, height int) *HDRTarget {
	t := &HDRTarget{prog: prog, log: log}
	gl.GenVertexArrays(1, &t.quadVAO)
	t.allocFBO(width, height)
	return t
}

// Bind makes the target the draw framebuffer at its own size.
func (t *HDRTarget) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.FBO)
	gl.Viewport(0, 0, t.Width, t.Height)
}

// Resolve tonemaps the target into the default framebuffer:
// 1 - exp(-hdr * exposure), then gamma 2.2.
func (t *HDRTarget) Resolve(exposure float32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, t.Width, t.Height)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Disable(gl.DEPTH_TEST)

	t.prog.Use()
	t.prog.SetInt("hdrBuffer", 0)
	t.prog.SetFloat("exposure", exposure)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, t.ColorTex)

	gl.BindVertexArray(t.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)

	gl.Enable(gl.DEPTH_TEST)
}

// Resize recreates the attachments at the new pixel dimensions.
func (t *HDRTarget) Resize(width, height int) {
	if int32(width) == t.Width && int32(height) == t.Height {
		return
	}
	t.freeFBO()
	t.allocFBO(width, height)
}

// Destroy frees the attachments and the empty VAO. The program is owned by
// the caller.
func (t *HDRTarget) Destroy() {
	t.freeFBO()
	if t.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &t.quadVAO)
		t.quadVAO = 0
	}
}

// ── FBO lifecycle ─────────────────────────────────────────────────────────────

func (t *HDRTarget) allocFBO(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	t.Width = int32(width)
	t.Height = int32(height)

	gl.GenTextures(1, &t.ColorTex)
	gl.BindTexture(gl.TEXTURE_2D, t.ColorTex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA16F,
		t.Width, t.Height, 0, gl.RGBA, gl.HALF_FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenTextures(1, &t.DepthTex)
	gl.BindTexture(gl.TEXTURE_2D, t.DepthTex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT32F,
		t.Width, t.Height, 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenFramebuffers(1, &t.FBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.FBO)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0,
		gl.TEXTURE_2D, t.ColorTex, 0)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT,
		gl.TEXTURE_2D, t.DepthTex, 0)
	if s := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); s != gl.FRAMEBUFFER_COMPLETE {
		t.log.Warn().Uint32("status", s).Int32("width", t.Width).Int32("height", t.Height).
			Msg("HDR framebuffer incomplete")
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

func (t *HDRTarget) freeFBO() {
	if t.FBO != 0 {
		gl.DeleteFramebuffers(1, &t.FBO)
		t.FBO = 0
	}
	if t.ColorTex != 0 {
		gl.DeleteTextures(1, &t.ColorTex)
		t.ColorTex = 0
	}
	if t.DepthTex != 0 {
		gl.DeleteTextures(1, &t.DepthTex)
		t.DepthTex = 0
	}
}
