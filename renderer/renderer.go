package renderer

import (
	"fmt"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"

	"room-renderer/internal/opengl"
	"room-renderer/renderer/frame"
	"room-renderer/scene"
)

// Shader file names under the shader directory.
const (
	LightingVS = "model_lighting.vs"
	LightingFS = "model_lighting.fs"
	HDRVS      = "hdr.vs"
	HDRFS      = "hdr.fs"
	SkyboxVS   = "skybox.vs"
	SkyboxFS   = "skybox.fs"
)

// Options configures NewRenderEngine.
type Options struct {
	// AssetPath resolves a path relative to the assets root for every model,
	// texture and shader.
	AssetPath func(rel string) string
	// Skybox loads the cubemap faces; on failure the gradient sky is used.
	Skybox bool
	Width  int
	Height int
}

// RenderEngine is the high-level renderer that drives the OpenGL backend
// through the room's fixed pass order.
type RenderEngine struct {
	log  zerolog.Logger
	opts Options

	gl *opengl.Renderer

	lighting *opengl.Program
	tonemap  *opengl.Program
	sky      *opengl.Program

	hdr    *opengl.HDRTarget
	skybox *opengl.Skybox

	loader  *scene.Loader
	literal map[scene.Geometry]*scene.Mesh
	models  map[string]*scene.Model

	width, height int
}

// NewRenderEngine compiles the programs, loads every asset of the room and
// allocates the HDR target. Shader failures are fatal; asset failures are
// logged and the affected item draws degraded or not at all.
func NewRenderEngine(log zerolog.Logger, loader *scene.Loader, opts Options) (*RenderEngine, error) {
	glRenderer, err := opengl.NewRenderer(log)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenGL renderer: %w", err)
	}
	glRenderer.SetViewport(opts.Width, opts.Height)

	re := &RenderEngine{
		log:     log,
		opts:    opts,
		gl:      glRenderer,
		loader:  loader,
		literal: scene.LiteralMeshes(),
		models:  make(map[string]*scene.Model),
		width:   opts.Width,
		height:  opts.Height,
	}

	if re.lighting, err = re.program(LightingVS, LightingFS); err != nil {
		re.Destroy()
		return nil, fmt.Errorf("lighting shader: %w", err)
	}
	if re.tonemap, err = re.program(HDRVS, HDRFS); err != nil {
		re.Destroy()
		return nil, fmt.Errorf("hdr shader: %w", err)
	}

	re.loadRoom()

	if err := re.initSkybox(); err != nil {
		re.Destroy()
		return nil, fmt.Errorf("skybox: %w", err)
	}

	re.hdr = opengl.NewHDRTarget(log, re.tonemap, opts.Width, opts.Height)

	log.Info().
		Int("models", len(re.models)).
		Int("textures", len(loader.Textures())).
		Bool("cubemap", re.skybox.HasCubemap()).
		Msg("render engine initialized")
	return re, nil
}

func (re *RenderEngine) asset(rel string) string {
	return re.opts.AssetPath(rel)
}

func (re *RenderEngine) program(vs, fs string) (*opengl.Program, error) {
	return opengl.NewProgramFromFiles(
		re.asset(filepath.Join("shaders", vs)),
		re.asset(filepath.Join("shaders", fs)),
	)
}

// loadRoom loads every model and override texture the room references.
func (re *RenderEngine) loadRoom() {
	room := scene.NewRoomLayout(mgl32.Vec3{}, 1)
	for _, rel := range room.Models() {
		m, err := re.loader.Model(re.asset(rel))
		if err != nil {
			re.log.Warn().Err(err).Str("path", rel).Msg("model failed to load")
			continue
		}
		re.models[rel] = m
		re.log.Debug().Str("path", rel).Int("meshes", len(m.Meshes)).Int("vertices", m.VertexCount()).Msg("model loaded")
	}
	for _, rel := range room.Textures() {
		re.gl.Texture(re.loader.Texture(re.asset(rel)))
	}
}

func (re *RenderEngine) initSkybox() error {
	var cubemap uint32
	if re.opts.Skybox {
		var paths [6]string
		for i, rel := range scene.SkyboxFaces() {
			paths[i] = re.asset(rel)
		}
		faces, err := scene.LoadCubeFaces(paths)
		if err == nil {
			cubemap, err = opengl.UploadCubemap(faces)
		}
		if err == nil {
			re.sky, err = re.program(SkyboxVS, SkyboxFS)
		}
		if err != nil {
			re.log.Warn().Err(err).Msg("skybox cubemap unavailable, using gradient")
			cubemap = 0
		}
	}
	sb, err := opengl.NewSkybox(cubemap, re.sky)
	if err != nil {
		return err
	}
	re.skybox = sb
	return nil
}

// ── Frame ─────────────────────────────────────────────────────────────────────

// Render draws f: lighting uniforms, the room pass by pass, the skybox, and
// the tonemap resolve when HDR is on. The UI and buffer swap are the
// caller's.
func (re *RenderEngine) Render(f frame.Frame) {
	if f.HDR {
		re.hdr.Bind()
	} else {
		re.gl.RestoreViewport()
	}
	re.gl.Clear(f.ClearColor)

	p := re.lighting
	p.Use()
	p.SetMat4("projection", f.Projection)
	p.SetMat4("view", f.View)
	p.SetInt("material.texture_diffuse1", 0)
	p.SetInt("material.texture_specular1", 1)
	vec3s, floats := f.Uniforms()
	for name, v := range vec3s {
		p.SetVec3(name, v)
	}
	for name, v := range floats {
		p.SetFloat(name, v)
	}

	for _, d := range frame.Plan(f.Room) {
		re.gl.SetCulling(d.Cull)
		re.gl.SetBlending(d.Blend)
		p.SetMat4("model", d.Item.Transform.Matrix())
		p.SetMat3("normalMatrix", d.Item.Transform.NormalMatrix())
		re.drawItem(d.Item)
	}
	re.gl.SetCulling(true)
	re.gl.SetBlending(false)

	re.skybox.Draw(f.View, f.Projection)

	if f.HDR {
		re.hdr.Resolve(f.Exposure)
	}
}

func (re *RenderEngine) drawItem(it scene.Item) {
	diffuse := re.override(it.Diffuse)
	specular := re.override(it.Specular)

	if it.Geometry != scene.GeometryNone {
		re.gl.BindMaps(diffuse, specular)
		re.gl.DrawMesh(re.literal[it.Geometry])
		return
	}

	m := re.models[it.Model]
	if m == nil {
		return
	}
	for _, mesh := range m.Meshes {
		d, s := diffuse, specular
		if mat := mesh.Material; mat != nil {
			if it.Diffuse == "" {
				d = re.gl.Texture(mat.DiffuseMap)
			}
			if it.Specular == "" {
				s = re.gl.Texture(mat.SpecularMap)
			}
		}
		re.gl.BindMaps(d, s)
		re.gl.DrawMesh(mesh)
	}
}

// override returns the GL handle of an override map, 0 when unset or failed.
func (re *RenderEngine) override(rel string) uint32 {
	if rel == "" {
		return 0
	}
	return re.gl.Texture(re.loader.Texture(re.asset(rel)))
}

// ── Lifecycle ─────────────────────────────────────────────────────────────────

// Resize follows the framebuffer size.
func (re *RenderEngine) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	re.width, re.height = width, height
	re.gl.SetViewport(width, height)
	re.hdr.Resize(width, height)
}

// Size returns the current framebuffer size.
func (re *RenderEngine) Size() (int, int) {
	return re.width, re.height
}

// ReloadShader rebuilds every program that reads path. A failed build is
// logged and the previous program stays in use.
func (re *RenderEngine) ReloadShader(path string) {
	for _, p := range []*opengl.Program{re.lighting, re.tonemap, re.sky} {
		if p == nil || !p.Uses(path) {
			continue
		}
		if err := p.Reload(); err != nil {
			re.log.Error().Err(err).Str("path", path).Msg("shader reload failed, keeping previous program")
			continue
		}
		re.log.Info().Str("path", path).Msg("shader reloaded")
	}
}

// ShaderDir is the directory the programs are read from.
func (re *RenderEngine) ShaderDir() string {
	return re.asset("shaders")
}

// Destroy releases GPU resources in reverse creation order.
func (re *RenderEngine) Destroy() {
	if re.hdr != nil {
		re.hdr.Destroy()
	}
	if re.skybox != nil {
		re.skybox.Destroy()
	}
	for _, p := range []*opengl.Program{re.sky, re.tonemap, re.lighting} {
		if p != nil {
			p.Destroy()
		}
	}
	re.gl.Destroy()
}
