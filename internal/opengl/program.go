package opengl

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Program is a shader program built from a vertex and a fragment source file.
// Uniform locations are looked up once per name and cached until Reload.
type Program struct {
	ID           uint32
	VertexPath   string
	FragmentPath string

	locs map[string]int32
}

// NewProgramFromFiles reads, compiles and links the two shader files.
func NewProgramFromFiles(vertexPath, fragmentPath string) (*Program, error) {
	id, err := buildProgram(vertexPath, fragmentPath)
	if err != nil {
		return nil, err
	}
	return &Program{
		ID:           id,
		VertexPath:   vertexPath,
		FragmentPath: fragmentPath,
		locs:         make(map[string]int32),
	}, nil
}

// Reload rebuilds the program from its files. On failure the current program
// stays in use and the error is returned.
func (p *Program) Reload() error {
	id, err := buildProgram(p.VertexPath, p.FragmentPath)
	if err != nil {
		return err
	}
	gl.DeleteProgram(p.ID)
	p.ID = id
	p.locs = make(map[string]int32)
	return nil
}

// Uses reports whether path is one of the program's source files.
func (p *Program) Uses(path string) bool {
	c := filepath.Clean(path)
	return c == filepath.Clean(p.VertexPath) || c == filepath.Clean(p.FragmentPath)
}

func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

func (p *Program) loc(name string) int32 {
	if l, ok := p.locs[name]; ok {
		return l
	}
	l := gl.GetUniformLocation(p.ID, gl.Str(name+"\x00"))
	p.locs[name] = l
	return l
}

func (p *Program) SetInt(name string, v int32) {
	gl.Uniform1i(p.loc(name), v)
}

func (p *Program) SetFloat(name string, v float32) {
	gl.Uniform1f(p.loc(name), v)
}

func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	gl.Uniform3f(p.loc(name), v.X(), v.Y(), v.Z())
}

func (p *Program) SetMat3(name string, m mgl32.Mat3) {
	gl.UniformMatrix3fv(p.loc(name), 1, false, &m[0])
}

func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(p.loc(name), 1, false, &m[0])
}

func (p *Program) Destroy() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}

// ── Shader helpers ────────────────────────────────────────────────────────────

func buildProgram(vertexPath, fragmentPath string) (uint32, error) {
	vs, err := os.ReadFile(vertexPath)
	if err != nil {
		return 0, fmt.Errorf("read vertex shader: %w", err)
	}
	fs, err := os.ReadFile(fragmentPath)
	if err != nil {
		return 0, fmt.Errorf("read fragment shader: %w", err)
	}
	id, err := newProgram(string(vs)+"\x00", string(fs)+"\x00")
	if err != nil {
		return 0, fmt.Errorf("%s + %s: %w", filepath.Base(vertexPath), filepath.Base(fragmentPath), err)
	}
	return id, nil
}

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vert)
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)
	gl.DeleteShader(vert)
	gl.DeleteShader(frag)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("link failed: %v", strings.TrimRight(log, "\x00"))
	}
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %v", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}
