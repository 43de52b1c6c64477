package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Model is a loaded asset: a flat list of meshes with their materials.
type Model struct {
	Path   string
	Meshes []*Mesh
}

// VertexCount sums the vertices of every mesh.
func (m *Model) VertexCount() int {
	n := 0
	for _, mesh := range m.Meshes {
		n += len(mesh.Vertices)
	}
	return n
}

// Loader loads models and textures from disk, sharing textures between
// everything it loads. Texture failures are logged and yield nil, never an
// error, so a missing map only blanks that surface.
type Loader struct {
	log      zerolog.Logger
	textures map[string]*Texture
	order    []string
}

func NewLoader(log zerolog.Logger) *Loader {
	return &Loader{
		log:      log,
		textures: make(map[string]*Texture),
	}
}

// Texture loads path once, flipped for OpenGL. Nil on failure.
func (l *Loader) Texture(path string) *Texture {
	return l.texture(path, true)
}

func (l *Loader) texture(path string, flipY bool) *Texture {
	key := fmt.Sprintf("%s|%t", filepath.Clean(path), flipY)
	if tex, ok := l.textures[key]; ok {
		return tex
	}
	tex, err := loadTexture(path, flipY)
	if err != nil {
		l.log.Warn().Err(err).Str("path", path).Msg("texture failed to load")
	}
	l.textures[key] = tex
	l.order = append(l.order, key)
	return tex
}

// Textures returns every texture loaded so far, in load order, skipping
// failures.
func (l *Loader) Textures() []*Texture {
	out := make([]*Texture, 0, len(l.order))
	for _, k := range l.order {
		if tex := l.textures[k]; tex != nil {
			out = append(out, tex)
		}
	}
	return out
}

// Model loads a model by extension: Wavefront .obj or glTF .gltf/.glb.
func (l *Loader) Model(path string) (*Model, error) {
	var (
		meshes []*Mesh
		err    error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		meshes, err = l.LoadOBJ(path)
	case ".gltf", ".glb":
		meshes, err = l.LoadGLTF(path)
	default:
		return nil, fmt.Errorf("unsupported model format %q", ext)
	}
	if err != nil {
		return nil, err
	}
	return &Model{Path: path, Meshes: meshes}, nil
}

