package scene

// Mesh holds CPU-side vertex/index data.
// GPU upload is managed by the renderer backend.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32

	// Material carries the mesh's own texture maps. Nil means the draw item
	// supplies its textures.
	Material *Material

	// GPUData is set by the renderer backend (e.g. *opengl.GPUMesh).
	GPUData interface{}
}

// NewMesh builds a mesh; indices may be nil for non-indexed triangle lists.
func NewMesh(name string, vertices []Vertex, indices []uint32) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
	}
}

// MeshFromFloats builds a non-indexed mesh from an interleaved array.
func MeshFromFloats(name string, data []float32) *Mesh {
	return NewMesh(name, VerticesFromFloats(data), nil)
}

// DrawCount is the number of indices, or vertices for non-indexed meshes.
func (m *Mesh) DrawCount() int {
	if len(m.Indices) > 0 {
		return len(m.Indices)
	}
	return len(m.Vertices)
}

// Material is the diffuse/specular map pair the lighting shader samples on
// texture units 0 and 1.
type Material struct {
	Name        string
	DiffuseMap  *Texture
	SpecularMap *Texture
}
