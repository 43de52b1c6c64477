package scene

// Interleaved position(3) normal(3) uv(2) arrays for the hand-built room
// geometry. All are unit sized and centred on the origin; the room layout
// scales them into place.

// CubeVertices is a closed unit cube with outward normals (table legs,
// cabinet).
var CubeVertices = []float32{
	-0.5, -0.5, -0.5, 0, 0, -1, 0, 0,
	0.5, 0.5, -0.5, 0, 0, -1, 1, 1,
	0.5, -0.5, -0.5, 0, 0, -1, 1, 0,
	-0.5, 0.5, -0.5, 0, 0, -1, 0, 1,
	0.5, 0.5, -0.5, 0, 0, -1, 1, 1,
	-0.5, -0.5, -0.5, 0, 0, -1, 0, 0,

	-0.5, -0.5, 0.5, 0, 0, 1, 0, 0,
	0.5, -0.5, 0.5, 0, 0, 1, 1, 0,
	0.5, 0.5, 0.5, 0, 0, 1, 1, 1,
	-0.5, -0.5, 0.5, 0, 0, 1, 0, 0,
	0.5, 0.5, 0.5, 0, 0, 1, 1, 1,
	-0.5, 0.5, 0.5, 0, 0, 1, 0, 1,

	-0.5, 0.5, 0.5, -1, 0, 0, 1, 0,
	-0.5, 0.5, -0.5, -1, 0, 0, 1, 1,
	-0.5, -0.5, -0.5, -1, 0, 0, 0, 1,
	-0.5, 0.5, 0.5, -1, 0, 0, 1, 0,
	-0.5, -0.5, -0.5, -1, 0, 0, 0, 1,
	-0.5, -0.5, 0.5, -1, 0, 0, 0, 0,

	0.5, 0.5, 0.5, 1, 0, 0, 1, 0,
	0.5, -0.5, -0.5, 1, 0, 0, 0, 1,
	0.5, 0.5, -0.5, 1, 0, 0, 1, 1,
	0.5, -0.5, 0.5, 1, 0, 0, 0, 0,
	0.5, -0.5, -0.5, 1, 0, 0, 0, 1,
	0.5, 0.5, 0.5, 1, 0, 0, 1, 0,

	-0.5, -0.5, -0.5, 0, -1, 0, 0, 1,
	0.5, -0.5, -0.5, 0, -1, 0, 1, 1,
	0.5, -0.5, 0.5, 0, -1, 0, 1, 0,
	-0.5, -0.5, -0.5, 0, -1, 0, 0, 1,
	0.5, -0.5, 0.5, 0, -1, 0, 1, 0,
	-0.5, -0.5, 0.5, 0, -1, 0, 0, 0,

	-0.5, 0.5, -0.5, 0, 1, 0, 0, 1,
	0.5, 0.5, 0.5, 0, 1, 0, 1, 0,
	0.5, 0.5, -0.5, 0, 1, 0, 1, 1,
	-0.5, 0.5, 0.5, 0, 1, 0, 0, 0,
	0.5, 0.5, 0.5, 0, 1, 0, 1, 0,
	-0.5, 0.5, -0.5, 0, 1, 0, 0, 1,
}

// FloorVertices is the bottom face of the cube facing up, with the texture
// repeated six times across it.
var FloorVertices = []float32{
	-0.5, -0.5, -0.5, 0, 1, 0, 0, 6,
	0.5, -0.5, 0.5, 0, 1, 0, 6, 0,
	0.5, -0.5, -0.5, 0, 1, 0, 6, 6,
	-0.5, -0.5, 0.5, 0, 1, 0, 0, 0,
	0.5, -0.5, 0.5, 0, 1, 0, 6, 0,
	-0.5, -0.5, -0.5, 0, 1, 0, 0, 6,
}

// WallVertices are the four side faces of the cube with inward normals and
// winding, seen from inside the room.
var WallVertices = []float32{
	-0.5, -0.5, -0.5, 0, 0, 1, 0, 0,
	0.5, -0.5, -0.5, 0, 0, 1, 1, 0,
	0.5, 0.5, -0.5, 0, 0, 1, 1, 1,
	0.5, 0.5, -0.5, 0, 0, 1, 1, 1,
	-0.5, 0.5, -0.5, 0, 0, 1, 0, 1,
	-0.5, -0.5, -0.5, 0, 0, 1, 0, 0,

	-0.5, -0.5, 0.5, 0, 0, -1, 0, 0,
	0.5, 0.5, 0.5, 0, 0, -1, 1, 1,
	0.5, -0.5, 0.5, 0, 0, -1, 1, 0,
	-0.5, 0.5, 0.5, 0, 0, -1, 0, 1,
	0.5, 0.5, 0.5, 0, 0, -1, 1, 1,
	-0.5, -0.5, 0.5, 0, 0, -1, 0, 0,

	-0.5, 0.5, 0.5, 1, 0, 0, 1, 0,
	-0.5, -0.5, -0.5, 1, 0, 0, 0, 1,
	-0.5, 0.5, -0.5, 1, 0, 0, 1, 1,
	-0.5, -0.5, 0.5, 1, 0, 0, 0, 0,
	-0.5, -0.5, -0.5, 1, 0, 0, 0, 1,
	-0.5, 0.5, 0.5, 1, 0, 0, 1, 0,

	0.5, 0.5, 0.5, -1, 0, 0, 1, 0,
	0.5, 0.5, -0.5, -1, 0, 0, 1, 1,
	0.5, -0.5, -0.5, -1, 0, 0, 0, 1,
	0.5, -0.5, -0.5, -1, 0, 0, 0, 1,
	0.5, -0.5, 0.5, -1, 0, 0, 0, 0,
	0.5, 0.5, 0.5, -1, 0, 0, 1, 0,
}

// GlassVertices is a single up-facing quad for the table top.
var GlassVertices = []float32{
	-0.5, -0.5, -0.5, 0, 1, 0, 0, 1,
	0.5, -0.5, 0.5, 0, 1, 0, 1, 0,
	0.5, -0.5, -0.5, 0, 1, 0, 1, 1,
	-0.5, -0.5, 0.5, 0, 1, 0, 0, 0,
	0.5, -0.5, 0.5, 0, 1, 0, 1, 0,
	-0.5, -0.5, -0.5, 0, 1, 0, 0, 1,
}

// Geometry names one of the literal meshes.
type Geometry int

const (
	GeometryNone Geometry = iota
	GeometryCube
	GeometryFloor
	GeometryWalls
	GeometryGlass
)

func (g Geometry) String() string {
	switch g {
	case GeometryCube:
		return "cube"
	case GeometryFloor:
		return "floor"
	case GeometryWalls:
		return "walls"
	case GeometryGlass:
		return "glass"
	}
	return "none"
}

// LiteralMeshes builds one mesh per literal geometry.
func LiteralMeshes() map[Geometry]*Mesh {
	return map[Geometry]*Mesh{
		GeometryCube:  MeshFromFloats("cube", CubeVertices),
		GeometryFloor: MeshFromFloats("floor", FloorVertices),
		GeometryWalls: MeshFromFloats("walls", WallVertices),
		GeometryGlass: MeshFromFloats("glass", GlassVertices),
	}
}
