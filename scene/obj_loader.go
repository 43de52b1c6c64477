package scene

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// objFace is an already-triangulated face (three vertex references).
type objFace struct {
	vIdx, vtIdx, vnIdx [3]int // 0-based position / UV / normal indices (-1 = absent)
}

type objGroup struct {
	name    string
	matName string
	faces   []objFace
}

// LoadOBJ parses a Wavefront .obj file and returns one Mesh per object/group.
// Companion .mtl files referenced via "mtllib" supply diffuse (map_Kd) and
// specular (map_Ks) maps.
func (l *Loader) LoadOBJ(path string) ([]*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj %q: %w", path, err)
	}
	defer f.Close()

	meshes, err := l.ParseOBJ(f, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("obj %q: %w", path, err)
	}
	return meshes, nil
}

// ParseOBJ reads OBJ text from r. dir resolves mtllib and texture paths.
func (l *Loader) ParseOBJ(r io.Reader, dir string) ([]*Mesh, error) {
	var positions []mgl32.Vec3
	var normals []mgl32.Vec3
	var uvs []mgl32.Vec2

	materials := map[string]*Material{}

	var groups []objGroup
	cur := &objGroup{name: "default"}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) >= 4 {
				positions = append(positions, parseVec3(fields[1:4]))
			}

		case "vn":
			if len(fields) >= 4 {
				normals = append(normals, parseVec3(fields[1:4]))
			}

		case "vt":
			if len(fields) >= 3 {
				uvs = append(uvs, mgl32.Vec2{parseFloat(fields[1]), parseFloat(fields[2])})
			}

		case "o", "g":
			if len(cur.faces) > 0 {
				groups = append(groups, *cur)
			}
			name := "default"
			if len(fields) > 1 {
				name = fields[1]
			}
			cur = &objGroup{name: name, matName: cur.matName}

		case "usemtl":
			if len(fields) > 1 {
				if len(cur.faces) > 0 && cur.matName != fields[1] {
					groups = append(groups, *cur)
					cur = &objGroup{name: cur.name}
				}
				cur.matName = fields[1]
			}

		case "mtllib":
			if len(fields) > 1 {
				// file names may contain spaces
				name := strings.Join(fields[1:], " ")
				loaded, err := l.loadMTL(filepath.Join(dir, name), dir)
				if err != nil {
					l.log.Warn().Err(err).Str("mtllib", name).Msg("material library failed to load")
				}
				for k, v := range loaded {
					materials[k] = v
				}
			}

		case "f":
			if len(fields) < 4 {
				continue
			}
			fverts := make([]objIndex, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				fverts = append(fverts, parseFaceVertex(tok, len(positions), len(uvs), len(normals)))
			}
			// Fan triangulation: 0-1-2, 0-2-3, 0-3-4, ...
			for i := 1; i+1 < len(fverts); i++ {
				f0, f1, f2 := fverts[0], fverts[i], fverts[i+1]
				cur.faces = append(cur.faces, objFace{
					vIdx:  [3]int{f0.v, f1.v, f2.v},
					vtIdx: [3]int{f0.vt, f1.vt, f2.vt},
					vnIdx: [3]int{f0.vn, f1.vn, f2.vn},
				})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan obj: %w", err)
	}

	if len(cur.faces) > 0 {
		groups = append(groups, *cur)
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("no geometry found")
	}

	meshes := make([]*Mesh, 0, len(groups))
	for _, g := range groups {
		mesh := buildMeshFromOBJ(g.name, g.faces, positions, normals, uvs)
		mesh.Material = materials[g.matName]
		meshes = append(meshes, mesh)
	}
	return meshes, nil
}

type objIndex struct{ v, vt, vn int }

// parseFaceVertex parses one face vertex token: "v", "v/vt", "v//vn", "v/vt/vn".
// OBJ indices are 1-based, negative ones count back from the current end of
// the respective list. Returns 0-based indices, -1 when absent.
func parseFaceVertex(tok string, nv, nvt, nvn int) objIndex {
	resolve := func(s string, n int) int {
		if s == "" {
			return -1
		}
		i, err := strconv.Atoi(s)
		if err != nil || i == 0 {
			return -1
		}
		if i < 0 {
			return n + i
		}
		return i - 1
	}
	parts := strings.Split(tok, "/")
	res := objIndex{v: -1, vt: -1, vn: -1}
	res.v = resolve(parts[0], nv)
	if len(parts) > 1 {
		res.vt = resolve(parts[1], nvt)
	}
	if len(parts) > 2 {
		res.vn = resolve(parts[2], nvn)
	}
	return res
}

// buildMeshFromOBJ converts parsed face data into a deduplicated Mesh.
func buildMeshFromOBJ(
	name string,
	faces []objFace,
	positions []mgl32.Vec3,
	normals []mgl32.Vec3,
	uvs []mgl32.Vec2,
) *Mesh {
	vertMap := map[objIndex]uint32{}
	var vertices []Vertex
	var indices []uint32

	at3 := func(list []mgl32.Vec3, i int, def mgl32.Vec3) mgl32.Vec3 {
		if i >= 0 && i < len(list) {
			return list[i]
		}
		return def
	}

	missingNormals := false
	for _, face := range faces {
		for c := 0; c < 3; c++ {
			k := objIndex{face.vIdx[c], face.vtIdx[c], face.vnIdx[c]}
			if idx, ok := vertMap[k]; ok {
				indices = append(indices, idx)
				continue
			}
			v := Vertex{
				Position: at3(positions, k.v, mgl32.Vec3{}),
				Normal:   at3(normals, k.vn, mgl32.Vec3{}),
			}
			if k.vt >= 0 && k.vt < len(uvs) {
				v.UV = uvs[k.vt]
			}
			if k.vn < 0 || k.vn >= len(normals) {
				missingNormals = true
			}
			idx := uint32(len(vertices))
			vertices = append(vertices, v)
			vertMap[k] = idx
			indices = append(indices, idx)
		}
	}

	if missingNormals {
		generateNormals(vertices, indices)
	}
	return NewMesh(name, vertices, indices)
}

// generateNormals writes area-weighted smooth normals into vertices that
// lack one.
func generateNormals(vertices []Vertex, indices []uint32) {
	accum := make([]mgl32.Vec3, len(vertices))
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		v0 := vertices[i0].Position
		n := vertices[i1].Position.Sub(v0).Cross(vertices[i2].Position.Sub(v0))
		accum[i0] = accum[i0].Add(n)
		accum[i1] = accum[i1].Add(n)
		accum[i2] = accum[i2].Add(n)
	}
	for i := range vertices {
		if vertices[i].Normal.Len() == 0 && accum[i].Len() > 0 {
			vertices[i].Normal = accum[i].Normalize()
		}
	}
}

func parseFloat(s string) float32 {
	f, _ := strconv.ParseFloat(s, 32)
	return float32(f)
}

func parseVec3(f []string) mgl32.Vec3 {
	return mgl32.Vec3{parseFloat(f[0]), parseFloat(f[1]), parseFloat(f[2])}
}

// ── MTL loader ───────────────────────────────────────────────────────────────

func (l *Loader) loadMTL(path, dir string) (map[string]*Material, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	mats := map[string]*Material{}
	var cur *Material

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "newmtl":
			if len(fields) > 1 {
				cur = &Material{Name: fields[1]}
				mats[fields[1]] = cur
			}
		case "map_Kd":
			if cur != nil && len(fields) >= 2 {
				cur.DiffuseMap = l.Texture(filepath.Join(dir, mapPath(fields[1:])))
			}
		case "map_Ks":
			if cur != nil && len(fields) >= 2 {
				cur.SpecularMap = l.Texture(filepath.Join(dir, mapPath(fields[1:])))
			}
		}
	}

	return mats, scanner.Err()
}

// mapPath drops "-opt value" pairs ahead of a texture file name and converts
// Windows separators.
func mapPath(fields []string) string {
	i := 0
	for i < len(fields)-1 && strings.HasPrefix(fields[i], "-") {
		i += 2
	}
	if i >= len(fields) {
		i = len(fields) - 1
	}
	return strings.ReplaceAll(strings.Join(fields[i:], " "), `\`, "/")
}
