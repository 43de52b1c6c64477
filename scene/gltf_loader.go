package scene

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadGLTF opens a .glb or .gltf file and flattens its default scene into a
// list of meshes with node transforms baked into the vertices. Base colour
// textures become diffuse maps; glTF has no specular map, so those stay nil.
func (l *Loader) LoadGLTF(path string) ([]*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	dir := filepath.Dir(path)

	// ── 1. Textures ───────────────────────────────────────────────────────────
	texCache := make([]*Texture, len(doc.Textures))
	for i, gt := range doc.Textures {
		if gt.Source == nil {
			continue
		}
		if *gt.Source < 0 || *gt.Source >= len(doc.Images) {
			l.log.Warn().Int("texture", i).Int("image", *gt.Source).Msg("gltf texture source out of range")
			continue
		}
		img := doc.Images[*gt.Source]

		switch {
		case img.BufferView != nil:
			raw, err := modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
			if err != nil {
				l.log.Warn().Err(err).Int("image", *gt.Source).Msg("gltf image buffer view")
				continue
			}
			name := img.Name
			if name == "" {
				name = fmt.Sprintf("%s#img%d", path, *gt.Source)
			}
			// glTF UVs have their origin at the top-left, so rows stay as stored.
			tex, err := DecodeTexture(name, bytes.NewReader(raw), false)
			if err != nil {
				l.log.Warn().Err(err).Int("image", *gt.Source).Msg("gltf image decode")
				continue
			}
			texCache[i] = tex
			l.remember(name, tex)
		case img.URI != "" && !img.IsEmbeddedResource():
			texCache[i] = l.texture(filepath.Join(dir, img.URI), false)
		}
	}

	// ── 2. Materials ─────────────────────────────────────────────────────────
	matCache := make([]*Material, len(doc.Materials))
	for i, gm := range doc.Materials {
		mat := &Material{Name: gm.Name}
		if pbr := gm.PBRMetallicRoughness; pbr != nil && pbr.BaseColorTexture != nil {
			if idx := pbr.BaseColorTexture.Index; idx < len(texCache) {
				mat.DiffuseMap = texCache[idx]
			}
		}
		matCache[i] = mat
	}

	// ── 3. Mesh primitives ────────────────────────────────────────────────────
	meshPrims := make([][]*Mesh, len(doc.Meshes))
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			m, err := l.loadGLTFPrimitive(doc, gm.Name, pi, prim)
			if err != nil {
				l.log.Warn().Err(err).Int("mesh", mi).Int("primitive", pi).Msg("gltf primitive skipped")
				continue
			}
			if prim.Material != nil && *prim.Material < len(matCache) {
				m.Material = matCache[*prim.Material]
			}
			meshPrims[mi] = append(meshPrims[mi], m)
		}
	}

	// ── 4. Node hierarchy, flattened ─────────────────────────────────────────
	var out []*Mesh
	var visit func(idx int, parent mgl32.Mat4, depth int)
	visit = func(idx int, parent mgl32.Mat4, depth int) {
		if idx < 0 || idx >= len(doc.Nodes) || depth > len(doc.Nodes) {
			return
		}
		n := doc.Nodes[idx]
		world := parent.Mul4(nodeMatrix(n))
		if n.Mesh != nil && *n.Mesh < len(meshPrims) {
			for _, m := range meshPrims[*n.Mesh] {
				out = append(out, bakeTransform(m, world))
			}
		}
		for _, c := range n.Children {
			visit(c, world, depth+1)
		}
	}
	for _, root := range sceneRoots(doc) {
		visit(root, mgl32.Ident4(), 0)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("gltf %q: no geometry in scene", path)
	}
	return out, nil
}

// remember registers an embedded texture so Textures() reports it for upload.
func (l *Loader) remember(name string, tex *Texture) {
	key := name + "|embedded"
	if _, ok := l.textures[key]; ok {
		return
	}
	l.textures[key] = tex
	l.order = append(l.order, key)
}

// sceneRoots returns the default scene's root nodes, or every parentless
// node when the document names no scene.
func sceneRoots(doc *gltf.Document) []int {
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	hasParent := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !hasParent[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

func nodeMatrix(n *gltf.Node) mgl32.Mat4 {
	if n.Matrix != gltf.DefaultMatrix && n.Matrix != [16]float64{} {
		var m mgl32.Mat4
		for i, v := range n.Matrix {
			m[i] = float32(v)
		}
		return m
	}
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault() // x, y, z, w
	s := n.ScaleOrDefault()
	q := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	return mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(q.Mat4()).
		Mul4(mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2])))
}

// bakeTransform returns a copy of m with world applied to positions and the
// inverse-transpose applied to normals.
func bakeTransform(m *Mesh, world mgl32.Mat4) *Mesh {
	if world == mgl32.Ident4() {
		return m
	}
	normalMat := world.Mat3().Inv().Transpose()
	verts := make([]Vertex, len(m.Vertices))
	for i, v := range m.Vertices {
		v.Position = mgl32.TransformCoordinate(v.Position, world)
		if n := normalMat.Mul3x1(v.Normal); n.Len() > 0 {
			v.Normal = n.Normalize()
		}
		verts[i] = v
	}
	out := NewMesh(m.Name, verts, m.Indices)
	out.Material = m.Material
	return out
}

// accessor returns doc.Accessors[idx] or an error when idx is out of range.
func accessor(doc *gltf.Document, idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range (%d accessors)", idx, len(doc.Accessors))
	}
	return doc.Accessors[idx], nil
}

// loadGLTFPrimitive converts one glTF mesh primitive into a Mesh. Positions
// are required; unreadable normals are regenerated and unreadable texture
// coordinates are dropped, both with a warning.
func (l *Loader) loadGLTFPrimitive(doc *gltf.Document, meshName string, primIdx int, prim *gltf.Primitive) (*Mesh, error) {
	name := fmt.Sprintf("%s_p%d", meshName, primIdx)
	if meshName == "" {
		name = fmt.Sprintf("prim_%d", primIdx)
	}
	if prim.Mode != gltf.PrimitiveTriangles {
		return nil, fmt.Errorf("primitive mode %v is not triangles", prim.Mode)
	}

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	posAcc, err := accessor(doc, posIdx)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}
	positions, err := modeler.ReadPosition(doc, posAcc, nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	var uvs [][2]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		acc, err := accessor(doc, idx)
		if err == nil {
			normals, err = modeler.ReadNormal(doc, acc, nil)
		}
		if err != nil {
			l.log.Warn().Err(err).Str("primitive", name).Msg("gltf normals unreadable, regenerating")
			normals = nil
		}
	}
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		acc, err := accessor(doc, idx)
		if err == nil {
			uvs, err = modeler.ReadTextureCoord(doc, acc, nil)
		}
		if err != nil {
			l.log.Warn().Err(err).Str("primitive", name).Msg("gltf texture coordinates unreadable")
			uvs = nil
		}
	}

	verts := make([]Vertex, len(positions))
	for i, p := range positions {
		v := Vertex{Position: mgl32.Vec3(p)}
		if i < len(normals) {
			v.Normal = mgl32.Vec3(normals[i])
		}
		if i < len(uvs) {
			v.UV = mgl32.Vec2(uvs[i])
		}
		verts[i] = v
	}

	var indices []uint32
	if prim.Indices != nil {
		idxAcc, err := accessor(doc, *prim.Indices)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
		indices, err = modeler.ReadIndices(doc, idxAcc, nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	}
	if len(normals) == 0 {
		if indices == nil {
			indices = make([]uint32, len(verts))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}
		generateNormals(verts, indices)
	}

	return NewMesh(name, verts, indices), nil
}
