package scene

import (
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
)

// Pass is a draw pass. Items are drawn pass by pass in increasing order,
// then the skybox.
type Pass int

const (
	PassOpaque Pass = iota
	PassModels
	PassBlended
)

func (p Pass) String() string {
	switch p {
	case PassOpaque:
		return "opaque"
	case PassModels:
		return "models"
	case PassBlended:
		return "blended"
	}
	return "unknown"
}

// Asset paths, relative to the assets root.
const (
	TexFloorDiffuse  = "textures/wood_floor_diffuse.jpg"
	TexFloorSpecular = "textures/wood_floor_specular.jpg"
	TexWallDiffuse   = "textures/wall_diffuse.jpg"
	TexWallSpecular  = "textures/wall_specular.jpg"
	TexWoodDiffuse   = "textures/wood_diffuse2.jpg"
	TexWoodSpecular  = "textures/wood_specular2.jpg"
	TexGlassDiffuse  = "textures/glass.png"
	TexGlassSpecular = "textures/glass_specular.jpg"
	TexLamp          = "objects/lamp/lamp.jpg"
	TexSofaDiffuse   = "objects/sofa/sofa_diffuse.jpg"
	TexSofaSpecular  = "objects/sofa/sofa_specular.jpg"
	ModelBackpack    = "objects/backpack/backpack.obj"
	ModelCat         = "objects/cat/cat.obj"
	ModelLamp        = "objects/lamp/light.obj"
	ModelTV          = "objects/tv/tv.glb"
	ModelSofa        = "objects/sofa/3LU_KOLTUK.obj"
	SkyboxDir        = "textures/skybox"
)

// SkyboxFaces lists the cubemap faces in GL face order.
func SkyboxFaces() [6]string {
	var out [6]string
	for i, name := range CubeFaces {
		out[i] = SkyboxDir + "/" + name + ".jpg"
	}
	return out
}

// Item is one drawable entry of the room. Exactly one of Geometry and Model
// is set. Diffuse and Specular override the model's own maps when non-empty.
type Item struct {
	Name        string
	Pass        Pass
	Geometry    Geometry
	Model       string
	Transform   Transform
	Diffuse     string
	Specular    string
	DisableCull bool
}

// Room is the fixed layout in draw order.
type Room struct {
	Items []Item
}

var tableLegs = [4]mgl32.Vec3{
	{3, 1, -2},
	{3, 1, 5},
	{-6, 1, 5},
	{-6, 1, -2},
}

func scaled(t mgl32.Vec3, s mgl32.Vec3) Transform {
	return Transform{Translate: t, Scale: s}
}

func uniform(s float32) mgl32.Vec3 { return mgl32.Vec3{s, s, s} }

// NewRoomLayout builds the room with the backpack at the given position and
// uniform scale. Everything else is fixed.
func NewRoomLayout(backpackPos mgl32.Vec3, backpackScale float32) Room {
	items := []Item{
		{Name: "floor", Pass: PassOpaque, Geometry: GeometryFloor,
			Transform: scaled(mgl32.Vec3{}, mgl32.Vec3{30, 0, 30}),
			Diffuse:   TexFloorDiffuse, Specular: TexFloorSpecular},
		{Name: "walls", Pass: PassOpaque, Geometry: GeometryWalls,
			Transform: scaled(mgl32.Vec3{0, 5, 0}, mgl32.Vec3{30, 10, 30}),
			Diffuse:   TexWallDiffuse, Specular: TexWallSpecular},
	}
	for i, p := range tableLegs {
		items = append(items, Item{
			Name: legName(i), Pass: PassOpaque, Geometry: GeometryCube,
			Transform: scaled(p, mgl32.Vec3{0.5, 2, 0.5}),
			Diffuse:   TexWoodDiffuse, Specular: TexWoodSpecular,
		})
	}
	items = append(items,
		Item{Name: "cabinet", Pass: PassOpaque, Geometry: GeometryCube,
			Transform: scaled(mgl32.Vec3{-3.1, 1.501, -11.5}, mgl32.Vec3{11, 3, 4}),
			Diffuse:   TexWoodDiffuse, Specular: TexWoodSpecular},

		Item{Name: "backpack", Pass: PassModels, Model: ModelBackpack,
			Transform: scaled(backpackPos, uniform(backpackScale))},
		Item{Name: "cat", Pass: PassModels, Model: ModelCat,
			Transform: Transform{
				Translate: mgl32.Vec3{2.5, 0, 7.5},
				Axis:      mgl32.Vec3{1, 0, 0}, AngleDeg: -90,
				Scale:     uniform(0.04),
			}},
		Item{Name: "lamp", Pass: PassModels, Model: ModelLamp,
			Transform: Transform{
				Translate: mgl32.Vec3{0, 8, 0},
				Axis:      mgl32.Vec3{1, 0, 0}, AngleDeg: -90,
				Scale:     uniform(0.03),
			},
			Diffuse: TexLamp},
		// glTF is Y-up, so the TV needs no upright rotation.
		Item{Name: "tv", Pass: PassModels, Model: ModelTV,
			Transform: scaled(mgl32.Vec3{-3, 3, -11}, uniform(1))},
		Item{Name: "sofa", Pass: PassModels, Model: ModelSofa,
			Transform: scaled(mgl32.Vec3{-5, 0.6, 9}, uniform(0.025)),
			Diffuse:   TexSofaDiffuse, Specular: TexSofaSpecular,
			DisableCull: true},

		Item{Name: "glass", Pass: PassBlended, Geometry: GeometryGlass,
			Transform: scaled(mgl32.Vec3{-1.55, 2.01, 1.45}, mgl32.Vec3{9.6, 0, 7.6}),
			Diffuse:   TexGlassDiffuse, Specular: TexGlassSpecular},
	)
	return Room{Items: items}
}

func legName(i int) string {
	return "leg" + strconv.Itoa(i)
}

// ItemsIn returns the items of one pass, in layout order.
func (r Room) ItemsIn(p Pass) []Item {
	var out []Item
	for _, it := range r.Items {
		if it.Pass == p {
			out = append(out, it)
		}
	}
	return out
}

// Models returns the distinct model paths in layout order.
func (r Room) Models() []string {
	return r.distinct(func(it Item) []string { return []string{it.Model} })
}

// Textures returns the distinct override texture paths in layout order.
func (r Room) Textures() []string {
	return r.distinct(func(it Item) []string { return []string{it.Diffuse, it.Specular} })
}

func (r Room) distinct(pick func(Item) []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, it := range r.Items {
		for _, p := range pick(it) {
			if p == "" || seen[p] {
				continue
			}
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
