package frame

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"room-renderer/app"
	"room-renderer/scene"
)

func TestBuild_DisabledLightUploadsBlack(t *testing.T) {
	ctx := app.NewContext()
	ctx.SpotLightEnabled = false

	f := Build(ctx, 1600, 1200)
	vec3s, floats := f.Uniforms()

	assert.Equal(t, mgl32.Vec3{}, vec3s["spotLight.ambient"])
	assert.Equal(t, mgl32.Vec3{}, vec3s["spotLight.diffuse"])
	assert.Equal(t, mgl32.Vec3{}, vec3s["spotLight.specular"])
	// geometry and attenuation still uploaded
	assert.Equal(t, ctx.Lights.Spot.Position, vec3s["spotLight.position"])
	assert.Equal(t, ctx.Lights.Spot.Quadratic, floats["spotLight.quadratic"])
	assert.Equal(t, ctx.Lights.Spot.OuterCutOff, floats["spotLight.outerCutOff"])

	assert.Equal(t, ctx.Lights.Point.Diffuse, vec3s["pointLight.diffuse"])
	assert.Equal(t, Shininess, floats["material.shininess"])
}

func TestBuild_ExposureAndFlags(t *testing.T) {
	ctx := app.NewContext()
	ctx.PointLightEnabled = true
	ctx.SpotLightEnabled = true
	ctx.HDR = true
	ctx.ClearColor = mgl32.Vec3{0.2, 0.3, 0.4}

	f := Build(ctx, 800, 600)
	assert.Equal(t, float32(0.2), f.Exposure)
	assert.True(t, f.HDR)
	assert.Equal(t, ctx.ClearColor, f.ClearColor)
	assert.Equal(t, ctx.Camera.Position, f.ViewPosition)
	assert.Equal(t, ctx.Camera.ViewMatrix(), f.View)
	assert.Equal(t, ctx.Camera.Projection(800.0/600.0), f.Projection)
}

func TestBuild_ZeroSizeFramebuffer(t *testing.T) {
	ctx := app.NewContext()
	f := Build(ctx, 0, 0)
	assert.Equal(t, ctx.Camera.Projection(1), f.Projection)
}

func TestBuild_RoomFollowsBackpack(t *testing.T) {
	ctx := app.NewContext()
	ctx.BackpackPosition = mgl32.Vec3{1, 2, 3}
	ctx.BackpackScale = 2

	f := Build(ctx, 1, 1)
	for _, it := range f.Room.Items {
		if it.Name == "backpack" {
			assert.Equal(t, mgl32.Vec3{1, 2, 3}, it.Transform.Translate)
			assert.Equal(t, mgl32.Vec3{2, 2, 2}, it.Transform.Scale)
			return
		}
	}
	t.Fatal("no backpack in room")
}

func TestPlan_PassOrderAndRasterState(t *testing.T) {
	plan := Plan(scene.NewRoomLayout(mgl32.Vec3{}, 1))
	require.NotEmpty(t, plan)

	last := scene.PassOpaque
	for _, d := range plan {
		assert.GreaterOrEqual(t, d.Item.Pass, last)
		last = d.Item.Pass

		assert.Equal(t, d.Item.Name == "glass", d.Blend, d.Item.Name)
		assert.Equal(t, d.Item.Name != "sofa", d.Cull, d.Item.Name)
	}
	assert.Equal(t, "glass", plan[len(plan)-1].Item.Name)
	assert.Equal(t, "floor", plan[0].Item.Name)
}

func TestPlan_ReordersShuffledRoom(t *testing.T) {
	room := scene.Room{Items: []scene.Item{
		{Name: "pane", Pass: scene.PassBlended},
		{Name: "chair", Pass: scene.PassModels},
		{Name: "box", Pass: scene.PassOpaque},
	}}
	plan := Plan(room)
	require.Len(t, plan, 3)
	assert.Equal(t, "box", plan[0].Item.Name)
	assert.Equal(t, "chair", plan[1].Item.Name)
	assert.Equal(t, "pane", plan[2].Item.Name)
}
