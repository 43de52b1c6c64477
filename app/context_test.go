package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"room-renderer/scene"
	"room-renderer/state"
)

func TestNewContext_Defaults(t *testing.T) {
	c := NewContext()
	assert.False(t, c.UIEnabled)
	assert.True(t, c.MouseLookEnabled)
	assert.True(t, c.PointLightEnabled)
	assert.False(t, c.SpotLightEnabled)
	assert.False(t, c.HDR)
	assert.Equal(t, mgl32.Vec3{}, c.ClearColor)
	assert.Equal(t, DefaultCameraPosition, c.Camera.Position)
	assert.Equal(t, DefaultBackpackPosition, c.BackpackPosition)
	assert.Equal(t, float32(1), c.BackpackScale)
	assert.True(t, c.CursorCaptured())
}

func TestToggleUI_FlipsBothFlags(t *testing.T) {
	c := NewContext()
	c.ToggleUI()
	assert.True(t, c.UIEnabled)
	assert.False(t, c.MouseLookEnabled)
	assert.False(t, c.CursorCaptured())

	for i := 0; i < 7; i++ {
		c.ToggleUI()
	}
	// eight toggles in total
	assert.False(t, c.UIEnabled)
	assert.True(t, c.MouseLookEnabled)
}

func TestExposure_FollowsToggles(t *testing.T) {
	c := NewContext()
	assert.Equal(t, float32(0.3), c.Exposure())

	c.PointLightEnabled = false
	c.SpotLightEnabled = true
	assert.Equal(t, float32(2.0), c.Exposure())

	c.LightingModel = scene.ThreeLight
	assert.Equal(t, scene.ExposureThreeLight(true, false, true), c.Exposure())
}

func TestRecordApply_RoundTrip(t *testing.T) {
	c := NewContext()
	c.ClearColor = mgl32.Vec3{0.1, 0.2, 0.3}
	c.ToggleUI()
	c.HDR = true
	c.SpotLightEnabled = true
	c.Camera.Position = mgl32.Vec3{4, 5, 6}
	c.Camera.SetFront(mgl32.Vec3{1, 0, 0})

	rec := c.Record()
	d := NewContext()
	d.Apply(rec, state.Report{Layout: state.LayoutExtended, Applied: len(state.LayoutExtended.Fields)})

	assert.Equal(t, rec, d.Record())
	assert.InDelta(t, 0, d.Camera.Yaw, 1e-4)
}

func TestSaveLoad_FrontIsExact(t *testing.T) {
	store := state.NewStore(filepath.Join(t.TempDir(), "program_state.txt"), state.LayoutClearColor)
	c := NewContext()
	c.Camera.ProcessMouseMovement(123, -45)
	require.NoError(t, store.Save(c.Record()))

	for i := 0; i < 3; i++ {
		d := NewContext()
		rec := d.Record()
		rep := store.Load(&rec)
		require.True(t, rep.Complete())
		d.Apply(rec, rep)
		assert.Equal(t, c.Camera.Front, d.Camera.Front, "run %d", i)
		require.NoError(t, store.Save(d.Record()))
	}
}

// isPersistentMode reports whether c is in "UI hidden, mouse-look on" or
// "UI shown, mouse-look off".
func isPersistentMode(c *Context) bool {
	return c.UIEnabled != c.MouseLookEnabled
}

func TestApply_UIShownFileWithoutMouseLook(t *testing.T) {
	store := state.NewStore(filepath.Join(t.TempDir(), "program_state.txt"), state.LayoutClearColor)
	c := NewContext()
	c.ToggleUI()
	require.NoError(t, store.Save(c.Record()))

	d := NewContext()
	rec := d.Record()
	d.Apply(rec, store.Load(&rec))
	assert.True(t, d.UIEnabled)
	assert.False(t, d.MouseLookEnabled)
	assert.True(t, isPersistentMode(d))

	d.ToggleUI()
	assert.False(t, d.UIEnabled)
	assert.True(t, d.MouseLookEnabled)
	assert.True(t, d.CursorCaptured())
}

func TestApply_MissingFile(t *testing.T) {
	store := state.NewStore(filepath.Join(t.TempDir(), "none.txt"), state.LayoutExtended)
	c := NewContext()
	rec := c.Record()
	c.Apply(rec, store.Load(&rec))
	assert.False(t, c.UIEnabled)
	assert.True(t, c.MouseLookEnabled)
}

func TestApply_ExtendedFileKeepsMouseLook(t *testing.T) {
	store := state.NewStore(filepath.Join(t.TempDir(), "program_state.txt"), state.LayoutExtended)
	c := NewContext()
	c.ToggleUI()
	c.MouseLookEnabled = true
	require.NoError(t, store.Save(c.Record()))

	d := NewContext()
	rec := d.Record()
	d.Apply(rec, store.Load(&rec))
	assert.True(t, d.UIEnabled)
	assert.True(t, d.MouseLookEnabled, "an explicitly saved flag wins")
}

func TestApply_TruncatedFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "program_state.txt")
	store := state.NewStore(path, state.LayoutExtended)
	require.NoError(t, writeTokens(path, "0.5", "0.5", "0.5", "1", "9"))

	c := NewContext()
	rec := c.Record()
	rep := store.Load(&rec)
	c.Apply(rec, rep)

	assert.False(t, rep.Complete())
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, c.ClearColor)
	assert.True(t, c.UIEnabled)
	assert.Equal(t, mgl32.Vec3{9, 0, 3}, c.Camera.Position)
	assert.False(t, c.MouseLookEnabled)
	assert.True(t, isPersistentMode(c))
	assert.True(t, c.PointLightEnabled)
}

func writeTokens(path string, tokens ...string) error {
	return os.WriteFile(path, []byte(strings.Join(tokens, "\n")+"\n"), 0o644)
}
