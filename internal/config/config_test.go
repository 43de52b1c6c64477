package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, 1600, cfg.Window.Width)
	assert.Equal(t, 1200, cfg.Window.Height)
	assert.Equal(t, "LearnOpenGL", cfg.Window.Title)
	assert.True(t, cfg.Window.VSync)
	assert.False(t, cfg.Window.Fullscreen)
	assert.Equal(t, "resources", cfg.Assets.Root)
	assert.Equal(t, "resources/program_state.txt", cfg.State.Path)
	assert.Equal(t, "clearcolor", cfg.State.Layout)
	assert.False(t, cfg.Render.HDR)
	assert.True(t, cfg.Render.Skybox)
	assert.Equal(t, "two-light", cfg.Render.Lighting)
	assert.False(t, cfg.Shaders.HotReload)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.File)
}

func TestLoad_WithConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	yml := `
window:
  width: 800
  height: 600
  fullscreen: true
render:
  hdr: true
  lighting: three-light
shaders:
  hotReload: true
state:
  layout: compact
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "roomdemo.yaml"), []byte(yml), 0644))

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.True(t, cfg.Window.Fullscreen)
	assert.True(t, cfg.Render.HDR)
	assert.Equal(t, "three-light", cfg.Render.Lighting)
	assert.True(t, cfg.Shaders.HotReload)
	assert.Equal(t, "compact", cfg.State.Layout)
	assert.Equal(t, "LearnOpenGL", cfg.Window.Title)
	assert.Contains(t, cfg.File, "roomdemo.yaml")
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	chdir(t, t.TempDir())

	flags := Flags()
	require.NoError(t, flags.Parse([]string{"--config", "/nonexistent/roomdemo.yaml"}))

	_, err := Load(flags)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_EnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ROOMDEMO_LOG_LEVEL", "debug")
	t.Setenv("ROOMDEMO_RENDER_HDR", "true")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Render.HDR)
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "roomdemo.yaml"), []byte("log:\n  level: warn\n"), 0644))

	flags := Flags()
	require.NoError(t, flags.Parse([]string{"--hdr", "--log-level", "trace", "--state", "saves/state.txt"}))

	cfg, err := Load(flags)
	require.NoError(t, err)

	assert.True(t, cfg.Render.HDR)
	assert.Equal(t, "trace", cfg.Log.Level)
	assert.Equal(t, "saves/state.txt", cfg.State.Path)
}

func TestLoad_UnsetFlagsKeepFileValues(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "roomdemo.yaml"), []byte("log:\n  level: warn\n"), 0644))

	flags := Flags()
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load(flags)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	cfg := &Config{Window: WindowConfig{Width: 0, Height: 600}, State: StateConfig{Path: "x"}}
	assert.Error(t, cfg.Validate())

	cfg = &Config{Window: WindowConfig{Width: 800, Height: 600}}
	assert.Error(t, cfg.Validate())

	cfg.State.Path = "state.txt"
	assert.NoError(t, cfg.Validate())
}

func TestAssetPath(t *testing.T) {
	cfg := &Config{Assets: AssetsConfig{Root: "resources"}}
	assert.Equal(t, filepath.Join("resources", "textures", "glass.png"), cfg.AssetPath("textures/glass.png"))
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
