// Command roomdemo renders the furnished room: a fly camera, three switchable
// lights, an optional HDR tonemap and a debug UI on F1. The scene state is
// read from a plain text file at start-up and written back on exit.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"room-renderer/app"
	"room-renderer/core"
	"room-renderer/input"
	"room-renderer/internal/config"
	"room-renderer/internal/logging"
	"room-renderer/internal/opengl"
	"room-renderer/internal/shaderwatch"
	"room-renderer/renderer"
	"room-renderer/renderer/frame"
	"room-renderer/scene"
	"room-renderer/state"
	"room-renderer/ui"
	"room-renderer/ui/backend"
)

func main() {
	flags := config.Flags()
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logging.Setup(cfg.Log.Level)
	if cfg.File != "" {
		log.Info().Str("file", cfg.File).Msg("config loaded")
	}

	if err := run(log, cfg); err != nil {
		log.Fatal().Err(err).Msg("roomdemo failed")
	}
}

func run(log zerolog.Logger, cfg *config.Config) error {
	// ── State ─────────────────────────────────────────────────────────────────
	ctx, store, err := loadContext(log, cfg)
	if err != nil {
		return err
	}

	// ── Window ────────────────────────────────────────────────────────────────
	window, err := core.NewWindow(core.WindowConfig{
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Title:      cfg.Window.Title,
		Resizable:  true,
		VSync:      cfg.Window.VSync,
		Fullscreen: cfg.Window.Fullscreen,
	})
	if err != nil {
		return err
	}
	defer window.Destroy()
	window.SetCursorCaptured(ctx.CursorCaptured())

	// ── Renderer ──────────────────────────────────────────────────────────────
	engine, err := renderer.NewRenderEngine(log, scene.NewLoader(log), renderer.Options{
		AssetPath: cfg.AssetPath,
		Skybox:    cfg.Render.Skybox,
		Width:     window.FramebufferWidth,
		Height:    window.FramebufferHeight,
	})
	if err != nil {
		return fmt.Errorf("failed to create render engine: %w", err)
	}
	defer engine.Destroy()
	window.OnFramebufferResize(engine.Resize)

	// ── Debug UI ──────────────────────────────────────────────────────────────
	platform := backend.NewPlatform(imguiKeys())
	defer platform.Destroy()

	uiRenderer, err := opengl.NewImguiRenderer(platform.IO())
	if err != nil {
		return fmt.Errorf("failed to create UI renderer: %w", err)
	}
	defer uiRenderer.Destroy()

	// ── Input ─────────────────────────────────────────────────────────────────
	controller := input.NewController(input.Bindings{
		Forward:   core.KeyW,
		Backward:  core.KeyS,
		Left:      core.KeyA,
		Right:     core.KeyD,
		ToggleHDR: core.KeySpace,
		ToggleUI:  core.KeyF1,
		Save:      core.KeyF5,
		Close:     core.KeyEscape,
	})
	controller.WantCaptureMouse = func() bool {
		return ctx.UIEnabled && platform.WantCaptureMouse()
	}

	window.SetCursorPosCallback(func(x, y float64) {
		platform.OnCursor(x, y)
		controller.OnCursor(ctx, x, y)
	})
	window.SetScrollCallback(func(xoff, yoff float64) {
		if ctx.UIEnabled {
			platform.OnScroll(xoff, yoff)
		}
		controller.OnScroll(ctx, yoff)
	})
	window.SetMouseButtonCallback(platform.OnMouseButton)
	window.SetCharCallback(platform.OnChar)
	window.SetKeyCallback(platform.OnKey)

	// ── Shader hot reload ─────────────────────────────────────────────────────
	var watcher *shaderwatch.Watcher
	if cfg.Shaders.HotReload {
		watcher, err = shaderwatch.New(log, engine.ShaderDir())
		if err != nil {
			log.Warn().Err(err).Msg("shader hot reload disabled")
		} else {
			defer watcher.Close()
			log.Info().Str("dir", engine.ShaderDir()).Msg("watching shaders")
		}
	}

	// ── Frame loop ────────────────────────────────────────────────────────────
	var panels ui.Panels
	last := window.Time()
	for !window.ShouldClose() {
		now := window.Time()
		dt := float32(now - last)
		last = now

		act := controller.Update(ctx, window, dt)
		if act.ToggledUI {
			window.SetCursorCaptured(ctx.CursorCaptured())
		}
		if act.ToggledHDR {
			log.Debug().Bool("hdr", ctx.HDR).Msg("hdr toggled")
		}
		if act.SaveRequested {
			saveState(log, store, ctx)
		}
		if ctx.CloseRequested {
			window.SetShouldClose(true)
		}

		if watcher != nil {
			for _, path := range watcher.Drain() {
				engine.ReloadShader(path)
			}
		}

		width, height := engine.Size()
		engine.Render(frame.Build(ctx, width, height))

		if ctx.UIEnabled {
			platform.NewFrame(window.Width, window.Height, now)
			panels.Draw(backend.Imgui{}, ctx)
			uiRenderer.Render(
				[2]float32{float32(window.Width), float32(window.Height)},
				[2]float32{float32(width), float32(height)},
				platform.Render(),
			)
		}

		window.SwapBuffers()
		window.PollEvents()
	}

	saveState(log, store, ctx)
	return nil
}

// loadContext builds the start-up context from configuration and the state
// file. A missing or damaged state file only costs the fields it could not
// supply.
func loadContext(log zerolog.Logger, cfg *config.Config) (*app.Context, *state.Store, error) {
	layout, err := state.ParseLayout(cfg.State.Layout)
	if err != nil {
		return nil, nil, err
	}
	model, err := scene.ParseLightingModel(cfg.Render.Lighting)
	if err != nil {
		return nil, nil, err
	}

	ctx := app.NewContext()
	ctx.LightingModel = model
	ctx.HDR = cfg.Render.HDR
	if err := ctx.Lights.Spot.Validate(); err != nil {
		log.Warn().Err(err).Msg("spot light cone")
	}

	store := state.NewStore(cfg.State.Path, layout)
	rec := ctx.Record()
	rep := store.Load(&rec)
	ctx.Apply(rec, rep)

	switch {
	case rep.Missing:
		log.Info().Str("path", rep.Path).Msg("no saved state, using defaults")
	case !rep.Complete():
		log.Warn().Err(rep.Err).
			Str("path", rep.Path).
			Int("applied", rep.Applied).
			Int("expected", rep.Expected).
			Msg("state file incomplete, remaining fields use defaults")
	default:
		log.Debug().Str("path", rep.Path).Str("layout", layout.Name).Msg("state loaded")
	}
	return ctx, store, nil
}

func saveState(log zerolog.Logger, store *state.Store, ctx *app.Context) {
	if err := store.Save(ctx.Record()); err != nil {
		log.Error().Err(err).Msg("failed to save state")
		return
	}
	log.Info().Str("path", store.Path).Msg("state saved")
}

func imguiKeys() backend.Keys {
	return backend.Keys{
		Tab:          core.KeyTab,
		Left:         core.KeyLeft,
		Right:        core.KeyRight,
		Up:           core.KeyUp,
		Down:         core.KeyDown,
		PageUp:       core.KeyPageUp,
		PageDown:     core.KeyPageDown,
		Home:         core.KeyHome,
		End:          core.KeyEnd,
		Insert:       core.KeyInsert,
		Delete:       core.KeyDelete,
		Backspace:    core.KeyBackspace,
		Space:        core.KeySpace,
		Enter:        core.KeyEnter,
		Escape:       core.KeyEscape,
		A:            core.KeyA,
		C:            core.KeyC,
		V:            core.KeyV,
		X:            core.KeyX,
		Y:            core.KeyY,
		Z:            core.KeyZ,
		LeftControl:  core.KeyLeftControl,
		RightControl: core.KeyRightControl,
		LeftShift:    core.KeyLeftShift,
		RightShift:   core.KeyRightShift,
		LeftAlt:      core.KeyLeftAlt,
		RightAlt:     core.KeyRightAlt,
		LeftSuper:    core.KeyLeftSuper,
		RightSuper:   core.KeyRightSuper,
	}
}
