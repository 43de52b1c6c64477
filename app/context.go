// Package app holds the mutable application state shared by input handling,
// the debug UI and the renderer. There is exactly one Context per run and it
// is passed explicitly; nothing here touches the window or GL.
package app

import (
	"github.com/go-gl/mathgl/mgl32"

	"room-renderer/scene"
	"room-renderer/state"
)

// DefaultCameraPosition is where the camera starts when no state file exists.
var DefaultCameraPosition = mgl32.Vec3{0, 0, 3}

// DefaultBackpackPosition puts the backpack on the table.
var DefaultBackpackPosition = mgl32.Vec3{0, 5, 0}

// Context is the live application state.
type Context struct {
	ClearColor       mgl32.Vec3
	UIEnabled        bool
	MouseLookEnabled bool

	PointLightEnabled bool
	SpotLightEnabled  bool
	DirLightEnabled   bool
	HDR               bool

	BackpackPosition mgl32.Vec3
	BackpackScale    float32

	Camera        *scene.Camera
	Lights        scene.Lights
	LightingModel scene.LightingModel

	// CloseRequested is set by input; the frame loop turns it into a window
	// close.
	CloseRequested bool
}

// NewContext returns the start-up state: UI hidden, mouse-look on, point
// light on, spot light off.
func NewContext() *Context {
	return &Context{
		MouseLookEnabled:  true,
		PointLightEnabled: true,
		DirLightEnabled:   true,
		BackpackPosition:  DefaultBackpackPosition,
		BackpackScale:     1,
		Camera:            scene.NewCamera(DefaultCameraPosition),
		Lights:            scene.DefaultLights(),
		LightingModel:     scene.TwoLight,
	}
}

// Record snapshots the persisted subset of the context.
func (c *Context) Record() state.Record {
	return state.Record{
		ClearColor:     c.ClearColor,
		UIEnabled:      c.UIEnabled,
		CameraPosition: c.Camera.Position,
		CameraFront:    c.Camera.Front,
		MouseLook:      c.MouseLookEnabled,
		PointLight:     c.PointLightEnabled,
		SpotLight:      c.SpotLightEnabled,
		HDR:            c.HDR,
	}
}

// Apply copies a loaded record into the context. The camera front goes
// through SetFront so yaw and pitch agree with it and the first mouse delta
// does not snap the view. When rep shows the file did not carry mouse-look,
// it follows the UI flag so the context starts in one of the two modes.
func (c *Context) Apply(r state.Record, rep state.Report) {
	c.ClearColor = r.ClearColor
	c.UIEnabled = r.UIEnabled
	c.MouseLookEnabled = r.MouseLook
	if !rep.Read(state.FieldMouseLook) {
		c.MouseLookEnabled = !c.UIEnabled
	}
	c.PointLightEnabled = r.PointLight
	c.SpotLightEnabled = r.SpotLight
	c.HDR = r.HDR
	c.Camera.Position = r.CameraPosition
	c.Camera.SetFront(r.CameraFront)
}

// ToggleUI flips UI visibility and mouse-look together.
func (c *Context) ToggleUI() {
	c.UIEnabled = !c.UIEnabled
	c.MouseLookEnabled = !c.MouseLookEnabled
}

func (c *Context) ToggleHDR() {
	c.HDR = !c.HDR
}

// Toggles reports which lights are switched on.
func (c *Context) Toggles() scene.Toggles {
	return scene.Toggles{
		Dir:   c.DirLightEnabled,
		Point: c.PointLightEnabled,
		Spot:  c.SpotLightEnabled,
	}
}

// Exposure is the tonemap exposure for the current light toggles.
func (c *Context) Exposure() float32 {
	return c.LightingModel.Exposure(c.Toggles())
}

// CursorCaptured reports whether the window should grab the cursor: only
// while the UI is hidden.
func (c *Context) CursorCaptured() bool {
	return !c.UIEnabled
}
