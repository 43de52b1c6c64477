// Package input turns polled key state and window callbacks into changes on
// the application context.
package input

import (
	"room-renderer/app"
	"room-renderer/scene"
)

// Keyboard is polled once per frame. core.Window satisfies it.
type Keyboard interface {
	IsKeyPressed(key int) bool
}

// Bindings maps actions to key codes. The codes come from the window layer
// so this package stays free of GLFW.
type Bindings struct {
	Forward, Backward, Left, Right int
	ToggleHDR                      int
	ToggleUI                       int
	Save                           int
	Close                          int
}

// KeyLatch reports a key once per physical press.
type KeyLatch struct {
	prev map[int]bool
}

func NewKeyLatch() *KeyLatch {
	return &KeyLatch{prev: make(map[int]bool)}
}

// Pressed returns true only on the up to down transition of key.
func (l *KeyLatch) Pressed(key int, down bool) bool {
	was := l.prev[key]
	l.prev[key] = down
	return down && !was
}

// Actions are the side effects of one Update that need the window.
type Actions struct {
	ToggledUI     bool
	ToggledHDR    bool
	SaveRequested bool
}

// Controller owns the per-run input state: key latches and the last cursor
// position.
type Controller struct {
	Bindings Bindings

	latch      *KeyLatch
	firstMouse bool
	lastX      float64
	lastY      float64

	// WantCaptureMouse, when set, reports that the UI is using the mouse.
	WantCaptureMouse func() bool
}

func NewController(b Bindings) *Controller {
	return &Controller{
		Bindings:   b,
		latch:      NewKeyLatch(),
		firstMouse: true,
	}
}

// Update polls kb for one frame of deltaTime dt seconds.
func (c *Controller) Update(ctx *app.Context, kb Keyboard, dt float32) Actions {
	var act Actions

	if kb.IsKeyPressed(c.Bindings.Close) {
		ctx.CloseRequested = true
	}

	moves := [...]struct {
		key int
		dir scene.CameraMovement
	}{
		{c.Bindings.Forward, scene.Forward},
		{c.Bindings.Backward, scene.Backward},
		{c.Bindings.Left, scene.Left},
		{c.Bindings.Right, scene.Right},
	}
	for _, m := range moves {
		if kb.IsKeyPressed(m.key) {
			ctx.Camera.ProcessKeyboard(m.dir, dt)
		}
	}

	if c.latch.Pressed(c.Bindings.ToggleHDR, kb.IsKeyPressed(c.Bindings.ToggleHDR)) {
		ctx.ToggleHDR()
		act.ToggledHDR = true
	}
	if c.latch.Pressed(c.Bindings.ToggleUI, kb.IsKeyPressed(c.Bindings.ToggleUI)) {
		ctx.ToggleUI()
		// the cursor jumps when its mode changes
		c.firstMouse = true
		act.ToggledUI = true
	}
	if c.latch.Pressed(c.Bindings.Save, kb.IsKeyPressed(c.Bindings.Save)) {
		act.SaveRequested = true
	}
	return act
}

// OnCursor handles a cursor position event. The camera only turns while
// mouse-look is on and the UI is not using the mouse.
func (c *Controller) OnCursor(ctx *app.Context, x, y float64) {
	if c.firstMouse {
		c.lastX, c.lastY = x, y
		c.firstMouse = false
	}
	xoff := float32(x - c.lastX)
	yoff := float32(c.lastY - y) // window y grows downwards
	c.lastX, c.lastY = x, y

	if !ctx.MouseLookEnabled || c.uiWantsMouse() {
		return
	}
	ctx.Camera.ProcessMouseMovement(xoff, yoff)
}

// OnScroll zooms the camera.
func (c *Controller) OnScroll(ctx *app.Context, yoff float64) {
	if c.uiWantsMouse() {
		return
	}
	ctx.Camera.ProcessMouseScroll(float32(yoff))
}

func (c *Controller) uiWantsMouse() bool {
	return c.WantCaptureMouse != nil && c.WantCaptureMouse()
}
