// Package backend connects the debug panels to Dear ImGui: Imgui implements
// ui.Widgets and Platform owns the ImGui context and its input state.
package backend

import (
	"github.com/inkyblackness/imgui-go/v4"
)

// ── Widgets ───────────────────────────────────────────────────────────────────

// Imgui draws widgets into the current ImGui frame.
type Imgui struct{}

func (Imgui) Begin(name string) bool { return imgui.Begin(name) }

func (Imgui) End() { imgui.End() }

func (Imgui) Text(text string) { imgui.Text(text) }

func (Imgui) SliderFloat(label string, v *float32, min, max float32) bool {
	return imgui.SliderFloat(label, v, min, max)
}

func (Imgui) DragFloat(label string, v *float32, speed, min, max float32) bool {
	return imgui.DragFloatV(label, v, speed, min, max, "%.3f", imgui.SliderFlagsNone)
}

func (Imgui) DragFloat3(label string, v *[3]float32, speed float32) bool {
	return imgui.DragFloat3V(label, v, speed, 0, 0, "%.3f", imgui.SliderFlagsNone)
}

func (Imgui) ColorEdit3(label string, c *[3]float32) bool { return imgui.ColorEdit3(label, c) }

func (Imgui) Checkbox(label string, v *bool) bool { return imgui.Checkbox(label, v) }

// ── Platform ──────────────────────────────────────────────────────────────────

// Keys maps ImGui navigation keys to window key codes.
type Keys struct {
	Tab, Left, Right, Up, Down  int
	PageUp, PageDown, Home, End int
	Insert, Delete, Backspace   int
	Space, Enter, Escape        int
	A, C, V, X, Y, Z            int
	LeftControl, RightControl   int
	LeftShift, RightShift       int
	LeftAlt, RightAlt           int
	LeftSuper, RightSuper       int
}

const mouseButtons = 3

// Platform feeds window events and display size into ImGui IO.
type Platform struct {
	ctx  *imgui.Context
	io   imgui.IO
	keys Keys
	time float64

	mouseDown        [mouseButtons]bool
	mouseJustPressed [mouseButtons]bool
}

// NewPlatform creates the ImGui context. Settings are not persisted to disk.
func NewPlatform(keys Keys) *Platform {
	ctx := imgui.CreateContext(nil)
	io := imgui.CurrentIO()
	io.SetIniFilename("")

	io.KeyMap(imgui.KeyTab, keys.Tab)
	io.KeyMap(imgui.KeyLeftArrow, keys.Left)
	io.KeyMap(imgui.KeyRightArrow, keys.Right)
	io.KeyMap(imgui.KeyUpArrow, keys.Up)
	io.KeyMap(imgui.KeyDownArrow, keys.Down)
	io.KeyMap(imgui.KeyPageUp, keys.PageUp)
	io.KeyMap(imgui.KeyPageDown, keys.PageDown)
	io.KeyMap(imgui.KeyHome, keys.Home)
	io.KeyMap(imgui.KeyEnd, keys.End)
	io.KeyMap(imgui.KeyInsert, keys.Insert)
	io.KeyMap(imgui.KeyDelete, keys.Delete)
	io.KeyMap(imgui.KeyBackspace, keys.Backspace)
	io.KeyMap(imgui.KeySpace, keys.Space)
	io.KeyMap(imgui.KeyEnter, keys.Enter)
	io.KeyMap(imgui.KeyEscape, keys.Escape)
	io.KeyMap(imgui.KeyA, keys.A)
	io.KeyMap(imgui.KeyC, keys.C)
	io.KeyMap(imgui.KeyV, keys.V)
	io.KeyMap(imgui.KeyX, keys.X)
	io.KeyMap(imgui.KeyY, keys.Y)
	io.KeyMap(imgui.KeyZ, keys.Z)

	return &Platform{ctx: ctx, io: io, keys: keys}
}

// IO exposes the ImGui IO, e.g. for uploading the font atlas.
func (p *Platform) IO() imgui.IO {
	return p.io
}

// NewFrame starts an ImGui frame for a window of the given size. now is the
// window clock in seconds.
func (p *Platform) NewFrame(width, height int, now float64) {
	p.io.SetDisplaySize(imgui.Vec2{X: float32(width), Y: float32(height)})

	delta := 1.0 / 60.0
	if p.time > 0 && now > p.time {
		delta = now - p.time
	}
	p.time = now
	p.io.SetDeltaTime(float32(delta))

	// A click that starts and ends between two frames still registers.
	for i := range p.mouseDown {
		p.io.SetMouseButtonDown(i, p.mouseJustPressed[i] || p.mouseDown[i])
		p.mouseJustPressed[i] = false
	}

	imgui.NewFrame()
}

// Render finishes the frame and returns its draw data.
func (p *Platform) Render() imgui.DrawData {
	imgui.Render()
	return imgui.RenderedDrawData()
}

// WantCaptureMouse reports whether ImGui is using the mouse this frame.
func (p *Platform) WantCaptureMouse() bool {
	return p.io.WantCaptureMouse()
}

func (p *Platform) OnCursor(x, y float64) {
	p.io.SetMousePosition(imgui.Vec2{X: float32(x), Y: float32(y)})
}

func (p *Platform) OnMouseButton(button int, pressed bool) {
	if button < 0 || button >= mouseButtons {
		return
	}
	if pressed {
		p.mouseJustPressed[button] = true
	}
	p.mouseDown[button] = pressed
}

func (p *Platform) OnScroll(xoff, yoff float64) {
	p.io.AddMouseWheelDelta(float32(xoff), float32(yoff))
}

func (p *Platform) OnChar(r rune) {
	p.io.AddInputCharacters(string(r))
}

func (p *Platform) OnKey(key int, pressed bool) {
	if pressed {
		p.io.KeyPress(key)
	} else {
		p.io.KeyRelease(key)
	}
	p.io.KeyCtrl(p.keys.LeftControl, p.keys.RightControl)
	p.io.KeyShift(p.keys.LeftShift, p.keys.RightShift)
	p.io.KeyAlt(p.keys.LeftAlt, p.keys.RightAlt)
	p.io.KeySuper(p.keys.LeftSuper, p.keys.RightSuper)
}

func (p *Platform) Destroy() {
	p.ctx.Destroy()
}
