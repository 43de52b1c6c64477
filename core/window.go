package core

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// GLFW and the GL context must stay on the main OS thread.
	runtime.LockOSThread()
}

type Window struct {
	Handle *glfw.Window
	Width  int
	Height int
	Title  string

	// Framebuffer size in pixels; differs from Width/Height on HiDPI screens.
	FramebufferWidth  int
	FramebufferHeight int

	fbCallbacks []func(width, height int)
}

type WindowConfig struct {
	Width      int
	Height     int
	Title      string
	Resizable  bool
	VSync      bool
	Fullscreen bool
}

// NewWindow creates a window with an OpenGL 4.1 core context and makes the
// context current on the calling thread.
func NewWindow(config WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolToInt(config.Resizable))

	monitor := (*glfw.Monitor)(nil)
	if config.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}

	handle, err := glfw.CreateWindow(config.Width, config.Height, config.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	handle.MakeContextCurrent()
	if config.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	window := &Window{
		Handle: handle,
		Width:  config.Width,
		Height: config.Height,
		Title:  config.Title,
	}
	window.FramebufferWidth, window.FramebufferHeight = handle.GetFramebufferSize()

	handle.SetSizeCallback(func(w *glfw.Window, width, height int) {
		window.Width = width
		window.Height = height
	})
	handle.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		window.FramebufferWidth = width
		window.FramebufferHeight = height
		for _, cb := range window.fbCallbacks {
			cb(width, height)
		}
	})

	return window, nil
}

func (w *Window) ShouldClose() bool {
	return w.Handle.ShouldClose()
}

func (w *Window) SetShouldClose(v bool) {
	w.Handle.SetShouldClose(v)
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) SwapBuffers() {
	w.Handle.SwapBuffers()
}

// Time returns seconds since GLFW was initialised, from a monotonic clock.
func (w *Window) Time() float64 {
	return glfw.GetTime()
}

func (w *Window) Destroy() {
	w.Handle.Destroy()
	glfw.Terminate()
}

func (w *Window) IsKeyPressed(key int) bool {
	return w.Handle.GetKey(glfw.Key(key)) == glfw.Press
}

// SetCursorCaptured hides and locks the cursor for mouse-look, or releases it
// so the UI can be used.
func (w *Window) SetCursorCaptured(captured bool) {
	mode := glfw.CursorNormal
	if captured {
		mode = glfw.CursorDisabled
	}
	w.Handle.SetInputMode(glfw.CursorMode, mode)
}

// ScrollCallback is the type for scroll event handlers
type ScrollCallback func(xoff, yoff float64)

// CursorPosCallback receives cursor positions in screen coordinates.
type CursorPosCallback func(x, y float64)

// MouseButtonCallback receives button presses and releases.
type MouseButtonCallback func(button int, pressed bool)

// CharCallback receives typed unicode characters.
type CharCallback func(r rune)

// KeyCallback receives key presses and releases; repeats are dropped.
type KeyCallback func(key int, pressed bool)

func (w *Window) SetScrollCallback(cb ScrollCallback) {
	w.Handle.SetScrollCallback(func(win *glfw.Window, xoff, yoff float64) {
		cb(xoff, yoff)
	})
}

func (w *Window) SetCursorPosCallback(cb CursorPosCallback) {
	w.Handle.SetCursorPosCallback(func(win *glfw.Window, x, y float64) {
		cb(x, y)
	})
}

func (w *Window) SetMouseButtonCallback(cb MouseButtonCallback) {
	w.Handle.SetMouseButtonCallback(func(win *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Repeat {
			return
		}
		cb(int(button), action == glfw.Press)
	})
}

func (w *Window) SetCharCallback(cb CharCallback) {
	w.Handle.SetCharCallback(func(win *glfw.Window, r rune) {
		cb(r)
	})
}

func (w *Window) SetKeyCallback(cb KeyCallback) {
	w.Handle.SetKeyCallback(func(win *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Repeat {
			return
		}
		cb(int(key), action == glfw.Press)
	})
}

// OnFramebufferResize registers cb to run after the framebuffer size changes.
func (w *Window) OnFramebufferResize(cb func(width, height int)) {
	w.fbCallbacks = append(w.fbCallbacks, cb)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

const (
	KeySpace     = int(glfw.KeySpace)
	KeyA         = int(glfw.KeyA)
	KeyC         = int(glfw.KeyC)
	KeyD         = int(glfw.KeyD)
	KeyS         = int(glfw.KeyS)
	KeyV         = int(glfw.KeyV)
	KeyW         = int(glfw.KeyW)
	KeyX         = int(glfw.KeyX)
	KeyY         = int(glfw.KeyY)
	KeyZ         = int(glfw.KeyZ)
	KeyEscape    = int(glfw.KeyEscape)
	KeyEnter     = int(glfw.KeyEnter)
	KeyTab       = int(glfw.KeyTab)
	KeyBackspace = int(glfw.KeyBackspace)
	KeyInsert    = int(glfw.KeyInsert)
	KeyDelete    = int(glfw.KeyDelete)
	KeyRight     = int(glfw.KeyRight)
	KeyLeft      = int(glfw.KeyLeft)
	KeyDown      = int(glfw.KeyDown)
	KeyUp        = int(glfw.KeyUp)
	KeyPageUp    = int(glfw.KeyPageUp)
	KeyPageDown  = int(glfw.KeyPageDown)
	KeyHome      = int(glfw.KeyHome)
	KeyEnd       = int(glfw.KeyEnd)
	KeyF1        = int(glfw.KeyF1)
	KeyF5        = int(glfw.KeyF5)

	KeyLeftShift    = int(glfw.KeyLeftShift)
	KeyLeftControl  = int(glfw.KeyLeftControl)
	KeyLeftAlt      = int(glfw.KeyLeftAlt)
	KeyLeftSuper    = int(glfw.KeyLeftSuper)
	KeyRightShift   = int(glfw.KeyRightShift)
	KeyRightControl = int(glfw.KeyRightControl)
	KeyRightAlt     = int(glfw.KeyRightAlt)
	KeyRightSuper   = int(glfw.KeyRightSuper)
)
