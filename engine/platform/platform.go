package platform

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/spaghettifunk/tavolo/engine/core"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

// Platform owns the window and the OpenGL context. All GL work happens on
// the thread that called Startup.
type Platform struct {
	Window *glfw.Window
}

func New() *Platform {
	return &Platform{}
}

// Startup creates the window with an OpenGL 4.1 core context, makes it
// current and installs the input callbacks.
func (p *Platform) Startup(applicationName string, x, y, width, height uint32) error {
	if err := glfw.Init(); err != nil {
		core.LogError("failed to initialize glfw: %s", err)
		return err
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	window, err := glfw.CreateWindow(int(width), int(height), applicationName, nil, nil)
	if err != nil {
		core.LogError("failed to create window: %s", err)
		return err
	}
	p.Window = window

	p.Window.MakeContextCurrent()
	glfw.SwapInterval(1)

	p.Window.SetKeyCallback(keyCallback)
	p.Window.SetCursorPosCallback(cursorPosCallback)
	p.Window.SetScrollCallback(scrollCallback)
	p.Window.SetFramebufferSizeCallback(framebufferSizeCallback)
	p.Window.SetPos(int(x), int(y))
	p.Window.Show()

	return nil
}

func (p *Platform) Shutdown() error {
	glfw.Terminate()
	return nil
}

// PumpMessages polls window events. Returns false once the window wants
// to close.
func (p *Platform) PumpMessages() bool {
	glfw.PollEvents()
	return !p.Window.ShouldClose()
}

// SwapBuffers presents the rendered frame.
func (p *Platform) SwapBuffers() {
	p.Window.SwapBuffers()
}

// GetAbsoluteTime returns seconds since GLFW initialization.
func GetAbsoluteTime() float64 {
	return glfw.GetTime()
}

func keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	keyCode, ok := translateKey(key)
	if !ok {
		return
	}
	switch action {
	case glfw.Press:
		core.InputProcessKey(keyCode, true)
	case glfw.Release:
		core.InputProcessKey(keyCode, false)
	}
}

func cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	core.InputProcessMouseMove(xpos, ypos)
}

func scrollCallback(w *glfw.Window, xoff, yoff float64) {
	core.InputProcessMouseWheel(yoff)
}

func framebufferSizeCallback(w *glfw.Window, width, height int) {
	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_RESIZED,
		Data: &core.SystemEvent{
			WindowWidth:  uint32(width),
			WindowHeight: uint32(height),
		},
	})
}

// translateKey maps GLFW keys to the engine key codes. Letter keys share
// their ASCII values, so only the non-printable keys need special cases.
func translateKey(key glfw.Key) (core.KeyCode, bool) {
	switch {
	case key == glfw.KeyEscape:
		return core.KEY_ESCAPE, true
	case key >= glfw.KeyA && key <= glfw.KeyZ:
		return core.KeyCode(key), true
	default:
		return 0, false
	}
}
