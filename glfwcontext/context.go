package glfwcontext

import (
	"log/slog"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"

	options "github.com/glslpad/glslpad/options"
)

// Context owns the GLFW window and tracks the cursor state that the
// uniform feed samples once per frame.
type Context struct {
	window *glfw.Window

	cursorX   float64
	cursorY   float64
	hasCursor bool

	fbWidth  int
	fbHeight int

	keyCallbacks map[glfw.Key]func()
}

// New creates and initializes a new GLFW window and returns a Context object.
func New(opts *options.Options) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	if opts.Record != nil && *opts.Record {
		glfw.WindowHint(glfw.Visible, glfw.False)
	} else {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	}

	win, err := glfw.CreateWindow(*opts.Width, *opts.Height, "glslpad", nil, nil)
	if err != nil {
		return nil, err
	}

	c := &Context{
		window:       win,
		keyCallbacks: make(map[glfw.Key]func()),
	}
	c.fbWidth, c.fbHeight = win.GetFramebufferSize()

	win.SetKeyCallback(c.glfwKeyCallback)
	win.SetCursorPosCallback(c.glfwCursorPosCallback)
	win.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		c.fbWidth, c.fbHeight = width, height
	})

	return c, nil
}

// SetTitle updates the window title bar.
func (c *Context) SetTitle(title string) {
	c.window.SetTitle(title)
}

// RegisterKeyCallback registers a function to be called when a specific
// key is pressed while the render window has focus.
func (c *Context) RegisterKeyCallback(key glfw.Key, f func()) {
	c.keyCallbacks[key] = f
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}
	if action == glfw.Press {
		if callback, ok := c.keyCallbacks[key]; ok {
			callback()
		}
	}
}

// glfwCursorPosCallback converts window coordinates to framebuffer pixels
// (they differ on HiDPI displays) and records the last-known position.
func (c *Context) glfwCursorPosCallback(w *glfw.Window, x, y float64) {
	fbWidth, fbHeight := w.GetFramebufferSize()
	winWidth, winHeight := w.GetSize()
	var scaleX, scaleY float64 = 1.0, 1.0
	if winWidth > 0 && winHeight > 0 {
		scaleX = float64(fbWidth) / float64(winWidth)
		scaleY = float64(fbHeight) / float64(winHeight)
	}
	c.cursorX = x * scaleX
	c.cursorY = y * scaleY
	c.hasCursor = true
}

// CursorState implements graphics.Context. The position persists between
// cursor events; ok is false until the first event arrives.
func (c *Context) CursorState() (float64, float64, bool) {
	return c.cursorX, c.cursorY, c.hasCursor
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

// Shutdown destroys the window.
func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

// GetFramebufferSize returns the drawable surface size in pixels as of the
// most recent resize event. Cheap to call every frame.
func (c *Context) GetFramebufferSize() (int, int) {
	return c.fbWidth, c.fbHeight
}

func (c *Context) Time() float64 {
	return glfw.GetTime()
}

// InitGraphics initializes the main graphics subsystem (GLFW). Must be called
// from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	slog.Info("GLFW initialized")
	return nil
}

// TerminateGraphics shuts down the graphics subsystem. Must be called from
// the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	slog.Info("GLFW terminated")
}
