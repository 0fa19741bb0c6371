package graphics

// Context defines the interface for an OpenGL context and its window surface.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	EndFrame()
	GetFramebufferSize() (int, int)
	Time() float64
	// CursorState returns the last sampled cursor position in framebuffer
	// pixels. ok is false until the first cursor event arrives.
	CursorState() (x, y float64, ok bool)
}
