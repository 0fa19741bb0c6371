package renderer

import (
	"fmt"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"github.com/glslpad/glslpad/graphics"
)

// LoopState describes whether the render loop issues draw calls.
type LoopState int

const (
	// Stopped means no program has ever compiled; frames are cleared but
	// nothing is drawn.
	Stopped LoopState = iota
	// Running means an active program exists and every frame draws the
	// full-screen quad with it. There is no pause state: a failed
	// recompile keeps the loop running on the last good program.
	Running
)

var glInitOnce sync.Once

// Two triangles covering the NDC square.
var quadVertices = []float32{
	-1.0, 1.0, -1.0, -1.0, 1.0, -1.0,
	-1.0, 1.0, 1.0, -1.0, 1.0, 1.0,
}

// Renderer owns the quad geometry and the currently active program. It is
// the only component that replaces or releases the active program, and it
// is confined to the thread the GL context is current on.
type Renderer struct {
	context graphics.Context
	quadVAO uint32
	quadVBO uint32
	active  *Program
	state   LoopState
	start   float64
}

// New makes the context current, initializes the GL bindings and uploads
// the full-screen quad. The renderer starts Stopped.
func New(ctx graphics.Context) (*Renderer, error) {
	r := &Renderer{context: ctx, state: Stopped}

	ctx.MakeCurrent()
	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrContextUnavailable, initErr)
	}

	gl.GenVertexArrays(1, &r.quadVAO)
	gl.GenBuffers(1, &r.quadVBO)
	gl.BindVertexArray(r.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.start = ctx.Time()
	return r, nil
}

// StartTime is the context clock value the elapsed-seconds uniform counts
// from. Fixed for the renderer's lifetime.
func (r *Renderer) StartTime() float64 {
	return r.start
}

func (r *Renderer) State() LoopState {
	return r.state
}

// Running reports whether a program is active and frames are being drawn.
func (r *Renderer) Running() bool {
	return r.state == Running
}

// LoadProgram compiles the source pair and, on success, swaps the new
// program in and releases the previous one after the swap. On failure the
// active program and loop state are left untouched and the typed compile
// error is returned for display.
func (r *Renderer) LoadProgram(vertexSrc, fragmentSrc string) error {
	p, err := CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return err
	}
	r.install(p)
	return nil
}

// install points the quad's vertex attribute at the new program's position
// slot, swaps the active program and only then releases the old handle, so
// no in-flight frame can observe a released program.
func (r *Renderer) install(p *Program) {
	old := r.active

	gl.BindVertexArray(r.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	if old != nil && old.PositionLoc >= 0 && old.PositionLoc != p.PositionLoc {
		gl.DisableVertexAttribArray(uint32(old.PositionLoc))
	}
	if p.PositionLoc >= 0 {
		gl.EnableVertexAttribArray(uint32(p.PositionLoc))
		gl.VertexAttribPointer(uint32(p.PositionLoc), 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.active = p
	r.state = Running
	if old != nil {
		old.Release()
	}
}

// Frame renders one frame with the given inputs. While Stopped it clears the
// surface and issues no draw calls.
func (r *Renderer) Frame(in FrameInputs) {
	gl.Viewport(0, 0, int32(in.Width), int32(in.Height))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	if r.state != Running {
		return
	}

	p := r.active
	gl.UseProgram(p.handle)
	if p.ResolutionLoc >= 0 {
		gl.Uniform2f(p.ResolutionLoc, float32(in.Width), float32(in.Height))
	}
	if p.TimeLoc >= 0 {
		gl.Uniform1f(p.TimeLoc, float32(in.Elapsed))
	}
	if p.MouseLoc >= 0 {
		gl.Uniform2f(p.MouseLoc, in.MouseX, in.MouseY)
	}
	gl.BindVertexArray(r.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

// Shutdown releases the active program and the quad resources. After
// Shutdown the renderer is Stopped and must not be used again.
func (r *Renderer) Shutdown() {
	if r.active != nil {
		r.active.Release()
		r.active = nil
	}
	r.state = Stopped
	gl.DeleteBuffers(1, &r.quadVBO)
	gl.DeleteVertexArrays(1, &r.quadVAO)
}
