package renderer

import (
	"github.com/glslpad/glslpad/graphics"
)

// FrameInputs is one consistent snapshot of the external values fed into the
// active program for a single frame.
type FrameInputs struct {
	// Elapsed is seconds since the renderer was created; monotonic, never
	// reset while the process runs.
	Elapsed float64
	// Width and Height are the drawable surface size in pixels at sample
	// time.
	Width  int
	Height int
	// MouseX and MouseY are the last-known pointer position normalized to
	// [0,1], with 0 at the bottom edge. Both are 0 before the first pointer
	// event.
	MouseX float32
	MouseY float32
}

// SampleInputs reads the current clock, surface size and pointer state from
// the context. Called once per frame so program, uniforms and draw call all
// observe the same snapshot.
func SampleInputs(ctx graphics.Context, start float64) FrameInputs {
	width, height := ctx.GetFramebufferSize()
	in := FrameInputs{
		Elapsed: ctx.Time() - start,
		Width:   width,
		Height:  height,
	}
	if x, y, ok := ctx.CursorState(); ok {
		in.MouseX, in.MouseY = NormalizePointer(x, y, width, height)
	}
	return in
}

// NormalizePointer maps a cursor position in surface pixels to [0,1] with
// the vertical axis flipped so that 0 is the bottom edge and 1 the top.
// Values saturate at the edges so a drag that leaves the surface never
// produces out-of-range coordinates.
func NormalizePointer(x, y float64, width, height int) (float32, float32) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	nx := clamp01(x / float64(width))
	ny := clamp01(1.0 - y/float64(height))
	return float32(nx), float32(ny)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
