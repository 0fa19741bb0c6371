package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeContext implements graphics.Context for sampling tests; no GL calls.
type fakeContext struct {
	time      float64
	width     int
	height    int
	cursorX   float64
	cursorY   float64
	hasCursor bool
}

func (f *fakeContext) MakeCurrent()                 {}
func (f *fakeContext) Shutdown()                    {}
func (f *fakeContext) ShouldClose() bool            { return false }
func (f *fakeContext) EndFrame()                    {}
func (f *fakeContext) GetFramebufferSize() (int, int) {
	return f.width, f.height
}
func (f *fakeContext) Time() float64 { return f.time }
func (f *fakeContext) CursorState() (float64, float64, bool) {
	return f.cursorX, f.cursorY, f.hasCursor
}

func TestNormalizePointer(t *testing.T) {
	tests := []struct {
		name   string
		x, y   float64
		w, h   int
		wantX  float32
		wantY  float32
	}{
		{"bottom left corner", 0, 600, 800, 600, 0, 0},
		{"top right corner", 800, 0, 800, 600, 1, 1},
		{"top left corner", 0, 0, 800, 600, 0, 1},
		{"bottom right corner", 800, 600, 800, 600, 1, 0},
		{"center", 400, 300, 800, 600, 0.5, 0.5},
		{"clamps left overshoot", -50, 300, 800, 600, 0, 0.5},
		{"clamps below surface", 400, 700, 800, 600, 0.5, 0},
		{"zero size surface", 10, 10, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotX, gotY := NormalizePointer(tt.x, tt.y, tt.w, tt.h)
			assert.InDelta(t, tt.wantX, gotX, 1e-6)
			assert.InDelta(t, tt.wantY, gotY, 1e-6)
		})
	}
}

func TestSampleInputsElapsed(t *testing.T) {
	ctx := &fakeContext{time: 12.5, width: 800, height: 600}
	in := SampleInputs(ctx, 10.0)
	assert.InDelta(t, 2.5, in.Elapsed, 1e-9)
	assert.Equal(t, 800, in.Width)
	assert.Equal(t, 600, in.Height)
}

func TestSampleInputsPointerDefaultsToZero(t *testing.T) {
	ctx := &fakeContext{time: 1, width: 800, height: 600}
	in := SampleInputs(ctx, 0)
	assert.Zero(t, in.MouseX)
	assert.Zero(t, in.MouseY)
}

func TestSampleInputsReflectsResize(t *testing.T) {
	ctx := &fakeContext{time: 1, width: 800, height: 600, cursorX: 400, cursorY: 300, hasCursor: true}
	in := SampleInputs(ctx, 0)
	assert.Equal(t, 800, in.Width)

	// Same layout sampled twice yields the same dimensions.
	again := SampleInputs(ctx, 0)
	assert.Equal(t, in.Width, again.Width)
	assert.Equal(t, in.Height, again.Height)

	ctx.width, ctx.height = 400, 300
	in = SampleInputs(ctx, 0)
	assert.Equal(t, 400, in.Width)
	assert.Equal(t, 300, in.Height)
	// Normalization follows the new dimensions: the cursor is now at the
	// bottom-right corner.
	assert.InDelta(t, 1.0, in.MouseX, 1e-6)
	assert.InDelta(t, 0.0, in.MouseY, 1e-6)
}
