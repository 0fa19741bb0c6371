package renderer

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"github.com/glslpad/glslpad/options"
)

// FrameSink consumes rendered RGBA frames, one WriteFrame per frame.
type FrameSink interface {
	WriteFrame(pixels []byte) error
}

// OffscreenTarget is a fixed-size FBO used by record mode so output frames
// are independent of the window's framebuffer size.
type OffscreenTarget struct {
	fbo       uint32
	textureID uint32
	width     int
	height    int
}

func NewOffscreenTarget(width, height int) (*OffscreenTarget, error) {
	t := &OffscreenTarget{width: width, height: height}

	gl.GenFramebuffers(1, &t.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.GenTextures(1, &t.textureID)
	gl.BindTexture(gl.TEXTURE_2D, t.textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.textureID, 0)

	if gl.CheckFramebufferStatus(gl.FRAMEBUFFER) != gl.FRAMEBUFFER_COMPLETE {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		t.Destroy()
		return nil, fmt.Errorf("offscreen fbo is not complete")
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return t, nil
}

func (t *OffscreenTarget) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
}

func (t *OffscreenTarget) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// ReadPixels reads the target's contents into buf, which must hold
// width*height*4 bytes. Rows come back bottom-up; the encoder flips them.
func (t *OffscreenTarget) ReadPixels(buf []byte) {
	gl.ReadPixels(0, 0, int32(t.width), int32(t.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(buf))
}

func (t *OffscreenTarget) Destroy() {
	gl.DeleteTextures(1, &t.textureID)
	gl.DeleteFramebuffers(1, &t.fbo)
}

// RunOffscreen renders duration*fps frames into the sink with synthesized
// frame times, so output timing is exact regardless of render speed. The
// active program must already be loaded.
func (r *Renderer) RunOffscreen(opts *options.Options, sink FrameSink) error {
	if !r.Running() {
		return fmt.Errorf("no program loaded")
	}

	width, height := *opts.Width, *opts.Height
	target, err := NewOffscreenTarget(width, height)
	if err != nil {
		return err
	}
	defer target.Destroy()

	total := int(*opts.Duration * float64(*opts.FPS))
	buf := make([]byte, width*height*4)
	for i := 0; i < total; i++ {
		in := FrameInputs{
			Elapsed: float64(i) / float64(*opts.FPS),
			Width:   width,
			Height:  height,
		}
		target.Bind()
		r.Frame(in)
		target.ReadPixels(buf)
		target.Unbind()
		if err := sink.WriteFrame(buf); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}
	return nil
}
