// Package encoder streams raw RGBA frames into an ffmpeg process that
// encodes the recording output file.
package encoder

import (
	"fmt"
	"io"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/glslpad/glslpad/options"
)

// PipeEncoder feeds rendered frames to ffmpeg over a pipe. The GL thread
// produces frames; ffmpeg consumes them concurrently.
type PipeEncoder struct {
	pw   *io.PipeWriter
	errc chan error
}

// New validates the recording geometry and starts the ffmpeg consumer.
func New(opts *options.Options) (*PipeEncoder, error) {
	if *opts.Width <= 0 || *opts.Height <= 0 {
		return nil, fmt.Errorf("invalid recording size %dx%d", *opts.Width, *opts.Height)
	}
	if *opts.FPS <= 0 {
		return nil, fmt.Errorf("invalid frame rate %d", *opts.FPS)
	}

	pr, pw := io.Pipe()
	inputArgs, outputArgs := Args(opts)
	cmd := ffmpeg.Input("pipe:", inputArgs).
		Output(*opts.OutputFile, outputArgs).
		OverWriteOutput().WithInput(pr).ErrorToStdOut()
	if *opts.FFMPEGPath != "" {
		cmd = cmd.SetFfmpegPath(*opts.FFMPEGPath)
	}

	e := &PipeEncoder{pw: pw, errc: make(chan error, 1)}
	go func() {
		e.errc <- cmd.Run()
	}()
	return e, nil
}

// Args builds the ffmpeg input and output argument sets for a recording
// run. GL read-back delivers rows bottom-up, hence the vflip filter.
func Args(opts *options.Options) (ffmpeg.KwArgs, ffmpeg.KwArgs) {
	inputArgs := ffmpeg.KwArgs{
		"format":    "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", *opts.Width, *opts.Height),
		"framerate": *opts.FPS,
	}
	outputArgs := ffmpeg.KwArgs{
		"c:v":      "libx264",
		"pix_fmt":  "yuv420p",
		"vf":       "vflip",
		"movflags": "+faststart",
	}
	return inputArgs, outputArgs
}

// WriteFrame sends one width*height*4 byte RGBA frame to the encoder.
func (e *PipeEncoder) WriteFrame(pixels []byte) error {
	_, err := e.pw.Write(pixels)
	return err
}

// Close signals end of stream and waits for ffmpeg to finish the file.
func (e *PipeEncoder) Close() error {
	if err := e.pw.Close(); err != nil {
		return err
	}
	return <-e.errc
}
