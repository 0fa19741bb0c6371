package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	glfw "github.com/go-gl/glfw/v3.3/glfw"

	"github.com/glslpad/glslpad/editor"
	"github.com/glslpad/glslpad/encoder"
	"github.com/glslpad/glslpad/glfwcontext"
	"github.com/glslpad/glslpad/options"
	"github.com/glslpad/glslpad/renderer"
	"github.com/glslpad/glslpad/session"
	"github.com/glslpad/glslpad/shader"
	"github.com/glslpad/glslpad/store"
)

func init() {
	runtime.LockOSThread()
}

// consoleSink prints shader diagnostics to stderr. It tracks whether a
// diagnostic is showing so Hide only reports an actual transition.
type consoleSink struct {
	showing bool
}

func (c *consoleSink) Show(text string) {
	c.showing = true
	fmt.Fprintf(os.Stderr, "--- shader error ---\n%s\n", text)
}

func (c *consoleSink) Hide() {
	if !c.showing {
		return
	}
	c.showing = false
	fmt.Fprintln(os.Stderr, "--- shader ok ---")
}

func parseFlags() *options.Options {
	opts := &options.Options{
		VertexFile:   flag.String("vertex", "vertex.glsl", "Vertex shader source file (created if missing)"),
		FragmentFile: flag.String("fragment", "fragment.glsl", "Fragment shader source file (created if missing)"),
		SessionFile:  flag.String("session", "session.json", "Session persistence file"),
		Title:        flag.String("title", "", "Session title (overrides the persisted one)"),
		Width:        flag.Int("width", 800, "Window or output width"),
		Height:       flag.Int("height", 600, "Window or output height"),
		Verbose:      flag.Bool("verbose", false, "Enable debug logging"),

		Record:     flag.Bool("record", false, "Render offscreen to a video file and exit"),
		Duration:   flag.Float64("duration", 10.0, "Duration to record in seconds"),
		FPS:        flag.Int("fps", 60, "Frames per second for recording"),
		OutputFile: flag.String("output", "output.mp4", "Output file name for recording"),
		FFMPEGPath: flag.String("ffmpeg", "", "Path to ffmpeg executable"),
	}
	flag.Parse()
	return opts
}

func main() {
	opts := parseFlags()

	level := slog.LevelInfo
	if *opts.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	st := store.New(*opts.SessionFile)
	snap, ok := st.Load()
	if !ok {
		snap = store.Snapshot{
			Title:          shader.DefaultTitle,
			VertexShader:   shader.DefaultVertexSource,
			FragmentShader: shader.DefaultFragmentSource,
		}
	}
	if *opts.Title != "" {
		snap.Title = *opts.Title
	}

	vertexBuf, fragmentBuf, err := openBuffers(opts, snap)
	if err != nil {
		slog.Error("failed to open shader sources", "err", err)
		os.Exit(1)
	}

	if *opts.Record {
		if err := record(opts, vertexBuf.Value(), fragmentBuf.Value()); err != nil {
			slog.Error("recording failed", "err", err)
			os.Exit(1)
		}
		slog.Info("recording finished", "output", *opts.OutputFile)
		return
	}

	diag := &consoleSink{}
	engine, ctx := initEngine(opts, diag)

	watcher, err := editor.NewWatcher(vertexBuf.Path(), fragmentBuf.Path())
	if err != nil {
		slog.Warn("file watching unavailable, external edits will not recompile", "err", err)
		watcher = nil
	}

	cfg := session.Config{
		Vertex:      vertexBuf,
		Fragment:    fragmentBuf,
		Watcher:     watcher,
		Diagnostics: diag,
		Store:       st,
		Title:       snap.Title,
	}
	if engine != nil {
		cfg.Engine = engine
	}
	sess := session.New(cfg)
	defer sess.Close()

	if ctx == nil {
		runHeadless(sess)
		return
	}
	defer glfwcontext.TerminateGraphics()
	defer ctx.Shutdown()
	defer engine.Shutdown()

	ctx.SetTitle("glslpad — " + sess.Title())
	ctx.RegisterKeyCallback(glfw.KeyR, sess.Reset)

	slog.Info("editing", "vertex", vertexBuf.Path(), "fragment", fragmentBuf.Path())
	sess.Compile()
	for !ctx.ShouldClose() {
		sess.Step(time.Now())
		engine.Frame(renderer.SampleInputs(ctx, engine.StartTime()))
		ctx.EndFrame()
	}
}

// openBuffers resolves the shader paths and opens both editing surfaces,
// seeding missing files from the loaded snapshot.
func openBuffers(opts *options.Options, snap store.Snapshot) (*editor.Buffer, *editor.Buffer, error) {
	vertexPath, err := filepath.Abs(*opts.VertexFile)
	if err != nil {
		return nil, nil, err
	}
	fragmentPath, err := filepath.Abs(*opts.FragmentFile)
	if err != nil {
		return nil, nil, err
	}
	vertexBuf, err := editor.NewBuffer(vertexPath, snap.VertexShader)
	if err != nil {
		return nil, nil, err
	}
	fragmentBuf, err := editor.NewBuffer(fragmentPath, snap.FragmentShader)
	if err != nil {
		return nil, nil, err
	}
	return vertexBuf, fragmentBuf, nil
}

// initEngine brings up GLFW, the window and the renderer. A failure is
// reported once through the diagnostic sink and leaves the application in
// headless mode; it never aborts the process.
func initEngine(opts *options.Options, diag session.DiagnosticSink) (*renderer.Renderer, *glfwcontext.Context) {
	if err := glfwcontext.InitGraphics(); err != nil {
		slog.Error("graphics init failed", "err", err)
		diag.Show("graphics context unavailable: " + err.Error())
		return nil, nil
	}
	ctx, err := glfwcontext.New(opts)
	if err != nil {
		slog.Error("window creation failed", "err", err)
		diag.Show("graphics context unavailable: " + err.Error())
		glfwcontext.TerminateGraphics()
		return nil, nil
	}
	engine, err := renderer.New(ctx)
	if err != nil {
		slog.Error("renderer init failed", "err", err)
		diag.Show("graphics context unavailable: " + err.Error())
		ctx.Shutdown()
		glfwcontext.TerminateGraphics()
		return nil, nil
	}
	return engine, ctx
}

// runHeadless keeps editing and persistence alive when no graphics context
// exists. Compiles are skipped; everything else behaves normally.
func runHeadless(sess *session.Session) {
	slog.Info("running without a graphics context; press ctrl-c to exit")
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case <-sig:
			return
		case now := <-tick.C:
			sess.Step(now)
		}
	}
}

// record renders the current source pair offscreen for the configured
// duration and encodes it to the output file. A compile failure is fatal
// here; there is no previous program to fall back to.
func record(opts *options.Options, vertexSrc, fragmentSrc string) error {
	if err := glfwcontext.InitGraphics(); err != nil {
		return err
	}
	defer glfwcontext.TerminateGraphics()

	ctx, err := glfwcontext.New(opts)
	if err != nil {
		return err
	}
	defer ctx.Shutdown()

	r, err := renderer.New(ctx)
	if err != nil {
		return err
	}
	defer r.Shutdown()

	if err := r.LoadProgram(vertexSrc, fragmentSrc); err != nil {
		return fmt.Errorf("compile failed: %w", err)
	}

	enc, err := encoder.New(opts)
	if err != nil {
		return err
	}
	if err := r.RunOffscreen(opts, enc); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}
