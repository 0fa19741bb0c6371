// Package session wires the editing surfaces, the compile/save debouncers,
// the persistence store and the rendering engine together. The session is
// the program lifecycle controller: it is the only caller of the engine's
// LoadProgram, and compile errors are terminal here.
package session

import (
	"log/slog"
	"time"

	"github.com/glslpad/glslpad/editor"
	"github.com/glslpad/glslpad/shader"
	"github.com/glslpad/glslpad/store"
)

// Fixed debounce contracts: recompile 500ms after the last edit, persist
// 1000ms after the last edit or title change. Two independent timers.
const (
	CompileDebounce = 500 * time.Millisecond
	SaveDebounce    = 1000 * time.Millisecond
)

// Engine is the rendering side of the session. LoadProgram swaps the active
// program on success and leaves it untouched on failure.
type Engine interface {
	LoadProgram(vertexSrc, fragmentSrc string) error
}

// DiagnosticSink displays the current compile diagnostic. Show and Hide are
// driven exactly by compile-result transitions.
type DiagnosticSink interface {
	Show(text string)
	Hide()
}

// Config collects the session's collaborators. Engine may be nil when the
// graphics context is unavailable; editing and persistence keep working,
// compiles are skipped.
type Config struct {
	Vertex      *editor.Buffer
	Fragment    *editor.Buffer
	Watcher     *editor.Watcher
	Engine      Engine
	Diagnostics DiagnosticSink
	Store       *store.Store
	Title       string
	Now         func() time.Time
}

type Session struct {
	vertex   *editor.Buffer
	fragment *editor.Buffer
	watcher  *editor.Watcher
	engine   Engine
	diag     DiagnosticSink
	store    *store.Store
	title    string
	now      func() time.Time

	compileDebounce *editor.Debouncer
	saveDebounce    *editor.Debouncer
}

func New(cfg Config) *Session {
	s := &Session{
		vertex:          cfg.Vertex,
		fragment:        cfg.Fragment,
		watcher:         cfg.Watcher,
		engine:          cfg.Engine,
		diag:            cfg.Diagnostics,
		store:           cfg.Store,
		title:           cfg.Title,
		now:             cfg.Now,
		compileDebounce: editor.NewDebouncer(CompileDebounce),
		saveDebounce:    editor.NewDebouncer(SaveDebounce),
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.vertex.OnChange(s.noteEdit)
	s.fragment.OnChange(s.noteEdit)
	return s
}

func (s *Session) Title() string {
	return s.title
}

// SetTitle updates the session title and schedules a save. Title edits do
// not trigger recompilation.
func (s *Session) SetTitle(title string) {
	s.title = title
	s.saveDebounce.Trigger(s.now())
}

// noteEdit re-arms both debounce timers. A new edit cancels any pending
// compile or save deadline and replaces it.
func (s *Session) noteEdit() {
	now := s.now()
	s.compileDebounce.Trigger(now)
	s.saveDebounce.Trigger(now)
}

// Compile compiles the current source pair immediately and routes the
// result to the diagnostic sink. On failure the engine keeps the previous
// program and the render loop keeps running, or stays idle if nothing has
// ever compiled.
func (s *Session) Compile() {
	if s.engine == nil {
		return
	}
	if err := s.engine.LoadProgram(s.vertex.Value(), s.fragment.Value()); err != nil {
		slog.Debug("compile failed", "err", err)
		s.diag.Show(err.Error())
		return
	}
	s.diag.Hide()
}

// Reset restores both sources to the built-in default pair. The two change
// events land inside one debounce window, so exactly one recompilation
// follows.
func (s *Session) Reset() {
	if err := s.vertex.SetValue(shader.DefaultVertexSource); err != nil {
		slog.Warn("reset vertex source failed", "err", err)
	}
	if err := s.fragment.SetValue(shader.DefaultFragmentSource); err != nil {
		slog.Warn("reset fragment source failed", "err", err)
	}
}

// Step drains pending watcher events and fires any expired debouncers.
// Called once per frame from the main loop; all session work happens on
// the caller's thread.
func (s *Session) Step(now time.Time) {
	s.drainEvents()
	if s.compileDebounce.Fire(now) {
		s.Compile()
	}
	if s.saveDebounce.Fire(now) {
		s.save()
	}
}

func (s *Session) drainEvents() {
	if s.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-s.watcher.Events():
			if !ok {
				return
			}
			s.reload(path)
		default:
			return
		}
	}
}

func (s *Session) reload(path string) {
	for _, b := range []*editor.Buffer{s.vertex, s.fragment} {
		if b.Path() != path {
			continue
		}
		if err := b.Reload(); err != nil {
			slog.Warn("reload failed", "path", path, "err", err)
		}
	}
}

func (s *Session) save() {
	if s.store == nil {
		return
	}
	snap := store.Snapshot{
		Title:          s.title,
		VertexShader:   s.vertex.Value(),
		FragmentShader: s.fragment.Value(),
	}
	if err := s.store.Save(snap); err != nil {
		slog.Warn("session save failed", "err", err)
		return
	}
	slog.Debug("session saved", "path", s.store.Path())
}

// Close cancels all pending debounced work and stops watching. No scheduled
// work survives teardown.
func (s *Session) Close() {
	s.compileDebounce.Cancel()
	s.saveDebounce.Cancel()
	if s.watcher != nil {
		if err := s.watcher.Close(); err != nil {
			slog.Warn("watcher close failed", "err", err)
		}
	}
}
