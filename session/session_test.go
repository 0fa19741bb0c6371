package session

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glslpad/glslpad/editor"
	"github.com/glslpad/glslpad/shader"
	"github.com/glslpad/glslpad/store"
)

// fakeEngine records LoadProgram calls and mimics the swap contract: a
// failed load leaves the previously loaded sources active.
type fakeEngine struct {
	loads        int
	failWith     error
	running      bool
	activeVertex string
	activeFrag   string
}

func (f *fakeEngine) LoadProgram(vertexSrc, fragmentSrc string) error {
	f.loads++
	if f.failWith != nil {
		return f.failWith
	}
	f.running = true
	f.activeVertex = vertexSrc
	f.activeFrag = fragmentSrc
	return nil
}

func (f *fakeEngine) Running() bool { return f.running }

type fakeSink struct {
	visible bool
	last    string
	shows   int
	hides   int
}

func (f *fakeSink) Show(text string) {
	f.visible = true
	f.last = text
	f.shows++
}

func (f *fakeSink) Hide() {
	f.visible = false
	f.hides++
}

type fixture struct {
	sess     *Session
	vertex   *editor.Buffer
	fragment *editor.Buffer
	engine   *fakeEngine
	sink     *fakeSink
	store    *store.Store
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()

	vertex, err := editor.NewBuffer(filepath.Join(dir, "vertex.glsl"), shader.DefaultVertexSource)
	require.NoError(t, err)
	fragment, err := editor.NewBuffer(filepath.Join(dir, "fragment.glsl"), shader.DefaultFragmentSource)
	require.NoError(t, err)

	fx := &fixture{
		vertex:   vertex,
		fragment: fragment,
		engine:   &fakeEngine{},
		sink:     &fakeSink{},
		store:    store.New(filepath.Join(dir, "session.json")),
		now:      time.Unix(1000, 0),
	}
	fx.sess = New(Config{
		Vertex:      vertex,
		Fragment:    fragment,
		Engine:      fx.engine,
		Diagnostics: fx.sink,
		Store:       fx.store,
		Title:       shader.DefaultTitle,
		Now:         func() time.Time { return fx.now },
	})
	return fx
}

func (fx *fixture) advance(d time.Duration) {
	fx.now = fx.now.Add(d)
	fx.sess.Step(fx.now)
}

func TestCompileSuccessActivatesProgramAndClearsDiagnostic(t *testing.T) {
	fx := newFixture(t)
	fx.sink.visible = true

	fx.sess.Compile()

	assert.Equal(t, 1, fx.engine.loads)
	assert.True(t, fx.engine.Running())
	assert.Equal(t, shader.DefaultVertexSource, fx.engine.activeVertex)
	assert.False(t, fx.sink.visible)
}

func TestCompileFailureKeepsActiveProgram(t *testing.T) {
	fx := newFixture(t)
	fx.sess.Compile()
	require.True(t, fx.engine.Running())

	fx.engine.failWith = errors.New("fragment shader: 0:4: 'gl_FragColor' : undeclared identifier")
	require.NoError(t, fx.fragment.SetValue("void main() {}\n"))
	fx.advance(CompileDebounce)

	assert.Equal(t, 2, fx.engine.loads)
	assert.True(t, fx.engine.Running(), "previous program must keep rendering")
	assert.Equal(t, shader.DefaultVertexSource, fx.engine.activeVertex)
	assert.True(t, fx.sink.visible)
	assert.Contains(t, fx.sink.last, "gl_FragColor")
}

func TestCompileFailureBeforeFirstSuccessStaysIdle(t *testing.T) {
	fx := newFixture(t)
	fx.engine.failWith = errors.New("vertex shader: syntax error")

	fx.sess.Compile()

	assert.False(t, fx.engine.Running(), "loop must idle until a first successful compile")
	assert.True(t, fx.sink.visible)
}

func TestEditsDebounceToOneCompile(t *testing.T) {
	fx := newFixture(t)

	require.NoError(t, fx.vertex.SetValue("// 1\n"+shader.DefaultVertexSource))
	fx.advance(100 * time.Millisecond)
	require.NoError(t, fx.fragment.SetValue("// 2\n"+shader.DefaultFragmentSource))
	fx.advance(100 * time.Millisecond)
	require.NoError(t, fx.fragment.SetValue("// 3\n"+shader.DefaultFragmentSource))

	// One tick before the deadline: nothing fires.
	fx.advance(CompileDebounce - time.Millisecond)
	assert.Equal(t, 0, fx.engine.loads)

	fx.advance(time.Millisecond)
	assert.Equal(t, 1, fx.engine.loads)
	assert.Equal(t, "// 3\n"+shader.DefaultFragmentSource, fx.engine.activeFrag)

	// Quiet period: no further compiles.
	fx.advance(time.Minute)
	assert.Equal(t, 1, fx.engine.loads)
}

func TestResetRestoresDefaultsWithOneRecompile(t *testing.T) {
	fx := newFixture(t)
	require.NoError(t, fx.vertex.SetValue("junk"))
	require.NoError(t, fx.fragment.SetValue("junk"))
	fx.advance(CompileDebounce)
	require.Equal(t, 1, fx.engine.loads)

	fx.sess.Reset()
	assert.Equal(t, shader.DefaultVertexSource, fx.vertex.Value())
	assert.Equal(t, shader.DefaultFragmentSource, fx.fragment.Value())

	fx.advance(CompileDebounce)
	assert.Equal(t, 2, fx.engine.loads, "reset must trigger exactly one recompilation")
}

func TestSaveDebounce(t *testing.T) {
	fx := newFixture(t)
	require.NoError(t, fx.fragment.SetValue("// edited\n"+shader.DefaultFragmentSource))

	fx.advance(SaveDebounce - time.Millisecond)
	_, ok := fx.store.Load()
	assert.False(t, ok, "saved before the persistence debounce elapsed")

	fx.advance(time.Millisecond)
	snap, ok := fx.store.Load()
	require.True(t, ok)
	assert.Equal(t, shader.DefaultTitle, snap.Title)
	assert.Equal(t, "// edited\n"+shader.DefaultFragmentSource, snap.FragmentShader)
	assert.Equal(t, shader.DefaultVertexSource, snap.VertexShader)
}

func TestTitleEditSavesWithoutRecompiling(t *testing.T) {
	fx := newFixture(t)

	fx.sess.SetTitle("plasma")
	fx.advance(SaveDebounce)

	assert.Equal(t, 0, fx.engine.loads)
	snap, ok := fx.store.Load()
	require.True(t, ok)
	assert.Equal(t, "plasma", snap.Title)
}

func TestNilEngineSkipsCompiles(t *testing.T) {
	fx := newFixture(t)
	fx.sess.engine = nil

	require.NoError(t, fx.fragment.SetValue("x"))
	fx.advance(CompileDebounce)
	// Persistence still works without a graphics context.
	fx.advance(SaveDebounce)
	_, ok := fx.store.Load()
	assert.True(t, ok)
}

func TestCloseCancelsPendingWork(t *testing.T) {
	fx := newFixture(t)
	require.NoError(t, fx.fragment.SetValue("x"))

	fx.sess.Close()
	fx.advance(time.Minute)

	assert.Equal(t, 0, fx.engine.loads)
	_, ok := fx.store.Load()
	assert.False(t, ok)
}
