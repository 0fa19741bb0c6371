package renderer

import (
	"fmt"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	gst "github.com/richinsley/goshadertranslator"

	"github.com/glslpad/glslpad/shader"
	"github.com/glslpad/glslpad/translator"
)

// Program is a successfully linked vertex+fragment pipeline plus its
// resolved binding table. Any location may be -1 when the corresponding
// name is unused in the source; that is never an error, the render loop
// simply skips it.
type Program struct {
	handle   uint32
	released bool

	PositionLoc   int32
	ResolutionLoc int32
	TimeLoc       int32
	MouseLoc      int32
	Color1Loc     int32
	Color2Loc     int32
}

// Release destroys the backend program object. Safe to call more than once;
// only the first call frees anything.
func (p *Program) Release() {
	if p.released {
		return
	}
	gl.DeleteProgram(p.handle)
	p.released = true
}

// CompileProgram turns a WebGL-dialect source pair into a linked desktop GL
// program. The vertex stage is translated and compiled first; on failure no
// fragment work happens. Every failure path releases all intermediate
// backend objects. CompileProgram never touches the currently active
// program.
func CompileProgram(vertexSrc, fragmentSrc string) (*Program, error) {
	xlate, err := translator.Get()
	if err != nil {
		return nil, fmt.Errorf("shader translator: %w", err)
	}

	vs, err := xlate.TranslateShader(vertexSrc, "vertex", gst.ShaderSpecWebGL, gst.OutputFormatGLSL410)
	if err != nil {
		return nil, &StageError{Stage: StageVertex, Log: err.Error()}
	}
	fs, err := xlate.TranslateShader(fragmentSrc, "fragment", gst.ShaderSpecWebGL, gst.OutputFormatGLSL410)
	if err != nil {
		return nil, &StageError{Stage: StageFragment, Log: err.Error()}
	}

	vertexStage, err := compileStage(vs.Code, gl.VERTEX_SHADER, StageVertex)
	if err != nil {
		return nil, err
	}
	fragmentStage, err := compileStage(fs.Code, gl.FRAGMENT_SHADER, StageFragment)
	if err != nil {
		gl.DeleteShader(vertexStage)
		return nil, err
	}

	programID := gl.CreateProgram()
	gl.AttachShader(programID, vertexStage)
	gl.AttachShader(programID, fragmentStage)
	gl.LinkProgram(programID)

	var status int32
	gl.GetProgramiv(programID, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(programID, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(programID, logLength, nil, gl.Str(infoLog))
		gl.DeleteShader(vertexStage)
		gl.DeleteShader(fragmentStage)
		gl.DeleteProgram(programID)
		return nil, &LinkError{Log: strings.TrimRight(infoLog, "\x00")}
	}

	gl.DeleteShader(vertexStage)
	gl.DeleteShader(fragmentStage)

	p := &Program{handle: programID}
	p.PositionLoc = attribLocation(programID, shader.PositionAttrib, vs.Variables)
	p.ResolutionLoc = uniformLocation(programID, shader.ResolutionUniform, fs.Variables, vs.Variables)
	p.TimeLoc = uniformLocation(programID, shader.TimeUniform, fs.Variables, vs.Variables)
	p.MouseLoc = uniformLocation(programID, shader.MouseUniform, fs.Variables, vs.Variables)
	p.Color1Loc = uniformLocation(programID, shader.Color1Uniform, fs.Variables, vs.Variables)
	p.Color2Loc = uniformLocation(programID, shader.Color2Uniform, fs.Variables, vs.Variables)
	return p, nil
}

func compileStage(source string, shaderType uint32, stage Stage) (uint32, error) {
	stageID := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(stageID, 1, csources, nil)
	free()
	gl.CompileShader(stageID)

	var status int32
	gl.GetShaderiv(stageID, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(stageID, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(stageID, logLength, nil, gl.Str(infoLog))
		gl.DeleteShader(stageID)
		return 0, &StageError{Stage: stage, Log: strings.TrimRight(infoLog, "\x00")}
	}
	return stageID, nil
}

// candidateNames lists the backend symbol names a source-level name may
// appear under: the translator's mapped name when it reported the variable,
// the translator's user-symbol prefix otherwise, and the raw name last.
func candidateNames(name string, tables ...map[string]gst.ShaderVariable) []string {
	names := make([]string, 0, len(tables)+2)
	for _, t := range tables {
		if v, ok := t[name]; ok && v.MappedName != "" {
			names = append(names, v.MappedName)
		}
	}
	return append(names, "_u"+name, name)
}

func uniformLocation(programID uint32, name string, tables ...map[string]gst.ShaderVariable) int32 {
	for _, n := range candidateNames(name, tables...) {
		if loc := gl.GetUniformLocation(programID, gl.Str(n+"\x00")); loc >= 0 {
			return loc
		}
	}
	return -1
}

func attribLocation(programID uint32, name string, tables ...map[string]gst.ShaderVariable) int32 {
	for _, n := range candidateNames(name, tables...) {
		if loc := gl.GetAttribLocation(programID, gl.Str(n+"\x00")); loc >= 0 {
			return loc
		}
	}
	return -1
}
