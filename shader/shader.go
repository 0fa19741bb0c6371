// Package shader holds the built-in shader sources. glslpad edits shaders
// in the WebGL 1 dialect (attribute/varying, gl_FragColor); sources are
// translated to desktop GLSL by the renderer before compilation.
package shader

// DefaultVertexSource is the built-in vertex stage: it passes the
// full-screen quad positions straight through to clip space.
const DefaultVertexSource = `attribute vec3 position;

void main() {
	gl_Position = vec4(position, 1.0);
}
`

// DefaultFragmentSource is the built-in animated-gradient fragment stage.
// It exercises all three standard uniforms: time, resolution and mouse.
// Both defaults together form the initial state of a fresh session and the
// target of the reset operation.
const DefaultFragmentSource = `precision mediump float;

uniform float time;
uniform vec2 resolution;
uniform vec2 mouse;

void main() {
	vec2 uv = gl_FragCoord.xy / resolution;
	uv += 0.1 * (mouse - 0.5);
	vec3 color = 0.5 + 0.5 * cos(time + uv.xyx + vec3(0.0, 2.0, 4.0));
	gl_FragColor = vec4(color, 1.0);
}
`

// DefaultTitle names a fresh, never-saved session.
const DefaultTitle = "untitled"

// Uniform and attribute names resolved at link time. Each may legitimately
// be absent from a user shader; absence is never an error.
const (
	PositionAttrib    = "position"
	ResolutionUniform = "resolution"
	TimeUniform       = "time"
	MouseUniform      = "mouse"
	Color1Uniform     = "color1"
	Color2Uniform     = "color2"
)
