package renderer

import "errors"

// Stage identifies one of the two shader stages of a pipeline.
type Stage string

const (
	StageVertex   Stage = "vertex"
	StageFragment Stage = "fragment"
)

// StageError reports a failed compile of a single stage. Log carries the
// backend's diagnostic text verbatim.
type StageError struct {
	Stage Stage
	Log   string
}

func (e *StageError) Error() string {
	return string(e.Stage) + " shader: " + e.Log
}

// LinkError reports a failure to link two successfully compiled stages
// into a program (e.g. a varying mismatch).
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "program link: " + e.Log
}

// ErrContextUnavailable means the graphics backend could not be created.
// Fatal to rendering, but the rest of the application stays interactive.
var ErrContextUnavailable = errors.New("graphics context unavailable")
