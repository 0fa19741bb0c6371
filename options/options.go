package options

// Options holds the parsed command-line configuration for a glslpad run.
// Fields are pointers so they bind directly to flag.* results.
type Options struct {
	VertexFile   *string
	FragmentFile *string
	SessionFile  *string
	Title        *string
	Width        *int
	Height       *int
	Verbose      *bool

	// Recording options
	Record     *bool
	Duration   *float64
	FPS        *int
	OutputFile *string
	FFMPEGPath *string
}
