package translator

import (
	"context"

	gst "github.com/richinsley/goshadertranslator"
)

var shared *gst.ShaderTranslator

// Get returns the process-wide shader translator, creating it on first use.
// The translator runs the ANGLE compiler in a wasm sandbox; constructing it
// is expensive, so one instance is shared by every compile attempt.
func Get() (*gst.ShaderTranslator, error) {
	if shared == nil {
		t, err := gst.NewShaderTranslator(context.Background())
		if err != nil {
			return nil, err
		}
		shared = t
	}
	return shared, nil
}
