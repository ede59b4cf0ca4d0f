package output

import (
	"encoding/json"
	"io"
	"os"

	"github.com/codepathfinder/polyglot-callgraph/model"
)

// JSONFormatter formats a run's EnrichedFileAnalysis array as JSON.
type JSONFormatter struct {
	writer  io.Writer
	options *OutputOptions
}

// NewJSONFormatter creates a JSON formatter writing to stdout.
func NewJSONFormatter(opts *OutputOptions) *JSONFormatter {
	if opts == nil {
		opts = NewDefaultOptions()
	}
	return &JSONFormatter{writer: os.Stdout, options: opts}
}

// NewJSONFormatterWithWriter creates a formatter with a custom writer (for testing).
func NewJSONFormatterWithWriter(w io.Writer, opts *OutputOptions) *JSONFormatter {
	jf := NewJSONFormatter(opts)
	jf.writer = w
	return jf
}

// runPayload is the wire shape written to stdout: every file's enriched
// analysis plus out-of-band diagnostics, never intermixed (§7a).
type runPayload struct {
	Files       []model.EnrichedFileAnalysis `json:"files"`
	Diagnostics []model.Diagnostic           `json:"diagnostics,omitempty"`
}

// Format writes files and diagnostics as a single indented JSON document.
func (f *JSONFormatter) Format(files []model.EnrichedFileAnalysis, diags []model.Diagnostic) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(runPayload{Files: files, Diagnostics: diags})
}
