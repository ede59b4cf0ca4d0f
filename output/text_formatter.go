package output

import (
	"fmt"
	"io"
	"os"

	"github.com/codepathfinder/polyglot-callgraph/model"
)

// TextFormatter renders a run's results as human-readable text.
type TextFormatter struct {
	writer  io.Writer
	options *OutputOptions
}

// NewTextFormatter creates a text formatter writing to stdout.
func NewTextFormatter(opts *OutputOptions) *TextFormatter {
	if opts == nil {
		opts = NewDefaultOptions()
	}
	return &TextFormatter{writer: os.Stdout, options: opts}
}

// NewTextFormatterWithWriter creates a formatter with a custom writer (for testing).
func NewTextFormatterWithWriter(w io.Writer, opts *OutputOptions) *TextFormatter {
	tf := NewTextFormatter(opts)
	tf.writer = w
	return tf
}

// Format writes one section per file, followed by a run-wide summary.
func (f *TextFormatter) Format(files []model.EnrichedFileAnalysis, diags []model.Diagnostic) error {
	if len(files) == 0 {
		fmt.Fprintln(f.writer, "No files analyzed.")
		return nil
	}

	var classes, funcCalls, methodCalls, ctorCalls int
	for _, file := range files {
		f.writeFile(file)
		classes += len(file.Classes)
		funcCalls += len(file.FunctionCalls)
		methodCalls += len(file.MethodCalls)
		ctorCalls += len(file.ConstructorCalls)
	}

	fmt.Fprintln(f.writer, "Summary:")
	fmt.Fprintf(f.writer, "  %d files | %d classes | %d function calls | %d method calls | %d constructor calls\n",
		len(files), classes, funcCalls, methodCalls, ctorCalls)

	if len(diags) > 0 && f.options.ShouldShowStatistics() {
		fmt.Fprintf(f.writer, "  %d diagnostics\n", len(diags))
		for _, d := range diags {
			fmt.Fprintf(f.writer, "    [%s] %s: %s\n", d.Severity, d.Kind, d.Message)
		}
	}
	return nil
}

func (f *TextFormatter) writeFile(file model.EnrichedFileAnalysis) {
	fmt.Fprintf(f.writer, "%s\n", file.FilePath)

	for _, c := range file.Classes {
		fmt.Fprintf(f.writer, "  class %s", c.Name)
		if len(c.Extends) > 0 {
			fmt.Fprintf(f.writer, " extends %v", c.Extends)
		}
		fmt.Fprintln(f.writer)
	}

	if !f.options.ShouldShowStatistics() {
		return
	}

	for _, mc := range file.MethodCalls {
		fmt.Fprintf(f.writer, "  %s.%s() -> %s [%s, confidence=%.2f]\n",
			mc.Receiver, mc.MethodName, mc.DefiningClass, mc.DispatchType, mc.Confidence)
	}
	for _, fc := range file.FunctionCalls {
		fmt.Fprintf(f.writer, "  %s() -> %s [confidence=%.2f]\n", fc.FunctionName, fc.ResolvedFunction, fc.Confidence)
	}
	fmt.Fprintln(f.writer)
}
