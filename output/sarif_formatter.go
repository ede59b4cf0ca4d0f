package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	sarif "github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/codepathfinder/polyglot-callgraph/model"
)

// SARIFFormatter renders a run's low-confidence calls and multi-target
// virtual method calls as SARIF 2.1.0 results, so the analyzer's output can
// feed standard code-scanning tooling. Grounded on the teacher's
// sarif_formatter.go, adapted from detection rules to resolved call sites.
type SARIFFormatter struct {
	writer  io.Writer
	options *OutputOptions
}

// NewSARIFFormatter creates a SARIF formatter writing to stdout.
func NewSARIFFormatter(opts *OutputOptions) *SARIFFormatter {
	if opts == nil {
		opts = NewDefaultOptions()
	}
	return &SARIFFormatter{writer: os.Stdout, options: opts}
}

// NewSARIFFormatterWithWriter creates a formatter with a custom writer (for testing).
func NewSARIFFormatterWithWriter(w io.Writer, opts *OutputOptions) *SARIFFormatter {
	sf := NewSARIFFormatter(opts)
	sf.writer = w
	return sf
}

const ruleLowConfidenceCall = "low-confidence-call"
const ruleDynamicDispatch = "dynamic-dispatch"

// Format emits one SARIF run covering every file's method calls. Two rules
// are registered: a low-confidence-resolution warning for any call scoring
// below 0.5, and a dynamic-dispatch note for virtual/interface calls with
// more than one possible target.
func (f *SARIFFormatter) Format(files []model.EnrichedFileAnalysis) error {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return err
	}

	run := sarif.NewRunWithInformationURI("polyglot-callgraph", "https://github.com/codepathfinder/polyglot-callgraph")
	run.AddRule(ruleLowConfidenceCall).
		WithDescription("A call site whose target resolution has confidence below 0.5.").
		WithName("Low confidence call resolution").
		WithDefaultConfiguration(sarif.NewReportingConfiguration().WithLevel("warning"))
	run.AddRule(ruleDynamicDispatch).
		WithDescription("A method call with more than one possible runtime target.").
		WithName("Dynamic dispatch").
		WithDefaultConfiguration(sarif.NewReportingConfiguration().WithLevel("note"))

	for _, file := range files {
		f.addFileResults(file, run)
	}

	report.AddRun(run)

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func (f *SARIFFormatter) addFileResults(file model.EnrichedFileAnalysis, run *sarif.Run) {
	for _, fc := range file.FunctionCalls {
		if fc.Confidence < 0.5 {
			f.addResult(run, ruleLowConfidenceCall,
				fmt.Sprintf("function call %q resolved with confidence %.2f", fc.FunctionName, fc.Confidence),
				file.FilePath, fc.Location)
		}
	}
	for _, mc := range file.MethodCalls {
		if mc.Confidence < 0.5 {
			f.addResult(run, ruleLowConfidenceCall,
				fmt.Sprintf("method call %q resolved with confidence %.2f", mc.MethodName, mc.Confidence),
				file.FilePath, mc.Location)
		}
		if mc.IsVirtualCall && len(mc.PossibleTargets) > 1 {
			f.addResult(run, ruleDynamicDispatch,
				fmt.Sprintf("call to %q may dispatch to %d targets", mc.MethodName, len(mc.PossibleTargets)),
				file.FilePath, mc.Location)
		}
	}
}

func (f *SARIFFormatter) addResult(run *sarif.Run, ruleID, message, filePath string, loc model.Location) {
	result := run.CreateResultForRule(ruleID).WithMessage(sarif.NewTextMessage(message))

	region := sarif.NewRegion().WithStartLine(loc.Start.Line + 1)
	if loc.Start.Column > 0 {
		region.WithStartColumn(loc.Start.Column + 1)
	}

	location := sarif.NewLocation().WithPhysicalLocation(
		sarif.NewPhysicalLocation().
			WithArtifactLocation(sarif.NewArtifactLocation().WithUri(filePath)).
			WithRegion(region),
	)
	result.AddLocation(location)
}
