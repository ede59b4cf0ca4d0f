// Package diagnostics implements the out-of-band diagnostics channel (spec
// §7, §3a): errors and notable conditions encountered during analysis are
// collected here rather than injected into the record stream, so a result
// is always produced for every input file.
package diagnostics

import (
	"sync"

	"github.com/google/uuid"

	"github.com/codepathfinder/polyglot-callgraph/model"
)

// Sink collects Diagnostics across a single analysis run, safe for
// concurrent use from the per-file worker pool.
type Sink struct {
	runID uuid.UUID
	mu    sync.Mutex
	items []model.Diagnostic
}

// NewSink creates a Sink tagged with a fresh run identifier.
func NewSink() *Sink {
	return &Sink{runID: uuid.New()}
}

// RunID returns the identifier shared by every diagnostic this sink emits.
func (s *Sink) RunID() uuid.UUID {
	return s.runID
}

// Report appends a diagnostic, stamping it with this sink's run ID.
func (s *Sink) Report(severity model.DiagnosticSeverity, kind model.DiagnosticKind, message string, loc *model.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, model.Diagnostic{
		RunID:    s.runID,
		Severity: severity,
		Kind:     kind,
		Message:  message,
		Location: loc,
	})
}

// MalformedInput reports a best-effort-continue parse problem (§7).
func (s *Sink) MalformedInput(filePath, message string) {
	s.Report(model.SeverityWarn, model.KindMalformedInput, message, &model.Location{FilePath: filePath})
}

// UnsupportedLanguage reports a language outside the four supported
// grammars; the affected file's analysis is simply empty.
func (s *Sink) UnsupportedLanguage(filePath, lang string) {
	s.Report(model.SeverityInfo, model.KindUnsupportedLang, "unsupported language: "+lang, &model.Location{FilePath: filePath})
}

// HierarchyCycle reports a cycle detected during MRO computation or
// virtual-call traversal; the affected node is skipped, the rest of the
// hierarchy proceeds.
func (s *Sink) HierarchyCycle(message string, loc *model.Location) {
	s.Report(model.SeverityError, model.KindHierarchyCycle, message, loc)
}

// MissingBodyScope reports the hard-error case (§7): a definition whose
// body scope could not be paired, carrying the function's name and
// location.
func (s *Sink) MissingBodyScope(name string, loc *model.Location) {
	s.Report(model.SeverityError, model.KindMissingBodyScope, "missing body scope for "+name, loc)
}

// Diagnostics returns a snapshot of everything reported so far.
func (s *Sink) Diagnostics() []model.Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Diagnostic, len(s.items))
	copy(out, s.items)
	return out
}
