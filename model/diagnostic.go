package model

import "github.com/google/uuid"

// DiagnosticSeverity classifies a Diagnostic per the error-handling design.
type DiagnosticSeverity string

const (
	SeverityInfo  DiagnosticSeverity = "info"
	SeverityWarn  DiagnosticSeverity = "warning"
	SeverityError DiagnosticSeverity = "error"
)

// DiagnosticKind names the category of problem, matching the categories the
// error-handling design distinguishes.
type DiagnosticKind string

const (
	KindMalformedInput    DiagnosticKind = "malformed_input"
	KindUnsupportedLang   DiagnosticKind = "unsupported_language"
	KindResolverFailure   DiagnosticKind = "resolver_failure"
	KindHierarchyCycle    DiagnosticKind = "hierarchy_cycle"
	KindMissingBodyScope  DiagnosticKind = "missing_body_scope"
)

// Diagnostic is a single entry on the out-of-band diagnostics channel. It is
// never injected into the EnrichedFileAnalysis record stream.
type Diagnostic struct {
	RunID    uuid.UUID
	Severity DiagnosticSeverity
	Kind     DiagnosticKind
	Message  string
	Location *Location
}
