package model

// TypeConfidence marks whether a TypeInfo binding came from an explicit
// annotation or was inferred from surrounding evidence.
type TypeConfidence string

const (
	ConfidenceExplicit TypeConfidence = "explicit"
	ConfidenceInferred TypeConfidence = "inferred"
)

// TypeSource records how a TypeInfo binding was established.
type TypeSource string

const (
	SourceAnnotation  TypeSource = "annotation"
	SourceConstructor TypeSource = "constructor"
	SourceLiteral     TypeSource = "literal"
	SourceParameter   TypeSource = "parameter"
)

// TypeInfo is one variable→type binding. Bindings for a given variable are
// kept as a position-sorted sequence so the effective type at a use site is
// the latest binding with position <= the use site (see typetracker).
type TypeInfo struct {
	VariableName string
	TypeName     string
	Position     Position
	Confidence   TypeConfidence
	Source       TypeSource
	IsImported   bool
}
