package model

// Parameter is one formal parameter of a method or function. `self`/`cls`
// are filtered out before a Parameter is ever constructed for them.
type Parameter struct {
	Name         string
	Type         string // empty when no annotation is present
	IsOptional   bool
	IsRest       bool
	DefaultValue string // empty when there is none
}

// MethodFlags holds the boolean modifiers a method definition may carry.
type MethodFlags struct {
	IsStatic      bool
	IsAbstract    bool
	IsPrivate     bool
	IsProtected   bool
	IsConstructor bool
	IsAsync       bool
	IsOverride    bool
}

// MethodDefinition is a method, function, or constructor declared inside a
// class body (or, for languages like Rust, inside an impl block merged into
// a class by the hierarchy builder).
type MethodDefinition struct {
	Name     string
	Location Location

	Flags MethodFlags

	Parameters []Parameter
	ReturnType string
	Generics   []Generic
	Decorators []string

	// OverriddenBy is the set of classes further along the inheritance chain
	// that override this method. No pipeline phase calls MarkOverriddenBy, so
	// it stays nil in pipeline output; override information per call site is
	// carried by EnrichedMethodCall.IsOverride and OverrideChain.
	OverriddenBy map[SymbolID]bool
}

// MarkOverriddenBy records that the class identified by id overrides this
// method. Safe to call repeatedly; the set is idempotent.
func (m *MethodDefinition) MarkOverriddenBy(id SymbolID) {
	if m.OverriddenBy == nil {
		m.OverriddenBy = make(map[SymbolID]bool)
	}
	m.OverriddenBy[id] = true
}
