package model

// ClassNode is a node of the global ClassHierarchy: a class definition plus
// the edges the hierarchy builder has computed for it. Back-edges
// (DerivedClasses) are stored as SymbolID lists, not owning references, so
// that a cyclic inheritance graph never forces an owning-reference cycle.
type ClassNode struct {
	Definition *ClassDefinition

	// BaseClasses are the SymbolIDs this class directly extends/implements,
	// in the same order as Definition.Extends/Implements. An entry that
	// could not be resolved to a known SymbolID is recorded verbatim
	// (§8 invariant: "recorded verbatim as unresolved externals").
	BaseClasses []SymbolID

	// DerivedClasses is the exact inverse of BaseClasses across the whole
	// hierarchy: every class that lists this node as a base.
	DerivedClasses []SymbolID

	// MRO is this class's method-resolution order: C3 linearization for
	// Python, parent-chain order for single-inheritance languages, and
	// [self, ...impls in declaration order] for Rust.
	MRO []SymbolID

	// Methods gives O(1) "does this class define method X" checks.
	Methods map[string]*MethodDefinition

	// ContributingFile records which file last (re-)inserted this node, so
	// a re-index can find and clear its own prior contributions first.
	ContributingFile string
}

// HasMethod reports whether this class directly defines a method by name.
func (n *ClassNode) HasMethod(name string) bool {
	_, ok := n.Methods[name]
	return ok
}

// ClassHierarchy is the global, mutation-heavy structure assembled by the
// Class Hierarchy Builder (§4.6) and frozen for the enrichment pass once
// assembly completes.
type ClassHierarchy struct {
	Nodes map[SymbolID]*ClassNode

	// InterfaceNodes records the interfaces/traits seen during per-file
	// extraction, keyed by each definition's own (file_path, name) SymbolID.
	// The entries are not re-resolved through the ModuleGraph's export table.
	InterfaceNodes map[SymbolID]bool
}

// NewClassHierarchy returns an empty, ready-to-populate hierarchy.
func NewClassHierarchy() *ClassHierarchy {
	return &ClassHierarchy{
		Nodes:          make(map[SymbolID]*ClassNode),
		InterfaceNodes: make(map[SymbolID]bool),
	}
}

// Get looks up a node by SymbolID.
func (h *ClassHierarchy) Get(id SymbolID) (*ClassNode, bool) {
	n, ok := h.Nodes[id]
	return n, ok
}

// IsInterface reports whether id was recorded as an interface/trait.
func (h *ClassHierarchy) IsInterface(id SymbolID) bool {
	return h.InterfaceNodes[id]
}
