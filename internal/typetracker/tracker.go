// Package typetracker implements the per-file Type Tracker (spec §4.4): a
// position-sorted history of variable→type bindings that the Receiver-Type
// Resolver (internal/receiver) consults to answer "what type was this name
// bound to as of this call site."
package typetracker

import (
	"sort"

	"github.com/codepathfinder/polyglot-callgraph/model"
)

// ImportedClass records what a local name resolves to when it was brought
// in via an import statement.
type ImportedClass struct {
	LocalName    string
	SourceModule string
	ImportedName string
}

// Tracker holds one file's (or one local scope's) binding history. A scope
// may be layered over a parent tracker: lookups that miss locally fall
// through to the parent (§4.4, "A local scope may be layered over a file
// tracker").
type Tracker struct {
	parent *Tracker

	bindings map[string][]model.TypeInfo
	imported map[string]ImportedClass
	exported map[string]bool
}

// New creates a root (file-level) tracker with no parent.
func New() *Tracker {
	return &Tracker{
		bindings: make(map[string][]model.TypeInfo),
		imported: make(map[string]ImportedClass),
		exported: make(map[string]bool),
	}
}

// NewScope creates a child tracker layered over parent.
func NewScope(parent *Tracker) *Tracker {
	return &Tracker{
		parent:   parent,
		bindings: make(map[string][]model.TypeInfo),
		imported: make(map[string]ImportedClass),
		exported: make(map[string]bool),
	}
}

// SetVariableType appends a binding and re-sorts that name's history by
// (line, column) so GetVariableType can find the binding nearest a position
// without a linear scan.
func (t *Tracker) SetVariableType(info model.TypeInfo) {
	list := append(t.bindings[info.VariableName], info)
	sort.Slice(list, func(i, j int) bool {
		return list[i].Position.Less(list[j].Position)
	})
	t.bindings[info.VariableName] = list
}

// GetVariableType returns the most recent binding for name whose position is
// ≤ pos, checking the local scope first and falling through to the parent.
// A pos with a negative Line, such as LatestPosition, returns the latest
// binding.
func (t *Tracker) GetVariableType(name string, pos model.Position) (model.TypeInfo, bool) {
	if info, ok := t.lookupLocal(name, pos); ok {
		return info, true
	}
	if t.parent != nil {
		return t.parent.GetVariableType(name, pos)
	}
	return model.TypeInfo{}, false
}

func (t *Tracker) lookupLocal(name string, pos model.Position) (model.TypeInfo, bool) {
	list := t.bindings[name]
	if len(list) == 0 {
		return model.TypeInfo{}, false
	}
	if pos.Line < 0 {
		return list[len(list)-1], true
	}
	// list is sorted ascending; find the last entry with Position <= pos.
	idx := sort.Search(len(list), func(i int) bool {
		return pos.Less(list[i].Position)
	})
	if idx == 0 {
		return model.TypeInfo{}, false
	}
	return list[idx-1], true
}

// LatestPosition is used by callers that want "the latest binding" without
// constraining by call-site position (§4.4, get_variable_type with no pos).
var LatestPosition = model.Position{Line: -1, Column: -1}

// SetImportedClass records a local name's module-qualified origin.
func (t *Tracker) SetImportedClass(local string, info ImportedClass) {
	t.imported[local] = info
}

// GetImportedClass resolves local through the scope chain.
func (t *Tracker) GetImportedClass(local string) (ImportedClass, bool) {
	if info, ok := t.imported[local]; ok {
		return info, true
	}
	if t.parent != nil {
		return t.parent.GetImportedClass(local)
	}
	return ImportedClass{}, false
}

// MarkAsExported records name as part of this file's public surface.
func (t *Tracker) MarkAsExported(name string) {
	t.exported[name] = true
}

// IsExported reports whether name was marked exported in this scope chain.
func (t *Tracker) IsExported(name string) bool {
	if t.exported[name] {
		return true
	}
	if t.parent != nil {
		return t.parent.IsExported(name)
	}
	return false
}

// Snapshot returns an immutable copy safe to share across concurrent tasks
// (§4.4, "immutable variant for safe sharing"). Mutations to the returned
// tracker's own scopes are still possible (NewScope layers over it without
// touching its maps), but its existing bindings are copied, not aliased.
func (t *Tracker) Snapshot() *Tracker {
	clone := &Tracker{
		bindings: make(map[string][]model.TypeInfo, len(t.bindings)),
		imported: make(map[string]ImportedClass, len(t.imported)),
		exported: make(map[string]bool, len(t.exported)),
	}
	for k, v := range t.bindings {
		cp := make([]model.TypeInfo, len(v))
		copy(cp, v)
		clone.bindings[k] = cp
	}
	for k, v := range t.imported {
		clone.imported[k] = v
	}
	for k, v := range t.exported {
		clone.exported[k] = v
	}
	if t.parent != nil {
		clone.parent = t.parent.Snapshot()
	}
	return clone
}
