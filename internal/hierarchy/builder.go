// Package hierarchy implements the global Class Hierarchy Builder (spec
// §4.6): it merges per-file ClassDefinitions into a single ClassHierarchy,
// computing base/derived edges and each class's method-resolution order.
//
// The hierarchy is an arena+index structure, not an owning-reference graph
// (design notes): nodes are keyed by SymbolID in a flat map, and every edge
// is a SymbolID list, so a cyclic inheritance graph never forces Go's
// garbage collector to reason about reference cycles, and every traversal
// here carries its own visited set.
package hierarchy

import (
	"fmt"

	"github.com/codepathfinder/polyglot-callgraph/model"
)

// CycleError describes an inheritance cycle or C3 inconsistency found during
// MRO computation. computeMRO does not pass it on or report it: the affected
// node gets a parent-chain MRO instead and the rest of the hierarchy proceeds.
type CycleError struct {
	Involved []model.SymbolID
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("hierarchy: inheritance cycle involving %v", e.Involved)
}

// Builder assembles a ClassHierarchy incrementally, file by file.
type Builder struct {
	hierarchy *model.ClassHierarchy
	// fileContributions tracks which SymbolIDs each file last inserted, so
	// a re-index can clear exactly those entries before re-inserting.
	fileContributions map[string]map[model.SymbolID]bool
}

// NewBuilder returns a Builder over a fresh, empty hierarchy.
func NewBuilder() *Builder {
	return &Builder{
		hierarchy:         model.NewClassHierarchy(),
		fileContributions: make(map[string]map[model.SymbolID]bool),
	}
}

// Hierarchy returns the hierarchy assembled so far.
func (b *Builder) Hierarchy() *model.ClassHierarchy {
	return b.hierarchy
}

// InsertFile merges one file's ClassDefinitions into the hierarchy. Calling
// InsertFile again for the same filePath first clears every node that file
// previously contributed (§4.6, "File re-index"), making the operation
// idempotent for a stable input (§8, "Hierarchy builder is idempotent on
// re-index of the same file with the same input").
func (b *Builder) InsertFile(filePath string, defs []*model.ClassDefinition) {
	b.clearFile(filePath)

	contributed := make(map[model.SymbolID]bool, len(defs))
	for _, def := range defs {
		id := def.SymbolID()
		node := &model.ClassNode{
			Definition:       def,
			Methods:          make(map[string]*model.MethodDefinition, len(def.Methods)),
			ContributingFile: filePath,
		}
		for _, m := range def.Methods {
			node.Methods[m.Name] = m
		}
		b.hierarchy.Nodes[id] = node
		contributed[id] = true

		if def.Flags.IsInterface || def.Flags.IsTrait {
			b.hierarchy.InterfaceNodes[id] = true
		}
	}
	b.fileContributions[filePath] = contributed

	b.relinkEdges()
}

// clearFile removes every node filePath previously inserted.
func (b *Builder) clearFile(filePath string) {
	prior, ok := b.fileContributions[filePath]
	if !ok {
		return
	}
	for id := range prior {
		delete(b.hierarchy.Nodes, id)
		delete(b.hierarchy.InterfaceNodes, id)
	}
	delete(b.fileContributions, filePath)
}

// baseEdge is one (subclass, base-name-as-written) pair gathered from a
// node's Extends/Implements before any name is resolved to a SymbolID.
type baseEdge struct {
	from     model.SymbolID
	baseName string
}

// relinkEdges recomputes BaseClasses/DerivedClasses across the whole
// hierarchy from each node's Definition.Extends/Implements. Unresolvable
// names are recorded verbatim as unresolved externals (§8), and also gain a
// minimal stub ClassNode so later lookups (HasMethod, IsInterface) against
// that SymbolID don't need a separate existence check at every call site.
//
// Edges are collected into a slice before any node is touched, rather than
// mutating hierarchy.Nodes while ranging over it, since stub-node creation
// below adds entries to that same map.
func (b *Builder) relinkEdges() {
	for _, node := range b.hierarchy.Nodes {
		node.BaseClasses = nil
		node.DerivedClasses = nil
	}

	var edges []baseEdge
	for id, node := range b.hierarchy.Nodes {
		for _, baseName := range node.Definition.Extends {
			edges = append(edges, baseEdge{id, baseName})
		}
		for _, baseName := range node.Definition.Implements {
			edges = append(edges, baseEdge{id, baseName})
		}
	}

	for _, e := range edges {
		node := b.hierarchy.Nodes[e.from]
		baseID := b.resolveBase(node.Definition.FilePath, e.baseName)
		node.BaseClasses = append(node.BaseClasses, baseID)

		baseNode, ok := b.hierarchy.Nodes[baseID]
		if !ok {
			baseNode = &model.ClassNode{
				Definition: &model.ClassDefinition{Name: e.baseName, FilePath: node.Definition.FilePath},
				Methods:    make(map[string]*model.MethodDefinition),
			}
			b.hierarchy.Nodes[baseID] = baseNode
		}
		baseNode.DerivedClasses = append(baseNode.DerivedClasses, e.from)
	}

	for id, node := range b.hierarchy.Nodes {
		node.MRO = computeMRO(b.hierarchy, id, node)
	}
}

// resolveBase looks for a class/interface named baseName anywhere in the
// hierarchy (same-file first, since that's the common case). It falls back
// to recording the bare name as an unresolved external SymbolID when no
// matching node exists. The ModuleGraph's export table is not consulted, so
// when several files define a class with that name, whichever one the map
// scan reaches first is chosen.
func (b *Builder) resolveBase(fromFile, baseName string) model.SymbolID {
	sameFile := model.NewSymbolID(fromFile, baseName)
	if _, ok := b.hierarchy.Nodes[sameFile]; ok {
		return sameFile
	}
	for id, node := range b.hierarchy.Nodes {
		if node.Definition.Name == baseName {
			return id
		}
	}
	return model.SymbolID(baseName)
}
