// Package methodresolve implements the global Method-Hierarchy Resolver
// (spec §4.7): for a (class, method) pair it computes the defining class,
// whether the method overrides an ancestor's, the override chain, and
// whether the method was satisfied via an interface/trait; it also answers
// virtual-call analysis queries (possible targets, is_virtual).
package methodresolve

import "github.com/codepathfinder/polyglot-callgraph/model"

// Resolution is the outcome of resolving a (class, method) pair.
type Resolution struct {
	DefiningClass     model.SymbolID
	IsOverride        bool
	OverrideChain     []model.SymbolID // ancestor -> subclass order
	IsInterfaceMethod bool
	Found             bool
}

// Resolve implements §4.7's algorithm. A cycle encountered while walking the
// MRO aborts resolution for this query only (§7): Found is false.
func Resolve(h *model.ClassHierarchy, class model.SymbolID, methodName string) Resolution {
	node, ok := h.Nodes[class]
	if !ok {
		return Resolution{}
	}

	mro := node.MRO
	if len(mro) == 0 {
		mro = []model.SymbolID{class}
	}

	visited := make(map[model.SymbolID]bool)
	var chain []model.SymbolID // classes (ancestor-to-subclass order once reversed) that define methodName

	for _, id := range mro {
		if visited[id] {
			return Resolution{} // cycle — treated as a hierarchy error, resolution absent
		}
		visited[id] = true

		n, ok := h.Nodes[id]
		if !ok {
			continue
		}
		if n.HasMethod(methodName) {
			chain = append(chain, id)
		}
	}

	if len(chain) == 0 {
		// No class in the MRO defines it — fall back to interfaces/traits
		// implemented anywhere along the MRO (test structure first, real
		// structure second: the hierarchy's explicit InterfaceNodes set is
		// authoritative; a node flagged IsInterface/IsTrait on its own
		// Definition is the fallback).
		for _, id := range mro {
			n, ok := h.Nodes[id]
			if !ok {
				continue
			}
			for _, baseID := range n.BaseClasses {
				if !isInterfaceID(h, baseID) {
					continue
				}
				if baseNode, ok := h.Nodes[baseID]; ok && baseNode.HasMethod(methodName) {
					return Resolution{
						DefiningClass:     baseID,
						IsInterfaceMethod: true,
						Found:             true,
					}
				}
			}
		}
		return Resolution{}
	}

	// chain[0] is nearest in MRO order (class itself, or first ancestor that
	// defines it); reverse for ancestor-to-subclass ordering.
	defining := chain[0]

	reversed := make([]model.SymbolID, len(chain))
	for i, id := range chain {
		reversed[len(chain)-1-i] = id
	}

	// Step 2a: the defining class may itself be the interface/trait (the
	// receiver resolved straight to an interface type, or a trait's own
	// method node was found via MRO) — that takes priority over walking its
	// bases.
	if isInterfaceID(h, defining) {
		return Resolution{
			DefiningClass:     defining,
			IsOverride:        len(chain) > 1,
			OverrideChain:     reversed,
			IsInterfaceMethod: true,
			Found:             true,
		}
	}

	// Step 2b: otherwise check the defining class's direct interfaces/traits
	// — an interface declaring the method takes priority and becomes the
	// defining class.
	if definingNode, ok := h.Nodes[defining]; ok {
		for _, baseID := range definingNode.BaseClasses {
			if isInterfaceID(h, baseID) {
				if baseNode, ok := h.Nodes[baseID]; ok && baseNode.HasMethod(methodName) {
					return Resolution{
						DefiningClass:     baseID,
						IsInterfaceMethod: true,
						Found:             true,
					}
				}
			}
		}
	}

	return Resolution{
		DefiningClass: defining,
		IsOverride:    len(chain) > 1,
		OverrideChain: reversed,
		Found:         true,
	}
}

func isInterfaceID(h *model.ClassHierarchy, id model.SymbolID) bool {
	if h.IsInterface(id) {
		return true
	}
	if n, ok := h.Nodes[id]; ok {
		return n.Definition.Flags.IsInterface || n.Definition.Flags.IsTrait
	}
	return false
}

// VirtualCallResult is the outcome of analyzing a virtual dispatch site.
type VirtualCallResult struct {
	PossibleTargets []model.SymbolID
	IsVirtual       bool
}

// AnalyzeVirtualCall computes possible_targets = {defining_class} ∪
// {subclass that redefines method}, traversing all transitive subclasses
// BFS with a visited set to tolerate cycles (§4.7).
func AnalyzeVirtualCall(h *model.ClassHierarchy, receiverType model.SymbolID, methodName string) VirtualCallResult {
	res := Resolve(h, receiverType, methodName)
	if !res.Found {
		return VirtualCallResult{}
	}

	targets := []model.SymbolID{res.DefiningClass}
	seenTargets := map[model.SymbolID]bool{res.DefiningClass: true}

	visited := make(map[model.SymbolID]bool)
	queue := []model.SymbolID{receiverType}
	visited[receiverType] = true

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		node, ok := h.Nodes[cur]
		if !ok {
			continue
		}
		if node.HasMethod(methodName) && !seenTargets[cur] {
			seenTargets[cur] = true
			targets = append(targets, cur)
		}
		for _, derived := range node.DerivedClasses {
			if !visited[derived] {
				visited[derived] = true
				queue = append(queue, derived)
			}
		}
	}

	return VirtualCallResult{
		PossibleTargets: targets,
		IsVirtual:       len(targets) > 1,
	}
}

// DispatchDepth returns the number of base classes recorded for target,
// used by the Call Enricher's dispatch-probability heuristic (§4.8).
func DispatchDepth(h *model.ClassHierarchy, target model.SymbolID) int {
	node, ok := h.Nodes[target]
	if !ok {
		return 0
	}
	return len(node.BaseClasses)
}
