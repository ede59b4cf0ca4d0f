package hierarchy

import "github.com/codepathfinder/polyglot-callgraph/model"

// computeMRO computes id's method-resolution order: C3 linearization for
// Python (falling back to a depth-first parent-chain order when c3Linearize
// returns a CycleError, which is discarded unreported), parent-chain order for
// single-inheritance languages, and [self, ...trait impls in declaration
// order] for Rust (§4.6).
func computeMRO(h *model.ClassHierarchy, id model.SymbolID, node *model.ClassNode) []model.SymbolID {
	switch node.Definition.Language {
	case model.LangPython:
		mro, err := c3Linearize(h, id)
		if err != nil {
			return parentChainMRO(h, id)
		}
		return mro
	default:
		return parentChainMRO(h, id)
	}
}

// parentChainMRO walks BaseClasses depth-first, visiting each SymbolID at
// most once, producing [self, base1, base1's bases..., base2, ...]. This
// also serves Rust: BaseClasses there is exactly [inherent impl has no
// entry; trait impls in declaration order], so the walk naturally yields
// [self, ...impls in declaration order].
func parentChainMRO(h *model.ClassHierarchy, id model.SymbolID) []model.SymbolID {
	visited := make(map[model.SymbolID]bool)
	var order []model.SymbolID

	var visit func(model.SymbolID)
	visit = func(cur model.SymbolID) {
		if visited[cur] {
			return
		}
		visited[cur] = true
		order = append(order, cur)
		node, ok := h.Nodes[cur]
		if !ok {
			return
		}
		for _, base := range node.BaseClasses {
			visit(base)
		}
	}
	visit(id)
	return order
}

// c3Linearize computes the C3 linearization of id's ancestors: L[C] = C +
// merge(L[B1], L[B2], ..., [B1, B2, ...]) where B1..Bn are C's direct
// bases in declaration order. Returns an error when the merge cannot
// produce a consistent order (a base appears out of relative order across
// two parent linearizations) or when a cycle is detected.
func c3Linearize(h *model.ClassHierarchy, id model.SymbolID) ([]model.SymbolID, error) {
	return c3LinearizeVisiting(h, id, make(map[model.SymbolID]bool))
}

func c3LinearizeVisiting(h *model.ClassHierarchy, id model.SymbolID, onPath map[model.SymbolID]bool) ([]model.SymbolID, error) {
	if onPath[id] {
		return nil, &CycleError{Involved: []model.SymbolID{id}}
	}
	node, ok := h.Nodes[id]
	if !ok || len(node.BaseClasses) == 0 {
		return []model.SymbolID{id}, nil
	}

	onPath[id] = true
	defer delete(onPath, id)

	sequences := make([][]model.SymbolID, 0, len(node.BaseClasses)+1)
	for _, base := range node.BaseClasses {
		lin, err := c3LinearizeVisiting(h, base, onPath)
		if err != nil {
			return nil, err
		}
		sequences = append(sequences, lin)
	}
	sequences = append(sequences, append([]model.SymbolID{}, node.BaseClasses...))

	merged, err := c3Merge(sequences)
	if err != nil {
		return nil, err
	}
	return append([]model.SymbolID{id}, merged...), nil
}

// c3Merge implements the standard C3 merge: repeatedly take the head of the
// first list that does not appear in the tail of any other list.
func c3Merge(sequences [][]model.SymbolID) ([]model.SymbolID, error) {
	var result []model.SymbolID
	seqs := make([][]model.SymbolID, 0, len(sequences))
	for _, s := range sequences {
		if len(s) > 0 {
			seqs = append(seqs, append([]model.SymbolID{}, s...))
		}
	}

	for len(seqs) > 0 {
		var candidate model.SymbolID
		found := false
		for _, s := range seqs {
			head := s[0]
			if !inAnyTail(seqs, head) {
				candidate = head
				found = true
				break
			}
		}
		if !found {
			return nil, &CycleError{Involved: firstHeads(seqs)}
		}
		result = append(result, candidate)
		for i := range seqs {
			seqs[i] = removeFirstOccurrence(seqs[i], candidate)
		}
		seqs = compactNonEmpty(seqs)
	}
	return result, nil
}

func inAnyTail(seqs [][]model.SymbolID, target model.SymbolID) bool {
	for _, s := range seqs {
		for _, v := range s[1:] {
			if v == target {
				return true
			}
		}
	}
	return false
}

func removeFirstOccurrence(s []model.SymbolID, target model.SymbolID) []model.SymbolID {
	out := make([]model.SymbolID, 0, len(s))
	removed := false
	for _, v := range s {
		if !removed && v == target {
			removed = true
			continue
		}
		out = append(out, v)
	}
	return out
}

func compactNonEmpty(seqs [][]model.SymbolID) [][]model.SymbolID {
	out := seqs[:0]
	for _, s := range seqs {
		if len(s) > 0 {
			out = append(out, s)
		}
	}
	return out
}

func firstHeads(seqs [][]model.SymbolID) []model.SymbolID {
	out := make([]model.SymbolID, 0, len(seqs))
	for _, s := range seqs {
		if len(s) > 0 {
			out = append(out, s[0])
		}
	}
	return out
}
