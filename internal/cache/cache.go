// Package cache wraps github.com/hashicorp/golang-lru/v2 to memoize the
// global-assembly phase's repeated hierarchy queries — MRO linearization
// results and transitive-subclass BFS (possible_targets) are each looked up
// once per call site in the enrichment pass, but recomputing them per call
// would repeat the same graph walk for every call into a popular class.
// Grounded on the teacher's stdlib_registry caching pattern.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/codepathfinder/polyglot-callgraph/internal/methodresolve"
	"github.com/codepathfinder/polyglot-callgraph/model"
)

const defaultSize = 4096

// ResolutionCache memoizes methodresolve.Resolve and
// methodresolve.AnalyzeVirtualCall results for a single global-assembly run.
// It must be built fresh per run: the hierarchy is only valid for the
// lifetime of one analysis (§5, "ClassHierarchy is build-only... then
// frozen for enrichment").
type ResolutionCache struct {
	resolutions *lru.Cache[resolveKey, methodresolve.Resolution]
	virtualCalls *lru.Cache[resolveKey, methodresolve.VirtualCallResult]
}

type resolveKey struct {
	class  model.SymbolID
	method string
}

// New builds a ResolutionCache sized for a typical single-run workload.
func New() *ResolutionCache {
	resolutions, _ := lru.New[resolveKey, methodresolve.Resolution](defaultSize)
	virtualCalls, _ := lru.New[resolveKey, methodresolve.VirtualCallResult](defaultSize)
	return &ResolutionCache{resolutions: resolutions, virtualCalls: virtualCalls}
}

// Resolve returns the memoized methodresolve.Resolve result for (class,
// method), computing and storing it on a miss.
func (c *ResolutionCache) Resolve(h *model.ClassHierarchy, class model.SymbolID, method string) methodresolve.Resolution {
	key := resolveKey{class, method}
	if v, ok := c.resolutions.Get(key); ok {
		return v
	}
	v := methodresolve.Resolve(h, class, method)
	c.resolutions.Add(key, v)
	return v
}

// AnalyzeVirtualCall returns the memoized virtual-call analysis for
// (receiverType, method), computing and storing it on a miss.
func (c *ResolutionCache) AnalyzeVirtualCall(h *model.ClassHierarchy, receiverType model.SymbolID, method string) methodresolve.VirtualCallResult {
	key := resolveKey{receiverType, method}
	if v, ok := c.virtualCalls.Get(key); ok {
		return v
	}
	v := methodresolve.AnalyzeVirtualCall(h, receiverType, method)
	c.virtualCalls.Add(key, v)
	return v
}
