// Package enrich implements the global Call Enricher (spec §4.8): given the
// frozen ClassHierarchy and each file's per-file calls plus its ModuleGraph
// entry, it produces EnrichedFunctionCall/EnrichedMethodCall/
// EnrichedConstructorCall records carrying resolution results, dispatch
// classification, and confidence scores.
package enrich

import (
	"strings"

	"github.com/codepathfinder/polyglot-callgraph/internal/cache"
	"github.com/codepathfinder/polyglot-callgraph/internal/methodresolve"
	"github.com/codepathfinder/polyglot-callgraph/model"
)

// Enricher produces enriched calls against a frozen hierarchy and module
// graph. A single Enricher is safe for concurrent use across files once the
// hierarchy is frozen (§5, "enrichment pass... is parallelizable").
type Enricher struct {
	hierarchy   *model.ClassHierarchy
	modules     *model.ModuleGraph
	resolutions *cache.ResolutionCache
	// generics maps "<file_path>#<class_name>" to its resolved generic type
	// arguments, when known from an earlier binding pass.
	generics map[string][]string
}

// New builds an Enricher over a frozen hierarchy and module graph.
func New(hierarchy *model.ClassHierarchy, modules *model.ModuleGraph, generics map[string][]string) *Enricher {
	return &Enricher{
		hierarchy:   hierarchy,
		modules:     modules,
		resolutions: cache.New(),
		generics:    generics,
	}
}

// EnrichFunctionCall implements §4.8's function-call rule.
func (e *Enricher) EnrichFunctionCall(filePath string, call model.FunctionCallInfo) model.EnrichedFunctionCall {
	enriched := model.EnrichedFunctionCall{FunctionCallInfo: call}

	resolvedModule := filePath
	isImported := false
	if fg, ok := e.modules.Files[filePath]; ok && fg != nil {
		for _, imp := range fg.Imports {
			if imp.LocalName == call.FunctionName {
				resolvedModule = imp.SourceModule
				isImported = true
				break
			}
		}
	}
	enriched.ResolvedFunction = model.NormalizeModulePath(resolvedModule) + "#" + call.FunctionName
	enriched.IsImported = isImported

	confidence := 0.5 // resolved: a record always names a callable
	if isImported {
		confidence += 0.3
	}
	if enriched.ReturnType != "" {
		confidence += 0.2
	}
	enriched.Confidence = clamp01(confidence)

	return enriched
}

// EnrichMethodCall implements §4.8's method-call rule: run the
// Method-Hierarchy Resolver, classify dispatch_type, and score confidence.
func (e *Enricher) EnrichMethodCall(call model.MethodCallInfo) model.EnrichedMethodCall {
	enriched := model.EnrichedMethodCall{MethodCallInfo: call}

	receiverResolved := call.ReceiverType != ""
	var receiverClassID model.SymbolID
	classInHierarchy := false
	if receiverResolved {
		receiverClassID = findClassByName(e.hierarchy, call.ReceiverType)
		_, classInHierarchy = e.hierarchy.Get(receiverClassID)
	}

	var res methodresolve.Resolution
	var vcall methodresolve.VirtualCallResult
	definingFound := false
	if classInHierarchy {
		res = e.resolutions.Resolve(e.hierarchy, receiverClassID, call.MethodName)
		definingFound = res.Found
		if definingFound {
			vcall = e.resolutions.AnalyzeVirtualCall(e.hierarchy, receiverClassID, call.MethodName)
		}
	}

	enriched.DefiningClass = res.DefiningClass
	enriched.IsOverride = res.IsOverride
	enriched.OverrideChain = res.OverrideChain
	enriched.IsInterfaceMethod = res.IsInterfaceMethod
	enriched.PossibleTargets = vcall.PossibleTargets
	enriched.IsVirtualCall = vcall.IsVirtual

	switch {
	case len(vcall.PossibleTargets) == 0:
		enriched.DispatchType = model.DispatchDynamic
	case len(vcall.PossibleTargets) == 1:
		enriched.DispatchType = model.DispatchStatic
	default:
		if anyTargetNamesInterfaceOrTrait(e.hierarchy, vcall.PossibleTargets) {
			enriched.DispatchType = model.DispatchInterface
		} else {
			enriched.DispatchType = model.DispatchVirtual
		}
	}

	confidence := 0.0
	if receiverResolved {
		confidence += 0.3
	}
	if classInHierarchy {
		confidence += 0.3
	}
	if definingFound {
		confidence += 0.3
	}
	if len(vcall.PossibleTargets) == 1 {
		confidence += 0.1
	}
	enriched.Confidence = clamp01(confidence)

	return enriched
}

// EnrichConstructorCall implements §4.8's constructor-call rule: reject
// abstract classes, attach resolved generic type arguments when known.
func (e *Enricher) EnrichConstructorCall(filePath string, call model.ConstructorCallInfo) model.EnrichedConstructorCall {
	enriched := model.EnrichedConstructorCall{ConstructorCallInfo: call, IsValid: true}

	classID := model.NewSymbolID(filePath, call.ClassName)
	if node, ok := e.hierarchy.Get(classID); ok && node.Definition.Flags.IsAbstract {
		enriched.IsAbstract = true
		enriched.IsValid = false
	}

	key := model.NormalizeModulePath(filePath) + "#" + call.ClassName
	if args, ok := e.generics[key]; ok {
		enriched.ResolvedGenerics = args
	}

	return enriched
}

// DispatchProbability implements the admitted-placeholder depth heuristic:
// max(0.1, 1.0 - 0.2*depth), where depth is the target's base-class count
// (§4.8, §9 Open Questions).
func DispatchProbability(h *model.ClassHierarchy, target model.SymbolID) float64 {
	depth := methodresolve.DispatchDepth(h, target)
	p := 1.0 - 0.2*float64(depth)
	if p < 0.1 {
		return 0.1
	}
	return p
}

func clamp01(v float64) float64 {
	if v > 1.0 {
		return 1.0
	}
	if v < 0.0 {
		return 0.0
	}
	return v
}

// findClassByName resolves a bare type name (as returned by the receiver
// resolver, which has no file context) to a SymbolID by linear scan over
// the hierarchy. Same-name collisions across files resolve to the first
// match found; exact cross-file disambiguation needs the ModuleGraph import
// chain, out of scope for this lookup.
func findClassByName(h *model.ClassHierarchy, name string) model.SymbolID {
	for id, node := range h.Nodes {
		if node.Definition.Name == name {
			return id
		}
	}
	return model.SymbolID(name)
}

// anyTargetNamesInterfaceOrTrait implements the admitted textual-substring
// heuristic from §9 Open Questions ("class.includes('interface')"),
// preferring the definition's explicit IsInterface/IsTrait flag first.
func anyTargetNamesInterfaceOrTrait(h *model.ClassHierarchy, targets []model.SymbolID) bool {
	for _, id := range targets {
		if h.IsInterface(id) {
			return true
		}
		node, ok := h.Nodes[id]
		if !ok {
			continue
		}
		if node.Definition.Flags.IsInterface || node.Definition.Flags.IsTrait {
			return true
		}
		name := strings.ToLower(node.Definition.Name)
		if strings.Contains(name, "interface") || strings.Contains(name, "trait") {
			return true
		}
	}
	return false
}
