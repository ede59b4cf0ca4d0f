// Package receiver implements the Receiver-Type Resolver (spec §4.5): a
// pure function from a receiver AST node to a best-effort type name, backed
// by the file's Type Tracker and the language configuration table.
package receiver

import (
	"github.com/codepathfinder/polyglot-callgraph/internal/ast"
	"github.com/codepathfinder/polyglot-callgraph/internal/langconfig"
	"github.com/codepathfinder/polyglot-callgraph/internal/registry"
	"github.com/codepathfinder/polyglot-callgraph/internal/typetracker"
	"github.com/codepathfinder/polyglot-callgraph/model"
)

// Resolve returns the best-effort type name for receiver as of callSite, or
// ("", false) when none of the resolution steps apply. reg may be nil, in
// which case the registry step is skipped. Deterministic: same inputs
// always produce the same output.
func Resolve(cfg *langconfig.Config, reg *registry.Registry, tracker *typetracker.Tracker, receiver ast.Node, source []byte, callSite model.Position) (string, bool) {
	if cfg == nil || receiver == nil {
		return "", false
	}

	// Step 1: textual form in the type map.
	text := ast.Text(receiver, source)
	if tracker != nil && text != "" {
		if info, ok := tracker.GetVariableType(text, callSite); ok {
			return info.TypeName, true
		}
	}

	// Step 2: self/this/cls keyword, looked up under its own token again but
	// without the call-site position bound, so a self binding recorded after
	// the call site (which step 1 misses) still resolves to the latest one.
	if isOneOf(text, cfg.SelfKeywords) && tracker != nil {
		if info, ok := tracker.GetVariableType(text, typetracker.LatestPosition); ok {
			return info.TypeName, true
		}
	}

	// Step 3: well-known stdlib/builtin receiver identifier (e.g. "console",
	// "os", a bare "Array"), via the shared registry — tried before literal
	// node types since it's keyed on text rather than node shape.
	if reg != nil && text != "" {
		if t, ok := reg.StdlibReceiver(cfg.Language, text); ok {
			return t, true
		}
		if b, ok := reg.Builtin(cfg.Language, text); ok {
			return b.Name, true
		}
	}

	// Step 4: literal receiver.
	if name, ok := cfg.LiteralTypeNames[receiver.Type()]; ok {
		return name, true
	}

	// Step 5: chained call receiver — return-type inference is out of scope.
	if isCallExpression(cfg, receiver) {
		return "", false
	}

	// Step 6: member access receiver — recurse on its base, don't refine
	// beyond the base type.
	if isOneOf(receiver.Type(), cfg.MemberAccess.NodeTypes) {
		receiverField, _ := cfg.MemberAccess.FieldsFor(receiver.Type())
		if base := receiver.ChildByFieldName(receiverField); base != nil {
			return Resolve(cfg, reg, tracker, base, source, callSite)
		}
	}

	return "", false
}

func isCallExpression(cfg *langconfig.Config, n ast.Node) bool {
	return isOneOf(n.Type(), cfg.CallExpressionTypes)
}

func isOneOf(s string, set []string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
