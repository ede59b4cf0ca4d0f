package calldetect

import (
	"strings"

	"github.com/codepathfinder/polyglot-callgraph/internal/ast"
	"github.com/codepathfinder/polyglot-callgraph/internal/langconfig"
	"github.com/codepathfinder/polyglot-callgraph/model"
)

// enhanceRustMethodCall detects UFCS trait-qualified calls, turbofish type
// parameters, unsafe blocks, enclosing trait impls, and reference prefixes
// on the receiver (spec §4.3.4).
func enhanceRustMethodCall(cfg *langconfig.Config, mc *model.MethodCallInfo, call, callee ast.Node, source []byte) {
	scopedNode := callee
	if callee.Type() == "generic_function" {
		mc.TurbofishTypes = extractTurbofish(callee, source)
		if inner := callee.ChildByFieldName("function"); inner != nil {
			scopedNode = inner
		}
	}

	if scopedNode.Type() == "scoped_identifier" {
		if path := scopedNode.ChildByFieldName("path"); path != nil && path.Type() == "bracketed_type" {
			// `<Type as Trait>::method` — parse the textual "<TYPE as
			// TRAIT>" form directly, since the grammar nests it as a
			// qualified_type inside the bracketed path.
			implType, traitName := parseUFCS(ast.Text(path, source))
			mc.ImplType = implType
			mc.TraitImpl = traitName
			mc.IsStaticMethod = true
		}
	}

	for p := call.Parent(); p != nil; p = p.Parent() {
		if p.Type() == "unsafe_block" {
			mc.IsUnsafe = true
			break
		}
	}

	for p := call.Parent(); p != nil; p = p.Parent() {
		if p.Type() == "impl_item" {
			if traitField := p.ChildByFieldName("trait"); traitField != nil {
				mc.TraitImpl = ast.Text(traitField, source)
				if typeField := p.ChildByFieldName("type"); typeField != nil {
					mc.ImplType = ast.Text(typeField, source)
				}
			}
			break
		}
	}

	text := mc.Receiver
	if strings.HasPrefix(text, "&mut ") {
		mc.IsRefMethod = true
		mc.IsMutRef = true
	} else if strings.HasPrefix(text, "&") {
		mc.IsRefMethod = true
	}
}

// parseUFCS splits the textual form "<TYPE as TRAIT>" (the bracketed_type
// span, angle brackets included) into (TYPE, TRAIT).
func parseUFCS(bracketed string) (implType, traitName string) {
	inner := strings.TrimSuffix(strings.TrimPrefix(bracketed, "<"), ">")
	parts := strings.SplitN(inner, " as ", 2)
	if len(parts) != 2 {
		return strings.TrimSpace(inner), ""
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
}

// extractTurbofish splits a generic_function's type_arguments on commas,
// preserving lifetime parameters like 'a.
func extractTurbofish(callee ast.Node, source []byte) []string {
	typeArgs := callee.ChildByFieldName("type_arguments")
	if typeArgs == nil {
		return nil
	}
	var out []string
	for i := 0; i < typeArgs.ChildCount(); i++ {
		c := typeArgs.Child(i)
		if c == nil {
			continue
		}
		switch c.Type() {
		case ",", "<", ">":
			continue
		default:
			out = append(out, ast.Text(c, source))
		}
	}
	return out
}
