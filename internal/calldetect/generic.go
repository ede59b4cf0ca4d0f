// Package calldetect implements the Method-Call Detector (spec §4.3): for
// each file it walks the AST once and emits every FunctionCallInfo,
// MethodCallInfo and ConstructorCallInfo, with best-effort receiver-type
// assignment via internal/receiver.
//
// As with classdetect, the generic walk carries the ~85% every language
// shares; javascript.go/typescript.go/python.go/rust.go hold the bespoke
// detectors and enhancers for the rest (§4.3.1-§4.3.4).
package calldetect

import (
	"github.com/codepathfinder/polyglot-callgraph/internal/ast"
	"github.com/codepathfinder/polyglot-callgraph/internal/langconfig"
	"github.com/codepathfinder/polyglot-callgraph/internal/receiver"
	"github.com/codepathfinder/polyglot-callgraph/internal/registry"
	"github.com/codepathfinder/polyglot-callgraph/internal/typetracker"
	"github.com/codepathfinder/polyglot-callgraph/model"
)

// Result bundles the three call-info slices a file produces, in AST
// pre-order (§5, Ordering).
type Result struct {
	FunctionCalls    []*model.FunctionCallInfo
	MethodCalls      []*model.MethodCallInfo
	ConstructorCalls []*model.ConstructorCallInfo
}

// Detector extracts call sites from a single file's AST.
type Detector struct {
	Table    *langconfig.Table
	Registry *registry.Registry
}

// NewDetector builds a Detector over the given configuration table, backed
// by the default well-known-receiver registry.
func NewDetector(table *langconfig.Table) *Detector {
	return &Detector{Table: table, Registry: registry.New()}
}

// Detect walks root, classifying every configured call-expression node as a
// function, method or constructor call. knownClasses is the set of class
// names defined in this file (from classdetect), used to recognize
// `Foo(...)`-shaped constructor calls in languages with no `new` keyword.
func (d *Detector) Detect(lang model.Language, filePath string, root ast.Node, source []byte, tracker *typetracker.Tracker, knownClasses map[string]bool) Result {
	var result Result
	cfg := d.Table.Get(lang)
	if cfg == nil || root == nil {
		return result
	}

	ast.Walk(root, func(n ast.Node) {
		if lang == model.LangJavaScript || lang == model.LangTypeScript {
			if n.Type() == "new_expression" {
				if ctor := extractNewExpression(cfg, n, source, filePath, lang); ctor != nil {
					result.ConstructorCalls = append(result.ConstructorCalls, ctor)
				}
				return
			}
		}
		if !isOneOf(n.Type(), cfg.CallExpressionTypes) {
			return
		}
		callee := n.ChildByFieldName("function")
		if callee == nil {
			callee = n.ChildByFieldName("callee")
		}
		if callee == nil {
			return
		}

		// A Rust generic_function wraps the real callee as its "function"
		// child and carries turbofish type parameters alongside it
		// (f::<T>(), Type::method::<T>()); unwrap to classify the wrapped
		// expression, while the bespoke enhancer below still sees the
		// original generic_function node to extract the turbofish.
		memberNode := effectiveMemberNode(callee)

		if isMemberAccess(cfg, memberNode) {
			if mc := extractMethodCall(cfg, d.Registry, lang, n, memberNode, source, tracker, filePath); mc != nil {
				applyBespokeMethodEnhancers(lang, cfg, mc, n, callee, source, tracker)
				result.MethodCalls = append(result.MethodCalls, mc)
				return
			}
			// The member-access node didn't yield a method name (e.g. a
			// malformed or unrecognized shape) — fall through to
			// function/constructor classification below instead of
			// silently dropping the call site.
		}

		name := ast.Text(memberNode, source)
		if knownClasses[name] || (cfg.UppercaseIsStatic && isCapitalized(name) && lang != model.LangJavaScript && lang != model.LangTypeScript) {
			result.ConstructorCalls = append(result.ConstructorCalls, &model.ConstructorCallInfo{
				CallBase:  callBase(cfg, lang, n, source, filePath),
				ClassName: name,
			})
			return
		}

		fc := &model.FunctionCallInfo{
			CallBase:     callBase(cfg, lang, n, source, filePath),
			FunctionName: name,
		}
		result.FunctionCalls = append(result.FunctionCalls, fc)
	})

	return result
}

func isMemberAccess(cfg *langconfig.Config, n ast.Node) bool {
	return isOneOf(n.Type(), cfg.MemberAccess.NodeTypes)
}

// effectiveMemberNode unwraps a Rust generic_function down to the callee it
// wraps (a plain identifier, a field_expression, or a scoped_identifier),
// since turbofish type parameters can attach to any of those shapes and the
// generic_function node itself carries no receiver/method pair of its own.
func effectiveMemberNode(n ast.Node) ast.Node {
	for n.Type() == "generic_function" {
		inner := n.ChildByFieldName("function")
		if inner == nil {
			break
		}
		n = inner
	}
	return n
}

func isOneOf(s string, set []string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

func isCapitalized(s string) bool {
	if s == "" {
		return false
	}
	r := s[0]
	return r >= 'A' && r <= 'Z'
}

// callBase builds the fields common to every call kind: caller, location,
// argument count.
func callBase(cfg *langconfig.Config, lang model.Language, call ast.Node, source []byte, filePath string) model.CallBase {
	return model.CallBase{
		CallerName:     enclosingCallerName(lang, call, source),
		Location:       ast.Location(call, filePath),
		FilePath:       filePath,
		ArgumentsCount: countArguments(cfg, call, source),
	}
}

// countArguments counts top-level argument expressions, excluding
// punctuation and comments (the configured ArgumentSkipTokens) and, for
// Python, a leading self/cls if one was actually passed.
func countArguments(cfg *langconfig.Config, call ast.Node, source []byte) int {
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return 0
	}
	count := 0
	first := true
	for i := 0; i < args.ChildCount(); i++ {
		c := args.Child(i)
		if c == nil || isOneOf(c.Type(), cfg.ArgumentSkipTokens) {
			continue
		}
		if first && cfg.Language == model.LangPython && isOneOf(ast.Text(c, source), cfg.SelfKeywords) {
			first = false
			continue
		}
		first = false
		count++
	}
	return count
}

// extractMethodCall builds a MethodCallInfo from a call whose callee is a
// member-access node.
func extractMethodCall(cfg *langconfig.Config, reg *registry.Registry, lang model.Language, call, callee ast.Node, source []byte, tracker *typetracker.Tracker, filePath string) *model.MethodCallInfo {
	receiverField, methodField := cfg.MemberAccess.FieldsFor(callee.Type())
	receiverNode := callee.ChildByFieldName(receiverField)
	methodNode := callee.ChildByFieldName(methodField)
	if methodNode == nil {
		return nil
	}

	mc := &model.MethodCallInfo{
		CallBase:   callBase(cfg, lang, call, source, filePath),
		MethodName: ast.Text(methodNode, source),
	}
	if receiverNode != nil {
		mc.Receiver = ast.Text(receiverNode, source)
		mc.IsChainedCall = isOneOf(receiverNode.Type(), cfg.CallExpressionTypes)
		if t, ok := receiver.Resolve(cfg, reg, tracker, receiverNode, source, call.StartPosition()); ok {
			mc.ReceiverType = t
		}
	}

	mc.IsStaticMethod = isOneOf(mc.Receiver, cfg.StaticReceiverLiterals) ||
		(cfg.UppercaseIsStatic && isCapitalized(mc.Receiver)) ||
		callee.Type() == "scoped_identifier"

	return mc
}

// extractNewExpression builds a ConstructorCallInfo from a JS/TS
// new_expression node.
func extractNewExpression(cfg *langconfig.Config, n ast.Node, source []byte, filePath string, lang model.Language) *model.ConstructorCallInfo {
	ctorNode := n.ChildByFieldName("constructor")
	if ctorNode == nil {
		return nil
	}
	return &model.ConstructorCallInfo{
		CallBase:  callBase(cfg, lang, n, source, filePath),
		ClassName: ast.Text(ctorNode, source),
	}
}

// functionLikeTypes per language, used by enclosingCallerName.
var functionLikeTypes = map[model.Language][]string{
	model.LangJavaScript: {"function_declaration", "function_expression", "generator_function_declaration", "generator_function", "arrow_function", "method_definition"},
	model.LangTypeScript: {"function_declaration", "function_expression", "generator_function_declaration", "generator_function", "arrow_function", "method_definition", "method_signature"},
	model.LangPython:     {"function_definition"},
	model.LangRust:       {"function_item", "closure_expression"},
}

var classLikeTypes = map[model.Language][]string{
	model.LangJavaScript: {"class_declaration", "class"},
	model.LangTypeScript: {"class_declaration", "class", "abstract_class_declaration", "interface_declaration"},
	model.LangPython:     {"class_definition"},
	model.LangRust:       {"impl_item"},
}

// enclosingCallerName resolves the nearest enclosing function/method name,
// qualified by class when the function is a method, else "<module>" at top
// level or "<anonymous>" for an unnamed closure (§4.3 step 4).
func enclosingCallerName(lang model.Language, n ast.Node, source []byte) string {
	funcTypes := functionLikeTypes[lang]
	classTypes := classLikeTypes[lang]

	var fn ast.Node
	for p := n.Parent(); p != nil; p = p.Parent() {
		if isOneOf(p.Type(), funcTypes) {
			fn = p
			break
		}
	}
	if fn == nil {
		return "<module>"
	}

	name := functionName(fn, source)
	className := ""
	for p := fn.Parent(); p != nil; p = p.Parent() {
		if isOneOf(p.Type(), classTypes) {
			className = classOwnerName(p, source)
			break
		}
	}

	if name == "" {
		name = "<anonymous>"
	}
	if className != "" {
		return className + "." + name
	}
	return name
}

func functionName(fn ast.Node, source []byte) string {
	if nameNode := fn.ChildByFieldName("name"); nameNode != nil {
		return ast.Text(nameNode, source)
	}
	if p := fn.Parent(); p != nil {
		switch p.Type() {
		case "variable_declarator":
			if id := p.ChildByFieldName("name"); id != nil {
				return ast.Text(id, source)
			}
		case "assignment_expression":
			if left := p.ChildByFieldName("left"); left != nil {
				return ast.Text(left, source)
			}
		case "pair":
			if key := p.ChildByFieldName("key"); key != nil {
				return ast.Text(key, source)
			}
		}
	}
	return ""
}

func classOwnerName(n ast.Node, source []byte) string {
	if n.Type() == "impl_item" {
		if t := n.ChildByFieldName("type"); t != nil {
			return ast.Text(t, source)
		}
		return ""
	}
	if nameNode := n.ChildByFieldName("name"); nameNode != nil {
		return ast.Text(nameNode, source)
	}
	return ""
}

