package calldetect

import (
	"github.com/codepathfinder/polyglot-callgraph/internal/ast"
	"github.com/codepathfinder/polyglot-callgraph/internal/langconfig"
	"github.com/codepathfinder/polyglot-callgraph/internal/typetracker"
	"github.com/codepathfinder/polyglot-callgraph/model"
)

// enhancePythonMethodCall detects super() calls, dunder methods, and
// classmethod receivers (spec §4.3.3).
func enhancePythonMethodCall(cfg *langconfig.Config, mc *model.MethodCallInfo, call, callee ast.Node, source []byte, tracker *typetracker.Tracker) {
	receiverNode := callee.ChildByFieldName(cfg.MemberAccess.ReceiverField)
	if receiverNode != nil && isSuperCall(cfg, receiverNode, source) {
		mc.IsSuperCall = true
		mc.Receiver = "super()"
	}

	if isDunderMethod(mc.MethodName) {
		mc.IsMagicMethod = true
	}

	if mc.Receiver == "cls" {
		mc.IsClassmethod = true
		mc.IsStaticMethod = true
	}
}

// isSuperCall reports whether n is a `call` node whose callee is the bare
// identifier `super`.
func isSuperCall(cfg *langconfig.Config, n ast.Node, source []byte) bool {
	if !isOneOf(n.Type(), cfg.CallExpressionTypes) {
		return false
	}
	fn := n.ChildByFieldName("function")
	return fn != nil && ast.Text(fn, source) == "super"
}

// isDunderMethod reports both leading and trailing double underscores with
// total length ≥ 5 (e.g. "__init__", not "__x" alone).
func isDunderMethod(name string) bool {
	if len(name) < 5 {
		return false
	}
	return name[:2] == "__" && name[len(name)-2:] == "__"
}
