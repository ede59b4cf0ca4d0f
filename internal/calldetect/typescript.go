package calldetect

import (
	"github.com/codepathfinder/polyglot-callgraph/internal/ast"
	"github.com/codepathfinder/polyglot-callgraph/model"
)

// enhanceTSMethodCall extracts `type_arguments` (e.g. `service.get<User>()`)
// verbatim as an ordered list and attaches it to the call (spec §4.3.2). No
// separate detectors — TypeScript otherwise shares every JS bespoke rule.
func enhanceTSMethodCall(mc *model.MethodCallInfo, call ast.Node, source []byte) {
	typeArgs := call.ChildByFieldName("type_arguments")
	if typeArgs == nil {
		return
	}
	for i := 0; i < typeArgs.ChildCount(); i++ {
		c := typeArgs.Child(i)
		if c == nil {
			continue
		}
		switch c.Type() {
		case ",", "<", ">":
			continue
		default:
			mc.TypeArguments = append(mc.TypeArguments, ast.Text(c, source))
		}
	}
}
