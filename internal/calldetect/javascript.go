package calldetect

import (
	"strings"

	"github.com/codepathfinder/polyglot-callgraph/internal/ast"
	"github.com/codepathfinder/polyglot-callgraph/internal/langconfig"
	"github.com/codepathfinder/polyglot-callgraph/model"
)

// enhanceJSMethodCall runs the JavaScript bespoke detectors in priority
// order over a generically-extracted method call (spec §4.3.1): prototype
// method access, then indirect call via .call/.apply/.bind, then optional
// chaining. A call that matches the prototype pattern does not also get
// rewritten as a plain indirect call.
func enhanceJSMethodCall(cfg *langconfig.Config, mc *model.MethodCallInfo, call, callee ast.Node, source []byte) {
	receiverNode := callee.ChildByFieldName(cfg.MemberAccess.ReceiverField)

	if receiverNode != nil && isOneOf(mc.MethodName, []string{"call", "apply", "bind"}) {
		innerProp := receiverNode.ChildByFieldName("property")
		innerObj := receiverNode.ChildByFieldName("object")

		if innerProp != nil && innerObj != nil && innerObj.Type() == "member_expression" {
			if p2 := innerObj.ChildByFieldName("property"); p2 != nil && ast.Text(p2, source) == "prototype" {
				// X.prototype.m.call(...) / X.prototype.m.apply(...)
				mc.Receiver = ast.Text(innerObj, source)
				mc.MethodName = ast.Text(innerProp, source)
				mc.IsStaticMethod = true
				return
			}
		}

		// General indirect call: f.call(thisArg, ...) — the actual method is
		// encoded as "<method>.<call|apply|bind>" so callers can tell the
		// invocation spelling apart from a direct call to the same method.
		actualMethod := ""
		if innerProp != nil {
			actualMethod = ast.Text(innerProp, source)
		} else if receiverNode.Type() == "identifier" {
			actualMethod = ast.Text(receiverNode, source)
		}
		if actualMethod != "" {
			mc.MethodName = actualMethod + "." + mc.MethodName
		}
		if innerObj != nil {
			mc.Receiver = ast.Text(innerObj, source)
		} else {
			mc.Receiver = ""
		}
		return
	}

	if receiverNode != nil && receiverNode.Type() == "member_expression" {
		if prop := receiverNode.ChildByFieldName("property"); prop != nil && ast.Text(prop, source) == "prototype" {
			mc.IsStaticMethod = true
		}
	}

	// Optional chaining: `obj?.m()`. tree-sitter-javascript renders the `?.`
	// token as a literal child of the member/call expression rather than a
	// distinct field, so a textual check on the callee's own span is the
	// stable signal across grammar versions.
	if strings.Contains(ast.Text(callee, source), "?.") {
		mc.IsOptional = true
	}
}
