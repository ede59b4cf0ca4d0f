package classdetect

import (
	"github.com/codepathfinder/polyglot-callgraph/internal/ast"
	"github.com/codepathfinder/polyglot-callgraph/model"
)

// enhanceJavaScript handles the ~15% of class extraction that JS/TS grammars
// diverge on from the generic walk: a getter or setter method is renamed to
// "get <name>" or "set <name>". Generator methods are not marked.
func enhanceJavaScript(def *model.ClassDefinition, n ast.Node, source []byte) {
	for i := 0; i < n.ChildCount(); i++ {
		c := n.Child(i)
		if c == nil || c.Type() != "class_body" {
			continue
		}
		for j := 0; j < c.ChildCount(); j++ {
			member := c.Child(j)
			if member == nil || member.Type() != "method_definition" {
				continue
			}
			name := methodName(member, source)
			if name == "" {
				continue
			}
			method := def.MethodByName(name)
			if method == nil {
				continue
			}
			if hasChildOfType(member, "get") {
				method.Name = "get " + name
			} else if hasChildOfType(member, "set") {
				method.Name = "set " + name
			}
		}
	}
}

func methodName(n ast.Node, source []byte) string {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return ""
	}
	return ast.Text(nameNode, source)
}

func hasChildOfType(n ast.Node, nodeType string) bool {
	for i := 0; i < n.ChildCount(); i++ {
		c := n.Child(i)
		if c != nil && c.Type() == nodeType {
			return true
		}
	}
	return false
}
