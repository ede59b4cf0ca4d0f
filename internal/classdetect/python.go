package classdetect

import (
	"strings"

	"github.com/codepathfinder/polyglot-callgraph/internal/ast"
	"github.com/codepathfinder/polyglot-callgraph/model"
)

// enhancePython recognizes the decorator-driven patterns Python uses in
// place of keyword modifiers: @abstractmethod/ABC bases flag a class as
// abstract, @staticmethod/@classmethod flag the corresponding method, and a
// Protocol base marks the class interface-like (spec §4.2.3).
func enhancePython(def *model.ClassDefinition, n ast.Node, source []byte) {
	for _, base := range def.Extends {
		if base == "ABC" || base == "Protocol" {
			if base == "Protocol" {
				def.Flags.IsInterface = true
			}
			def.Flags.IsAbstract = true
		}
	}

	body := n.ChildByFieldName("body")
	if body == nil {
		return
	}
	for i := 0; i < body.ChildCount(); i++ {
		member := body.Child(i)
		if member == nil {
			continue
		}
		if member.Type() == "decorated_definition" {
			if inner := member.ChildByFieldName("definition"); inner != nil {
				member = inner
			}
		}
		if member.Type() != "function_definition" {
			continue
		}
		name := methodName(member, source)
		method := def.MethodByName(name)
		if method == nil {
			continue
		}
		for _, dec := range extractDecorators(member, source) {
			base := strings.TrimPrefix(dec, "@")
			switch {
			case strings.HasPrefix(base, "staticmethod"):
				method.Flags.IsStatic = true
			case strings.HasPrefix(base, "classmethod"):
				method.Flags.IsStatic = true
			case strings.HasPrefix(base, "abstractmethod"):
				method.Flags.IsAbstract = true
				def.Flags.IsAbstract = true
			case strings.HasPrefix(base, "property"):
				// exposed via properties, not methods, downstream consumers
				// may still want the method form — left as-is.
			}
		}
		if name == "__init__" {
			deriveInitProperties(def, method)
		}
	}
}

// deriveInitProperties turns each non-self __init__ parameter into an
// instance property of matching declared (or inferred) type, per the
// "derive properties from __init__ parameter names" rule.
func deriveInitProperties(def *model.ClassDefinition, initMethod *model.MethodDefinition) {
	for _, param := range initMethod.Parameters {
		if def.PropertyByName(param.Name) != nil {
			continue
		}
		def.Properties = append(def.Properties, &model.PropertyDefinition{
			Name: param.Name,
			Type: param.Type,
		})
	}
}
