package classdetect

import (
	"strings"

	"github.com/codepathfinder/polyglot-callgraph/internal/ast"
	"github.com/codepathfinder/polyglot-callgraph/internal/langconfig"
	"github.com/codepathfinder/polyglot-callgraph/model"
)

// extractMethod builds a MethodDefinition from a member_node_types match
// (method_definition, function_definition, function_item, ...).
func extractMethod(cfg *langconfig.Config, n ast.Node, source []byte, filePath string) *model.MethodDefinition {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := ast.Text(nameNode, source)

	m := &model.MethodDefinition{
		Name:     name,
		Location: ast.Location(n, filePath),
	}
	m.Flags.IsConstructor = name == cfg.ConstructorName
	m.Flags.IsStatic = hasKeywordModifier(cfg.StaticKeywords, n, source) ||
		(cfg.UppercaseIsStatic && isAllUpperIdentifier(name))
	m.Flags.IsAbstract = hasKeywordModifier(cfg.AbstractKeywords, n, source)
	m.Flags.IsPrivate = hasPrefix(name, cfg.PrivatePrefixes)
	m.Flags.IsProtected = !m.Flags.IsPrivate && hasPrefix(name, cfg.ProtectedPrefixes)
	m.Flags.IsAsync = hasKeywordModifier([]string{"async"}, n, source)

	if params := n.ChildByFieldName("parameters"); params != nil {
		m.Parameters = extractParameters(cfg, params, source)
	}
	if ret := n.ChildByFieldName("return_type"); ret != nil {
		m.ReturnType = ast.Text(ret, source)
	}
	m.Decorators = extractDecorators(n, source)

	return m
}

// extractProperty builds a PropertyDefinition from a property_node_types
// match (field_definition, property_signature, field_declaration, ...).
func extractProperty(cfg *langconfig.Config, n ast.Node, source []byte, filePath string) *model.PropertyDefinition {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		nameNode = n.ChildByFieldName("property")
	}
	if nameNode == nil {
		return nil
	}
	name := ast.Text(nameNode, source)

	p := &model.PropertyDefinition{
		Name:     name,
		Location: ast.Location(n, filePath),
	}
	p.Flags.IsStatic = hasKeywordModifier(cfg.StaticKeywords, n, source) ||
		(cfg.UppercaseIsStatic && isAllUpperIdentifier(name))
	p.Flags.IsPrivate = hasPrefix(name, cfg.PrivatePrefixes)
	p.Flags.IsProtected = !p.Flags.IsPrivate && hasPrefix(name, cfg.ProtectedPrefixes)
	p.Flags.IsReadonly = hasKeywordModifier([]string{"readonly"}, n, source)

	if t := n.ChildByFieldName("type"); t != nil {
		p.Type = ast.Text(t, source)
	} else if t := n.ChildByFieldName("field_type"); t != nil {
		p.Type = ast.Text(t, source)
	}
	if v := n.ChildByFieldName("value"); v != nil {
		p.InitialValue = ast.Text(v, source)
		if p.Type == "" {
			p.Type = literalTypeName(cfg, v)
		}
	}

	return p
}

// extractParameters walks a parameter_list/formal_parameters node per the
// configured parameter shape, classifying each child as regular/optional/
// rest and reading its declared type when the grammar attaches one.
// self/cls bindings are filtered out post hoc so downstream components only
// see "user" parameters (§4.2 step 4).
func extractParameters(cfg *langconfig.Config, params ast.Node, source []byte) []model.Parameter {
	var out []model.Parameter
	for i := 0; i < params.ChildCount(); i++ {
		c := params.Child(i)
		if c == nil {
			continue
		}
		t := c.Type()
		var p model.Parameter
		switch {
		case t == "self_parameter":
			continue
		case isOneOf(t, cfg.Parameters.RestTypes):
			p = parameterFrom(cfg, c, source, false, true)
		case isOneOf(t, cfg.Parameters.OptionalTypes):
			p = parameterFrom(cfg, c, source, true, false)
		case isOneOf(t, cfg.Parameters.RegularTypes):
			p = parameterFrom(cfg, c, source, false, false)
		default:
			continue
		}
		if isOneOf(p.Name, cfg.SelfKeywords) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func parameterFrom(cfg *langconfig.Config, n ast.Node, source []byte, optional, rest bool) model.Parameter {
	p := model.Parameter{IsOptional: optional, IsRest: rest}

	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		nameNode = n.ChildByFieldName("pattern")
	}
	if nameNode != nil {
		p.Name = ast.Text(nameNode, source)
	} else if n.Type() == "identifier" || n.Type() == "self_parameter" {
		p.Name = ast.Text(n, source)
	}

	if isOneOf(n.Type(), cfg.Parameters.TypedTypes) {
		if t := n.ChildByFieldName("type"); t != nil {
			p.Type = ast.Text(t, source)
		}
	}
	if d := n.ChildByFieldName("value"); d != nil {
		p.DefaultValue = ast.Text(d, source)
	} else if d := n.ChildByFieldName("right"); d != nil {
		p.DefaultValue = ast.Text(d, source)
	}

	return p
}

// extractDecorators collects the `decorator` nodes that immediately precede
// a member in the grammar's sibling list (Python decorators, TS/JS
// experimental decorators). Rust `#[attribute]` items are not collected.
func extractDecorators(n ast.Node, source []byte) []string {
	var decorators []string
	for p := n.PreviousSibling(); p != nil; p = p.PreviousSibling() {
		if p.Type() != "decorator" {
			break
		}
		decorators = append([]string{strings.TrimSpace(ast.Text(p, source))}, decorators...)
	}
	return decorators
}

// extractGenerics walks a type_parameters node, reading each parameter's
// name plus an optional constraint (`extends`/`:`) and default (`=`).
func extractGenerics(n ast.Node, source []byte) []model.Generic {
	var out []model.Generic
	for i := 0; i < n.ChildCount(); i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		switch c.Type() {
		case "type_parameter", "constrained_type_parameter", "optional_type_parameter", "lifetime":
			g := model.Generic{Name: ast.Text(c, source)}
			if nameNode := c.ChildByFieldName("name"); nameNode != nil {
				g.Name = ast.Text(nameNode, source)
			}
			if constraint := c.ChildByFieldName("constraint"); constraint != nil {
				g.Constraint = ast.Text(constraint, source)
			}
			if def := c.ChildByFieldName("value"); def != nil {
				g.Default = ast.Text(def, source)
			} else if def := c.ChildByFieldName("default_type"); def != nil {
				g.Default = ast.Text(def, source)
			}
			out = append(out, g)
		case "identifier", "type_identifier":
			out = append(out, model.Generic{Name: ast.Text(c, source)})
		}
	}
	return out
}

func literalTypeName(cfg *langconfig.Config, n ast.Node) string {
	if cfg.LiteralTypeNames == nil {
		return ""
	}
	return cfg.LiteralTypeNames[n.Type()]
}

func hasPrefix(name string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

func isAllUpperIdentifier(name string) bool {
	if name == "" {
		return false
	}
	hasLetter := false
	for _, r := range name {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}
