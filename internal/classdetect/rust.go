package classdetect

import (
	"fmt"

	"github.com/codepathfinder/polyglot-callgraph/internal/ast"
	"github.com/codepathfinder/polyglot-callgraph/internal/langconfig"
	"github.com/codepathfinder/polyglot-callgraph/model"
)

// rustFieldShape mirrors the relevant slice of defaults/rust.yaml so the
// two-pass Rust extractor can reuse extractProperty/parameterFrom without a
// full langconfig.Table lookup.
var rustFieldShape = &langconfig.Config{
	Parameters: langconfig.ParameterShape{
		TypedTypes: []string{"parameter"},
	},
	LiteralTypeNames: map[string]string{
		"string_literal":   "&str",
		"integer_literal":  "i32",
		"float_literal":    "f64",
		"array_expression": "Vec",
	},
}

// detectRust implements the two-pass Rust extraction the generic walk can't
// express: a struct's methods never live inside the struct_item node itself,
// they arrive later in the file as separate `impl StructName { ... }` (or
// `impl Trait for StructName { ... }`) blocks. Pass one collects every
// struct_item and trait_item as a ClassDefinition; pass two walks every
// impl_item in the file. An inherent impl's methods fold into the
// implementing type's own definition; a trait impl's methods fold into the
// trait's definition instead (synthesizing one for a foreign/std trait with
// no local trait_item), so that e.g. `impl Display for Point` leaves `fmt`
// resolvable on Display while Point keeps only its own inherent methods.
func detectRust(root ast.Node, source []byte, filePath string) []*model.ClassDefinition {
	defs := make(map[string]*model.ClassDefinition)
	var order []string

	var collect func(n ast.Node)
	collect = func(n ast.Node) {
		if n == nil {
			return
		}
		switch n.Type() {
		case "struct_item":
			def := rustStructDef(n, source, filePath)
			defs[def.Name] = def
			order = append(order, def.Name)
		case "trait_item":
			def := rustTraitDef(n, source, filePath)
			defs[def.Name] = def
			order = append(order, def.Name)
		}
		for i := 0; i < n.ChildCount(); i++ {
			collect(n.Child(i))
		}
	}
	collect(root)

	var implBlocks []ast.Node
	var findImpls func(n ast.Node)
	findImpls = func(n ast.Node) {
		if n == nil {
			return
		}
		if n.Type() == "impl_item" {
			implBlocks = append(implBlocks, n)
		}
		for i := 0; i < n.ChildCount(); i++ {
			findImpls(n.Child(i))
		}
	}
	findImpls(root)

	for _, impl := range implBlocks {
		traitName, typeName := rustImplTarget(impl, source)
		def, ok := defs[typeName]
		if !ok {
			// impl block for a type defined elsewhere (or a primitive) —
			// synthesize a placeholder so its methods aren't lost.
			def = &model.ClassDefinition{Name: typeName, FilePath: filePath, Language: model.LangRust}
			defs[typeName] = def
			order = append(order, typeName)
		}

		// methodTarget is where this impl's methods land: the implementing
		// type itself for an inherent impl, but the trait's own definition
		// for `impl Trait for Type` — a trait method is defined by the
		// trait, not by every type that implements it, so method resolution
		// must find it on the trait node (scenario: `p.fmt()` resolves to
		// Display, not Point; `p.distance()` stays on Point).
		methodTarget := def
		if traitName != "" {
			def.Implements = appendUnique(def.Implements, traitName)
			traitDef, ok := defs[traitName]
			if !ok {
				// No local trait_item for this name — a foreign or std
				// trait (e.g. Display, Clone). Synthesize a minimal
				// interface node so its methods still resolve.
				traitDef = &model.ClassDefinition{Name: traitName, FilePath: filePath, Language: model.LangRust}
				traitDef.Flags.IsTrait = true
				traitDef.Flags.IsInterface = true
				defs[traitName] = traitDef
				order = append(order, traitName)
			}
			methodTarget = traitDef
		}

		body := impl.ChildByFieldName("body")
		if body == nil {
			continue
		}
		for i := 0; i < body.ChildCount(); i++ {
			member := body.Child(i)
			if member == nil || member.Type() != "function_item" {
				continue
			}
			m := extractRustMethod(member, source, filePath)
			if m != nil {
				methodTarget.Methods = append(methodTarget.Methods, m)
			}
		}
	}

	out := make([]*model.ClassDefinition, 0, len(order))
	for _, name := range order {
		out = append(out, defs[name])
	}
	return out
}

func rustStructDef(n ast.Node, source []byte, filePath string) *model.ClassDefinition {
	def := &model.ClassDefinition{
		Location: ast.Location(n, filePath),
		FilePath: filePath,
		Language: model.LangRust,
	}
	if nameNode := n.ChildByFieldName("name"); nameNode != nil {
		def.Name = ast.Text(nameNode, source)
	}
	if tp := n.ChildByFieldName("type_parameters"); tp != nil {
		def.Generics = extractGenerics(tp, source)
	}
	def.Decorators = rustDeriveAttributes(n, source)
	if body := n.ChildByFieldName("body"); body != nil {
		switch body.Type() {
		case "field_declaration_list":
			for i := 0; i < body.ChildCount(); i++ {
				field := body.Child(i)
				if field != nil && field.Type() == "field_declaration" {
					if p := extractProperty(rustFieldShape, field, source, filePath); p != nil {
						def.Properties = append(def.Properties, p)
					}
				}
			}
		case "ordered_field_declaration_list":
			idx := 0
			for i := 0; i < body.ChildCount(); i++ {
				field := body.Child(i)
				if field == nil || field.Type() != "field_type" && field.Type() != "type_identifier" && field.Type() != "generic_type" {
					continue
				}
				def.Properties = append(def.Properties, &model.PropertyDefinition{
					Name: fmt.Sprintf("%d", idx),
					Type: ast.Text(field, source),
				})
				idx++
			}
		}
	}
	return def
}

// rustDeriveAttributes collects preceding `#[derive(...)]` (and other
// `#[...]`) attribute_item siblings in document order as decorators.
func rustDeriveAttributes(n ast.Node, source []byte) []string {
	var attrs []string
	for p := n.PreviousSibling(); p != nil; p = p.PreviousSibling() {
		if p.Type() != "attribute_item" {
			break
		}
		attrs = append([]string{ast.Text(p, source)}, attrs...)
	}
	return attrs
}

func rustTraitDef(n ast.Node, source []byte, filePath string) *model.ClassDefinition {
	def := &model.ClassDefinition{
		Location: ast.Location(n, filePath),
		FilePath: filePath,
		Language: model.LangRust,
	}
	def.Flags.IsTrait = true
	def.Flags.IsInterface = true
	if nameNode := n.ChildByFieldName("name"); nameNode != nil {
		def.Name = ast.Text(nameNode, source)
	}
	if bounds := n.ChildByFieldName("bounds"); bounds != nil {
		def.Extends = extractTypeNames(bounds, source)
	}
	return def
}

// rustImplTarget returns (traitName, typeName) for an impl block; traitName
// is empty for an inherent `impl Type { ... }`.
func rustImplTarget(n ast.Node, source []byte) (traitName, typeName string) {
	traitField := n.ChildByFieldName("trait")
	typeField := n.ChildByFieldName("type")
	if typeField != nil {
		typeName = rustTypeBaseName(typeField, source)
	}
	if traitField != nil {
		traitName = rustTypeBaseName(traitField, source)
	}
	return traitName, typeName
}

// rustTypeBaseName strips generic arguments off a type node, e.g.
// `Container<T>` -> `Container`.
func rustTypeBaseName(n ast.Node, source []byte) string {
	if n.Type() == "generic_type" {
		if base := n.ChildByFieldName("type"); base != nil {
			return ast.Text(base, source)
		}
	}
	return ast.Text(n, source)
}

func extractRustMethod(n ast.Node, source []byte, filePath string) *model.MethodDefinition {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := ast.Text(nameNode, source)
	m := &model.MethodDefinition{
		Name:     name,
		Location: ast.Location(n, filePath),
	}
	m.Flags.IsConstructor = name == "new"

	params := n.ChildByFieldName("parameters")
	hasSelf := false
	if params != nil {
		for i := 0; i < params.ChildCount(); i++ {
			p := params.Child(i)
			if p == nil {
				continue
			}
			if p.Type() == "self_parameter" {
				hasSelf = true
				continue
			}
			if p.Type() == "parameter" {
				m.Parameters = append(m.Parameters, parameterFrom(rustFieldShape, p, source, false, false))
			}
		}
	}
	m.Flags.IsStatic = !hasSelf

	if ret := n.ChildByFieldName("return_type"); ret != nil {
		m.ReturnType = ast.Text(ret, source)
	}
	if n.ChildByFieldName("body") == nil {
		m.Flags.IsAbstract = true // trait method with no default body
	}

	return m
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
