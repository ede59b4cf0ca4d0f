// Package classdetect implements the Class Detector (spec §4.2): a
// configuration-plus-bespoke extractor that identifies class/struct/
// trait/interface definitions with their members, generics, decorators,
// visibility and inheritance edges across four languages with dissimilar
// AST shapes.
//
// ~85% of the work is the same generic walk for every language, driven by
// the langconfig.Config table; the remaining divergence lives in the three
// Enhance functions (javascript.go, typescript.go, python.go) and the
// two-pass Rust extractor (rust.go), selected by a language tag rather than
// by a class hierarchy of detector types (design notes).
package classdetect

import (
	"github.com/codepathfinder/polyglot-callgraph/internal/ast"
	"github.com/codepathfinder/polyglot-callgraph/internal/langconfig"
	"github.com/codepathfinder/polyglot-callgraph/model"
)

// Detector extracts ClassDefinitions from a single file's AST.
type Detector struct {
	Table *langconfig.Table
}

// NewDetector builds a Detector over the given configuration table.
func NewDetector(table *langconfig.Table) *Detector {
	return &Detector{Table: table}
}

// Detect walks root and returns every class/struct/trait/interface
// definition found, in source order. An unsupported language yields an
// empty, non-nil result (§6, §7).
func (d *Detector) Detect(lang model.Language, filePath string, root ast.Node, source []byte) []*model.ClassDefinition {
	cfg := d.Table.Get(lang)
	if cfg == nil || root == nil {
		return []*model.ClassDefinition{}
	}

	if lang == model.LangRust {
		return detectRust(root, source, filePath)
	}

	var out []*model.ClassDefinition
	visited := make(map[ast.Node]bool)

	var walk func(n ast.Node)
	walk = func(n ast.Node) {
		if n == nil {
			return
		}
		if isClassNodeType(cfg, n.Type()) && !visited[n] && !hasClassAncestor(cfg, n) {
			visited[n] = true
			def := extractClass(cfg, lang, n, source, filePath)
			if def != nil {
				out = append(out, def)
				enhance(lang, def, n, source)
			}
		}
		for i := 0; i < n.ChildCount(); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)

	return out
}

func isClassNodeType(cfg *langconfig.Config, nodeType string) bool {
	for _, t := range cfg.Class.NodeTypes {
		if t == nodeType {
			return true
		}
	}
	return false
}

// hasClassAncestor reports whether n is nested inside another class
// declaration, so the walk doesn't emit the same class twice (§4.2 step 1:
// "Skip nested class nodes whose parent is already a class declaration").
func hasClassAncestor(cfg *langconfig.Config, n ast.Node) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if isClassNodeType(cfg, p.Type()) {
			return true
		}
	}
	return false
}

// extractClass resolves the class name (including the JS/TS class-expression
// naming heuristics), extracts heritage, walks the body for members, and
// flags abstract classes when the configured modifier is present.
func extractClass(cfg *langconfig.Config, lang model.Language, n ast.Node, source []byte, filePath string) *model.ClassDefinition {
	name := resolveClassName(cfg, lang, n, source)

	def := &model.ClassDefinition{
		Name:     name,
		Location: ast.Location(n, filePath),
		FilePath: filePath,
		Language: lang,
	}

	def.Extends, def.Implements = extractHeritage(cfg, n, source)
	def.Flags.IsAbstract = hasKeywordModifier(cfg.AbstractKeywords, n, source)
	def.Decorators = extractDecorators(n, source)

	if cfg.Class.GenericsField != "" {
		if g := n.ChildByFieldName(cfg.Class.GenericsField); g != nil {
			def.Generics = extractGenerics(g, source)
		}
	}

	body := n.ChildByFieldName(cfg.Class.BodyField)
	if body != nil {
		for i := 0; i < body.ChildCount(); i++ {
			member := body.Child(i)
			if member == nil {
				continue
			}
			// Python wraps a decorated member in decorated_definition; unwrap
			// to the actual method/property node before dispatch.
			if member.Type() == "decorated_definition" {
				if inner := member.ChildByFieldName("definition"); inner != nil {
					member = inner
				}
			}
			switch {
			case isOneOf(member.Type(), cfg.MemberNodeTypes):
				if m := extractMethod(cfg, member, source, filePath); m != nil {
					def.Methods = append(def.Methods, m)
				}
			case isOneOf(member.Type(), cfg.PropertyNodeTypes):
				if p := extractProperty(cfg, member, source, filePath); p != nil {
					def.Properties = append(def.Properties, p)
				}
			}
		}
	}

	return def
}

// resolveClassName implements the JS/TS class-expression naming heuristic:
// an anonymous `class { ... }` used as a value takes its name from the
// enclosing variable_declarator/assignment_expression; with no enclosing
// binding it is named "AnonymousClass".
func resolveClassName(cfg *langconfig.Config, lang model.Language, n ast.Node, source []byte) string {
	if nameNode := n.ChildByFieldName(cfg.Class.NameField); nameNode != nil {
		return ast.Text(nameNode, source)
	}
	if lang != model.LangJavaScript && lang != model.LangTypeScript {
		return "AnonymousClass"
	}
	if parent := n.Parent(); parent != nil {
		switch parent.Type() {
		case "variable_declarator":
			if id := parent.ChildByFieldName("name"); id != nil {
				return ast.Text(id, source)
			}
		case "assignment_expression":
			if left := parent.ChildByFieldName("left"); left != nil {
				return ast.Text(left, source)
			}
		}
	}
	return "AnonymousClass"
}

// extractHeritage reads the superclass/heritage fields the config names for
// this language. JS has no `superclass` field (uses class_heritage only);
// Python's superclasses list may name several parents.
func extractHeritage(cfg *langconfig.Config, n ast.Node, source []byte) (extends []string, implements []string) {
	if cfg.Class.SuperclassField != "" {
		if sc := n.ChildByFieldName(cfg.Class.SuperclassField); sc != nil {
			extends = append(extends, extractTypeNames(sc, source)...)
		}
	}
	if cfg.Class.HeritageField != "" {
		if heritage := n.ChildByFieldName(cfg.Class.HeritageField); heritage != nil {
			e, i := extractJSHeritage(heritage, source)
			extends = append(extends, e...)
			implements = append(implements, i...)
		}
	}
	// interface_declaration has no class_heritage; its base list hangs off
	// extends_type_clause instead.
	if n.Type() == "interface_declaration" {
		if ext := n.ChildByFieldName("extends_type_clause"); ext != nil {
			extends = append(extends, extractTypeNames(ext, source)...)
		}
	}
	if cfg.Class.ImplementsField != "" {
		if impl := n.ChildByFieldName(cfg.Class.ImplementsField); impl != nil {
			implements = append(implements, extractTypeNames(impl, source)...)
		}
	}
	return extends, implements
}

// extractTypeNames collects every identifier-shaped descendant of n that
// names a type (used for superclasses / implements lists / argument_list
// base-class tuples in Python).
func extractTypeNames(n ast.Node, source []byte) []string {
	var names []string
	for i := 0; i < n.ChildCount(); i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		switch c.Type() {
		case "identifier", "type_identifier", "generic_type", "keyword_argument":
			if c.Type() == "keyword_argument" {
				continue // e.g. metaclass=... is not a base class
			}
			names = append(names, ast.Text(c, source))
		default:
			if c.ChildCount() > 0 {
				names = append(names, extractTypeNames(c, source)...)
			}
		}
	}
	return names
}

// extractJSHeritage splits a class_heritage node's clauses into
// extends/implements, mirroring the JavaScript/TypeScript grammars where
// `extends_clause`/`implements_clause` children hang off `class_heritage`.
func extractJSHeritage(heritage ast.Node, source []byte) (extends []string, implements []string) {
	for i := 0; i < heritage.ChildCount(); i++ {
		clause := heritage.Child(i)
		if clause == nil {
			continue
		}
		switch clause.Type() {
		case "extends_clause":
			for j := 0; j < clause.ChildCount(); j++ {
				c := clause.Child(j)
				if c != nil && (c.Type() == "identifier" || c.Type() == "type_identifier" || c.Type() == "generic_type") {
					extends = append(extends, ast.Text(c, source))
				}
			}
		case "implements_clause":
			implements = append(implements, extractTypeNames(clause, source)...)
		}
	}
	return extends, implements
}

func hasKeywordModifier(keywords []string, n ast.Node, source []byte) bool {
	if len(keywords) == 0 {
		return false
	}
	for i := 0; i < n.ChildCount(); i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		text := ast.Text(c, source)
		if isOneOf(text, keywords) || isOneOf(c.Type(), keywords) {
			return true
		}
	}
	return false
}

func isOneOf(s string, set []string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

// enhance runs the per-language enhancer over a freshly-extracted
// definition. Enhancers only set fields the generic extractor left empty.
func enhance(lang model.Language, def *model.ClassDefinition, n ast.Node, source []byte) {
	switch lang {
	case model.LangJavaScript:
		enhanceJavaScript(def, n, source)
	case model.LangTypeScript:
		enhanceJavaScript(def, n, source)
		enhanceTypeScript(def, n, source)
	case model.LangPython:
		enhancePython(def, n, source)
	}
}
