package typetracker

import (
	"github.com/codepathfinder/polyglot-callgraph/internal/ast"
	"github.com/codepathfinder/polyglot-callgraph/internal/langconfig"
	"github.com/codepathfinder/polyglot-callgraph/model"
)

// classLikeTypes mirrors calldetect's own table; kept local so this package
// doesn't need to import calldetect just for a node-type list.
var classLikeTypes = map[model.Language][]string{
	model.LangJavaScript: {"class_declaration", "class"},
	model.LangTypeScript: {"class_declaration", "class", "abstract_class_declaration"},
	model.LangPython:     {"class_definition"},
	model.LangRust:       {"impl_item"},
}

var functionLikeTypes = map[model.Language][]string{
	model.LangJavaScript: {"method_definition", "function_declaration", "function_expression", "generator_function_declaration", "generator_function", "arrow_function"},
	model.LangTypeScript: {"method_definition", "method_signature", "function_declaration", "function_expression", "generator_function_declaration", "generator_function", "arrow_function"},
	model.LangPython:     {"function_definition"},
	model.LangRust:       {"function_item"},
}

// Seed records the variable→type bindings a file's own source gives for
// free, before calldetect.Detect runs: every class's own name as its
// constructor binding (so a bare `ClassName()` style call falls back to
// something), every self/this/cls parameter bound to its enclosing class,
// every variable declaration or assignment that constructs a known class,
// and every explicitly annotated declaration, whatever type it names
// (§4.4/§4.5).
func Seed(tracker *Tracker, cfg *langconfig.Config, lang model.Language, root ast.Node, source []byte, classes []*model.ClassDefinition) {
	if tracker == nil {
		return
	}
	for _, c := range classes {
		tracker.SetVariableType(model.TypeInfo{
			VariableName: c.Name,
			TypeName:     c.Name,
			Position:     c.Location.Start,
			Source:       model.SourceConstructor,
		})
	}
	if cfg == nil || root == nil {
		return
	}

	knownClasses := make(map[string]bool, len(classes))
	for _, c := range classes {
		knownClasses[c.Name] = true
	}

	seedSelfBindings(tracker, cfg, lang, root, source)
	seedDeclarations(tracker, lang, root, source, knownClasses)
}

// seedSelfBindings walks every class-like node in the file and, within each
// method body, binds the language's self-keyword(s) to the enclosing class
// name at that method's start position — so a later `self.other_method()`
// call resolves its receiver without ever seeing an explicit annotation.
func seedSelfBindings(tracker *Tracker, cfg *langconfig.Config, lang model.Language, root ast.Node, source []byte) {
	classTypes := classLikeTypes[lang]
	funcTypes := functionLikeTypes[lang]
	if len(classTypes) == 0 || len(cfg.SelfKeywords) == 0 {
		return
	}

	var walk func(n ast.Node)
	walk = func(n ast.Node) {
		if n == nil {
			return
		}
		if isOneOf(n.Type(), classTypes) {
			if name := classOwnerName(lang, n, source); name != "" {
				bindSelfInBody(tracker, cfg, funcTypes, n, name)
			}
		}
		for i := 0; i < n.ChildCount(); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
}

func bindSelfInBody(tracker *Tracker, cfg *langconfig.Config, funcTypes []string, classNode ast.Node, className string) {
	var walk func(n ast.Node)
	walk = func(n ast.Node) {
		if n == nil {
			return
		}
		if isOneOf(n.Type(), funcTypes) {
			for _, kw := range cfg.SelfKeywords {
				tracker.SetVariableType(model.TypeInfo{
					VariableName: kw,
					TypeName:     className,
					Position:     n.StartPosition(),
					Source:       model.SourceParameter,
				})
			}
		}
		for i := 0; i < n.ChildCount(); i++ {
			walk(n.Child(i))
		}
	}
	for i := 0; i < classNode.ChildCount(); i++ {
		walk(classNode.Child(i))
	}
}

func classOwnerName(lang model.Language, n ast.Node, source []byte) string {
	if lang == model.LangRust && n.Type() == "impl_item" {
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

// seedDeclarations binds variables assigned from a known class's constructor
// call to that class name, and annotated variables to their annotated type
// whether or not it is a known class.
func seedDeclarations(tracker *Tracker, lang model.Language, root ast.Node, source []byte, knownClasses map[string]bool) {
	switch lang {
	case model.LangJavaScript, model.LangTypeScript:
		seedJSDeclarations(tracker, root, source, knownClasses, lang == model.LangTypeScript)
	case model.LangPython:
		seedPythonDeclarations(tracker, root, source, knownClasses)
	case model.LangRust:
		seedRustDeclarations(tracker, root, source, knownClasses)
	}
}

func seedJSDeclarations(tracker *Tracker, root ast.Node, source []byte, knownClasses map[string]bool, typed bool) {
	ast.Walk(root, func(n ast.Node) {
		switch n.Type() {
		case "variable_declarator":
			nameNode := n.ChildByFieldName("name")
			if nameNode == nil || nameNode.Type() != "identifier" {
				return
			}
			varName := ast.Text(nameNode, source)

			if typed {
				if typeAnno := n.ChildByFieldName("type"); typeAnno != nil {
					if t := innerTypeName(typeAnno, source); t != "" {
						tracker.SetVariableType(model.TypeInfo{
							VariableName: varName,
							TypeName:     t,
							Position:     n.StartPosition(),
							Source:       model.SourceAnnotation,
							Confidence:   model.ConfidenceExplicit,
						})
						return
					}
				}
			}

			if value := n.ChildByFieldName("value"); value != nil {
				if className, ok := constructorTarget(value, source, knownClasses); ok {
					tracker.SetVariableType(model.TypeInfo{
						VariableName: varName,
						TypeName:     className,
						Position:     n.StartPosition(),
						Source:       model.SourceConstructor,
					})
				}
			}
		case "assignment_expression":
			left := n.ChildByFieldName("left")
			right := n.ChildByFieldName("right")
			if left == nil || right == nil || left.Type() != "identifier" {
				return
			}
			if className, ok := constructorTarget(right, source, knownClasses); ok {
				tracker.SetVariableType(model.TypeInfo{
					VariableName: ast.Text(left, source),
					TypeName:     className,
					Position:     n.StartPosition(),
					Source:       model.SourceConstructor,
				})
			}
		}
	})
}

// constructorTarget reports the class name a `new X(...)` or, for a
// language with no `new` keyword, a bare `X(...)` call instantiates, when X
// is a known class.
func constructorTarget(n ast.Node, source []byte, knownClasses map[string]bool) (string, bool) {
	if n.Type() == "new_expression" {
		if ctor := n.ChildByFieldName("constructor"); ctor != nil {
			return ast.Text(ctor, source), true
		}
		return "", false
	}
	if n.Type() == "call_expression" {
		callee := n.ChildByFieldName("function")
		if callee == nil {
			callee = n.ChildByFieldName("callee")
		}
		if callee != nil && knownClasses[ast.Text(callee, source)] {
			return ast.Text(callee, source), true
		}
	}
	return "", false
}

// innerTypeName pulls a plain or generic type name out of a TS type
// annotation node, skipping the leading ":" punctuation.
func innerTypeName(typeAnnotation ast.Node, source []byte) string {
	for i := 0; i < typeAnnotation.ChildCount(); i++ {
		c := typeAnnotation.Child(i)
		if c == nil {
			continue
		}
		switch c.Type() {
		case "type_identifier", "generic_type":
			return ast.Text(c, source)
		}
	}
	return ""
}

func seedPythonDeclarations(tracker *Tracker, root ast.Node, source []byte, knownClasses map[string]bool) {
	ast.Walk(root, func(n ast.Node) {
		if n.Type() != "assignment" {
			return
		}
		left := n.ChildByFieldName("left")
		if left == nil || left.Type() != "identifier" {
			return
		}
		varName := ast.Text(left, source)

		if typeNode := n.ChildByFieldName("type"); typeNode != nil {
			tracker.SetVariableType(model.TypeInfo{
				VariableName: varName,
				TypeName:     ast.Text(typeNode, source),
				Position:     n.StartPosition(),
				Source:       model.SourceAnnotation,
				Confidence:   model.ConfidenceExplicit,
			})
			return
		}

		right := n.ChildByFieldName("right")
		if right == nil || right.Type() != "call" {
			return
		}
		callee := right.ChildByFieldName("function")
		if callee == nil {
			return
		}
		name := ast.Text(callee, source)
		if knownClasses[name] {
			tracker.SetVariableType(model.TypeInfo{
				VariableName: varName,
				TypeName:     name,
				Position:     n.StartPosition(),
				Source:       model.SourceConstructor,
			})
		}
	})
}

func seedRustDeclarations(tracker *Tracker, root ast.Node, source []byte, knownClasses map[string]bool) {
	ast.Walk(root, func(n ast.Node) {
		if n.Type() != "let_declaration" {
			return
		}
		pattern := n.ChildByFieldName("pattern")
		if pattern == nil || pattern.Type() != "identifier" {
			return
		}
		varName := ast.Text(pattern, source)

		if typeNode := n.ChildByFieldName("type"); typeNode != nil {
			tracker.SetVariableType(model.TypeInfo{
				VariableName: varName,
				TypeName:     rustBaseTypeName(typeNode, source),
				Position:     n.StartPosition(),
				Source:       model.SourceAnnotation,
				Confidence:   model.ConfidenceExplicit,
			})
			return
		}

		value := n.ChildByFieldName("value")
		if value == nil || value.Type() != "call_expression" {
			return
		}
		callee := value.ChildByFieldName("function")
		if callee == nil {
			return
		}
		var typeName string
		switch callee.Type() {
		case "scoped_identifier":
			if path := callee.ChildByFieldName("path"); path != nil {
				typeName = ast.Text(path, source)
			}
		case "identifier":
			typeName = ast.Text(callee, source)
		}
		if typeName != "" && knownClasses[typeName] {
			tracker.SetVariableType(model.TypeInfo{
				VariableName: varName,
				TypeName:     typeName,
				Position:     n.StartPosition(),
				Source:       model.SourceConstructor,
			})
		}
	})
}

func rustBaseTypeName(n ast.Node, source []byte) string {
	if n.Type() == "generic_type" {
		if base := n.ChildByFieldName("type"); base != nil {
			return ast.Text(base, source)
		}
	}
	return ast.Text(n, source)
}

func isOneOf(s string, set []string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
