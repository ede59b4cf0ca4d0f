// Package imports builds the ModuleGraph entry for a single file: its
// imported bindings and exported names (spec §3, "ModuleGraph"). This is the
// concrete provider behind the "Inbound — ModuleGraph" collaborator the core
// detectors treat as externally supplied; grounded on the teacher's
// graph/callgraph/imports.go Python import walker, extended per-language.
package imports

import (
	"strings"

	"github.com/codepathfinder/polyglot-callgraph/internal/ast"
	"github.com/codepathfinder/polyglot-callgraph/model"
)

// Extract walks root and returns the FileGraph for filePath: every import
// binding and top-level exported name, per the language's module syntax.
func Extract(lang model.Language, root ast.Node, source []byte) *model.FileGraph {
	fg := &model.FileGraph{Exports: make(map[string]bool)}
	if root == nil {
		return fg
	}
	switch lang {
	case model.LangJavaScript, model.LangTypeScript:
		extractJS(root, source, fg)
	case model.LangPython:
		extractPython(root, source, fg)
	case model.LangRust:
		extractRust(root, source, fg)
	}
	return fg
}

func extractJS(root ast.Node, source []byte, fg *model.FileGraph) {
	for _, n := range root.DescendantsOfType("import_statement") {
		processJSImport(n, source, fg)
	}
	for _, n := range root.DescendantsOfType("export_statement") {
		processJSExport(n, source, fg)
	}
}

func processJSImport(n ast.Node, source []byte, fg *model.FileGraph) {
	sourceNode := n.ChildByFieldName("source")
	if sourceNode == nil {
		for i := 0; i < n.ChildCount(); i++ {
			if n.Child(i).Type() == "string" {
				sourceNode = n.Child(i)
			}
		}
	}
	moduleName := strings.Trim(ast.Text(sourceNode, source), "\"'")

	for i := 0; i < n.ChildCount(); i++ {
		c := n.Child(i)
		switch c.Type() {
		case "import_clause":
			processJSImportClause(c, source, moduleName, fg)
		case "identifier":
			// import defaultExport from "module" (bare default clause)
			fg.Imports = append(fg.Imports, model.ImportEntry{
				LocalName: ast.Text(c, source), SourceModule: moduleName, IsDefault: true,
			})
		}
	}
}

func processJSImportClause(n ast.Node, source []byte, moduleName string, fg *model.FileGraph) {
	for i := 0; i < n.ChildCount(); i++ {
		c := n.Child(i)
		switch c.Type() {
		case "identifier":
			fg.Imports = append(fg.Imports, model.ImportEntry{
				LocalName: ast.Text(c, source), SourceModule: moduleName, IsDefault: true,
			})
		case "namespace_import":
			name := lastIdentifier(c, source)
			fg.Imports = append(fg.Imports, model.ImportEntry{
				LocalName: name, SourceModule: moduleName, IsNamespace: true,
			})
		case "named_imports":
			for j := 0; j < c.ChildCount(); j++ {
				spec := c.Child(j)
				if spec.Type() != "import_specifier" {
					continue
				}
				nameNode := spec.ChildByFieldName("name")
				aliasNode := spec.ChildByFieldName("alias")
				imported := ast.Text(nameNode, source)
				local := imported
				if aliasNode != nil {
					local = ast.Text(aliasNode, source)
				}
				fg.Imports = append(fg.Imports, model.ImportEntry{
					LocalName: local, SourceModule: moduleName, ImportedName: imported,
				})
			}
		}
	}
}

func processJSExport(n ast.Node, source []byte, fg *model.FileGraph) {
	decl := n.ChildByFieldName("declaration")
	if decl != nil {
		name := declaredName(decl, source)
		if name != "" {
			fg.Exports[name] = true
		}
		return
	}
	for i := 0; i < n.ChildCount(); i++ {
		if n.Child(i).Type() == "export_clause" {
			clause := n.Child(i)
			for j := 0; j < clause.ChildCount(); j++ {
				spec := clause.Child(j)
				if spec.Type() != "export_specifier" {
					continue
				}
				nameNode := spec.ChildByFieldName("name")
				fg.Exports[ast.Text(nameNode, source)] = true
			}
		}
	}
}

func declaredName(decl ast.Node, source []byte) string {
	switch decl.Type() {
	case "class_declaration", "function_declaration", "interface_declaration", "abstract_class_declaration":
		return ast.Text(decl.ChildByFieldName("name"), source)
	case "lexical_declaration", "variable_declaration":
		for i := 0; i < decl.ChildCount(); i++ {
			if decl.Child(i).Type() == "variable_declarator" {
				return ast.Text(decl.Child(i).ChildByFieldName("name"), source)
			}
		}
	}
	return ""
}

func lastIdentifier(n ast.Node, source []byte) string {
	var last ast.Node
	for i := 0; i < n.ChildCount(); i++ {
		if n.Child(i).Type() == "identifier" {
			last = n.Child(i)
		}
	}
	return ast.Text(last, source)
}

func extractPython(root ast.Node, source []byte, fg *model.FileGraph) {
	for _, n := range root.DescendantsOfType("import_statement") {
		processPyImport(n, source, fg)
	}
	for _, n := range root.DescendantsOfType("import_from_statement") {
		processPyFromImport(n, source, fg)
	}
	for i := 0; i < root.ChildCount(); i++ {
		markPythonExport(root.Child(i), source, fg)
	}
}

func processPyImport(n ast.Node, source []byte, fg *model.FileGraph) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	addPyImportName(nameNode, source, fg)
}

func addPyImportName(nameNode ast.Node, source []byte, fg *model.FileGraph) {
	switch nameNode.Type() {
	case "aliased_import":
		module := ast.Text(nameNode.ChildByFieldName("name"), source)
		alias := ast.Text(nameNode.ChildByFieldName("alias"), source)
		fg.Imports = append(fg.Imports, model.ImportEntry{LocalName: alias, SourceModule: module})
	case "dotted_name":
		module := ast.Text(nameNode, source)
		fg.Imports = append(fg.Imports, model.ImportEntry{LocalName: module, SourceModule: module})
	}
}

func processPyFromImport(n ast.Node, source []byte, fg *model.FileGraph) {
	moduleNode := n.ChildByFieldName("module_name")
	module := ast.Text(moduleNode, source)
	for i := 0; i < n.ChildCount(); i++ {
		c := n.Child(i)
		switch c.Type() {
		case "aliased_import":
			imported := ast.Text(c.ChildByFieldName("name"), source)
			alias := ast.Text(c.ChildByFieldName("alias"), source)
			fg.Imports = append(fg.Imports, model.ImportEntry{LocalName: alias, SourceModule: module, ImportedName: imported})
		case "dotted_name", "identifier":
			if c == moduleNode {
				continue
			}
			imported := ast.Text(c, source)
			if imported == "" || imported == "*" {
				continue
			}
			fg.Imports = append(fg.Imports, model.ImportEntry{LocalName: imported, SourceModule: module, ImportedName: imported})
		case "wildcard_import":
			fg.Imports = append(fg.Imports, model.ImportEntry{SourceModule: module, IsNamespace: true})
		}
	}
}

func markPythonExport(n ast.Node, source []byte, fg *model.FileGraph) {
	switch n.Type() {
	case "class_definition", "function_definition":
		name := ast.Text(n.ChildByFieldName("name"), source)
		if name != "" && !strings.HasPrefix(name, "_") {
			fg.Exports[name] = true
		}
	case "decorated_definition":
		inner := n.ChildByFieldName("definition")
		if inner != nil {
			markPythonExport(inner, source, fg)
		}
	}
}

func extractRust(root ast.Node, source []byte, fg *model.FileGraph) {
	for _, n := range root.DescendantsOfType("use_declaration") {
		processRustUse(n, source, fg)
	}
	for i := 0; i < root.ChildCount(); i++ {
		markRustExport(root.Child(i), source, fg)
	}
}

func processRustUse(n ast.Node, source []byte, fg *model.FileGraph) {
	argNode := n.ChildByFieldName("argument")
	if argNode == nil {
		return
	}
	collectRustUsePaths(argNode, "", source, fg)
}

func collectRustUsePaths(n ast.Node, prefix string, source []byte, fg *model.FileGraph) {
	switch n.Type() {
	case "scoped_identifier":
		path := ast.Text(n.ChildByFieldName("path"), source)
		name := ast.Text(n.ChildByFieldName("name"), source)
		module := joinRustPath(prefix, path)
		fg.Imports = append(fg.Imports, model.ImportEntry{LocalName: name, SourceModule: joinRustPath(module, "")})
	case "scoped_use_list":
		path := ast.Text(n.ChildByFieldName("path"), source)
		list := n.ChildByFieldName("list")
		module := joinRustPath(prefix, path)
		if list != nil {
			for i := 0; i < list.ChildCount(); i++ {
				collectRustUsePaths(list.Child(i), module, source, fg)
			}
		}
	case "use_as_clause":
		path := ast.Text(n.ChildByFieldName("path"), source)
		alias := ast.Text(n.ChildByFieldName("alias"), source)
		fg.Imports = append(fg.Imports, model.ImportEntry{LocalName: alias, SourceModule: joinRustPath(prefix, ""), ImportedName: path})
	case "identifier", "self":
		name := ast.Text(n, source)
		fg.Imports = append(fg.Imports, model.ImportEntry{LocalName: name, SourceModule: joinRustPath(prefix, "")})
	case "use_wildcard":
		fg.Imports = append(fg.Imports, model.ImportEntry{SourceModule: joinRustPath(prefix, ""), IsNamespace: true})
	}
}

func joinRustPath(prefix, path string) string {
	if prefix == "" {
		return path
	}
	if path == "" {
		return prefix
	}
	return prefix + "::" + path
}

func markRustExport(n ast.Node, source []byte, fg *model.FileGraph) {
	switch n.Type() {
	case "struct_item", "trait_item", "enum_item", "function_item":
		if hasPubModifier(n, source) {
			name := ast.Text(n.ChildByFieldName("name"), source)
			if name != "" {
				fg.Exports[name] = true
			}
		}
	}
}

func hasPubModifier(n ast.Node, source []byte) bool {
	for i := 0; i < n.ChildCount(); i++ {
		if strings.HasPrefix(n.Child(i).Type(), "visibility_modifier") {
			return true
		}
	}
	return false
}
