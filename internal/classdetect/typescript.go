package classdetect

import (
	"github.com/codepathfinder/polyglot-callgraph/internal/ast"
	"github.com/codepathfinder/polyglot-callgraph/model"
)

// enhanceTypeScript layers TypeScript-only distinctions onto a definition
// already built by the generic walk: `interface` declarations (tracked
// separately from classes so the hierarchy builder can mark them
// interface-only), `abstract class` declarations, and exported visibility
// (spec §4.2.2).
func enhanceTypeScript(def *model.ClassDefinition, n ast.Node, source []byte) {
	switch n.Type() {
	case "interface_declaration":
		def.Flags.IsInterface = true
	case "abstract_class_declaration":
		def.Flags.IsAbstract = true
	}

	if p := n.Parent(); p != nil && p.Type() == "export_statement" {
		def.Flags.IsExported = true
	}
}
