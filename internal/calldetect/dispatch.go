package calldetect

import (
	"github.com/codepathfinder/polyglot-callgraph/internal/ast"
	"github.com/codepathfinder/polyglot-callgraph/internal/langconfig"
	"github.com/codepathfinder/polyglot-callgraph/internal/typetracker"
	"github.com/codepathfinder/polyglot-callgraph/model"
)

// applyBespokeMethodEnhancers runs the per-language enhancer(s) over a
// generically-extracted method call, selected by language tag rather than
// by a detector-type hierarchy (design notes).
func applyBespokeMethodEnhancers(lang model.Language, cfg *langconfig.Config, mc *model.MethodCallInfo, call, callee ast.Node, source []byte, tracker *typetracker.Tracker) {
	switch lang {
	case model.LangJavaScript:
		enhanceJSMethodCall(cfg, mc, call, callee, source)
	case model.LangTypeScript:
		enhanceJSMethodCall(cfg, mc, call, callee, source)
		enhanceTSMethodCall(mc, call, source)
	case model.LangPython:
		enhancePythonMethodCall(cfg, mc, call, callee, source, tracker)
	case model.LangRust:
		enhanceRustMethodCall(cfg, mc, call, callee, source)
	}
}
