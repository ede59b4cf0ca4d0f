package typetracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fakeast "github.com/codepathfinder/polyglot-callgraph/internal/ast"
	"github.com/codepathfinder/polyglot-callgraph/internal/langconfig"
	"github.com/codepathfinder/polyglot-callgraph/model"
)

func newTable(t *testing.T) *langconfig.Table {
	t.Helper()
	table, err := langconfig.NewTable(nil)
	require.NoError(t, err)
	return table
}

func TestSeedBindsSelfKeywordInJSMethod(t *testing.T) {
	table := newTable(t)
	cfg := table.Get(model.LangJavaScript)

	className := fakeast.NewFake("identifier").WithSpan(6, 12)

	methodName := fakeast.NewFake("property_identifier").WithSpan(20, 25)
	methodParams := fakeast.NewFake("formal_parameters")
	methodBody := fakeast.NewFake("statement_block")
	method := fakeast.NewFake("method_definition", methodName, methodParams, methodBody)
	method.WithField("name", methodName)
	method.WithField("parameters", methodParams)
	method.WithField("body", methodBody)

	body := fakeast.NewFake("class_body", method)
	class := fakeast.NewFake("class_declaration", className, body)
	class.WithField("name", className)
	class.WithField("body", body)

	tracker := New()
	Seed(tracker, cfg, model.LangJavaScript, class, []byte("class Widget { greet() {} }"), nil)

	info, ok := tracker.GetVariableType("this", LatestPosition)
	require.True(t, ok)
	assert.Equal(t, "Widget", info.TypeName)
	assert.Equal(t, model.SourceParameter, info.Source)
}

func TestSeedBindsSelfKeywordInPythonMethod(t *testing.T) {
	table := newTable(t)
	cfg := table.Get(model.LangPython)

	className := fakeast.NewFake("identifier").WithSpan(6, 12)

	methodName := fakeast.NewFake("identifier").WithSpan(20, 25)
	methodParams := fakeast.NewFake("parameters")
	methodBody := fakeast.NewFake("block")
	method := fakeast.NewFake("function_definition", methodName, methodParams, methodBody)
	method.WithField("name", methodName)
	method.WithField("parameters", methodParams)
	method.WithField("body", methodBody)

	body := fakeast.NewFake("block", method)
	class := fakeast.NewFake("class_definition", className, body)
	class.WithField("name", className)
	class.WithField("body", body)

	tracker := New()
	Seed(tracker, cfg, model.LangPython, class, []byte("class Widget:\n  def greet(self): pass\n"), nil)

	info, ok := tracker.GetVariableType("self", LatestPosition)
	require.True(t, ok)
	assert.Equal(t, "Widget", info.TypeName)
}

func TestSeedBindsSelfKeywordInRustImpl(t *testing.T) {
	table := newTable(t)
	cfg := table.Get(model.LangRust)

	typeField := fakeast.NewFake("identifier").WithSpan(5, 10)

	selfParam := fakeast.NewFake("self_parameter")
	methodParams := fakeast.NewFake("parameters", selfParam)
	methodName := fakeast.NewFake("identifier").WithSpan(20, 25)
	methodBody := fakeast.NewFake("block")
	method := fakeast.NewFake("function_item", methodName, methodParams, methodBody)
	method.WithField("name", methodName)
	method.WithField("parameters", methodParams)
	method.WithField("body", methodBody)

	implBody := fakeast.NewFake("declaration_list", method)
	impl := fakeast.NewFake("impl_item", typeField, implBody)
	impl.WithField("type", typeField)
	impl.WithField("body", implBody)

	tracker := New()
	Seed(tracker, cfg, model.LangRust, impl, []byte("impl Point { fn distance(&self) {} }"), nil)

	info, ok := tracker.GetVariableType("self", LatestPosition)
	require.True(t, ok)
	assert.Equal(t, "Point", info.TypeName)
}

func TestSeedBindsTypeScriptAnnotatedDeclaration(t *testing.T) {
	table := newTable(t)
	cfg := table.Get(model.LangTypeScript)

	source := []byte("let logger: ILogger = x;")

	varName := fakeast.NewFake("identifier").WithSpan(4, 10)
	typeIdent := fakeast.NewFake("type_identifier").WithSpan(12, 19)
	typeAnno := fakeast.NewFake("type_annotation", typeIdent)
	value := fakeast.NewFake("identifier").WithSpan(23, 24)

	declarator := fakeast.NewFake("variable_declarator", varName, typeAnno, value)
	declarator.WithField("name", varName)
	declarator.WithField("type", typeAnno)
	declarator.WithField("value", value)

	tracker := New()
	Seed(tracker, cfg, model.LangTypeScript, declarator, source, nil)

	info, ok := tracker.GetVariableType("logger", LatestPosition)
	require.True(t, ok)
	assert.Equal(t, "ILogger", info.TypeName)
	assert.Equal(t, model.SourceAnnotation, info.Source)
	assert.Equal(t, model.ConfidenceExplicit, info.Confidence)
}

func TestSeedBindsJSConstructorAssignment(t *testing.T) {
	table := newTable(t)
	cfg := table.Get(model.LangJavaScript)

	source := []byte("let logger = new ConsoleLogger();")

	varName := fakeast.NewFake("identifier").WithSpan(4, 10)
	ctorNode := fakeast.NewFake("identifier").WithSpan(17, 30)
	ctorArgs := fakeast.NewFake("arguments")
	newExpr := fakeast.NewFake("new_expression", ctorNode, ctorArgs)
	newExpr.WithField("constructor", ctorNode)
	newExpr.WithField("arguments", ctorArgs)

	declarator := fakeast.NewFake("variable_declarator", varName, newExpr)
	declarator.WithField("name", varName)
	declarator.WithField("value", newExpr)

	classes := []*model.ClassDefinition{{Name: "ConsoleLogger"}}

	tracker := New()
	Seed(tracker, cfg, model.LangJavaScript, declarator, source, classes)

	info, ok := tracker.GetVariableType("logger", LatestPosition)
	require.True(t, ok)
	assert.Equal(t, "ConsoleLogger", info.TypeName)
	assert.Equal(t, model.SourceConstructor, info.Source)
}

func TestSeedBindsPythonConstructorAssignment(t *testing.T) {
	table := newTable(t)
	cfg := table.Get(model.LangPython)

	source := []byte("w = Widget()")

	varName := fakeast.NewFake("identifier").WithSpan(0, 1)
	callee := fakeast.NewFake("identifier").WithSpan(4, 10)
	args := fakeast.NewFake("argument_list")
	call := fakeast.NewFake("call", callee, args)
	call.WithField("function", callee)
	call.WithField("arguments", args)

	assignment := fakeast.NewFake("assignment", varName, call)
	assignment.WithField("left", varName)
	assignment.WithField("right", call)

	classes := []*model.ClassDefinition{{Name: "Widget"}}

	tracker := New()
	Seed(tracker, cfg, model.LangPython, assignment, source, classes)

	info, ok := tracker.GetVariableType("w", LatestPosition)
	require.True(t, ok)
	assert.Equal(t, "Widget", info.TypeName)
}

func TestSeedBindsRustLetConstructorAssignment(t *testing.T) {
	table := newTable(t)
	cfg := table.Get(model.LangRust)

	source := []byte("let p = Point::new();")

	pattern := fakeast.NewFake("identifier").WithSpan(4, 5)
	path := fakeast.NewFake("identifier").WithSpan(8, 13)
	name := fakeast.NewFake("identifier").WithSpan(15, 18)
	scoped := fakeast.NewFake("scoped_identifier", path, name)
	scoped.WithField("path", path)
	scoped.WithField("name", name)
	args := fakeast.NewFake("arguments")
	call := fakeast.NewFake("call_expression", scoped, args)
	call.WithField("function", scoped)
	call.WithField("arguments", args)

	letDecl := fakeast.NewFake("let_declaration", pattern, call)
	letDecl.WithField("pattern", pattern)
	letDecl.WithField("value", call)

	classes := []*model.ClassDefinition{{Name: "Point"}}

	tracker := New()
	Seed(tracker, cfg, model.LangRust, letDecl, source, classes)

	info, ok := tracker.GetVariableType("p", LatestPosition)
	require.True(t, ok)
	assert.Equal(t, "Point", info.TypeName)
}

func TestSeedAlwaysBindsClassNameToItself(t *testing.T) {
	classes := []*model.ClassDefinition{{Name: "Widget"}}

	tracker := New()
	Seed(tracker, nil, model.LangJavaScript, nil, nil, classes)

	info, ok := tracker.GetVariableType("Widget", LatestPosition)
	require.True(t, ok)
	assert.Equal(t, "Widget", info.TypeName)
	assert.Equal(t, model.SourceConstructor, info.Source)
}
