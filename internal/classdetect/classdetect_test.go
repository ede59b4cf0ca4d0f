package classdetect

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

// buildJSClass builds `class Widget extends Base { constructor() {} }`.
func buildJSClass() (*fakeast.FakeNode, []byte) {
	source := []byte("class Widget extends Base { constructor() {} }")

	name := fakeast.NewFake("identifier").WithSpan(6, 12)
	baseIdent := fakeast.NewFake("identifier").WithSpan(21, 25)
	extendsClause := fakeast.NewFake("extends_clause", baseIdent)
	heritage := fakeast.NewFake("class_heritage", extendsClause)

	ctorName := fakeast.NewFake("property_identifier").WithSpan(28, 39)
	params := fakeast.NewFake("formal_parameters")
	ctor := fakeast.NewFake("method_definition", ctorName, params)
	ctor.WithField("name", ctorName)
	ctor.WithField("parameters", params)

	body := fakeast.NewFake("class_body", ctor)

	class := fakeast.NewFake("class_declaration", name, heritage, body)
	class.WithField("name", name)
	class.WithField("class_heritage", heritage)
	class.WithField("body", body)
	class.WithSpan(0, uint32(len(source)))

	return class, source
}

func TestDetectJavaScriptClassWithHeritageAndConstructor(t *testing.T) {
	det := NewDetector(newTable(t))
	class, source := buildJSClass()

	defs := det.Detect(model.LangJavaScript, "widget.js", class, source)
	require.Len(t, defs, 1)

	def := defs[0]
	assert.Equal(t, "Widget", def.Name)
	assert.Equal(t, []string{"Base"}, def.Extends)
	require.Len(t, def.Methods, 1)
	assert.Equal(t, "constructor", def.Methods[0].Name)
	assert.True(t, def.Methods[0].Flags.IsConstructor)
}

func TestDetectSkipsNestedClassDeclarations(t *testing.T) {
	det := NewDetector(newTable(t))

	innerName := fakeast.NewFake("identifier").WithSpan(0, 5)
	innerBody := fakeast.NewFake("class_body")
	inner := fakeast.NewFake("class_declaration", innerName, innerBody)
	inner.WithField("name", innerName)
	inner.WithField("body", innerBody)

	outerName := fakeast.NewFake("identifier").WithSpan(0, 5)
	outerBody := fakeast.NewFake("class_body", inner)
	outer := fakeast.NewFake("class_declaration", outerName, outerBody)
	outer.WithField("name", outerName)
	outer.WithField("body", outerBody)

	defs := det.Detect(model.LangJavaScript, "nested.js", outer, []byte("Outer"))
	require.Len(t, defs, 1)
	assert.NotEqual(t, "", defs[0].Name)
}

func TestDetectUnsupportedLanguageReturnsEmptyNonNil(t *testing.T) {
	det := NewDetector(newTable(t))
	defs := det.Detect(model.Language("cobol"), "x.cob", fakeast.NewFake("program"), []byte(""))
	assert.NotNil(t, defs)
	assert.Len(t, defs, 0)
}

func TestDetectNilRootReturnsEmpty(t *testing.T) {
	det := NewDetector(newTable(t))
	defs := det.Detect(model.LangJavaScript, "x.js", nil, []byte(""))
	assert.NotNil(t, defs)
	assert.Len(t, defs, 0)
}

// TestDetectRustTraitImplKeepsMethodsOnTraitNotType builds:
//
//	struct Point { x: f64, y: f64 }
//	impl Display for Point { fn fmt(&self) {} }
//	impl Point { fn distance(&self) {} }
//
// and asserts `fmt` lands on a synthesized Display definition (not Point's),
// while `distance` stays on Point, and Point.Implements still records
// "Display" for the hierarchy edge.
func TestDetectRustTraitImplKeepsMethodsOnTraitNotType(t *testing.T) {
	det := NewDetector(newTable(t))

	source := []byte("struct Point {} impl Display for Point { fn fmt(&self) {} } impl Point { fn distance(&self) {} }")

	structName := fakeast.NewFake("identifier").WithSpan(7, 12)
	structItem := fakeast.NewFake("struct_item", structName)
	structItem.WithField("name", structName)

	fmtSelf := fakeast.NewFake("self_parameter")
	fmtParams := fakeast.NewFake("parameters", fmtSelf)
	fmtName := fakeast.NewFake("identifier").WithSpan(44, 47)
	fmtBody := fakeast.NewFake("block")
	fmtFn := fakeast.NewFake("function_item", fmtName, fmtParams, fmtBody)
	fmtFn.WithField("name", fmtName)
	fmtFn.WithField("parameters", fmtParams)
	fmtFn.WithField("body", fmtBody)

	traitImplBody := fakeast.NewFake("declaration_list", fmtFn)
	traitField := fakeast.NewFake("identifier").WithSpan(21, 28)
	typeField1 := fakeast.NewFake("identifier").WithSpan(33, 38)
	traitImpl := fakeast.NewFake("impl_item", traitField, typeField1, traitImplBody)
	traitImpl.WithField("trait", traitField)
	traitImpl.WithField("type", typeField1)
	traitImpl.WithField("body", traitImplBody)

	distSelf := fakeast.NewFake("self_parameter")
	distParams := fakeast.NewFake("parameters", distSelf)
	distName := fakeast.NewFake("identifier").WithSpan(76, 84)
	distBody := fakeast.NewFake("block")
	distFn := fakeast.NewFake("function_item", distName, distParams, distBody)
	distFn.WithField("name", distName)
	distFn.WithField("parameters", distParams)
	distFn.WithField("body", distBody)

	inherentImplBody := fakeast.NewFake("declaration_list", distFn)
	typeField2 := fakeast.NewFake("identifier").WithSpan(65, 70)
	inherentImpl := fakeast.NewFake("impl_item", typeField2, inherentImplBody)
	inherentImpl.WithField("type", typeField2)
	inherentImpl.WithField("body", inherentImplBody)

	root := fakeast.NewFake("source_file", structItem, traitImpl, inherentImpl)

	defs := det.Detect(model.LangRust, "point.rs", root, source)

	var point, display *model.ClassDefinition
	for _, d := range defs {
		switch d.Name {
		case "Point":
			point = d
		case "Display":
			display = d
		}
	}
	require.NotNil(t, point)
	require.NotNil(t, display)

	assert.Contains(t, point.Implements, "Display")
	require.Len(t, point.Methods, 1)
	assert.Equal(t, "distance", point.Methods[0].Name)

	require.Len(t, display.Methods, 1)
	assert.Equal(t, "fmt", display.Methods[0].Name)
	assert.True(t, display.Flags.IsTrait)
	assert.True(t, display.Flags.IsInterface)
}

func TestExtractAnonymousClassExpressionTakesVariableName(t *testing.T) {
	det := NewDetector(newTable(t))

	body := fakeast.NewFake("class_body")
	class := fakeast.NewFake("class", body)
	class.WithField("body", body)

	idName := fakeast.NewFake("identifier").WithSpan(4, 5)
	declarator := fakeast.NewFake("variable_declarator", idName, class)
	declarator.WithField("name", idName)

	defs := det.Detect(model.LangJavaScript, "anon.js", declarator, []byte("let X = class {}"))
	require.Len(t, defs, 1)
	assert.Equal(t, "X", defs[0].Name)
}
