package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codepathfinder/polyglot-callgraph/model"
)

func classDef(filePath, name string, lang model.Language, extends ...string) *model.ClassDefinition {
	return &model.ClassDefinition{
		Name:     name,
		FilePath: filePath,
		Language: lang,
		Extends:  extends,
		Methods:  []*model.MethodDefinition{{Name: "greet"}},
	}
}

func TestInsertFileBuildsNodesAndEdges(t *testing.T) {
	b := NewBuilder()
	b.InsertFile("a.py", []*model.ClassDefinition{
		classDef("a.py", "Base", model.LangPython),
		classDef("a.py", "Derived", model.LangPython, "Base"),
	})

	h := b.Hierarchy()
	baseID := model.NewSymbolID("a.py", "Base")
	derivedID := model.NewSymbolID("a.py", "Derived")

	base, ok := h.Get(baseID)
	require.True(t, ok)
	derived, ok := h.Get(derivedID)
	require.True(t, ok)

	assert.Equal(t, []model.SymbolID{baseID}, derived.BaseClasses)
	assert.Equal(t, []model.SymbolID{derivedID}, base.DerivedClasses)
	assert.True(t, base.HasMethod("greet"))
}

func TestInsertFileReindexIsIdempotent(t *testing.T) {
	b := NewBuilder()
	defs := []*model.ClassDefinition{classDef("a.py", "Widget", model.LangPython)}

	b.InsertFile("a.py", defs)
	firstCount := len(b.Hierarchy().Nodes)

	// Re-inserting the same file's contributions must not accumulate stale
	// nodes or duplicate edges.
	b.InsertFile("a.py", defs)
	assert.Equal(t, firstCount, len(b.Hierarchy().Nodes))
	assert.Len(t, b.Hierarchy().Nodes, 1)
}

func TestInsertFileReindexDropsRemovedClasses(t *testing.T) {
	b := NewBuilder()
	b.InsertFile("a.py", []*model.ClassDefinition{
		classDef("a.py", "Widget", model.LangPython),
		classDef("a.py", "Gadget", model.LangPython),
	})
	require.Len(t, b.Hierarchy().Nodes, 2)

	// Re-index with Gadget removed: the stale node must disappear.
	b.InsertFile("a.py", []*model.ClassDefinition{
		classDef("a.py", "Widget", model.LangPython),
	})
	assert.Len(t, b.Hierarchy().Nodes, 1)
	_, ok := b.Hierarchy().Get(model.NewSymbolID("a.py", "Gadget"))
	assert.False(t, ok)
}

func TestRelinkEdgesRecordsUnresolvedExternalVerbatim(t *testing.T) {
	b := NewBuilder()
	b.InsertFile("a.js", []*model.ClassDefinition{
		classDef("a.js", "Widget", model.LangJavaScript, "MissingBase"),
	})

	node, ok := b.Hierarchy().Get(model.NewSymbolID("a.js", "Widget"))
	require.True(t, ok)
	require.Len(t, node.BaseClasses, 1)
	assert.Equal(t, model.SymbolID("MissingBase"), node.BaseClasses[0])
}

func TestRelinkEdgesResolvesCrossFileByBareName(t *testing.T) {
	b := NewBuilder()
	b.InsertFile("base.js", []*model.ClassDefinition{
		classDef("base.js", "Base", model.LangJavaScript),
	})
	b.InsertFile("derived.js", []*model.ClassDefinition{
		classDef("derived.js", "Derived", model.LangJavaScript, "Base"),
	})

	derived, ok := b.Hierarchy().Get(model.NewSymbolID("derived.js", "Derived"))
	require.True(t, ok)
	require.Len(t, derived.BaseClasses, 1)
	assert.Equal(t, model.NewSymbolID("base.js", "Base"), derived.BaseClasses[0])
}

func TestMROParentChainForSingleInheritanceLanguage(t *testing.T) {
	b := NewBuilder()
	b.InsertFile("a.ts", []*model.ClassDefinition{
		classDef("a.ts", "Base", model.LangTypeScript),
		classDef("a.ts", "Derived", model.LangTypeScript, "Base"),
		classDef("a.ts", "Concrete", model.LangTypeScript, "Derived"),
	})

	concrete, ok := b.Hierarchy().Get(model.NewSymbolID("a.ts", "Concrete"))
	require.True(t, ok)
	assert.Equal(t, []model.SymbolID{
		model.NewSymbolID("a.ts", "Concrete"),
		model.NewSymbolID("a.ts", "Derived"),
		model.NewSymbolID("a.ts", "Base"),
	}, concrete.MRO)
}

func TestMROC3LinearizationForPython(t *testing.T) {
	b := NewBuilder()
	// Classic diamond: C(A, B), A(O), B(O).
	b.InsertFile("diamond.py", []*model.ClassDefinition{
		classDef("diamond.py", "O", model.LangPython),
		classDef("diamond.py", "A", model.LangPython, "O"),
		classDef("diamond.py", "B", model.LangPython, "O"),
		classDef("diamond.py", "C", model.LangPython, "A", "B"),
	})

	c, ok := b.Hierarchy().Get(model.NewSymbolID("diamond.py", "C"))
	require.True(t, ok)
	assert.Equal(t, []model.SymbolID{
		model.NewSymbolID("diamond.py", "C"),
		model.NewSymbolID("diamond.py", "A"),
		model.NewSymbolID("diamond.py", "B"),
		model.NewSymbolID("diamond.py", "O"),
	}, c.MRO)
}

func TestMROFallsBackOnC3Cycle(t *testing.T) {
	b := NewBuilder()
	// A self-referential Extends list: A claims to extend itself. c3Linearize
	// should detect the cycle and computeMRO falls back to the parent-chain
	// walk, which tolerates repeats via its own visited set.
	b.InsertFile("cyclic.py", []*model.ClassDefinition{
		classDef("cyclic.py", "A", model.LangPython, "A"),
	})

	a, ok := b.Hierarchy().Get(model.NewSymbolID("cyclic.py", "A"))
	require.True(t, ok)
	assert.Equal(t, []model.SymbolID{model.NewSymbolID("cyclic.py", "A")}, a.MRO)
}

func TestInterfaceNodesAreMarkedFromFlags(t *testing.T) {
	b := NewBuilder()
	iface := classDef("a.ts", "Shape", model.LangTypeScript)
	iface.Flags.IsInterface = true
	b.InsertFile("a.ts", []*model.ClassDefinition{iface})

	assert.True(t, b.Hierarchy().IsInterface(model.NewSymbolID("a.ts", "Shape")))
}
