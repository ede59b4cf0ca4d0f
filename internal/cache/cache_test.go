package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codepathfinder/polyglot-callgraph/model"
)

func oneClassHierarchy() *model.ClassHierarchy {
	h := model.NewClassHierarchy()
	h.Nodes["Base"] = &model.ClassNode{
		Definition: &model.ClassDefinition{Name: "Base"},
		Methods:    map[string]*model.MethodDefinition{"greet": {Name: "greet"}},
		MRO:        []model.SymbolID{"Base"},
	}
	return h
}

func TestResolveIsMemoized(t *testing.T) {
	c := New()
	h := oneClassHierarchy()

	first := c.Resolve(h, "Base", "greet")
	require.True(t, first.Found)

	// Mutate the hierarchy after the first call; a cache hit should still
	// return the original memoized result rather than recomputing.
	delete(h.Nodes, "Base")
	second := c.Resolve(h, "Base", "greet")
	assert.Equal(t, first, second)
}

func TestAnalyzeVirtualCallIsMemoized(t *testing.T) {
	c := New()
	h := oneClassHierarchy()

	first := c.AnalyzeVirtualCall(h, "Base", "greet")
	delete(h.Nodes, "Base")
	second := c.AnalyzeVirtualCall(h, "Base", "greet")
	assert.Equal(t, first, second)
}

func TestDistinctKeysDoNotCollide(t *testing.T) {
	c := New()
	h := oneClassHierarchy()
	h.Nodes["Other"] = &model.ClassNode{
		Definition: &model.ClassDefinition{Name: "Other"},
		Methods:    map[string]*model.MethodDefinition{"greet": {Name: "greet"}},
		MRO:        []model.SymbolID{"Other"},
	}

	base := c.Resolve(h, "Base", "greet")
	other := c.Resolve(h, "Other", "greet")
	assert.Equal(t, model.SymbolID("Base"), base.DefiningClass)
	assert.Equal(t, model.SymbolID("Other"), other.DefiningClass)
}
