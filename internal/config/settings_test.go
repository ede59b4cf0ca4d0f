package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codepathfinder/polyglot-callgraph/model"
)

func TestParseLanguagesEmptyMeansAll(t *testing.T) {
	langs, err := ParseLanguages("")
	require.NoError(t, err)
	assert.Nil(t, langs)
}

func TestParseLanguagesAliasesAndFullNames(t *testing.T) {
	langs, err := ParseLanguages("js,python,rs")
	require.NoError(t, err)
	assert.True(t, langs[model.LangJavaScript])
	assert.True(t, langs[model.LangPython])
	assert.True(t, langs[model.LangRust])
	assert.False(t, langs[model.LangTypeScript])
}

func TestParseLanguagesRejectsUnknownToken(t *testing.T) {
	_, err := ParseLanguages("js,cobol")
	assert.Error(t, err)
}

func TestBuildTableWithNoOverrideUsesDefaults(t *testing.T) {
	s := Settings{}
	table, err := s.BuildTable()
	require.NoError(t, err)
	assert.NotNil(t, table.Get(model.LangPython))
}

func TestBuildTableAppliesOperatorOverride(t *testing.T) {
	dir := t.TempDir()
	overridePath := filepath.Join(dir, "override.yaml")
	content := "language: python\ncall_expression_types:\n  - call\n"
	require.NoError(t, os.WriteFile(overridePath, []byte(content), 0o644))

	s := Settings{ConfigPath: overridePath}
	table, err := s.BuildTable()
	require.NoError(t, err)

	cfg := table.Get(model.LangPython)
	require.NotNil(t, cfg)
	assert.Equal(t, []string{"call"}, cfg.CallExpressionTypes)
}

func TestBuildTableRejectsOverrideMissingLanguage(t *testing.T) {
	dir := t.TempDir()
	overridePath := filepath.Join(dir, "override.yaml")
	require.NoError(t, os.WriteFile(overridePath, []byte("call_expression_types: [call]\n"), 0o644))

	s := Settings{ConfigPath: overridePath}
	_, err := s.BuildTable()
	assert.Error(t, err)
}
