package diagnostics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codepathfinder/polyglot-callgraph/model"
)

func TestReportStampsRunID(t *testing.T) {
	s := NewSink()
	s.MalformedInput("a.py", "unexpected token")

	diags := s.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, s.RunID(), diags[0].RunID)
	assert.Equal(t, model.SeverityWarn, diags[0].Severity)
	assert.Equal(t, model.KindMalformedInput, diags[0].Kind)
}

func TestUnsupportedLanguageReportsInfo(t *testing.T) {
	s := NewSink()
	s.UnsupportedLanguage("x.cob", "cobol")

	diags := s.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, model.SeverityInfo, diags[0].Severity)
	assert.Equal(t, model.KindUnsupportedLang, diags[0].Kind)
}

func TestHierarchyCycleAndMissingBodyScopeReportError(t *testing.T) {
	s := NewSink()
	s.HierarchyCycle("cycle involving Base", nil)
	s.MissingBodyScope("foo", nil)

	diags := s.Diagnostics()
	require.Len(t, diags, 2)
	assert.Equal(t, model.SeverityError, diags[0].Severity)
	assert.Equal(t, model.KindHierarchyCycle, diags[0].Kind)
	assert.Equal(t, model.SeverityError, diags[1].Severity)
	assert.Equal(t, model.KindMissingBodyScope, diags[1].Kind)
}

func TestDiagnosticsSnapshotIsIndependentOfFurtherReports(t *testing.T) {
	s := NewSink()
	s.MalformedInput("a.py", "first")

	snap := s.Diagnostics()
	s.MalformedInput("b.py", "second")

	assert.Len(t, snap, 1)
	assert.Len(t, s.Diagnostics(), 2)
}

func TestReportIsSafeForConcurrentUse(t *testing.T) {
	s := NewSink()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.MalformedInput("a.py", "concurrent")
		}()
	}
	wg.Wait()
	assert.Len(t, s.Diagnostics(), 50)
}
