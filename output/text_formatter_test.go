package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codepathfinder/polyglot-callgraph/model"
)

func sampleFile() model.EnrichedFileAnalysis {
	return model.EnrichedFileAnalysis{
		FilePath: "widget.py",
		Classes: []*model.ClassDefinition{
			{Name: "Widget", Extends: []string{"Base"}},
		},
		FunctionCalls: []model.EnrichedFunctionCall{
			{FunctionCallInfo: model.FunctionCallInfo{FunctionName: "helper"}, ResolvedFunction: "widget#helper", Confidence: 0.8},
		},
		MethodCalls: []model.EnrichedMethodCall{
			{MethodCallInfo: model.MethodCallInfo{Receiver: "w", MethodName: "go"}, DefiningClass: "widget#Widget", DispatchType: model.DispatchStatic, Confidence: 1.0},
		},
	}
}

func TestTextFormatterNoFilesMessage(t *testing.T) {
	var buf bytes.Buffer
	f := NewTextFormatterWithWriter(&buf, nil)
	require.NoError(t, f.Format(nil, nil))
	assert.Contains(t, buf.String(), "No files analyzed.")
}

func TestTextFormatterListsClassesAlways(t *testing.T) {
	var buf bytes.Buffer
	f := NewTextFormatterWithWriter(&buf, NewDefaultOptions())
	require.NoError(t, f.Format([]model.EnrichedFileAnalysis{sampleFile()}, nil))

	out := buf.String()
	assert.Contains(t, out, "widget.py")
	assert.Contains(t, out, "class Widget")
	assert.Contains(t, out, "extends [Base]")
	// default verbosity hides per-call detail
	assert.NotContains(t, out, "helper")
}

func TestTextFormatterShowsCallDetailWhenVerbose(t *testing.T) {
	var buf bytes.Buffer
	opts := NewDefaultOptions()
	opts.Verbosity = VerbosityVerbose
	f := NewTextFormatterWithWriter(&buf, opts)

	require.NoError(t, f.Format([]model.EnrichedFileAnalysis{sampleFile()}, nil))

	out := buf.String()
	assert.Contains(t, out, "w.go()")
	assert.Contains(t, out, "helper()")
	assert.Contains(t, out, "Summary:")
}

func TestTextFormatterShowsDiagnosticsWhenVerbose(t *testing.T) {
	var buf bytes.Buffer
	opts := NewDefaultOptions()
	opts.Verbosity = VerbosityVerbose
	f := NewTextFormatterWithWriter(&buf, opts)

	diags := []model.Diagnostic{{Severity: model.SeverityWarn, Kind: model.KindMalformedInput, Message: "bad token"}}
	require.NoError(t, f.Format([]model.EnrichedFileAnalysis{sampleFile()}, diags))

	assert.Contains(t, buf.String(), "bad token")
}
