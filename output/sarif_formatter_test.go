package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codepathfinder/polyglot-callgraph/model"
)

func TestSARIFFormatterFlagsLowConfidenceAndDynamicDispatch(t *testing.T) {
	var buf bytes.Buffer
	f := NewSARIFFormatterWithWriter(&buf, nil)

	files := []model.EnrichedFileAnalysis{
		{
			FilePath: "a.py",
			FunctionCalls: []model.EnrichedFunctionCall{
				{FunctionCallInfo: model.FunctionCallInfo{FunctionName: "lowconf"}, Confidence: 0.3},
				{FunctionCallInfo: model.FunctionCallInfo{FunctionName: "highconf"}, Confidence: 0.9},
			},
			MethodCalls: []model.EnrichedMethodCall{
				{
					MethodCallInfo:  model.MethodCallInfo{MethodName: "m"},
					IsVirtualCall:   true,
					PossibleTargets: []model.SymbolID{"A", "B"},
					Confidence:      0.9,
				},
			},
		},
	}

	require.NoError(t, f.Format(files))

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	runs := doc["runs"].([]interface{})
	require.Len(t, runs, 1)
	run := runs[0].(map[string]interface{})
	results := run["results"].([]interface{})

	// one low-confidence function call + one dynamic-dispatch method call
	require.Len(t, results, 2)
}

func TestSARIFFormatterNoFindingsProducesEmptyResults(t *testing.T) {
	var buf bytes.Buffer
	f := NewSARIFFormatterWithWriter(&buf, nil)

	files := []model.EnrichedFileAnalysis{
		{
			FilePath: "clean.py",
			FunctionCalls: []model.EnrichedFunctionCall{
				{FunctionCallInfo: model.FunctionCallInfo{FunctionName: "ok"}, Confidence: 1.0},
			},
		},
	}
	require.NoError(t, f.Format(files))

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	run := doc["runs"].([]interface{})[0].(map[string]interface{})
	results, ok := run["results"].([]interface{})
	if ok {
		assert.Empty(t, results)
	}
}
