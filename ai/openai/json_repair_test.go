package openai

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepairJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"valid passthrough",
			`{"triples":[{"s":"a","p":"b","o":"c","confidence":0.9}]}`,
			`{"triples":[{"s":"a","p":"b","o":"c","confidence":0.9}]}`,
		},
		{
			"missing opening quote on key",
			`{s":"a", confidence":0.9}`,
			`{"s":"a", "confidence":0.9}`,
		},
		{
			"underscored key",
			`{role_restriction":[]}`,
			`{"role_restriction":[]}`,
		},
		{
			"empty",
			``,
			``,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, repairJSON(tt.input))
		})
	}
}

func TestStripFences(t *testing.T) {
	fenced := "```json\n{\"entities\":[],\"triples\":[]}\n```"
	stripped := stripFences(fenced)

	var wire wireExtraction
	require.NoError(t, json.Unmarshal([]byte(stripped), &wire))
	assert.Empty(t, wire.Entities)
	assert.Empty(t, wire.Triples)

	assert.Equal(t, `{"a":1}`, stripFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences(`{"a":1}`))
}
