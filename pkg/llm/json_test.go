package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "bare object",
			input:    `{"a": 1}`,
			expected: `{"a": 1}`,
		},
		{
			name:     "bare array",
			input:    `[{"index": 0, "isReal": true}]`,
			expected: `[{"index": 0, "isReal": true}]`,
		},
		{
			name:     "markdown fenced",
			input:    "```json\n[{\"index\": 0}]\n```",
			expected: `[{"index": 0}]`,
		},
		{
			name:     "prose around payload",
			input:    "Here is my assessment:\n[{\"index\": 1, \"adjustment\": -0.1}]\nLet me know.",
			expected: `[{"index": 1, "adjustment": -0.1}]`,
		},
		{
			name:     "nested braces",
			input:    `result: {"outer": {"inner": [1, 2]}}`,
			expected: `{"outer": {"inner": [1, 2]}}`,
		},
		{
			name:     "braces inside strings",
			input:    `{"text": "a { tricky } value"}`,
			expected: `{"text": "a { tricky } value"}`,
		},
		{
			name:    "no json",
			input:   "I cannot help with that.",
			wantErr: true,
		},
		{
			name:    "unbalanced",
			input:   `{"a": 1`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseJSONResponse(t *testing.T) {
	type assessment struct {
		Index  int  `json:"index"`
		IsReal bool `json:"isReal"`
	}

	got, err := ParseJSONResponse[[]assessment]("```json\n[{\"index\": 2, \"isReal\": false}]\n```")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Index)
	assert.False(t, got[0].IsReal)

	_, err = ParseJSONResponse[[]assessment](`{"index": "not-an-array"}`)
	require.Error(t, err)
}
