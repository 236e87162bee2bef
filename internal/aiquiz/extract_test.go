package aiquiz

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "FencedWithPreamble",
			raw:  "Here you go:\n```json\n{\"questions\":[]}\n```\nThanks!",
			want: `{"questions":[]}`,
		},
		{
			name: "PlainObject",
			raw:  `  {"questions":[{"question":"q"}]}  `,
			want: `{"questions":[{"question":"q"}]}`,
		},
		{
			name: "BareFence",
			raw:  "```\n{\"a\":1}\n```",
			want: `{"a":1}`,
		},
		{
			name: "FenceInsideStringValue",
			raw:  "```json\n{\"question\":\"Which marks a code block: ```json\\n?\"}\n```",
			want: "{\"question\":\"Which marks a code block: ```json\\n?\"}",
		},
		{
			name: "TrailingProse",
			raw:  "Sure! {\"a\":{\"b\":2}} Hope this helps.",
			want: `{"a":{"b":2}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractJSONNoObject(t *testing.T) {
	for _, raw := range []string{"", "no json here", "} backwards {", "```json\n```"} {
		_, err := ExtractJSON(raw)

		var ee *ExtractionError
		require.True(t, errors.As(err, &ee), "raw=%q", raw)
		assert.ErrorIs(t, err, ErrNoJSONObject)
	}
}

func TestExtractJSONThenDecode(t *testing.T) {
	raw := "Here you go:\n```json\n" + validQuizJSON("Cells") + "\n```"

	candidate, err := ExtractJSON(raw)
	require.NoError(t, err)

	var payload any
	require.NoError(t, json.Unmarshal([]byte(candidate), &payload))
	questions, err := ValidateQuiz(payload)
	require.NoError(t, err)
	assert.Len(t, questions, 4)
}
