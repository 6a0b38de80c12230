package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare json untouched", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"plain fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fence without trailing newline", "```json\n{\"a\": 1}```", `{"a": 1}`},
		{"prose around the object", "Here you go:\n{\"a\": 1}\nHope that helps!", `{"a": 1}`},
		{"narrows to outermost braces", `x {"a": {"b": 2}} y`, `{"a": {"b": 2}}`},
		{"no braces passes through", "not json at all", "not json at all"},
		{"whitespace trimmed", "  {\"a\": 1}  ", `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFence(tt.input))
		})
	}
}

func TestDecodePayload(t *testing.T) {
	payload, err := DecodePayload([]byte(`{"merchant_name": "X", "total_amount": 19.99}`))
	require.NoError(t, err)

	assert.Equal(t, "X", payload["merchant_name"])

	// Numbers must arrive as json.Number so the literal "19.99" survives
	// to the decimal layer.
	n, ok := payload["total_amount"].(json.Number)
	require.True(t, ok, "numbers should decode as json.Number, got %T", payload["total_amount"])
	assert.Equal(t, "19.99", n.String())
}

func TestDecodePayloadRejectsNonObject(t *testing.T) {
	_, err := DecodePayload([]byte(`"just a string"`))
	require.Error(t, err)

	_, err = DecodePayload([]byte(`{"broken": `))
	require.Error(t, err)
}
