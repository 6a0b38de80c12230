package parser

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
		ok    bool
	}{
		{"string with decimals", "5.50", "5.5", true},
		{"string integer", "12", "12", true},
		{"zero is a valid amount", "0", "0", true},
		{"string with whitespace", "  19.99 ", "19.99", true},
		{"json number keeps literal form", json.Number("19.99"), "19.99", true},
		{"float64", float64(19.99), "19.99", true},
		{"int", 7, "7", true},
		{"int64", int64(42), "42", true},
		{"negative rejected", "-5", "", false},
		{"negative float rejected", float64(-0.01), "", false},
		{"non-numeric rejected", "abc", "", false},
		{"empty string rejected", "", "", false},
		{"nil rejected", nil, "", false},
		{"bool rejected", true, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := NormalizeAmount(tt.input)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, d.String())
			}
		})
	}
}

func TestNormalizeAmountExactness(t *testing.T) {
	// The decimal must be built from the string form, not from a float
	// round trip, so two decimal places stay two decimal places.
	d, ok := NormalizeAmount("3.50")
	require.True(t, ok)
	assert.Equal(t, "3.50", d.StringFixed(2))
	assert.True(t, d.Equal(d.Round(2)))
}
