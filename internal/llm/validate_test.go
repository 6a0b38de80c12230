package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateResponseSchema(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name: "conforming payload",
			body: `{"merchant_name": "X", "total_amount": 5.50, "items": [{"name": "MILK"}]}`,
		},
		{
			name: "string amounts allowed",
			body: `{"total_amount": "5.50", "tax_amount": null}`,
		},
		{
			name: "unknown keys allowed",
			body: `{"merchant_name": "X", "confidence": 0.9}`,
		},
		{
			name:    "numeric merchant rejected",
			body:    `{"merchant_name": 42}`,
			wantErr: true,
		},
		{
			name:    "boolean amount rejected",
			body:    `{"total_amount": true}`,
			wantErr: true,
		},
		{
			name:    "nameless item rejected",
			body:    `{"items": [{"quantity": 2}]}`,
			wantErr: true,
		},
		{
			name:    "top level array rejected",
			body:    `[1, 2, 3]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResponseSchema([]byte(tt.body))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
