package llm

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/receipt-parser/internal/entity"
)

func decode(t *testing.T, raw string) map[string]any {
	t.Helper()
	payload, err := DecodePayload([]byte(raw))
	require.NoError(t, err)
	return payload
}

func TestCoerceReceiptWellFormed(t *testing.T) {
	payload := decode(t, `{
		"merchant_name": "SUPERMART",
		"purchased_at": "2024-01-15T14:30:00",
		"total_amount": 5.50,
		"subtotal": "5.06",
		"tax_amount": 0.44,
		"payment_method": "visa",
		"receipt_number": "998877",
		"cashier": "Alice",
		"items": [
			{"name": "MILK", "quantity": 1, "unit_price": 3.50, "total_price": 3.50},
			{"name": "BREAD", "quantity": 2, "unit_price": 1.00, "total_price": 2.00}
		]
	}`)

	rec := CoerceReceipt(payload)
	require.NotNil(t, rec)

	assert.Equal(t, "SUPERMART", rec.MerchantName)

	require.NotNil(t, rec.PurchasedAt)
	want := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)
	assert.True(t, want.Equal(*rec.PurchasedAt))

	require.NotNil(t, rec.TotalAmount)
	assert.Equal(t, "5.50", rec.TotalAmount.StringFixed(2))
	require.NotNil(t, rec.Subtotal)
	assert.Equal(t, "5.06", rec.Subtotal.StringFixed(2))
	require.NotNil(t, rec.TaxAmount)
	assert.Equal(t, "0.44", rec.TaxAmount.StringFixed(2))
	assert.Nil(t, rec.TipAmount)

	assert.Equal(t, "VISA", rec.PaymentMethod)
	assert.Equal(t, "998877", rec.ReceiptNumber)
	assert.Equal(t, "Alice", rec.Cashier)

	require.Len(t, rec.Items, 2)
	assert.Equal(t, "MILK", rec.Items[0].Name)
	assert.Equal(t, "1", rec.Items[0].Quantity.String())
	assert.Equal(t, "2", rec.Items[1].Quantity.String())
	require.NotNil(t, rec.Items[1].TotalPrice)
	assert.Equal(t, "2.00", rec.Items[1].TotalPrice.StringFixed(2))
}

func TestCoerceReceiptDropsBadFieldsNotTheRecord(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		validate func(t *testing.T, rec *entity.Receipt)
	}{
		{
			name: "empty payload yields empty receipt",
			raw:  `{}`,
			validate: func(t *testing.T, rec *entity.Receipt) {
				assert.Empty(t, rec.MerchantName)
				assert.Nil(t, rec.PurchasedAt)
				assert.Nil(t, rec.TotalAmount)
				require.NotNil(t, rec.Items)
				assert.Empty(t, rec.Items)
			},
		},
		{
			name: "null fields treated as missing",
			raw:  `{"merchant_name": null, "purchased_at": null, "total_amount": null, "items": null}`,
			validate: func(t *testing.T, rec *entity.Receipt) {
				assert.Empty(t, rec.MerchantName)
				assert.Nil(t, rec.PurchasedAt)
				assert.Nil(t, rec.TotalAmount)
				assert.Empty(t, rec.Items)
			},
		},
		{
			name: "negative amount dropped others kept",
			raw:  `{"merchant_name": "X", "total_amount": -5, "tax_amount": 0.44}`,
			validate: func(t *testing.T, rec *entity.Receipt) {
				assert.Equal(t, "X", rec.MerchantName)
				assert.Nil(t, rec.TotalAmount)
				require.NotNil(t, rec.TaxAmount)
				assert.Equal(t, "0.44", rec.TaxAmount.StringFixed(2))
			},
		},
		{
			name: "zero amount is valid",
			raw:  `{"tax_amount": 0}`,
			validate: func(t *testing.T, rec *entity.Receipt) {
				require.NotNil(t, rec.TaxAmount)
				assert.True(t, rec.TaxAmount.IsZero())
			},
		},
		{
			name: "amounts given as strings",
			raw:  `{"total_amount": "19.99"}`,
			validate: func(t *testing.T, rec *entity.Receipt) {
				require.NotNil(t, rec.TotalAmount)
				assert.Equal(t, "19.99", rec.TotalAmount.StringFixed(2))
			},
		},
		{
			name: "unparseable timestamp dropped",
			raw:  `{"purchased_at": "sometime last week"}`,
			validate: func(t *testing.T, rec *entity.Receipt) {
				assert.Nil(t, rec.PurchasedAt)
			},
		},
		{
			name: "literal null string is not a timestamp",
			raw:  `{"purchased_at": "null"}`,
			validate: func(t *testing.T, rec *entity.Receipt) {
				assert.Nil(t, rec.PurchasedAt)
			},
		},
		{
			name: "date only timestamp accepted",
			raw:  `{"purchased_at": "2024-01-15"}`,
			validate: func(t *testing.T, rec *entity.Receipt) {
				require.NotNil(t, rec.PurchasedAt)
				want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
				assert.True(t, want.Equal(*rec.PurchasedAt))
			},
		},
		{
			name: "rfc3339 timestamp normalized to utc",
			raw:  `{"purchased_at": "2024-01-15T14:30:00Z"}`,
			validate: func(t *testing.T, rec *entity.Receipt) {
				require.NotNil(t, rec.PurchasedAt)
				want := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)
				assert.True(t, want.Equal(*rec.PurchasedAt))
			},
		},
		{
			name: "non string merchant coerced or emptied",
			raw:  `{"merchant_name": 42, "cashier": {"no": "dice"}}`,
			validate: func(t *testing.T, rec *entity.Receipt) {
				assert.Equal(t, "42", rec.MerchantName)
				assert.Empty(t, rec.Cashier)
			},
		},
		{
			name: "items with non list shape become empty",
			raw:  `{"items": "MILK, BREAD"}`,
			validate: func(t *testing.T, rec *entity.Receipt) {
				require.NotNil(t, rec.Items)
				assert.Empty(t, rec.Items)
			},
		},
		{
			name: "nameless item dropped",
			raw:  `{"items": [{"quantity": 2, "total_price": 5}, {"name": "EGGS"}]}`,
			validate: func(t *testing.T, rec *entity.Receipt) {
				require.Len(t, rec.Items, 1)
				assert.Equal(t, "EGGS", rec.Items[0].Name)
			},
		},
		{
			name: "zero and negative quantities default to one",
			raw:  `{"items": [{"name": "MILK", "quantity": 0}, {"name": "BREAD", "quantity": -3}]}`,
			validate: func(t *testing.T, rec *entity.Receipt) {
				require.Len(t, rec.Items, 2)
				assert.Equal(t, "1", rec.Items[0].Quantity.String())
				assert.Equal(t, "1", rec.Items[1].Quantity.String())
			},
		},
		{
			name: "fractional quantity kept",
			raw:  `{"items": [{"name": "APPLES", "quantity": 1.5}]}`,
			validate: func(t *testing.T, rec *entity.Receipt) {
				require.Len(t, rec.Items, 1)
				assert.Equal(t, "1.5", rec.Items[0].Quantity.String())
			},
		},
		{
			name: "negative item price dropped name kept",
			raw:  `{"items": [{"name": "MILK", "unit_price": -1, "total_price": 3.50}]}`,
			validate: func(t *testing.T, rec *entity.Receipt) {
				require.Len(t, rec.Items, 1)
				assert.Nil(t, rec.Items[0].UnitPrice)
				require.NotNil(t, rec.Items[0].TotalPrice)
				assert.Equal(t, "3.50", rec.Items[0].TotalPrice.StringFixed(2))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := CoerceReceipt(decode(t, tt.raw))
			require.NotNil(t, rec)
			tt.validate(t, rec)
		})
	}
}

// Coercing the JSON of an already-coerced receipt must change nothing.
func TestCoerceReceiptIdempotent(t *testing.T) {
	first := CoerceReceipt(decode(t, `{
		"merchant_name": "SUPERMART",
		"purchased_at": "2024-01-15T14:30:00",
		"total_amount": 5.50,
		"payment_method": "VISA",
		"items": [{"name": "MILK", "quantity": 1, "unit_price": 3.50, "total_price": 3.50}]
	}`))

	raw, err := json.Marshal(first)
	require.NoError(t, err)

	second := CoerceReceipt(decode(t, string(raw)))

	again, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(again))
}
