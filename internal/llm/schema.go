package llm

// BuildReceiptJSONSchema returns the expected response shape as a
// JSON-Schema (draft 2020-12 subset) generic map. Validation against it is
// advisory: a payload that fails the schema still goes through per-field
// coercion, the schema result only feeds diagnostics.
func BuildReceiptJSONSchema() map[string]any {
	amount := map[string]any{"type": []string{"number", "string", "null"}}
	item := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":        map[string]any{"type": "string", "minLength": 1},
			"quantity":    map[string]any{"type": []string{"number", "string", "null"}},
			"unit_price":  amount,
			"total_price": amount,
		},
		"required": []string{"name"},
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"merchant_name":  map[string]any{"type": "string"},
			"purchased_at":   map[string]any{"type": []string{"string", "null"}},
			"total_amount":   amount,
			"subtotal":       amount,
			"tax_amount":     amount,
			"tip_amount":     amount,
			"payment_method": map[string]any{"type": "string"},
			"receipt_number": map[string]any{"type": "string"},
			"cashier":        map[string]any{"type": "string"},
			"items":          map[string]any{"type": "array", "items": item},
		},
	}
}
