package llm

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/receipt-parser/internal/entity"
	"github.com/joseph-ayodele/receipt-parser/internal/parser"
)

// fieldCoercion maps one response key to the rule that moves it onto the
// receipt. Keeping the rules in a table keeps the validator enumerable and
// testable field by field.
type fieldCoercion struct {
	key   string
	apply func(rec *entity.Receipt, v any)
}

var fieldCoercions = []fieldCoercion{
	{"merchant_name", func(r *entity.Receipt, v any) { r.MerchantName = coerceString(v) }},
	{"purchased_at", func(r *entity.Receipt, v any) {
		if ts, ok := coerceTimestamp(v); ok {
			r.PurchasedAt = &ts
		}
	}},
	{"total_amount", func(r *entity.Receipt, v any) { r.TotalAmount = coerceAmount(v) }},
	{"subtotal", func(r *entity.Receipt, v any) { r.Subtotal = coerceAmount(v) }},
	{"tax_amount", func(r *entity.Receipt, v any) { r.TaxAmount = coerceAmount(v) }},
	{"tip_amount", func(r *entity.Receipt, v any) { r.TipAmount = coerceAmount(v) }},
	{"payment_method", func(r *entity.Receipt, v any) { r.PaymentMethod = strings.ToUpper(coerceString(v)) }},
	{"receipt_number", func(r *entity.Receipt, v any) { r.ReceiptNumber = coerceString(v) }},
	{"cashier", func(r *entity.Receipt, v any) { r.Cashier = coerceString(v) }},
	{"items", func(r *entity.Receipt, v any) { r.Items = coerceItems(v) }},
}

// CoerceReceipt builds a fully-typed receipt from an untrusted payload.
// Field presence, types, and ranges are not trusted: every field is
// checked independently and a field that fails its own check is dropped,
// never the whole record. The result satisfies the entity invariants no
// matter how malformed the input was, and coercing an already-valid
// receipt's own JSON is a no-op.
func CoerceReceipt(payload map[string]any) *entity.Receipt {
	rec := &entity.Receipt{Items: []entity.LineItem{}}
	for _, fc := range fieldCoercions {
		fc.apply(rec, payload[fc.key])
	}
	return rec
}

func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

var timestampLayouts = []string{
	time.RFC3339, // accepts the trailing UTC zone marker
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func coerceTimestamp(v any) (time.Time, bool) {
	s := coerceString(v)
	if s == "" || strings.EqualFold(s, "null") {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}

func coerceAmount(v any) *decimal.Decimal {
	if d, ok := parser.NormalizeAmount(v); ok {
		return &d
	}
	return nil
}

func coerceQuantity(v any) (decimal.Decimal, bool) {
	d, ok := parser.NormalizeAmount(v)
	if !ok || !d.IsPositive() {
		return decimal.Decimal{}, false
	}
	return d, true
}

func coerceItems(v any) []entity.LineItem {
	items := make([]entity.LineItem, 0)
	list, ok := v.([]any)
	if !ok {
		return items
	}
	for _, el := range list {
		obj, ok := el.(map[string]any)
		if !ok {
			continue
		}
		name := coerceString(obj["name"])
		if name == "" {
			continue
		}
		item := entity.LineItem{Name: name, Quantity: decimal.NewFromInt(1)}
		if q, ok := coerceQuantity(obj["quantity"]); ok {
			item.Quantity = q
		}
		item.UnitPrice = coerceAmount(obj["unit_price"])
		item.TotalPrice = coerceAmount(obj["total_price"])
		items = append(items, item)
	}
	return items
}
