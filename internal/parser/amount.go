package parser

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizeAmount interprets an arbitrary value as a non-negative currency
// amount. The decimal is always constructed from a string form of the
// value, never from an intermediate float literal, so "19.99" survives
// exactly. Non-numeric input, negative values, and decimal construction
// failures all degrade to absent (false); this never panics.
func NormalizeAmount(v any) (decimal.Decimal, bool) {
	var s string
	switch t := v.(type) {
	case nil:
		return decimal.Decimal{}, false
	case string:
		s = strings.TrimSpace(t)
	case json.Number:
		s = t.String()
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		s = strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		s = strconv.Itoa(t)
	case int64:
		s = strconv.FormatInt(t, 10)
	default:
		slog.Debug("amount.normalize.unsupported_type", "type", fmt.Sprintf("%T", v))
		return decimal.Decimal{}, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		slog.Debug("amount.normalize.non_numeric", "value", s)
		return decimal.Decimal{}, false
	}
	if f < 0 {
		slog.Debug("amount.normalize.negative", "value", s)
		return decimal.Decimal{}, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		slog.Debug("amount.normalize.decimal_error", "value", s, "error", err)
		return decimal.Decimal{}, false
	}
	return d, true
}
