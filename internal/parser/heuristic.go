package parser

import (
	"strings"

	"github.com/joseph-ayodele/receipt-parser/internal/entity"
)

// Parse runs the full heuristic extraction pipeline over a block of OCR
// text. Every sub-extractor degrades to absent/empty instead of failing,
// so Parse always returns a receipt, possibly sparse, and never an error.
func Parse(text string) *entity.Receipt {
	lines := SplitLines(text)

	rec := &entity.Receipt{}
	rec.MerchantName = ExtractMerchantName(lines)
	if ts, ok := ExtractDateTime(text); ok {
		rec.PurchasedAt = &ts
	}
	amounts := ExtractAmounts(text)
	rec.TotalAmount = amounts.Total
	rec.Subtotal = amounts.Subtotal
	rec.TaxAmount = amounts.Tax
	rec.TipAmount = amounts.Tip
	rec.PaymentMethod = ExtractPaymentMethod(text)
	rec.ReceiptNumber = ExtractReceiptNumber(text)
	rec.Cashier = ExtractCashier(text)
	rec.Items = ExtractItems(lines)
	return rec
}

// SplitLines returns the trimmed, non-blank lines of a text block.
func SplitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
