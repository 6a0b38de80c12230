package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt represents a structured receipt produced by a parse. String
// fields are trimmed and empty when unknown; optional amounts are nil when
// unknown and non-negative otherwise. A Receipt is built fresh per parse
// and never mutated by the parsing layers afterward.
type Receipt struct {
	MerchantName  string           `json:"merchant_name"`
	PurchasedAt   *time.Time       `json:"purchased_at,omitempty"`
	TotalAmount   *decimal.Decimal `json:"total_amount,omitempty"`
	Subtotal      *decimal.Decimal `json:"subtotal,omitempty"`
	TaxAmount     *decimal.Decimal `json:"tax_amount,omitempty"`
	TipAmount     *decimal.Decimal `json:"tip_amount,omitempty"`
	PaymentMethod string           `json:"payment_method"`
	ReceiptNumber string           `json:"receipt_number"`
	Cashier       string           `json:"cashier"`
	Items         []LineItem       `json:"items"`
}

// LineItem is a single purchased item, in the order it appeared on the
// receipt. Quantity is always strictly positive; it defaults to 1 when the
// source gave none or gave garbage.
type LineItem struct {
	Name       string           `json:"name"`
	Quantity   decimal.Decimal  `json:"quantity"`
	UnitPrice  *decimal.Decimal `json:"unit_price,omitempty"`
	TotalPrice *decimal.Decimal `json:"total_price,omitempty"`
}
