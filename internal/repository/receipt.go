package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/receipt-parser/internal/entity"
)

// StoredReceipt is a parsed receipt as persisted: the structured record
// plus the storage-owned identity and timestamp.
type StoredReceipt struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	entity.Receipt
}

// ReceiptRepository is the create/read-list boundary to the relational
// store. The parsing core never touches it; callers own persistence.
type ReceiptRepository interface {
	CreateReceipt(ctx context.Context, rec *entity.Receipt) (*StoredReceipt, error)
	ListReceipts(ctx context.Context, fromDate, toDate *time.Time) ([]*StoredReceipt, error)
}

// Money columns travel as numeric strings so decimals round-trip without
// float drift, regardless of driver.
func decToDB(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func decFromDB(s *string) *decimal.Decimal {
	if s == nil {
		return nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil
	}
	return &d
}
