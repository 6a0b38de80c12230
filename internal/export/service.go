package export

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/receipt-parser/internal/repository"
)

// Service is a tiny façade over the receipt store that produces XLSX
// bytes for exports.
type Service struct {
	repo   repository.ReceiptRepository
	logger *slog.Logger
}

func NewService(repo repository.ReceiptRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// ExportReceiptsXLSX returns an XLSX workbook (as bytes) for the given
// purchase-date window. Nil bounds leave that side open.
func (s *Service) ExportReceiptsXLSX(ctx context.Context, from, to *time.Time) ([]byte, error) {
	start := time.Now()

	recs, err := s.repo.ListReceipts(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("query receipts: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Receipts"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Purchased At",
		"Merchant",
		"Subtotal",
		"Tax",
		"Tip",
		"Total",
		"Payment Method",
		"Receipt #",
		"Cashier",
		"Items",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range recs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		if r.PurchasedAt != nil {
			write(1, r.PurchasedAt.Format("2006-01-02 15:04"))
		} else {
			write(1, "")
		}
		write(2, r.MerchantName)
		write(3, amountCell(r.Subtotal))
		write(4, amountCell(r.TaxAmount))
		write(5, amountCell(r.TipAmount))
		write(6, amountCell(r.TotalAmount))
		write(7, r.PaymentMethod)
		write(8, r.ReceiptNumber)
		write(9, r.Cashier)
		write(10, itemsSummary(r))

		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 17) // purchased at
	_ = f.SetColWidth(sheet, "B", "B", 28) // merchant
	_ = f.SetColWidth(sheet, "J", "J", 60) // items

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("receipts exported",
		"rows", len(recs),
		"bytes", buf.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func amountCell(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}

func itemsSummary(r *repository.StoredReceipt) string {
	parts := make([]string, 0, len(r.Items))
	for _, item := range r.Items {
		p := item.Name
		if item.TotalPrice != nil {
			p = fmt.Sprintf("%s (%s @ %s)", item.Name, item.Quantity.String(), item.TotalPrice.StringFixed(2))
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, "; ")
}
