package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/joseph-ayodele/receipt-parser/internal/common"
	"github.com/joseph-ayodele/receipt-parser/internal/entity"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS receipts (
	id             TEXT PRIMARY KEY,
	merchant_name  TEXT NOT NULL DEFAULT '',
	purchased_at   TEXT,
	total_amount   TEXT,
	subtotal       TEXT,
	tax_amount     TEXT,
	tip_amount     TEXT,
	payment_method TEXT NOT NULL DEFAULT '',
	receipt_number TEXT NOT NULL DEFAULT '',
	cashier        TEXT NOT NULL DEFAULT '',
	created_at     TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS receipt_items (
	receipt_id  TEXT NOT NULL REFERENCES receipts(id) ON DELETE CASCADE,
	position    INTEGER NOT NULL,
	name        TEXT NOT NULL,
	quantity    TEXT NOT NULL,
	unit_price  TEXT,
	total_price TEXT,
	PRIMARY KEY (receipt_id, position)
);`

// OpenSQLite opens (and if needed initializes) a local sqlite store.
func OpenSQLite(path string, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, common.WrapError(err, "open sqlite")
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, common.WrapError(err, "apply receipts schema")
	}
	logger.Info("sqlite store ready", "path", path)
	return db, nil
}

type sqliteRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteRepository returns a ReceiptRepository backed by a local sqlite
// file, for single-user CLI use.
func NewSQLiteRepository(db *sql.DB, logger *slog.Logger) ReceiptRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &sqliteRepository{db: db, logger: logger}
}

func (r *sqliteRepository) CreateReceipt(ctx context.Context, rec *entity.Receipt) (*StoredReceipt, error) {
	id := uuid.New()
	now := time.Now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.WrapError(err, "begin tx")
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO receipts
			(id, merchant_name, purchased_at, total_amount, subtotal, tax_amount, tip_amount,
			 payment_method, receipt_number, cashier, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		id.String(), rec.MerchantName, timeToDB(rec.PurchasedAt),
		decToDB(rec.TotalAmount), decToDB(rec.Subtotal), decToDB(rec.TaxAmount), decToDB(rec.TipAmount),
		rec.PaymentMethod, rec.ReceiptNumber, rec.Cashier, now.Format(time.RFC3339),
	)
	if err != nil {
		r.logger.Error("failed to insert receipt", "error", err)
		return nil, common.WrapError(err, "insert receipt")
	}

	for i, item := range rec.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO receipt_items (receipt_id, position, name, quantity, unit_price, total_price)
			VALUES (?,?,?,?,?,?)`,
			id.String(), i, item.Name, item.Quantity.String(), decToDB(item.UnitPrice), decToDB(item.TotalPrice),
		)
		if err != nil {
			r.logger.Error("failed to insert receipt item", "error", err, "position", i)
			return nil, common.WrapError(err, "insert receipt item")
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, common.WrapError(err, "commit tx")
	}

	r.logger.Info("receipt stored", "receipt_id", id, "merchant", rec.MerchantName, "items", len(rec.Items))
	return &StoredReceipt{ID: id, CreatedAt: now, Receipt: *rec}, nil
}

func (r *sqliteRepository) ListReceipts(ctx context.Context, fromDate, toDate *time.Time) ([]*StoredReceipt, error) {
	q := `
		SELECT id, merchant_name, purchased_at, total_amount, subtotal, tax_amount, tip_amount,
		       payment_method, receipt_number, cashier, created_at
		FROM receipts`
	args := []any{}
	where := ""
	if fromDate != nil {
		where += " WHERE purchased_at >= ?"
		args = append(args, fromDate.UTC().Format(time.RFC3339))
	}
	if toDate != nil {
		if where == "" {
			where += " WHERE purchased_at <= ?"
		} else {
			where += " AND purchased_at <= ?"
		}
		args = append(args, toDate.UTC().Format(time.RFC3339))
	}
	rows, err := r.db.QueryContext(ctx, q+where+" ORDER BY created_at", args...)
	if err != nil {
		return nil, common.WrapError(err, "list receipts")
	}
	defer rows.Close()

	var out []*StoredReceipt
	for rows.Next() {
		var (
			sr                   StoredReceipt
			idStr, createdAt     string
			purchasedAt          *string
			total, sub, tax, tip *string
		)
		if err := rows.Scan(&idStr, &sr.MerchantName, &purchasedAt,
			&total, &sub, &tax, &tip,
			&sr.PaymentMethod, &sr.ReceiptNumber, &sr.Cashier, &createdAt); err != nil {
			return nil, common.WrapError(err, "scan receipt")
		}
		if sr.ID, err = uuid.Parse(idStr); err != nil {
			return nil, common.WrapError(err, "parse receipt id")
		}
		sr.PurchasedAt = timeFromDB(purchasedAt)
		if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
			sr.CreatedAt = ts
		}
		sr.TotalAmount = decFromDB(total)
		sr.Subtotal = decFromDB(sub)
		sr.TaxAmount = decFromDB(tax)
		sr.TipAmount = decFromDB(tip)
		out = append(out, &sr)
	}
	if err := rows.Err(); err != nil {
		return nil, common.WrapError(err, "iterate receipts")
	}

	for _, sr := range out {
		items, err := r.listItems(ctx, sr.ID)
		if err != nil {
			return nil, err
		}
		sr.Items = items
	}
	return out, nil
}

func (r *sqliteRepository) listItems(ctx context.Context, receiptID uuid.UUID) ([]entity.LineItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, quantity, unit_price, total_price
		FROM receipt_items WHERE receipt_id = ? ORDER BY position`, receiptID.String())
	if err != nil {
		return nil, common.WrapError(err, "list receipt items")
	}
	defer rows.Close()

	items := make([]entity.LineItem, 0)
	for rows.Next() {
		var (
			item      entity.LineItem
			qty       string
			unit, tot *string
		)
		if err := rows.Scan(&item.Name, &qty, &unit, &tot); err != nil {
			return nil, common.WrapError(err, "scan receipt item")
		}
		if q := decFromDB(&qty); q != nil {
			item.Quantity = *q
		}
		item.UnitPrice = decFromDB(unit)
		item.TotalPrice = decFromDB(tot)
		items = append(items, item)
	}
	return items, rows.Err()
}

func timeToDB(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func timeFromDB(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}
