package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joseph-ayodele/receipt-parser/internal/common"
	"github.com/joseph-ayodele/receipt-parser/internal/entity"
)

// OpenPool creates a pgx pool from database configuration and applies the
// receipts schema, so a fresh database is usable immediately.
func OpenPool(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("connecting to database")

	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, common.WrapError(err, "parse database config")
	}
	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = cfg.MaxConnLifetime
	pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	pc.ConnConfig.RuntimeParams["application_name"] = "receipt-parser"

	ctx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return nil, common.WrapError(err, "connect database")
	}
	if err := migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("successfully connected to database")
	return pool, nil
}

// migrate applies the receipts schema; safe to run on every startup.
func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		return common.WrapError(err, "apply receipts schema")
	}
	return nil
}

type postgresRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewPostgresRepository returns a ReceiptRepository backed by postgres.
func NewPostgresRepository(pool *pgxpool.Pool, logger *slog.Logger) ReceiptRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &postgresRepository{pool: pool, logger: logger}
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS receipts (
	id             uuid PRIMARY KEY,
	merchant_name  text NOT NULL DEFAULT '',
	purchased_at   timestamptz,
	total_amount   numeric,
	subtotal       numeric,
	tax_amount     numeric,
	tip_amount     numeric,
	payment_method text NOT NULL DEFAULT '',
	receipt_number text NOT NULL DEFAULT '',
	cashier        text NOT NULL DEFAULT '',
	created_at     timestamptz NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS receipt_items (
	receipt_id  uuid NOT NULL REFERENCES receipts(id) ON DELETE CASCADE,
	position    int NOT NULL,
	name        text NOT NULL,
	quantity    numeric NOT NULL,
	unit_price  numeric,
	total_price numeric,
	PRIMARY KEY (receipt_id, position)
);`

func (r *postgresRepository) CreateReceipt(ctx context.Context, rec *entity.Receipt) (*StoredReceipt, error) {
	id := uuid.New()
	now := time.Now().UTC()

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, common.WrapError(err, "begin tx")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO receipts
			(id, merchant_name, purchased_at, total_amount, subtotal, tax_amount, tip_amount,
			 payment_method, receipt_number, cashier, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		id, rec.MerchantName, rec.PurchasedAt,
		decToDB(rec.TotalAmount), decToDB(rec.Subtotal), decToDB(rec.TaxAmount), decToDB(rec.TipAmount),
		rec.PaymentMethod, rec.ReceiptNumber, rec.Cashier, now,
	)
	if err != nil {
		r.logger.Error("failed to insert receipt", "error", err)
		return nil, common.WrapError(err, "insert receipt")
	}

	for i, item := range rec.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO receipt_items (receipt_id, position, name, quantity, unit_price, total_price)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			id, i, item.Name, item.Quantity.String(), decToDB(item.UnitPrice), decToDB(item.TotalPrice),
		)
		if err != nil {
			r.logger.Error("failed to insert receipt item", "error", err, "position", i)
			return nil, common.WrapError(err, "insert receipt item")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, common.WrapError(err, "commit tx")
	}

	r.logger.Info("receipt stored", "receipt_id", id, "merchant", rec.MerchantName, "items", len(rec.Items))
	return &StoredReceipt{ID: id, CreatedAt: now, Receipt: *rec}, nil
}

func (r *postgresRepository) ListReceipts(ctx context.Context, fromDate, toDate *time.Time) ([]*StoredReceipt, error) {
	q := `
		SELECT id, merchant_name, purchased_at,
		       total_amount::text, subtotal::text, tax_amount::text, tip_amount::text,
		       payment_method, receipt_number, cashier, created_at
		FROM receipts`
	args := []any{}
	where := ""
	if fromDate != nil {
		args = append(args, *fromDate)
		where += fmt.Sprintf(" WHERE purchased_at >= $%d", len(args))
	}
	if toDate != nil {
		args = append(args, *toDate)
		if where == "" {
			where += fmt.Sprintf(" WHERE purchased_at <= $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND purchased_at <= $%d", len(args))
		}
	}
	rows, err := r.pool.Query(ctx, q+where+" ORDER BY created_at", args...)
	if err != nil {
		return nil, common.WrapError(err, "list receipts")
	}
	defer rows.Close()

	var out []*StoredReceipt
	for rows.Next() {
		var (
			sr                   StoredReceipt
			total, sub, tax, tip *string
		)
		if err := rows.Scan(&sr.ID, &sr.MerchantName, &sr.PurchasedAt,
			&total, &sub, &tax, &tip,
			&sr.PaymentMethod, &sr.ReceiptNumber, &sr.Cashier, &sr.CreatedAt); err != nil {
			return nil, common.WrapError(err, "scan receipt")
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

func (r *postgresRepository) listItems(ctx context.Context, receiptID uuid.UUID) ([]entity.LineItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT name, quantity::text, unit_price::text, total_price::text
		FROM receipt_items WHERE receipt_id = $1 ORDER BY position`, receiptID)
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
