package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/joseph-ayodele/receipt-parser/internal/common"
	"github.com/joseph-ayodele/receipt-parser/internal/export"
	"github.com/joseph-ayodele/receipt-parser/internal/repository"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()

	fs := ff.NewFlagSet("receipt-export")
	var (
		dbURL      = fs.StringLong("db", cfg.Database.DSN, "Postgres connection string (or DB_URL env var)")
		sqlitePath = fs.StringLong("sqlite", cfg.Database.Path, "Sqlite database file (used when --db is empty)")
		fromStr    = fs.StringLong("from", "", "Only receipts purchased on or after this date (YYYY-MM-DD)")
		toStr      = fs.StringLong("to", "", "Only receipts purchased on or before this date (YYYY-MM-DD)")
		out        = fs.StringLong("out", "receipts.xlsx", "Output xlsx path")
	)
	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix("RECEIPT_PARSER")); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	from, err := parseDateFlag(*fromStr)
	if err != nil {
		logger.Error("invalid --from", "error", err)
		os.Exit(2)
	}
	to, err := parseDateFlag(*toStr)
	if err != nil {
		logger.Error("invalid --to", "error", err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var repo repository.ReceiptRepository
	switch {
	case *dbURL != "":
		cfg.Database.DSN = *dbURL
		pool, err := repository.OpenPool(ctx, cfg.Database, logger)
		if err != nil {
			logger.Error("connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		repo = repository.NewPostgresRepository(pool, logger)
	case *sqlitePath != "":
		db, err := repository.OpenSQLite(*sqlitePath, logger)
		if err != nil {
			logger.Error("open database", "error", err)
			os.Exit(1)
		}
		defer func() { _ = db.Close() }()
		repo = repository.NewSQLiteRepository(db, logger)
	default:
		logger.Error("no store configured, pass --db or --sqlite")
		os.Exit(2)
	}

	data, err := export.NewService(repo, logger).ExportReceiptsXLSX(ctx, from, to)
	if err != nil {
		logger.Error("export receipts", "error", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, data, 0o644); err != nil {
		logger.Error("write workbook", "error", err)
		os.Exit(1)
	}
	logger.Info("workbook written", "path", *out, "bytes", len(data))
}

func parseDateFlag(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
