package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/joseph-ayodele/receipt-parser/internal/common"
	"github.com/joseph-ayodele/receipt-parser/internal/extract"
	"github.com/joseph-ayodele/receipt-parser/internal/llm"
	"github.com/joseph-ayodele/receipt-parser/internal/llm/gemini"
	"github.com/joseph-ayodele/receipt-parser/internal/llm/openai"
	"github.com/joseph-ayodele/receipt-parser/internal/pipeline"
	"github.com/joseph-ayodele/receipt-parser/internal/repository"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()

	fs := ff.NewFlagSet("receipt-parse")
	var (
		file       = fs.StringLong("file", "-", "Path to OCR text file ('-' for stdin)")
		provider   = fs.StringLong("provider", cfg.LLM.Provider, "Text-generation provider: 'gemini' or 'openai'")
		apiKey     = fs.StringLong("api-key", cfg.LLM.APIKey, "Provider API key (or GEMINI_API_KEY / OPENAI_API_KEY env var)")
		model      = fs.StringLong("model", cfg.LLM.Model, "Provider model name")
		timeout    = fs.DurationLong("timeout", cfg.LLM.Timeout, "Budget for the provider call")
		heuristics = fs.BoolLong("heuristics-only", "Skip the provider even when configured")
		dbURL      = fs.StringLong("db", cfg.Database.DSN, "Persist the parsed receipt to this postgres database (or DB_URL env var)")
		sqlitePath = fs.StringLong("sqlite", cfg.Database.Path, "Persist the parsed receipt to this sqlite file (used when --db is empty)")
	)
	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix("RECEIPT_PARSER")); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	cfg.LLM.Provider = *provider
	cfg.LLM.APIKey = *apiKey
	cfg.LLM.Model = *model
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	text, err := extract.FileSource{Path: *file}.Text(ctx)
	if err != nil {
		logger.Error("read input", "error", err)
		os.Exit(1)
	}

	var generator llm.TextGenerator
	if cfg.LLM.Enabled() && !*heuristics {
		switch cfg.LLM.Provider {
		case "openai":
			generator = openai.NewClient(openai.Config{
				APIKey:      cfg.LLM.APIKey,
				Model:       cfg.LLM.Model,
				Temperature: cfg.LLM.Temperature,
				Timeout:     *timeout,
			}, logger)
		default:
			gc, err := gemini.NewClient(ctx, gemini.Config{
				APIKey: cfg.LLM.APIKey,
				Model:  cfg.LLM.Model,
			}, logger)
			if err != nil {
				logger.Error("init gemini client", "error", err)
				os.Exit(1)
			}
			defer func() { _ = gc.Close() }()
			generator = gc
		}
	} else {
		logger.Warn("no text-generation provider configured, using heuristic parsing")
	}

	p := pipeline.NewParser(pipeline.Config{Generator: generator, Timeout: *timeout}, logger)
	rec := p.Parse(ctx, text)

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
			logger.Error("open store", "error", err)
			os.Exit(1)
		}
		defer func() { _ = db.Close() }()
		repo = repository.NewSQLiteRepository(db, logger)
	}

	if repo != nil {
		stored, err := repo.CreateReceipt(ctx, rec)
		if err != nil {
			logger.Error("store receipt", "error", err)
			os.Exit(1)
		}
		logger.Info("receipt persisted", "receipt_id", stored.ID)
	}

	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		logger.Error("encode receipt", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
