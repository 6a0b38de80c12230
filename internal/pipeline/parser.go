package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/receipt-parser/internal/entity"
	"github.com/joseph-ayodele/receipt-parser/internal/llm"
	"github.com/joseph-ayodele/receipt-parser/internal/parser"
)

// Config holds the orchestrator's behavior. Generator is the optional
// external text-generation collaborator; when it is nil every parse goes
// straight to the heuristic path. The collaborator-available branch is
// therefore an explicit, testable condition, not hidden env inspection.
type Config struct {
	Generator llm.TextGenerator
	Timeout   time.Duration // budget for the single collaborator attempt
}

// Parser is the single entry point for turning OCR text into a structured
// receipt. It holds no mutable state across calls, so one Parser is safe
// for concurrent use on independent inputs.
type Parser struct {
	logger *slog.Logger
	cfg    Config
}

func NewParser(cfg Config, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	return &Parser{logger: logger, cfg: cfg}
}

// Parse always returns a receipt, possibly sparse, and never an error.
// When a collaborator is configured it gets a single attempt; any failure
// on that path falls back to the heuristic parser and is visible only in
// the log.
func (p *Parser) Parse(ctx context.Context, ocrText string) *entity.Receipt {
	if p.cfg.Generator == nil {
		return parser.Parse(ocrText)
	}
	rec, err := p.parseWithGenerator(ctx, ocrText)
	if err != nil {
		p.logger.Warn("parse.fallback", "error", err)
		return parser.Parse(ocrText)
	}
	return rec
}

func (p *Parser) parseWithGenerator(ctx context.Context, ocrText string) (*entity.Receipt, error) {
	rid := uuid.New().String()
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	p.logger.Info("parse.generate.start", "req_id", rid, "text_len", len(ocrText))

	out, err := p.cfg.Generator.GenerateText(ctx, llm.BuildReceiptPrompt(ocrText))
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	if strings.TrimSpace(out) == "" {
		return nil, fmt.Errorf("empty response from generator")
	}

	cleaned := []byte(llm.StripCodeFence(out))
	payload, err := llm.DecodePayload(cleaned)
	if err != nil {
		return nil, err
	}
	if err := llm.ValidateResponseSchema(cleaned); err != nil {
		p.logger.Warn("parse.generate.schema_mismatch", "req_id", rid, "error", err)
	}

	rec := llm.CoerceReceipt(payload)
	p.logger.Info("parse.generate.ok",
		"req_id", rid,
		"merchant", rec.MerchantName,
		"items", len(rec.Items),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return rec, nil
}
