package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// Config for the Gemini client.
type Config struct {
	APIKey string
	Model  string // default "gemini-2.5-flash"
}

// Client implements llm.TextGenerator against the Gemini API.
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
	name   string
	logger *slog.Logger
}

func NewClient(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if logger == nil {
		logger = slog.Default()
	}
	gc, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &Client{
		client: gc,
		model:  gc.GenerativeModel(cfg.Model),
		name:   cfg.Model,
		logger: logger,
	}, nil
}

// GenerateText sends the prompt and concatenates the text parts of the
// first candidate.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	rid := uuid.New().String()
	start := time.Now()
	c.logger.Info("gemini.generate.start", "req_id", rid, "model", c.name, "prompt_len", len(prompt))

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		c.logger.Error("gemini.generate.error", "req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return "", fmt.Errorf("generating content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		c.logger.Error("gemini.generate.empty", "req_id", rid,
			"elapsed_ms", time.Since(start).Milliseconds())
		return "", fmt.Errorf("no response from gemini")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	c.logger.Info("gemini.generate.ok", "req_id", rid, "bytes", b.Len(),
		"elapsed_ms", time.Since(start).Milliseconds())
	return b.String(), nil
}

// Close releases the underlying API client.
func (c *Client) Close() error {
	return c.client.Close()
}
