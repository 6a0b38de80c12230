package extract

import (
	"context"
	"fmt"
	"io"
	"os"
)

// TextSource supplies the OCR text block for a single document. The text
// may be empty; downstream parsing handles that without error.
type TextSource interface {
	Text(ctx context.Context) (string, error)
}

// FileSource reads pre-extracted OCR text from a plain-text file, or from
// stdin when the path is "-".
type FileSource struct {
	Path string
}

func (f FileSource) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.Path == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", f.Path, err)
	}
	return string(b), nil
}

// StringSource wraps an in-memory text block, mostly for tests and
// embedding callers.
type StringSource string

func (s StringSource) Text(ctx context.Context) (string, error) {
	return string(s), nil
}
