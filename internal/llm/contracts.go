package llm

import "context"

// TextGenerator is the boundary to the external text-generation service.
// Implementations make a single attempt per call; retry policy, if any,
// belongs to the caller.
type TextGenerator interface {
	// GenerateText sends a prompt and returns the raw model response,
	// which is expected (but not guaranteed) to contain a JSON object.
	GenerateText(ctx context.Context, prompt string) (string, error)
}
