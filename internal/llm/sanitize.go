package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// StripCodeFence removes markdown code-fence markup around a JSON payload
// and narrows to the outermost object. Models frequently wrap their JSON
// in ```json fences despite the prompt's JSON-only contract. The brace
// narrowing is deliberately more tolerant than fence stripping alone:
// prose-wrapped responses that would otherwise force a heuristic fallback
// still yield their embedded object.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end < start {
		return s
	}
	return s[start : end+1]
}

// DecodePayload decodes a cleaned response body into a generic payload.
// Numbers are kept as json.Number so amounts reach the decimal layer in
// their literal string form.
func DecodePayload(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode response payload: %w", err)
	}
	return m, nil
}
