package ai

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoJSON is returned when the model output contains no JSON value.
var ErrNoJSON = errors.New("no json found in model output")

// DecodeJSON decodes model output into v. Markdown code fences and any prose around
// the outermost array or object are discarded.
func DecodeJSON(text string, v any) error {
	s := stripFences(text)
	if err := json.Unmarshal([]byte(s), v); err == nil {
		return nil
	}

	start := strings.IndexAny(s, "[{")
	if start < 0 {
		return ErrNoJSON
	}
	closing := "]"
	if s[start] == '{' {
		closing = "}"
	}
	end := strings.LastIndex(s, closing)
	if end <= start {
		return ErrNoJSON
	}
	return json.Unmarshal([]byte(s[start:end+1]), v)
}

func stripFences(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Drop the language tag line (```json).
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
