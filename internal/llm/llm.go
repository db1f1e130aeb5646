package llm

import (
	"context"
	"errors"
	"strings"
)

// Client abstracts text-completion providers. Implementations return the raw
// text of the first message; the output shape is untrusted.
type Client interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// ErrCompletion wraps transport or service failures from a completion
// provider. It is never retried here; retry policy belongs to callers.
var ErrCompletion = errors.New("completion service failure")

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("completion client not configured")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	_ = ctx
	_ = system
	_ = prompt
	return "", ErrNotConfigured
}

// StripFences removes a leading ```json (or bare ```) line and a trailing
// fence plus surrounding whitespace. Providers are not contractually
// guaranteed to omit fences even when instructed.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
