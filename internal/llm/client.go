// Package llm provides the completion-service boundary: a small client
// interface and provider implementations behind it. The pipeline never
// talks to a provider SDK directly.
package llm

import "context"

// Reply is the fixed record a completion request yields: the response text
// plus the token counts the provider metered for it.
type Reply struct {
	Text         string
	InputTokens  int
	OutputTokens int
}

// Client sends one prompt and blocks until the full reply arrives.
// maxTokens bounds the provider's output size for the request.
type Client interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (Reply, error)
}
