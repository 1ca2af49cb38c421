package generate

import (
	"context"
	"fmt"
	"time"

	"sysforge/internal/llm"
	"sysforge/internal/parse"
	"sysforge/internal/usage"
)

// GapFiller regenerates individual files the batch pass failed to deliver.
type GapFiller struct {
	client    llm.Client
	maxTokens int
}

// NewGapFiller returns a per-path fallback generator.
func NewGapFiller(client llm.Client, maxTokens int) *GapFiller {
	return &GapFiller{client: client, maxTokens: maxTokens}
}

// Fill requests raw content for one missing path, listing a bounded sample
// of already-produced paths for context. The reply is expected without
// fences; one wrapping fence pair is tolerated and stripped. An error here
// is recoverable: the caller records the path as unresolved and proceeds.
func (f *GapFiller) Fill(ctx context.Context, spec, path string, produced []string) (string, usage.Metrics, error) {
	var m usage.Metrics
	start := time.Now()
	reply, err := f.client.Complete(ctx, gapFillPrompt(spec, path, produced), f.maxTokens)
	m.Record(reply.InputTokens, reply.OutputTokens, time.Since(start))
	if err != nil {
		return "", m, fmt.Errorf("gap-fill request for %s: %w", path, err)
	}

	content := parse.StripFence(reply.Text)
	if content == "" {
		return "", m, fmt.Errorf("gap-fill for %s returned no usable content", path)
	}
	return content, m, nil
}
