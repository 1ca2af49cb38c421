package generate

import (
	"context"
	"fmt"
	"sort"
	"time"

	"sysforge/internal/artifact"
	"sysforge/internal/llm"
	"sysforge/internal/parse"
	"sysforge/internal/usage"
)

// ModificationResult describes one iteration pass over an existing set.
type ModificationResult struct {
	// Changed lists the paths the reply touched, sorted.
	Changed []string
	Metrics usage.Metrics
}

// Modifier regenerates only the files affected by a follow-up change
// request against an existing artifact set. It cannot delete files:
// removal would need its own request contract and is deliberately out of
// scope, so untouched paths always survive.
type Modifier struct {
	client    llm.Client
	maxTokens int
}

// NewModifier returns an iteration pipeline bound to client.
func NewModifier(client llm.Client, maxTokens int) *Modifier {
	return &Modifier{client: client, maxTokens: maxTokens}
}

// Apply sends the complete current artifact set plus the modification
// description, parses the delimited-block reply, and merges changed or new
// files into existing with last-write-wins semantics. existing is mutated
// in place; no path is ever removed.
func (m *Modifier) Apply(ctx context.Context, spec, modification string, existing *artifact.Set) (ModificationResult, error) {
	var result ModificationResult

	start := time.Now()
	reply, err := m.client.Complete(ctx, iteratePrompt(spec, modification, existing), m.maxTokens)
	result.Metrics.Record(reply.InputTokens, reply.OutputTokens, time.Since(start))
	if err != nil {
		return result, fmt.Errorf("modification request: %w", err)
	}

	updated := parse.Blocks(reply.Text)
	for path, content := range updated {
		existing.PutContent(path, content)
		result.Changed = append(result.Changed, path)
	}
	sort.Strings(result.Changed)

	return result, nil
}
