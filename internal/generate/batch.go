// Package generate orchestrates the staged generation pipeline: batched
// group generation, gap-filling for missing paths, and iterative
// modification of an existing artifact set.
package generate

import (
	"context"
	"fmt"
	"time"

	"sysforge/internal/artifact"
	"sysforge/internal/llm"
	"sysforge/internal/parse"
	"sysforge/internal/usage"
)

// GroupResult is the outcome of generating one group. Deferred holds every
// path from chunks whose reply could not be used; those paths move on to
// gap-filling instead of failing the session.
type GroupResult struct {
	Files    *artifact.Set
	Deferred []string
	Metrics  usage.Metrics
}

// BatchGenerator requests content for groups of manifest paths, splitting
// oversized groups into consecutive chunks.
type BatchGenerator struct {
	client    llm.Client
	chunkSize int
	maxTokens int
}

// NewBatchGenerator returns a generator that asks for at most chunkSize
// files per request.
func NewBatchGenerator(client llm.Client, chunkSize, maxTokens int) *BatchGenerator {
	if chunkSize < 1 {
		chunkSize = 1
	}
	return &BatchGenerator{client: client, chunkSize: chunkSize, maxTokens: maxTokens}
}

// GenerateGroup generates content for one group's paths. Chunks are
// requested sequentially and merged by path, later chunk winning on
// conflict. A chunk whose reply fails to decode defers its paths rather
// than aborting; only context cancellation stops the group early.
func (g *BatchGenerator) GenerateGroup(ctx context.Context, spec string, paths []string) (GroupResult, error) {
	result := GroupResult{Files: artifact.NewSet()}

	for start := 0; start < len(paths); start += g.chunkSize {
		end := start + g.chunkSize
		if end > len(paths) {
			end = len(paths)
		}
		chunk := paths[start:end]

		files, reply, elapsed, err := g.generateChunk(ctx, spec, chunk)
		result.Metrics.Record(reply.InputTokens, reply.OutputTokens, elapsed)
		if err != nil {
			if ctx.Err() != nil {
				return result, fmt.Errorf("batch generation canceled: %w", ctx.Err())
			}
			result.Deferred = append(result.Deferred, chunk...)
			continue
		}
		for path, content := range files {
			result.Files.PutContent(path, content)
		}
	}

	return result, nil
}

// generateChunk issues one request for up to chunkSize files and decodes
// the reply as a JSON object of path→content.
func (g *BatchGenerator) generateChunk(ctx context.Context, spec string, chunk []string) (map[string]string, llm.Reply, time.Duration, error) {
	start := time.Now()
	reply, err := g.client.Complete(ctx, batchPrompt(spec, chunk), g.maxTokens)
	elapsed := time.Since(start)
	if err != nil {
		return nil, reply, elapsed, fmt.Errorf("chunk request: %w", err)
	}

	files, err := parse.FileMap(reply.Text)
	if err != nil {
		return nil, reply, elapsed, err
	}
	return files, reply, elapsed, nil
}
