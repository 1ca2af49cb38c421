package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"sysforge/internal/llm"
)

// scriptedClient replies from a queue; a nil entry means transport error.
type scriptedClient struct {
	replies []llm.Reply
	errs    []error
	prompts []string
	calls   int
}

func (c *scriptedClient) Complete(_ context.Context, prompt string, _ int) (llm.Reply, error) {
	c.prompts = append(c.prompts, prompt)
	i := c.calls
	c.calls++
	var err error
	if i < len(c.errs) {
		err = c.errs[i]
	}
	var reply llm.Reply
	if i < len(c.replies) {
		reply = c.replies[i]
	}
	return reply, err
}

// chunkReply builds a JSON reply mapping each path to a content marker.
func chunkReply(paths ...string) llm.Reply {
	files := make(map[string]string, len(paths))
	for _, p := range paths {
		files[p] = "content of " + p
	}
	data, _ := json.Marshal(files)
	return llm.Reply{Text: string(data), InputTokens: 10, OutputTokens: 10}
}

func pathRange(n int) []string {
	paths := make([]string, n)
	for i := range paths {
		paths[i] = fmt.Sprintf("file%02d.py", i)
	}
	return paths
}

func TestBatchGenerator_TwelvePathsSplitIntoChunksOfFive(t *testing.T) {
	paths := pathRange(12)
	client := &scriptedClient{replies: []llm.Reply{
		chunkReply(paths[0:5]...),
		chunkReply(paths[5:10]...),
		chunkReply(paths[10:12]...),
	}}

	gen := NewBatchGenerator(client, 5, 8000)
	result, err := gen.GenerateGroup(context.Background(), "spec", paths)
	if err != nil {
		t.Fatalf("GenerateGroup: %v", err)
	}

	if client.calls != 3 {
		t.Fatalf("calls=%d, want 3 chunks", client.calls)
	}
	// Chunks are consecutive slices of at most 5.
	for i, wantChunk := range [][]string{paths[0:5], paths[5:10], paths[10:12]} {
		for _, p := range wantChunk {
			if !strings.Contains(client.prompts[i], p) {
				t.Fatalf("chunk %d prompt missing %s", i, p)
			}
		}
	}
	// Merged result is the union keyed by path.
	if diff := cmp.Diff(paths, result.Files.Paths()); diff != "" {
		t.Fatalf("merged paths mismatch (-want +got):\n%s", diff)
	}
	if len(result.Deferred) != 0 {
		t.Fatalf("Deferred=%v, want none", result.Deferred)
	}
	if result.Metrics.Requests != 3 || result.Metrics.TotalTokens() != 60 {
		t.Fatalf("metrics=%+v, want 3 requests / 60 tokens", result.Metrics)
	}
}

func TestBatchGenerator_DecodeFailureDefersChunk(t *testing.T) {
	paths := pathRange(7)
	client := &scriptedClient{replies: []llm.Reply{
		{Text: "I'd rather explain the architecture first..."},
		chunkReply(paths[5:7]...),
	}}

	gen := NewBatchGenerator(client, 5, 8000)
	result, err := gen.GenerateGroup(context.Background(), "spec", paths)
	if err != nil {
		t.Fatalf("GenerateGroup: %v", err)
	}

	if diff := cmp.Diff(paths[0:5], result.Deferred); diff != "" {
		t.Fatalf("Deferred mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(paths[5:7], result.Files.Paths()); diff != "" {
		t.Fatalf("Files mismatch (-want +got):\n%s", diff)
	}
}

func TestBatchGenerator_RequestErrorDefersChunk(t *testing.T) {
	paths := []string{"a.py", "b.py"}
	client := &scriptedClient{errs: []error{fmt.Errorf("boom")}}

	gen := NewBatchGenerator(client, 5, 8000)
	result, err := gen.GenerateGroup(context.Background(), "spec", paths)
	if err != nil {
		t.Fatalf("GenerateGroup: %v", err)
	}
	if diff := cmp.Diff(paths, result.Deferred); diff != "" {
		t.Fatalf("Deferred mismatch (-want +got):\n%s", diff)
	}
}

func TestBatchGenerator_CanceledContextAborts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	client := &scriptedClient{errs: []error{ctx.Err()}}

	gen := NewBatchGenerator(client, 5, 8000)
	_, err := gen.GenerateGroup(ctx, "spec", []string{"a.py"})
	if err == nil {
		t.Fatal("GenerateGroup: want error after cancellation")
	}
}
