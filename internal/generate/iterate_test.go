package generate

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"sysforge/internal/artifact"
	"sysforge/internal/llm"
)

func TestModifier_MergesChangedAndNewPaths(t *testing.T) {
	existing := artifact.NewSet()
	existing.PutContent("a.py", "v1")
	existing.PutContent("b.py", "untouched")

	client := &scriptedClient{replies: []llm.Reply{{
		Text: "```filename: a.py\nv2\n```\n```filename: c.py\nv3\n```",
	}}}

	mod := NewModifier(client, 16000)
	result, err := mod.Apply(context.Background(), "spec", "add a third agent", existing)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	want := map[string]string{"a.py": "v2", "b.py": "untouched", "c.py": "v3"}
	got := make(map[string]string)
	for _, a := range existing.All() {
		got[a.Path] = a.Content
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("merged set mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a.py", "c.py"}, result.Changed); diff != "" {
		t.Fatalf("Changed mismatch (-want +got):\n%s", diff)
	}
}

func TestModifier_PromptCarriesFullContext(t *testing.T) {
	existing := artifact.NewSet()
	existing.PutContent("app.py", "the whole app body")

	client := &scriptedClient{replies: []llm.Reply{{Text: "no blocks"}}}

	mod := NewModifier(client, 16000)
	if _, err := mod.Apply(context.Background(), "original spec", "rename queue", existing); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	prompt := client.prompts[0]
	for _, fragment := range []string{"FILE: app.py", "the whole app body", "original spec", "rename queue"} {
		if !strings.Contains(prompt, fragment) {
			t.Fatalf("prompt missing %q", fragment)
		}
	}
}

func TestModifier_NeverRemovesPaths(t *testing.T) {
	existing := artifact.NewSet()
	existing.PutContent("keep.py", "keep")

	client := &scriptedClient{replies: []llm.Reply{{Text: "nothing changed"}}}

	mod := NewModifier(client, 16000)
	result, err := mod.Apply(context.Background(), "spec", "noop", existing)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(result.Changed) != 0 {
		t.Fatalf("Changed=%v, want none", result.Changed)
	}
	if !existing.Has("keep.py") {
		t.Fatal("existing path was dropped")
	}
}
