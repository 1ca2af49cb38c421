// Package plan turns a specification into a file manifest and partitions it
// into generation groups.
package plan

import (
	"context"
	"fmt"
	"strings"

	"sysforge/internal/llm"
	"sysforge/internal/parse"
)

// DecodeError means the planner reply could not be decoded as a path list.
// This is fatal for the session; Raw keeps the reply text for diagnosis.
type DecodeError struct {
	Raw string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode manifest: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Planner asks the completion service for the list of files a specification
// requires.
type Planner struct {
	client    llm.Client
	maxTokens int
}

// NewPlanner returns a planner that bounds replies at maxTokens.
func NewPlanner(client llm.Client, maxTokens int) *Planner {
	return &Planner{client: client, maxTokens: maxTokens}
}

// Plan requests and decodes the manifest. The reply is returned alongside so
// the caller can account its token usage; this function keeps no state.
// Decode failure yields a *DecodeError and aborts the session upstream.
func (p *Planner) Plan(ctx context.Context, spec string) ([]string, llm.Reply, error) {
	reply, err := p.client.Complete(ctx, manifestPrompt(spec), p.maxTokens)
	if err != nil {
		return nil, reply, fmt.Errorf("manifest request: %w", err)
	}

	paths, err := parse.PathList(reply.Text)
	if err != nil {
		return nil, reply, &DecodeError{Raw: reply.Text, Err: err}
	}

	return normalizeManifest(paths), reply, nil
}

// normalizeManifest drops empty entries and leading path separators while
// preserving order. Duplicates are allowed; downstream handling is last
// value wins.
func normalizeManifest(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		p = strings.TrimSpace(p)
		p = strings.TrimLeft(p, "/\\")
		p = strings.TrimPrefix(p, "./")
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func manifestPrompt(spec string) string {
	var sb strings.Builder
	sb.WriteString("Based on this specification, list ALL files that need to be generated.\n\n")
	sb.WriteString("Specification:\n")
	sb.WriteString(spec)
	sb.WriteString("\n\n")
	sb.WriteString("Respond ONLY with a JSON array of file paths (relative to project root):\n")
	sb.WriteString(`["file1.txt", "folder/file2.py", ...]` + "\n\n")
	sb.WriteString("Include:\n")
	sb.WriteString("- docker-compose.yml\n")
	sb.WriteString("- All source files for each component\n")
	sb.WriteString("- All Dockerfiles\n")
	sb.WriteString("- All requirements/dependency files\n")
	sb.WriteString("- Setup scripts\n")
	sb.WriteString("- Config files\n\n")
	sb.WriteString("Do NOT include:\n")
	sb.WriteString("- README.md or documentation\n")
	sb.WriteString("- Test files (unless specified)")
	return sb.String()
}
