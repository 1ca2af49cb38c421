package report

import (
	"strings"
	"testing"
	"time"

	"sysforge/internal/generate"
	"sysforge/internal/usage"
)

func TestRender(t *testing.T) {
	r := generate.Report{
		Requested:  5,
		Produced:   4,
		Unresolved: []string{"monitor/app.py"},
		Metrics:    usage.Metrics{InputTokens: 1000, OutputTokens: 500, Requests: 3},
		Cost:       0.0105,
		Elapsed:    32 * time.Second,
	}

	out := Render("GENERATION SUMMARY", r)
	for _, fragment := range []string{"GENERATION SUMMARY", "4/5", "$0.0105", "1500", "monitor/app.py"} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("rendered report missing %q:\n%s", fragment, out)
		}
	}
}

func TestRender_NoUnresolvedSection(t *testing.T) {
	out := Render("SUMMARY", generate.Report{Requested: 1, Produced: 1})
	if strings.Contains(out, "could not be generated") {
		t.Fatalf("unexpected unresolved section:\n%s", out)
	}
}
