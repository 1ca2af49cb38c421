// Package report renders the operator-facing session summary.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"sysforge/internal/generate"
	"sysforge/internal/usage"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8BC34A"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#2196F3")).
			Width(18)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFC107"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)
)

// Render formats a completeness report for terminal output.
func Render(title string, r generate.Report) string {
	var rows []string
	row := func(label, value string) {
		rows = append(rows, labelStyle.Render(label)+value)
	}

	row("Files", fmt.Sprintf("%d/%d", r.Produced, r.Requested))
	row("Requests", fmt.Sprintf("%d", r.Metrics.Requests))
	row("Input tokens", fmt.Sprintf("%d", r.Metrics.InputTokens))
	row("Output tokens", fmt.Sprintf("%d", r.Metrics.OutputTokens))
	row("Total tokens", fmt.Sprintf("%d", r.Metrics.TotalTokens()))
	row("Cost", usage.FormatCost(r.Cost))
	row("Elapsed", r.Elapsed.Round(100*time.Millisecond).String())

	body := titleStyle.Render(title) + "\n" + strings.Join(rows, "\n")

	if len(r.Unresolved) > 0 {
		var sb strings.Builder
		sb.WriteString(warnStyle.Render(fmt.Sprintf("%d file(s) could not be generated:", len(r.Unresolved))))
		for _, p := range r.Unresolved {
			sb.WriteString("\n  - " + p)
		}
		body += "\n\n" + sb.String()
	}

	return boxStyle.Render(body)
}
