// Package usage tracks token consumption and monetary cost for one
// generation session. Metrics are plain values threaded through the pipeline
// and accumulated at call sites; nothing here persists across sessions.
package usage

import (
	"fmt"
	"time"
)

// Metrics holds running totals for a session.
type Metrics struct {
	InputTokens  int64
	OutputTokens int64
	Requests     int
	Elapsed      time.Duration
}

// Record adds one completed request's token counts and wall time.
func (m *Metrics) Record(inputTokens, outputTokens int, elapsed time.Duration) {
	m.InputTokens += int64(inputTokens)
	m.OutputTokens += int64(outputTokens)
	m.Requests++
	m.Elapsed += elapsed
}

// Add merges another metrics value into m.
func (m *Metrics) Add(other Metrics) {
	m.InputTokens += other.InputTokens
	m.OutputTokens += other.OutputTokens
	m.Requests += other.Requests
	m.Elapsed += other.Elapsed
}

// TotalTokens returns input plus output tokens.
func (m Metrics) TotalTokens() int64 {
	return m.InputTokens + m.OutputTokens
}

// Pricing holds per-million-token prices in USD.
type Pricing struct {
	InputPerMTok  float64 `yaml:"input_per_mtok"`
	OutputPerMTok float64 `yaml:"output_per_mtok"`
}

// DefaultPricing matches Sonnet-class pricing: $3 in, $15 out per MTok.
func DefaultPricing() Pricing {
	return Pricing{InputPerMTok: 3.00, OutputPerMTok: 15.00}
}

// Cost computes the dollar cost of the recorded tokens.
func (p Pricing) Cost(m Metrics) float64 {
	in := float64(m.InputTokens) / 1_000_000 * p.InputPerMTok
	out := float64(m.OutputTokens) / 1_000_000 * p.OutputPerMTok
	return in + out
}

// FormatCost renders a dollar amount the way the summary report expects.
func FormatCost(cost float64) string {
	return fmt.Sprintf("$%.4f", cost)
}
