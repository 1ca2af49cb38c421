// Package config holds sysforge configuration: completion provider
// settings, pricing, and generation tuning knobs.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"sysforge/internal/usage"
)

// Config holds all sysforge configuration.
type Config struct {
	// LLM configures the completion provider.
	LLM LLMConfig `yaml:"llm"`

	// Pricing converts metered tokens to dollars.
	Pricing usage.Pricing `yaml:"pricing"`

	// Generation tunes the pipeline phases.
	Generation GenerationConfig `yaml:"generation"`
}

// LLMConfig configures the completion provider.
type LLMConfig struct {
	Provider string `yaml:"provider"` // anthropic, gemini
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
	Timeout  string `yaml:"timeout"`
}

// GenerationConfig tunes the staged generation pipeline.
type GenerationConfig struct {
	// ChunkSize caps how many files one batch request asks for. Larger
	// chunks risk truncated replies; this is a tunable, not a contract.
	ChunkSize int `yaml:"chunk_size"`

	// Per-phase output-size caps, in tokens.
	ManifestMaxTokens int `yaml:"manifest_max_tokens"`
	BatchMaxTokens    int `yaml:"batch_max_tokens"`
	GapFillMaxTokens  int `yaml:"gapfill_max_tokens"`
	IterateMaxTokens  int `yaml:"iterate_max_tokens"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider: "anthropic",
			Model:    "claude-sonnet-4-5-20250929",
			Timeout:  "120s",
		},
		Pricing: usage.DefaultPricing(),
		Generation: GenerationConfig{
			ChunkSize:         5,
			ManifestMaxTokens: 2000,
			BatchMaxTokens:    8000,
			GapFillMaxTokens:  4000,
			IterateMaxTokens:  16000,
		},
	}
}

// Load reads configuration from a YAML file, falling back to defaults when
// the file does not exist, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides. Each API key
// variable only applies to its own provider.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" && c.LLM.Provider == "anthropic" {
		c.LLM.APIKey = key
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" && c.LLM.Provider == "gemini" {
		c.LLM.APIKey = key
	}
	if model := os.Getenv("SYSFORGE_MODEL"); model != "" {
		c.LLM.Model = model
	}
}

// LLMTimeout parses the configured request timeout.
func (c *Config) LLMTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil || d <= 0 {
		return 120 * time.Second
	}
	return d
}

// Validate checks that the configuration can drive a session.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "anthropic", "gemini":
	default:
		return fmt.Errorf("unknown provider %q (want anthropic or gemini)", c.LLM.Provider)
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("no API key configured (set ANTHROPIC_API_KEY or GEMINI_API_KEY)")
	}
	if c.Generation.ChunkSize < 1 {
		return fmt.Errorf("generation.chunk_size must be at least 1, got %d", c.Generation.ChunkSize)
	}
	return nil
}
