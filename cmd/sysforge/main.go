// sysforge turns a natural-language specification into a working multi-file
// system by orchestrating staged requests against a completion service.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"sysforge/internal/artifact"
	"sysforge/internal/config"
	"sysforge/internal/generate"
	"sysforge/internal/llm"
	"sysforge/internal/report"
)

var (
	// Global flags
	verbose    bool
	configPath string
	outputDir  string
	execute    bool

	// Logger
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "sysforge",
	Short: "sysforge - generate multi-file systems from specifications",
	Long: `sysforge queries a completion service in stages to turn a natural
language specification into a complete file tree:

  1. Plan: ask for the manifest of files the spec requires
  2. Generate: request file groups in bounded chunks
  3. Repair: individually gap-fill anything still missing
  4. Write: persist the artifact set to the output directory

Malformed replies never abort a session; failed chunks fall through to
gap-filling and unresolved paths are reported at the end.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate [spec]",
	Short: "Generate a system from a specification",
	Long: `Generates a complete system from a specification and writes it to
the output directory. The spec argument is literal text, or a file path
prefixed with @:

  sysforge generate @spec.txt -o ./generated-system`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

var iterateCmd = &cobra.Command{
	Use:   "iterate [modification]",
	Short: "Modify an existing generated system",
	Long: `Reads the output directory back into an artifact set, asks the
completion service for only the files affected by the modification, and
merges the reply into the tree. Files are never deleted by iteration; if
a change requires removing a file, do it by hand.`,
	Args: cobra.ExactArgs(1),
	RunE: runIterate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	spec, err := loadSpec(args[0])
	if err != nil {
		return err
	}

	cfg, client, err := setup()
	if err != nil {
		return err
	}

	pipeline := generate.NewPipeline(client, cfg.Generation, logger)
	session, err := pipeline.Generate(cmd.Context(), spec)
	if err != nil {
		return err
	}

	writer := artifact.NewWriter(outputDir)
	if err := writer.WriteAll(session.Artifacts); err != nil {
		return err
	}
	logger.Info("wrote artifact set",
		zap.String("dir", writer.Root()),
		zap.Int("files", session.Artifacts.Len()))

	fmt.Println(report.Render("GENERATION SUMMARY", session.Report(cfg.Pricing)))

	if execute {
		if err := composeUp(outputDir); err != nil {
			// Generation succeeded; a compose failure is reported, not fatal.
			logger.Warn("docker-compose failed", zap.Error(err))
		}
	}
	return nil
}

func runIterate(cmd *cobra.Command, args []string) error {
	modification := args[0]

	if _, err := os.Stat(outputDir); err != nil {
		return fmt.Errorf("output directory %s does not exist; generate first", outputDir)
	}
	existing, err := artifact.LoadDir(outputDir)
	if err != nil {
		return err
	}
	if existing.Len() == 0 {
		return fmt.Errorf("output directory %s contains no files", outputDir)
	}

	spec, err := loadSpec(specFlag)
	if err != nil {
		return err
	}

	cfg, client, err := setup()
	if err != nil {
		return err
	}

	pipeline := generate.NewPipeline(client, cfg.Generation, logger)
	session, err := pipeline.Iterate(cmd.Context(), spec, modification, existing)
	if err != nil {
		return err
	}

	if err := artifact.NewWriter(outputDir).WriteAll(session.Artifacts); err != nil {
		return err
	}

	fmt.Println(report.Render("ITERATION SUMMARY", session.Report(cfg.Pricing)))
	return nil
}

// setup loads config and builds the configured completion client.
func setup() (*config.Config, llm.Client, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	var client llm.Client
	switch cfg.LLM.Provider {
	case "anthropic":
		acfg := llm.DefaultAnthropicConfig(cfg.LLM.APIKey)
		if cfg.LLM.BaseURL != "" {
			acfg.BaseURL = cfg.LLM.BaseURL
		}
		if cfg.LLM.Model != "" {
			acfg.Model = cfg.LLM.Model
		}
		acfg.Timeout = cfg.LLMTimeout()
		client = llm.NewAnthropicClient(acfg)
	case "gemini":
		client, err = llm.NewGeminiClient(context.Background(), cfg.LLM.APIKey, cfg.LLM.Model)
		if err != nil {
			return nil, nil, err
		}
	}
	return cfg, client, nil
}

var specFlag string

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "sysforge.yaml", "config file path")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "./generated-system", "output directory")

	generateCmd.Flags().BoolVar(&execute, "execute", false, "run docker-compose up --build after generation")
	iterateCmd.Flags().StringVar(&specFlag, "spec", "", "original specification (text or @file)")
	_ = iterateCmd.MarkFlagRequired("spec")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(iterateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
