package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/datavex/leadforge/internal/config"
	"github.com/datavex/leadforge/internal/guard"
	"github.com/datavex/leadforge/internal/pipeline"
	"github.com/datavex/leadforge/pkg/anthropic"
	"github.com/datavex/leadforge/pkg/jina"
	"github.com/datavex/leadforge/pkg/serp"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "leadforge",
	Short: "Lead discovery and qualification pipeline",
	Long:  "Scouts the web for businesses signaling a need, filters out enterprises, and synthesizes qualified leads with outreach-ready context via tiered Claude models.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// buildOrchestrator wires providers from config. Commands call this after
// PersistentPreRunE has populated cfg.
func buildOrchestrator() (*pipeline.Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g, err := guard.Load(cfg.Guard.BlocklistPath)
	if err != nil {
		return nil, err
	}

	serpClient := serp.NewClient(cfg.Serp.Key,
		serp.WithBaseURL(cfg.Serp.BaseURL),
		serp.WithEngine(cfg.Serp.Engine),
	)
	jinaClient := jina.NewClient(cfg.Jina.Key, jina.WithBaseURL(cfg.Jina.BaseURL))
	llmClient := anthropic.NewClient(cfg.Anthropic.Key)

	return pipeline.New(cfg, serpClient, jinaClient, llmClient, g), nil
}

// logRunTrace logs the agent trace carried by a failed run so the operator
// can see how far it got before the error.
func logRunTrace(err error) {
	var traced *pipeline.TraceError
	if errors.As(err, &traced) {
		for _, event := range traced.Trace {
			zap.L().Info("trace", zap.String("event", event))
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
