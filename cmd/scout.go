package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/datavex/leadforge/internal/export"
	"github.com/datavex/leadforge/internal/model"
)

var scoutXLSXPath string

var scoutCmd = &cobra.Command{
	Use:   "scout <service-category>",
	Short: "Run a campaign: discover and qualify leads for a service line",
	Long:  "Searches the web for businesses signaling a need for the given service line, filters out known enterprises, and prints the qualified leads as JSON.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := model.ParseServiceCategory(args[0])
		if err != nil {
			return err
		}

		orch, err := buildOrchestrator()
		if err != nil {
			return err
		}

		result, err := orch.Campaign(cmd.Context(), cat)
		if err != nil {
			logRunTrace(err)
			return err
		}

		for _, event := range result.AgentTrace {
			zap.L().Info("trace", zap.String("event", event))
		}

		if scoutXLSXPath != "" {
			if err := export.WriteLeadsXLSX(scoutXLSXPath, cat, result.Leads); err != nil {
				return err
			}
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	scoutCmd.Flags().StringVar(&scoutXLSXPath, "xlsx", "", "also write leads to an xlsx workbook at this path")
	rootCmd.AddCommand(scoutCmd)
}
