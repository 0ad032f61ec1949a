package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/datavex/leadforge/internal/model"
)

var analyzeCategory string

var analyzeCmd = &cobra.Command{
	Use:   "analyze <domain>",
	Short: "Deep-analyze a single company domain",
	Long:  "Fetches homepage recon plus fiscal and tech news for the domain, then synthesizes a dossier with a lead verdict and outreach strategy.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := model.ParseServiceCategory(analyzeCategory)
		if err != nil {
			return err
		}

		orch, err := buildOrchestrator()
		if err != nil {
			return err
		}

		result, err := orch.Deep(cmd.Context(), args[0], cat)
		if err != nil {
			logRunTrace(err)
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeCategory, "category", string(model.CategoryAppDev), "service line to evaluate the company against")
	rootCmd.AddCommand(analyzeCmd)
}
