package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/datavex/leadforge/internal/model"
)

var (
	draftCompany  string
	draftDomain   string
	draftWhy      string
	draftCategory string
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Draft a cold outreach email for a qualified lead",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := model.ParseServiceCategory(draftCategory)
		if err != nil {
			return err
		}

		orch, err := buildOrchestrator()
		if err != nil {
			return err
		}

		draft, err := orch.Email(cmd.Context(), model.EmailRequest{
			CompanyName:     draftCompany,
			Domain:          draftDomain,
			WhyWeHelp:       draftWhy,
			ServiceCategory: cat,
		})
		if err != nil {
			logRunTrace(err)
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(draft)
	},
}

func init() {
	draftCmd.Flags().StringVar(&draftCompany, "company", "", "company name (required)")
	draftCmd.Flags().StringVar(&draftDomain, "domain", "", "company domain")
	draftCmd.Flags().StringVar(&draftWhy, "why", "", "why we can help this company (required)")
	draftCmd.Flags().StringVar(&draftCategory, "category", string(model.CategoryAppDev), "service line")
	_ = draftCmd.MarkFlagRequired("company")
	_ = draftCmd.MarkFlagRequired("why")
	rootCmd.AddCommand(draftCmd)
}
