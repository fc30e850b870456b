package main

import (
	"github.com/spf13/cobra"

	"github.com/DorinSirca/ismyjobcooked-api/internal/jobs"
	"github.com/DorinSirca/ismyjobcooked-api/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the job catalog interactively (TUI)",
	Long:  "Opens a split-pane view of the curated jobs by category; Enter shows how cooked a job is.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.RunBrowser(jobs.NewCatalog())
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
