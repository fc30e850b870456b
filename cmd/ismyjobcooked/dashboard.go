package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/DorinSirca/ismyjobcooked-api/internal/tui"
)

var (
	dashboardURL      string
	dashboardDays     int
	dashboardInterval time.Duration
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Watch the analytics of a running server (TUI)",
	Long:  "Polls GET /api/analytics/dashboard on the given server and renders the totals, trending jobs and shares.",
	RunE:  runDashboard,
}

func init() {
	dashboardCmd.Flags().StringVar(&dashboardURL, "url", "http://localhost:3000", "base URL of the API server")
	dashboardCmd.Flags().IntVar(&dashboardDays, "days", 7, "recent-stats window in days (1-365)")
	dashboardCmd.Flags().DurationVar(&dashboardInterval, "interval", 5*time.Second, "refresh interval")
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	if dashboardDays < 1 || dashboardDays > 365 {
		return fmt.Errorf("--days must be between 1 and 365, got %d", dashboardDays)
	}
	if dashboardInterval < time.Second {
		return fmt.Errorf("--interval must be at least 1s, got %s", dashboardInterval)
	}
	return tui.RunDashboard(dashboardURL, dashboardDays, dashboardInterval)
}
