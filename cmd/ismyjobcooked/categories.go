package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/DorinSirca/ismyjobcooked-api/internal/jobs"
	"github.com/DorinSirca/ismyjobcooked-api/internal/tui"
)

var categoriesExtended bool

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Print risk statistics per job category",
	Long:  "Prints a table of automation-risk statistics per category over the curated table, or the extended generator table with --extended.",
	RunE:  runCategories,
}

func init() {
	categoriesCmd.Flags().BoolVar(&categoriesExtended, "extended", false, "use the extended job table")
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, args []string) error {
	entries := jobs.NewCatalog().Entries()
	if categoriesExtended {
		entries = jobs.Extended()
	}
	stats, overall := jobs.Statistics(entries)

	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{
			s.Name,
			strconv.Itoa(s.TotalJobs),
			strconv.Itoa(s.AverageRisk),
			fmt.Sprintf("%d-%d", s.MinRisk, s.MaxRisk),
			strconv.Itoa(s.HighRiskJobs),
			strconv.Itoa(s.LowRiskJobs),
			jobs.CookedLevel(s.AverageRisk),
		})
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("202")).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Category", "Jobs", "Avg Risk", "Range", "High", "Low", "Level").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 2 && row >= 0 && row < len(stats) {
				return tui.RiskStyle(stats[row].AverageRisk).Padding(0, 1)
			}
			return cellStyle
		})

	fmt.Println(t)
	fmt.Printf("\nTotal: %d jobs in %d categories, average risk %d (%d high, %d low)\n",
		overall.TotalJobs, overall.TotalCategories, overall.AverageRisk, overall.HighRiskJobs, overall.LowRiskJobs)
	return nil
}
