package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/DorinSirca/ismyjobcooked-api/internal/memes"
	"github.com/DorinSirca/ismyjobcooked-api/internal/model"
)

var memeScore float64

var memesCmd = &cobra.Command{
	Use:   "memes",
	Short: "Print memes from the library",
}

var memesDailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Print today's meme",
	RunE: func(cmd *cobra.Command, args []string) error {
		printMeme(memes.NewLibrary().Daily(time.Now().UTC()))
		return nil
	},
}

var memesRandomCmd = &cobra.Command{
	Use:   "random",
	Short: "Print a random meme",
	RunE: func(cmd *cobra.Command, args []string) error {
		printMeme(memes.NewLibrary().Random())
		return nil
	},
}

var memesGenerateCmd = &cobra.Command{
	Use:   "generate <job title>",
	Short: "Generate a meme for a job and a cooked score",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := strings.TrimSpace(strings.Join(args, " "))
		if title == "" {
			return errors.New("job title cannot be empty")
		}
		if memeScore < 0 || memeScore > 100 {
			return fmt.Errorf("cooked score must be between 0 and 100, got %v", memeScore)
		}
		printMeme(memes.Custom(title, memeScore, time.Now().UTC()))
		return nil
	},
}

func init() {
	memesGenerateCmd.Flags().Float64VarP(&memeScore, "score", "s", 50, "cooked score, 0-100")
	memesCmd.AddCommand(memesDailyCmd, memesRandomCmd, memesGenerateCmd)
	rootCmd.AddCommand(memesCmd)
}

var (
	memeTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("202"))
	memeMetaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	memeBoxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(72)
)

func printMeme(m model.Meme) {
	meta := fmt.Sprintf("%s · viral score %d", m.Category, m.ViralScore)
	if m.IsDaily {
		meta += fmt.Sprintf(" · day %d", m.DayOfYear)
	}
	fmt.Println(memeBoxStyle.Render(
		memeTitleStyle.Render(m.Title) + "\n\n" + m.Content + "\n\n" + memeMetaStyle.Render(meta),
	))
}
