package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/DorinSirca/ismyjobcooked-api/internal/httpapi"
	"github.com/DorinSirca/ismyjobcooked-api/internal/jobs"
	"github.com/DorinSirca/ismyjobcooked-api/internal/model"
	"github.com/DorinSirca/ismyjobcooked-api/internal/tui"
)

var analyzeJSON bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <job title>",
	Short: "Rate how cooked one job is",
	Long:  "Looks the title up in the curated table, or analyzes it with the heuristics (and the LLM when configured), and prints the result.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the API response body instead of the card")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	title := strings.TrimSpace(strings.Join(args, " "))
	switch {
	case title == "":
		return errors.New("job title cannot be empty")
	case utf8.RuneCountInString(title) > 100:
		return errors.New("job title is too long (max 100 characters)")
	}

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Log lines written while the spinner runs would corrupt it.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if debug {
		logger = setupLogger(cfg, true)
	}

	rec, curated := jobs.NewCatalog().Lookup(title)
	if !curated {
		an := setupAnalyzer(cmd.Context(), cfg, logger)
		analyze := func(ctx context.Context) (model.JobRecord, error) {
			return an.Analyze(ctx, title), nil
		}
		timeout := cfg.AI.Timeout + 5*time.Second
		if analyzeJSON || debug {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			rec, _ = analyze(ctx)
		} else {
			rec, err = tui.RunLoader("Checking how cooked "+title+" is", timeout, analyze)
			if err != nil {
				return err
			}
		}
	}

	if analyzeJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(httpapi.NewAnalysis(rec, time.Now()))
	}

	fmt.Println(tui.RenderRecord(rec, jobs.Summary(rec.AutomationRisk), 80))
	if !curated {
		fmt.Println("(not in the curated table; estimated)")
	}
	return nil
}
