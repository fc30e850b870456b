package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/DorinSirca/ismyjobcooked-api/internal/ai"
	"github.com/DorinSirca/ismyjobcooked-api/internal/analyzer"
	"github.com/DorinSirca/ismyjobcooked-api/internal/config"
	"github.com/DorinSirca/ismyjobcooked-api/internal/model"
	"github.com/DorinSirca/ismyjobcooked-api/internal/notifier"
	"github.com/DorinSirca/ismyjobcooked-api/internal/ratelimit"
	"github.com/DorinSirca/ismyjobcooked-api/internal/retry"
)

const serviceName = "ismyjobcooked-api"

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "ismyjobcooked",
	Short: "How cooked is your job?",
	Long:  "ismyjobcooked rates how exposed a job title is to AI automation and serves the results, memes and share analytics over HTTP.",
	// No subcommand runs the server so container images can invoke the binary directly.
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: ISMYJOBCOOKED_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > ISMYJOBCOOKED_CONFIG env var > "./config.yaml" if present.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = os.Getenv("ISMYJOBCOOKED_CONFIG")
	}
	return config.Load(path)
}

// setupLogger logs text in development and JSON in production. --debug wins
// over the configured level.
func setupLogger(cfg *config.Config, dbg bool) *slog.Logger {
	var level slog.Level
	switch cfg.Log.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	if dbg {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.Server.IsProduction() {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h).With("service", serviceName)
}

func setupNotifier(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) model.ShareNotifier {
	switch cfg.Notification.Type {
	case "slack":
		logger.Info("using slack notifier")
		return notifier.NewSlackNotifier(cfg.Notification.WebhookURL, httpClient, logger)
	default:
		return notifier.NewLogNotifier(logger)
	}
}

// setupProvider builds the LLM chain. The rate limit sits inside the retries
// so every attempt pays for a token.
func setupProvider(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ai.LLMProvider, error) {
	var provider ai.LLMProvider
	switch cfg.AI.Provider {
	case "gemini":
		p, err := ai.NewGeminiProvider(ctx, cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			return nil, err
		}
		provider = p
	default:
		provider = ai.NewOpenAIProvider(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model, &http.Client{Timeout: cfg.AI.Timeout})
	}

	if rpm := cfg.AI.RequestsPerMinute; rpm > 0 {
		limiter := ratelimit.NewKeyedLimiter(rpm, time.Minute)
		provider = ratelimit.NewRateLimitedProvider(provider, limiter, cfg.AI.Provider)
	}

	// ai.timeout bounds the whole assessment in the analyzer, so attempts
	// share the caller's deadline.
	return retry.NewRetryProvider(provider, cfg.AI.MaxRetries, time.Second, 0, logger), nil
}

// setupAnalyzer returns the job analyzer, with the LLM assessment when it is
// enabled and constructible. A broken AI setup degrades to heuristics.
func setupAnalyzer(ctx context.Context, cfg *config.Config, logger *slog.Logger) *analyzer.Analyzer {
	if !cfg.AI.Enabled {
		logger.Info("AI assessment disabled, using heuristics only")
		return analyzer.New(nil, 0, logger)
	}

	provider, err := setupProvider(ctx, cfg, logger)
	if err != nil {
		logger.Warn("AI provider unavailable, using heuristics only", "provider", cfg.AI.Provider, "error", err)
		return analyzer.New(nil, 0, logger)
	}

	logger.Info("AI assessment enabled",
		"provider", cfg.AI.Provider,
		"model", cfg.AI.Model,
		"max_retries", cfg.AI.MaxRetries,
		"requests_per_minute", cfg.AI.RequestsPerMinute,
	)
	assessor := ai.NewAssessor(provider, ai.RiskAssessmentTemplate, logger)
	return analyzer.New(assessor, cfg.AI.Timeout, logger)
}
