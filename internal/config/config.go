package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is tried when no config path is given.
const DefaultPath = "config.yaml"

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is the root configuration for the ismyjobcooked API.
type Config struct {
	Server       ServerConfig
	Log          LogConfig
	AI           AIConfig
	Analytics    AnalyticsConfig
	Notification NotificationConfig
}

// ServerConfig controls the HTTP listener and its middleware.
type ServerConfig struct {
	Port              int
	Environment       string // "development" or "production"
	FrontendURL       string // extra allowed CORS origin
	StaticDir         string // served in production
	BodyLimitBytes    int64
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
	RateLimit         RateLimitConfig
}

// IsProduction reports whether error details must be hidden.
func (s ServerConfig) IsProduction() bool {
	return s.Environment == EnvProduction
}

// Addr is the listen address.
func (s ServerConfig) Addr() string {
	return ":" + strconv.Itoa(s.Port)
}

// RateLimitConfig is the per-client limit on /api/ routes.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

type LogConfig struct {
	Level string // debug, info, warn or error
}

// AIConfig controls the optional LLM assessment.
type AIConfig struct {
	Enabled           bool
	Provider          string        // "openai" or "gemini"
	BaseURL           string        // openai only; defaults to https://api.openai.com/v1
	Model             string        // defaults per provider
	APIKey            string        // expanded from env var by Load
	Timeout           time.Duration // bounds one assessment including retries
	MaxRetries        int
	RequestsPerMinute int // 0 disables the outbound limiter
}

// AnalyticsConfig controls snapshot persistence.
type AnalyticsConfig struct {
	Persist          bool
	DBPath           string
	SnapshotInterval time.Duration
	Retention        time.Duration
}

// NotificationConfig controls which share notifier is used and its settings.
type NotificationConfig struct {
	Type       string `yaml:"type"`        // "log" or "slack"
	WebhookURL string `yaml:"webhook_url"` // required if type is "slack"
}

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = "gpt-3.5-turbo"
	defaultGeminiModel   = "gemini-2.0-flash"
)

// rawConfig is used for YAML unmarshaling (snake_case fields and duration as string).
type rawConfig struct {
	Server       rawServerConfig    `yaml:"server"`
	Log          LogConfig          `yaml:"log"`
	AI           rawAIConfig        `yaml:"ai"`
	Analytics    rawAnalyticsConfig `yaml:"analytics"`
	Notification NotificationConfig `yaml:"notification"`
}

type rawServerConfig struct {
	Port              int                `yaml:"port"`
	Environment       string             `yaml:"environment"`
	FrontendURL       string             `yaml:"frontend_url"`
	StaticDir         string             `yaml:"static_dir"`
	BodyLimitMB       int                `yaml:"body_limit_mb"`
	ReadHeaderTimeout string             `yaml:"read_header_timeout"`
	ShutdownTimeout   string             `yaml:"shutdown_timeout"`
	RateLimit         rawRateLimitConfig `yaml:"rate_limit"`
}

type rawRateLimitConfig struct {
	Requests int    `yaml:"requests"`
	Window   string `yaml:"window"`
}

type rawAIConfig struct {
	Enabled           bool   `yaml:"enabled"`
	Provider          string `yaml:"provider"`
	BaseURL           string `yaml:"base_url"`
	Model             string `yaml:"model"`
	APIKey            string `yaml:"api_key"`
	Timeout           string `yaml:"timeout"`
	MaxRetries        *int   `yaml:"max_retries"`
	RequestsPerMinute int    `yaml:"requests_per_minute"`
}

type rawAnalyticsConfig struct {
	Persist          bool   `yaml:"persist"`
	DBPath           string `yaml:"db_path"`
	SnapshotInterval string `yaml:"snapshot_interval"`
	Retention        string `yaml:"retention"`
}

// Load reads and parses the YAML config file at path, applies environment
// overrides, validates it, and returns Config. An empty path tries
// DefaultPath and falls back to defaults when that file does not exist.
func Load(path string) (*Config, error) {
	var data []byte
	if path == "" {
		b, err := os.ReadFile(DefaultPath)
		switch {
		case err == nil:
			data = b
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		data = b
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg, err := fromRaw(raw)
	if err != nil {
		return nil, err
	}
	applyEnv(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseDuration(field, value string, def time.Duration) (time.Duration, error) {
	if value == "" {
		return def, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", field, value, err)
	}
	return d, nil
}

func fromRaw(raw rawConfig) (*Config, error) {
	readHeader, err := parseDuration("server.read_header_timeout", raw.Server.ReadHeaderTimeout, 10*time.Second)
	if err != nil {
		return nil, err
	}
	shutdown, err := parseDuration("server.shutdown_timeout", raw.Server.ShutdownTimeout, 10*time.Second)
	if err != nil {
		return nil, err
	}
	window, err := parseDuration("server.rate_limit.window", raw.Server.RateLimit.Window, 15*time.Minute)
	if err != nil {
		return nil, err
	}
	aiTimeout, err := parseDuration("ai.timeout", raw.AI.Timeout, 15*time.Second)
	if err != nil {
		return nil, err
	}
	interval, err := parseDuration("analytics.snapshot_interval", raw.Analytics.SnapshotInterval, 5*time.Minute)
	if err != nil {
		return nil, err
	}
	retention, err := parseDuration("analytics.retention", raw.Analytics.Retention, 7*24*time.Hour)
	if err != nil {
		return nil, err
	}

	port := raw.Server.Port
	if port == 0 {
		port = 3000
	}
	env := raw.Server.Environment
	if env == "" {
		env = EnvDevelopment
	}
	staticDir := raw.Server.StaticDir
	if staticDir == "" {
		staticDir = "public"
	}
	bodyMB := raw.Server.BodyLimitMB
	if bodyMB == 0 {
		bodyMB = 10
	}
	requests := raw.Server.RateLimit.Requests
	if requests == 0 {
		requests = 100
	}

	provider := strings.ToLower(raw.AI.Provider)
	if provider == "" {
		provider = "openai"
	}
	baseURL := raw.AI.BaseURL
	if baseURL == "" && provider == "openai" {
		baseURL = defaultOpenAIBaseURL
	}
	maxRetries := 1
	if raw.AI.MaxRetries != nil {
		maxRetries = *raw.AI.MaxRetries
	}

	dbPath := raw.Analytics.DBPath
	if dbPath == "" {
		dbPath = "ismyjobcooked.db"
	}

	notification := raw.Notification
	if notification.Type == "" {
		notification.Type = "log"
	}

	level := raw.Log.Level
	if level == "" {
		level = "info"
	}

	return &Config{
		Server: ServerConfig{
			Port:              port,
			Environment:       env,
			FrontendURL:       raw.Server.FrontendURL,
			StaticDir:         staticDir,
			BodyLimitBytes:    int64(bodyMB) << 20,
			ReadHeaderTimeout: readHeader,
			ShutdownTimeout:   shutdown,
			RateLimit:         RateLimitConfig{Requests: requests, Window: window},
		},
		Log: LogConfig{Level: level},
		AI: AIConfig{
			Enabled:           raw.AI.Enabled,
			Provider:          provider,
			BaseURL:           baseURL,
			Model:             raw.AI.Model,
			APIKey:            raw.AI.APIKey,
			Timeout:           aiTimeout,
			MaxRetries:        maxRetries,
			RequestsPerMinute: raw.AI.RequestsPerMinute,
		},
		Analytics: AnalyticsConfig{
			Persist:          raw.Analytics.Persist,
			DBPath:           dbPath,
			SnapshotInterval: interval,
			Retention:        retention,
		},
		Notification: notification,
	}, nil
}

// applyEnv lets the process environment override file values. An API key in
// the environment also enables the assessment.
func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}
	if v := os.Getenv("NODE_ENV"); v != "" {
		cfg.Server.Environment = v
	}
	if v := os.Getenv("FRONTEND_URL"); v != "" {
		cfg.Server.FrontendURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}

	var key string
	switch cfg.AI.Provider {
	case "gemini":
		key = os.Getenv("GEMINI_API_KEY")
	default:
		key = os.Getenv("OPENAI_API_KEY")
	}
	if key != "" {
		cfg.AI.APIKey = key
		cfg.AI.Enabled = true
	}

	if cfg.AI.Model == "" {
		if cfg.AI.Provider == "gemini" {
			cfg.AI.Model = defaultGeminiModel
		} else {
			cfg.AI.Model = defaultOpenAIModel
		}
	}
}

var validLevels = []string{"debug", "info", "warn", "error"}

func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", cfg.Server.Port)
	}
	if cfg.Server.BodyLimitBytes <= 0 {
		return fmt.Errorf("server.body_limit_mb must be positive")
	}
	if cfg.Server.RateLimit.Requests <= 0 || cfg.Server.RateLimit.Window <= 0 {
		return fmt.Errorf("server.rate_limit requests and window must be positive, got %d per %v",
			cfg.Server.RateLimit.Requests, cfg.Server.RateLimit.Window)
	}
	if !slices.Contains(validLevels, cfg.Log.Level) {
		return fmt.Errorf("log.level must be one of %s, got %q", strings.Join(validLevels, ", "), cfg.Log.Level)
	}

	switch cfg.Notification.Type {
	case "log":
	case "slack":
		if cfg.Notification.WebhookURL == "" {
			return fmt.Errorf("notification.webhook_url is required when type is \"slack\"")
		}
		if !strings.HasPrefix(cfg.Notification.WebhookURL, "https://hooks.slack.com/") {
			return fmt.Errorf("notification.webhook_url must start with https://hooks.slack.com/")
		}
	default:
		return fmt.Errorf("notification.type must be \"log\" or \"slack\", got %q", cfg.Notification.Type)
	}

	if cfg.AI.Enabled {
		if cfg.AI.Provider != "openai" && cfg.AI.Provider != "gemini" {
			return fmt.Errorf("ai.provider must be \"openai\" or \"gemini\", got %q", cfg.AI.Provider)
		}
		if cfg.AI.APIKey == "" {
			return fmt.Errorf("ai.api_key is required when ai.enabled is true")
		}
		if cfg.AI.Provider == "openai" && cfg.AI.BaseURL == "" {
			return fmt.Errorf("ai.base_url is required for the openai provider")
		}
		if cfg.AI.Timeout <= 0 {
			return fmt.Errorf("ai.timeout must be positive, got %v", cfg.AI.Timeout)
		}
		if cfg.AI.MaxRetries < 0 {
			return fmt.Errorf("ai.max_retries must not be negative, got %d", cfg.AI.MaxRetries)
		}
	}

	// The snapshot loop runs even without persistence.
	if cfg.Analytics.SnapshotInterval < time.Second {
		return fmt.Errorf("analytics.snapshot_interval must be at least 1s, got %v", cfg.Analytics.SnapshotInterval)
	}
	if cfg.Analytics.Persist && cfg.Analytics.DBPath == "" {
		return fmt.Errorf("analytics.db_path is required when analytics.persist is true")
	}

	return nil
}
