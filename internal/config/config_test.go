package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearEnv blanks every variable Load reads so the host environment cannot
// leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "NODE_ENV", "FRONTEND_URL", "LOG_LEVEL", "OPENAI_API_KEY", "GEMINI_API_KEY", "TEST_SLACK_HOOK"} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
server:
  port: 8080
  environment: production
  frontend_url: https://app.example.com
  body_limit_mb: 2
  rate_limit:
    requests: 10
    window: 1m
log:
  level: debug
ai:
  enabled: true
  provider: openai
  model: gpt-4o-mini
  api_key: sk-test
  timeout: 5s
  max_retries: 3
  requests_per_minute: 30
analytics:
  persist: true
  db_path: /tmp/a.db
  snapshot_interval: 30s
  retention: 48h
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 || cfg.Server.Addr() != ":8080" {
		t.Errorf("Port = %d", cfg.Server.Port)
	}
	if !cfg.Server.IsProduction() {
		t.Error("expected production environment")
	}
	if cfg.Server.BodyLimitBytes != 2<<20 {
		t.Errorf("BodyLimitBytes = %d", cfg.Server.BodyLimitBytes)
	}
	if cfg.Server.RateLimit.Requests != 10 || cfg.Server.RateLimit.Window != time.Minute {
		t.Errorf("RateLimit = %+v", cfg.Server.RateLimit)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
	if !cfg.AI.Enabled || cfg.AI.Model != "gpt-4o-mini" || cfg.AI.BaseURL != defaultOpenAIBaseURL {
		t.Errorf("AI = %+v", cfg.AI)
	}
	if cfg.AI.Timeout != 5*time.Second || cfg.AI.MaxRetries != 3 || cfg.AI.RequestsPerMinute != 30 {
		t.Errorf("AI limits = %+v", cfg.AI)
	}
	if !cfg.Analytics.Persist || cfg.Analytics.SnapshotInterval != 30*time.Second || cfg.Analytics.Retention != 48*time.Hour {
		t.Errorf("Analytics = %+v", cfg.Analytics)
	}
	if cfg.Notification.Type != "log" {
		t.Errorf("Notification.Type = %q, want log default", cfg.Notification.Type)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("Port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.Server.Environment != EnvDevelopment {
		t.Errorf("Environment = %q", cfg.Server.Environment)
	}
	if cfg.Server.BodyLimitBytes != 10<<20 {
		t.Errorf("BodyLimitBytes = %d, want 10 MiB", cfg.Server.BodyLimitBytes)
	}
	if cfg.Server.RateLimit.Requests != 100 || cfg.Server.RateLimit.Window != 15*time.Minute {
		t.Errorf("RateLimit = %+v", cfg.Server.RateLimit)
	}
	if cfg.AI.Enabled {
		t.Error("AI should be disabled without a key")
	}
	if cfg.AI.Timeout != 15*time.Second || cfg.AI.MaxRetries != 1 {
		t.Errorf("AI = %+v", cfg.AI)
	}
	if cfg.AI.Model != defaultOpenAIModel {
		t.Errorf("Model = %q", cfg.AI.Model)
	}
	if cfg.Analytics.Persist {
		t.Error("persistence should be off by default")
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestLoad_DefaultPathIsRead(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, DefaultPath), []byte("server:\n  port: 4321\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 4321 {
		t.Errorf("Port = %d, want 4321", cfg.Server.Port)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9999")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("FRONTEND_URL", "https://front.example.com")
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("OPENAI_API_KEY", "sk-env")

	path := writeConfig(t, `
server:
  port: 8080
  environment: development
log:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Port = %d, want env override 9999", cfg.Server.Port)
	}
	if !cfg.Server.IsProduction() {
		t.Errorf("Environment = %q", cfg.Server.Environment)
	}
	if cfg.Server.FrontendURL != "https://front.example.com" {
		t.Errorf("FrontendURL = %q", cfg.Server.FrontendURL)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
	if !cfg.AI.Enabled || cfg.AI.APIKey != "sk-env" {
		t.Errorf("AI = %+v, want enabled by OPENAI_API_KEY", cfg.AI)
	}
}

func TestLoad_GeminiKeyFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("OPENAI_API_KEY", "sk-ignored")

	cfg, err := Load(writeConfig(t, "ai:\n  provider: gemini\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AI.APIKey != "g-key" || !cfg.AI.Enabled {
		t.Errorf("AI = %+v", cfg.AI)
	}
	if cfg.AI.Model != defaultGeminiModel {
		t.Errorf("Model = %q, want %q", cfg.AI.Model, defaultGeminiModel)
	}
	if cfg.AI.BaseURL != "" {
		t.Errorf("BaseURL = %q, want empty for gemini", cfg.AI.BaseURL)
	}
}

func TestLoad_ExpandsEnvInFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("TEST_SLACK_HOOK", "https://hooks.slack.com/services/T/B/X")

	cfg, err := Load(writeConfig(t, `
notification:
  type: slack
  webhook_url: ${TEST_SLACK_HOOK}
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Notification.WebhookURL != "https://hooks.slack.com/services/T/B/X" {
		t.Errorf("WebhookURL = %q", cfg.Notification.WebhookURL)
	}
}

func TestLoad_MaxRetriesZeroIsKept(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeConfig(t, "ai:\n  max_retries: 0\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AI.MaxRetries != 0 {
		t.Errorf("MaxRetries = %d, want 0", cfg.AI.MaxRetries)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err == nil {
		t.Fatal("Load: expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeConfig(t, "server: [broken"))
	if err == nil {
		t.Fatal("Load: expected error for invalid YAML")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad duration", "ai:\n  timeout: soon\n", "ai.timeout"},
		{"bad port", "server:\n  port: 70000\n", "server.port"},
		{"bad level", "log:\n  level: loud\n", "log.level"},
		{"slack without url", "notification:\n  type: slack\n", "webhook_url is required"},
		{"slack wrong host", "notification:\n  type: slack\n  webhook_url: https://example.com/x\n", "hooks.slack.com"},
		{"unknown notifier", "notification:\n  type: email\n", "notification.type"},
		{"ai without key", "ai:\n  enabled: true\n", "ai.api_key"},
		{"unknown provider", "ai:\n  enabled: true\n  provider: llama\n  api_key: k\n", "ai.provider"},
		{"negative retries", "ai:\n  enabled: true\n  api_key: k\n  max_retries: -1\n", "max_retries"},
		{"tiny snapshot interval", "analytics:\n  persist: true\n  snapshot_interval: 10ms\n", "snapshot_interval"},
		{"zero snapshot interval without persistence", "analytics:\n  persist: false\n  snapshot_interval: 0s\n", "snapshot_interval"},
		{"negative snapshot interval", "analytics:\n  snapshot_interval: -1m\n", "snapshot_interval"},
		{"zero window", "server:\n  rate_limit:\n    window: 0s\n", "rate_limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}
