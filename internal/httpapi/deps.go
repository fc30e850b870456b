package httpapi

import (
	"log/slog"
	"time"

	"github.com/DorinSirca/ismyjobcooked-api/internal/analytics"
	"github.com/DorinSirca/ismyjobcooked-api/internal/config"
	"github.com/DorinSirca/ismyjobcooked-api/internal/events"
	"github.com/DorinSirca/ismyjobcooked-api/internal/jobs"
	"github.com/DorinSirca/ismyjobcooked-api/internal/memes"
	"github.com/DorinSirca/ismyjobcooked-api/internal/model"
	"github.com/DorinSirca/ismyjobcooked-api/internal/ratelimit"
)

// Deps is everything the handlers need. Zero fields other than Notifier get
// defaults; a nil Notifier disables share notifications.
type Deps struct {
	Server    config.ServerConfig
	Catalog   *jobs.Catalog
	Generator *jobs.Generator
	Analyzer  model.JobAnalyzer
	Memes     *memes.Library
	Analytics *analytics.Store
	Hub       *events.Hub
	Notifier  model.ShareNotifier
	Limiter   *ratelimit.KeyedLimiter
	Logger    *slog.Logger

	// NotifyTimeout bounds each share notification.
	NotifyTimeout time.Duration
	Started       time.Time
	Now           func() time.Time
}
