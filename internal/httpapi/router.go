package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/DorinSirca/ismyjobcooked-api/internal/analytics"
	"github.com/DorinSirca/ismyjobcooked-api/internal/analyzer"
	"github.com/DorinSirca/ismyjobcooked-api/internal/events"
	"github.com/DorinSirca/ismyjobcooked-api/internal/jobs"
	"github.com/DorinSirca/ismyjobcooked-api/internal/memes"
	"github.com/DorinSirca/ismyjobcooked-api/internal/ratelimit"
)

const defaultNotifyTimeout = 10 * time.Second

// NewMux registers every route. Requests that match nothing, including a
// known path with the wrong method, reach the 404 handler.
func NewMux(d Deps) *http.ServeMux {
	d = withDefaults(d)
	ew := ErrorWriter{Production: d.Server.IsProduction(), Logger: d.Logger}
	mux := http.NewServeMux()

	hh := HealthHandler{Server: d.Server, Started: d.Started, Now: d.Now}
	mux.HandleFunc("GET /health", hh.Health)
	mux.HandleFunc("GET /{$}", hh.Root)
	mux.HandleFunc("/", hh.NotFound)

	// Jobs
	jh := JobsHandler{
		Catalog:   d.Catalog,
		Generator: d.Generator,
		Analyzer:  d.Analyzer,
		Now:       d.Now,
		Errors:    ew,
	}
	mux.HandleFunc("POST /api/jobs/analyze", jh.Analyze)
	mux.HandleFunc("GET /api/jobs/random", jh.Random)
	mux.HandleFunc("GET /api/jobs/categories", jh.Categories)
	mux.HandleFunc("GET /api/jobs/categories/trending", jh.TrendingCategories)
	mux.HandleFunc("GET /api/jobs/categories/search", jh.SearchCategories)
	mux.HandleFunc("GET /api/jobs/categories/compare", jh.CompareCategories)
	mux.HandleFunc("GET /api/jobs/category/{category}", jh.ByCategory)
	mux.HandleFunc("GET /api/jobs/all", jh.All)
	mux.HandleFunc("GET /api/jobs/stats", jh.Stats)
	mux.HandleFunc("GET /api/jobs/generate/random", jh.GenerateRandom)
	mux.HandleFunc("GET /api/jobs/generate/trending", jh.GenerateTrending)
	mux.HandleFunc("GET /api/jobs/degen", jh.Degen)

	// Memes
	mh := MemesHandler{Library: d.Memes, Catalog: d.Catalog, Analyzer: d.Analyzer, Now: d.Now, Errors: ew}
	mux.HandleFunc("GET /api/memes/daily", mh.Daily)
	mux.HandleFunc("GET /api/memes/random", mh.Random)
	mux.HandleFunc("GET /api/memes/category/{category}", mh.ByCategory)
	mux.HandleFunc("GET /api/memes/trending", mh.Trending)
	mux.HandleFunc("GET /api/memes/all", mh.All)
	mux.HandleFunc("POST /api/memes/generate", mh.Generate)
	mux.HandleFunc("POST /api/memes/job", mh.ForJob)
	mux.HandleFunc("GET /api/memes/breaking", mh.Breaking)
	mux.HandleFunc("GET /api/memes/platform/{platform}", mh.ForPlatform)
	mux.HandleFunc("POST /api/memes/personalized", mh.Personalized)

	// Analytics
	ah := AnalyticsHandler{
		Store:         d.Analytics,
		Notifier:      d.Notifier,
		NotifyTimeout: d.NotifyTimeout,
		Logger:        d.Logger,
		Now:           d.Now,
		Errors:        ew,
	}
	mux.HandleFunc("POST /api/analytics/track", ah.Track)
	mux.HandleFunc("POST /api/analytics/share", ah.Share)
	mux.HandleFunc("GET /api/analytics/dashboard", ah.Dashboard)
	mux.HandleFunc("GET /api/analytics/job/{jobTitle}", ah.Job)
	mux.HandleFunc("GET /api/analytics/trending", ah.Trending)
	mux.HandleFunc("GET /api/analytics/shares", ah.Shares)
	mux.HandleFunc("POST /api/analytics/reset", ah.Reset)

	// SSE events
	eh := EventsHandler{Hub: d.Hub, Errors: ew}
	mux.HandleFunc("GET /api/analytics/stream", eh.ServeSSE)

	return mux
}

// NewHandler wraps the mux in the middleware stack, outermost first.
func NewHandler(d Deps) http.Handler {
	d = withDefaults(d)
	ew := ErrorWriter{Production: d.Server.IsProduction(), Logger: d.Logger}
	return Chain(NewMux(d),
		RequestID,
		Recover(ew),
		AccessLog(d.Logger),
		SecurityHeaders,
		Cors(d.Server.FrontendURL),
		RateLimit(d.Limiter, d.Server.RateLimit.Window),
		BodyLimit(d.Server.BodyLimitBytes),
	)
}

func withDefaults(d Deps) Deps {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Hub == nil {
		d.Hub = events.NewHub()
	}
	if d.Analyzer == nil {
		d.Analyzer = analyzer.New(nil, 0, d.Logger)
	}
	if d.Catalog == nil {
		d.Catalog = jobs.NewCatalog()
	}
	if d.Generator == nil {
		d.Generator = jobs.NewGenerator(nil)
	}
	if d.Memes == nil {
		d.Memes = memes.NewLibrary()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Analytics == nil {
		d.Analytics = analytics.New(d.Hub, d.Logger).WithClock(d.Now)
	}
	if d.Started.IsZero() {
		d.Started = d.Now()
	}
	if d.NotifyTimeout <= 0 {
		d.NotifyTimeout = defaultNotifyTimeout
	}
	if d.Server.RateLimit.Window <= 0 {
		d.Server.RateLimit.Window = 15 * time.Minute
	}
	if d.Server.RateLimit.Requests <= 0 {
		d.Server.RateLimit.Requests = 100
	}
	if d.Limiter == nil {
		d.Limiter = ratelimit.NewKeyedLimiter(d.Server.RateLimit.Requests, d.Server.RateLimit.Window)
	}
	return d
}
