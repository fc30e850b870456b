package httpapi

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/DorinSirca/ismyjobcooked-api/internal/config"
)

// Version is reported by the root endpoint.
const Version = "1.0.0"

// AvailableEndpoints is listed in the 404 body.
var AvailableEndpoints = []string{
	"GET /health",
	"GET /",
	"POST /api/jobs/analyze",
	"GET /api/jobs/random",
	"GET /api/jobs/categories",
	"GET /api/memes/daily",
	"POST /api/analytics/track",
}

type HealthHandler struct {
	Server  config.ServerConfig
	Started time.Time
	Now     func() time.Time
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	env := h.Server.Environment
	if env == "" {
		env = config.EnvDevelopment
	}
	now := h.Now()
	WriteJSON(w, http.StatusOK, map[string]any{
		"status":      "healthy",
		"timestamp":   now.UTC(),
		"uptime":      now.Sub(h.Started).Seconds(),
		"environment": env,
	})
}

func (h HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"message": "🔥 IsMyJobCooked API is running!",
		"version": Version,
		"endpoints": map[string]string{
			"jobs":      "/api/jobs",
			"memes":     "/api/memes",
			"analytics": "/api/analytics",
		},
		"documentation": "/api/docs",
	})
}

// NotFound serves static files in production when one exists at the path and
// answers everything else with the endpoint list.
func (h HealthHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	if h.serveStatic(w, r) {
		return
	}
	WriteJSON(w, http.StatusNotFound, map[string]any{
		"error":              "Endpoint not found",
		"message":            "The requested endpoint does not exist",
		"availableEndpoints": AvailableEndpoints,
	})
}

func (h HealthHandler) serveStatic(w http.ResponseWriter, r *http.Request) bool {
	if !h.Server.IsProduction() || h.Server.StaticDir == "" {
		return false
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return false
	}
	name := filepath.Join(h.Server.StaticDir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
	info, err := os.Stat(name)
	if err != nil {
		return false
	}
	if info.IsDir() {
		name = filepath.Join(name, "index.html")
		if _, err := os.Stat(name); err != nil {
			return false
		}
	}
	http.ServeFile(w, r, name)
	return true
}
