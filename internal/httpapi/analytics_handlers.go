package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/DorinSirca/ismyjobcooked-api/internal/analytics"
	"github.com/DorinSirca/ismyjobcooked-api/internal/model"
)

type AnalyticsHandler struct {
	Store         *analytics.Store
	Notifier      model.ShareNotifier
	NotifyTimeout time.Duration
	Logger        *slog.Logger
	Now           func() time.Time
	Errors        ErrorWriter
}

func (h AnalyticsHandler) Track(w http.ResponseWriter, r *http.Request) {
	var req trackRequest
	if err := decodeJSON(r, &req); err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	in, err := req.validate(h.Now())
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	if in.UserAgent == "" {
		in.UserAgent = r.UserAgent()
	}
	total := h.Store.TrackSearch(r.Context(), in)
	WriteJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"message":       "Search tracked successfully",
		"totalSearches": total,
	})
}

func (h AnalyticsHandler) Share(w http.ResponseWriter, r *http.Request) {
	var req shareRequest
	if err := decodeJSON(r, &req); err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	in, err := req.validate()
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	total, ev := h.Store.TrackShare(r.Context(), in)
	h.notify(r.Context(), ev)
	WriteJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"message":     "Share tracked successfully",
		"totalShares": total,
	})
}

// notify hands ev to the notifier off the request path. The request context
// only contributes its values; the send has its own deadline.
func (h AnalyticsHandler) notify(ctx context.Context, ev model.ShareEvent) {
	if h.Notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.NotifyTimeout)
	go func() {
		defer cancel()
		if err := h.Notifier.NotifyShare(ctx, ev); err != nil {
			h.Logger.Warn("share notification failed", "share_id", ev.ID, "platform", ev.Platform, "error", err)
		}
	}()
}

func (h AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	days, err := queryDays(r, analytics.DefaultDashboardDays)
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, struct {
		analytics.Dashboard
		Timestamp time.Time `json:"timestamp"`
	}{h.Store.Dashboard(days), h.Now().UTC()})
}

func (h AnalyticsHandler) Job(w http.ResponseWriter, r *http.Request) {
	title := r.PathValue("jobTitle")
	stats, err := h.Store.Job(title)
	if errors.Is(err, analytics.ErrJobNotFound) {
		h.Errors.Write(w, r, &NotFoundError{
			Title:   "Job not found",
			Message: "No analytics data found for: " + title,
		})
		return
	}
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, struct {
		JobTitle string `json:"jobTitle"`
		analytics.JobStats
		Timestamp time.Time `json:"timestamp"`
	}{title, stats, h.Now().UTC()})
}

func (h AnalyticsHandler) Trending(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r, analytics.DefaultTrendingLimit)
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	top := h.Store.Trending(limit)
	WriteJSON(w, http.StatusOK, map[string]any{
		"trendingJobs": top,
		"count":        len(top),
		"timestamp":    h.Now().UTC(),
	})
}

func (h AnalyticsHandler) Shares(w http.ResponseWriter, r *http.Request) {
	days, err := queryDays(r, analytics.DefaultShareDays)
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, struct {
		analytics.ShareStats
		Timestamp time.Time `json:"timestamp"`
	}{h.Store.Shares(r.URL.Query().Get("platform"), days), h.Now().UTC()})
}

func (h AnalyticsHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.Store.Reset(r.Context())
	WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Analytics data reset successfully",
	})
}
