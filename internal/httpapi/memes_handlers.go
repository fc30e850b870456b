package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/DorinSirca/ismyjobcooked-api/internal/jobs"
	"github.com/DorinSirca/ismyjobcooked-api/internal/memes"
	"github.com/DorinSirca/ismyjobcooked-api/internal/model"
)

type MemesHandler struct {
	Library  *memes.Library
	Catalog  *jobs.Catalog
	Analyzer model.JobAnalyzer
	Now      func() time.Time
	Errors   ErrorWriter
}

func (h MemesHandler) Daily(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.Library.Daily(h.Now().UTC()))
}

func (h MemesHandler) Random(w http.ResponseWriter, r *http.Request) {
	m := h.Library.Random()
	m.Timestamp = h.Now().UTC()
	WriteJSON(w, http.StatusOK, m)
}

func (h MemesHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	category, err := validateCategory(r.PathValue("category"))
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	found, err := h.Library.ByCategory(category)
	if errors.Is(err, memes.ErrCategoryNotFound) {
		h.Errors.Write(w, r, &NotFoundError{
			Title:   "Category not found",
			Message: "No memes found in category: " + category,
			Extra:   map[string]any{"availableCategories": h.Library.Categories()},
		})
		return
	}
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"category": category,
		"memes":    found,
		"count":    len(found),
	})
}

func (h MemesHandler) Trending(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r, memes.DefaultTrendingLimit)
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	top := h.Library.Trending(limit)
	WriteJSON(w, http.StatusOK, map[string]any{
		"memes":     top,
		"count":     len(top),
		"timestamp": h.Now().UTC(),
	})
}

func (h MemesHandler) All(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"memes":             h.Library.All(),
		"count":             h.Library.Len(),
		"categories":        h.Library.Categories(),
		"averageViralScore": h.Library.AverageViralScore(),
	})
}

func (h MemesHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(r, &req); err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	title, score, err := req.validate()
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, memes.Custom(title, score, h.Now().UTC()))
}

// ForJob builds a meme for a job, analyzing it first when it is not curated.
func (h MemesHandler) ForJob(w http.ResponseWriter, r *http.Request) {
	var body struct {
		JobTitle any `json:"jobTitle"`
	}
	if err := decodeJSON(r, &body); err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	title, err := validateJobTitle(body.JobTitle)
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	rec := h.record(r, title)
	WriteJSON(w, http.StatusOK, memes.ForJob(rec, h.Now().UTC()))
}

func (h MemesHandler) Breaking(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, memes.Breaking(h.Now().UTC()))
}

func (h MemesHandler) ForPlatform(w http.ResponseWriter, r *http.Request) {
	platform, err := validateCategory(r.PathValue("platform"))
	if err != nil {
		h.Errors.Write(w, r, badRequest("Platform is required"))
		return
	}
	var rec *model.JobRecord
	if raw := r.URL.Query().Get("jobTitle"); raw != "" {
		title, err := validateJobTitle(raw)
		if err != nil {
			h.Errors.Write(w, r, err)
			return
		}
		found := h.record(r, title)
		rec = &found
	}
	WriteJSON(w, http.StatusOK, memes.ForPlatform(platform, rec, h.Now().UTC()))
}

func (h MemesHandler) Personalized(w http.ResponseWriter, r *http.Request) {
	var p memes.Profile
	if err := decodeJSON(r, &p); err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, memes.Personalized(p, h.Now().UTC()))
}

func (h MemesHandler) record(r *http.Request, title string) model.JobRecord {
	if rec, ok := h.Catalog.Lookup(title); ok {
		return rec
	}
	return h.Analyzer.Analyze(r.Context(), title)
}
