package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/DorinSirca/ismyjobcooked-api/internal/jobs"
	"github.com/DorinSirca/ismyjobcooked-api/internal/model"
)

const (
	defaultTrendingCategories = 5
	defaultTrendingJobs       = 10
	maxBatch                  = 50
)

type JobsHandler struct {
	Catalog   *jobs.Catalog
	Generator *jobs.Generator
	Analyzer  model.JobAnalyzer
	Now       func() time.Time
	Errors    ErrorWriter
}

// Analysis is the body of POST /api/jobs/analyze.
type Analysis struct {
	Title              string    `json:"title"`
	Category           string    `json:"category"`
	CookedScore        int       `json:"cookedScore"`
	CookedLevel        string    `json:"cookedLevel"`
	Summary            string    `json:"summary"`
	AutomationRisk     int       `json:"automationRisk"`
	MedianSalary       string    `json:"medianSalary"`
	AIReplacements     string    `json:"aiReplacements"`
	CreativityRequired int       `json:"creativityRequired"`
	RiskFactors        []string  `json:"riskFactors"`
	AITools            []string  `json:"aiTools"`
	TimeToAutomation   string    `json:"timeToAutomation"`
	Timestamp          time.Time `json:"timestamp"`
}

// NewAnalysis derives the response for rec. The cooked score is the
// automation risk.
func NewAnalysis(rec model.JobRecord, now time.Time) Analysis {
	return Analysis{
		Title:              rec.Title,
		Category:           rec.Category,
		CookedScore:        rec.AutomationRisk,
		CookedLevel:        jobs.CookedLevel(rec.AutomationRisk),
		Summary:            jobs.Summary(rec.AutomationRisk),
		AutomationRisk:     rec.AutomationRisk,
		MedianSalary:       "$" + humanize.Comma(int64(rec.MedianSalary)),
		AIReplacements:     rec.AIReplacements,
		CreativityRequired: rec.CreativityRequired,
		RiskFactors:        nonNil(rec.RiskFactors),
		AITools:            nonNil(rec.AITools),
		TimeToAutomation:   rec.TimeToAutomation,
		Timestamp:          now.UTC(),
	}
}

func (h JobsHandler) Analyze(w http.ResponseWriter, r *http.Request) {
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

	rec, ok := h.Catalog.Lookup(title)
	if !ok {
		rec = h.Analyzer.Analyze(r.Context(), title)
	}
	WriteJSON(w, http.StatusOK, NewAnalysis(rec, h.Now()))
}

type keyedRecord struct {
	model.JobRecord
	Key       string    `json:"key"`
	Timestamp time.Time `json:"timestamp"`
}

type timedEntry struct {
	jobs.Entry
	Timestamp time.Time `json:"timestamp"`
}

func (h JobsHandler) Random(w http.ResponseWriter, r *http.Request) {
	key, rec := h.Catalog.Random()
	WriteJSON(w, http.StatusOK, keyedRecord{JobRecord: rec, Key: key, Timestamp: h.Now().UTC()})
}

func (h JobsHandler) Categories(w http.ResponseWriter, r *http.Request) {
	cats := jobs.Categories(h.Catalog.Entries())
	byName := make(map[string]jobs.CategoryInfo, len(cats))
	for _, c := range cats {
		byName[c.Name] = c
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"categories":      byName,
		"totalCategories": len(byName),
		"timestamp":       h.Now().UTC(),
	})
}

func (h JobsHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	category, err := validateCategory(r.PathValue("category"))
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	recs := h.Catalog.ByCategory(category)
	if len(recs) == 0 {
		h.Errors.Write(w, r, &NotFoundError{
			Title:   "Category not found",
			Message: "No jobs found in category: " + category,
		})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"category": category,
		"jobs":     recs,
		"count":    len(recs),
	})
}

func (h JobsHandler) All(w http.ResponseWriter, r *http.Request) {
	all := h.Catalog.All()
	WriteJSON(w, http.StatusOK, map[string]any{
		"jobs":       all,
		"count":      len(all),
		"categories": h.Catalog.Categories(),
	})
}

func (h JobsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, overall := jobs.Statistics(h.Catalog.Entries())
	byName := make(map[string]jobs.CategoryStats, len(stats))
	for _, s := range stats {
		byName[s.Name] = s
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"categories": byName,
		"overall":    overall,
		"timestamp":  h.Now().UTC(),
	})
}

func (h JobsHandler) TrendingCategories(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r, defaultTrendingCategories)
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	cats := jobs.TrendingCategories(h.Catalog.Entries(), limit)
	WriteJSON(w, http.StatusOK, map[string]any{
		"categories": cats,
		"count":      len(cats),
		"timestamp":  h.Now().UTC(),
	})
}

func (h JobsHandler) SearchCategories(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		h.Errors.Write(w, r, badRequest("Search term is required"))
		return
	}
	cats := nonNil(jobs.SearchCategories(h.Catalog.Entries(), q))
	WriteJSON(w, http.StatusOK, map[string]any{
		"categories": cats,
		"count":      len(cats),
		"searchTerm": q,
		"timestamp":  h.Now().UTC(),
	})
}

func (h JobsHandler) CompareCategories(w http.ResponseWriter, r *http.Request) {
	var names []string
	for _, n := range strings.Split(r.URL.Query().Get("categories"), ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		h.Errors.Write(w, r, badRequest("Categories must be a comma-separated list"))
		return
	}
	comparison := jobs.CompareCategories(h.Catalog.Entries(), names)
	compared := make([]string, 0, len(comparison))
	for _, n := range names {
		if _, ok := comparison[n]; ok {
			compared = append(compared, n)
		}
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"comparison": comparison,
		"categories": compared,
		"timestamp":  h.Now().UTC(),
	})
}

// GenerateRandom draws from the extended table: a batch when count is set,
// otherwise one entry filtered by category or risk band.
func (h JobsHandler) GenerateRandom(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	now := h.Now().UTC()

	if q.Get("count") != "" {
		count, err := queryInt(r, "count", 0, 1, maxBatch, "Count must be a number between 1 and 50")
		if err != nil {
			h.Errors.Write(w, r, err)
			return
		}
		batch := h.Generator.RandomBatch(count)
		WriteJSON(w, http.StatusOK, map[string]any{"jobs": batch, "count": len(batch), "timestamp": now})
		return
	}

	var (
		e   jobs.Entry
		err error
	)
	switch {
	case q.Get("category") != "":
		e, err = h.Generator.RandomByCategory(q.Get("category"))
	case q.Get("risk") != "":
		e, err = h.Generator.RandomByRisk(q.Get("risk"))
	default:
		e = h.Generator.Random()
	}
	switch {
	case errors.Is(err, jobs.ErrInvalidRiskLevel):
		h.Errors.Write(w, r, badRequest("Invalid risk level. Use: low, medium, or high"))
		return
	case errors.Is(err, jobs.ErrNotFound):
		h.Errors.Write(w, r, &NotFoundError{Message: err.Error()})
		return
	case err != nil:
		h.Errors.Write(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, timedEntry{Entry: e, Timestamp: now})
}

func (h JobsHandler) GenerateTrending(w http.ResponseWriter, r *http.Request) {
	count, err := queryInt(r, "count", defaultTrendingJobs, 1, maxBatch, "Count must be a number between 1 and 50")
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	top := h.Generator.TopByRisk(count)
	WriteJSON(w, http.StatusOK, map[string]any{"jobs": top, "count": len(top), "timestamp": h.Now().UTC()})
}

func (h JobsHandler) Degen(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, struct {
		model.JobRecord
		Timestamp time.Time `json:"timestamp"`
	}{jobs.Degen(), h.Now().UTC()})
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
