package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/DorinSirca/ismyjobcooked-api/internal/analytics"
	"github.com/DorinSirca/ismyjobcooked-api/internal/filter"
	"github.com/DorinSirca/ismyjobcooked-api/internal/memes"
)

const (
	maxJobTitleLen  = 100
	maxShareTextLen = 500
	maxClockSkew    = 24 * time.Hour
)

// decodeJSON reads the request body into v. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// truthy mirrors the loose "was anything sent" check clients rely on: absent,
// null, false, 0 and "" all count as missing.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case string:
		return t != ""
	default:
		return true
	}
}

// validateJobTitle checks the analyze input and returns the trimmed title.
func validateJobTitle(v any) (string, error) {
	if !truthy(v) {
		return "", badRequest("Job title is required")
	}
	s, ok := v.(string)
	if !ok {
		return "", badRequest("Job title must be a string")
	}
	title := strings.TrimSpace(s)
	switch {
	case title == "":
		return "", badRequest("Job title cannot be empty")
	case utf8.RuneCountInString(title) > maxJobTitleLen:
		return "", badRequest(fmt.Sprintf("Job title is too long (max %d characters)", maxJobTitleLen))
	case filter.IsHarmful(title):
		return "", badRequest("Job title contains invalid content")
	}
	return title, nil
}

func requireNonEmptyTitle(v any) (string, error) {
	if !truthy(v) {
		return "", badRequest("Job title is required")
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", badRequest("Job title must be a non-empty string")
	}
	return s, nil
}

// parseScore accepts a number or a numeric string in [0, 100]. nil means the
// field was not sent.
func parseScore(v any) (*float64, error) {
	var f float64
	switch t := v.(type) {
	case nil:
		return nil, nil
	case float64:
		f = t
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return nil, badRequest("Cooked score must be a number between 0 and 100")
		}
		f = parsed
	case bool:
		if t {
			f = 1
		}
	default:
		return nil, badRequest("Cooked score must be a number between 0 and 100")
	}
	if math.IsNaN(f) || f < 0 || f > 100 {
		return nil, badRequest("Cooked score must be a number between 0 and 100")
	}
	return &f, nil
}

// parseTimestamp accepts RFC 3339 text or epoch milliseconds.
func parseTimestamp(v any, now time.Time) (time.Time, error) {
	var ts time.Time
	switch t := v.(type) {
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return time.Time{}, badRequest("Invalid timestamp format")
		}
		ts = parsed
	case float64:
		ts = time.UnixMilli(int64(t))
	default:
		return time.Time{}, badRequest("Invalid timestamp format")
	}
	diff := now.Sub(ts)
	if diff < 0 {
		diff = -diff
	}
	if diff > maxClockSkew {
		return time.Time{}, badRequest("Timestamp is too far from current time")
	}
	return ts, nil
}

type trackRequest struct {
	JobTitle    any `json:"jobTitle"`
	CookedScore any `json:"cookedScore"`
	UserAgent   any `json:"userAgent"`
	Timestamp   any `json:"timestamp"`
}

func (req trackRequest) validate(now time.Time) (analytics.SearchInput, error) {
	title, err := requireNonEmptyTitle(req.JobTitle)
	if err != nil {
		return analytics.SearchInput{}, err
	}
	in := analytics.SearchInput{JobTitle: title}
	if in.CookedScore, err = parseScore(req.CookedScore); err != nil {
		return analytics.SearchInput{}, err
	}
	if truthy(req.UserAgent) {
		ua, ok := req.UserAgent.(string)
		if !ok {
			return analytics.SearchInput{}, badRequest("User agent must be a string")
		}
		in.UserAgent = ua
	}
	if truthy(req.Timestamp) {
		if in.Timestamp, err = parseTimestamp(req.Timestamp, now); err != nil {
			return analytics.SearchInput{}, err
		}
	}
	return in, nil
}

type shareRequest struct {
	Platform    any `json:"platform"`
	JobTitle    any `json:"jobTitle"`
	CookedScore any `json:"cookedScore"`
	ShareText   any `json:"shareText"`
}

func (req shareRequest) validate() (analytics.ShareInput, error) {
	if !truthy(req.Platform) {
		return analytics.ShareInput{}, badRequest("Platform is required")
	}
	platform, ok := req.Platform.(string)
	if !ok {
		return analytics.ShareInput{}, badRequest("Platform must be a string")
	}
	title, err := requireNonEmptyTitle(req.JobTitle)
	if err != nil {
		return analytics.ShareInput{}, err
	}
	in := analytics.ShareInput{Platform: platform, JobTitle: title}
	if in.CookedScore, err = parseScore(req.CookedScore); err != nil {
		return analytics.ShareInput{}, err
	}
	if truthy(req.ShareText) {
		text, ok := req.ShareText.(string)
		if !ok {
			return analytics.ShareInput{}, badRequest("Share text must be a string")
		}
		if utf8.RuneCountInString(text) > maxShareTextLen {
			return analytics.ShareInput{}, badRequest(fmt.Sprintf("Share text is too long (max %d characters)", maxShareTextLen))
		}
		in.ShareText = filter.Sanitize(text)
	}
	return in, nil
}

type generateRequest struct {
	JobTitle    any `json:"jobTitle"`
	CookedScore any `json:"cookedScore"`
	Mood        any `json:"mood"`
	Platform    any `json:"platform"`
}

func (req generateRequest) validate() (string, float64, error) {
	title, err := requireNonEmptyTitle(req.JobTitle)
	if err != nil {
		return "", 0, err
	}
	if filter.IsHarmful(title) {
		return "", 0, badRequest("Job title contains invalid content")
	}
	if req.CookedScore == nil {
		return "", 0, badRequest("Cooked score is required")
	}
	score, err := parseScore(req.CookedScore)
	if err != nil {
		return "", 0, err
	}
	if err := oneOf(req.Mood, "Mood", memes.Moods); err != nil {
		return "", 0, err
	}
	if err := oneOf(req.Platform, "Platform", memes.Platforms); err != nil {
		return "", 0, err
	}
	return title, *score, nil
}

// oneOf checks an optional enum field case-insensitively.
func oneOf(v any, field string, allowed []string) error {
	if !truthy(v) {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return badRequest(field + " must be a string")
	}
	if !slices.Contains(allowed, strings.ToLower(s)) {
		return badRequest(fmt.Sprintf("Invalid %s. Must be one of: %s", strings.ToLower(field), strings.Join(allowed, ", ")))
	}
	return nil
}

// queryInt parses an optional integer query parameter within [lo, hi].
func queryInt(r *http.Request, name string, def, lo, hi int, msg string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || n < float64(lo) || n > float64(hi) {
		return 0, badRequest(msg)
	}
	return int(n), nil
}

func queryLimit(r *http.Request, def int) (int, error) {
	return queryInt(r, "limit", def, 1, 100, "Limit must be a number between 1 and 100")
}

func queryDays(r *http.Request, def int) (int, error) {
	return queryInt(r, "days", def, 1, 365, "Days must be a number between 1 and 365")
}

func validateCategory(raw string) (string, error) {
	c := strings.TrimSpace(raw)
	if c == "" {
		return "", badRequest("Category must be a non-empty string")
	}
	return c, nil
}
