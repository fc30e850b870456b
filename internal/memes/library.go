// Package memes serves the static meme rotation and builds generated memes
// from templates.
package memes

import (
	"errors"
	"math"
	"math/rand/v2"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/DorinSirca/ismyjobcooked-api/internal/model"
)

// ErrCategoryNotFound is returned when a category slug matches no meme.
var ErrCategoryNotFound = errors.New("meme category not found")

// DefaultTrendingLimit is used when no limit is requested.
const DefaultTrendingLimit = 5

// Library is the read-only meme rotation. Safe for concurrent use.
type Library struct {
	memes []model.Meme
}

// NewLibrary returns the built-in library.
func NewLibrary() *Library {
	return &Library{memes: library}
}

// All returns a copy of every meme in ID order.
func (l *Library) All() []model.Meme {
	return append([]model.Meme(nil), l.memes...)
}

// Len is the size of the rotation.
func (l *Library) Len() int { return len(l.memes) }

// DayOfYear counts days since Jan 0 of t's year, so Jan 1 is 1.
func DayOfYear(t time.Time) int {
	return t.YearDay()
}

// Daily returns the meme of the day for now. Every call on the same calendar
// day returns the same meme; the ID is the day number.
func (l *Library) Daily(now time.Time) model.Meme {
	day := DayOfYear(now)
	m := l.memes[day%len(l.memes)]
	m.ID = int64(day)
	m.IsDaily = true
	m.DayOfYear = day
	m.Timestamp = now
	return m
}

// Random picks one meme uniformly.
func (l *Library) Random() model.Meme {
	return l.memes[rand.IntN(len(l.memes))]
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Slug lower-cases a category and joins its words with hyphens.
func Slug(category string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(category), "-")
}

// ByCategory returns the memes whose category slug equals slug, compared
// case-insensitively.
func (l *Library) ByCategory(slug string) ([]model.Meme, error) {
	want := strings.ToLower(slug)
	var out []model.Meme
	for _, m := range l.memes {
		if Slug(m.Category) == want {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return nil, ErrCategoryNotFound
	}
	return out, nil
}

// Categories lists the distinct categories in first-seen order.
func (l *Library) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range l.memes {
		if !seen[m.Category] {
			seen[m.Category] = true
			out = append(out, m.Category)
		}
	}
	return out
}

// Trending returns the limit highest viral scores, ties in ID order.
// A non-positive limit selects DefaultTrendingLimit.
func (l *Library) Trending(limit int) []model.Meme {
	if limit <= 0 {
		limit = DefaultTrendingLimit
	}
	sorted := l.All()
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ViralScore > sorted[j].ViralScore })
	if limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted
}

// AverageViralScore is the rounded mean viral score.
func (l *Library) AverageViralScore() int {
	if len(l.memes) == 0 {
		return 0
	}
	sum := 0
	for _, m := range l.memes {
		sum += m.ViralScore
	}
	return int(math.Round(float64(sum) / float64(len(l.memes))))
}
