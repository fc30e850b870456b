package jobs

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/DorinSirca/ismyjobcooked-api/internal/model"
)

var (
	// ErrNotFound is returned when a filter leaves nothing to pick from.
	ErrNotFound = errors.New("no matching jobs")
	// ErrInvalidRiskLevel is returned for a risk level other than low, medium or high.
	ErrInvalidRiskLevel = errors.New("invalid risk level, use: low, medium, or high")
)

// Extended returns a copy of the wider generator table.
func Extended() []Entry {
	return append([]Entry(nil), extended...)
}

// Generator picks random entries from a table.
type Generator struct {
	entries []Entry
}

// NewGenerator returns a generator over entries. A nil slice selects the
// extended table.
func NewGenerator(entries []Entry) *Generator {
	if entries == nil {
		entries = extended
	}
	return &Generator{entries: entries}
}

// Entries returns the table the generator draws from.
func (g *Generator) Entries() []Entry {
	return append([]Entry(nil), g.entries...)
}

// Random picks any entry.
func (g *Generator) Random() Entry {
	return g.entries[rand.IntN(len(g.entries))]
}

// RandomByCategory picks an entry whose category matches case-insensitively.
func (g *Generator) RandomByCategory(category string) (Entry, error) {
	matches := g.filter(func(e Entry) bool { return strings.EqualFold(e.Category, category) })
	if len(matches) == 0 {
		return Entry{}, fmt.Errorf("category %q: %w", category, ErrNotFound)
	}
	return matches[rand.IntN(len(matches))], nil
}

// RandomByRisk picks an entry in the given band: low (<40), medium (40-69)
// or high (>=70).
func (g *Generator) RandomByRisk(level string) (Entry, error) {
	var pred func(Entry) bool
	switch strings.ToLower(level) {
	case "low":
		pred = func(e Entry) bool { return e.AutomationRisk < 40 }
	case "medium":
		pred = func(e Entry) bool { return e.AutomationRisk >= 40 && e.AutomationRisk < 70 }
	case "high":
		pred = func(e Entry) bool { return e.AutomationRisk >= 70 }
	default:
		return Entry{}, ErrInvalidRiskLevel
	}
	matches := g.filter(pred)
	if len(matches) == 0 {
		return Entry{}, fmt.Errorf("%s automation risk: %w", level, ErrNotFound)
	}
	return matches[rand.IntN(len(matches))], nil
}

// RandomBatch returns up to count distinct entries.
func (g *Generator) RandomBatch(count int) []Entry {
	pool := g.Entries()
	rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if count < len(pool) {
		pool = pool[:max(count, 0)]
	}
	return pool
}

// TopByRisk returns the count most automatable entries, highest first.
func (g *Generator) TopByRisk(count int) []Entry {
	sorted := g.Entries()
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].AutomationRisk > sorted[j].AutomationRisk })
	if count < len(sorted) {
		sorted = sorted[:max(count, 0)]
	}
	return sorted
}

func (g *Generator) filter(pred func(Entry) bool) []Entry {
	var out []Entry
	for _, e := range g.entries {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}

// Degen invents a joke job with a random profile.
func Degen() model.JobRecord {
	return model.JobRecord{
		Title:              degenTitles[rand.IntN(len(degenTitles))],
		Category:           "Degen",
		AutomationRisk:     rand.IntN(100) + 1,
		MedianSalary:       rand.IntN(200000) + 50000,
		CreativityRequired: rand.IntN(100) + 1,
		AIReplacements:     "QUANTUM",
		RiskFactors:        []string{"reality distortion", "vibe interference", "dimensional shifts"},
		AITools:            []string{"Quantum AI", "Vibe Detector", "Reality Shifter 3000"},
		TimeToAutomation:   "Already automated in parallel universe",
	}
}
