package analytics

import (
	"fmt"
	"maps"
	"math"
	"sort"

	"github.com/DorinSirca/ismyjobcooked-api/internal/model"
)

const (
	DefaultDashboardDays = 7
	DefaultTrendingLimit = 10
	DefaultShareDays     = 30
)

// PopularJob is one row of the popularity ranking.
type PopularJob struct {
	Title        string  `json:"title"`
	Searches     int     `json:"searches"`
	AverageScore float64 `json:"averageScore"`
}

type Overview struct {
	TotalSearches      int     `json:"totalSearches"`
	TotalShares        int     `json:"totalShares"`
	AverageCookedScore float64 `json:"averageCookedScore"`
	UniqueJobsSearched int     `json:"uniqueJobsSearched"`
}

type RecentStats struct {
	Searches     int     `json:"searches"`
	UniqueJobs   int     `json:"uniqueJobs"`
	AverageScore float64 `json:"averageScore"`
	Period       string  `json:"period"`
}

// Dashboard is the aggregate view behind GET /api/analytics/dashboard.
type Dashboard struct {
	Overview     Overview           `json:"overview"`
	RecentStats  RecentStats        `json:"recentStats"`
	TrendingJobs []PopularJob       `json:"trendingJobs"`
	ShareMetrics map[string]int     `json:"shareMetrics"`
	ViralContent []model.ShareEvent `json:"viralContent"`
	PopularJobs  []PopularJob       `json:"popularJobs"`
}

// JobStats is the per-title view.
type JobStats struct {
	Searches       int                   `json:"searches"`
	AverageScore   float64               `json:"averageScore"`
	RecentSearches []model.SearchSession `json:"recentSearches"`
	Rank           *int                  `json:"rank"`
}

// ShareStats is the view behind GET /api/analytics/shares.
type ShareStats struct {
	ShareMetrics map[string]int     `json:"shareMetrics"`
	ViralContent []model.ShareEvent `json:"viralContent"`
	TotalShares  int                `json:"totalShares"`
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Dashboard summarizes everything; recent stats cover the last days days.
// A non-positive days selects DefaultDashboardDays.
func (s *Store) Dashboard(days int) Dashboard {
	if days <= 0 {
		days = DefaultDashboardDays
	}
	cutoff := s.now().AddDate(0, 0, -days)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var scored, scoreSum float64
	for _, sess := range s.sessions {
		if sess.CookedScore > 0 {
			scored++
			scoreSum += sess.CookedScore
		}
	}
	overview := Overview{
		TotalSearches:      s.totalSearches,
		TotalShares:        s.totalShares,
		UniqueJobsSearched: len(s.jobSearches),
	}
	if scored > 0 {
		overview.AverageCookedScore = round2(scoreSum / scored)
	}

	recent := RecentStats{Period: fmt.Sprintf("%d days", days)}
	unique := make(map[string]struct{})
	var recentSum float64
	for _, sess := range s.sessions {
		if sess.Timestamp.Before(cutoff) {
			continue
		}
		recent.Searches++
		recentSum += sess.CookedScore
		unique[sess.JobTitle] = struct{}{}
	}
	recent.UniqueJobs = len(unique)
	if recent.Searches > 0 {
		recent.AverageScore = round2(recentSum / float64(recent.Searches))
	}

	viral := make([]model.ShareEvent, len(s.shares))
	copy(viral, s.shares)
	sort.SliceStable(viral, func(i, j int) bool { return viral[i].Timestamp.After(viral[j].Timestamp) })
	if len(viral) > 10 {
		viral = viral[:10]
	}

	return Dashboard{
		Overview:     overview,
		RecentStats:  recent,
		TrendingJobs: s.popularLocked(DefaultTrendingLimit),
		ShareMetrics: maps.Clone(s.shareMetrics),
		ViralContent: viral,
		PopularJobs:  s.popularLocked(10),
	}
}

// Job returns the stats of one title, matched like TrackSearch keys it.
func (s *Store) Job(title string) (JobStats, error) {
	key := NormalizeTitle(title)

	s.mu.RLock()
	defer s.mu.RUnlock()

	stat, ok := s.jobSearches[key]
	if !ok {
		return JobStats{}, fmt.Errorf("%q: %w", title, ErrJobNotFound)
	}

	var recent []model.SearchSession
	for i := len(s.sessions) - 1; i >= 0 && len(recent) < 10; i-- {
		if s.sessions[i].JobTitle == key {
			recent = append(recent, s.sessions[i])
		}
	}
	if recent == nil {
		recent = []model.SearchSession{}
	}

	out := JobStats{
		Searches:       stat.Searches,
		AverageScore:   round2(stat.AverageScore),
		RecentSearches: recent,
	}
	for i, k := range s.popular {
		if k == key {
			rank := i + 1
			out.Rank = &rank
			break
		}
	}
	return out, nil
}

// Trending returns the limit most searched titles. A non-positive limit
// selects DefaultTrendingLimit.
func (s *Store) Trending(limit int) []PopularJob {
	if limit <= 0 {
		limit = DefaultTrendingLimit
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.popularLocked(limit)
}

// Shares returns share counters, optionally for one platform, and the share
// events of the last days days, newest first, at most 20.
func (s *Store) Shares(platform string, days int) ShareStats {
	if days <= 0 {
		days = DefaultShareDays
	}
	cutoff := s.now().AddDate(0, 0, -days)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var metrics map[string]int
	if platform != "" {
		p := NormalizeTitle(platform)
		metrics = map[string]int{p: s.shareMetrics[p]}
	} else {
		metrics = maps.Clone(s.shareMetrics)
	}

	var inWindow []model.ShareEvent
	for _, ev := range s.shares {
		if !ev.Timestamp.Before(cutoff) {
			inWindow = append(inWindow, ev)
		}
	}
	if len(inWindow) > 20 {
		inWindow = inWindow[len(inWindow)-20:]
	}
	viral := make([]model.ShareEvent, 0, len(inWindow))
	for i := len(inWindow) - 1; i >= 0; i-- {
		viral = append(viral, inWindow[i])
	}

	return ShareStats{
		ShareMetrics: metrics,
		ViralContent: viral,
		TotalShares:  s.totalShares,
	}
}

// Totals returns the two headline counters.
func (s *Store) Totals() (searches, shares int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalSearches, s.totalShares
}

func (s *Store) popularLocked(limit int) []PopularJob {
	n := min(limit, len(s.popular))
	out := make([]PopularJob, 0, n)
	for _, key := range s.popular[:n] {
		stat := s.jobSearches[key]
		out = append(out, PopularJob{
			Title:        key,
			Searches:     stat.Searches,
			AverageScore: round2(stat.AverageScore),
		})
	}
	return out
}
