package analytics

import (
	"maps"
	"slices"

	"github.com/DorinSirca/ismyjobcooked-api/internal/model"
)

// Snapshot returns a deep copy of the whole state.
func (s *Store) Snapshot() model.AnalyticsSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := model.AnalyticsSnapshot{
		TakenAt:       s.now(),
		TotalSearches: s.totalSearches,
		TotalShares:   s.totalShares,
		JobSearches:   make(map[string]model.JobSearchStat, len(s.jobSearches)),
		PopularOrder:  slices.Clone(s.popular),
		DailyStats:    make(map[string]model.DailyStat, len(s.daily)),
		ShareMetrics:  maps.Clone(s.shareMetrics),
		Sessions:      slices.Clone(s.sessions),
		Shares:        slices.Clone(s.shares),
	}
	for k, v := range s.jobSearches {
		snap.JobSearches[k] = *v
	}
	for k, d := range s.daily {
		snap.DailyStats[k] = model.DailyStat{
			Searches:   d.searches,
			Shares:     d.shares,
			UniqueJobs: slices.Clone(d.uniqueJobs),
		}
	}
	return snap
}

// Restore replaces the state with snap. Popularity order and first-seen order
// come from snap.PopularOrder; job keys missing from it are appended.
func (s *Store) Restore(snap model.AnalyticsSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()
	s.totalSearches = snap.TotalSearches
	s.totalShares = snap.TotalShares
	for k, v := range snap.JobSearches {
		stat := v
		s.jobSearches[k] = &stat
	}

	for _, k := range snap.PopularOrder {
		if _, ok := s.jobSearches[k]; ok && !slices.Contains(s.firstSeen, k) {
			s.firstSeen = append(s.firstSeen, k)
		}
	}
	rest := make([]string, 0)
	for k := range s.jobSearches {
		if !slices.Contains(s.firstSeen, k) {
			rest = append(rest, k)
		}
	}
	slices.Sort(rest)
	s.firstSeen = append(s.firstSeen, rest...)

	for k, d := range snap.DailyStats {
		ds := &dayStat{
			searches:   d.Searches,
			shares:     d.Shares,
			uniqueJobs: slices.Clone(d.UniqueJobs),
			seen:       make(map[string]struct{}, len(d.UniqueJobs)),
		}
		for _, j := range d.UniqueJobs {
			ds.seen[j] = struct{}{}
		}
		s.daily[k] = ds
	}
	for k, v := range snap.ShareMetrics {
		s.shareMetrics[k] = v
	}
	s.sessions = slices.Clone(snap.Sessions)
	s.shares = slices.Clone(snap.Shares)
	s.updatePopularLocked()
}

// Empty reports whether nothing has been tracked since the last reset.
func (s *Store) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalSearches == 0 && s.totalShares == 0
}
