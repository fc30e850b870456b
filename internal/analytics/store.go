// Package analytics keeps the in-memory usage counters: searches, shares and
// the views derived from them.
package analytics

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/DorinSirca/ismyjobcooked-api/internal/events"
	"github.com/DorinSirca/ismyjobcooked-api/internal/model"
)

// ErrJobNotFound is returned by Job for a title that was never tracked.
var ErrJobNotFound = errors.New("no analytics data for job")

// KnownPlatforms are the share platforms with their own counter.
var KnownPlatforms = []string{"twitter", "tiktok", "linkedin", "clipboard"}

// SearchInput is one search to record. A nil CookedScore means the client
// sent none; a zero Timestamp means now.
type SearchInput struct {
	JobTitle    string
	CookedScore *float64
	UserAgent   string
	Timestamp   time.Time
}

// ShareInput is one share to record.
type ShareInput struct {
	Platform    string
	JobTitle    string
	CookedScore *float64
	ShareText   string
}

type dayStat struct {
	searches   int
	shares     int
	uniqueJobs []string
	seen       map[string]struct{}
}

// Store holds the analytics state. Writes take the write lock; views take the
// read lock and return copies.
type Store struct {
	mu sync.RWMutex

	totalSearches int
	totalShares   int
	jobSearches   map[string]*model.JobSearchStat
	firstSeen     []string // job keys in first-seen order
	popular       []string // job keys by searches desc, ties in first-seen order
	daily         map[string]*dayStat
	shareMetrics  map[string]int
	sessions      []model.SearchSession
	shares        []model.ShareEvent

	pub    events.Publisher
	logger *slog.Logger
	now    func() time.Time
}

// New returns an empty store. pub may be nil.
func New(pub events.Publisher, logger *slog.Logger) *Store {
	s := &Store{pub: pub, logger: logger, now: time.Now}
	s.reset()
	return s
}

// WithClock replaces the clock used to stamp sessions, shares and day
// buckets. Call it before the store is shared.
func (s *Store) WithClock(now func() time.Time) *Store {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *Store) reset() {
	s.totalSearches = 0
	s.totalShares = 0
	s.jobSearches = make(map[string]*model.JobSearchStat)
	s.firstSeen = nil
	s.popular = nil
	s.daily = make(map[string]*dayStat)
	s.shareMetrics = make(map[string]int, len(KnownPlatforms))
	for _, p := range KnownPlatforms {
		s.shareMetrics[p] = 0
	}
	s.sessions = nil
	s.shares = nil
}

// NormalizeTitle is the key under which a title's searches are counted.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

func dayKey(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

// TrackSearch records a search and returns the new total.
func (s *Store) TrackSearch(ctx context.Context, in SearchInput) int {
	key := NormalizeTitle(in.JobTitle)
	now := s.now()

	s.mu.Lock()
	s.totalSearches++

	stat, ok := s.jobSearches[key]
	if !ok {
		stat = &model.JobSearchStat{}
		s.jobSearches[key] = stat
		s.firstSeen = append(s.firstSeen, key)
	}
	stat.Searches++
	var score float64
	if in.CookedScore != nil {
		score = *in.CookedScore
		stat.TotalScore += score
		stat.AverageScore = stat.TotalScore / float64(stat.Searches)
	}

	day := s.dayLocked(dayKey(now))
	day.searches++
	if _, seen := day.seen[key]; !seen {
		day.seen[key] = struct{}{}
		day.uniqueJobs = append(day.uniqueJobs, key)
	}

	session := model.SearchSession{
		JobTitle:    key,
		CookedScore: score,
		UserAgent:   in.UserAgent,
		Timestamp:   in.Timestamp,
	}
	if session.UserAgent == "" {
		session.UserAgent = "unknown"
	}
	if session.Timestamp.IsZero() {
		session.Timestamp = now
	}
	s.sessions = append(s.sessions, session)

	s.updatePopularLocked()
	total := s.totalSearches
	s.mu.Unlock()

	s.logger.Info("job search tracked", "job_title", in.JobTitle, "cooked_score", score)
	s.publish(ctx, events.TypeSearchTracked, map[string]any{
		"jobTitle":      key,
		"cookedScore":   score,
		"totalSearches": total,
	})
	return total
}

// TrackShare records a share and returns the new total together with the
// stored event. Platforms outside KnownPlatforms only count towards the total.
func (s *Store) TrackShare(ctx context.Context, in ShareInput) (int, model.ShareEvent) {
	platform := strings.ToLower(in.Platform)
	now := s.now()

	ev := model.ShareEvent{
		ID:        uuid.NewString(),
		Platform:  platform,
		JobTitle:  in.JobTitle,
		ShareText: in.ShareText,
		Timestamp: now,
	}
	if in.CookedScore != nil {
		ev.CookedScore = *in.CookedScore
	}

	s.mu.Lock()
	s.totalShares++
	if _, known := s.shareMetrics[platform]; known {
		s.shareMetrics[platform]++
	}
	s.shares = append(s.shares, ev)
	if day, ok := s.daily[dayKey(now)]; ok {
		day.shares++
	}
	total := s.totalShares
	s.mu.Unlock()

	s.logger.Info("share tracked", "platform", platform, "job_title", in.JobTitle)
	s.publish(ctx, events.TypeShareTracked, map[string]any{
		"platform":    platform,
		"jobTitle":    in.JobTitle,
		"totalShares": total,
	})
	return total, ev
}

// Reset clears all counters and records.
func (s *Store) Reset(ctx context.Context) {
	s.mu.Lock()
	s.reset()
	s.mu.Unlock()

	s.logger.Info("analytics data reset")
	s.publish(ctx, events.TypeAnalyticsReset, nil)
}

func (s *Store) dayLocked(key string) *dayStat {
	d, ok := s.daily[key]
	if !ok {
		d = &dayStat{seen: make(map[string]struct{})}
		s.daily[key] = d
	}
	return d
}

func (s *Store) updatePopularLocked() {
	popular := slices.Clone(s.firstSeen)
	sort.SliceStable(popular, func(i, j int) bool {
		return s.jobSearches[popular[i]].Searches > s.jobSearches[popular[j]].Searches
	})
	s.popular = popular
}

func (s *Store) publish(ctx context.Context, typ string, data any) {
	if s.pub == nil {
		return
	}
	s.pub.Publish(events.MakeEvent(events.RequestIDFrom(ctx), typ, 1, data))
}
