package model

import (
	"context"
	"time"
)

// SearchSession is one tracked job search.
type SearchSession struct {
	JobTitle    string    `json:"jobTitle"`
	CookedScore float64   `json:"cookedScore"`
	UserAgent   string    `json:"userAgent"`
	Timestamp   time.Time `json:"timestamp"`
}

// ShareEvent is one tracked share of a result.
type ShareEvent struct {
	ID          string    `json:"id"`
	Platform    string    `json:"platform"`
	JobTitle    string    `json:"jobTitle"`
	CookedScore float64   `json:"cookedScore"`
	ShareText   string    `json:"shareText"`
	Timestamp   time.Time `json:"timestamp"`
}

// JobSearchStat aggregates the searches recorded for one normalized title.
type JobSearchStat struct {
	Searches     int     `json:"searches"`
	TotalScore   float64 `json:"totalScore"`
	AverageScore float64 `json:"averageScore"`
}

// DailyStat aggregates activity for one UTC calendar day.
type DailyStat struct {
	Searches   int      `json:"searches"`
	Shares     int      `json:"shares"`
	UniqueJobs []string `json:"uniqueJobs"`
}

// AnalyticsSnapshot is a point-in-time copy of the whole analytics state.
type AnalyticsSnapshot struct {
	TakenAt       time.Time                `json:"takenAt"`
	TotalSearches int                      `json:"totalSearches"`
	TotalShares   int                      `json:"totalShares"`
	JobSearches   map[string]JobSearchStat `json:"jobSearches"`
	PopularOrder  []string                 `json:"popularOrder"`
	DailyStats    map[string]DailyStat     `json:"dailyStats"`
	ShareMetrics  map[string]int           `json:"shareMetrics"`
	Sessions      []SearchSession          `json:"sessions"`
	Shares        []ShareEvent             `json:"shares"`
}

// SnapshotStore persists analytics snapshots between restarts.
type SnapshotStore interface {
	Save(ctx context.Context, snap AnalyticsSnapshot) error
	Latest(ctx context.Context) (*AnalyticsSnapshot, error)
	Prune(ctx context.Context, olderThan time.Duration) error
}

// ShareNotifier is told about every tracked share.
type ShareNotifier interface {
	NotifyShare(ctx context.Context, ev ShareEvent) error
}
