package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DorinSirca/ismyjobcooked-api/internal/model"
)

// finalSaveTimeout bounds the save made after shutdown is requested.
const finalSaveTimeout = 5 * time.Second

// State is the analytics state the scheduler persists.
type State interface {
	Snapshot() model.AnalyticsSnapshot
	Restore(snap model.AnalyticsSnapshot)
}

// Scheduler owns the snapshot loop: it saves the analytics state on an
// interval, prunes old snapshots and saves once more on shutdown.
type Scheduler struct {
	state     State
	store     model.SnapshotStore
	interval  time.Duration
	retention time.Duration
	logger    *slog.Logger
}

// NewScheduler creates a scheduler. A zero retention disables pruning.
func NewScheduler(state State, store model.SnapshotStore, interval, retention time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		state:     state,
		store:     store,
		interval:  interval,
		retention: retention,
		logger:    logger,
	}
}

// Restore loads the latest snapshot into the state. It reports whether one
// was found.
func (s *Scheduler) Restore(ctx context.Context) (bool, error) {
	snap, err := s.store.Latest(ctx)
	if err != nil {
		return false, fmt.Errorf("restoring analytics: %w", err)
	}
	if snap == nil {
		s.logger.Info("no analytics snapshot to restore")
		return false, nil
	}
	s.state.Restore(*snap)
	s.logger.Info("analytics restored from snapshot",
		"taken_at", snap.TakenAt,
		"total_searches", snap.TotalSearches,
		"total_shares", snap.TotalShares,
	)
	return true, nil
}

// Run saves a snapshot every interval until ctx is cancelled, then saves a
// final one. It returns nil on graceful shutdown.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.interval <= 0 {
		return fmt.Errorf("snapshot interval must be positive, got %v", s.interval)
	}
	s.logger.Info("starting snapshot scheduler",
		"interval", s.interval.String(),
		"retention", s.retention.String(),
	)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("shutting down snapshot scheduler")
			finalCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), finalSaveTimeout)
			defer cancel()
			s.saveAndPrune(finalCtx)
			return nil
		case <-ticker.C:
			s.saveAndPrune(ctx)
		}
	}
}

func (s *Scheduler) saveAndPrune(ctx context.Context) {
	snap := s.state.Snapshot()
	if err := s.store.Save(ctx, snap); err != nil {
		s.logger.Error("snapshot save failed", "error", err)
		return
	}
	s.logger.Debug("analytics snapshot saved",
		"total_searches", snap.TotalSearches,
		"total_shares", snap.TotalShares,
	)

	if s.retention <= 0 {
		return
	}
	if err := s.store.Prune(ctx, s.retention); err != nil {
		s.logger.Error("snapshot prune failed", "error", err)
	}
}
