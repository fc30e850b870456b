package notifier

import (
	"context"
	"log/slog"

	"github.com/DorinSirca/ismyjobcooked-api/internal/model"
)

// Ensure LogNotifier implements model.ShareNotifier.
var _ model.ShareNotifier = (*LogNotifier)(nil)

// LogNotifier writes tracked shares to the given logger as structured messages.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs each share via slog.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// NotifyShare logs the share. It never fails.
func (n *LogNotifier) NotifyShare(_ context.Context, ev model.ShareEvent) error {
	args := []any{"share_id", ev.ID, "platform", ev.Platform, "job_title", ev.JobTitle}
	if ev.CookedScore > 0 {
		args = append(args, "cooked_score", ev.CookedScore)
	}
	n.logger.Info("result shared", args...)
	return nil
}
