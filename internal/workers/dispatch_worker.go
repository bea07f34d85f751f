package workers

import (
	"context"
	"log/slog"
	"time"

	"communityevents/internal/domain"
)

// DispatchWorker periodically sends out scheduled campaigns whose time has come.
type DispatchWorker struct {
	campaigns domain.CampaignService
	interval  time.Duration
	logger    *slog.Logger
}

func NewDispatchWorker(campaigns domain.CampaignService, interval time.Duration, logger *slog.Logger) *DispatchWorker {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &DispatchWorker{
		campaigns: campaigns,
		interval:  interval,
		logger:    logger,
	}
}

// Run blocks until ctx is cancelled, polling for due campaigns every interval.
// The first pass runs immediately so a restart picks up overdue work without
// waiting a full tick.
func (w *DispatchWorker) Run(ctx context.Context) {
	w.logger.Info("campaign dispatch worker started", "interval", w.interval.String())

	w.processOnce(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("campaign dispatch worker stopped")
			return
		case <-ticker.C:
			w.processOnce(ctx)
		}
	}
}

func (w *DispatchWorker) processOnce(ctx context.Context) {
	processed, err := w.campaigns.DispatchDue(ctx, time.Now())
	if err != nil {
		w.logger.Error("dispatch pass failed", "error", err)
		return
	}
	if processed > 0 {
		w.logger.Info("dispatched due campaigns", "count", processed)
	}
}
