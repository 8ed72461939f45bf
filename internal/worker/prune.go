// Package worker contains background loops run alongside the HTTP server.
package worker

import (
	"context"
	"log/slog"
	"time"
)

// PruneStore defines the store operations needed by the prune worker.
type PruneStore interface {
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// HistoryPruneWorker periodically deletes purchase records older than the
// configured retention. Restock suggestions only ever look back one interval,
// so history beyond retention is dead weight.
type HistoryPruneWorker struct {
	store     PruneStore
	interval  time.Duration
	retention time.Duration
}

// NewHistoryPruneWorker creates a worker with the given store, cycle interval,
// and retention window.
func NewHistoryPruneWorker(store PruneStore, interval, retention time.Duration) *HistoryPruneWorker {
	return &HistoryPruneWorker{
		store:     store,
		interval:  interval,
		retention: retention,
	}
}

// Run starts the worker loop. Blocks until ctx is cancelled.
// Does NOT run immediately on start (pruning is never urgent).
func (w *HistoryPruneWorker) Run(ctx context.Context) {
	slog.Info("worker started",
		"component", "worker",
		"worker", "history-prune",
		"interval", w.interval.String(),
		"retention", w.retention.String(),
	)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("worker stopped",
				"component", "worker",
				"worker", "history-prune",
				"reason", "context_cancelled",
			)
			return
		case <-ticker.C:
			w.runPrune(ctx)
		}
	}
}

// runPrune executes a single prune cycle.
func (w *HistoryPruneWorker) runPrune(ctx context.Context) {
	start := time.Now()
	cutoff := start.Add(-w.retention)

	slog.Debug("prune cycle started",
		"component", "worker",
		"action", "prune_start",
		"cutoff", cutoff.Format(time.RFC3339),
	)

	pruned, err := w.store.PruneBefore(ctx, cutoff)
	if err != nil {
		// Check for graceful shutdown
		if ctx.Err() != nil {
			return
		}
		slog.Error("prune failed",
			"component", "worker",
			"action", "prune_failed",
			"error", err,
		)
		return
	}

	duration := time.Since(start)
	slog.Info("prune cycle completed",
		"component", "worker",
		"action", "prune_complete",
		"pruned", pruned,
		"duration_ms", duration.Milliseconds(),
	)
}
