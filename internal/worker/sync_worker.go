// Package worker runs the background drain of the sync outbox. Draining is
// decoupled from the mutation path on purpose: local writes complete
// synchronously, the network catches up whenever it can.
package worker

import (
	"context"
	"time"

	"github.com/taskflow/core/internal/infrastructure/logger"
	"github.com/taskflow/core/internal/ports"
)

const (
	defaultInterval = 15 * time.Second
	defaultBatch    = 50
)

// SyncWorker drains pending sync events on an interval and pushes them to
// the remote endpoint. Failed events are logged and dropped, never retried.
type SyncWorker struct {
	outbox   ports.SyncOutbox
	pusher   ports.SyncPusher
	interval time.Duration
	batch    int
	logger   *logger.Logger
}

// NewSyncWorker creates a sync worker. Non-positive interval or batch fall
// back to defaults.
func NewSyncWorker(outbox ports.SyncOutbox, pusher ports.SyncPusher, interval time.Duration, batch int, appLogger *logger.Logger) *SyncWorker {
	if interval <= 0 {
		interval = defaultInterval
	}
	if batch <= 0 {
		batch = defaultBatch
	}
	return &SyncWorker{
		outbox:   outbox,
		pusher:   pusher,
		interval: interval,
		batch:    batch,
		logger:   appLogger,
	}
}

// Start blocks until ctx is cancelled, draining the outbox once per tick.
func (w *SyncWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Infow("Sync worker started", "interval", w.interval.String())

	for {
		select {
		case <-ticker.C:
			w.Drain(ctx)
		case <-ctx.Done():
			w.logger.Infow("Sync worker stopping", "pending", w.outbox.Len())
			return
		}
	}
}

// Drain pushes up to one batch of pending events. Every event leaves the
// outbox exactly once whether or not the push succeeds.
func (w *SyncWorker) Drain(ctx context.Context) {
	start := time.Now()
	pushed, failed := 0, 0

	for i := 0; i < w.batch; i++ {
		event, ok := w.outbox.Dequeue()
		if !ok {
			break
		}

		if err := w.pusher.Push(ctx, event); err != nil {
			failed++
			w.logger.Warnw("Sync push failed",
				"event_id", event.ID,
				"action", event.Action,
				"error", err,
			)
			continue
		}
		pushed++
	}

	if pushed > 0 || failed > 0 {
		w.logger.Infow("Sync drain finished",
			"pushed", pushed,
			"failed", failed,
			"duration_ms", float64(time.Since(start).Nanoseconds())/1e6,
		)
	}
}
