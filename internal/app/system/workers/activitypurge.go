// internal/app/system/workers/activitypurge.go
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/kevharv/traintrack/internal/app/store/activity"
	"github.com/kevharv/traintrack/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ActivityPurge is a background worker that deletes activity-log entries
// past the retention window.
type ActivityPurge struct {
	activity  *activity.Store
	log       *zap.Logger
	interval  time.Duration
	retention time.Duration
	stopCh    chan struct{}
	wg        sync.WaitGroup
}

// NewActivityPurge creates a new retention worker.
//
// Parameters:
//   - store: the activity store
//   - logger: zap logger
//   - interval: how often to run the purge (e.g., 1 hour)
//   - retention: how long entries are kept (e.g., 90 days)
func NewActivityPurge(store *activity.Store, logger *zap.Logger, interval, retention time.Duration) *ActivityPurge {
	return &ActivityPurge{
		activity:  store,
		log:       logger,
		interval:  interval,
		retention: retention,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the background purge loop.
func (w *ActivityPurge) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("activity purge worker started",
		zap.Duration("interval", w.interval),
		zap.Duration("retention", w.retention))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *ActivityPurge) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("activity purge worker stopped")
}

func (w *ActivityPurge) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.purge()
		}
	}
}

func (w *ActivityPurge) purge() {
	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Batch())
	defer cancel()

	cutoff := time.Now().Add(-w.retention)
	count, err := w.activity.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		w.log.Error("activity purge failed", zap.Error(err))
		return
	}
	if count > 0 {
		w.log.Info("purged old activity entries", zap.Int64("count", count))
	}
}
