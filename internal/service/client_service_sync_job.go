package service

import (
	"context"
	"sync"
	"time"
)

// ClientSyncJob is a background worker that drives the sync engine: change
// notifications are debounced into one cycle, and a ticker guarantees a
// periodic cycle even without changes (retries after offline/error states).
type ClientSyncJob interface {
	// Start launches the background goroutine. Any previously running job
	// is stopped before the new one begins.
	Start(ctx context.Context, interval, debounce time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}

type clientSyncJob struct {
	engine SyncEngine

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClientSyncJob creates a clientSyncJob bound to the engine. The job is
// idle until Start is called.
func NewClientSyncJob(engine SyncEngine) ClientSyncJob {
	return &clientSyncJob{engine: engine}
}

// Start implements ClientSyncJob. A change notification arms a debounce
// timer so a burst of edits produces a single outbox event; the ticker
// fires a full cycle regardless, defaulting to 30 seconds when interval is
// zero or negative. The goroutine exits when ctx is cancelled or Stop is
// called.
func (j *clientSyncJob) Start(ctx context.Context, interval, debounce time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		var (
			debounceTimer *time.Timer
			debounceCh    <-chan time.Time
		)

		for {
			select {
			case <-jobCtx.Done():
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				return

			case <-j.engine.Changes():
				if debounceTimer == nil {
					debounceTimer = time.NewTimer(debounce)
				} else {
					if !debounceTimer.Stop() {
						select {
						case <-debounceTimer.C:
						default:
						}
					}
					debounceTimer.Reset(debounce)
				}
				debounceCh = debounceTimer.C

			case <-debounceCh:
				debounceCh = nil
				_ = j.engine.Sync(jobCtx)

			case <-t.C:
				_ = j.engine.Sync(jobCtx)
			}
		}
	}()
}

// Stop implements ClientSyncJob. Safe to call when the job is not running.
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
