package workers

import (
	"context"

	"github.com/Konduru-Hemesh/secure-password-demo/internal/config"
	"github.com/Konduru-Hemesh/secure-password-demo/internal/service"
)

// syncWorker starts the client's background sync job. The job owns its
// goroutine; Run returns once the job has been launched.
type syncWorker struct {
	ctx context.Context
	job service.ClientSyncJob
	cfg config.ClientWorkers
}

func newSyncWorker(ctx context.Context, job service.ClientSyncJob, cfg config.ClientWorkers) *syncWorker {
	return &syncWorker{
		ctx: ctx,
		job: job,
		cfg: cfg,
	}
}

func (w *syncWorker) Run() {
	w.job.Start(w.ctx, w.cfg.SyncInterval, w.cfg.SyncDebounce)
}
