package workers

import (
	"context"

	"github.com/Konduru-Hemesh/secure-password-demo/internal/config"
	"github.com/Konduru-Hemesh/secure-password-demo/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the background workers for the client binary. Currently
// that is the sync worker, which debounces change notifications and drains
// the outbox on a fixed interval.
func NewWorkers(ctx context.Context, job service.ClientSyncJob, cfg config.ClientWorkers) *Workers {
	return &Workers{
		workers: []Worker{
			newSyncWorker(ctx, job, cfg),
		},
	}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
