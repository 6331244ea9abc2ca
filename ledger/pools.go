package main

import (
	"context"

	"github.com/imkonsowa/restaurants-ordering/events"
)

// newPools starts one worker pool per subject. The pools are detached from
// the subscriber context so Stop still drains what was queued at shutdown.
func newPools(subjects []string, workers, queueSize int, handler events.Handler) map[string]*events.WorkerPool {
	pools := make(map[string]*events.WorkerPool, len(subjects))
	for _, subject := range subjects {
		pools[subject] = events.NewWorkerPool(context.Background(), workers, queueSize, handler)
	}

	return pools
}
