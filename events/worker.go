package events

import (
	"context"
	"log/slog"
	"sync"
)

// Delivery is one received message awaiting acknowledgement.
type Delivery interface {
	Subject() string
	Data() []byte
	Ack() error
	Nak() error
}

type Handler func(ctx context.Context, subject string, data []byte) error

type WorkerPool struct {
	jobs    chan Delivery
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	handler Handler
}

// NewWorkerPool starts maxWorkers workers. Cancelling ctx stops them without
// draining the queue.
func NewWorkerPool(ctx context.Context, maxWorkers, queueSize int, handler Handler) *WorkerPool {
	if maxWorkers < 1 {
		maxWorkers = 2
	}
	if queueSize < 1 {
		queueSize = 100
	}

	poolCtx, cancel := context.WithCancel(ctx)

	pool := &WorkerPool{
		jobs:    make(chan Delivery, queueSize),
		ctx:     poolCtx,
		cancel:  cancel,
		handler: handler,
	}

	for i := 0; i < maxWorkers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}

	return pool
}

func (w *WorkerPool) worker() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case d, ok := <-w.jobs:
			if !ok {
				return
			}
			w.process(d)
		}
	}
}

func (w *WorkerPool) process(d Delivery) {
	if err := w.handler(w.ctx, d.Subject(), d.Data()); err != nil {
		slog.Error("failed to handle message", "subject", d.Subject(), "err", err)
		if err := d.Nak(); err != nil {
			slog.Error("failed to nak message", "err", err)
		}
		return
	}

	if err := d.Ack(); err != nil {
		slog.Error("failed to ack message", "err", err)
	}
}

// Submit queues d, blocking while the queue is full. It returns false once
// either context is done.
func (w *WorkerPool) Submit(ctx context.Context, d Delivery) bool {
	select {
	case <-ctx.Done():
		return false
	case <-w.ctx.Done():
		return false
	default:
	}

	select {
	case w.jobs <- d:
		return true
	case <-ctx.Done():
		return false
	case <-w.ctx.Done():
		return false
	}
}

// Stop drains the queue and waits for the workers, provided the pool context
// is still live. Nothing may Submit after Stop is called.
func (w *WorkerPool) Stop() {
	close(w.jobs)
	w.wg.Wait()
	w.cancel()
}
