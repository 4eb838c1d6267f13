package utils

import (
	"context"
	"runtime"
	"sync"
)

const (
	MaxWorkers       = 32
	WorkerBufferSize = 4
)

// WorkerPool runs handler over submitted tasks on a fixed number of goroutines.
// The first handler error cancels the pool; tasks not yet started are dropped.
type WorkerPool[T any] struct {
	workers   int
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	taskQueue chan T
	handler   func(context.Context, T) error

	errOnce sync.Once
	err     error
}

func NewWorkerPool[T any](ctx context.Context, workers int, handler func(context.Context, T) error) *WorkerPool[T] {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > MaxWorkers {
		workers = MaxWorkers
	}
	ctx, cancel := context.WithCancel(ctx)
	return &WorkerPool[T]{
		workers:   workers,
		ctx:       ctx,
		cancel:    cancel,
		taskQueue: make(chan T, workers*WorkerBufferSize),
		handler:   handler,
	}
}

func (p *WorkerPool[T]) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *WorkerPool[T]) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case task, ok := <-p.taskQueue:
			if !ok {
				return
			}
			if err := p.handler(p.ctx, task); err != nil {
				p.fail(err)
				return
			}
		}
	}
}

func (p *WorkerPool[T]) fail(err error) {
	p.errOnce.Do(func() {
		p.err = err
		p.cancel()
	})
}

// Submit queues a task. It returns false once the pool is cancelled.
func (p *WorkerPool[T]) Submit(task T) bool {
	select {
	case <-p.ctx.Done():
		return false
	case p.taskQueue <- task:
		return true
	}
}

// Wait closes the queue, waits for the workers and returns the first error.
// A cancelled parent context is reported when no handler failed.
func (p *WorkerPool[T]) Wait() error {
	close(p.taskQueue)
	p.wg.Wait()
	defer p.cancel()

	if p.err != nil {
		return p.err
	}
	return context.Cause(p.ctx)
}
