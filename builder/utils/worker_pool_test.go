package utils

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestWorkerPool_ProcessesAllTasks(t *testing.T) {
	var (
		mu   sync.Mutex
		seen = make(map[int]bool)
	)

	pool := NewWorkerPool(context.Background(), 4, func(_ context.Context, n int) error {
		mu.Lock()
		seen[n] = true
		mu.Unlock()
		return nil
	})
	pool.Start()
	for i := 0; i < 100; i++ {
		if !pool.Submit(i) {
			t.Fatalf("Submit(%d) rejected", i)
		}
	}
	if err := pool.Wait(); err != nil {
		t.Fatalf("Wait() = %v, want nil", err)
	}

	if len(seen) != 100 {
		t.Errorf("processed %d tasks, want 100", len(seen))
	}
}

func TestWorkerPool_FirstErrorCancels(t *testing.T) {
	boom := errors.New("boom")
	var processed atomic.Int32

	pool := NewWorkerPool(context.Background(), 2, func(_ context.Context, n int) error {
		processed.Add(1)
		if n == 3 {
			return boom
		}
		return nil
	})
	pool.Start()
	for i := 0; i < 1000; i++ {
		if !pool.Submit(i) {
			break
		}
	}

	if err := pool.Wait(); !errors.Is(err, boom) {
		t.Fatalf("Wait() = %v, want %v", err, boom)
	}
	if processed.Load() == 1000 {
		t.Error("tasks after the failure should be dropped")
	}
}

func TestWorkerPool_ParentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := NewWorkerPool(ctx, 2, func(context.Context, int) error { return nil })
	pool.Start()
	if pool.Submit(1) {
		// queue may still accept before workers observe cancellation
		t.Log("task accepted after cancellation")
	}

	if err := pool.Wait(); !errors.Is(err, context.Canceled) {
		t.Errorf("Wait() = %v, want context.Canceled", err)
	}
}

func TestNewWorkerPool_ClampsWorkers(t *testing.T) {
	pool := NewWorkerPool(context.Background(), 1000, func(context.Context, int) error { return nil })
	if pool.workers != MaxWorkers {
		t.Errorf("workers = %d, want %d", pool.workers, MaxWorkers)
	}
	pool.Start()
	_ = pool.Wait()
}
