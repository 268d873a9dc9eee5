// Package sync holds concurrency helpers.
package sync

import (
	"context"
	"sync"
)

// WorkQueue runs keyed work with a bounded number of workers.
type WorkQueue struct {
	work    map[string]func(context.Context)
	order   []string
	workers int
	mu      sync.RWMutex
}

// NewWorkQueue creates a new work queue. The workers argument specifies the
// number of concurrent workers to run the work.
// The queue will chunk the work into batches of workers size.
func NewWorkQueue(workers int) *WorkQueue {
	if workers <= 0 {
		workers = 1
	}

	return &WorkQueue{
		work:    make(map[string]func(context.Context)),
		workers: workers,
	}
}

// Run runs the queued work in insertion order and waits for it to finish.
// No new batch starts once ctx is done.
func (wq *WorkQueue) Run(ctx context.Context) {
	for ctx.Err() == nil {
		wq.mu.RLock()
		n := len(wq.order)
		if n > wq.workers {
			n = wq.workers
		}
		batch := append([]string(nil), wq.order[:n]...)
		wq.mu.RUnlock()
		if len(batch) == 0 {
			return
		}

		var wg sync.WaitGroup
		wg.Add(len(batch))
		for _, id := range batch {
			wq.mu.RLock()
			fn := wq.work[id]
			wq.mu.RUnlock()

			go func(id string, fn func(context.Context)) {
				defer wg.Done()
				fn(ctx)
				wq.remove(id)
			}(id, fn)
		}
		wg.Wait()
	}
}

func (wq *WorkQueue) remove(id string) {
	wq.mu.Lock()
	defer wq.mu.Unlock()
	delete(wq.work, id)
	for i, o := range wq.order {
		if o == id {
			wq.order = append(wq.order[:i], wq.order[i+1:]...)
			return
		}
	}
}

// Add adds a new job to the queue. Work already queued under id is kept.
func (wq *WorkQueue) Add(id string, fn func(context.Context)) {
	wq.mu.Lock()
	defer wq.mu.Unlock()
	if _, ok := wq.work[id]; ok {
		return
	}
	wq.work[id] = fn
	wq.order = append(wq.order, id)
}

// Status returns whether work is queued under id.
func (wq *WorkQueue) Status(id string) bool {
	wq.mu.RLock()
	defer wq.mu.RUnlock()
	_, ok := wq.work[id]
	return ok
}

// Len returns the number of queued jobs.
func (wq *WorkQueue) Len() int {
	wq.mu.RLock()
	defer wq.mu.RUnlock()
	return len(wq.order)
}
