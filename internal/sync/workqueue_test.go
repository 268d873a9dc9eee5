package sync

import (
	"context"
	"strconv"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkQueueRunsEverything(t *testing.T) {
	wq := NewWorkQueue(3)
	var done, running, peak atomic.Int32
	for i := 0; i < 10; i++ {
		wq.Add(strconv.Itoa(i), func(context.Context) {
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			running.Add(-1)
			done.Add(1)
		})
	}
	wq.Run(context.TODO())

	if got := done.Load(); got != 10 {
		t.Errorf("ran %d jobs, want 10", got)
	}
	if got := peak.Load(); got > 3 {
		t.Errorf("%d jobs ran at once, want at most 3", got)
	}
	if wq.Len() != 0 {
		t.Errorf("Len() => %d, want 0", wq.Len())
	}
}

func TestWorkQueueDuplicate(t *testing.T) {
	wq := NewWorkQueue(0)
	var calls atomic.Int32
	wq.Add("a", func(context.Context) { calls.Add(1) })
	wq.Add("a", func(context.Context) { calls.Add(10) })
	if !wq.Status("a") {
		t.Error("Status(a) => false, want true")
	}
	wq.Run(context.TODO())
	if got := calls.Load(); got != 1 {
		t.Errorf("calls => %d, want 1", got)
	}
	if wq.Status("a") {
		t.Error("Status(a) => true after Run")
	}
}

func TestWorkQueueCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.TODO())
	wq := NewWorkQueue(1)
	var calls atomic.Int32
	wq.Add("a", func(context.Context) { calls.Add(1); cancel() })
	wq.Add("b", func(context.Context) { calls.Add(1) })
	wq.Run(ctx)
	if got := calls.Load(); got != 1 {
		t.Errorf("calls => %d, want 1", got)
	}
	if wq.Len() != 1 {
		t.Errorf("Len() => %d, want 1", wq.Len())
	}
}
