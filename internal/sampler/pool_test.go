package sampler

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPool_RunsEverySubmittedTask(t *testing.T) {
	p := NewPool(4)
	var ran int64
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		p.Submit(func() {
			defer wg.Done()
			atomic.AddInt64(&ran, 1)
		})
	}
	wg.Wait()
	p.Close()
	if ran != 50 {
		t.Fatalf("want 50 tasks run, got %d", ran)
	}
}

func TestPool_NeverExceedsSize(t *testing.T) {
	const size = 3
	p := NewPool(size)
	defer p.Close()

	var inFlight, peak int64
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		p.Submit(func() {
			defer wg.Done()
			n := atomic.AddInt64(&inFlight, 1)
			for {
				old := atomic.LoadInt64(&peak)
				if n <= old || atomic.CompareAndSwapInt64(&peak, old, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt64(&inFlight, -1)
		})
	}
	wg.Wait()

	if peak > size {
		t.Fatalf("pool ran %d tasks at once, size is %d", peak, size)
	}
}

func TestPool_ClampsSizeBelowOne(t *testing.T) {
	p := NewPool(0)
	defer p.Close()
	if p.Size() != 1 {
		t.Fatalf("want size clamped to 1, got %d", p.Size())
	}
	done := make(chan struct{})
	p.Submit(func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("task never ran on clamped pool")
	}
}

func TestPool_CloseIsIdempotent(t *testing.T) {
	p := NewPool(2)
	p.Close()
	p.Close() // must not panic
}
