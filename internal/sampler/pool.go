package sampler

import "sync"

// Pool is a fixed-size worker pool. One pool is shared by every sampler in a
// run, so at most Size probes are in flight across all targets combined. The
// pool is never resized after construction.
type Pool struct {
	size  int
	tasks chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

// NewPool starts size workers. Sizes below 1 are clamped to 1.
func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	p := &Pool{size: size, tasks: make(chan func())}
	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		task()
	}
}

// Size returns the fixed worker count.
func (p *Pool) Size() int { return p.size }

// Submit blocks until a worker accepts the task.
func (p *Pool) Submit(task func()) {
	p.tasks <- task
}

// Close stops accepting work and waits for in-flight tasks to finish. Safe to
// call more than once; Submit after Close panics.
func (p *Pool) Close() {
	p.once.Do(func() { close(p.tasks) })
	p.wg.Wait()
}
