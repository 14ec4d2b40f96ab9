package worker

import (
	"context"
	"sync"
)

// Job represents a unit of work to be executed
type Job interface {
	Execute(ctx context.Context) error
}

// Pool manages a fixed set of goroutines that execute jobs. The first job
// error cancels the pool; remaining queued jobs are dropped.
type Pool struct {
	workers  int
	jobQueue chan Job
	wg       sync.WaitGroup
	parent   context.Context
	ctx      context.Context
	cancel   context.CancelFunc
	errOnce  sync.Once
	err      error
	mu       sync.RWMutex // Guards closed against concurrent Submit
	closed   bool
}

// NewPool creates a new worker pool with the specified number of workers
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	poolCtx, cancel := context.WithCancel(ctx)

	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, workers*2),
		parent:   ctx,
		ctx:      poolCtx,
		cancel:   cancel,
	}
}

// Start starts the worker goroutines
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			if err := job.Execute(p.ctx); err != nil {
				p.fail(err)
				return
			}
		}
	}
}

func (p *Pool) fail(err error) {
	p.errOnce.Do(func() {
		p.err = err
		p.cancel()
	})
}

// Submit queues a job. It returns false once the pool has been cancelled.
func (p *Pool) Submit(job Job) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed || p.ctx.Err() != nil {
		return false
	}
	select {
	case <-p.ctx.Done():
		return false
	case p.jobQueue <- job:
		return true
	}
}

// Wait closes the queue, waits for all workers and returns the first job
// error, or the parent context's error if it was cancelled.
func (p *Pool) Wait() error {
	p.closeQueue()
	p.wg.Wait()
	defer p.cancel()

	if p.err != nil {
		return p.err
	}
	return p.parent.Err()
}

// Shutdown stops the pool immediately
func (p *Pool) Shutdown() {
	p.cancel()
	p.closeQueue()
	p.wg.Wait()
}

func (p *Pool) closeQueue() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.closed {
		p.closed = true
		close(p.jobQueue)
	}
}
