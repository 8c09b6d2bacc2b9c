// Package worker provides the concurrency primitives shared by the
// verification pipeline: a bounded job pool and a per-host rate limiter.
package worker

import (
	"context"
	"sync"
)

// Job is one unit of work executed by the pool.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is what a job produces.
type Result interface {
	Err() error
}

// Pool runs jobs on a fixed number of worker goroutines.
type Pool struct {
	workers     int
	jobs        chan Job
	results     chan Result
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	jobsOnce    sync.Once
	resultsOnce sync.Once
}

// NewPool creates a pool with the given worker count. Counts below 1
// are clamped to 1.
func NewPool(workers int) *Pool {
	return NewPoolContext(context.Background(), workers)
}

// NewPoolContext creates a pool whose jobs run under a context derived
// from ctx, so cancelling ctx stops in-flight work.
func NewPoolContext(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	return &Pool{
		workers: workers,
		jobs:    make(chan Job, workers*2),
		results: make(chan Result, workers*2),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
}

func (p *Pool) run() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			result := job.Execute(p.ctx)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job. After Shutdown it returns without queuing.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
		return
	case p.jobs <- job:
	}
}

// Close marks the end of submission. Safe to call more than once; no
// Submit may follow it.
func (p *Pool) Close() {
	p.jobsOnce.Do(func() {
		close(p.jobs)
	})
}

// Wait returns every result once the workers drain the queue. The
// channels are bounded, so on large batches Wait must run concurrently
// with submission: submit from another goroutine and have it call
// Close after the last Submit, otherwise Wait never returns.
func (p *Pool) Wait() []Result {
	go func() {
		p.wg.Wait()
		p.closeResults()
	}()

	var results []Result
	for result := range p.results {
		results = append(results, result)
	}
	return results
}

// Shutdown cancels in-flight jobs and releases the workers.
func (p *Pool) Shutdown() {
	p.cancel()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool) closeResults() {
	p.resultsOnce.Do(func() {
		close(p.results)
	})
}
