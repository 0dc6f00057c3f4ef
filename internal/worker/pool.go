package worker

import (
	"context"
	"sync"
)

// Job represents a unit of work to be executed
type Job interface {
	Execute(ctx context.Context) Result
}

// Result represents the result of a job execution
type Result interface {
	GetError() error
}

// Pool executes jobs concurrently with a fixed number of workers.
// Results are drained into a collector as they arrive, so workers never
// block on a full results buffer and callers may submit any number of
// jobs before calling Wait.
type Pool struct {
	workers     int
	jobs        chan Job
	results     chan Result
	collector   *ResultCollector
	collected   chan struct{}
	collectOnce sync.Once
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	closeOnce   sync.Once
}

// NewPool creates a worker pool with the specified number of workers.
// Cancelling ctx unblocks pending Submit calls and stops the workers.
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if ctx == nil {
		ctx = context.Background()
	}

	poolCtx, cancel := context.WithCancel(ctx)

	return &Pool{
		workers:   workers,
		jobs:      make(chan Job, workers*2),
		results:   make(chan Result, workers*2),
		collector: NewResultCollector(),
		collected: make(chan struct{}),
		ctx:       poolCtx,
		cancel:    cancel,
	}
}

// Start launches the worker goroutines and the result collector
func (p *Pool) Start() {
	p.startCollector()
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

// Submit queues a job for execution. Submitting after Shutdown or after
// the pool's context is cancelled is a no-op.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
		return
	case p.jobs <- job:
	}
}

// Wait closes the queue, waits for all submitted jobs, and returns their
// results in completion order
func (p *Pool) Wait() []Result {
	p.startCollector()
	close(p.jobs)

	go func() {
		p.wg.Wait()
		p.closeResults()
	}()

	<-p.collected
	return p.collector.Results()
}

// Shutdown stops the pool immediately, abandoning queued jobs
func (p *Pool) Shutdown() {
	p.startCollector()
	p.cancel()
	p.wg.Wait()
	p.closeResults()
	<-p.collected
}

// startCollector begins draining results as they arrive
func (p *Pool) startCollector() {
	p.collectOnce.Do(func() {
		go func() {
			defer close(p.collected)
			for result := range p.results {
				p.collector.Add(result)
			}
		}()
	})
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}

// ResultCollector accumulates results as they arrive (thread-safe)
type ResultCollector struct {
	results []Result
	mu      sync.Mutex
}

// NewResultCollector creates an empty collector
func NewResultCollector() *ResultCollector {
	return &ResultCollector{
		results: make([]Result, 0),
	}
}

// Add appends one result
func (c *ResultCollector) Add(result Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = append(c.results, result)
}

// Results returns all collected results
func (c *ResultCollector) Results() []Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.results
}
