package workerpool

import "sync"

// Job represents one unit of work.
type Job func() error

// Pool runs jobs on a fixed number of worker goroutines. Jobs added after
// Stop are never run.
type Pool struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []Job
	pending int
	stopped bool
	err     error
}

// New starts a pool with n workers.
func New(n int) *Pool {
	p := &Pool{}
	p.cond = sync.NewCond(&p.mu)
	for i := 0; i < n; i++ {
		go p.worker()
	}
	return p
}

// Add enqueues jobs for execution.
func (p *Pool) Add(jobs []Job) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}
	p.queue = append(p.queue, jobs...)
	p.pending += len(jobs)
	p.cond.Broadcast()
}

// Wait blocks until all added jobs have finished (or the pool was stopped)
// and returns the first job error.
func (p *Pool) Wait() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.pending > 0 && !p.stopped {
		p.cond.Wait()
	}
	return p.err
}

// Stop discards queued jobs and shuts the workers down. Jobs already
// running complete.
func (p *Pool) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopped = true
	p.pending -= len(p.queue)
	p.queue = nil
	p.cond.Broadcast()
}

func (p *Pool) worker() {
	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.stopped {
			p.cond.Wait()
		}
		if p.stopped {
			p.mu.Unlock()
			return
		}
		job := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		err := job()

		p.mu.Lock()
		p.pending--
		if err != nil && p.err == nil {
			p.err = err
		}
		if p.pending == 0 {
			p.cond.Broadcast()
		}
		p.mu.Unlock()
	}
}
