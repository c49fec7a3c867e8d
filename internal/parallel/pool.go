// Package parallel runs independent jobs on a bounded set of goroutines.
package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrClosed is returned by Run once the pool has been closed.
var ErrClosed = errors.New("parallel: pool closed")

// Pool is a fixed set of worker goroutines.
//
// Each worker owns a queue and takes from a neighbour's queue when its own
// is empty, so a few slow jobs do not leave the other workers idle.
//
// Thread safety: Pool is safe for concurrent use.
type Pool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool

	// sendMu is held for reading while a job is being queued; Close takes
	// it for writing so no job lands in a queue after the workers exit.
	sendMu sync.RWMutex
}

// NewPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)

	p := &Pool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	own := p.queues[id]
	for {
		select {
		case <-p.done:
			p.drain(own)
			return
		case job := <-own:
			job()
		default:
			if job := p.steal(id); job != nil {
				job()
				continue
			}
			select {
			case <-p.done:
				p.drain(own)
				return
			case job := <-own:
				job()
			}
		}
	}
}

// drain runs whatever is left in q.
func (p *Pool) drain(q chan func()) {
	for {
		select {
		case job := <-q:
			job()
		default:
			return
		}
	}
}

// steal takes one job from another worker's queue, or returns nil.
func (p *Pool) steal(id int) func() {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case job := <-p.queues[i]:
			return job
		default:
		}
	}
	return nil
}

// Run calls job(ctx, i) for every i in [0, n) across the workers and waits
// for all of them.
//
// Jobs that have not started when ctx is done are skipped and Run returns
// ctx.Err(); jobs already running are left to observe ctx themselves.
func (p *Pool) Run(ctx context.Context, n int, job func(ctx context.Context, i int)) error {
	if !p.running.Load() {
		return ErrClosed
	}
	if n <= 0 {
		return ctx.Err()
	}

	var pending sync.WaitGroup
	pending.Add(n)

	submitted := 0
	for i := range n {
		wrapped := func() {
			defer pending.Done()
			if ctx.Err() != nil {
				return
			}
			job(ctx, i)
		}
		if p.send(ctx, p.queues[i%p.workers], wrapped) != nil {
			break
		}
		submitted++
	}
	for range n - submitted {
		pending.Done()
	}

	pending.Wait()
	if err := ctx.Err(); err != nil {
		return err
	}
	if submitted < n {
		return ErrClosed
	}
	return nil
}

// Submit queues fn on the worker with the shortest queue without waiting
// for it. It reports false if the pool is closed.
func (p *Pool) Submit(fn func()) bool {
	if fn == nil || !p.running.Load() {
		return false
	}

	best := 0
	for i := 1; i < p.workers; i++ {
		if len(p.queues[i]) < len(p.queues[best]) {
			best = i
		}
	}

	return p.send(context.Background(), p.queues[best], fn) == nil
}

// send puts fn on q, blocking while q is full.
func (p *Pool) send(ctx context.Context, q chan func(), fn func()) error {
	p.sendMu.RLock()
	defer p.sendMu.RUnlock()
	if !p.running.Load() {
		return ErrClosed
	}
	select {
	case q <- fn:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting work, lets queued jobs finish and stops the workers.
// Close is safe to call multiple times.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	p.sendMu.Lock()
	close(p.done)
	p.sendMu.Unlock()
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int {
	return p.workers
}

// Running reports whether the pool still accepts work.
func (p *Pool) Running() bool {
	return p.running.Load()
}

// Queued returns the approximate number of jobs waiting in queues.
func (p *Pool) Queued() int {
	total := 0
	for _, q := range p.queues {
		total += len(q)
	}
	return total
}
