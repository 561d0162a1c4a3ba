// Package parallel runs independent sampling tasks on a fixed set of
// goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool runs the sampling tasks of one rasterization pass.
//
// A pass produces one task per plain shape and one per batch of chords
// of a compound shape, so task costs differ by orders of magnitude.
// Tasks are dealt round-robin onto per-worker queues; a worker that runs
// dry takes tasks from the other queues instead of idling while one
// queue still holds a large shape.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	queues  []chan func()

	// wake tells an idle worker to look at every queue again after a
	// task is queued.
	wake chan struct{}

	// done is closed by Close.
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan func(), workers),
		wake:    make(chan struct{}, workers),
		done:    make(chan struct{}),
	}
	depth := max(workers*4, 8)
	for i := range p.queues {
		p.queues[i] = make(chan func(), depth)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.run(i)
	}
	return p
}

// run is the loop of worker id. It prefers its own queue, then other
// queues, and only blocks when every queue is empty. A blocked worker
// wakes on its own queue, on a wake signal, or on Close.
func (p *WorkerPool) run(id int) {
	defer p.wg.Done()

	for {
		task := p.tryNext(id)
		if task == nil {
			select {
			case <-p.done:
				p.finish(id)
				return
			case task = <-p.queues[id]:
			case <-p.wake:
				continue
			}
		}
		task()
	}
}

// tryNext returns a queued task without blocking, or nil. The worker's
// own queue is checked first, the others in order after it.
func (p *WorkerPool) tryNext(id int) func() {
	for k := range p.workers {
		select {
		case task := <-p.queues[(id+k)%p.workers]:
			return task
		default:
		}
	}
	return nil
}

// finish runs the tasks still in the worker's queue after Close.
func (p *WorkerPool) finish(id int) {
	for {
		select {
		case task := <-p.queues[id]:
			task()
		default:
			return
		}
	}
}

// ExecuteAll runs every function and returns when all have finished.
// On a closed pool the work runs on the calling goroutine.
func (p *WorkerPool) ExecuteAll(work []func()) {
	if len(work) == 0 {
		return
	}
	if !p.running.Load() {
		for _, fn := range work {
			fn()
		}
		return
	}

	var pending sync.WaitGroup
	pending.Add(len(work))

	for i, fn := range work {
		wrapped := func() {
			defer pending.Done()
			fn()
		}
		select {
		case p.queues[i%p.workers] <- wrapped:
			select {
			case p.wake <- struct{}{}:
			default:
			}
		case <-p.done:
			wrapped()
		}
	}

	pending.Wait()
}

// Close stops the workers after the queued work has run.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still accepts work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}

// Map calls fn for every item on the pool and returns the results in
// input order. fn must not touch state shared with other calls.
func Map[T, R any](p *WorkerPool, items []T, fn func(i int, item T) R) []R {
	out := make([]R, len(items))
	work := make([]func(), len(items))
	for i, item := range items {
		work[i] = func() {
			out[i] = fn(i, item)
		}
	}
	p.ExecuteAll(work)
	return out
}
