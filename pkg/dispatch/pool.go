package dispatch

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a Queue backed by a fixed set of worker goroutines.
//
// It is the background context blur work is dispatched onto: tasks may run
// concurrently and completion order is not related to submission order.
//
// Thread safety: Pool is safe for concurrent use.
type Pool struct {
	tasks   chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewPool creates a pool with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}
	p := &Pool{
		tasks: make(chan func(), queueSize),
		done:  make(chan struct{}),
	}
	p.running.Store(true)
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			for {
				select {
				case fn := <-p.tasks:
					fn()
				default:
					return
				}
			}
		case fn := <-p.tasks:
			fn()
		}
	}
}

// Async schedules fn on an arbitrary worker. Calls after Close are dropped.
func (p *Pool) Async(fn func()) {
	if fn == nil || !p.running.Load() {
		return
	}
	select {
	case p.tasks <- fn:
	case <-p.done:
	}
}

// Close stops the pool after draining already-submitted tasks and waits for
// all workers to exit.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}
