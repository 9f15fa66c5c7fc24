// Package dispatch provides the two execution contexts the backdrop pipeline
// runs on: an exclusive serial queue standing in for the presentation thread,
// and a pooled background context for blur work.
//
// Both contexts are injected at construction time rather than reached for as
// process-wide globals, so tests can substitute [Inline] and drive the whole
// pipeline deterministically on a single goroutine.
package dispatch

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Queue is an execution context accepting asynchronous work.
type Queue interface {
	// Async schedules fn to run on the queue and returns immediately.
	Async(fn func())
}

// Exclusive is a serial queue that executes work one task at a time and can
// identify whether the caller is already running on it.
type Exclusive interface {
	Queue
	// IsCurrent reports whether the calling goroutine is the queue's own.
	IsCurrent() bool
}

// Sync runs fn on q and blocks the caller until it completes.
//
// When the caller is already on q the function runs inline; otherwise it is
// enqueued and the calling goroutine parks until the queue has executed it.
// The queue itself never waits on the caller, so the block is bounded.
func Sync(q Exclusive, fn func()) {
	if q.IsCurrent() {
		fn()
		return
	}
	done := make(chan struct{})
	q.Async(func() {
		defer close(done)
		fn()
	})
	<-done
}

// Serial is an Exclusive queue backed by a single goroutine.
//
// Tasks run in submission order. The zero value is not usable; construct
// with NewSerial and release with Close.
type Serial struct {
	tasks   chan func()
	done    chan struct{}
	gid     atomic.Uint64
	running atomic.Bool
	wg      sync.WaitGroup
}

// NewSerial starts a serial queue.
func NewSerial() *Serial {
	s := &Serial{
		tasks: make(chan func(), 64),
		done:  make(chan struct{}),
	}
	s.running.Store(true)
	s.wg.Add(1)
	go s.loop()
	return s
}

func (s *Serial) loop() {
	defer s.wg.Done()
	s.gid.Store(goroutineID())
	for {
		select {
		case <-s.done:
			for {
				select {
				case fn := <-s.tasks:
					fn()
				default:
					return
				}
			}
		case fn := <-s.tasks:
			fn()
		}
	}
}

// Async schedules fn on the queue. Calls after Close are dropped.
func (s *Serial) Async(fn func()) {
	if fn == nil || !s.running.Load() {
		return
	}
	select {
	case s.tasks <- fn:
	case <-s.done:
	}
}

// IsCurrent reports whether the caller is the queue goroutine.
func (s *Serial) IsCurrent() bool {
	return goroutineID() == s.gid.Load()
}

// Close stops the queue after draining already-submitted tasks and waits for
// the queue goroutine to exit.
func (s *Serial) Close() {
	if !s.running.CompareAndSwap(true, false) {
		return
	}
	close(s.done)
	s.wg.Wait()
}

// Inline is an Exclusive queue that runs every task immediately on the
// calling goroutine. It exists for deterministic single-threaded tests.
type Inline struct{}

func (Inline) Async(fn func()) {
	if fn != nil {
		fn()
	}
}

func (Inline) IsCurrent() bool { return true }

// goroutineID extracts the numeric id of the calling goroutine from its
// stack header ("goroutine 123 [running]:").
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	const prefix = len("goroutine ")
	var id uint64
	for _, c := range buf[prefix:n] {
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + uint64(c-'0')
	}
	return id
}
