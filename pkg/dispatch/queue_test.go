package dispatch

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestSerialRunsTasksInOrder(t *testing.T) {
	q := NewSerial()
	defer q.Close()

	var mu sync.Mutex
	var got []int
	var wg sync.WaitGroup
	wg.Add(10)
	for i := 0; i < 10; i++ {
		i := i
		q.Async(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
			wg.Done()
		})
	}
	wg.Wait()

	for i, v := range got {
		if v != i {
			t.Fatalf("task order broken: got %v", got)
		}
	}
}

func TestSyncBlocksUntilComplete(t *testing.T) {
	q := NewSerial()
	defer q.Close()

	ran := false
	Sync(q, func() {
		if !q.IsCurrent() {
			t.Error("Sync body did not run on the queue goroutine")
		}
		ran = true
	})
	if !ran {
		t.Fatal("Sync returned before the task ran")
	}
}

func TestSyncReentrantFromQueueRunsInline(t *testing.T) {
	q := NewSerial()
	defer q.Close()

	done := make(chan bool, 1)
	q.Async(func() {
		// A nested Sync from the queue's own goroutine must not deadlock.
		nested := false
		Sync(q, func() { nested = true })
		done <- nested
	})
	if !<-done {
		t.Fatal("nested Sync did not run")
	}
}

func TestSerialIsCurrent(t *testing.T) {
	q := NewSerial()
	defer q.Close()

	if q.IsCurrent() {
		t.Error("IsCurrent true on a foreign goroutine")
	}
	Sync(q, func() {
		if !q.IsCurrent() {
			t.Error("IsCurrent false on the queue goroutine")
		}
	})
}

func TestSerialCloseDropsLateWork(t *testing.T) {
	q := NewSerial()
	q.Close()
	q.Close() // idempotent

	q.Async(func() {
		t.Error("task ran after Close")
	})
}

func TestInlineRunsImmediately(t *testing.T) {
	var q Inline
	ran := false
	q.Async(func() { ran = true })
	if !ran {
		t.Fatal("Inline did not run the task immediately")
	}
	if !q.IsCurrent() {
		t.Fatal("Inline.IsCurrent must always be true")
	}
}

func TestPoolExecutesAllTasks(t *testing.T) {
	p := NewPool(4)
	defer p.Close()

	var count atomic.Int64
	var wg sync.WaitGroup
	wg.Add(100)
	for i := 0; i < 100; i++ {
		p.Async(func() {
			count.Add(1)
			wg.Done()
		})
	}
	wg.Wait()
	if count.Load() != 100 {
		t.Fatalf("expected 100 tasks, ran %d", count.Load())
	}
}
