package input

import (
	"sync/atomic"

	"github.com/lixenwraith/vi-blaster/parameter"
)

// KeyEvent is a single press or release
type KeyEvent struct {
	Key  Key
	Down bool
}

// Queue is a bounded MPSC ring of key events
// Producers reserve a slot by CAS on tail; the single consumer owns head
// A full ring refuses new events instead of overwriting queued ones, and presses
// stop EventReleaseReserve slots early so releases are always accepted ahead of them
type Queue struct {
	events    [parameter.EventQueueSize]KeyEvent
	published [parameter.EventQueueSize]atomic.Bool
	head      atomic.Uint64 // Written by Drain only
	tail      atomic.Uint64
	dropped   atomic.Uint64
}

func NewQueue() *Queue {
	return &Queue{}
}

// Push enqueues ev, false when the ring has no room for it
// Safe for concurrent producers
func (q *Queue) Push(ev KeyEvent) bool {
	limit := uint64(parameter.EventQueueSize)
	if ev.Down {
		limit -= parameter.EventReleaseReserve
	}

	for {
		tail := q.tail.Load()
		head := q.head.Load()
		if head > tail {
			// Tail moved and was drained between the loads
			continue
		}
		if tail-head >= limit {
			q.dropped.Add(1)
			return false
		}
		if !q.tail.CompareAndSwap(tail, tail+1) {
			continue
		}

		idx := tail & parameter.EventBufferMask
		q.events[idx] = ev
		q.published[idx].Store(true) // After the write, Drain reads only published slots
		return true
	}
}

// Drain calls fn for every published event in FIFO order and returns the count
// Single consumer only; stops at the first slot a producer is still writing
func (q *Queue) Drain(fn func(KeyEvent)) int {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail == head {
		return 0
	}

	batch := make([]KeyEvent, 0, tail-head)
	for pos := head; pos < tail; pos++ {
		idx := pos & parameter.EventBufferMask
		if !q.published[idx].Load() {
			break
		}
		batch = append(batch, q.events[idx])
		q.published[idx].Store(false)
	}

	// Slots are released to producers only after they are read and cleared
	q.head.Store(head + uint64(len(batch)))

	for _, ev := range batch {
		fn(ev)
	}
	return len(batch)
}

// Len returns the approximate pending count
func (q *Queue) Len() int {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail <= head {
		return 0
	}
	return int(tail - head)
}

// Dropped returns how many events were refused because the ring was full
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}
