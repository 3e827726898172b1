package queue

import (
	"context"
	"sync/atomic"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
	"github.com/pkg/errors"
)

// LockFreeQueue adapts a bounded lock-free MPMC ring (lfq.MPMC) to the
// Queue contract.
//
// The ring offers only non-blocking enqueue and dequeue and no wake-up
// hook, so the blocking operations spin over it with exponential
// back-off. Push blocks (spins) while the ring is full.
//
// The ring does not expose a length. Empty reads an element count the
// adapter keeps next to the ring; it is exact whenever no operation is
// in flight and otherwise matches some recent instant.
type LockFreeQueue[T any] struct {
	ring  *lfq.MPMC[T]
	count atomic.Int64
}

// NewLockFree creates a LockFreeQueue holding at least capacity
// elements. Capacity is rounded up to a power of 2 and must be >= 2.
func NewLockFree[T any](capacity int) (*LockFreeQueue[T], error) {
	if capacity < 2 {
		return nil, errors.Wrapf(ErrCapacity, "lock-free capacity %d, need >= 2", capacity)
	}
	return &LockFreeQueue[T]{
		ring: lfq.NewMPMC[T](capacity),
	}, nil
}

// TryPush appends v at the tail.
// Returns false if the ring is full.
func (q *LockFreeQueue[T]) TryPush(v T) bool {
	// Count first so Empty never reports true while v is visible.
	q.count.Add(1)
	if err := q.ring.Enqueue(&v); err != nil {
		q.count.Add(-1)
		mustWouldBlock(err)
		return false
	}
	return true
}

// Push appends v at the tail, spinning while the ring is full.
func (q *LockFreeQueue[T]) Push(v T) {
	backoff := iox.Backoff{}
	for !q.TryPush(v) {
		backoff.Wait()
	}
}

// TryPop removes and returns the head element with a single dequeue
// attempt. Returns false if the ring is empty.
func (q *LockFreeQueue[T]) TryPop() (T, bool) {
	v, err := q.ring.Dequeue()
	if err != nil {
		mustWouldBlock(err)
		return v, false
	}
	q.count.Add(-1)
	return v, true
}

// TryPopHandle is TryPop returning a handle, nil if the ring is empty.
func (q *LockFreeQueue[T]) TryPopHandle() *T {
	if v, ok := q.TryPop(); ok {
		return &v
	}
	return nil
}

// WaitAndPop spins until an element can be dequeued.
func (q *LockFreeQueue[T]) WaitAndPop() T {
	backoff := iox.Backoff{}
	for {
		if v, ok := q.TryPop(); ok {
			return v
		}
		backoff.Wait()
	}
}

// WaitAndPopHandle is WaitAndPop returning a handle.
func (q *LockFreeQueue[T]) WaitAndPopHandle() *T {
	v := q.WaitAndPop()
	return &v
}

// WaitAndPopContext spins until an element can be dequeued or ctx ends.
func (q *LockFreeQueue[T]) WaitAndPopContext(ctx context.Context) (T, error) {
	backoff := iox.Backoff{}
	for {
		if v, ok := q.TryPop(); ok {
			return v, nil
		}
		if err := ctx.Err(); err != nil {
			var zero T
			return zero, err
		}
		backoff.Wait()
	}
}

// Empty reports whether the queue holds no elements.
// This is a single atomic load.
func (q *LockFreeQueue[T]) Empty() bool {
	return q.count.Load() <= 0
}

// Cap returns the ring capacity.
func (q *LockFreeQueue[T]) Cap() int {
	return q.ring.Cap()
}

// Drain tells the ring that no further Push will happen, letting
// consumers take the remaining elements without waiting on producer
// activity. The caller must not Push after Drain.
func (q *LockFreeQueue[T]) Drain() {
	if d, ok := any(q.ring).(lfq.Drainer); ok {
		d.Drain()
	}
}

// mustWouldBlock panics on any ring error other than full/empty.
// Those are the only outcomes the ring documents.
func mustWouldBlock(err error) {
	if !lfq.IsWouldBlock(err) {
		panic(errors.Wrap(err, "queue: lock-free ring"))
	}
}
