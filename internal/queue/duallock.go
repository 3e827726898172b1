package queue

import (
	"context"
	"sync"
	"sync/atomic"
)

// node is one link of a DualLockQueue. The last node of the list is the
// sentinel: its data is nil and its next is nil.
type node[T any] struct {
	data *T
	next *node[T]
}

// DualLockQueue is an unbounded linked-list FIFO with separate head and
// tail locks.
//
// The list always holds at least one node. The last node is an empty
// sentinel: Push fills the sentinel and appends a fresh one, Pop removes
// the first node. Producers only touch the tail node and consumers only
// touch the head node, so one producer and one consumer do not contend
// while the queue is non-empty.
//
// Lock order: headMu before tailMu. Push takes tailMu only; pops and
// Empty take headMu and then briefly tailMu to read the tail pointer.
type DualLockQueue[T any] struct {
	headMu   sync.Mutex
	head     *node[T]
	notEmpty *sync.Cond // on headMu

	// waiters counts consumers inside a blocking pop. Push only passes
	// through headMu before signalling when it is non-zero.
	waiters atomic.Int32

	_pad [56]byte //nolint:unused

	tailMu sync.Mutex
	tail   *node[T]
}

// NewDualLock creates an empty DualLockQueue holding a single sentinel.
func NewDualLock[T any]() *DualLockQueue[T] {
	sentinel := &node[T]{}
	q := &DualLockQueue[T]{
		head: sentinel,
		tail: sentinel,
	}
	q.notEmpty = sync.NewCond(&q.headMu)
	return q
}

// Push appends v at the tail and wakes one waiting consumer.
//
// Push never touches head; only the tail lock is held while linking.
func (q *DualLockQueue[T]) Push(v T) {
	// Allocate outside the critical section so a failed allocation
	// leaves the queue untouched and the tail lock is held briefly.
	sentinel := &node[T]{}
	data := &v

	q.tailMu.Lock()
	q.tail.data = data
	q.tail.next = sentinel
	q.tail = sentinel
	q.tailMu.Unlock()

	if q.waiters.Load() > 0 {
		// A waiter holds headMu from its predicate check until Wait
		// parks it. Passing through headMu orders this signal after
		// that park, so it cannot be lost.
		q.headMu.Lock()
		q.headMu.Unlock() //nolint:staticcheck
		q.notEmpty.Signal()
	}
}

// TryPop removes and returns the head element.
// Returns false if the queue is empty.
func (q *DualLockQueue[T]) TryPop() (T, bool) {
	if h := q.TryPopHandle(); h != nil {
		return *h, true
	}
	var zero T
	return zero, false
}

// TryPopHandle removes the head element and returns a handle to it.
// Returns nil if the queue is empty.
func (q *DualLockQueue[T]) TryPopHandle() *T {
	q.headMu.Lock()
	defer q.headMu.Unlock()

	if q.head == q.getTail() {
		return nil
	}
	return q.popHead()
}

// WaitAndPop blocks until the queue is non-empty, then removes and
// returns the head element.
func (q *DualLockQueue[T]) WaitAndPop() T {
	return *q.WaitAndPopHandle()
}

// WaitAndPopHandle blocks until the queue is non-empty, then removes the
// head element and returns a handle to it.
func (q *DualLockQueue[T]) WaitAndPopHandle() *T {
	q.headMu.Lock()
	defer q.headMu.Unlock()

	q.waitForData()
	return q.popHead()
}

// WaitAndPopContext blocks until the queue is non-empty or ctx ends.
// Returns ctx.Err() if ctx ends first; nothing is removed in that case.
func (q *DualLockQueue[T]) WaitAndPopContext(ctx context.Context) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	stop := context.AfterFunc(ctx, func() {
		q.headMu.Lock()
		q.notEmpty.Broadcast()
		q.headMu.Unlock()
	})
	defer stop()

	q.headMu.Lock()
	defer q.headMu.Unlock()

	q.waiters.Add(1)
	defer q.waiters.Add(-1)

	for q.head == q.getTail() {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		q.notEmpty.Wait()
	}
	return *q.popHead(), nil
}

// Empty reports whether the queue holds no elements.
func (q *DualLockQueue[T]) Empty() bool {
	q.headMu.Lock()
	defer q.headMu.Unlock()
	return q.head == q.getTail()
}

// getTail snapshots the tail pointer under tailMu.
func (q *DualLockQueue[T]) getTail() *node[T] {
	q.tailMu.Lock()
	defer q.tailMu.Unlock()
	return q.tail
}

// waitForData parks until head != tail. headMu must be held.
//
// The tail is re-read under tailMu on every evaluation: it is the tail
// that advances, and Wait may return spuriously.
func (q *DualLockQueue[T]) waitForData() {
	q.waiters.Add(1)
	defer q.waiters.Add(-1)

	for q.head == q.getTail() {
		q.notEmpty.Wait()
	}
}

// popHead unlinks the head node and moves its element out. headMu must
// be held and the queue must be non-empty.
func (q *DualLockQueue[T]) popHead() *T {
	old := q.head
	q.head = old.next

	data := old.data
	old.data = nil
	old.next = nil
	return data
}
