package queue

import (
	"context"
	"sync"

	"github.com/ef-ds/deque"
)

// SingleLockQueue is an unbounded FIFO guarded by a single mutex.
//
// The buffer holds *T handles so that the handle forms of pop can hand
// out the stored pointer without copying. Every operation takes the one
// mutex, which makes the queue simple and linearizable but serializes
// producers against consumers.
type SingleLockQueue[T any] struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	buf      deque.Deque // of *T
}

// NewSingleLock creates an empty SingleLockQueue.
func NewSingleLock[T any]() *SingleLockQueue[T] {
	q := &SingleLockQueue[T]{}
	q.notEmpty = sync.NewCond(&q.mu)
	return q
}

// Push appends v at the tail and wakes one waiting consumer.
func (q *SingleLockQueue[T]) Push(v T) {
	// Allocate the handle before taking the lock.
	h := &v

	q.mu.Lock()
	q.buf.PushBack(h)
	q.mu.Unlock()

	q.notEmpty.Signal()
}

// Pop removes and returns the head element.
// Returns ErrEmptyQueue if the queue is empty.
func (q *SingleLockQueue[T]) Pop() (T, error) {
	h, err := q.PopHandle()
	if err != nil {
		var zero T
		return zero, err
	}
	return *h, nil
}

// PopHandle removes the head element and returns a handle to it.
// Returns ErrEmptyQueue if the queue is empty.
func (q *SingleLockQueue[T]) PopHandle() (*T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.buf.Len() == 0 {
		return nil, ErrEmptyQueue
	}
	return q.popLocked(), nil
}

// TryPop removes and returns the head element.
// Returns false if the queue is empty.
func (q *SingleLockQueue[T]) TryPop() (T, bool) {
	if h := q.TryPopHandle(); h != nil {
		return *h, true
	}
	var zero T
	return zero, false
}

// TryPopHandle removes the head element and returns a handle to it.
// Returns nil if the queue is empty.
func (q *SingleLockQueue[T]) TryPopHandle() *T {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.buf.Len() == 0 {
		return nil
	}
	return q.popLocked()
}

// WaitAndPop blocks until the queue is non-empty, then removes and
// returns the head element.
func (q *SingleLockQueue[T]) WaitAndPop() T {
	return *q.WaitAndPopHandle()
}

// WaitAndPopHandle blocks until the queue is non-empty, then removes the
// head element and returns a handle to it.
func (q *SingleLockQueue[T]) WaitAndPopHandle() *T {
	q.mu.Lock()
	defer q.mu.Unlock()

	// Re-check after every wake: Wait may return spuriously and another
	// consumer may have taken the element first.
	for q.buf.Len() == 0 {
		q.notEmpty.Wait()
	}
	return q.popLocked()
}

// WaitAndPopContext blocks until the queue is non-empty or ctx ends.
// Returns ctx.Err() if ctx ends first; nothing is removed in that case.
func (q *SingleLockQueue[T]) WaitAndPopContext(ctx context.Context) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	// Cancellation wakes every waiter; each re-checks its own context.
	stop := context.AfterFunc(ctx, func() {
		q.mu.Lock()
		q.notEmpty.Broadcast()
		q.mu.Unlock()
	})
	defer stop()

	q.mu.Lock()
	defer q.mu.Unlock()

	for q.buf.Len() == 0 {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		q.notEmpty.Wait()
	}
	return *q.popLocked(), nil
}

// Size returns the number of elements in the queue.
func (q *SingleLockQueue[T]) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.buf.Len()
}

// Empty reports whether the queue holds no elements.
func (q *SingleLockQueue[T]) Empty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.buf.Len() == 0
}

// popLocked removes the head handle. q.mu must be held and the buffer
// must be non-empty.
func (q *SingleLockQueue[T]) popLocked() *T {
	v, _ := q.buf.PopFront()
	return v.(*T)
}
