// Package queue provides thread-safe FIFO queues for multi-producer
// multi-consumer use.
//
// This package offers five implementations of the Queue interface:
//   - ChannelQueue: buffered channel, the standard library reference
//   - SingleLockQueue: one mutex around a deque, the baseline design
//   - DualLockQueue: linked list with separate head and tail locks
//   - LockFreeQueue: adapter over a bounded lock-free MPMC ring (lfq)
//   - ShardedQueue: adapter over a bounded lock-free sharded MPSC ring
//
// # Operation forms
//
// Every pop comes in a by-value form and a handle form. The handle form
// returns a *T that the caller owns; a nil handle means "no element".
//
//   - TryPop / TryPopHandle never block and never fail
//   - WaitAndPop / WaitAndPopHandle block until an element arrives
//   - Pop / PopHandle (SingleLockQueue only) return ErrEmptyQueue
//
// # Identity
//
// Queues embed mutexes, condition variables and atomics. Always use the
// pointer returned by the constructor; never copy a queue value.
//
// # Blocking
//
// WaitAndPop blocks forever on a queue nobody pushes to. Use
// WaitAndPopContext when the wait must be bounded or cancelled.
package queue

import "context"

// Queue is a multi-producer multi-consumer FIFO queue.
//
// Values pushed by one goroutine are popped in the order that goroutine
// pushed them. All methods are safe for concurrent use.
type Queue[T any] interface {
	// Push appends v at the tail.
	// Bounded implementations spin until space is available.
	Push(v T)

	// TryPop removes and returns the head element.
	// Returns false if the queue is empty.
	TryPop() (T, bool)

	// TryPopHandle removes the head element and returns a handle to it.
	// Returns nil if the queue is empty.
	TryPopHandle() *T

	// WaitAndPop blocks until the queue is non-empty, then removes
	// and returns the head element.
	WaitAndPop() T

	// WaitAndPopHandle is WaitAndPop returning a handle.
	WaitAndPopHandle() *T

	// WaitAndPopContext is WaitAndPop bounded by ctx. It returns
	// ctx.Err() without consuming anything if ctx ends first.
	WaitAndPopContext(ctx context.Context) (T, error)

	// Empty reports whether the queue holds no elements.
	Empty() bool
}

// Sizer is implemented by queues that can count their elements exactly.
type Sizer interface {
	// Size returns the current number of elements.
	Size() int
}

// Popper is implemented by queues whose non-blocking pop reports
// emptiness as an error.
type Popper[T any] interface {
	// Pop removes and returns the head element.
	// Returns ErrEmptyQueue if the queue is empty.
	Pop() (T, error)

	// PopHandle removes the head element and returns a handle to it.
	// Returns ErrEmptyQueue if the queue is empty.
	PopHandle() (*T, error)
}

// Drainer is implemented by lock-free queues that need a hint once all
// producers are finished before consumers can take every element.
type Drainer interface {
	// Drain declares that no further Push will happen.
	Drain()
}
