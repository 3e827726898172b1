package queue

import (
	"context"

	"github.com/pkg/errors"
)

// ChannelQueue wraps a buffered channel as a Queue.
//
// This is the standard library approach and the reference point for the
// other implementations. Push blocks while the buffer is full; the
// runtime's channel wait queue provides the blocking pops.
type ChannelQueue[T any] struct {
	ch chan T
}

// NewChannel creates a ChannelQueue with the specified buffer size.
func NewChannel[T any](size int) (*ChannelQueue[T], error) {
	if size < 1 {
		return nil, errors.Wrapf(ErrCapacity, "channel queue needs capacity >= 1, got %d", size)
	}
	return &ChannelQueue[T]{
		ch: make(chan T, size),
	}, nil
}

// Push appends v at the tail, blocking while the buffer is full.
func (q *ChannelQueue[T]) Push(v T) {
	q.ch <- v
}

// TryPush appends v at the tail.
// Returns false if the queue is full (non-blocking).
func (q *ChannelQueue[T]) TryPush(v T) bool {
	select {
	case q.ch <- v:
		return true
	default:
		return false
	}
}

// TryPop removes and returns the head element.
// Returns false if the queue is empty (non-blocking).
func (q *ChannelQueue[T]) TryPop() (T, bool) {
	select {
	case v := <-q.ch:
		return v, true
	default:
		var zero T
		return zero, false
	}
}

// TryPopHandle removes the head element and returns a handle to it.
func (q *ChannelQueue[T]) TryPopHandle() *T {
	v, ok := q.TryPop()
	if !ok {
		return nil
	}
	return &v
}

// WaitAndPop blocks until an element arrives and returns it.
func (q *ChannelQueue[T]) WaitAndPop() T {
	return <-q.ch
}

// WaitAndPopHandle blocks until an element arrives and returns a handle.
func (q *ChannelQueue[T]) WaitAndPopHandle() *T {
	v := <-q.ch
	return &v
}

// WaitAndPopContext blocks until an element arrives or ctx ends.
func (q *ChannelQueue[T]) WaitAndPopContext(ctx context.Context) (T, error) {
	// A ready element wins over a ready ctx.
	if v, ok := q.TryPop(); ok {
		return v, nil
	}
	select {
	case v := <-q.ch:
		return v, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Empty reports whether the buffer holds no elements.
func (q *ChannelQueue[T]) Empty() bool {
	return len(q.ch) == 0
}

// Size returns the current number of items in the queue.
func (q *ChannelQueue[T]) Size() int {
	return len(q.ch)
}

// Cap returns the capacity of the queue.
func (q *ChannelQueue[T]) Cap() int {
	return cap(q.ch)
}
