package queue

import "github.com/pkg/errors"

// EmptyQueueError is returned by Pop and PopHandle on an empty queue.
//
// It is a recoverable condition: callers that expect emptiness should
// use TryPop, and callers that want to wait should use WaitAndPop.
type EmptyQueueError struct{}

func (EmptyQueueError) Error() string {
	return "queue: called pop on empty queue"
}

// ErrEmptyQueue is the EmptyQueueError value returned by Pop.
var ErrEmptyQueue error = EmptyQueueError{}

// ErrCapacity is returned by constructors given an unusable capacity
// or shard count.
var ErrCapacity = errors.New("queue: invalid capacity")

// IsEmpty reports whether err signals a pop on an empty queue.
func IsEmpty(err error) bool {
	var e EmptyQueueError
	return errors.As(err, &e)
}
