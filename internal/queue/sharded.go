package queue

import (
	"context"
	"sync/atomic"

	"code.hybscloud.com/spin"
	"github.com/pkg/errors"
	ring "github.com/randomizedcoder/go-lock-free-ring"
)

// ShardedQueue adapts a sharded lock-free MPSC ring to the Queue
// contract.
//
// The ring is split into shards; a producer id picks the shard. Reads
// are single-consumer, so consumers take turns on an atomic token that
// is held only for the duration of one ring read.
//
// Ordering:
//   - With one shard the queue is FIFO across all producers.
//   - With several shards, values pushed under one producer id are
//     popped in push order; values from different ids may interleave.
type ShardedQueue[T any] struct {
	ring     *ring.ShardedRing
	capacity int
	shards   int

	count atomic.Int64

	_pad [56]byte //nolint:unused

	// reading is the consumer token.
	reading atomic.Bool
}

// NewSharded creates a ShardedQueue with the given total capacity split
// across shards.
func NewSharded[T any](capacity, shards int) (*ShardedQueue[T], error) {
	if shards < 1 {
		return nil, errors.Wrapf(ErrCapacity, "sharded queue needs >= 1 shard, got %d", shards)
	}
	if shards&(shards-1) != 0 {
		return nil, errors.Wrapf(ErrCapacity, "sharded queue needs a power-of-2 shard count, got %d", shards)
	}
	if capacity < shards {
		return nil, errors.Wrapf(ErrCapacity, "sharded capacity %d smaller than shard count %d", capacity, shards)
	}

	r, err := ring.NewShardedRing(uint64(capacity), uint64(shards))
	if err != nil {
		return nil, errors.Wrapf(err, "create sharded ring (capacity=%d, shards=%d)", capacity, shards)
	}
	return &ShardedQueue[T]{
		ring:     r,
		capacity: capacity,
		shards:   shards,
	}, nil
}

// TryPushFrom appends v to the shard of producer.
// Returns false if that shard is full.
func (q *ShardedQueue[T]) TryPushFrom(producer uint64, v T) bool {
	q.count.Add(1)
	if !q.ring.Write(producer, v) {
		q.count.Add(-1)
		return false
	}
	return true
}

// PushFrom appends v to the shard of producer, spinning while it is full.
func (q *ShardedQueue[T]) PushFrom(producer uint64, v T) {
	sw := spin.Wait{}
	for !q.TryPushFrom(producer, v) {
		sw.Once()
	}
}

// TryPush appends v as producer 0.
// Returns false if the shard is full. Producer 0 owns one shard, so
// pushes through this method alone fill at most ShardCap elements.
func (q *ShardedQueue[T]) TryPush(v T) bool {
	return q.TryPushFrom(0, v)
}

// Push appends v as producer 0, spinning while the shard is full.
// Use PushFrom to spread pushes over all shards.
func (q *ShardedQueue[T]) Push(v T) {
	q.PushFrom(0, v)
}

// TryPop removes and returns an element.
// Returns false if every shard is empty.
func (q *ShardedQueue[T]) TryPop() (T, bool) {
	sw := spin.Wait{}
	for !q.reading.CompareAndSwap(false, true) {
		sw.Once()
	}
	item, ok := q.ring.TryRead()
	q.reading.Store(false)

	if !ok {
		var zero T
		return zero, false
	}
	q.count.Add(-1)
	return item.(T), true
}

// TryPopHandle is TryPop returning a handle, nil if the queue is empty.
func (q *ShardedQueue[T]) TryPopHandle() *T {
	if v, ok := q.TryPop(); ok {
		return &v
	}
	return nil
}

// WaitAndPop spins until an element can be read.
func (q *ShardedQueue[T]) WaitAndPop() T {
	sw := spin.Wait{}
	for {
		if v, ok := q.TryPop(); ok {
			return v
		}
		sw.Once()
	}
}

// WaitAndPopHandle is WaitAndPop returning a handle.
func (q *ShardedQueue[T]) WaitAndPopHandle() *T {
	v := q.WaitAndPop()
	return &v
}

// WaitAndPopContext spins until an element can be read or ctx ends.
func (q *ShardedQueue[T]) WaitAndPopContext(ctx context.Context) (T, error) {
	sw := spin.Wait{}
	for {
		if v, ok := q.TryPop(); ok {
			return v, nil
		}
		if err := ctx.Err(); err != nil {
			var zero T
			return zero, err
		}
		sw.Once()
	}
}

// Empty reports whether the queue holds no elements.
func (q *ShardedQueue[T]) Empty() bool {
	return q.count.Load() <= 0
}

// Cap returns the total capacity requested at construction, summed
// over all shards. A single producer id can fill only ShardCap of it.
func (q *ShardedQueue[T]) Cap() int {
	return q.capacity
}

// ShardCap returns the capacity of one shard.
func (q *ShardedQueue[T]) ShardCap() int {
	return q.capacity / q.shards
}

// Shards returns the number of shards.
func (q *ShardedQueue[T]) Shards() int {
	return q.shards
}
