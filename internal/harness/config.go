// Package harness drives queue.Queue implementations through concurrent
// scenarios and verifies what comes out.
//
// Three scenarios are provided:
//   - RunStress: fixed item count, checks conservation and per-producer order
//   - RunThroughput: fixed duration, counts operations
//   - RunPushPop: single goroutine, batched push then pop
//
// Every scenario accepts any queue.Queue[Item]; Variants lists the
// factories for the queues in this module.
package harness

import (
	"runtime"
	"time"

	"github.com/pkg/errors"

	"github.com/randomizedcoder/fresh-queue/internal/tick"
)

// ErrInvalidConfig is returned when a Config fails validation.
var ErrInvalidConfig = errors.New("harness: invalid config")

// Config holds the tunables shared by every scenario.
type Config struct {
	// Producers and Consumers are goroutine counts.
	Producers int
	Consumers int

	// ItemsPerProducer is the number of items each producer pushes in
	// RunStress and the item count of RunPushPop.
	ItemsPerProducer int

	// Capacity bounds the lock-free and channel variants.
	Capacity int

	// Shards is the shard count of the sharded variant and must be a
	// power of 2; 0 means one shard per producer, rounded up to a power
	// of 2.
	Shards int

	// Duration is how long RunThroughput keeps producers pushing.
	Duration time.Duration

	// ProgressEvery is the interval between progress log lines.
	ProgressEvery time.Duration
}

// DefaultConfig splits GOMAXPROCS evenly between producers and consumers.
func DefaultConfig() Config {
	half := runtime.GOMAXPROCS(0) / 2
	if half < 1 {
		half = 1
	}
	return Config{
		Producers:        half,
		Consumers:        half,
		ItemsPerProducer: 100_000,
		Capacity:         1024,
		Duration:         time.Second,
		ProgressEvery:    tick.DefaultInterval,
	}
}

// Validate reports the first invalid field, wrapped around ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.Producers < 1:
		return errors.Wrapf(ErrInvalidConfig, "producers must be >= 1, got %d", c.Producers)
	case c.Consumers < 1:
		return errors.Wrapf(ErrInvalidConfig, "consumers must be >= 1, got %d", c.Consumers)
	case c.ItemsPerProducer < 1:
		return errors.Wrapf(ErrInvalidConfig, "items per producer must be >= 1, got %d", c.ItemsPerProducer)
	case c.Capacity < 2:
		return errors.Wrapf(ErrInvalidConfig, "capacity must be >= 2, got %d", c.Capacity)
	case c.Shards < 0:
		return errors.Wrapf(ErrInvalidConfig, "shards must be >= 0, got %d", c.Shards)
	case c.Shards&(c.Shards-1) != 0:
		return errors.Wrapf(ErrInvalidConfig, "shards must be a power of 2, got %d", c.Shards)
	case c.shards() > c.Capacity:
		return errors.Wrapf(ErrInvalidConfig, "shards (%d) exceed capacity (%d)", c.shards(), c.Capacity)
	case c.Duration < 0:
		return errors.Wrapf(ErrInvalidConfig, "duration must be >= 0, got %v", c.Duration)
	case c.ProgressEvery < 0:
		return errors.Wrapf(ErrInvalidConfig, "progress interval must be >= 0, got %v", c.ProgressEvery)
	}
	return nil
}

func (c Config) shards() int {
	if c.Shards != 0 {
		return c.Shards
	}
	n := 1
	for n < c.Producers {
		n <<= 1
	}
	return n
}
