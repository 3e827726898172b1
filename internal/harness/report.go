package harness

import (
	"runtime"
	"time"

	"github.com/randomizedcoder/fresh-queue/internal/queue"
)

// Report summarizes one scenario run.
type Report struct {
	Scenario  string
	Producers int
	Consumers int
	Pushed    uint64
	Popped    uint64
	Elapsed   time.Duration
	// Progress counts the progress intervals that fired during the run.
	Progress uint64
}

// OpsPerSec returns pushes plus pops per second of wall time.
func (r Report) OpsPerSec() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Pushed+r.Popped) / r.Elapsed.Seconds()
}

// NsPerOp returns wall time per push or pop.
func (r Report) NsPerOp() float64 {
	ops := r.Pushed + r.Popped
	if ops == 0 {
		return 0
	}
	return float64(r.Elapsed.Nanoseconds()) / float64(ops)
}

type tryPusher interface {
	TryPush(v Item) bool
}

type producerPusher interface {
	TryPushFrom(producer uint64, v Item) bool
}

// tryPush makes one non-blocking push attempt, routing through the
// producer's shard when the queue has shards. Unbounded queues always
// accept.
func tryPush(q queue.Queue[Item], v Item) bool {
	switch p := q.(type) {
	case producerPusher:
		return p.TryPushFrom(uint64(v.Producer), v)
	case tryPusher:
		return p.TryPush(v)
	default:
		q.Push(v)
		return true
	}
}

// push retries tryPush until it succeeds or done reports true.
func push(q queue.Queue[Item], v Item, done func() bool) bool {
	for !tryPush(q, v) {
		if done() {
			return false
		}
		runtime.Gosched()
	}
	return true
}
