package cancel

import (
	"sync/atomic"
	"time"
)

// AtomicCanceler is a stop flag held in an atomic.Bool.
//
// Done() is a single atomic load, cheap enough to call between every
// push or pop in a throughput loop.
type AtomicCanceler struct {
	done atomic.Bool
}

// NewAtomic creates a new AtomicCanceler.
func NewAtomic() *AtomicCanceler {
	return &AtomicCanceler{}
}

// Done returns true if Cancel has been called or the deadline set by
// CancelAfter has passed.
func (a *AtomicCanceler) Done() bool {
	return a.done.Load()
}

// Cancel fires the stop signal.
func (a *AtomicCanceler) Cancel() {
	a.done.Store(true)
}

// CancelAfter fires the stop signal once d has elapsed.
// The returned function stops the timer; it reports false if the
// signal already fired.
func (a *AtomicCanceler) CancelAfter(d time.Duration) (stop func() bool) {
	t := time.AfterFunc(d, a.Cancel)
	return t.Stop
}
