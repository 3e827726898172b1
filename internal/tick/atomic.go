package tick

import (
	"sync/atomic"
	"time"
)

// AtomicTicker compares monotonic offsets from a fixed epoch, so a Tick
// call costs one clock read and one atomic load when nothing is due.
type AtomicTicker struct {
	epoch    time.Time
	interval int64 // nanoseconds
	lastTick atomic.Int64
	ticks    atomic.Uint64
}

// NewAtomicTicker creates an AtomicTicker with the specified interval.
// A non-positive interval falls back to DefaultInterval.
func NewAtomicTicker(interval time.Duration) *AtomicTicker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &AtomicTicker{
		epoch:    time.Now(),
		interval: int64(interval),
	}
}

func (a *AtomicTicker) now() int64 {
	return int64(time.Since(a.epoch))
}

// Tick returns true if the interval has elapsed since the last tick.
// It is safe for concurrent use; the compare-and-swap hands each
// interval to a single caller.
func (a *AtomicTicker) Tick() bool {
	now := a.now()
	last := a.lastTick.Load()

	if now-last >= a.interval {
		if a.lastTick.CompareAndSwap(last, now) {
			a.ticks.Add(1)
			return true
		}
	}
	return false
}

// Interval returns the ticker's interval.
func (a *AtomicTicker) Interval() time.Duration {
	return time.Duration(a.interval)
}

// Ticks returns how many intervals have fired since creation.
func (a *AtomicTicker) Ticks() uint64 {
	return a.ticks.Load()
}
