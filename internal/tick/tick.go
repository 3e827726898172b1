// Package tick provides a periodic trigger cheap enough to poll from a
// queue's push or pop loop.
//
// The harness polls an AtomicTicker between queue operations and logs
// progress whenever it fires, so the check must not reach the runtime
// timer heap on every call.
package tick

import "time"

// DefaultInterval is the progress interval used when none is configured.
const DefaultInterval = time.Second
