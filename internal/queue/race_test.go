//go:build race

package queue_test

// raceEnabled skips concurrent scenarios on the lock-free variants. The
// race detector cannot see acquire/release ordering between separate
// atomics and reports false positives on them.
const raceEnabled = true
