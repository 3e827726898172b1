// Package cancel provides stop signals for producer and consumer loops.
//
// Harness workers poll Done() between queue operations, so the check
// must cost far less than the operation it guards:
//   - AtomicCanceler: one atomic load per check, optional deadline
//   - ContextCanceler: wraps a context.Context for callers that already
//     carry one (signal handling, test deadlines)
package cancel

// Canceler signals workers to stop.
//
// Implementations must be safe for concurrent use:
//   - Multiple goroutines may call Done() concurrently
//   - Cancel() may be called concurrently with Done()
type Canceler interface {
	// Done returns true once the stop signal has fired.
	Done() bool

	// Cancel fires the stop signal. Safe to call multiple times.
	Cancel()
}
