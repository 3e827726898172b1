package cancel

import "context"

// ContextCanceler adapts a context.Context to the Canceler interface.
//
// Done() is a non-blocking select on ctx.Done(). Cancelling the parent
// context also fires the signal.
type ContextCanceler struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewContext creates a ContextCanceler derived from parent.
func NewContext(parent context.Context) *ContextCanceler {
	ctx, cancel := context.WithCancel(parent)
	return &ContextCanceler{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Done returns true if the context has been cancelled.
func (c *ContextCanceler) Done() bool {
	select {
	case <-c.ctx.Done():
		return true
	default:
		return false
	}
}

// Cancel cancels the derived context.
func (c *ContextCanceler) Cancel() {
	c.cancel()
}

// Context returns the derived context, for blocking calls such as
// WaitAndPopContext that should end when the signal fires.
func (c *ContextCanceler) Context() context.Context {
	return c.ctx
}

// Forward fires dst when this canceler's context ends. The returned
// function detaches the forwarding; it reports false if dst already
// fired.
func (c *ContextCanceler) Forward(dst Canceler) (stop func() bool) {
	return context.AfterFunc(c.ctx, dst.Cancel)
}
