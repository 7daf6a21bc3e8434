package state

import "sync/atomic"

func (c *Canvas) nextRevision() uint64 {
	return atomic.AddUint64(&c.revision, 1)
}

// Revision returns the number of changes published so far.
func (c *Canvas) Revision() uint64 {
	return atomic.LoadUint64(&c.revision)
}

// emit publishes op to the observer. It must be called without c.mu held
// so observers may call back into the canvas.
func (c *Canvas) emit(op Op) {
	op.Revision = c.nextRevision()
	c.obsMu.RLock()
	fn := c.onChange
	c.obsMu.RUnlock()
	if fn != nil {
		fn(op)
	}
}
