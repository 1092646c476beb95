package internal

type Clock struct {
	// incremented each time a node's value changes
	// used to compare the version a dependency had when it was read
	version uint64

	// incremented each time a node evaluates
	// used to tag the links confirmed by the evaluation
	run uint64
}

func NewClock() *Clock {
	return &Clock{}
}

func (c *Clock) NextVersion() uint64 {
	c.version++
	return c.version
}

func (c *Clock) NextRun() uint64 {
	c.run++
	return c.run
}

func (r *Runtime) enqueueEffect(n *Node) {
	if n.pending || n.disposed {
		return
	}
	n.pending = true

	r.queue.Enqueue(n.runPending)
}

func (r *Runtime) enqueueError(err error) {
	r.errors.Enqueue(err)
}

// flush runs the pending effects then reports the collected errors.
// Does nothing while a batch is open, the outermost batch will flush.
func (r *Runtime) flush() {
	if r.batcher.IsBatching() {
		return
	}

	if r.queue.Len() > 0 {
		r.log.Debug("flush", "pending", r.queue.Len())
		r.tracker.RunUntracked(func() { r.batcher.Batch(r.queue.Drain, nil) })
	}

	r.reportErrors()
}

func (r *Runtime) reportErrors() {
	if r.batcher.IsBatching() || r.errors.Len() == 0 {
		return
	}

	err := r.errors.Take()
	r.log.Debug("reporting errors", "error", err)

	if r.config.ErrorHandler != nil {
		r.config.ErrorHandler(err)
		return
	}

	panic(err)
}

// AtTransactionEnd runs fn right away when no transaction is open,
// otherwise once the outermost transaction completes.
func (r *Runtime) AtTransactionEnd(fn func()) {
	if !r.batcher.IsBatching() {
		fn()
		return
	}

	r.queue.Enqueue(func() {
		r.tracker.RunUntracked(func() { r.guard(nil, fn) })
	})
}
