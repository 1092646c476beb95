package internal

// NewSignal creates a value node: a leaf holding a directly writable value.
func (r *Runtime) NewSignal(initial any, opts NodeOptions) *Node {
	n := r.newNode(KindValue, opts)
	n.value = initial
	n.version = r.clock.NextVersion()
	n.state = StateActual

	return n
}

// Read returns the node's value, bringing it up to date first,
// and registers it as a dependency of the current evaluation.
func (n *Node) Read() (any, error) {
	if n.running {
		panic(ErrCycle)
	}

	r := n.rt

	n.actualize()
	r.tracker.Track(n)

	// a read outside of everything is its own outermost transaction
	if n.kind != KindValue && r.tracker.Current() == nil && !r.batcher.IsBatching() {
		r.flush()
	}

	return n.value, n.err
}

// Write stores a new value and invalidates the observers.
// It returns false when the value is equal to the current one, in which case nothing happens.
func (n *Node) Write(v any) bool {
	r := n.rt

	if r.config.RequireTransaction && !r.batcher.IsBatching() {
		panic(ErrWriteOutsideTransaction)
	}

	if n.equals(n.value, v) {
		return false
	}

	n.value = v
	n.version = r.clock.NextVersion()

	// a value always definitely changed, its direct observers are stale
	for l := n.subsHead; l != nil; l = l.nextSub {
		l.sub.invalidate(StateStale, l)
	}

	r.flush()

	return true
}
