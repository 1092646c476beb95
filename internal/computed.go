package internal

// NewComputed creates a lazily evaluated pure derivation.
// Nothing runs until the node is read.
func (r *Runtime) NewComputed(compute func() any, opts NodeOptions) *Node {
	n := r.newNode(KindComputed, opts)
	n.fn = compute
	n.state = StateStale

	return n
}

func (n *Node) settleComputed(value any, err error) {
	n.state = StateActual
	changed := err != nil || n.err != nil || !n.equals(n.value, value)

	if err != nil {
		derr, ok := err.(*DerivationError)
		if !ok {
			derr = &DerivationError{Cause: err, Node: n}
		}
		n.err = derr
		n.value = nil
	} else if changed {
		n.err = nil
		n.value = value
	}

	// nothing will push invalidations to an unobserved node, it has to check its deps on next read
	if !n.observed && n.state == StateActual {
		n.state = StatePossiblyStale
	}

	if !changed {
		return
	}

	n.version = n.rt.clock.NextVersion()

	for l := n.subsHead; l != nil; l = l.nextSub {
		l.sub.invalidate(StateStale, l)
	}
}
