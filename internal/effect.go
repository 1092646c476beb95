package internal

// NewEffect creates an impure derivation, Start has to be called for it to run.
func (r *Runtime) NewEffect(effect func(), opts NodeOptions) *Node {
	n := r.newNode(KindEffect, opts)
	n.fn = func() any {
		effect()
		return nil
	}
	n.scheduler = opts.Scheduler
	n.state = StateStale
	n.detached = opts.Detached

	return n
}

// Start makes the effect observed and runs it for the first time through the scheduler,
// right away even inside a transaction.
func (n *Node) Start() {
	if n.observed || n.disposed {
		return
	}

	r := n.rt

	// effects are observed from the start until disposed
	n.observed = true
	r.fireHook(n, n.onObserved)

	// owned by the node being evaluated, disposed when it stops creating us
	if !n.detached {
		r.tracker.Track(n)
	}

	n.schedule()
	r.flush()
}

// runPending is the entry queued when the effect gets invalidated.
func (n *Node) runPending() {
	n.pending = false
	n.schedule()
}

// schedule hands the effect run to the scheduler, or runs it right away without one.
func (n *Node) schedule() {
	if n.disposed || n.state == StateActual {
		return
	}

	// asked to run again from its own run
	if n.running {
		n.requeue(StateStale)
		return
	}

	if n.scheduler == nil {
		n.actualize()
		return
	}

	n.rt.guard(n, func() {
		n.scheduler(func() {
			if n.disposed {
				return
			}
			n.actualize()
		})
	})
}

func (n *Node) settleEffect(err error) {
	if err != nil {
		n.rt.enqueueError(&EffectError{Cause: err, Node: n})
	}

	// invalidated during its own run, it runs again in the same flush
	if n.pending {
		n.state = max(n.rerun, StatePossiblyStale)
	} else {
		n.state = StateActual
	}

	// disposed while running
	if n.disposed {
		n.teardown()
	}
}

// Invalidate marks the effect stale. When force is set it runs right away,
// even inside a transaction, otherwise it is queued for the next flush.
func (n *Node) Invalidate(force bool) {
	if n.disposed {
		return
	}
	n.state = StateStale

	if force {
		n.schedule()
		n.rt.reportErrors()
		return
	}

	n.requeue(StateStale)
	n.rt.flush()
}

// Dispose stops the effect for good.
// Disposing a running effect is deferred until its run completes.
func (n *Node) Dispose() {
	n.dispose()
	n.rt.reportErrors()
}

func (n *Node) dispose() {
	if n.disposed {
		return
	}
	n.disposed = true

	if n.running {
		return
	}

	n.teardown()
}

func (n *Node) IsDisposed() bool {
	return n.disposed
}

func (n *Node) IsRunning() bool {
	return n.running
}

// teardown releases every dependency of a disposed effect.
func (n *Node) teardown() {
	if !n.observed {
		return
	}
	n.observed = false

	r := n.rt
	r.log.Debug("effect disposed", "node", n.name)

	if n.cleanups != nil {
		r.tracker.RunUntracked(func() { n.cleanups.Run(r.enqueueError) })
	}

	n.detachAll()
	n.deps = nil
	n.depIndex = nil

	r.fireHook(n, n.onUnobserved)
}

// OnCleanup registers fn to run before the next run of the effect, or when it is disposed.
func (n *Node) OnCleanup(fn func()) {
	if n.cleanups == nil {
		n.cleanups = NewCleanups()
	}
	n.cleanups.Add(fn)
}
