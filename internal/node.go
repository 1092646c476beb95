package internal

import "fmt"

type Kind uint8

const (
	KindValue Kind = iota
	KindComputed
	KindEffect
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindComputed:
		return "computed"
	case KindEffect:
		return "effect"
	}
	return "unknown"
}

// State is the invalidation status of a node.
// It only ever escalates through invalidate and goes back to Actual through actualize.
type State uint8

const (
	StateActual State = iota
	StatePossiblyStale
	StateStale
)

func (s State) String() string {
	switch s {
	case StateActual:
		return "actual"
	case StatePossiblyStale:
		return "possibly-stale"
	case StateStale:
		return "stale"
	}
	return "unknown"
}

type NodeOptions struct {
	Name   string
	Equals func(a, b any) bool

	OnBecomeObserved   func()
	OnBecomeUnobserved func()

	// disables the zero-dependency diagnostic
	DisableStaleCheck bool

	// effects only
	Scheduler func(run func())
	Detached  bool
}

// Node is a value, computed or effect node of the graph.
// All three kinds share the same state machine, the kind only changes how a node recomputes.
type Node struct {
	rt *Runtime

	id   uint64
	kind Kind
	name string

	value   any
	err     error
	state   State
	version uint64

	fn     func() any
	equals func(a, b any) bool

	onObserved   func()
	onUnobserved func()
	checkStale   bool

	// dependencies of the last evaluation, in read order
	deps []*link
	// same links keyed by dependency, for the non positional lookup
	depIndex map[*Node]*link

	// bookkeeping of the evaluation in progress
	prevDeps []*link
	matched  int
	run      uint64
	running  bool

	// observers, in subscription order
	subsHead  *link
	subsTail  *link
	subsCount int

	observed bool

	// effects only
	scheduler func(run func())
	detached  bool
	pending   bool
	disposed  bool
	cleanups  *Cleanups

	// highest state received while running, restored once the run completes
	rerun State
}

func (r *Runtime) newNode(kind Kind, opts NodeOptions) *Node {
	r.nodes++

	n := &Node{
		rt:   r,
		id:   r.nodes,
		kind: kind,
		name: opts.Name,

		equals: opts.Equals,

		onObserved:   opts.OnBecomeObserved,
		onUnobserved: opts.OnBecomeUnobserved,
		checkStale:   !opts.DisableStaleCheck,
	}

	if n.equals == nil {
		n.equals = Identical
	}

	if n.name == "" {
		n.name = fmt.Sprintf("%s#%d", kind, n.id)
	}

	return n
}

func (n *Node) Kind() Kind       { return n.kind }
func (n *Node) Name() string     { return n.name }
func (n *Node) State() State     { return n.state }
func (n *Node) Version() uint64  { return n.version }
func (n *Node) IsObserved() bool { return n.observed }
func (n *Node) Observers() int   { return n.subsCount }
func (n *Node) Runtime() *Runtime {
	return n.rt
}

func (n *Node) String() string {
	return n.name
}

// Dependencies returns the nodes read during the last completed evaluation, in read order.
func (n *Node) Dependencies() []*Node {
	deps := make([]*Node, 0, len(n.deps))
	for _, l := range n.deps {
		deps = append(deps, l.dep)
	}
	return deps
}

// Value returns the stored value without tracking nor actualizing.
func (n *Node) Value() (any, error) {
	return n.value, n.err
}

// actualize brings the node up to date with its dependencies.
func (n *Node) actualize() {
	if n.state == StateActual || n.disposed {
		return
	}

	if n.state == StatePossiblyStale {
		for _, l := range n.deps {
			// effects hold no value, they run through their own schedule
			if l.dep.kind != KindEffect {
				l.dep.actualize()
			}

			if l.dep.version != l.version {
				n.state = StateStale
			}
			// recomputed dependencies may have escalated us directly
			if n.state == StateStale {
				break
			}
		}

		if n.state == StatePossiblyStale {
			// an unobserved node receives no invalidation, it has to check again next time
			if n.observed {
				n.state = StateActual
			}
			return
		}
	}

	n.recompute()
}

// invalidate escalates the node's state and pushes PossiblyStale to its observers
// the first time the node leaves Actual. via is the link the invalidation came through,
// nil when it was not sent by a dependency.
func (n *Node) invalidate(state State, via *link) {
	if n.disposed {
		return
	}

	if n.kind == KindEffect {
		if n.running {
			n.invalidateRunning(state, via)
			return
		}
		n.requeue(state)
	}

	prev := n.state
	if state > n.state {
		n.state = state
	}

	// effects hold no value, there is nothing to propagate
	if prev == StateActual && n.kind != KindEffect {
		for l := n.subsHead; l != nil; l = l.nextSub {
			l.sub.invalidate(StatePossiblyStale, l)
		}
	}
}

// invalidateRunning handles an invalidation reaching an effect in the middle of its run.
// A computed the run has not read yet will be brought up to date by that read,
// so only values and dependencies already read by this run queue another run.
func (n *Node) invalidateRunning(state State, via *link) {
	if via != nil && via.dep.kind != KindValue && via.run != n.run {
		return
	}

	n.requeue(state)
}

// requeue queues the effect, keeping the highest state it was sent.
func (n *Node) requeue(state State) {
	if state > n.rerun {
		n.rerun = state
	}
	n.rt.enqueueEffect(n)
}

func (n *Node) recompute() {
	switch n.kind {
	case KindComputed:
		n.evaluate()
	case KindEffect:
		n.rt.batcher.Batch(n.evaluate, n.rt.flush)
	}
}

// evaluate runs the node's function with the node as the current evaluation,
// then reconciles its dependency edges.
func (n *Node) evaluate() {
	r := n.rt

	// tracked nodes are the ones someone will keep listening to
	tracked := r.tracker.Current() != nil || n.observed || n.kind == KindEffect

	if n.cleanups != nil {
		r.tracker.RunUntracked(func() { n.cleanups.Run(r.enqueueError) })
	}

	n.prevDeps = n.deps
	n.deps = make([]*link, 0, len(n.prevDeps))
	n.matched = 0
	n.run = r.clock.NextRun()
	n.running = true

	// any invalidation queued before this run is satisfied by it
	n.pending = false
	n.rerun = StateActual

	var value any
	err := r.tracker.RunWith(n, func() { value = n.fn() })

	n.running = false
	n.prune()

	if err != nil {
		r.log.Debug("derivation failed", "node", n.name, "error", err)
	}

	if err == nil && tracked && n.checkStale && !n.disposed && len(n.deps) == 0 {
		r.log.Debug("stale derivation", "node", n.name)
		r.enqueueError(&StaleDerivationError{Node: n})
	}

	if n.kind == KindEffect {
		n.settleEffect(err)
		return
	}

	n.settleComputed(value, err)
}

// prune drops the previous dependencies that were not read again by the last evaluation.
func (n *Node) prune() {
	for _, l := range n.prevDeps[n.matched:] {
		if l.run != n.run {
			n.dropLink(l)
		}
	}

	n.prevDeps = nil
	n.matched = 0
}

// becomeObserved is called when the node gains its first observer.
func (n *Node) becomeObserved() {
	if n.observed {
		return
	}
	n.observed = true

	if n.kind == KindComputed {
		for _, l := range n.deps {
			n.attach(l)
		}

		// nothing was pushed to us while unobserved, make sure we are actual before listening
		n.actualize()
	}

	n.rt.fireHook(n, n.onObserved)
}

// becomeUnobserved is called when the node loses its last observer.
func (n *Node) becomeUnobserved() {
	if n.kind == KindEffect {
		n.dispose()
		return
	}

	if !n.observed {
		return
	}
	n.observed = false

	if n.kind == KindComputed {
		n.detachAll()

		if n.state == StateActual {
			n.state = StatePossiblyStale
		}
	}

	n.rt.fireHook(n, n.onUnobserved)
}

func (n *Node) detachAll() {
	for _, l := range n.deps {
		n.detach(l)
	}
	// the evaluation in progress may still hold links of the previous run
	for _, l := range n.prevDeps {
		n.detach(l)
	}
}
