package atom

import "github.com/AnatoleLucet/atom/internal"

// EffectOptions configures an effect.
type EffectOptions struct {
	// Runtime the effect lives in, defaults to the calling goroutine's runtime.
	Runtime *Runtime

	// Name used in errors and logs.
	Name string

	// Scheduler receives the run of the effect each time it has to re-run.
	// It may call it right away (the default) or later, e.g. on the next tick of a loop.
	Scheduler func(run func())

	OnBecomeObserved   func()
	OnBecomeUnobserved func()

	// DisableStaleCheck turns off the error reported when a run reads no node.
	DisableStaleCheck bool

	// Detached effects are not owned by the computed or effect they are created in.
	// Owned effects are disposed as soon as their owner re-runs without creating them again.
	Detached bool
}

func (o EffectOptions) node() internal.NodeOptions {
	return internal.NodeOptions{
		Name:               o.Name,
		Scheduler:          o.Scheduler,
		OnBecomeObserved:   o.OnBecomeObserved,
		OnBecomeUnobserved: o.OnBecomeUnobserved,
		DisableStaleCheck:  o.DisableStaleCheck,
		Detached:           o.Detached,
	}
}

type Effect struct {
	node    *internal.Node
	initial bool
}

// NewEffect creates an effect and runs it right away.
// It re-runs whenever one of the nodes it read changes, until disposed.
func NewEffect(fn func(e *Effect), opts ...EffectOptions) *Effect {
	o := first(opts)

	e := &Effect{initial: true}
	e.node = runtimeOf(o.Runtime).NewEffect(func() {
		fn(e)
		e.initial = false
	}, o.node())

	e.node.Start()

	return e
}

// Dispose stops the effect for good. It can be called from the effect itself.
func (e *Effect) Dispose() { e.node.Dispose() }

// Invalidate asks for a re-run. With force, the effect runs now even inside a transaction,
// otherwise it runs when the outermost transaction completes.
func (e *Effect) Invalidate(force bool) { e.node.Invalidate(force) }

// IsInitial is true until the first run completes.
func (e *Effect) IsInitial() bool { return e.initial }

func (e *Effect) IsDisposed() bool { return e.node.IsDisposed() }

// OnCleanup registers fn to be called before the next run, or when the effect is disposed.
func (e *Effect) OnCleanup(fn func()) { e.node.OnCleanup(fn) }

func (e *Effect) Runtime() *Runtime { return &Runtime{e.node.Runtime()} }

func (e *Effect) String() string { return e.node.String() }
