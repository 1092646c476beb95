package internal

import "log/slog"

type Config struct {
	// panic with ErrWriteOutsideTransaction on writes done outside a transaction
	RequireTransaction bool

	// receives the errors collected during a flush, instead of panicking with them
	ErrorHandler func(error)

	Logger *slog.Logger
}

func defaultConfig() Config {
	return Config{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// Runtime is the evaluation context of a graph.
// It is not safe for concurrent use, every node created in it must be used from one goroutine at a time.
type Runtime struct {
	config Config
	log    *slog.Logger

	clock   *Clock
	tracker *Tracker
	batcher *Batcher
	queue   *PendingQueue
	errors  *ErrorQueue

	// number of nodes created, used to name them
	nodes uint64
}

func NewRuntime(opts ...func(*Config)) *Runtime {
	r := &Runtime{
		config: defaultConfig(),

		clock:   NewClock(),
		tracker: NewTracker(),
		batcher: NewBatcher(),
		queue:   NewPendingQueue(),
		errors:  NewErrorQueue(),
	}
	r.Configure(opts...)

	return r
}

func (r *Runtime) Configure(opts ...func(*Config)) {
	for _, opt := range opts {
		opt(&r.config)
	}

	if r.config.Logger == nil {
		r.config.Logger = slog.New(slog.DiscardHandler)
	}
	r.log = r.config.Logger
}

func (r *Runtime) Logger() *slog.Logger {
	return r.log
}

// Current returns the node being evaluated, nil outside of any tracked evaluation.
func (r *Runtime) Current() *Node {
	return r.tracker.Current()
}

func (r *Runtime) IsBatching() bool {
	return r.batcher.IsBatching()
}

// Untrack runs fn without registering dependencies, transactions are left untouched.
func (r *Runtime) Untrack(fn func()) {
	r.tracker.RunUntracked(fn)
}

// guard runs fn and queues its panic, if any, as an effect error.
func (r *Runtime) guard(n *Node, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			r.enqueueError(&EffectError{Cause: asError(rec), Node: n})
		}
	}()

	fn()
}

func (r *Runtime) fireHook(n *Node, hook func()) {
	if hook == nil {
		return
	}

	r.tracker.RunUntracked(func() { r.guard(n, hook) })
}
