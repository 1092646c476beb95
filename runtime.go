package atom

import (
	"log/slog"

	"github.com/AnatoleLucet/atom/internal"
)

// Runtime owns a graph of nodes: its clock, current evaluation, pending effects and errors.
// Nodes of different runtimes must not read each other.
//
// Each goroutine has its own default runtime, used when no Runtime is given in the options.
type Runtime struct {
	rt *internal.Runtime
}

type RuntimeOption func(*internal.Config)

// WithRequireTransaction makes writes done outside a transaction panic with ErrWriteOutsideTransaction.
func WithRequireTransaction() RuntimeOption {
	return func(c *internal.Config) { c.RequireTransaction = true }
}

// WithErrorHandler receives the errors collected during a flush instead of the runtime panicking with them.
// When more than one error was collected, err is an *AggregateError.
func WithErrorHandler(handler func(err error)) RuntimeOption {
	return func(c *internal.Config) { c.ErrorHandler = handler }
}

// WithLogger sets the logger used to trace the runtime's activity at debug level.
// Discards everything by default.
func WithLogger(logger *slog.Logger) RuntimeOption {
	return func(c *internal.Config) { c.Logger = logger }
}

func NewRuntime(opts ...RuntimeOption) *Runtime {
	return &Runtime{internal.NewRuntime(configs(opts)...)}
}

// Default returns the calling goroutine's default runtime.
func Default() *Runtime {
	return &Runtime{internal.GetRuntime()}
}

// ReleaseDefault forgets the calling goroutine's default runtime, the next Default call creates a new one.
// Nodes created in the released runtime keep using it.
func ReleaseDefault() {
	internal.ReleaseRuntime()
}

func (r *Runtime) Configure(opts ...RuntimeOption) {
	r.rt.Configure(configs(opts)...)
}

// Batch runs fn as a transaction: writes inside it are applied right away
// but effects only run once the outermost transaction completes.
// Reads inside fn are not tracked.
func (r *Runtime) Batch(fn func()) {
	r.rt.Batch(fn)
}

// Untrack runs fn without registering the nodes it reads as dependencies.
func (r *Runtime) Untrack(fn func()) {
	r.rt.Untrack(fn)
}

// AtTransactionEnd runs fn once the outermost transaction completes, or right away outside of one.
func (r *Runtime) AtTransactionEnd(fn func()) {
	r.rt.AtTransactionEnd(fn)
}

func (r *Runtime) IsBatching() bool {
	return r.rt.IsBatching()
}

func (r *Runtime) Logger() *slog.Logger {
	return r.rt.Logger()
}

func runtimeOf(r *Runtime) *internal.Runtime {
	if r == nil {
		return internal.GetRuntime()
	}
	return r.rt
}

func configs(opts []RuntimeOption) []func(*internal.Config) {
	fns := make([]func(*internal.Config), 0, len(opts))
	for _, opt := range opts {
		fns = append(fns, opt)
	}
	return fns
}

// Batch runs fn as a transaction of the default runtime.
func Batch(fn func()) {
	internal.GetRuntime().Batch(fn)
}

// Transaction is Batch returning fn's result.
func Transaction[T any](fn func() T) T {
	return RuntimeTransaction(nil, fn)
}

// Untrack runs fn without tracking and returns its result.
func Untrack[T any](fn func() T) T {
	return RuntimeUntrack(nil, fn)
}

// RuntimeTransaction is Transaction on r, or on the default runtime when r is nil.
func RuntimeTransaction[T any](r *Runtime, fn func() T) T {
	var result T
	runtimeOf(r).Batch(func() { result = fn() })
	return result
}

// RuntimeUntrack is Untrack on r, or on the default runtime when r is nil.
func RuntimeUntrack[T any](r *Runtime, fn func() T) T {
	var result T
	runtimeOf(r).Untrack(func() { result = fn() })
	return result
}

// AtTransactionEnd runs fn once the default runtime's outermost transaction completes.
func AtTransactionEnd(fn func()) {
	internal.GetRuntime().AtTransactionEnd(fn)
}
