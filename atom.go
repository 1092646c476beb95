package atom

import "github.com/AnatoleLucet/atom/internal"

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

func first[O any](opts []O) O {
	if len(opts) == 0 {
		var zero O
		return zero
	}

	return opts[0]
}

// Options configures a value or computed node.
type Options[T any] struct {
	// Runtime the node lives in, defaults to the calling goroutine's runtime.
	Runtime *Runtime

	// Name used in errors and logs.
	Name string

	// Equals decides whether a new value is the same as the current one,
	// in which case nothing downstream is invalidated.
	// Defaults to == for comparable values and identity for slices and maps.
	Equals func(a, b T) bool

	// OnBecomeObserved is called when the node gains its first observer.
	OnBecomeObserved func()
	// OnBecomeUnobserved is called when the node loses its last observer.
	OnBecomeUnobserved func()

	// DisableStaleCheck turns off the error reported when a tracked computed reads no node.
	DisableStaleCheck bool

	// Setter wraps the write of a value, e.g. to clamp or validate what gets stored.
	// It receives the original write and returns the one Write and Update go through.
	// Ignored by computeds.
	Setter func(write func(T) bool) func(T) bool
}

func (o Options[T]) node() internal.NodeOptions {
	opts := internal.NodeOptions{
		Name:               o.Name,
		OnBecomeObserved:   o.OnBecomeObserved,
		OnBecomeUnobserved: o.OnBecomeUnobserved,
		DisableStaleCheck:  o.DisableStaleCheck,
	}

	if eq := o.Equals; eq != nil {
		opts.Equals = func(a, b any) bool { return eq(as[T](a), as[T](b)) }
	}

	return opts
}

// Reader is implemented by every readable node.
type Reader[T any] interface {
	Read() T
	Runtime() *Runtime
}

type Value[T any] struct {
	node  *internal.Node
	write func(T) bool
}

// NewValue creates a node holding a value that can be written directly.
func NewValue[T any](initial T, opts ...Options[T]) *Value[T] {
	o := first(opts)

	v := &Value[T]{
		node: runtimeOf(o.Runtime).NewSignal(initial, o.node()),
	}

	v.write = func(value T) bool { return v.node.Write(value) }
	if o.Setter != nil {
		v.write = o.Setter(v.write)
	}

	return v
}

// Read the current value, tracking the dependency if within a computed or an effect.
func (v *Value[T]) Read() T {
	value, _ := v.node.Read()
	return as[T](value)
}

// Write a new value, invalidating its dependents.
// Reports whether the value changed. Effects run right away unless a transaction is open.
func (v *Value[T]) Write(value T) bool {
	return v.write(value)
}

// Update writes the result of fn applied to the current value, read without tracking.
func (v *Value[T]) Update(fn func(T) T) bool {
	var current T
	v.node.Runtime().Untrack(func() { current = v.Read() })

	return v.Write(fn(current))
}

func (v *Value[T]) Runtime() *Runtime { return &Runtime{v.node.Runtime()} }

func (v *Value[T]) String() string { return v.node.String() }

type Computed[T any] struct {
	node *internal.Node
}

// NewComputed creates a lazily evaluated, memoized derivation of other nodes.
// The function runs on first read and then only when one of the nodes it read changed.
// A panic inside compute is stored and raised again by every read until a later run succeeds.
func NewComputed[T any](compute func() T, opts ...Options[T]) *Computed[T] {
	o := first(opts)

	return &Computed[T]{
		runtimeOf(o.Runtime).NewComputed(func() any { return compute() }, o.node()),
	}
}

// Read the current value, tracking the dependency if within a computed or an effect.
// Panics with a *DerivationError if the last evaluation failed.
func (c *Computed[T]) Read() T {
	value, err := c.node.Read()
	if err != nil {
		panic(err)
	}

	return as[T](value)
}

// TryRead is Read returning the *DerivationError instead of panicking.
func (c *Computed[T]) TryRead() (T, error) {
	value, err := c.node.Read()
	if err != nil {
		var zero T
		return zero, err
	}

	return as[T](value), nil
}

func (c *Computed[T]) Runtime() *Runtime { return &Runtime{c.node.Runtime()} }

func (c *Computed[T]) String() string { return c.node.String() }
