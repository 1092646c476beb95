package atom

// KeepAlive observes r until the returned effect is disposed,
// so a computed stays memoized even when nothing else reads it.
func KeepAlive[T any](r Reader[T]) *Effect {
	return NewEffect(func(*Effect) {
		r.Read()
	}, EffectOptions{Runtime: r.Runtime()})
}

// Hooks is a pair of lifecycle hooks, ready to be set in Options or EffectOptions.
type Hooks struct {
	OnBecomeObserved   func()
	OnBecomeUnobserved func()
}

type debouncer struct {
	rt *Runtime

	onObserved   func()
	onUnobserved func()

	balance   int
	observed  bool
	scheduled bool
}

// DebouncedHooks returns hooks that only call onObserved and onUnobserved
// once the outermost transaction completes, and only if the observed status
// actually changed across it. A node unobserved then observed again within
// one transaction calls neither.
func DebouncedHooks(r *Runtime, onObserved, onUnobserved func()) Hooks {
	if r == nil {
		r = Default()
	}

	d := &debouncer{rt: r, onObserved: onObserved, onUnobserved: onUnobserved}

	return Hooks{
		OnBecomeObserved: func() {
			d.balance++
			d.schedule()
		},
		OnBecomeUnobserved: func() {
			d.balance--
			d.schedule()
		},
	}
}

func (d *debouncer) schedule() {
	if d.scheduled {
		return
	}
	d.scheduled = true

	d.rt.AtTransactionEnd(d.settle)
}

func (d *debouncer) settle() {
	d.scheduled = false

	observed := d.balance > 0
	if observed == d.observed {
		return
	}
	d.observed = observed

	if observed && d.onObserved != nil {
		d.onObserved()
	} else if !observed && d.onUnobserved != nil {
		d.onUnobserved()
	}
}
