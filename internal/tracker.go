package internal

import "fmt"

type Tracker struct {
	// node whose function is running, reads are registered as its dependencies
	current *Node
}

func NewTracker() *Tracker {
	return &Tracker{}
}

func (t *Tracker) Current() *Node {
	return t.current
}

// RunWith runs fn with node as the current evaluation.
// Panics raised by fn are recovered and returned as the cause of the failure.
func (t *Tracker) RunWith(node *Node, fn func()) (err error) {
	prev := t.current
	t.current = node

	defer func() {
		t.current = prev

		if r := recover(); r != nil {
			err = asError(r)
		}
	}()

	fn()
	return nil
}

// RunUntracked runs fn without registering any dependency.
func (t *Tracker) RunUntracked(fn func()) {
	prev := t.current
	t.current = nil
	defer func() { t.current = prev }()

	fn()
}

// Track registers dep as a dependency of the current evaluation, if any.
func (t *Tracker) Track(dep *Node) {
	sub := t.current
	if sub == nil || sub == dep {
		return
	}

	// same dependency at the same position as the previous run: reuse the link as is
	if len(sub.deps) == sub.matched && sub.matched < len(sub.prevDeps) {
		if l := sub.prevDeps[sub.matched]; l.dep == dep {
			l.run = sub.run
			l.version = dep.version
			sub.deps = append(sub.deps, l)
			sub.matched++
			return
		}
	}

	if l, ok := sub.depIndex[dep]; ok {
		l.version = dep.version

		// read twice during this run
		if l.run == sub.run {
			return
		}

		l.run = sub.run
		sub.deps = append(sub.deps, l)
		return
	}

	l := &link{
		dep:     dep,
		sub:     sub,
		version: dep.version,
		run:     sub.run,
	}

	if sub.depIndex == nil {
		sub.depIndex = make(map[*Node]*link)
	}
	sub.depIndex[dep] = l
	sub.deps = append(sub.deps, l)

	// owned effects always attach, so a run that stops creating them disposes them
	if (sub.observed || dep.kind == KindEffect) && !sub.disposed {
		sub.attach(l)
	}
}

func asError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}
