package internal

// link is a dependency edge between a subscriber and one of its dependencies.
// The subscriber's deps own the link, the dependency only keeps it in its observers list
// while the subscriber is observed.
type link struct {
	dep *Node
	sub *Node

	// dependency version at read time
	version uint64
	// subscriber evaluation that last confirmed this link
	run uint64

	// true while the link is part of dep's observers
	attached bool

	prevSub *link
	nextSub *link
}

// attach adds the link to its dependency's observers.
func (n *Node) attach(l *link) {
	if l.attached {
		return
	}
	l.attached = true

	dep := l.dep
	if dep.subsHead == nil {
		dep.subsHead = l
	} else {
		dep.subsTail.nextSub = l
		l.prevSub = dep.subsTail
	}
	dep.subsTail = l
	dep.subsCount++

	if dep.subsCount == 1 {
		dep.becomeObserved()
	}
}

// detach removes the link from its dependency's observers,
// releasing the dependency if it was its last observer.
func (n *Node) detach(l *link) {
	if !l.attached {
		return
	}
	l.attached = false

	dep := l.dep
	if l.prevSub != nil {
		l.prevSub.nextSub = l.nextSub
	} else {
		dep.subsHead = l.nextSub
	}
	if l.nextSub != nil {
		l.nextSub.prevSub = l.prevSub
	} else {
		dep.subsTail = l.prevSub
	}
	l.prevSub = nil
	l.nextSub = nil
	dep.subsCount--

	if dep.subsCount == 0 {
		dep.becomeUnobserved()
	}
}

// dropLink forgets a dependency entirely.
func (n *Node) dropLink(l *link) {
	delete(n.depIndex, l.dep)
	n.detach(l)
}
