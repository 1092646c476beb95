package internal

// PendingQueue holds the work to run when the outermost batch completes.
// Entries queued while draining are run by the same drain.
type PendingQueue struct {
	entries []func()
}

func NewPendingQueue() *PendingQueue {
	return &PendingQueue{
		entries: make([]func(), 0),
	}
}

func (q *PendingQueue) Enqueue(fn func()) {
	q.entries = append(q.entries, fn)
}

func (q *PendingQueue) Len() int {
	return len(q.entries)
}

// Drain runs every entry in order, including the ones added while draining.
func (q *PendingQueue) Drain() {
	for i := 0; i < len(q.entries); i++ {
		entry := q.entries[i]
		q.entries[i] = nil
		entry()
	}

	q.entries = q.entries[:0]
}

type ErrorQueue struct {
	errors []error
}

func NewErrorQueue() *ErrorQueue {
	return &ErrorQueue{
		errors: make([]error, 0),
	}
}

func (q *ErrorQueue) Enqueue(err error) {
	q.errors = append(q.errors, err)
}

func (q *ErrorQueue) Len() int {
	return len(q.errors)
}

// Take empties the queue and returns its content as a single error.
func (q *ErrorQueue) Take() error {
	errs := q.errors
	q.errors = make([]error, 0)

	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return &AggregateError{Errors: errs}
	}
}
