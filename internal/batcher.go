package internal

type Batcher struct {
	// each nested batch increases the depth by 1
	// if depth > 0, effects and errors are queued until the outermost batch is complete
	depth int
}

func NewBatcher() *Batcher {
	return &Batcher{
		depth: 0,
	}
}

func (b *Batcher) IsBatching() bool {
	return b.depth > 0
}

func (b *Batcher) Depth() int {
	return b.depth
}

// Batch runs fn inside a batch and calls onComplete when the outermost batch is done.
// onComplete also runs when fn panics, the panic goes on once it returns.
func (b *Batcher) Batch(fn, onComplete func()) {
	b.depth++
	defer func() {
		r := recover()
		b.depth--

		if r != nil {
			defer panic(r)
		}

		if b.depth == 0 && onComplete != nil {
			onComplete()
		}
	}()

	fn()
}

// Batch runs fn as a transaction: dependency tracking is suspended inside it
// and effects only run once the outermost transaction is complete.
func (r *Runtime) Batch(fn func()) {
	r.tracker.RunUntracked(func() {
		r.batcher.Batch(fn, r.flush)
	})
}
