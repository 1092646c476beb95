package internal

type Cleanups struct {
	// cleanup functions to be called before the next run, or on disposal
	fns []func()
}

func NewCleanups() *Cleanups {
	return &Cleanups{
		fns: make([]func(), 0),
	}
}

func (c *Cleanups) Add(fn func()) {
	c.fns = append(c.fns, fn)
}

func (c *Cleanups) Len() int {
	return len(c.fns)
}

// Run calls every cleanup in registration order and clears them.
// A panicking cleanup does not prevent the others from running, its error is passed to report.
func (c *Cleanups) Run(report func(error)) {
	fns := c.fns
	c.fns = make([]func(), 0)

	for _, fn := range fns {
		func() {
			defer func() {
				if r := recover(); r != nil {
					report(&EffectError{Cause: asError(r)})
				}
			}()

			fn()
		}()
	}
}
