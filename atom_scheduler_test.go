package atom

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type ticker struct {
	runs []func()
}

func (t *ticker) schedule(run func()) {
	t.runs = append(t.runs, run)
}

func (t *ticker) tick() {
	runs := t.runs
	t.runs = nil

	for _, run := range runs {
		run()
	}
}

func TestScheduler(t *testing.T) {
	t.Run("defers runs", func(t *testing.T) {
		log := []string{}
		ticks := &ticker{}

		count := NewValue(0)

		NewEffect(func(*Effect) {
			log = append(log, fmt.Sprintf("effect %d", count.Read()))
		}, EffectOptions{Scheduler: ticks.schedule})

		assert.Empty(t, log)

		ticks.tick()
		assert.Equal(t, []string{"effect 0"}, log)

		count.Write(1)
		count.Write(2)
		assert.Equal(t, []string{"effect 0"}, log)

		ticks.tick()
		assert.Equal(t, []string{
			"effect 0",
			"effect 2",
		}, log)
	})

	t.Run("disposed before the run", func(t *testing.T) {
		log := []string{}
		ticks := &ticker{}

		count := NewValue(0)

		e := NewEffect(func(*Effect) {
			log = append(log, fmt.Sprintf("effect %d", count.Read()))
		}, EffectOptions{Scheduler: ticks.schedule})

		ticks.tick()

		count.Write(1)
		e.Dispose()
		ticks.tick()

		assert.Equal(t, []string{"effect 0"}, log)
	})

	t.Run("deferred runs batch their writes", func(t *testing.T) {
		log := []string{}
		ticks := &ticker{}

		a := NewValue(0)
		b := NewValue(0)
		c := NewValue(0)

		NewEffect(func(*Effect) {
			log = append(log, fmt.Sprintf("sum %d", b.Read()+c.Read()))
		})

		NewEffect(func(*Effect) {
			v := a.Read()
			b.Write(v)
			log = append(log, "wrote b")
			c.Write(v)
			log = append(log, "wrote c")
		}, EffectOptions{Scheduler: ticks.schedule})

		ticks.tick()
		a.Write(1)
		ticks.tick()

		assert.Equal(t, []string{
			"sum 0",
			"wrote b",
			"wrote c",
			"wrote b",
			"wrote c",
			"sum 2",
		}, log)
	})

	t.Run("switches between synchronous and deferred", func(t *testing.T) {
		runs := 0
		ticks := &ticker{}
		deferred := false

		a := NewValue(1)

		NewEffect(func(*Effect) {
			switch a.Read() {
			case 1:
				a.Write(2)
			case 10:
				deferred = false
				a.Write(11)
			}
			runs++
		}, EffectOptions{
			Scheduler: func(run func()) {
				if deferred {
					ticks.schedule(run)
					return
				}
				run()
			},
		})

		// initial run then the one after a.Write(2)
		assert.Equal(t, 2, runs)

		deferred = true
		a.Write(10)
		assert.Equal(t, 2, runs)

		ticks.tick()
		assert.Equal(t, 4, runs)
		assert.Equal(t, 11, a.Read())
	})

	t.Run("force run in batch", func(t *testing.T) {
		runs := 0

		a := NewValue(1)

		e := NewEffect(func(*Effect) {
			a.Read()
			runs++
		})

		assert.Equal(t, 1, runs)

		Batch(func() {
			e.Invalidate(false)
			assert.Equal(t, 1, runs)

			e.Invalidate(true)
			assert.Equal(t, 2, runs)
		})

		assert.Equal(t, 2, runs)
	})

	t.Run("force run through the scheduler", func(t *testing.T) {
		runs := 0
		ticks := &ticker{}

		a := NewValue(1)

		e := NewEffect(func(*Effect) {
			a.Read()
			runs++
		}, EffectOptions{Scheduler: ticks.schedule})

		ticks.tick()
		assert.Equal(t, 1, runs)

		e.Invalidate(true)
		assert.Equal(t, 1, runs)

		ticks.tick()
		assert.Equal(t, 2, runs)
	})
}
