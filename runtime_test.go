package atom

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuntime(t *testing.T) {
	t.Run("one default runtime per goroutine", func(t *testing.T) {
		rt := Default()
		assert.Same(t, rt.rt, Default().rt)

		done := make(chan *Runtime)
		go func() { done <- Default() }()

		assert.NotSame(t, rt.rt, (<-done).rt)
	})

	t.Run("release default", func(t *testing.T) {
		rt := Default()
		count := NewValue(0)

		ReleaseDefault()
		assert.NotSame(t, rt.rt, Default().rt)

		// nodes keep their runtime
		assert.Same(t, rt.rt, count.Runtime().rt)
	})

	t.Run("isolated runtimes", func(t *testing.T) {
		log := []string{}

		rt := NewRuntime()
		count := NewValue(0, Options[int]{Runtime: rt})

		NewEffect(func(*Effect) {
			log = append(log, fmt.Sprintf("changed %d", count.Read()))
		}, EffectOptions{Runtime: rt})

		// the default runtime's transaction does not hold rt's effects
		Batch(func() {
			count.Write(1)
			log = append(log, "written")
		})

		rt.Batch(func() {
			count.Write(2)
			assert.True(t, rt.IsBatching())
			assert.False(t, Default().IsBatching())
			log = append(log, "written")
		})

		assert.Equal(t, []string{
			"changed 0",
			"changed 1",
			"written",
			"written",
			"changed 2",
		}, log)
	})

	t.Run("transaction and untrack on a runtime", func(t *testing.T) {
		log := []string{}

		rt := NewRuntime()
		count := NewValue(0, Options[int]{Runtime: rt})
		other := NewValue(0, Options[int]{Runtime: rt})

		NewEffect(func(*Effect) {
			untracked := RuntimeUntrack(rt, other.Read)
			log = append(log, fmt.Sprintf("changed %d %d", count.Read(), untracked))
		}, EffectOptions{Runtime: rt})

		result := RuntimeTransaction(rt, func() int {
			count.Write(1)
			count.Write(2)
			assert.True(t, rt.IsBatching())
			assert.False(t, Default().IsBatching())
			return count.Read() * 10
		})
		assert.Equal(t, 20, result)

		other.Write(5)

		assert.Equal(t, []string{
			"changed 0 0",
			"changed 2 0",
		}, log)
	})

	t.Run("logger", func(t *testing.T) {
		buf := &bytes.Buffer{}

		rt := NewRuntime(WithLogger(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))))
		assert.NotNil(t, rt.Logger())

		count := NewValue(0, Options[int]{Runtime: rt})
		e := NewEffect(func(*Effect) {
			count.Read()
		}, EffectOptions{Runtime: rt, Name: "printer"})

		count.Write(1)
		e.Dispose()

		assert.Contains(t, buf.String(), "msg=flush")
		assert.Contains(t, buf.String(), `msg="effect disposed" node=printer`)
	})

	t.Run("configure", func(t *testing.T) {
		var got error

		rt := NewRuntime()
		rt.Configure(WithErrorHandler(func(err error) { got = err }))

		NewEffect(func(*Effect) {}, EffectOptions{Runtime: rt})

		assert.Error(t, got)
	})
}
