package main

import (
	"fmt"

	"github.com/AnatoleLucet/atom"
)

type Event struct {
	Step  int    `yaml:"step"`
	Event string `yaml:"event"`
}

type Trace struct {
	Scenario    string  `yaml:"scenario"`
	Description string  `yaml:"description"`
	Events      []Event `yaml:"events"`
}

func (t *Trace) record(format string, args ...any) {
	t.Events = append(t.Events, Event{
		Step:  len(t.Events) + 1,
		Event: fmt.Sprintf(format, args...),
	})
}

type Scenario struct {
	Name        string
	Description string
	Run         func(rt *atom.Runtime, t *Trace)
}

// Execute runs s on a fresh runtime and returns everything it recorded.
// Errors raised by the runtime are recorded as events.
func Execute(s Scenario, opts ...atom.RuntimeOption) *Trace {
	t := &Trace{Scenario: s.Name, Description: s.Description}

	opts = append(opts, atom.WithErrorHandler(func(err error) {
		t.record("error: %v", err)
	}))

	s.Run(atom.NewRuntime(opts...), t)

	return t
}

func findScenario(name string) (Scenario, bool) {
	for _, s := range scenarios {
		if s.Name == name {
			return s, true
		}
	}
	return Scenario{}, false
}

func scenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for _, s := range scenarios {
		names = append(names, s.Name)
	}
	return names
}

var scenarios = []Scenario{
	{
		Name:        "diamond",
		Description: "d = b(a) + c(a) is computed once per write of a",
		Run: func(rt *atom.Runtime, t *Trace) {
			a := atom.NewValue(1, atom.Options[int]{Runtime: rt, Name: "a"})
			b := atom.NewComputed(func() int {
				t.record("compute b")
				return a.Read() + 1
			}, atom.Options[int]{Runtime: rt, Name: "b"})
			c := atom.NewComputed(func() int {
				t.record("compute c")
				return a.Read() * 10
			}, atom.Options[int]{Runtime: rt, Name: "c"})
			d := atom.NewComputed(func() int {
				t.record("compute d")
				return b.Read() + c.Read()
			}, atom.Options[int]{Runtime: rt, Name: "d"})

			atom.NewEffect(func(*atom.Effect) {
				t.record("effect d=%d", d.Read())
			}, atom.EffectOptions{Runtime: rt, Name: "print"})

			rt.Batch(func() {
				t.record("write a=2")
				a.Write(2)
			})
		},
	},
	{
		Name:        "stabilize",
		Description: "writes that keep a%2 unchanged stop at the computed",
		Run: func(rt *atom.Runtime, t *Trace) {
			a := atom.NewValue(1, atom.Options[int]{Runtime: rt, Name: "a"})
			parity := atom.NewComputed(func() int {
				t.record("compute parity")
				return a.Read() % 2
			}, atom.Options[int]{Runtime: rt, Name: "parity"})

			atom.NewEffect(func(*atom.Effect) {
				t.record("effect parity=%d", parity.Read())
			}, atom.EffectOptions{Runtime: rt, Name: "print"})

			for _, v := range []int{3, 5, 6} {
				t.record("write a=%d", v)
				a.Write(v)
			}
		},
	},
	{
		Name:        "prune",
		Description: "a dependency that is no longer read stops triggering runs",
		Run: func(rt *atom.Runtime, t *Trace) {
			toggle := atom.NewValue(true, atom.Options[bool]{Runtime: rt, Name: "toggle"})
			a := atom.NewValue("a", atom.Options[string]{
				Runtime:            rt,
				Name:               "a",
				OnBecomeObserved:   func() { t.record("a observed") },
				OnBecomeUnobserved: func() { t.record("a unobserved") },
			})
			b := atom.NewValue("b", atom.Options[string]{Runtime: rt, Name: "b"})

			atom.NewEffect(func(*atom.Effect) {
				if toggle.Read() {
					t.record("effect %s", a.Read())
					return
				}
				t.record("effect %s", b.Read())
			}, atom.EffectOptions{Runtime: rt, Name: "print"})

			t.record("write toggle=false")
			toggle.Write(false)

			t.record("write a=a2")
			a.Write("a2")

			t.record("write b=b2")
			b.Write("b2")
		},
	},
	{
		Name:        "batch",
		Description: "writes inside a transaction run each effect once",
		Run: func(rt *atom.Runtime, t *Trace) {
			first := atom.NewValue("Ada", atom.Options[string]{Runtime: rt, Name: "first"})
			last := atom.NewValue("Lovelace", atom.Options[string]{Runtime: rt, Name: "last"})

			atom.NewEffect(func(e *atom.Effect) {
				t.record("effect %s %s", first.Read(), last.Read())
				e.OnCleanup(func() { t.record("cleanup") })
			}, atom.EffectOptions{Runtime: rt, Name: "print"})

			rt.Batch(func() {
				t.record("write first=Grace")
				first.Write("Grace")
				t.record("write last=Hopper")
				last.Write("Hopper")
			})
		},
	},
	{
		Name:        "dispose",
		Description: "a disposed effect never runs again",
		Run: func(rt *atom.Runtime, t *Trace) {
			count := atom.NewValue(0, atom.Options[int]{Runtime: rt, Name: "count"})

			e := atom.NewEffect(func(e *atom.Effect) {
				t.record("effect count=%d", count.Read())
				e.OnCleanup(func() { t.record("cleanup") })
			}, atom.EffectOptions{
				Runtime:            rt,
				Name:               "print",
				OnBecomeUnobserved: func() { t.record("print unobserved") },
			})

			t.record("write count=1")
			count.Write(1)

			t.record("dispose")
			e.Dispose()

			t.record("write count=2")
			count.Write(2)
		},
	},
}
