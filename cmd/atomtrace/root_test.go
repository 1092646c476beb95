package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func events(trace *Trace) []string {
	out := make([]string, 0, len(trace.Events))
	for _, e := range trace.Events {
		out = append(out, e.Event)
	}
	return out
}

func TestScenarios(t *testing.T) {
	t.Run("diamond computes d once per write", func(t *testing.T) {
		s, ok := findScenario("diamond")
		require.True(t, ok)

		trace := Execute(s)

		count := 0
		for _, e := range events(trace) {
			if e == "compute d" {
				count++
			}
		}
		assert.Equal(t, 2, count)
		assert.Contains(t, events(trace), "effect d=23")
	})

	t.Run("stabilize", func(t *testing.T) {
		s, _ := findScenario("stabilize")

		assert.Equal(t, []string{
			"compute parity",
			"effect parity=1",
			"write a=3",
			"compute parity",
			"write a=5",
			"compute parity",
			"write a=6",
			"compute parity",
			"effect parity=0",
		}, events(Execute(s)))
	})

	t.Run("prune", func(t *testing.T) {
		s, _ := findScenario("prune")

		assert.Equal(t, []string{
			"a observed",
			"effect a",
			"write toggle=false",
			"effect b",
			"a unobserved",
			"write a=a2",
			"write b=b2",
			"effect b2",
		}, events(Execute(s)))
	})

	t.Run("batch", func(t *testing.T) {
		s, _ := findScenario("batch")

		assert.Equal(t, []string{
			"effect Ada Lovelace",
			"write first=Grace",
			"write last=Hopper",
			"cleanup",
			"effect Grace Hopper",
		}, events(Execute(s)))
	})

	t.Run("dispose", func(t *testing.T) {
		s, _ := findScenario("dispose")

		assert.Equal(t, []string{
			"effect count=0",
			"write count=1",
			"cleanup",
			"effect count=1",
			"dispose",
			"cleanup",
			"print unobserved",
			"write count=2",
		}, events(Execute(s)))
	})

	t.Run("steps are numbered", func(t *testing.T) {
		s, _ := findScenario("batch")

		for i, e := range Execute(s).Events {
			assert.Equal(t, i+1, e.Step)
		}
	})
}

func TestRunCommand(t *testing.T) {
	t.Run("text output", func(t *testing.T) {
		out, _, err := execute(t, "run", "batch")
		require.NoError(t, err)

		assert.Contains(t, out, "batch: writes inside a transaction run each effect once")
		assert.Contains(t, out, "  5  effect Grace Hopper")
	})

	t.Run("yaml output", func(t *testing.T) {
		out, _, err := execute(t, "run", "stabilize", "--format", "yaml")
		require.NoError(t, err)

		var trace Trace
		require.NoError(t, yaml.Unmarshal([]byte(out), &trace))

		assert.Equal(t, "stabilize", trace.Scenario)
		require.Len(t, trace.Events, 9)
		assert.Equal(t, Event{Step: 9, Event: "effect parity=0"}, trace.Events[8])
	})

	t.Run("verbose logs the runtime", func(t *testing.T) {
		_, stderr, err := execute(t, "run", "batch", "--verbose")
		require.NoError(t, err)

		assert.Contains(t, stderr, "level=DEBUG")
		assert.Contains(t, stderr, "scenario=batch")
	})

	t.Run("unknown scenario", func(t *testing.T) {
		_, _, err := execute(t, "run", "nope")
		assert.ErrorContains(t, err, `unknown scenario "nope"`)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, _, err := execute(t, "run", "batch", "--format", "json")
		assert.ErrorContains(t, err, `invalid format "json"`)
	})
}

func TestListCommand(t *testing.T) {
	t.Run("text output", func(t *testing.T) {
		out, _, err := execute(t, "list")
		require.NoError(t, err)

		for _, name := range scenarioNames() {
			assert.Contains(t, out, name)
		}
	})

	t.Run("yaml output", func(t *testing.T) {
		out, _, err := execute(t, "list", "--format", "yaml")
		require.NoError(t, err)

		var infos []scenarioInfo
		require.NoError(t, yaml.Unmarshal([]byte(out), &infos))
		assert.Len(t, infos, len(scenarios))
		assert.Equal(t, "diamond", infos[0].Name)
	})
}
