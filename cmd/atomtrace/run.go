package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AnatoleLucet/atom"
)

func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run <scenario>",
		Short: "Run a scenario and print its trace",
		Long: `Run one of the bundled scenarios on a fresh runtime and print its trace.

Examples:
  atomtrace run diamond
  atomtrace run prune --format yaml
  atomtrace run batch --verbose`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: scenarioNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, ok := findScenario(args[0])
			if !ok {
				return fmt.Errorf("unknown scenario %q: must be one of %v", args[0], scenarioNames())
			}

			opts := []atom.RuntimeOption{}
			if rootOpts.Verbose {
				handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})
				opts = append(opts, atom.WithLogger(slog.New(handler).With("scenario", s.Name)))
			}

			trace := Execute(s, opts...)

			return writeTrace(cmd.OutOrStdout(), rootOpts.Format, trace)
		},
	}
}

func writeTrace(w io.Writer, format string, trace *Trace) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(trace); err != nil {
			return fmt.Errorf("encoding trace: %w", err)
		}
		return enc.Close()
	}

	fmt.Fprintf(w, "%s: %s\n", trace.Scenario, trace.Description)
	for _, e := range trace.Events {
		fmt.Fprintf(w, "%3d  %s\n", e.Step, e.Event)
	}
	return nil
}
