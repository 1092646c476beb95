package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type scenarioInfo struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the bundled scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			infos := make([]scenarioInfo, 0, len(scenarios))
			for _, s := range scenarios {
				infos = append(infos, scenarioInfo{Name: s.Name, Description: s.Description})
			}

			out := cmd.OutOrStdout()

			if rootOpts.Format == "yaml" {
				enc := yaml.NewEncoder(out)
				defer enc.Close()
				return enc.Encode(infos)
			}

			for _, info := range infos {
				fmt.Fprintf(out, "%-10s %s\n", info.Name, info.Description)
			}
			return nil
		},
	}
}
