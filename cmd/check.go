package cmd

import (
	"fmt"
	"strings"

	"github.com/sarchlab/flowsim/flow/selection"
	"github.com/sarchlab/flowsim/flow/topology"
	"github.com/sarchlab/flowsim/scenario"
	"github.com/spf13/cobra"
)

func newCheckCmd(root *rootOptions) *cobra.Command {
	var verbose bool

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a scenario and the wiring of its network.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}

			network, err := scenario.MakeBuilder().WithConfig(cfg).Build()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			components := network.Components()

			if verbose {
				for _, c := range components {
					caps := make([]string, 0, len(c.Capabilities()))
					for _, capability := range c.Capabilities() {
						caps = append(caps, capability.String())
					}

					fmt.Fprintf(out, "%s %s\n", c.Name(), strings.Join(caps, " "))
				}
			}

			graph := topology.NewGraph(components)

			if verbose {
				route := graph.Route(network.Source(), network.Sink())
				fmt.Fprintf(out, "route: %s\n", strings.Join(route, " -> "))
			}

			for _, cycle := range graph.Cycles() {
				fmt.Fprintf(out, "cycle: %s\n", strings.Join(cycle, " -> "))
			}

			err = network.Check()
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "%s: %d components, network is valid\n",
				cfg.Name, len(components))

			return nil
		},
	}

	checkCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"List the ports and capabilities of every component.")

	return checkCmd
}

func newStrategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List the queue selection strategies.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range selection.AvailableStrategies() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
