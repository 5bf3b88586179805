package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/agenthands/agentflow/internal/agent"
	"github.com/spf13/cobra"
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List the available agents",
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "MODE\tDESCRIPTION")
		for _, m := range agent.Modes() {
			fmt.Fprintf(tw, "%s\t%s\n", m, agent.ConfigFor(m).Description)
		}
		return tw.Flush()
	},
}
