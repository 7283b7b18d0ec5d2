package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hookgate/internal/agents"
)

var agentsGet string

func init() {
	rootCmd.AddCommand(agentsCmd)
	agentsCmd.Flags().StringVar(&agentsGet, "get", "", "Show one agent by name")
}

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List the subagent catalog (builtin + discovered)",
	RunE: func(cmd *cobra.Command, args []string) error {
		wd, _ := os.Getwd()
		catalog := agents.Discover(wd)

		if agentsGet != "" {
			a, ok := agents.Find(catalog, agentsGet)
			if !ok {
				return fmt.Errorf("agent not found: %s", agentsGet)
			}
			agents.WriteDetail(cmd.OutOrStdout(), a)
			return nil
		}
		agents.WriteList(cmd.OutOrStdout(), catalog)
		return nil
	},
}
