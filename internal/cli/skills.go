package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hookgate/internal/skills"
)

var skillsGet string

func init() {
	rootCmd.AddCommand(skillsCmd)
	skillsCmd.Flags().StringVar(&skillsGet, "get", "", "Show one skill by name")
}

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List the skill catalog (builtin + discovered)",
	RunE: func(cmd *cobra.Command, args []string) error {
		wd, _ := os.Getwd()
		catalog := skills.Discover(wd)

		if skillsGet != "" {
			s, ok := skills.Find(catalog, skillsGet)
			if !ok {
				return fmt.Errorf("skill not found: %s", skillsGet)
			}
			skills.WriteDetail(cmd.OutOrStdout(), s)
			return nil
		}
		skills.WriteList(cmd.OutOrStdout(), catalog)
		return nil
	},
}
