package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"hookgate/internal/memory"
)

var (
	memWriteCategory string
	memWriteKey      string
	memWriteProject  string
	memKanbanProject string
)

func init() {
	rootCmd.AddCommand(memoryCmd)
	memoryCmd.AddCommand(memoryBankCmd, memoryWriteCmd, memoryKanbanCmd)

	memoryWriteCmd.Flags().StringVarP(&memWriteCategory, "category", "c", "", "Memory category (decisions/patterns/research/...)")
	memoryWriteCmd.Flags().StringVarP(&memWriteKey, "key", "k", "", "Entry key (file name without extension)")
	memoryWriteCmd.Flags().StringVarP(&memWriteProject, "project", "p", "", "Project scope (default: detected)")
	memoryWriteCmd.MarkFlagRequired("category")
	memoryWriteCmd.MarkFlagRequired("key")

	memoryKanbanCmd.Flags().StringVarP(&memKanbanProject, "project", "p", "", "Project scope (default: detected)")
}

var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Project-scoped memory bank: bank, write, kanban",
}

var memoryBankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Show memory bank status for the active project",
	Run: func(cmd *cobra.Command, args []string) {
		wd, _ := os.Getwd()
		memory.Status(cmd.OutOrStdout(), memory.Dir(), memory.DetectProject(wd))
	},
}

var memoryWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Write a memory entry from stdin",
	Long:  "Reads TOON content on stdin and stores it at <category>/<project>/<key>.toon.",
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}

		project := memWriteProject
		if project == "" {
			wd, _ := os.Getwd()
			project = memory.DetectProject(wd)
		}

		path, err := memory.Write(memory.Dir(), memWriteCategory, project, memWriteKey, string(content))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved to %s\n", path)
		return nil
	},
}

var memoryKanbanCmd = &cobra.Command{
	Use:   "kanban",
	Short: "Show the kanban board for the active project",
	Run: func(cmd *cobra.Command, args []string) {
		project := memKanbanProject
		if project == "" {
			wd, _ := os.Getwd()
			project = memory.DetectProject(wd)
		}
		board := memory.LoadBoard(memory.Dir(), project)
		memory.WriteStatus(cmd.OutOrStdout(), board)
	},
}
