package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hookgate/internal/memory"
	"hookgate/internal/session"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show session and memory bank state in one view",
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		s := session.NewStore("", "").Load()

		fmt.Fprintln(w, "[STATUS]")
		fmt.Fprintf(w, "date: %s\n", s.Date)
		fmt.Fprintf(w, "session: %s\n", s.ID)
		fmt.Fprintf(w, "project: %s\n", s.Project)
		fmt.Fprintf(w, "turn: %d\n", s.TurnCount)
		fmt.Fprintln(w)

		fmt.Fprintln(w, "[STATE]")
		fmt.Fprintf(w, "research_done: %t\n", s.ResearchDone)
		fmt.Fprintf(w, "delegation: %t\n", s.DelegationInvoked)
		fmt.Fprintf(w, "post_compact: %t\n", s.PostCompact)
		if s.IntentType != "" {
			fmt.Fprintf(w, "intent: %s/%s\n", s.IntentType, s.IntentDomain)
		}
		if s.HasTask() {
			fmt.Fprintf(w, "task: %s (%s)\n", s.CurrentTask, s.TaskStatus)
		}
		if len(s.FilesModified) > 0 {
			fmt.Fprintf(w, "files_modified: %d\n", len(s.FilesModified))
		}
		fmt.Fprintln(w)

		wd, _ := os.Getwd()
		memory.Status(w, memory.Dir(), memory.DetectProject(wd))
	},
}
