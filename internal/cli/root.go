// Package cli wires the cobra command tree: the gate commands invoked by
// host hooks, the session lifecycle, the memory bank, the catalogs, and the
// serve mode.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "hookgate",
	Short: "Policy gate between an AI coding agent and its tools",
	Long: "Reads one hook event as JSON on stdin, evaluates it through the\n" +
		"configured gate chain, and emits one JSON verdict on stdout.\n" +
		"Unknown events and internal failures resolve to a silent allow:\n" +
		"the gate must never wedge the host.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.json (default ~/.config/hookgate/config.json)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// ExecuteArgs runs the root command with an explicit argument list, used by
// the symlink dispatch in main.
func ExecuteArgs(args []string) {
	rootCmd.SetArgs(args)
	Execute()
}
