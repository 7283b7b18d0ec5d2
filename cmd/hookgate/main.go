// Command hookgate is the gate binary the host invokes on every hook
// event. Hosts typically install one symlink per hook; the binary maps its
// own invocation name to the equivalent subcommand, so a single install
// serves every hook without per-hook wrapper scripts.
package main

import (
	"os"
	"path/filepath"

	"hookgate/internal/cli"
)

// symlinkTable maps invocation names to subcommand argument lists.
var symlinkTable = map[string][]string{
	"hookgate-pre-write":  {"gates", "pre-write"},
	"hookgate-post-write": {"gates", "post-write"},
	"hookgate-pre-tool":   {"gates", "pre-tool"},
	"hookgate-post-tool":  {"gates", "post-tool"},
	"hookgate-subagent":   {"gates", "subagent"},
	"intent-gate":         {"gates", "intent"},
	"hookgate-auto":       {"gates", "auto"},
	"session-init":        {"session", "init"},
	"session-end":         {"session", "end"},
	"session-validate":    {"session", "validate"},
	"session-resume":      {"session", "resume"},
	"pre-compact":         {"session", "compact"},
	"memory-bank":         {"memory", "bank"},
	"memory-write":        {"memory", "write"},
}

func main() {
	name := filepath.Base(os.Args[0])
	if mapped, ok := symlinkTable[name]; ok {
		args := append(append([]string{}, mapped...), os.Args[1:]...)
		cli.ExecuteArgs(args)
		return
	}
	cli.Execute()
}
