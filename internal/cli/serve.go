package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"hookgate/internal/config"
	"hookgate/internal/logging"
	"hookgate/internal/mcp"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as an MCP server on stdio",
	Long: "Exposes the gate engine over the Model Context Protocol:\n" +
		"policy dry-runs, prompt classification, and session inspection.\n" +
		"Config files are hot-reloaded on change.",
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logging.New()
	wd, _ := os.Getwd()

	cfgPath := configPath
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}

	srv := mcp.New(mcp.Config{
		ConfigPath: cfgPath,
		WorkDir:    wd,
		Version:    version,
	}, log)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	watchPaths := []string{cfgPath}
	if cfgPath != "" {
		watchPaths = append(watchPaths, filepath.Join(filepath.Dir(cfgPath), "patterns.yaml"))
	}
	reloader, err := mcp.NewReloader(srv, watchPaths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: hot-reload disabled: %v\n", err)
	}
	if reloader != nil {
		go reloader.Run(ctx)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	return srv.Run(ctx)
}
