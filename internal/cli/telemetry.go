package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"hookgate/internal/config"
	"hookgate/internal/telemetry"
)

var telemetryDay string

func init() {
	rootCmd.AddCommand(telemetryCmd)
	telemetryCmd.Flags().StringVar(&telemetryDay, "day", "", "Restrict to one day (YYYY-MM-DD)")
}

var telemetryCmd = &cobra.Command{
	Use:   "telemetry",
	Short: "Report decision counters per day, gate, and verdict kind",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load(configPath)
		path := cfg.Telemetry.Path
		if path == "" {
			path = telemetry.DefaultPath()
		}

		store, err := telemetry.Open(path)
		if err != nil {
			return err
		}
		defer store.Close()

		rows, err := store.Report(telemetryDay)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, "[TELEMETRY]")
		fmt.Fprintf(w, "rows: %d\n", len(rows))
		fmt.Fprintln(w)
		for _, r := range rows {
			fmt.Fprintf(w, "%s %s %s: %d\n", r.Day, r.Gate, r.Kind, r.Count)
		}
		return nil
	},
}
