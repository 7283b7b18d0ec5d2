package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hookgate/internal/audit"
	"hookgate/internal/config"
)

var auditVerifyPath string

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditVerifyCmd)
	auditVerifyCmd.Flags().StringVar(&auditVerifyPath, "path", "", "Audit log path (default: configured audit path)")
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the hash-chained verdict log",
}

var auditVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Validate the audit log hash chain",
	Long:  "Walks the JSONL log and checks every prev_hash link. Exits non-zero on a broken chain.",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := auditVerifyPath
		if path == "" {
			path = config.Load(configPath).Audit.Path
		}
		if path == "" {
			return fmt.Errorf("no audit log configured; pass --path or enable audit in config")
		}

		result := audit.Verify(path)
		out, _ := json.MarshalIndent(result, "", "  ")
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		if !result.Valid {
			os.Exit(1)
		}
		return nil
	},
}
