package cli

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hookgate/internal/audit"
	"hookgate/internal/config"
	"hookgate/internal/gate"
	"hookgate/internal/hook"
	"hookgate/internal/logging"
	"hookgate/internal/session"
	"hookgate/internal/telemetry"
)

func init() {
	rootCmd.AddCommand(gatesCmd)

	for _, gc := range []struct {
		use   string
		short string
		chain gate.Chain
	}{
		{"pre-write", "Gate a Write/Edit before it reaches disk", gate.ChainPreWrite},
		{"post-write", "Inspect a completed Write/Edit", gate.ChainPostWrite},
		{"pre-tool", "Gate a tool call before execution", gate.ChainPreTool},
		{"post-tool", "Record a completed tool call", gate.ChainPostTool},
		{"subagent", "Gate a subagent lifecycle event", gate.ChainSubagent},
		{"intent", "Classify a prompt and inject directives", gate.ChainIntent},
	} {
		chain := gc.chain
		gatesCmd.AddCommand(&cobra.Command{
			Use:   gc.use,
			Short: gc.short,
			Run: func(cmd *cobra.Command, args []string) {
				runGate(&chain)
			},
		})
	}

	gatesCmd.AddCommand(&cobra.Command{
		Use:   "auto",
		Short: "Route the event to its chain by hook_event_name",
		Run: func(cmd *cobra.Command, args []string) {
			runGate(nil)
		},
	})
}

var gatesCmd = &cobra.Command{
	Use:   "gates",
	Short: "Hook-mode gate commands (JSON event on stdin, JSON verdict on stdout)",
}

// runGate is the hook entry point: read one event, run one chain, emit one
// verdict. forced pins the chain; nil routes by event name. Audit and
// telemetry records are best-effort and never block the verdict.
func runGate(forced *gate.Chain) {
	log := logging.New()
	cfg := config.Load(configPath)
	in := hook.Read(os.Stdin)

	env := gate.NewEnv(in, cfg, session.NewStore("", ""), log)

	var chain gate.Chain
	var result gate.Result
	if forced != nil {
		chain = *forced
		result = gate.Run(env, chain)
	} else {
		chain, result = gate.Dispatch(env)
	}

	gate.Emit(os.Stdout, chain, result)
	recordVerdict(log, cfg, env, in, chain, result)
}

func recordVerdict(log *zap.Logger, cfg *config.Config, env *gate.Env, in *hook.Input, chain gate.Chain, result gate.Result) {
	if cfg.Audit.Enabled && cfg.Audit.Path != "" {
		if auditLog, err := audit.Open(cfg.Audit.Path); err == nil {
			if err := auditLog.Record(audit.Entry{
				SessionID: env.Session().ID,
				Event:     chain.String(),
				Tool:      in.ToolName,
				Gate:      result.Gate,
				Decision:  result.Kind.String(),
				Reason:    result.Reason,
			}); err != nil {
				log.Warn("audit record failed", zap.Error(err))
			}
			auditLog.Close()
		} else {
			log.Warn("audit open failed", zap.Error(err))
		}
	}

	if cfg.Telemetry.Enabled {
		path := cfg.Telemetry.Path
		if path == "" {
			path = telemetry.DefaultPath()
		}
		if store, err := telemetry.Open(path); err == nil {
			if err := store.Record(hook.Today(), result.Gate, result.Kind.String()); err != nil {
				log.Warn("telemetry record failed", zap.Error(err))
			}
			store.Close()
		} else {
			log.Warn("telemetry open failed", zap.Error(err))
		}
	}
}
