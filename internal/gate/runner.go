package gate

import (
	"io"

	"go.uber.org/zap"

	"hookgate/internal/config"
	"hookgate/internal/hook"
	"hookgate/internal/session"
)

// Chain identifies one event category's ordered gate sequence.
type Chain int

const (
	ChainPreWrite Chain = iota
	ChainPostWrite
	ChainPreTool
	ChainPostTool
	ChainSubagent
	ChainIntent
)

// String names the chain for audit and telemetry records.
func (c Chain) String() string {
	switch c {
	case ChainPreWrite:
		return "pre-write"
	case ChainPostWrite:
		return "post-write"
	case ChainPreTool:
		return "pre-tool"
	case ChainPostTool:
		return "post-tool"
	case ChainSubagent:
		return "subagent"
	case ChainIntent:
		return "intent"
	}
	return "unknown"
}

// Env carries one dispatch's inputs: the event, the read-only config
// snapshot, and lazy access to the session record.
type Env struct {
	In       *hook.Input
	Cfg      *config.Config
	Sessions *session.Store
	Log      *zap.Logger

	// DryRun suppresses session persistence; checks still read and mutate
	// the in-memory record.
	DryRun bool

	sess *session.State
}

// NewEnv builds a dispatch environment. A nil logger is replaced with a
// nop logger so checks never guard their log calls.
func NewEnv(in *hook.Input, cfg *config.Config, sessions *session.Store, log *zap.Logger) *Env {
	if log == nil {
		log = zap.NewNop()
	}
	return &Env{In: in, Cfg: cfg, Sessions: sessions, Log: log}
}

// Session returns the session record, loading it on first use.
func (e *Env) Session() *session.State {
	if e.sess == nil {
		e.sess = e.Sessions.Load()
	}
	return e.sess
}

// SaveSession persists the record best-effort. A storage failure is logged
// and ignored: the in-memory decision already happened and must not be
// blocked by persistence (fail open).
func (e *Env) SaveSession() {
	if e.sess == nil || e.DryRun {
		return
	}
	if err := e.Sessions.Save(e.sess); err != nil {
		e.Log.Warn("session save failed", zap.Error(err))
	}
}

// Check is a single gate: it may decide (non-None result) or pass.
type Check func(*Env) Result

// Chain definitions. Order is a correctness contract: the first deciding
// gate's name is the one reported, so reordering changes observable
// behavior.
var chains = map[Chain][]Check{
	ChainPreWrite: {
		checkSecretContent,
		checkCodeGuard,
		checkPreWriteAntiprod,
		checkResearchRequired,
		checkWritePath,
	},
	ChainPostWrite: {
		checkPostWriteAntiprod,
		checkQualityBudget,
		trackModifiedFile,
		checkLintAdvisory,
	},
	ChainPreTool:  {routePreTool},
	ChainPostTool: {routePostTool},
	ChainSubagent: {checkSubagent},
	ChainIntent:   {runIntentCascade},
}

// writeTools are the tools whose pre/post events route to the write chains.
var writeTools = map[string]bool{
	"Write":        true,
	"Edit":         true,
	"NotebookEdit": true,
}

// Dispatch routes the event to its chain by declared event name and tool
// name, then runs the chain. Unknown events run the pre-tool chain, which
// resolves to Silent-Allow for unrecognized tools.
func Dispatch(env *Env) (Chain, Result) {
	chain := chainFor(env.In)
	return chain, Run(env, chain)
}

func chainFor(in *hook.Input) Chain {
	switch in.HookEventName {
	case "UserPromptSubmit":
		return ChainIntent
	case "PreToolUse":
		if writeTools[in.ToolName] {
			return ChainPreWrite
		}
		return ChainPreTool
	case "PostToolUse":
		if writeTools[in.ToolName] {
			return ChainPostWrite
		}
		return ChainPostTool
	case "SubagentStart", "SubagentStop":
		return ChainSubagent
	}
	return ChainPreTool
}

// Run executes the chain's checks in declared order and stops at the first
// decision. No verdict path may panic: a panicking check degrades to "no
// decision" with a diagnostic, since a crashed gate loses all enforcement
// while a skipped check loses one.
func Run(env *Env, chain Chain) Result {
	for _, check := range chains[chain] {
		if r := runCheck(env, check); r.Decided() {
			return r
		}
	}
	return allow()
}

func runCheck(env *Env, check Check) (r Result) {
	defer func() {
		if rec := recover(); rec != nil {
			env.Log.Warn("gate check panicked", zap.Any("panic", rec))
			r = pass()
		}
	}()
	return check(env)
}

// Emit writes the verdict in the response shape the chain's event category
// expects and nothing else.
func Emit(w io.Writer, chain Chain, r Result) {
	switch chain {
	case ChainIntent:
		if r.Kind == AllowContext && r.Context != "" {
			hook.WritePromptContext(w, r.Context)
			return
		}
		hook.WritePromptSilent(w)
	case ChainPreWrite, ChainPreTool, ChainSubagent:
		switch r.Kind {
		case Denied:
			hook.WritePermissionDeny(w, r.Reason, hook.BlockContext(r.Gate, r.Reason))
		case AllowContext:
			hook.WriteContext(w, r.Gate, r.Context)
		default:
			hook.WriteSilent(w)
		}
	default: // post chains
		switch r.Kind {
		case Denied:
			hook.WriteBlock(w, r.Reason, hook.BlockContext(r.Gate, r.Reason))
		case AllowContext:
			hook.WriteContext(w, r.Gate, r.Context)
		default:
			hook.WriteSilent(w)
		}
	}
}
