// Package gate implements the decision engine: the per-category gate
// chains, the first-decision-wins runner, and the event dispatcher that
// routes an incoming event to its chain. Each check returns a tagged
// Result; the first non-empty result ends the chain, and a chain that runs
// out of checks falls back to Silent-Allow.
package gate

import "hookgate/internal/hook"

// Kind discriminates the verdict variants.
type Kind int

const (
	// None means the check did not decide; evaluation continues.
	None Kind = iota
	// SilentAllow approves with no injected context.
	SilentAllow
	// AllowContext approves and injects guidance text.
	AllowContext
	// Denied blocks the event with a gate name and reason.
	Denied
)

// String names the kind for audit and telemetry records.
func (k Kind) String() string {
	switch k {
	case SilentAllow:
		return "silent_allow"
	case AllowContext:
		return "allow_context"
	case Denied:
		return "denied"
	}
	return "none"
}

// Result is the outcome of one check (and, once the runner stops, of the
// whole chain).
type Result struct {
	Kind    Kind
	Gate    string
	Reason  string
	Context string
}

// Decided reports whether the result ends evaluation.
func (r Result) Decided() bool { return r.Kind != None }

// pass is the empty result: the check has no opinion.
func pass() Result { return Result{} }

// allow is an explicit silent approval.
func allow() Result { return Result{Kind: SilentAllow} }

// deny blocks with a gate name and machine-readable reason.
func deny(gate, reason string) Result {
	return Result{Kind: Denied, Gate: gate, Reason: reason}
}

// warn approves while injecting a bracket-section context block; the date
// line is always appended.
func warn(gate string, kvs []hook.KV) Result {
	kvs = append(kvs, hook.KV{Key: "date", Value: hook.Today()})
	return Result{
		Kind:    AllowContext,
		Gate:    gate,
		Context: hook.Block(gate, kvs),
	}
}

// contextResult approves with pre-rendered context text (intent cascade).
func contextResult(gate, text string) Result {
	return Result{Kind: AllowContext, Gate: gate, Context: text}
}
