package hook

import (
	"encoding/json"
	"io"
)

// Response is the generic verdict shape: approve/block with an optional
// context payload.
type Response struct {
	Decision          string                `json:"decision,omitempty"`
	Reason            string                `json:"reason,omitempty"`
	AdditionalContext string                `json:"additionalContext,omitempty"`
	HookSpecific      *PermissionDecision   `json:"hookSpecificOutput,omitempty"`
}

// PermissionDecision is the richer tool-gating shape used by pre-tool and
// pre-write chains.
type PermissionDecision struct {
	HookEventName            string `json:"hookEventName"`
	PermissionDecision       string `json:"permissionDecision"`
	PermissionDecisionReason string `json:"permissionDecisionReason"`
	AdditionalContext        string `json:"additionalContext,omitempty"`
}

// PromptResponse is the prompt-submit-specific shape: context only, no
// decision field.
type PromptResponse struct {
	HookEventName     string `json:"hookEventName"`
	AdditionalContext string `json:"additionalContext"`
}

// WriteSilent emits a silent approve.
func WriteSilent(w io.Writer) {
	writeJSON(w, Response{Decision: "approve", Reason: "ok"})
}

// WriteContext emits an approve carrying injected context.
func WriteContext(w io.Writer, gate, ctx string) {
	writeJSON(w, Response{Decision: "approve", Reason: gate, AdditionalContext: ctx})
}

// WriteBlock emits a generic block verdict (post-tool and post-write chains).
func WriteBlock(w io.Writer, reason, ctx string) {
	writeJSON(w, Response{Decision: "block", Reason: reason, AdditionalContext: ctx})
}

// WritePermissionDeny emits the tool-gating deny shape (pre-tool and
// pre-write chains).
func WritePermissionDeny(w io.Writer, reason, ctx string) {
	writeJSON(w, Response{HookSpecific: &PermissionDecision{
		HookEventName:            "PreToolUse",
		PermissionDecision:       "deny",
		PermissionDecisionReason: reason,
		AdditionalContext:        ctx,
	}})
}

// WritePromptSilent emits an empty prompt-submit response.
func WritePromptSilent(w io.Writer) {
	writeJSON(w, PromptResponse{HookEventName: "UserPromptSubmit"})
}

// WritePromptContext emits a prompt-submit response carrying context.
func WritePromptContext(w io.Writer, ctx string) {
	writeJSON(w, PromptResponse{HookEventName: "UserPromptSubmit", AdditionalContext: ctx})
}

func writeJSON(w io.Writer, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	data = append(data, '\n')
	_, _ = w.Write(data)
}
