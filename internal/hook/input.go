// Package hook implements the stdin/stdout protocol between the agent host
// and the gate engine: lenient event parsing, the verdict JSON shapes the
// host expects, and the bracket-section text format used for injected
// context.
package hook

import (
	"encoding/json"
	"io"
	"strings"
	"time"
)

// Input is one event delivered by the host on stdin. Parsing is lenient:
// a malformed payload yields a zero Input so a verdict is still produced.
type Input struct {
	SessionID     string
	ToolName      string
	Prompt        string
	HookEventName string

	toolInput map[string]json.RawMessage
}

// wireInput accepts both snake_case and camelCase field names; hosts have
// shipped both.
type wireInput struct {
	SessionID       string          `json:"session_id"`
	SessionIDAlt    string          `json:"sessionId"`
	ToolName        string          `json:"tool_name"`
	ToolNameAlt     string          `json:"toolName"`
	ToolInput       json.RawMessage `json:"tool_input"`
	ToolInputAlt    json.RawMessage `json:"toolInput"`
	Prompt          string          `json:"prompt"`
	HookEventName   string          `json:"hook_event_name"`
	HookEventAlt    string          `json:"hookEventName"`
}

// Read decodes an event from r. Never fails: on any decode error it returns
// an empty Input, which every chain resolves to Silent-Allow.
func Read(r io.Reader) *Input {
	var w wireInput
	in := &Input{}
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return in
	}
	in.SessionID = firstNonEmpty(w.SessionID, w.SessionIDAlt)
	in.ToolName = firstNonEmpty(w.ToolName, w.ToolNameAlt)
	in.Prompt = w.Prompt
	in.HookEventName = firstNonEmpty(w.HookEventName, w.HookEventAlt)

	raw := w.ToolInput
	if len(raw) == 0 {
		raw = w.ToolInputAlt
	}
	if len(raw) > 0 {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err == nil {
			in.toolInput = fields
		}
	}
	return in
}

// NewInput builds an event programmatically, for callers that receive the
// fields outside the stdin protocol. Non-string tool-input values are
// marshaled as-is.
func NewInput(event, tool, prompt string, toolInput map[string]any) *Input {
	in := &Input{
		ToolName:      tool,
		Prompt:        prompt,
		HookEventName: event,
	}
	if len(toolInput) > 0 {
		in.toolInput = make(map[string]json.RawMessage, len(toolInput))
		for k, v := range toolInput {
			if raw, err := json.Marshal(v); err == nil {
				in.toolInput[k] = raw
			}
		}
	}
	return in
}

// GetString returns the named tool_input field as a string, or "" when the
// field is absent or not a string.
func (in *Input) GetString(key string) string {
	raw, ok := in.toolInput[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// GetPrompt returns the top-level prompt, falling back to tool_input.prompt
// for hosts that nest it.
func (in *Input) GetPrompt() string {
	if in.Prompt != "" {
		return in.Prompt
	}
	return in.GetString("prompt")
}

// NormalizedPrompt is the lowercase, whitespace-trimmed prompt used by the
// intent cascade.
func (in *Input) NormalizedPrompt() string {
	return strings.TrimSpace(strings.ToLower(in.GetPrompt()))
}

// Today returns the local calendar date in the format used throughout the
// session record and injected context.
func Today() string {
	return time.Now().Format("2006-01-02")
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
