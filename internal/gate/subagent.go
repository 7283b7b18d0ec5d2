package gate

import (
	"fmt"

	"hookgate/internal/hook"
	"hookgate/internal/policy"
)

// Large subagent prompts tend to be pasted context dumps; they still run,
// with a warning.
const maxSubagentPromptBytes = 8000

// checkSubagent validates subagent lifecycle events and marks the session's
// delegation flag.
func checkSubagent(e *Env) Result {
	agent := e.In.GetString("subagent_type")
	if agent == "" {
		return deny("SUBAGENT", "missing_subagent_type")
	}
	if !policy.IsValidAgent(agent) {
		return deny("SUBAGENT", "unknown_agent:"+agent)
	}

	e.Session().DelegationInvoked = true
	e.SaveSession()

	if prompt := e.In.GetString("prompt"); len(prompt) > maxSubagentPromptBytes {
		return warn("SUBAGENT", []hook.KV{
			{Key: "warning", Value: fmt.Sprintf("prompt_exceeds_%d_bytes:%d", maxSubagentPromptBytes, len(prompt))},
			{Key: "agent", Value: agent},
		})
	}
	if policy.IsEngineerAgent(agent) {
		return warn("SUBAGENT_ORCHESTRATION", []hook.KV{
			{Key: "agent", Value: agent},
			{Key: "flow", Value: "DELEGATE->VERIFY->AEGIS"},
		})
	}
	return allow()
}
