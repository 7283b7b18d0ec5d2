package gate

import (
	"fmt"
	"strings"

	"hookgate/internal/hook"
	"hookgate/internal/policy"
)

// routePreTool dispatches the pre-tool event to the per-tool gate. Tools
// without a gate resolve to Silent-Allow.
func routePreTool(e *Env) Result {
	switch e.In.ToolName {
	case "Bash":
		return checkBash(e)
	case "Read", "Glob", "Grep":
		return checkRead(e)
	case "Task":
		return checkTaskDelegation(e)
	case "Skill":
		return checkSkill(e)
	case "WebFetch":
		return checkWebFetch(e)
	case "TaskCreate", "TaskUpdate", "TaskGet", "TaskOutput":
		return checkTaskTracker(e)
	}
	return allow()
}

// checkBash gates shell commands: destructive patterns deny, legacy tools
// deny with a modern replacement, risky prefixes warn.
func checkBash(e *Env) Result {
	command := e.In.GetString("command")
	if strings.TrimSpace(command) == "" {
		return deny("BASH", "empty_command")
	}

	if e.Cfg.IsBlockedCommand(command) {
		return deny("BASH", "blocked_command:"+command)
	}
	if policy.IsBlockedCommand(command) {
		return deny("BASH", "destructive_pattern:"+command)
	}

	if m, found := policy.DetectLegacyCommand(command); found {
		return deny("RUST_CLI", fmt.Sprintf(
			"LEGACY_BLOCKED:%s:USE:%s:%s", m.Legacy, m.Replacement, m.Reason))
	}

	trimmed := strings.TrimSpace(command)
	if strings.HasPrefix(trimmed, "sudo") {
		return warn("BASH", []hook.KV{
			{Key: "warning", Value: "sudo_invocation"},
			{Key: "command", Value: command},
		})
	}
	for _, w := range e.Cfg.Bash.WarnCommands {
		if w != "" && strings.Contains(strings.ToLower(command), strings.ToLower(w)) {
			return warn("BASH", []hook.KV{
				{Key: "warning", Value: "risky_command:" + w},
				{Key: "command", Value: command},
			})
		}
	}
	return allow()
}

// checkRead gates file reads: credential stores, key material, and
// secret-shaped names deny; warn-listed names and large data files warn.
func checkRead(e *Env) Result {
	filePath := e.In.GetString("file_path")
	if filePath == "" {
		filePath = e.In.GetString("path")
	}
	if filePath == "" {
		filePath = e.In.GetString("pattern")
	}
	if filePath == "" {
		if e.In.ToolName == "Read" {
			return deny("READ", "no_file_path")
		}
		return allow()
	}

	if e.Cfg.IsBlockedReadPath(filePath) {
		return deny("READ", "blocked_path:"+filePath)
	}
	if e.Cfg.IsBlockedExtension(filePath) {
		return deny("READ", "blocked_extension:"+filePath)
	}
	if policy.IsSensitivePath(filePath) {
		return deny("READ", "sensitive_file:"+filePath)
	}
	if e.Cfg.IsWarnPath(filePath) {
		return warn("READ", []hook.KV{
			{Key: "warning", Value: "may_contain_secrets"},
			{Key: "path", Value: filePath},
		})
	}
	if policy.IsLargeFile(filePath) {
		return warn("READ", []hook.KV{
			{Key: "warning", Value: "large_file_use_head_or_grep"},
			{Key: "path", Value: filePath},
		})
	}
	return allow()
}

// checkTaskDelegation validates the subagent type on Task invocations and
// injects the orchestration flow for engineer delegations.
func checkTaskDelegation(e *Env) Result {
	agent := e.In.GetString("subagent_type")
	if agent == "" {
		return deny("CEO", "Task_requires_subagent_type")
	}
	if !policy.IsValidAgent(agent) {
		return deny("CEO", "unknown_agent:"+agent)
	}
	if policy.IsEngineerAgent(agent) {
		return warn("CEO_ORCHESTRATION", []hook.KV{
			{Key: "agent", Value: agent},
			{Key: "flow", Value: "DELEGATE->VERIFY->AEGIS"},
		})
	}
	return allow()
}

// checkSkill requires a skill name and routes the invocation visibly.
func checkSkill(e *Env) Result {
	name := e.In.GetString("skill")
	if name == "" {
		name = e.In.GetString("name")
	}
	if name == "" {
		return deny("SKILL", "no_skill_name")
	}
	return warn("SKILL", []hook.KV{
		{Key: "routed", Value: name},
	})
}

// checkWebFetch reuses the secret-content scan on the fetch prompt so
// credentials cannot be exfiltrated through a fetch body.
func checkWebFetch(e *Env) Result {
	payload := e.In.GetString("prompt") + "\n" + e.In.GetString("url")
	if pattern, found := policy.DetectSecretContent(payload); found {
		return deny("CONTENT", "sensitive:"+pattern)
	}
	return allow()
}

// validTaskStatuses are the states the task tracker accepts.
var validTaskStatuses = map[string]bool{
	"pending":     true,
	"in_progress": true,
	"completed":   true,
	"deleted":     true,
}

// checkTaskTracker validates the task-tracker tool fields before the call
// reaches the tracker.
func checkTaskTracker(e *Env) Result {
	// The tracker tools are inconsistent on the wire: TaskUpdate and
	// TaskGet carry taskId, TaskOutput carries task_id.
	switch e.In.ToolName {
	case "TaskCreate":
		if e.In.GetString("subject") == "" {
			return deny("TASK_GATE", "TaskCreate_requires_subject")
		}
		if e.In.GetString("description") == "" {
			return deny("TASK_GATE", "TaskCreate_requires_description")
		}
	case "TaskUpdate":
		if e.In.GetString("taskId") == "" {
			return deny("TASK_GATE", "TaskUpdate_requires_taskId")
		}
		if status := e.In.GetString("status"); status != "" && !validTaskStatuses[status] {
			return deny("TASK_GATE", "invalid_status:"+status)
		}
	case "TaskGet":
		if e.In.GetString("taskId") == "" {
			return deny("TASK_GATE", "TaskGet_requires_taskId")
		}
	case "TaskOutput":
		if e.In.GetString("task_id") == "" {
			return deny("TASK_GATE", "TaskOutput_requires_task_id")
		}
	}
	return allow()
}
