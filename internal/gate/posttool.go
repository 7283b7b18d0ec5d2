package gate

import (
	"hookgate/internal/hook"
)

// routePostTool records tool completions into the session. Post-tool gates
// never deny; they either annotate or silently pass.
func routePostTool(e *Env) Result {
	switch e.In.ToolName {
	case "Task":
		return announceAgentComplete(e)
	case "WebSearch":
		return recordResearch(e, e.In.GetString("query"))
	case "WebFetch":
		return recordResearch(e, e.In.GetString("url"))
	case "TaskCreate":
		return recordTaskCreated(e)
	case "TaskUpdate":
		return recordTaskUpdated(e)
	}
	return allow()
}

func announceAgentComplete(e *Env) Result {
	agent := e.In.GetString("subagent_type")
	if agent == "" {
		return allow()
	}
	return warn("AGENT_COMPLETE", []hook.KV{
		{Key: "agent", Value: agent},
		{Key: "next", Value: "verify_output_before_proceeding"},
	})
}

// recordResearch marks the research flag on the session, unblocking code
// writes for the rest of the prompt.
func recordResearch(e *Env, topic string) Result {
	e.Session().MarkResearchDone(topic)
	e.SaveSession()
	return allow()
}

func recordTaskCreated(e *Env) Result {
	sess := e.Session()
	sess.TasksCreated++
	if subject := e.In.GetString("subject"); subject != "" {
		sess.SetCurrentTask(subject)
	}
	e.SaveSession()
	return allow()
}

func recordTaskUpdated(e *Env) Result {
	sess := e.Session()
	switch e.In.GetString("status") {
	case "completed", "deleted":
		sess.TasksCompleted++
		sess.ClearTask()
	case "in_progress":
		if subject := e.In.GetString("subject"); subject != "" {
			sess.SetCurrentTask(subject)
		}
	}
	e.SaveSession()
	return allow()
}
