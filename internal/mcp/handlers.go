package mcp

import (
	"context"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"hookgate/internal/gate"
	"hookgate/internal/hook"
	"hookgate/internal/intent"
)

// CheckInput defines parameters for the hookgate_check tool.
type CheckInput struct {
	HookEventName string         `json:"hook_event_name" jsonschema:"event category (UserPromptSubmit/PreToolUse/PostToolUse/SubagentStart/SubagentStop)"`
	ToolName      string         `json:"tool_name,omitempty" jsonschema:"tool being invoked"`
	Prompt        string         `json:"prompt,omitempty" jsonschema:"user prompt for UserPromptSubmit events"`
	ToolInput     map[string]any `json:"tool_input,omitempty" jsonschema:"tool parameters"`
}

// CheckOutput contains the dry-run verdict.
type CheckOutput struct {
	Chain    string `json:"chain"`
	Decision string `json:"decision"`
	Gate     string `json:"gate,omitempty"`
	Reason   string `json:"reason,omitempty"`
	Context  string `json:"context,omitempty"`
}

// ClassifyInput defines parameters for the hookgate_classify tool.
type ClassifyInput struct {
	Prompt string `json:"prompt" jsonschema:"prompt to classify"`
}

// ClassifyOutput contains the classification result.
type ClassifyOutput struct {
	Type             string   `json:"type"`
	Domain           string   `json:"domain,omitempty"`
	Skills           []string `json:"skills,omitempty"`
	Agent            string   `json:"agent,omitempty"`
	SubAgents        []string `json:"sub_agents,omitempty"`
	ResearchRequired bool     `json:"research_required"`
	Confidence       string   `json:"confidence"`
	Trivial          bool     `json:"trivial,omitempty"`
	StatusQuery      bool     `json:"status_query,omitempty"`
}

// SessionInput is empty; the session is keyed by workspace and date.
type SessionInput struct{}

// SessionOutput summarizes the session record.
type SessionOutput struct {
	ID             string   `json:"id"`
	Date           string   `json:"date"`
	Project        string   `json:"project,omitempty"`
	TurnCount      int      `json:"turn_count"`
	ResearchDone   bool     `json:"research_done"`
	ResearchTopic  string   `json:"research_topic,omitempty"`
	PostCompact    bool     `json:"post_compact"`
	CompactCount   int      `json:"compact_count"`
	CurrentTask    string   `json:"current_task,omitempty"`
	TaskStatus     string   `json:"task_status,omitempty"`
	IntentType     string   `json:"intent_type,omitempty"`
	IntentDomain   string   `json:"intent_domain,omitempty"`
	FilesModified  []string `json:"files_modified,omitempty"`
	TasksCreated   int      `json:"tasks_created"`
	TasksCompleted int      `json:"tasks_completed"`
}

func (s *Server) handleCheck(ctx context.Context, req *mcpsdk.CallToolRequest, input CheckInput) (*mcpsdk.CallToolResult, CheckOutput, error) {
	in := hook.NewInput(input.HookEventName, input.ToolName, input.Prompt, input.ToolInput)
	env := gate.NewEnv(in, s.currentConfig(), s.sessions, s.log)
	env.DryRun = true

	chain, result := gate.Dispatch(env)

	out := CheckOutput{
		Chain:    chain.String(),
		Decision: result.Kind.String(),
		Gate:     result.Gate,
		Reason:   result.Reason,
		Context:  result.Context,
	}
	if result.Kind == gate.Denied {
		return &mcpsdk.CallToolResult{IsError: true}, out, nil
	}
	return nil, out, nil
}

func (s *Server) handleClassify(ctx context.Context, req *mcpsdk.CallToolRequest, input ClassifyInput) (*mcpsdk.CallToolResult, ClassifyOutput, error) {
	prompt := strings.TrimSpace(strings.ToLower(input.Prompt))
	if prompt == "" {
		return nil, ClassifyOutput{Type: "unclassified", Confidence: "low"}, nil
	}
	if intent.IsTrivial(prompt) {
		return nil, ClassifyOutput{Type: "trivial", Confidence: "high", Trivial: true}, nil
	}
	if intent.IsStatusQuery(prompt) {
		return nil, ClassifyOutput{Type: "status", Confidence: "high", StatusQuery: true}, nil
	}

	c := intent.Classify(prompt)
	return nil, ClassifyOutput{
		Type:             c.Type,
		Domain:           c.Domain,
		Skills:           c.Skills,
		Agent:            c.Agent,
		SubAgents:        c.SubAgents,
		ResearchRequired: c.ResearchRequired,
		Confidence:       c.Confidence,
	}, nil
}

func (s *Server) handleSession(ctx context.Context, req *mcpsdk.CallToolRequest, input SessionInput) (*mcpsdk.CallToolResult, SessionOutput, error) {
	st := s.sessions.Load()
	return nil, SessionOutput{
		ID:             st.ID,
		Date:           st.Date,
		Project:        st.Project,
		TurnCount:      st.TurnCount,
		ResearchDone:   st.ResearchDone,
		ResearchTopic:  st.ResearchTopic,
		PostCompact:    st.PostCompact,
		CompactCount:   st.CompactCount,
		CurrentTask:    st.CurrentTask,
		TaskStatus:     st.TaskStatus,
		IntentType:     st.IntentType,
		IntentDomain:   st.IntentDomain,
		FilesModified:  st.FilesModified,
		TasksCreated:   st.TasksCreated,
		TasksCompleted: st.TasksCompleted,
	}, nil
}
