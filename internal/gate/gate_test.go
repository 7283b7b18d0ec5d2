package gate

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"hookgate/internal/config"
	"hookgate/internal/hook"
	"hookgate/internal/session"
)

func newStore(t *testing.T) *session.Store {
	t.Helper()
	dir := t.TempDir()
	return session.NewStore(filepath.Join(dir, "state.toon"), dir)
}

func newEnv(t *testing.T, in *hook.Input) *Env {
	t.Helper()
	return NewEnv(in, config.Default(), newStore(t), nil)
}

func writeEvent(tool string, fields map[string]any) *hook.Input {
	return hook.NewInput("PreToolUse", tool, "", fields)
}

func TestDispatchRouting(t *testing.T) {
	tests := []struct {
		event string
		tool  string
		chain Chain
	}{
		{"UserPromptSubmit", "", ChainIntent},
		{"PreToolUse", "Write", ChainPreWrite},
		{"PreToolUse", "Edit", ChainPreWrite},
		{"PreToolUse", "Bash", ChainPreTool},
		{"PostToolUse", "Write", ChainPostWrite},
		{"PostToolUse", "WebSearch", ChainPostTool},
		{"SubagentStart", "Task", ChainSubagent},
		{"SubagentStop", "Task", ChainSubagent},
		{"", "", ChainPreTool},
		{"SomethingNew", "Mystery", ChainPreTool},
	}
	for _, tt := range tests {
		in := hook.NewInput(tt.event, tt.tool, "", nil)
		chain, _ := Dispatch(newEnv(t, in))
		if chain != tt.chain {
			t.Errorf("chainFor(%q, %q) = %v, want %v", tt.event, tt.tool, chain, tt.chain)
		}
	}
}

func TestUnknownToolSilentAllow(t *testing.T) {
	_, r := Dispatch(newEnv(t, hook.NewInput("PreToolUse", "Mystery", "", nil)))
	if r.Kind != SilentAllow {
		t.Errorf("unknown tool = %+v, want silent allow", r)
	}
}

func TestPanickingCheckDegradesToPass(t *testing.T) {
	env := newEnv(t, hook.NewInput("PreToolUse", "Bash", "", nil))
	r := runCheck(env, func(*Env) Result { panic("boom") })
	if r.Decided() {
		t.Errorf("panicked check decided: %+v", r)
	}
}

// --- pre-write chain ---

func TestPreWriteSecretContent(t *testing.T) {
	in := writeEvent("Write", map[string]any{
		"file_path": "/src/cfg.go",
		"content":   `password = "hunter2"`,
	})
	r := Run(newEnv(t, in), ChainPreWrite)
	if r.Kind != Denied || r.Gate != "CONTENT" {
		t.Errorf("secret write = %+v", r)
	}
}

func TestPreWriteSecretOutranksAntiprod(t *testing.T) {
	// Content trips both the secret scan and the TODO scan; the secret
	// gate must win.
	in := writeEvent("Write", map[string]any{
		"file_path": "/src/cfg.go",
		"content":   "// TODO: rotate\napi_key = \"sk-1\"\n",
	})
	r := Run(newEnv(t, in), ChainPreWrite)
	if r.Gate != "CONTENT" {
		t.Errorf("gate = %q, want CONTENT before ANTIPROD", r.Gate)
	}
}

func TestPreWriteCodeGuardCompleteDeletion(t *testing.T) {
	in := writeEvent("Edit", map[string]any{
		"file_path":  "/src/engine.go",
		"old_string": strings.Repeat("func Process() {}\n", 5),
		"new_string": "",
	})
	r := Run(newEnv(t, in), ChainPreWrite)
	if r.Kind != Denied || r.Gate != "CODE_GUARD" {
		t.Errorf("deletion edit = %+v", r)
	}
	if !strings.Contains(r.Reason, "complete_deletion") {
		t.Errorf("reason = %q", r.Reason)
	}
}

func TestPreWriteCodeGuardImplBlockRemoval(t *testing.T) {
	in := writeEvent("Edit", map[string]any{
		"file_path":  "/src/token.rs",
		"old_string": "impl Display for Token {\n    fn fmt(&self, f: &mut Formatter) -> fmt::Result {\n        write!(f, \"{}\", self.0)\n    }\n}\n",
		"new_string": "fn format_token(t: &Token) -> String {\n    t.0.clone()\n}\n\nfn render(t: &Token) -> String {\n    format_token(t)\n}\n",
	})
	r := Run(newEnv(t, in), ChainPreWrite)
	if r.Kind != Denied || r.Gate != "CODE_GUARD" {
		t.Fatalf("impl removal edit = %+v", r)
	}
	if !strings.Contains(r.Reason, "impl_block") {
		t.Errorf("reason = %q", r.Reason)
	}

	// Rewriting an impl block into another impl block stays allowed.
	keep := writeEvent("Edit", map[string]any{
		"file_path":  "/src/token.rs",
		"old_string": "impl Token {\n    fn new() -> Self { Token(String::new()) }\n}\n",
		"new_string": "impl Token {\n    fn new(s: &str) -> Self { Token(s.to_string()) }\n}\n",
	})
	env := newEnv(t, keep)
	env.Session().MarkResearchDone("x")
	if r := Run(env, ChainPreWrite); r.Kind == Denied {
		t.Errorf("impl rewrite denied: %+v", r)
	}
}

func TestPreWriteAntiprodTodo(t *testing.T) {
	in := writeEvent("Write", map[string]any{
		"file_path": "/src/engine.go",
		"content":   "package engine\n// TODO implement later\n",
	})
	r := Run(newEnv(t, in), ChainPreWrite)
	if r.Kind != Denied || r.Gate != "ANTIPROD" {
		t.Errorf("todo write = %+v", r)
	}
}

func TestPreWriteAntiprodSkipsTestPaths(t *testing.T) {
	in := writeEvent("Write", map[string]any{
		"file_path": "/src/engine_test.go",
		"content":   "package engine\n// TODO table cases\n",
	})
	env := newEnv(t, in)
	env.Session().MarkResearchDone("x")
	r := Run(env, ChainPreWrite)
	if r.Kind == Denied {
		t.Errorf("test path denied: %+v", r)
	}
}

func TestPreWriteResearchRequired(t *testing.T) {
	in := writeEvent("Write", map[string]any{
		"file_path": "/src/app.go",
		"content":   "package app\n",
	})

	env := newEnv(t, in)
	r := Run(env, ChainPreWrite)
	if r.Kind != Denied || r.Gate != "TABULA_RASA" {
		t.Errorf("unresearched code write = %+v", r)
	}
	if r.Reason != "WebSearch_required_before_code" {
		t.Errorf("reason = %q", r.Reason)
	}

	env2 := newEnv(t, in)
	env2.Session().MarkResearchDone("go project layout")
	if r := Run(env2, ChainPreWrite); r.Kind != SilentAllow {
		t.Errorf("researched code write = %+v", r)
	}
}

func TestPreWriteBlockedPath(t *testing.T) {
	in := writeEvent("Write", map[string]any{
		"file_path": "/etc/hosts",
		"content":   "127.0.0.1 example.internal\n",
	})
	r := Run(newEnv(t, in), ChainPreWrite)
	if r.Kind != Denied || r.Gate != "ENFORCER" {
		t.Errorf("system path write = %+v", r)
	}
}

// --- post-write chain ---

func TestPostWriteMockData(t *testing.T) {
	in := writeEvent("Write", map[string]any{
		"file_path": "/src/seed.go",
		"content":   "package seed\nvar users = mock_data()\n",
	})
	r := Run(newEnv(t, in), ChainPostWrite)
	if r.Kind != Denied || r.Gate != "ANTIPROD" {
		t.Errorf("mock data = %+v", r)
	}
}

func TestPostWriteLineBudget(t *testing.T) {
	in := writeEvent("Write", map[string]any{
		"file_path": "/src/big.go",
		"content":   strings.Repeat("var filler = 1\n", 120),
	})
	r := Run(newEnv(t, in), ChainPostWrite)
	if r.Kind != Denied || r.Gate != "DACE" {
		t.Errorf("oversize write = %+v", r)
	}
	if !strings.Contains(r.Reason, "exceeds_100_lines") {
		t.Errorf("reason = %q", r.Reason)
	}
}

func TestPostWriteTracksModifiedFile(t *testing.T) {
	store := newStore(t)
	in := writeEvent("Write", map[string]any{
		"file_path": "/src/ok.go",
		"content":   "package ok\n",
	})
	env := NewEnv(in, config.Default(), store, nil)
	if r := Run(env, ChainPostWrite); r.Kind == Denied {
		t.Fatalf("clean write denied: %+v", r)
	}

	got := store.Load()
	if len(got.FilesModified) != 1 || got.FilesModified[0] != "/src/ok.go" {
		t.Errorf("FilesModified = %v", got.FilesModified)
	}
}

func TestPostWriteLintAdvisory(t *testing.T) {
	in := writeEvent("Write", map[string]any{
		"file_path": "/src/style.go",
		"content":   "package style\nvar a = 1 \nvar b = 2\t\n",
	})
	r := Run(newEnv(t, in), ChainPostWrite)
	if r.Kind != AllowContext || r.Gate != "LINT" {
		t.Errorf("lint advisory = %+v", r)
	}
	if !strings.Contains(r.Context, "trailing_ws:2") {
		t.Errorf("context = %q", r.Context)
	}
}

// --- pre-tool chain ---

func TestPreToolBash(t *testing.T) {
	tests := []struct {
		command string
		kind    Kind
		gate    string
	}{
		{"", Denied, "BASH"},
		{"rm -rf /", Denied, "BASH"},
		{"dd if=/dev/zero of=/dev/sda", Denied, "BASH"},
		{"ls -la", Denied, "RUST_CLI"},
		{"cat main.go", Denied, "RUST_CLI"},
		{"sudo systemctl restart app", AllowContext, "BASH"},
		{"sudo", AllowContext, "BASH"},
		{"  sudo -i", AllowContext, "BASH"},
		{"git status", SilentAllow, ""},
		{"rg pattern src/", SilentAllow, ""},
	}
	for _, tt := range tests {
		in := writeEvent("Bash", map[string]any{"command": tt.command})
		r := Run(newEnv(t, in), ChainPreTool)
		if r.Kind != tt.kind || r.Gate != tt.gate {
			t.Errorf("bash %q = kind %v gate %q, want kind %v gate %q",
				tt.command, r.Kind, r.Gate, tt.kind, tt.gate)
		}
	}
}

func TestPreToolBashLegacyReason(t *testing.T) {
	in := writeEvent("Bash", map[string]any{"command": "ls -la"})
	r := Run(newEnv(t, in), ChainPreTool)
	if !strings.Contains(r.Reason, "LEGACY_BLOCKED:ls:USE:eza") {
		t.Errorf("legacy reason = %q", r.Reason)
	}
}

func TestPreToolRead(t *testing.T) {
	tests := []struct {
		path string
		kind Kind
	}{
		{"/etc/shadow", Denied},
		{"/home/u/.ssh/id_rsa", Denied},
		{"/certs/server.pem", Denied},
		{"/app/.env", Denied},
		{"/home/u/db_credentials.txt", Denied},
		{"/docs/token-rotation.md", AllowContext},
		{"/data/events.log", AllowContext},
		{"/src/main.go", SilentAllow},
	}
	for _, tt := range tests {
		in := writeEvent("Read", map[string]any{"file_path": tt.path})
		r := Run(newEnv(t, in), ChainPreTool)
		if r.Kind != tt.kind {
			t.Errorf("read %q = %v, want %v (%+v)", tt.path, r.Kind, tt.kind, r)
		}
	}
}

func TestPreToolReadSensitiveNameDenies(t *testing.T) {
	in := writeEvent("Read", map[string]any{"file_path": "/home/u/db_credentials.txt"})
	r := Run(newEnv(t, in), ChainPreTool)
	if r.Kind != Denied || r.Gate != "READ" {
		t.Fatalf("credentials read = %+v", r)
	}
	if r.Reason != "sensitive_file:/home/u/db_credentials.txt" {
		t.Errorf("reason = %q", r.Reason)
	}
}

func TestPreToolGlobReadsPathField(t *testing.T) {
	in := writeEvent("Glob", map[string]any{
		"path":    "/app/secrets",
		"pattern": "*.go",
	})
	r := Run(newEnv(t, in), ChainPreTool)
	if r.Kind != Denied || r.Gate != "READ" {
		t.Errorf("glob into secrets dir = %+v", r)
	}

	clean := writeEvent("Grep", map[string]any{
		"path":    "/src",
		"pattern": "func main",
	})
	if r := Run(newEnv(t, clean), ChainPreTool); r.Kind != SilentAllow {
		t.Errorf("clean grep = %+v", r)
	}
}

func TestPreToolReadRequiresPath(t *testing.T) {
	in := writeEvent("Read", nil)
	r := Run(newEnv(t, in), ChainPreTool)
	if r.Kind != Denied || r.Reason != "no_file_path" {
		t.Errorf("pathless read = %+v", r)
	}
}

func TestPreToolTaskDelegation(t *testing.T) {
	empty := writeEvent("Task", nil)
	r := Run(newEnv(t, empty), ChainPreTool)
	if r.Kind != Denied || r.Gate != "CEO" || r.Reason != "Task_requires_subagent_type" {
		t.Errorf("empty subagent_type = %+v", r)
	}

	unknown := writeEvent("Task", map[string]any{"subagent_type": "mystery-agent"})
	r = Run(newEnv(t, unknown), ChainPreTool)
	if r.Kind != Denied || r.Reason != "unknown_agent:mystery-agent" {
		t.Errorf("unknown agent = %+v", r)
	}

	engineer := writeEvent("Task", map[string]any{"subagent_type": "backend-engineer"})
	r = Run(newEnv(t, engineer), ChainPreTool)
	if r.Kind != AllowContext || r.Gate != "CEO_ORCHESTRATION" {
		t.Errorf("engineer delegation = %+v", r)
	}
	if !strings.Contains(r.Context, "DELEGATE->VERIFY->AEGIS") {
		t.Errorf("context = %q", r.Context)
	}

	orchestrator := writeEvent("Task", map[string]any{"subagent_type": "ceo"})
	if r := Run(newEnv(t, orchestrator), ChainPreTool); r.Kind != SilentAllow {
		t.Errorf("ceo delegation = %+v", r)
	}
}

func TestPreToolSkill(t *testing.T) {
	unnamed := writeEvent("Skill", nil)
	r := Run(newEnv(t, unnamed), ChainPreTool)
	if r.Kind != Denied || r.Gate != "SKILL" {
		t.Errorf("unnamed skill = %+v", r)
	}

	named := writeEvent("Skill", map[string]any{"skill": "debug-like-expert"})
	r = Run(newEnv(t, named), ChainPreTool)
	if r.Kind != AllowContext || !strings.Contains(r.Context, "debug-like-expert") {
		t.Errorf("named skill = %+v", r)
	}
}

func TestPreToolTaskTracker(t *testing.T) {
	create := writeEvent("TaskCreate", nil)
	r := Run(newEnv(t, create), ChainPreTool)
	if r.Kind != Denied || r.Gate != "TASK_GATE" || r.Reason != "TaskCreate_requires_subject" {
		t.Errorf("subjectless TaskCreate = %+v", r)
	}

	noDesc := writeEvent("TaskCreate", map[string]any{"subject": "wire telemetry"})
	r = Run(newEnv(t, noDesc), ChainPreTool)
	if r.Kind != Denied || r.Reason != "TaskCreate_requires_description" {
		t.Errorf("descriptionless TaskCreate = %+v", r)
	}

	fullCreate := writeEvent("TaskCreate", map[string]any{
		"subject":     "wire telemetry",
		"description": "emit verdict counters to sqlite",
	})
	if r := Run(newEnv(t, fullCreate), ChainPreTool); r.Kind != SilentAllow {
		t.Errorf("complete TaskCreate = %+v", r)
	}

	badStatus := writeEvent("TaskUpdate", map[string]any{"taskId": "t1", "status": "paused"})
	r = Run(newEnv(t, badStatus), ChainPreTool)
	if r.Kind != Denied || r.Reason != "invalid_status:paused" {
		t.Errorf("invalid status = %+v", r)
	}

	ok := writeEvent("TaskUpdate", map[string]any{"taskId": "t1", "status": "completed"})
	if r := Run(newEnv(t, ok), ChainPreTool); r.Kind != SilentAllow {
		t.Errorf("valid update = %+v", r)
	}
}

// The tracker tools disagree on the id field: TaskUpdate and TaskGet send
// taskId, TaskOutput sends task_id. The gate must accept each tool's own
// spelling and reject the id as missing otherwise.
func TestPreToolTaskTrackerIDFieldPerTool(t *testing.T) {
	tests := []struct {
		tool   string
		fields map[string]any
		kind   Kind
		reason string
	}{
		{"TaskUpdate", map[string]any{"taskId": "t1"}, SilentAllow, ""},
		{"TaskUpdate", map[string]any{"task_id": "t1"}, Denied, "TaskUpdate_requires_taskId"},
		{"TaskGet", map[string]any{"taskId": "t1"}, SilentAllow, ""},
		{"TaskGet", map[string]any{"task_id": "t1"}, Denied, "TaskGet_requires_taskId"},
		{"TaskOutput", map[string]any{"task_id": "t1"}, SilentAllow, ""},
		{"TaskOutput", map[string]any{"taskId": "t1"}, Denied, "TaskOutput_requires_task_id"},
	}
	for _, tt := range tests {
		in := writeEvent(tt.tool, tt.fields)
		r := Run(newEnv(t, in), ChainPreTool)
		if r.Kind != tt.kind {
			t.Errorf("%s %v = %v, want %v (%+v)", tt.tool, tt.fields, r.Kind, tt.kind, r)
		}
		if tt.reason != "" && r.Reason != tt.reason {
			t.Errorf("%s %v reason = %q, want %q", tt.tool, tt.fields, r.Reason, tt.reason)
		}
	}
}

// --- post-tool chain ---

func TestPostToolResearchPersists(t *testing.T) {
	store := newStore(t)
	in := hook.NewInput("PostToolUse", "WebSearch", "", map[string]any{"query": "fsnotify debounce"})
	env := NewEnv(in, config.Default(), store, nil)
	if r := Run(env, ChainPostTool); r.Kind != SilentAllow {
		t.Fatalf("websearch post = %+v", r)
	}

	got := store.Load()
	if !got.ResearchDone || got.ResearchTopic != "fsnotify debounce" {
		t.Errorf("research not persisted: %+v", got)
	}
}

func TestPostToolTaskLifecycleCounters(t *testing.T) {
	store := newStore(t)
	cfg := config.Default()

	create := hook.NewInput("PostToolUse", "TaskCreate", "", map[string]any{"subject": "wire telemetry"})
	Run(NewEnv(create, cfg, store, nil), ChainPostTool)

	mid := store.Load()
	if mid.TasksCreated != 1 || mid.CurrentTask != "wire telemetry" || mid.TaskStatus != "in_progress" {
		t.Fatalf("after create: %+v", mid)
	}

	complete := hook.NewInput("PostToolUse", "TaskUpdate", "", map[string]any{"taskId": "t1", "status": "completed"})
	Run(NewEnv(complete, cfg, store, nil), ChainPostTool)

	got := store.Load()
	if got.TasksCompleted != 1 {
		t.Errorf("TasksCompleted = %d", got.TasksCompleted)
	}
	if got.HasTask() {
		t.Errorf("task not cleared: %q", got.CurrentTask)
	}
}

func TestPostToolAgentComplete(t *testing.T) {
	in := hook.NewInput("PostToolUse", "Task", "", map[string]any{"subagent_type": "backend-engineer"})
	r := Run(newEnv(t, in), ChainPostTool)
	if r.Kind != AllowContext || r.Gate != "AGENT_COMPLETE" {
		t.Errorf("agent complete = %+v", r)
	}
}

// --- subagent chain ---

func TestSubagentValidation(t *testing.T) {
	missing := hook.NewInput("SubagentStart", "Task", "", nil)
	r := Run(newEnv(t, missing), ChainSubagent)
	if r.Kind != Denied || r.Gate != "SUBAGENT" {
		t.Errorf("missing subagent = %+v", r)
	}

	unknown := hook.NewInput("SubagentStart", "Task", "", map[string]any{"subagent_type": "ghost"})
	r = Run(newEnv(t, unknown), ChainSubagent)
	if r.Kind != Denied || r.Reason != "unknown_agent:ghost" {
		t.Errorf("unknown subagent = %+v", r)
	}
}

func TestSubagentMarksDelegation(t *testing.T) {
	store := newStore(t)
	in := hook.NewInput("SubagentStart", "Task", "", map[string]any{"subagent_type": "research-director"})
	if r := Run(NewEnv(in, config.Default(), store, nil), ChainSubagent); r.Kind != SilentAllow {
		t.Fatalf("valid subagent = %+v", r)
	}
	if !store.Load().DelegationInvoked {
		t.Error("delegation flag not persisted")
	}
}

func TestSubagentOversizePromptWarns(t *testing.T) {
	in := hook.NewInput("SubagentStart", "Task", "", map[string]any{
		"subagent_type": "research-director",
		"prompt":        strings.Repeat("x", maxSubagentPromptBytes+1),
	})
	r := Run(newEnv(t, in), ChainSubagent)
	if r.Kind != AllowContext || r.Gate != "SUBAGENT" {
		t.Errorf("oversize prompt = %+v", r)
	}
}

// --- intent chain ---

func intentEvent(prompt string) *hook.Input {
	return hook.NewInput("UserPromptSubmit", "", prompt, nil)
}

func TestIntentEmptyPromptSilent(t *testing.T) {
	r := Run(newEnv(t, intentEvent("")), ChainIntent)
	if r.Kind != SilentAllow {
		t.Errorf("empty prompt = %+v", r)
	}
}

func TestIntentTrivialSilent(t *testing.T) {
	store := newStore(t)
	env := NewEnv(intentEvent("thanks"), config.Default(), store, nil)
	r := Run(env, ChainIntent)
	if r.Kind != SilentAllow {
		t.Errorf("trivial prompt = %+v", r)
	}
	if store.Load().TurnCount != 0 {
		t.Error("trivial prompt touched the session")
	}
}

func TestIntentStatusDirective(t *testing.T) {
	r := Run(newEnv(t, intentEvent("what is the status")), ChainIntent)
	if r.Kind != AllowContext {
		t.Fatalf("status prompt = %+v", r)
	}
	if !strings.Contains(r.Context, "[BINARY_FIRST]") {
		t.Errorf("context = %q", r.Context)
	}
}

func TestIntentClassificationDirective(t *testing.T) {
	store := newStore(t)
	env := NewEnv(intentEvent("Optimize the database query"), config.Default(), store, nil)
	r := Run(env, ChainIntent)
	if r.Kind != AllowContext {
		t.Fatalf("classified prompt = %+v", r)
	}
	for _, want := range []string{"type=optimize", "domain=database", "confidence=high", "[BLOCK:RESEARCH]", "[DACE]"} {
		if !strings.Contains(r.Context, want) {
			t.Errorf("context missing %q:\n%s", want, r.Context)
		}
	}

	got := store.Load()
	if got.TurnCount != 1 || got.IntentType != "optimize" || got.IntentDomain != "database" {
		t.Errorf("session after intent: %+v", got)
	}
	if !got.NLUParsed {
		t.Error("NLUParsed not set")
	}
}

func TestIntentPostCompactRecovery(t *testing.T) {
	store := newStore(t)
	s := store.Load()
	s.MarkPostCompact()
	if err := store.Save(s); err != nil {
		t.Fatal(err)
	}

	env := NewEnv(intentEvent("continue with the refactor"), config.Default(), store, nil)
	r := Run(env, ChainIntent)
	if r.Kind != AllowContext || !strings.Contains(r.Context, "[RECOVERY]") {
		t.Errorf("post-compact prompt = %+v", r)
	}
	if store.Load().PostCompact {
		t.Error("post-compact flag not cleared")
	}
}

func TestIntentPeriodicReinforcement(t *testing.T) {
	store := newStore(t)
	s := store.Load()
	s.TurnCount = 14
	if err := store.Save(s); err != nil {
		t.Fatal(err)
	}

	env := NewEnv(intentEvent("proceed please"), config.Default(), store, nil)
	r := Run(env, ChainIntent)
	if r.Kind != AllowContext || !strings.Contains(r.Context, "[REINFORCE]") {
		t.Errorf("turn-15 prompt = %+v", r)
	}
	if got := store.Load(); got.LastReinforceTurn != 15 {
		t.Errorf("LastReinforceTurn = %d", got.LastReinforceTurn)
	}
}

// --- emit ---

func TestEmitShapes(t *testing.T) {
	var pre bytes.Buffer
	Emit(&pre, ChainPreWrite, deny("ENFORCER", "Write:blocked_path:/etc/x"))
	var m map[string]any
	if err := json.Unmarshal(pre.Bytes(), &m); err != nil {
		t.Fatal(err)
	}
	if _, ok := m["hookSpecificOutput"]; !ok {
		t.Errorf("pre-write deny shape = %v", m)
	}

	var post bytes.Buffer
	Emit(&post, ChainPostWrite, deny("DACE", "exceeds_100_lines:140"))
	m = map[string]any{}
	if err := json.Unmarshal(post.Bytes(), &m); err != nil {
		t.Fatal(err)
	}
	if m["decision"] != "block" {
		t.Errorf("post-write deny shape = %v", m)
	}

	var prompt bytes.Buffer
	Emit(&prompt, ChainIntent, allow())
	m = map[string]any{}
	if err := json.Unmarshal(prompt.Bytes(), &m); err != nil {
		t.Fatal(err)
	}
	if m["hookEventName"] != "UserPromptSubmit" {
		t.Errorf("prompt silent shape = %v", m)
	}
}
