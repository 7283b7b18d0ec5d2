package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Store reads and writes the session record file.
type Store struct {
	path    string
	workDir string
}

// DefaultPath is the canonical session record location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "hookgate", "stm", "session-state.toon")
}

// NewStore creates a store for the given record path and workspace.
// Empty path means DefaultPath; empty workDir means the process working
// directory.
func NewStore(path, workDir string) *Store {
	if path == "" {
		path = DefaultPath()
	}
	if workDir == "" {
		if wd, err := os.Getwd(); err == nil {
			workDir = wd
		}
	}
	return &Store{path: path, workDir: workDir}
}

// Path returns the record file location.
func (st *Store) Path() string { return st.path }

// Load returns the current session record. A missing, unreadable, or
// stale-dated record yields fresh defaults — yesterday's state is never
// silently reused.
func (st *Store) Load() *State {
	s, err := st.load()
	if err != nil || s == nil {
		return NewState(st.workDir)
	}
	return s
}

// load parses the record file; returns (nil, nil) for absent or stale
// records.
func (st *Store) load() (*State, error) {
	data, err := os.ReadFile(st.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	s := NewState(st.workDir)
	fields := parseFields(string(data))

	if v, ok := fields["id"]; ok {
		s.ID = v
	}
	if v, ok := fields["today"]; ok {
		s.Date = v
	}
	if v, ok := fields["project"]; ok {
		s.Project = v
	}
	if v, ok := fields["workdir"]; ok {
		s.WorkDir = v
	}
	if v, ok := fields["research_done"]; ok {
		s.ResearchDone = v == "true"
	}
	if v, ok := fields["memory"]; ok {
		s.MemoryQueried = v == "true"
	}
	if v, ok := fields["ceo"]; ok {
		s.DelegationInvoked = v == "true"
	}
	if v, ok := fields["nlu"]; ok {
		s.NLUParsed = v == "true"
	}
	if v, ok := fields["post_compact"]; ok {
		s.PostCompact = v == "true"
	}
	s.CompactCount = intField(fields, "compact_count", 0)
	s.TurnCount = intField(fields, "turn_count", 0)
	s.LastReinforceTurn = intField(fields, "last_reinforce_turn", 0)
	s.ReinforceEveryN = intField(fields, "reinforce_every_n", defaultReinforceEveryN)
	if v, ok := fields["task"]; ok {
		s.CurrentTask = v
	}
	if v, ok := fields["task_status"]; ok {
		s.TaskStatus = v
	}
	if v, ok := fields["type"]; ok {
		s.IntentType = v
	}
	if v, ok := fields["domain"]; ok {
		s.IntentDomain = v
	}
	if v, ok := fields["subagents"]; ok {
		s.IntentSubAgents = splitCSV(v)
	}
	if v, ok := fields["skills"]; ok {
		s.IntentSkills = splitCSV(v)
	}
	if v, ok := fields["research_topic"]; ok {
		s.ResearchTopic = v
	}
	if v, ok := fields["files_modified"]; ok {
		s.FilesModified = splitCSV(v)
	}
	if v, ok := fields["aegis"]; ok {
		s.AegisVerified = v == "true"
	}
	s.TasksCreated = intField(fields, "tasks_created", 0)
	s.TasksCompleted = intField(fields, "tasks_completed", 0)

	// Stale record: treat as absent.
	if s.Date != time.Now().Format("2006-01-02") {
		return nil, nil
	}
	return s, nil
}

// Save serializes the full record and atomically replaces the canonical
// path, so a concurrent reader never observes a partial write.
func (st *Store) Save(s *State) error {
	if err := os.MkdirAll(filepath.Dir(st.path), 0750); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	var b strings.Builder
	b.WriteString("# Session State - SP/1.0\n")
	b.WriteString("# Auto-generated, do not edit\n\n")

	b.WriteString("[SESSION]\n")
	writeKV(&b, "id", s.ID)
	writeKV(&b, "today", s.Date)
	writeKV(&b, "project", s.Project)
	writeKV(&b, "workdir", s.WorkDir)
	writeKV(&b, "cutoff", TrainingCutoff)
	b.WriteString("\n[STATE]\n")
	writeKV(&b, "research_done", boolString(s.ResearchDone))
	writeKV(&b, "memory", boolString(s.MemoryQueried))
	writeKV(&b, "ceo", boolString(s.DelegationInvoked))
	writeKV(&b, "nlu", boolString(s.NLUParsed))
	writeKV(&b, "turn_count", strconv.Itoa(s.TurnCount))
	writeKV(&b, "last_reinforce_turn", strconv.Itoa(s.LastReinforceTurn))
	writeKV(&b, "reinforce_every_n", strconv.Itoa(s.ReinforceEveryN))
	writeKV(&b, "aegis", boolString(s.AegisVerified))
	writeKV(&b, "tasks_created", strconv.Itoa(s.TasksCreated))
	writeKV(&b, "tasks_completed", strconv.Itoa(s.TasksCompleted))
	writeKV(&b, "research_topic", s.ResearchTopic)
	if len(s.FilesModified) > 0 {
		writeKV(&b, "files_modified", strings.Join(s.FilesModified, ","))
	}
	b.WriteString("\n[COMPACT]\n")
	writeKV(&b, "post_compact", boolString(s.PostCompact))
	writeKV(&b, "compact_count", strconv.Itoa(s.CompactCount))
	b.WriteString("\n[TASK]\n")
	writeKV(&b, "task", s.CurrentTask)
	writeKV(&b, "task_status", s.TaskStatus)
	if s.IntentType != "" {
		b.WriteString("\n[INTENT_BRIDGE]\n")
		writeKV(&b, "type", s.IntentType)
		writeKV(&b, "domain", s.IntentDomain)
		if len(s.IntentSubAgents) > 0 {
			writeKV(&b, "subagents", strings.Join(s.IntentSubAgents, ","))
		}
		if len(s.IntentSkills) > 0 {
			writeKV(&b, "skills", strings.Join(s.IntentSkills, ","))
		}
	}

	tmp := st.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("write temp state: %w", err)
	}
	if err := os.Rename(tmp, st.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

// parseFields flattens the bracket-section format into a key→value map.
// Section headers group keys for humans; keys are globally unique, so the
// parser ignores the headers. Unknown keys are ignored by the caller.
func parseFields(content string) map[string]string {
	fields := make(map[string]string)
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "[") {
			continue
		}
		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])
		fields[key] = value
	}
	return fields
}

func writeKV(b *strings.Builder, key, value string) {
	b.WriteString(key)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\n")
}

func intField(fields map[string]string, key string, def int) int {
	v, ok := fields[key]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
