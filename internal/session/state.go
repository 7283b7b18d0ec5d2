// Package session manages the per-day, per-workspace session record: the
// only durable state shared across gate invocations. The record lives in a
// single bracket-section key:value file, rewritten in full (temp file +
// atomic rename) on every mutation.
//
// Known limitation: concurrent invocations perform unsynchronized
// read-modify-write cycles against the same file. Each write is atomic, but
// overlapping writers can lose updates. The host does not issue truly
// concurrent writes in practice, so no cross-process locking is attempted.
package session

import (
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"time"
)

const defaultReinforceEveryN = 15

// TrainingCutoff is the model knowledge cutoff announced in injected
// context.
const TrainingCutoff = "2025-01"

// State is the session record. Valid only for the calendar date it was
// created on; a stale record is discarded on load.
type State struct {
	ID                string
	Date              string
	Project           string
	WorkDir           string
	ResearchDone      bool
	MemoryQueried     bool
	DelegationInvoked bool
	NLUParsed         bool
	PostCompact       bool
	CompactCount      int
	TurnCount         int
	LastReinforceTurn int
	ReinforceEveryN   int
	CurrentTask       string
	TaskStatus        string
	IntentType        string
	IntentDomain      string
	IntentSubAgents   []string
	IntentSkills      []string
	ResearchTopic     string
	FilesModified     []string
	AegisVerified     bool
	TasksCreated      int
	TasksCompleted    int
}

// NewState returns the documented defaults for a fresh session in workDir.
func NewState(workDir string) *State {
	date := time.Now().Format("2006-01-02")
	return &State{
		ID:              sessionID(workDir, date),
		Date:            date,
		Project:         detectProject(workDir),
		WorkDir:         workDir,
		ReinforceEveryN: defaultReinforceEveryN,
	}
}

// sessionID derives a deterministic identifier from workspace path and
// calendar date, so every invocation in the same workspace on the same day
// agrees on the identity without coordination.
func sessionID(workDir, date string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(workDir))
	_, _ = h.Write([]byte(date))
	return fmt.Sprintf("sess_%016x", h.Sum64())
}

// detectProject returns the directory name when workDir is a git repository
// root, otherwise "".
func detectProject(workDir string) string {
	if workDir == "" {
		return ""
	}
	if _, err := os.Stat(filepath.Join(workDir, ".git")); err == nil {
		return filepath.Base(workDir)
	}
	return ""
}

// HasTask reports whether a task is active.
func (s *State) HasTask() bool {
	return s.CurrentTask != ""
}

// IncrementTurn advances the turn counter.
func (s *State) IncrementTurn() {
	s.TurnCount++
}

// ResetResearchForNewPrompt clears the research and delegation flags unless
// a task is in flight; each new piece of work requires fresh research.
func (s *State) ResetResearchForNewPrompt() {
	if !s.HasTask() {
		s.ResearchDone = false
		s.DelegationInvoked = false
	}
}

// NeedsReinforcement reports whether enough turns have passed since the
// last reinforcement block was injected.
func (s *State) NeedsReinforcement() bool {
	threshold := s.ReinforceEveryN
	if threshold <= 0 {
		threshold = defaultReinforceEveryN
	}
	return s.TurnCount-s.LastReinforceTurn >= threshold
}

// MarkReinforcementDone records the current turn as the last reinforcement.
func (s *State) MarkReinforcementDone() {
	s.LastReinforceTurn = s.TurnCount
}

// MarkPostCompact flags the session as freshly compacted.
func (s *State) MarkPostCompact() {
	s.PostCompact = true
	s.CompactCount++
}

// MarkResearchDone records a completed research step and its topic.
func (s *State) MarkResearchDone(topic string) {
	s.ResearchDone = true
	if topic != "" {
		s.ResearchTopic = topic
	}
}

// StoreIntent persists the latest classification result.
func (s *State) StoreIntent(intentType, domain string, subAgents, skills []string) {
	s.IntentType = intentType
	s.IntentDomain = domain
	s.IntentSubAgents = append([]string(nil), subAgents...)
	s.IntentSkills = append([]string(nil), skills...)
}

// SetCurrentTask starts tracking a task.
func (s *State) SetCurrentTask(subject string) {
	s.CurrentTask = subject
	s.TaskStatus = "in_progress"
}

// ClearTask stops tracking the active task.
func (s *State) ClearTask() {
	s.CurrentTask = ""
	s.TaskStatus = ""
}

// AddFileModified records a modified path, deduplicated by exact match.
func (s *State) AddFileModified(path string) {
	for _, p := range s.FilesModified {
		if p == path {
			return
		}
	}
	s.FilesModified = append(s.FilesModified, path)
}
