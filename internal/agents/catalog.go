// Package agents maintains the subagent catalog: the builtin delegation
// hierarchy merged with agents discovered from the user's and workspace's
// .claude/agents directories. Discovered definitions shadow builtins of the
// same name.
package agents

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Delegation hierarchy levels, outermost first.
const (
	LevelNLU      = -1
	LevelCEO      = 0
	LevelEngineer = 1
	LevelReview   = 2
	LevelVerify   = 3
)

// Agent is one catalog entry.
type Agent struct {
	Name        string
	Level       int
	Model       string
	Description string
	Tools       []string
	Path        string
}

func builtin() []Agent {
	return []Agent{
		{Name: "nlu-intent-analyzer", Level: LevelNLU, Model: "haiku",
			Description: "prompt classification before any work starts"},
		{Name: "ceo", Level: LevelCEO, Model: "opus",
			Description: "orchestrator: decomposes work and delegates to engineers"},
		{Name: "research-director", Level: LevelCEO, Model: "sonnet",
			Description: "drives WebSearch research before implementation"},
		{Name: "backend-engineer", Level: LevelEngineer, Model: "sonnet",
			Description: "server-side implementation", Tools: []string{"Read", "Write", "Edit", "Bash"}},
		{Name: "frontend-engineer", Level: LevelEngineer, Model: "sonnet",
			Description: "UI implementation", Tools: []string{"Read", "Write", "Edit", "Bash"}},
		{Name: "code-simplifier", Level: LevelReview, Model: "sonnet",
			Description: "post-implementation simplification pass"},
		{Name: "aegis-guardian", Level: LevelVerify, Model: "sonnet",
			Description: "independent verification: lint, warnings, hidden bugs"},
	}
}

// LevelName names a hierarchy level for catalog output.
func LevelName(level int) string {
	switch level {
	case LevelNLU:
		return "L-1 (NLU)"
	case LevelCEO:
		return "L0 (Orchestration)"
	case LevelEngineer:
		return "L1 (Engineers)"
	case LevelReview:
		return "L1.5 (Review)"
	case LevelVerify:
		return "L2 (Verification)"
	}
	return "Unknown"
}

// Discover returns the merged catalog: workspace definitions shadow user
// definitions, which shadow builtins.
func Discover(workDir string) []Agent {
	merged := map[string]Agent{}
	for _, a := range builtin() {
		merged[a.Name] = a
	}
	if home, err := os.UserHomeDir(); err == nil {
		for _, a := range fromDir(filepath.Join(home, ".claude", "agents")) {
			merged[a.Name] = a
		}
	}
	if workDir != "" {
		for _, a := range fromDir(filepath.Join(workDir, ".claude", "agents")) {
			merged[a.Name] = a
		}
	}

	out := make([]Agent, 0, len(merged))
	for _, a := range merged {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Level != out[j].Level {
			return out[i].Level < out[j].Level
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// fromDir loads agent definitions from <dir>/<name>.md files. The
// definition format is a markdown file with "key: value" frontmatter lines.
func fromDir(dir string) []Agent {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []Agent
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		agent := Agent{
			Name:  strings.TrimSuffix(e.Name(), ".md"),
			Level: LevelEngineer,
			Path:  path,
		}
		applyFrontmatter(path, func(key, value string) {
			switch key {
			case "name":
				agent.Name = value
			case "model":
				agent.Model = value
			case "description":
				agent.Description = value
			case "tools":
				agent.Tools = splitList(value)
			}
		})
		out = append(out, agent)
	}
	return out
}

// Find returns the catalog entry matching name, case-insensitively.
func Find(catalog []Agent, name string) (Agent, bool) {
	lower := strings.ToLower(name)
	for _, a := range catalog {
		if strings.ToLower(a.Name) == lower {
			return a, true
		}
	}
	return Agent{}, false
}

// WriteList renders the catalog grouped by hierarchy level.
func WriteList(w io.Writer, catalog []Agent) {
	fmt.Fprintln(w, "[AGENTS]")
	fmt.Fprintf(w, "count: %d\n", len(catalog))
	fmt.Fprintf(w, "date: %s\n", time.Now().Format("2006-01-02"))
	fmt.Fprintln(w)

	for _, level := range []int{LevelNLU, LevelCEO, LevelEngineer, LevelReview, LevelVerify} {
		var group []Agent
		for _, a := range catalog {
			if a.Level == level {
				group = append(group, a)
			}
		}
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(w, "[%s]\n", LevelName(level))
		for _, a := range group {
			fmt.Fprintf(w, "%s: %s\n", a.Name, a.Description)
		}
		fmt.Fprintln(w)
	}
}

// WriteDetail renders one agent entry.
func WriteDetail(w io.Writer, a Agent) {
	fmt.Fprintln(w, "[AGENT]")
	fmt.Fprintf(w, "name: %s\n", a.Name)
	fmt.Fprintf(w, "level: %s\n", LevelName(a.Level))
	if a.Model != "" {
		fmt.Fprintf(w, "model: %s\n", a.Model)
	}
	fmt.Fprintf(w, "description: %s\n", a.Description)
	if len(a.Tools) > 0 {
		fmt.Fprintf(w, "tools: %s\n", strings.Join(a.Tools, ","))
	}
	if a.Path != "" {
		fmt.Fprintf(w, "path: %s\n", a.Path)
	}
}

// applyFrontmatter streams "key: value" lines from the head of a markdown
// file into fn, stopping at the first non-matching line after the
// frontmatter block.
func applyFrontmatter(path string, fn func(key, value string)) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "---" || line == "" {
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			return
		}
		fn(strings.TrimSpace(key), strings.TrimSpace(value))
	}
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
