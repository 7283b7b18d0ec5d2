// Package skills maintains the skill catalog: builtin skills merged with
// SKILL.md definitions discovered from the user's and workspace's
// .claude/skills directories.
package skills

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

// Skill is one catalog entry.
type Skill struct {
	Name        string
	Category    string
	Description string
	Triggers    []string
	Commands    []string
	Path        string
}

// categoryOrder fixes the listing order; uncategorized skills trail.
var categoryOrder = []string{"git", "session", "memory", "research", "build", "test"}

func builtin() []Skill {
	return []Skill{
		{Name: "commit", Category: "git",
			Description: "stage and commit with a conventional message",
			Triggers:    []string{"commit", "save changes"}},
		{Name: "session-start", Category: "session",
			Description: "initialize the daily session record",
			Commands:    []string{"hookgate session init"}},
		{Name: "memory-query", Category: "memory",
			Description: "query the memory bank before exploring the tree",
			Commands:    []string{"hookgate memory bank"}},
		{Name: "web-research", Category: "research",
			Description: "research current APIs before writing code",
			Triggers:    []string{"research", "look up"}},
		{Name: "test-first", Category: "test",
			Description: "write the failing test before the fix",
			Triggers:    []string{"test", "tdd"}},
	}
}

// Discover returns the merged catalog: workspace definitions shadow user
// definitions, which shadow builtins.
func Discover(workDir string) []Skill {
	merged := map[string]Skill{}
	for _, s := range builtin() {
		merged[s.Name] = s
	}
	if home, err := os.UserHomeDir(); err == nil {
		for _, s := range fromDir(filepath.Join(home, ".claude", "skills")) {
			merged[s.Name] = s
		}
	}
	if workDir != "" {
		for _, s := range fromDir(filepath.Join(workDir, ".claude", "skills")) {
			merged[s.Name] = s
		}
	}

	out := make([]Skill, 0, len(merged))
	for _, s := range merged {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// fromDir loads skills from <dir>/<name>/SKILL.md definitions.
func fromDir(dir string) []Skill {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []Skill
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name(), "SKILL.md")
		if _, err := os.Stat(path); err != nil {
			continue
		}
		skill := Skill{Name: e.Name(), Path: path}
		applyFrontmatter(path, func(key, value string) {
			switch key {
			case "name":
				skill.Name = value
			case "category":
				skill.Category = value
			case "description":
				skill.Description = value
			case "triggers":
				skill.Triggers = splitList(value)
			case "commands":
				skill.Commands = splitList(value)
			}
		})
		out = append(out, skill)
	}
	return out
}

// Find returns the catalog entry matching name, case-insensitively.
func Find(catalog []Skill, name string) (Skill, bool) {
	lower := strings.ToLower(strings.TrimPrefix(name, "/"))
	for _, s := range catalog {
		if strings.ToLower(s.Name) == lower {
			return s, true
		}
	}
	return Skill{}, false
}

// Match returns the skills whose triggers appear in the prompt.
func Match(catalog []Skill, prompt string) []Skill {
	lower := strings.ToLower(prompt)
	var out []Skill
	for _, s := range catalog {
		for _, t := range s.Triggers {
			if t != "" && strings.Contains(lower, strings.ToLower(t)) {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// WriteList renders the catalog grouped by category.
func WriteList(w io.Writer, catalog []Skill) {
	fmt.Fprintln(w, "[SKILLS]")
	fmt.Fprintf(w, "count: %d\n", len(catalog))
	fmt.Fprintf(w, "date: %s\n", time.Now().Format("2006-01-02"))
	fmt.Fprintln(w)

	seen := map[string]bool{}
	writeGroup := func(category string) {
		var group []Skill
		for _, s := range catalog {
			if s.Category == category {
				group = append(group, s)
			}
		}
		if len(group) == 0 {
			return
		}
		name := category
		if name == "" {
			name = "other"
		}
		fmt.Fprintf(w, "[%s]\n", strings.ToUpper(name))
		for _, s := range group {
			fmt.Fprintf(w, "%s: %s\n", s.Name, s.Description)
		}
		fmt.Fprintln(w)
	}
	for _, cat := range categoryOrder {
		seen[cat] = true
		writeGroup(cat)
	}
	for _, s := range catalog {
		if !seen[s.Category] {
			seen[s.Category] = true
			writeGroup(s.Category)
		}
	}
}

// WriteDetail renders one skill entry.
func WriteDetail(w io.Writer, s Skill) {
	fmt.Fprintln(w, "[SKILL]")
	fmt.Fprintf(w, "name: %s\n", s.Name)
	if s.Category != "" {
		fmt.Fprintf(w, "category: %s\n", s.Category)
	}
	fmt.Fprintf(w, "description: %s\n", s.Description)
	if len(s.Triggers) > 0 {
		fmt.Fprintf(w, "triggers: %s\n", strings.Join(s.Triggers, ","))
	}
	if len(s.Commands) > 0 {
		fmt.Fprintf(w, "commands: %s\n", strings.Join(s.Commands, ","))
	}
	if s.Path != "" {
		fmt.Fprintf(w, "path: %s\n", s.Path)
	}
}

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
