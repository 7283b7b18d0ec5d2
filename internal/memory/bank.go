// Package memory manages the project-scoped TOON memory bank: the durable
// knowledge store the injected directives point the agent at. Files live
// under a per-category, per-project tree; projects never see each other's
// entries.
package memory

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Categories are the memory-bank subtrees.
var Categories = []string{
	"decisions", "graph", "kanban", "patterns",
	"proposals", "research", "roadmaps", "stm",
}

// projectCategories are the categories that carry per-project files.
var projectCategories = []string{
	"decisions", "kanban", "patterns", "proposals", "research", "roadmaps",
}

// Dir is the memory bank root.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "hookgate", "memory")
}

// DetectProject resolves the active project: HOOKGATE_PROJECT when set, the
// directory name when workDir is a git root, "global" otherwise.
func DetectProject(workDir string) string {
	if p := os.Getenv("HOOKGATE_PROJECT"); p != "" {
		return p
	}
	if workDir != "" {
		if _, err := os.Stat(filepath.Join(workDir, ".git")); err == nil {
			return filepath.Base(workDir)
		}
	}
	return "global"
}

// Status writes the bank overview: per-category entry counts and the
// active project's file presence.
func Status(w io.Writer, dir, project string) {
	fmt.Fprintln(w, "[MEMORY_BANK]")
	fmt.Fprintf(w, "path: %s\n", dir)
	fmt.Fprintf(w, "project: %s\n", project)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "[CATEGORIES]")
	for _, cat := range Categories {
		fmt.Fprintf(w, "%s: %d\n", cat, countToon(filepath.Join(dir, cat)))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "[PROJECT_FILES]")
	for _, cat := range projectCategories {
		status := "-"
		if _, err := os.Stat(filepath.Join(dir, cat, project, cat+".toon")); err == nil {
			status = "OK"
		}
		fmt.Fprintf(w, "%s: %s\n", cat, status)
	}
}

// countToon counts .toon files under root, recursively. A missing tree
// counts as zero.
func countToon(root string) int {
	n := 0
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".toon") {
			n++
		}
		return nil
	})
	return n
}
