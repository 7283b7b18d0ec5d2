package memory

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// writableCategories are the categories entries can be written into; stm is
// owned by the session store and not writable through the bank.
var writableCategories = map[string]bool{
	"decisions": true, "graph": true, "kanban": true, "patterns": true,
	"proposals": true, "research": true, "roadmaps": true,
}

// Write stores content at <dir>/<category>/<project>/<key>.toon via temp
// file and atomic rename, and returns the final path.
func Write(dir, category, project, key, content string) (string, error) {
	if !writableCategories[category] {
		return "", fmt.Errorf("memory: invalid category %q", category)
	}
	if key == "" {
		return "", fmt.Errorf("memory: key required")
	}
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("memory: no content provided")
	}

	projectDir := filepath.Join(dir, category, project)
	if err := os.MkdirAll(projectDir, 0700); err != nil {
		return "", fmt.Errorf("memory: create directory: %w", err)
	}

	path := filepath.Join(projectDir, key+".toon")
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0600); err != nil {
		return "", fmt.Errorf("memory: write temp: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("memory: rename: %w", err)
	}
	return path, nil
}
