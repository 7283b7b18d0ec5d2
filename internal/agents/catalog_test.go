package agents

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiscoverBuiltins(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	catalog := Discover("")

	if len(catalog) != 7 {
		t.Fatalf("catalog size = %d, want 7 builtins", len(catalog))
	}
	for i := 1; i < len(catalog); i++ {
		if catalog[i-1].Level > catalog[i].Level {
			t.Errorf("catalog not ordered by level: %q after %q", catalog[i].Name, catalog[i-1].Name)
		}
	}
	if catalog[0].Name != "nlu-intent-analyzer" {
		t.Errorf("first agent = %q, want the NLU level", catalog[0].Name)
	}
}

func TestDiscoverWorkspaceShadowsBuiltin(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	workDir := t.TempDir()
	agentsDir := filepath.Join(workDir, ".claude", "agents")
	if err := os.MkdirAll(agentsDir, 0700); err != nil {
		t.Fatal(err)
	}
	def := "---\nname: backend-engineer\nmodel: opus\ndescription: project-tuned backend agent\ntools: Read, Write, Bash\n---\n"
	if err := os.WriteFile(filepath.Join(agentsDir, "backend-engineer.md"), []byte(def), 0600); err != nil {
		t.Fatal(err)
	}

	catalog := Discover(workDir)
	a, found := Find(catalog, "Backend-Engineer")
	if !found {
		t.Fatal("backend-engineer missing")
	}
	if a.Model != "opus" || a.Description != "project-tuned backend agent" {
		t.Errorf("workspace definition did not shadow builtin: %+v", a)
	}
	if len(a.Tools) != 3 {
		t.Errorf("Tools = %v", a.Tools)
	}
}

func TestFindUnknown(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if _, found := Find(Discover(""), "ghost"); found {
		t.Error("unknown agent found")
	}
}

func TestWriteListGroupsByLevel(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	var buf bytes.Buffer
	WriteList(&buf, Discover(""))
	out := buf.String()

	for _, want := range []string{"[AGENTS]", "count: 7", "[L0 (Orchestration)]", "ceo:", "[L2 (Verification)]", "aegis-guardian:"} {
		if !strings.Contains(out, want) {
			t.Errorf("list missing %q:\n%s", want, out)
		}
	}
}
