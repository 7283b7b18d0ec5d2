package skills

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDiscoverBuiltins(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	catalog := Discover("")
	if len(catalog) != 5 {
		t.Fatalf("catalog size = %d, want 5 builtins", len(catalog))
	}
	if _, found := Find(catalog, "commit"); !found {
		t.Error("commit builtin missing")
	}
}

func TestFindStripsSlashPrefix(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	catalog := Discover("")
	s, found := Find(catalog, "/web-research")
	if !found || s.Name != "web-research" {
		t.Errorf("Find(/web-research) = %+v, %v", s, found)
	}
}

func TestDiscoverWorkspaceSkill(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	workDir := t.TempDir()
	skillDir := filepath.Join(workDir, ".claude", "skills", "release")
	if err := os.MkdirAll(skillDir, 0700); err != nil {
		t.Fatal(err)
	}
	def := "---\ncategory: build\ndescription: cut a release tag\ntriggers: release, ship it\n---\n"
	if err := os.WriteFile(filepath.Join(skillDir, "SKILL.md"), []byte(def), 0600); err != nil {
		t.Fatal(err)
	}

	catalog := Discover(workDir)
	s, found := Find(catalog, "release")
	if !found {
		t.Fatal("workspace skill missing")
	}
	if s.Category != "build" || len(s.Triggers) != 2 {
		t.Errorf("skill = %+v", s)
	}
}

func TestMatchTriggers(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	catalog := Discover("")

	matched := Match(catalog, "please research the sqlite driver api")
	if len(matched) != 1 || matched[0].Name != "web-research" {
		t.Errorf("Match = %+v", matched)
	}

	if got := Match(catalog, "deploy to staging"); len(got) != 0 {
		t.Errorf("unexpected matches: %+v", got)
	}
}
