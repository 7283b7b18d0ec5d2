package hook

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("response missing trailing newline")
	}
	return m
}

func TestWriteSilent(t *testing.T) {
	var buf bytes.Buffer
	WriteSilent(&buf)
	m := decode(t, &buf)

	if m["decision"] != "approve" || m["reason"] != "ok" {
		t.Errorf("silent approve = %v", m)
	}
	if _, ok := m["hookSpecificOutput"]; ok {
		t.Error("silent approve must not carry hookSpecificOutput")
	}
}

func TestWriteBlock(t *testing.T) {
	var buf bytes.Buffer
	WriteBlock(&buf, "exceeds_100_lines:140", "[BLOCK]\ngate: DACE\n")
	m := decode(t, &buf)

	if m["decision"] != "block" {
		t.Errorf("decision = %v, want block", m["decision"])
	}
	if m["reason"] != "exceeds_100_lines:140" {
		t.Errorf("reason = %v", m["reason"])
	}
	if !strings.Contains(m["additionalContext"].(string), "DACE") {
		t.Errorf("additionalContext = %v", m["additionalContext"])
	}
}

func TestWritePermissionDeny(t *testing.T) {
	var buf bytes.Buffer
	WritePermissionDeny(&buf, "blocked_path:/etc/shadow", "ctx")
	m := decode(t, &buf)

	hso, ok := m["hookSpecificOutput"].(map[string]any)
	if !ok {
		t.Fatalf("missing hookSpecificOutput in %v", m)
	}
	if hso["hookEventName"] != "PreToolUse" {
		t.Errorf("hookEventName = %v", hso["hookEventName"])
	}
	if hso["permissionDecision"] != "deny" {
		t.Errorf("permissionDecision = %v", hso["permissionDecision"])
	}
	if hso["permissionDecisionReason"] != "blocked_path:/etc/shadow" {
		t.Errorf("permissionDecisionReason = %v", hso["permissionDecisionReason"])
	}
	if _, ok := m["decision"]; ok {
		t.Error("permission deny must not carry top-level decision")
	}
}

func TestWritePromptShapes(t *testing.T) {
	var silent bytes.Buffer
	WritePromptSilent(&silent)
	m := decode(t, &silent)
	if m["hookEventName"] != "UserPromptSubmit" {
		t.Errorf("hookEventName = %v", m["hookEventName"])
	}
	if m["additionalContext"] != "" {
		t.Errorf("silent prompt context = %v", m["additionalContext"])
	}

	var ctx bytes.Buffer
	WritePromptContext(&ctx, "[INTENT] type=debug")
	m = decode(t, &ctx)
	if m["additionalContext"] != "[INTENT] type=debug" {
		t.Errorf("context = %v", m["additionalContext"])
	}
}

func TestBlockRendersOrderedSections(t *testing.T) {
	got := Block("READ", []KV{{"warning", "may_contain_secrets"}, {"path", "/x/.env"}})
	want := "[READ]\nwarning: may_contain_secrets\npath: /x/.env\n"
	if got != want {
		t.Errorf("Block = %q, want %q", got, want)
	}
}

func TestBlockContextCarriesGateAndReason(t *testing.T) {
	got := BlockContext("BASH", "empty_command")
	if !strings.HasPrefix(got, "[BLOCK]\n") {
		t.Errorf("BlockContext = %q", got)
	}
	if !strings.Contains(got, "gate: BASH\n") || !strings.Contains(got, "reason: empty_command\n") {
		t.Errorf("BlockContext = %q", got)
	}
	if !strings.Contains(got, "date: "+Today()) {
		t.Errorf("BlockContext missing date: %q", got)
	}
}
