package gate

import (
	"fmt"
	"strings"

	"hookgate/internal/policy"
)

// writeContent returns the content a write event would put on disk: the
// replacement string for Edit, the full content otherwise.
func writeContent(e *Env) string {
	if e.In.ToolName == "Edit" {
		return e.In.GetString("new_string")
	}
	return e.In.GetString("content")
}

// checkSecretContent denies writes that would put credentials or private
// key material on disk. Runs first: a secret leak outranks every other
// finding.
func checkSecretContent(e *Env) Result {
	pattern, found := policy.DetectSecretContent(writeContent(e))
	if !found {
		return pass()
	}
	return deny("CONTENT", "sensitive:"+pattern)
}

// checkCodeGuard blocks edits that remove significant code: full
// deletions, >50% reductions that drop functions, and stub markers
// replaced without the implementation growing.
func checkCodeGuard(e *Env) Result {
	if e.In.ToolName != "Edit" {
		return pass()
	}
	filePath := e.In.GetString("file_path")
	if !policy.IsCodeFile(filePath) {
		return pass()
	}
	oldString := e.In.GetString("old_string")
	newString := e.In.GetString("new_string")

	if strings.TrimSpace(newString) == "" && len(oldString) > 50 {
		return deny("CODE_GUARD", fmt.Sprintf(
			"BLOCK_REMOVAL:complete_deletion:file:%s:REASON:Cannot delete significant code block.", filePath))
	}

	if oldString != "" && len(newString) < len(oldString)/2 {
		if removed := policy.DetectFunctionRemoval(oldString, newString); len(removed) > 0 {
			return deny("CODE_GUARD", fmt.Sprintf(
				"BLOCK_REMOVAL:significant_code_reduction:functions:%s:REASON:Verify use case before removing functions.",
				strings.Join(removed, ",")))
		}
	}

	if policy.ContainsStubMarkers(oldString) && !policy.ContainsStubMarkers(newString) &&
		len(newString) <= len(oldString) {
		return deny("CODE_GUARD", fmt.Sprintf(
			"BLOCK_REMOVAL:stub_removed_without_implementation:file:%s:REASON:stub removed but code not expanded.", filePath))
	}

	if strings.Contains(oldString, "impl ") && !strings.Contains(newString, "impl ") {
		return deny("CODE_GUARD", fmt.Sprintf(
			"BLOCK_REMOVAL:impl_block:file:%s:REASON:Cannot remove impl block without understanding trait implementation.", filePath))
	}

	return pass()
}

// checkPreWriteAntiprod scans the incoming content for patterns that must
// never reach disk, tailored to the inferred file type.
func checkPreWriteAntiprod(e *Env) Result {
	content := writeContent(e)
	filePath := e.In.GetString("file_path")
	if content == "" || filePath == "" {
		return pass()
	}
	if policy.IsTestPath(filePath) {
		return pass()
	}
	lower := strings.ToLower(filePath)
	base := strings.ToLower(baseOf(filePath))

	if strings.HasSuffix(lower, ".go") && base != "main.go" && strings.Contains(content, "fmt.Print") {
		return deny("ANTIPROD", "PROD_LEAK:fmt.Print:Use structured logger.")
	}
	if strings.HasSuffix(lower, ".rs") && base != "main.rs" && strings.Contains(content, "println!(") {
		return deny("ANTIPROD", "PROD_LEAK:println!:Use a logging facade instead.")
	}
	if policy.IsFrontendFile(filePath) &&
		(strings.Contains(content, "console.log(") || strings.Contains(content, "console.debug(")) {
		return deny("ANTIPROD", "PROD_LEAK:console.log:Remove debug output or use structured logger.")
	}
	if marker, found := todoCommentMarker(content); found {
		return deny("ANTIPROD", fmt.Sprintf("PROD_LEAK:%s:Implement or create ticket.", marker))
	}
	if strings.Contains(content, "unsafe {") && !strings.Contains(content, "// SAFETY:") {
		return deny("ANTIPROD", "PROD_LEAK:unsafe block:Justify with // SAFETY: comment or remove.")
	}
	return pass()
}

// checkResearchRequired denies source-code writes until the session has a
// completed research step. Guards against coding from stale training data.
func checkResearchRequired(e *Env) Result {
	filePath := e.In.GetString("file_path")
	if filePath == "" || !policy.IsCodeFile(filePath) {
		return pass()
	}
	if e.Session().ResearchDone {
		return pass()
	}
	return deny("TABULA_RASA", "WebSearch_required_before_code")
}

// checkWritePath denies writes into configured blocked path prefixes.
func checkWritePath(e *Env) Result {
	filePath := e.In.GetString("file_path")
	if filePath == "" {
		return pass()
	}
	if e.Cfg.IsBlockedWritePath(filePath) {
		return deny("ENFORCER", "Write:blocked_path:"+filePath)
	}
	return pass()
}

func baseOf(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

// todoCommentMarker reports a TODO/FIXME comment line, ignoring the words
// inside identifiers.
func todoCommentMarker(content string) (string, bool) {
	upper := strings.ToUpper(content)
	if !strings.Contains(upper, "TODO") && !strings.Contains(upper, "FIXME") {
		return "", false
	}
	for _, line := range strings.Split(upper, "\n") {
		trimmed := strings.TrimSpace(line)
		for _, marker := range []string{"TODO", "FIXME"} {
			if strings.Contains(trimmed, "// "+marker) || strings.Contains(trimmed, "# "+marker) {
				return marker, true
			}
		}
	}
	return "", false
}
