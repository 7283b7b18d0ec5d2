package gate

import (
	"fmt"
	"strings"

	"hookgate/internal/hook"
	"hookgate/internal/policy"
)

const (
	maxContentLines = 100
	maxFolderDepth  = 7
	maxLintFindings = 3
)

// checkPostWriteAntiprod scans written content for production-readiness
// anti-patterns in severity order: P0 mock/placeholder data, P1 debug and
// version-pin leaks, P2 swallowed errors, P3 type-safety loosening. The
// first hit denies; test and fixture paths are exempt.
func checkPostWriteAntiprod(e *Env) Result {
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
	contentLower := strings.ToLower(content)

	// P0: mock/placeholder data in production code
	for _, m := range []string{"lorem ipsum", "mock_data", "dummy_data", "fake_user"} {
		if strings.Contains(contentLower, m) {
			return deny("ANTIPROD", fmt.Sprintf("MOCK_DATA:%s:Replace placeholder data with real wiring.", m))
		}
	}

	// P1: debug output by language
	if strings.HasSuffix(lower, ".rs") {
		if strings.Contains(content, "dbg!(") {
			return deny("ANTIPROD", "PROD_LEAK:dbg!:Remove -- runs in release builds. Use tracing.")
		}
		if strings.Contains(content, "todo!(") || strings.Contains(content, "unimplemented!(") {
			return deny("ANTIPROD", "PROD_LEAK:macro:Implement before shipping.")
		}
		if base != "main.rs" && strings.Contains(content, "panic!(") {
			return deny("ANTIPROD", "PROD_LEAK:macro:Return Result/Option instead.")
		}
		if strings.Contains(content, "unsafe {") && !strings.Contains(content, "// SAFETY:") {
			return deny("ANTIPROD", "PROD_LEAK:unsafe block:Justify with // SAFETY: comment or remove.")
		}
	}
	if policy.IsFrontendFile(filePath) &&
		(strings.Contains(content, "console.log(") || strings.Contains(content, "console.debug(")) {
		return deny("ANTIPROD", "PROD_LEAK:console.log:Remove debug output or use structured logger.")
	}
	if strings.HasSuffix(lower, ".py") && strings.Contains(content, "print(") {
		return deny("ANTIPROD", "PROD_LEAK:print():Use logging module instead.")
	}
	if strings.HasSuffix(lower, ".go") && strings.Contains(content, "fmt.Print") {
		return deny("ANTIPROD", "PROD_LEAK:fmt.Print:Use structured logger.")
	}

	// P1: TODO/FIXME comments
	if marker, found := todoCommentMarker(content); found {
		return deny("ANTIPROD", fmt.Sprintf("PROD_LEAK:%s:Implement or create ticket.", marker))
	}

	// P1: hardcoded localhost outside config
	if policy.IsNonConfigFile(filePath) && strings.Contains(content, "://localhost") {
		return deny("ANTIPROD", "PROD_LEAK:localhost:Use config/environment variable for URLs.")
	}

	// P1: unpinned container images, world-writable permissions
	if policy.IsDockerfile(filePath) &&
		strings.Contains(content, "FROM ") && strings.Contains(content, ":latest") {
		return deny("ANTIPROD", "PROD_LEAK:FROM :latest:Pin image version.")
	}
	if strings.Contains(content, "chmod 777") {
		return deny("ANTIPROD", "PROD_LEAK:chmod 777:Use least-privilege permissions.")
	}

	// P2: swallowed errors
	if strings.HasSuffix(lower, ".rs") && policy.IsHandlerFile(filePath) &&
		strings.Contains(content, ".unwrap()") {
		return deny("ANTIPROD", "ERROR_BLIND:.unwrap():Use ? operator instead of .unwrap() in handlers.")
	}
	if policy.IsFrontendFile(filePath) && strings.Contains(content, ".catch(() => {})") {
		return deny("ANTIPROD", "ERROR_BLIND:.catch(() => {}):Handle errors.")
	}

	// P3: type-safety loosening
	if policy.IsFrontendFile(filePath) && strings.Contains(content, "as any") {
		return deny("ANTIPROD", "TYPE_LOOSE:as any:Use proper type narrowing.")
	}
	if strings.HasSuffix(lower, ".rs") {
		if strings.Contains(content, "#[allow(dead_code)]") {
			return deny("ANTIPROD", "TYPE_LOOSE:#[allow(dead_code)]:Remove dead code instead of suppressing.")
		}
		if strings.Contains(content, "#[allow(unused") {
			return deny("ANTIPROD", "TYPE_LOOSE:#[allow(unused)]:Remove unused code instead of suppressing.")
		}
	}

	return pass()
}

// checkQualityBudget enforces the structural budgets: written content stays
// under the line budget and files stay within the folder-depth budget.
func checkQualityBudget(e *Env) Result {
	content := writeContent(e)
	filePath := e.In.GetString("file_path")
	if content == "" || filePath == "" || !policy.IsCodeFile(filePath) {
		return pass()
	}

	workDir := e.Session().WorkDir
	if workDir != "" && strings.HasPrefix(filePath, workDir) {
		rel := strings.TrimPrefix(filePath, workDir)
		if depth := strings.Count(rel, "/"); depth > maxFolderDepth {
			return deny("DACE", fmt.Sprintf("folder_depth_exceeds_%d:%d", maxFolderDepth, depth))
		}
	}

	if lines := countLines(content); lines > maxContentLines {
		return deny("DACE", fmt.Sprintf("exceeds_%d_lines:%d", maxContentLines, lines))
	}
	return pass()
}

// trackModifiedFile records the written path in the session. Side effect
// only; never decides.
func trackModifiedFile(e *Env) Result {
	filePath := e.In.GetString("file_path")
	if filePath == "" {
		return pass()
	}
	e.Session().AddFileModified(filePath)
	e.SaveSession()
	return pass()
}

// checkLintAdvisory collects non-blocking style findings — trailing
// whitespace, spaces-indentation in Go — into an advisory context payload.
func checkLintAdvisory(e *Env) Result {
	content := writeContent(e)
	filePath := e.In.GetString("file_path")
	if content == "" || filePath == "" {
		return pass()
	}

	var findings []string
	isGo := strings.HasSuffix(strings.ToLower(filePath), ".go")
	for i, line := range strings.Split(content, "\n") {
		if strings.HasSuffix(line, " ") || strings.HasSuffix(line, "\t") {
			findings = append(findings, fmt.Sprintf("trailing_ws:%d", i+1))
		}
		if isGo && strings.HasPrefix(line, "    ") {
			findings = append(findings, fmt.Sprintf("spaces:%d", i+1))
		}
	}
	if len(findings) == 0 {
		return pass()
	}
	if len(findings) > maxLintFindings {
		findings = findings[:maxLintFindings]
	}
	return warn("LINT", []hook.KV{
		{Key: "advisory", Value: strings.Join(findings, ",")},
	})
}

func countLines(content string) int {
	n := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") && content != "" {
		n++
	}
	return n
}
