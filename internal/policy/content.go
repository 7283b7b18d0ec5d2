package policy

import "strings"

// sensitiveAssignments are key/value shapes that indicate a credential is
// being written out in the clear.
var sensitiveAssignments = []string{
	"password =",
	"secret =",
	"api_key =",
	"token =",
}

var privateKeyHeaders = []string{
	"begin rsa private",
	"begin openssh private",
}

// DetectSecretContent scans content for credential assignments and private
// key headers. Returns the matched pattern and true on the first hit.
func DetectSecretContent(content string) (string, bool) {
	if content == "" {
		return "", false
	}
	lower := strings.ToLower(content)
	for _, p := range sensitiveAssignments {
		if strings.Contains(lower, p) {
			return p, true
		}
	}
	for _, h := range privateKeyHeaders {
		if strings.Contains(lower, h) {
			return h, true
		}
	}
	return "", false
}

// ContainsStubMarkers reports whether code carries unfinished-work markers.
func ContainsStubMarkers(s string) bool {
	lower := strings.ToLower(s)
	for _, m := range []string{"todo", "fixme", "unimplemented", "stub", "placeholder"} {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// DetectFunctionRemoval returns names of functions declared in old that no
// longer appear anywhere in updated. Recognizes Go, Rust, and JS/TS/Python
// declaration shapes.
func DetectFunctionRemoval(old, updated string) []string {
	var removed []string
	prefixes := []string{
		"func ", "fn ", "pub fn ", "async fn ",
		"def ", "async def ", "function ", "export function ",
	}
	for _, line := range strings.Split(old, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.Contains(trimmed, "(") {
			continue
		}
		matched := false
		for _, p := range prefixes {
			if strings.HasPrefix(trimmed, p) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		head := trimmed[:strings.Index(trimmed, "(")]
		fields := strings.Fields(head)
		if len(fields) == 0 {
			continue
		}
		name := fields[len(fields)-1]
		if name != "" && !strings.Contains(updated, name) {
			removed = append(removed, name)
		}
	}
	return removed
}
