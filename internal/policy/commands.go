// Package policy holds the stateless predicates shared by the gate chains:
// blocked commands, sensitive paths and content, legacy CLI detection, and
// agent-name validity. Each predicate is a pure function over raw strings;
// a predicate that cannot decide reports "no match", never a deny.
package policy

import "strings"

// blockedCommandPatterns covers destructive, RCE, DoS, and privilege
// escalation shapes beyond the configurable list.
var blockedCommandPatterns = []string{
	"rm -rf /",
	"rm -rf /*",
	"rm -rf ~",
	"> /etc/passwd",
	"> /etc/shadow",
	"dd if=/dev/zero",
	"dd if=/dev/random",
	"mkfs.",
	"fdisk",
	"parted",
	"shutdown",
	"reboot",
	"init 0",
	"init 6",
	"poweroff",
	"halt",
	"| bash",
	"| sh",
	"|bash",
	"|sh",
	"| /bin/bash",
	"| /bin/sh",
	":()",
	":(){",
	"chown -r",
	"nc -e",
	"ncat -e",
	"history -c",
	"export histsize=0",
	"insmod",
	"rmmod",
	"modprobe -r",
}

// IsBlockedCommand reports whether the command matches a builtin blocked
// pattern.
func IsBlockedCommand(command string) bool {
	lower := strings.ToLower(command)
	for _, p := range blockedCommandPatterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// LegacyMapping maps a legacy Unix command to its modern replacement.
type LegacyMapping struct {
	Legacy      string
	Replacement string
	Reason      string
}

var legacyCommands = []LegacyMapping{
	{"ls", "eza", "icons + git status + tree"},
	{"cat", "bat", "syntax highlighting + paging"},
	{"find", "fd", "faster + regex + .gitignore aware"},
	{"grep", "rg", "faster + respects .gitignore"},
	{"du", "dust", "visual + sorted output"},
	{"top", "btm", "modern process viewer"},
	{"ps", "procs", "colorized + tree view"},
	{"sed", "sd", "simpler regex syntax"},
}

// legacyAllowed skips legacy detection for known-good tools so invocations
// like "go test" or "git grep" pass untouched.
var legacyAllowed = map[string]bool{
	"eza": true, "bat": true, "fd": true, "rg": true,
	"dust": true, "btm": true, "procs": true, "sd": true,
	"cargo": true, "go": true, "git": true, "npm": true,
	"node": true, "python": true, "python3": true,
	"rustc": true, "rustup": true, "make": true, "cmake": true,
	"docker": true, "kubectl": true, "gofmt": true, "golangci-lint": true,
}

// DetectLegacyCommand returns the mapping for a legacy first-word command,
// or ok=false when the command is allowed or unrecognized.
func DetectLegacyCommand(command string) (LegacyMapping, bool) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return LegacyMapping{}, false
	}
	name := fields[0]
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if legacyAllowed[name] {
		return LegacyMapping{}, false
	}
	for _, m := range legacyCommands {
		if name == m.Legacy {
			return m, true
		}
	}
	return LegacyMapping{}, false
}
