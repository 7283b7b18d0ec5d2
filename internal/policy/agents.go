package policy

import "sort"

// validAgents is the fixed set of subagent types the Task tool accepts.
var validAgents = map[string]bool{
	"nlu-intent-analyzer": true,
	"ceo":                 true,
	"research-director":   true,
	"backend-engineer":    true,
	"frontend-engineer":   true,
	"aegis-guardian":      true,
	"Explore":             true,
	"Plan":                true,
	"Bash":                true,
	"general-purpose":     true,
	"code-simplifier":     true,
	"statusline-setup":    true,
	"claude-code-guide":   true,
}

// engineerAgents receive orchestration guidance on delegation.
var engineerAgents = map[string]bool{
	"backend-engineer":  true,
	"frontend-engineer": true,
	"aegis-guardian":    true,
}

// IsValidAgent reports whether the subagent type is recognized.
func IsValidAgent(agent string) bool {
	return validAgents[agent]
}

// IsEngineerAgent reports whether the subagent type is an engineer role.
func IsEngineerAgent(agent string) bool {
	return engineerAgents[agent]
}

// ValidAgents returns the recognized subagent types, for catalog listings.
func ValidAgents() []string {
	out := make([]string, 0, len(validAgents))
	for a := range validAgents {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}
