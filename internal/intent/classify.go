// Package intent implements the prompt classifier behind the prompt-submit
// cascade: a deterministic keyword-table NLU that maps a normalized prompt
// to an intent type, domain, default skills, and delegation targets. No
// model calls, no randomness — identical prompts always classify the same.
package intent

import "strings"

// Classification is the result of one prompt classification.
type Classification struct {
	Type             string
	Domain           string
	Skills           []string
	Agent            string
	SubAgents        []string
	ResearchRequired bool
	Confidence       string
}

// typeRule maps a keyword set to an intent type with its defaults.
// Evaluated in declared priority order; first match wins.
type typeRule struct {
	keywords   []string
	intentType string
	skills     []string
	agent      string
	subAgents  []string
	confidence string
}

var typeRules = []typeRule{
	{
		keywords:   []string{"fix", "bug", "error", "broken", "crash", "failing", "not working"},
		intentType: "debug",
		skills:     []string{"/debug-like-expert"},
		agent:      "ceo",
		subAgents:  []string{"research-director", "backend-engineer"},
		confidence: "high",
	},
	{
		keywords:   []string{"optimize", "faster", "slow", "performance", "speed up"},
		intentType: "optimize",
		skills:     []string{"/dsa", "/arch"},
		agent:      "ceo",
		subAgents:  []string{"research-director", "backend-engineer"},
		confidence: "high",
	},
	{
		keywords:   []string{"refactor", "restructure", "clean up", "technical debt"},
		intentType: "refactor",
		skills:     []string{"/heal"},
		agent:      "ceo",
		subAgents:  []string{"backend-engineer", "aegis-guardian"},
		confidence: "medium",
	},
	{
		keywords:   []string{"research", "explore", "explain", "how does", "what is"},
		intentType: "research",
		agent:      "research-director",
		confidence: "high",
	},
	{
		keywords:   []string{"document", "documentation", "readme", "api docs"},
		intentType: "docs",
		agent:      "research-director",
		subAgents:  []string{"backend-engineer"},
		confidence: "medium",
	},
	{
		keywords:   []string{"audit", "review", "vulnerability", "compliance"},
		intentType: "audit",
		skills:     []string{"/security", "/heal"},
		agent:      "ceo",
		subAgents:  []string{"aegis-guardian"},
		confidence: "high",
	},
	{
		keywords:   []string{"implement", "create", "build", "add", "develop", "new feature"},
		intentType: "implement",
		agent:      "ceo",
		confidence: "medium",
	},
}

// domainRule maps a keyword set to a domain. Every matching rule appends
// skills and sub-agents; only the first matching rule sets the domain.
type domainRule struct {
	keywords  []string
	domain    string
	skills    []string
	subAgents []string
}

var domainRules = []domainRule{
	{
		keywords: []string{"security", "auth", "encrypt", "oauth", "jwt"},
		domain:   "security",
		skills:   []string{"/security"},
	},
	{
		keywords:  []string{"frontend", "ui", "css", "react", "component"},
		domain:    "frontend",
		skills:    []string{"/frontend"},
		subAgents: []string{"frontend-engineer"},
	},
	{
		keywords: []string{"database", "sql", "query", "migration", "postgres"},
		domain:   "database",
		skills:   []string{"/sql"},
	},
	{
		keywords: []string{"deploy", "docker", "kubernetes", "k8s", "terraform", "infra"},
		domain:   "infrastructure",
		skills:   []string{"/cloud-infrastructure-mastery"},
	},
	{
		keywords:  []string{"test", "testing", "unit test", "integration test"},
		domain:    "testing",
		skills:    []string{"/testing"},
		subAgents: []string{"aegis-guardian"},
	},
	{
		keywords:  []string{"api", "endpoint", "rest", "grpc", "graphql"},
		domain:    "backend",
		skills:    []string{"/api-design"},
		subAgents: []string{"backend-engineer"},
	},
}

// trivialPrompts are exact matches that end the cascade at tier 0.
var trivialPrompts = map[string]bool{
	"hello": true, "hi": true, "hey": true,
	"thanks": true, "thank you": true, "bye": true,
	"yes": true, "no": true, "ok": true, "okay": true,
}

var statusTriggers = []string{
	"status",
	"project status",
	"what is the status",
	"show status",
	"check status",
}

// IsTrivial reports whether the normalized prompt is a tier-0 trivial
// exchange.
func IsTrivial(prompt string) bool {
	return trivialPrompts[prompt]
}

// IsStatusQuery reports whether the normalized prompt asks for project
// status (tier 1).
func IsStatusQuery(prompt string) bool {
	for _, t := range statusTriggers {
		if strings.Contains(prompt, t) {
			return true
		}
	}
	return false
}

// Classify maps a normalized (lowercase, trimmed) prompt to a
// classification. First matching type rule wins; domain rules are additive.
func Classify(prompt string) Classification {
	c := Classification{
		ResearchRequired: true,
		Confidence:       "medium",
	}

	for _, rule := range typeRules {
		if matchesAny(prompt, rule.keywords) {
			c.Type = rule.intentType
			c.Skills = append([]string(nil), rule.skills...)
			c.Agent = rule.agent
			c.SubAgents = append([]string(nil), rule.subAgents...)
			c.Confidence = rule.confidence
			break
		}
	}

	for _, rule := range domainRules {
		if !matchesAny(prompt, rule.keywords) {
			continue
		}
		if c.Domain == "" {
			c.Domain = rule.domain
		}
		for _, s := range rule.skills {
			c.Skills = appendUnique(c.Skills, s)
		}
		for _, a := range rule.subAgents {
			c.SubAgents = appendUnique(c.SubAgents, a)
		}
	}

	// A domain-only match keeps the type empty; unclassified is reserved
	// for prompts where nothing matched at all.
	if c.Type == "" && c.Domain == "" {
		c.Type = "unclassified"
		c.Confidence = "low"
	}
	if c.Agent == "" {
		c.Agent = "ceo"
	}
	return c
}

// IsImplementation reports whether the intent type produces code and
// therefore requires prior research.
func IsImplementation(intentType string) bool {
	switch intentType {
	case "implement", "debug", "refactor", "optimize", "fix", "audit", "docs", "unclassified":
		return true
	}
	return false
}

// RequiresDelegation reports whether the intent type must be routed through
// a sub-agent before any write.
func RequiresDelegation(intentType string) bool {
	switch intentType {
	case "implement", "debug", "refactor", "optimize", "audit":
		return true
	}
	return false
}

func matchesAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func appendUnique(list []string, item string) []string {
	for _, v := range list {
		if v == item {
			return list
		}
	}
	return append(list, item)
}
