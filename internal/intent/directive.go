package intent

import (
	"fmt"
	"strings"
)

// Directive renders the classification into the injected guidance block.
// researchDone comes from the session record; the research-required marker
// is emitted only while research is outstanding.
func Directive(c Classification, today string, researchDone bool) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[INTENT] type=%s", c.Type))
	if c.Domain != "" {
		b.WriteString(fmt.Sprintf(" domain=%s", c.Domain))
	}
	b.WriteString(fmt.Sprintf(" confidence=%s date=%s\n", c.Confidence, today))

	if c.ResearchRequired && !researchDone {
		b.WriteString(fmt.Sprintf(
			"[BLOCK:RESEARCH] BLOCKED: WebSearch required before implementation. Training weights are stale (cutoff: 2025-01). today:%s\n",
			today))
	}

	if len(c.Skills) > 0 {
		b.WriteString("[SKILL:AUTO_INVOKE] MANDATORY:")
		for _, skill := range c.Skills {
			b.WriteString(fmt.Sprintf(" Skill(skill:%q)", strings.TrimPrefix(skill, "/")))
		}
		b.WriteString("\n")
	}

	// Research intents route to the research director directly; other
	// delegation intents go through the orchestrator.
	switch {
	case c.Type == "research":
		b.WriteString("[BLOCK:DELEGATION] MUST: Task(subagent_type='research-director') BEFORE any code\n")
	case RequiresDelegation(c.Type):
		b.WriteString("[BLOCK:DELEGATION] MUST: Task(subagent_type='ceo') BEFORE Write/Edit\n")
	default:
		b.WriteString(fmt.Sprintf("[AGENT] primary=%s\n", c.Agent))
	}

	b.WriteString("[DACE] max:100lines depth:5-7levels split:concern no:duplicates no:monoliths\n")
	return b.String()
}

// StatusDirective is the fixed tier-1 response to status queries.
func StatusDirective() string {
	return "[BINARY_FIRST]\naction: IMMEDIATE\ncommand: hookgate status && hookgate memory bank\nFORBIDDEN: Task(Explore), Read(docs/*.md)\nreason: Memory Bank is SINGLE SOURCE OF TRUTH"
}

// RecoveryBlock is injected on the first prompt after a context compaction.
func RecoveryBlock(turn int, today string) string {
	return fmt.Sprintf(
		"[RECOVERY] turn=%d memory=hookgate_memory_bank research=WebSearch_%s binary=hookgate_FIRST dace=100lines_5depth",
		turn, today)
}

// ReinforcementBlock is injected every reinforce-interval turns.
func ReinforcementBlock(turn int, today string) string {
	return fmt.Sprintf(
		"[REINFORCE] turn=%d research=%s dace=100lines_5depth fix=root_cause",
		turn, today)
}
