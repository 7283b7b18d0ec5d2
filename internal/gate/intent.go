package gate

import (
	"strings"

	"hookgate/internal/hook"
	"hookgate/internal/intent"
)

// runIntentCascade is the prompt-submit gate: a four-tier cascade from
// cheapest to most involved, where the first matching tier that produces a
// verdict ends the cascade.
//
//	Tier 0: trivial prompts pass silently, no session touch.
//	Tier 1: status queries get the fixed binary-first directive.
//	Tier 2: session bookkeeping — turn counting, post-compact recovery,
//	        periodic reinforcement.
//	Tier 3: keyword classification rendered into an intent directive.
//
// Tiers 2 and 3 both contribute context blocks; their output is joined.
func runIntentCascade(e *Env) Result {
	prompt := e.In.NormalizedPrompt()
	if prompt == "" {
		return allow()
	}
	if e.Cfg != nil && !e.Cfg.Intent.Enabled {
		return allow()
	}

	if intent.IsTrivial(prompt) {
		return allow()
	}
	if intent.IsStatusQuery(prompt) {
		return contextResult("BINARY_FIRST", intent.StatusDirective())
	}

	sess := e.Session()
	sess.IncrementTurn()
	sess.ResetResearchForNewPrompt()
	today := hook.Today()

	var blocks []string
	if sess.PostCompact {
		blocks = append(blocks, intent.RecoveryBlock(sess.TurnCount, today))
		sess.PostCompact = false
		sess.MarkReinforcementDone()
	} else if sess.NeedsReinforcement() {
		blocks = append(blocks, intent.ReinforcementBlock(sess.TurnCount, today))
		sess.MarkReinforcementDone()
	}

	c := intent.Classify(prompt)
	if c.Type != "unclassified" || c.Domain != "" {
		sess.NLUParsed = true
		sess.StoreIntent(c.Type, c.Domain, c.SubAgents, c.Skills)
		blocks = append(blocks, intent.Directive(c, today, sess.ResearchDone))
	}

	e.SaveSession()

	if len(blocks) == 0 {
		return allow()
	}
	return contextResult("INTENT", strings.Join(blocks, "\n\n"))
}
