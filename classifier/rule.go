package classifier

import (
	"context"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hupe1980/memtrail/core"
)

// transitionRule is one fixed-priority keyword rule proposing a status change
// for an entity the profile already tracks.
type transitionRule struct {
	name      string
	keywords  []string
	target    core.Status
	reasoning string
}

// defaultTransitionRules are evaluated in order; the first keyword hit wins.
// Discontinuation outranks pause outranks resumption, so a turn containing
// several signals still has exactly one outcome.
func defaultTransitionRules() []transitionRule {
	return []transitionRule{
		{
			name:      "discontinue",
			keywords:  []string{"stopped", "quit", "no longer", "discontinued", "not taking"},
			target:    core.StatusDiscontinued,
			reasoning: "Subject corrected the fact status to discontinued.",
		},
		{
			name:      "pause",
			keywords:  []string{"paused", "pausing", "on hold", "holding off", "taking a break"},
			target:    core.StatusPaused,
			reasoning: "Subject reported temporarily suspending the fact.",
		},
		{
			name:      "resume",
			keywords:  []string{"back on", "resumed", "restarted", "resuming", "started again"},
			target:    core.StatusActive,
			reasoning: "Subject reported resuming a previously tracked fact.",
		},
	}
}

// intakePattern extracts a candidate entity name following an intake verb.
var intakePattern = regexp.MustCompile(`(?i)\b(?:take|takes|taking|took|started|starting|using|use|began)\s+(?:taking\s+|using\s+)?(?:my\s+|the\s+|an\s+|a\s+|some\s+)?([a-zA-Z][a-zA-Z0-9-]{2,})`)

// intakeStopwords are capture candidates that are never entity names.
var intakeStopwords = map[string]bool{
	"it": true, "this": true, "that": true, "them": true, "they": true,
	"the": true, "and": true, "medication": true, "medicine": true,
	"meds": true, "pill": true, "pills": true, "something": true,
	"anything": true, "nothing": true, "more": true, "care": true,
}

// RuleClassifier is the default deterministic core.Classifier. It matches
// keyword patterns against the (already sanitized) turn text in a fixed
// priority order: discontinue, pause, resume, then intake. It never proposes
// a Transition for an absent entity, never proposes Create for a present one,
// and answers NoOp for everything it cannot attribute unambiguously.
type RuleClassifier struct {
	rules      []transitionRule
	vocabulary map[string]bool
}

// RuleClassifierOptions configure a RuleClassifier.
type RuleClassifierOptions struct {
	// Vocabulary restricts newly created entities to a closed set of known
	// names (normalized). Empty means any extractable name is trackable.
	Vocabulary []string
}

// NewRuleClassifier constructs a RuleClassifier with the default rule order.
func NewRuleClassifier(optFns ...func(o *RuleClassifierOptions)) *RuleClassifier {
	opts := RuleClassifierOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}

	c := &RuleClassifier{rules: defaultTransitionRules()}
	if len(opts.Vocabulary) > 0 {
		c.vocabulary = make(map[string]bool, len(opts.Vocabulary))
		for _, v := range opts.Vocabulary {
			c.vocabulary[core.Key(v)] = true
		}
	}
	return c
}

// Classify implements core.Classifier. It only reads the snapshot.
func (c *RuleClassifier) Classify(_ context.Context, snapshot *core.Profile, turnID, text string) (core.Proposal, error) {
	lower := strings.ToLower(text)

	for _, rule := range c.rules {
		keyword, idx := firstKeyword(lower, rule.keywords)
		if idx < 0 {
			continue
		}
		name := resolveReferent(snapshot, lower)
		if name == "" {
			// A transition signal without an attributable entity is
			// ambiguity, and ambiguity is a silent no-op. Falling through to
			// the intake rule here would fabricate state from a correction.
			return core.NoOp(), nil
		}
		entity, _ := snapshot.Get(name)
		if entity.Status == rule.target {
			// Re-asserting the current status mutates nothing.
			return core.NoOp(), nil
		}
		start := lowerIndex(text, idx)
		end := lowerIndex(text, idx+len(keyword))
		return core.Transition(turnID, entity.Name, rule.target, snippetAt(text, start, end-start), rule.reasoning), nil
	}

	if m := intakePattern.FindStringSubmatchIndex(text); m != nil {
		candidate := text[m[2]:m[3]]
		key := core.Key(candidate)
		if intakeStopwords[key] || (c.vocabulary != nil && !c.vocabulary[key]) {
			return core.NoOp(), nil
		}
		if entity, ok := snapshot.Get(key); ok {
			if entity.Status == core.StatusActive {
				return core.NoOp(), nil
			}
			return core.Transition(turnID, entity.Name, core.StatusActive,
				snippetAt(text, m[0], m[1]-m[0]),
				"Subject re-reported active usage of a tracked fact."), nil
		}
		return core.Create(turnID, candidate, core.StatusActive,
			snippetAt(text, m[0], m[1]-m[0]),
			"Subject reported active usage."), nil
	}

	return core.NoOp(), nil
}

// firstKeyword returns the earliest-declared keyword present in text and its
// index, or -1. Declaration order, not text position, decides priority.
func firstKeyword(text string, keywords []string) (string, int) {
	for _, kw := range keywords {
		if idx := strings.Index(text, kw); idx >= 0 {
			return kw, idx
		}
	}
	return "", -1
}

// resolveReferent attributes a transition to one tracked entity. A name
// mentioned in the text wins; with no mention, a profile tracking exactly one
// entity resolves pronouns like "it" to that entity. Zero or multiple
// candidates are unresolvable.
func resolveReferent(snapshot *core.Profile, lower string) string {
	var mentioned []string
	for _, name := range snapshot.Names() {
		if strings.Contains(lower, name) {
			mentioned = append(mentioned, name)
		}
	}
	switch {
	case len(mentioned) == 1:
		return mentioned[0]
	case len(mentioned) == 0 && snapshot.Len() == 1:
		return snapshot.Names()[0]
	default:
		return ""
	}
}

// lowerIndex maps a byte offset in strings.ToLower(text) back to the offset of
// the corresponding rune in text. Lowercasing can change a rune's encoded
// length (Ⱥ grows from two bytes to three, İ shrinks from two to one), so
// offsets into the lowered text are not valid for slicing the original.
func lowerIndex(text string, lowerIdx int) int {
	lowered := 0
	for i, r := range text {
		if lowered >= lowerIdx {
			return i
		}
		lowered += utf8.RuneLen(unicode.ToLower(r))
	}
	return len(text)
}

// snippetAt returns the justifying fragment of the turn text: from the match
// start to the end of the sentence, capped at snippetMax runes.
const snippetMax = 80

func snippetAt(text string, idx, matchLen int) string {
	end := len(text)
	for i := idx + matchLen; i < len(text); i++ {
		if text[i] == '.' || text[i] == '!' || text[i] == '?' || text[i] == '\n' {
			end = i
			break
		}
	}
	fragment := strings.TrimSpace(text[idx:end])
	runes := []rune(fragment)
	if len(runes) > snippetMax {
		fragment = string(runes[:snippetMax])
	}
	return fragment
}
