package classifier

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hupe1980/memtrail/core"
)

// Verdict is the strict JSON document a model-backed classifier asks the
// model to emit: one action per turn, nothing else.
type Verdict struct {
	Action    string `json:"action"` // "create", "transition" or "noop"
	Entity    string `json:"entity,omitempty"`
	Status    string `json:"status,omitempty"`
	Snippet   string `json:"snippet,omitempty"`
	Reasoning string `json:"reasoning,omitempty"`
}

// SystemPrompt is the instruction block shared by all model-backed
// classifiers. The caller appends the profile summary and the turn text.
const SystemPrompt = `You classify one conversational turn against a tracked fact profile.
Answer with a single JSON object and nothing else:
{"action":"create|transition|noop","entity":"...","status":"active|paused|discontinued","snippet":"...","reasoning":"..."}

Rules:
- "create" only for a fact the profile does not track yet that the turn explicitly asserts.
- "transition" only for a fact the profile already tracks whose status the turn changes.
- "noop" for everything else. Never invent facts the turn does not state.
- "snippet" must be a verbatim fragment of the turn text that justifies the action.`

// BuildUserPrompt renders the profile snapshot and turn text for the model.
func BuildUserPrompt(snapshot *core.Profile, text string) string {
	var b strings.Builder
	b.WriteString("Tracked facts:\n")
	names := snapshot.Names()
	if len(names) == 0 {
		b.WriteString("(none)\n")
	}
	for _, name := range names {
		if e, ok := snapshot.Get(name); ok {
			fmt.Fprintf(&b, "- %s: %s\n", name, e.Status)
		}
	}
	b.WriteString("\nTurn text:\n")
	b.WriteString(text)
	return b.String()
}

// ParseVerdict extracts the first JSON object from raw model output. Models
// occasionally wrap the document in prose or fences; everything outside the
// outermost braces is ignored.
func ParseVerdict(raw string) (Verdict, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return Verdict{}, fmt.Errorf("no JSON object in model output")
	}
	var v Verdict
	if err := json.Unmarshal([]byte(raw[start:end+1]), &v); err != nil {
		return Verdict{}, fmt.Errorf("decode verdict: %w", err)
	}
	return v, nil
}

// Proposal converts a verdict into a structurally safe core.Proposal. The
// guards mirror the classifier contract regardless of what the model said:
// transitions for untracked entities and creates for tracked ones degrade to
// the nearest safe outcome, snippets that are not verbatim fragments of the
// turn text are replaced, and anything unparseable is a no-op. A model can
// therefore never corrupt a chain or fabricate an entity.
func (v Verdict) Proposal(snapshot *core.Profile, turnID, text string) core.Proposal {
	status, err := core.ParseStatus(strings.ToLower(strings.TrimSpace(v.Status)))
	if v.Action != "create" && v.Action != "transition" {
		return core.NoOp()
	}
	if err != nil || strings.TrimSpace(v.Entity) == "" {
		return core.NoOp()
	}

	snippet := v.Snippet
	if snippet == "" || !strings.Contains(text, snippet) {
		snippet = clip(text)
	}
	reasoning := v.Reasoning
	if reasoning == "" {
		reasoning = "Model classified the turn."
	}

	entity, tracked := snapshot.Get(v.Entity)
	switch v.Action {
	case "create":
		if tracked {
			if entity.Status == status {
				return core.NoOp()
			}
			return core.Transition(turnID, entity.Name, status, snippet, reasoning)
		}
		return core.Create(turnID, strings.TrimSpace(v.Entity), status, snippet, reasoning)
	default: // transition
		if !tracked {
			return core.NoOp()
		}
		if entity.Status == status {
			return core.NoOp()
		}
		return core.Transition(turnID, entity.Name, status, snippet, reasoning)
	}
}

func clip(text string) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) > snippetMax {
		return string(runes[:snippetMax])
	}
	return string(runes)
}
