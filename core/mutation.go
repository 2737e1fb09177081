package core

import "context"

// MutationKind enumerates the outcomes a classifier may propose for a turn.
type MutationKind int

const (
	// MutationNoOp proposes no change. Ambiguous or unrecognized text is a
	// valid, silent no-op, never an error.
	MutationNoOp MutationKind = iota
	// MutationCreate proposes tracking a new entity.
	MutationCreate
	// MutationTransition proposes a status change for an existing entity.
	MutationTransition
)

// String returns a short human-readable kind name.
func (k MutationKind) String() string {
	switch k {
	case MutationCreate:
		return "create"
	case MutationTransition:
		return "transition"
	default:
		return "noop"
	}
}

// Proposal is a classifier's verdict for a single turn: at most one mutation.
// For NoOp all remaining fields are empty. Snippet is the fragment of the
// (already sanitized) turn text that justified the verdict; it is stored
// verbatim in the resulting provenance record.
type Proposal struct {
	Kind         MutationKind
	EntityName   string
	Status       Status
	SourceTurnID string
	Snippet      string
	Reasoning    string
}

// NoOp builds the neutral proposal.
func NoOp() Proposal { return Proposal{Kind: MutationNoOp} }

// Create builds a proposal to start tracking an entity.
func Create(turnID, name string, status Status, snippet, reasoning string) Proposal {
	return Proposal{
		Kind:         MutationCreate,
		EntityName:   name,
		Status:       status,
		SourceTurnID: turnID,
		Snippet:      snippet,
		Reasoning:    reasoning,
	}
}

// Transition builds a proposal to move an existing entity to a new status.
func Transition(turnID, name string, status Status, snippet, reasoning string) Proposal {
	return Proposal{
		Kind:         MutationTransition,
		EntityName:   name,
		Status:       status,
		SourceTurnID: turnID,
		Snippet:      snippet,
		Reasoning:    reasoning,
	}
}

// Classifier maps a turn to zero or one proposed mutation. Implementations
// must be deterministic (identical inputs yield identical proposals), must
// only read the supplied snapshot, must never propose a Transition for an
// entity absent from the snapshot and must never propose Create for one that
// is present. Richer implementations (model-backed NLU) plug in behind this
// interface without touching the agent or the chain logic.
type Classifier interface {
	Classify(ctx context.Context, snapshot *Profile, turnID, text string) (Proposal, error)
}
