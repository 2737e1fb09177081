package agent

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/hupe1980/memtrail/classifier"
	"github.com/hupe1980/memtrail/core"
	"github.com/hupe1980/memtrail/logging"
	"github.com/hupe1980/memtrail/profile"
	"github.com/hupe1980/memtrail/redact"
)

// Options configures the memory agent.
type Options struct {
	// Profiles stores per-subject profiles (defaults to in-memory).
	Profiles core.ProfileStore
	// Classifier maps turns to proposed mutations (defaults to keyword rules).
	Classifier core.Classifier
	// Redactor sanitizes turn text before classification and storage
	// (defaults to the pattern redactor with its default rules).
	Redactor redact.Redactor
	// Archiver, when set, receives every committed provenance record.
	Archiver core.ChainArchiver
	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// Agent is the provenance-tracked memory engine's orchestrator.
type Agent struct {
	profiles   core.ProfileStore
	classifier core.Classifier
	redactor   redact.Redactor
	archiver   core.ChainArchiver
	logger     logging.Logger

	mu       sync.Mutex
	subjects map[string]*subjectState
}

// subjectState serializes turn processing per subject and remembers the turn
// ids the subject's session has consumed.
type subjectState struct {
	mu        sync.Mutex
	seenTurns map[string]struct{}
}

// New creates a memory agent. Any unset service is initialized with a safe
// default implementation.
func New(optFns ...func(o *Options)) *Agent {
	opts := Options{
		Profiles:   profile.NewInMemoryStore(),
		Classifier: classifier.NewRuleClassifier(),
		Redactor:   redact.NewPatternRedactor(),
		Logger:     logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &Agent{
		profiles:   opts.Profiles,
		classifier: opts.Classifier,
		redactor:   opts.Redactor,
		archiver:   opts.Archiver,
		logger:     opts.Logger,
		subjects:   make(map[string]*subjectState),
	}
}

func (a *Agent) subjectState(subjectID string) *subjectState {
	a.mu.Lock()
	defer a.mu.Unlock()
	st, ok := a.subjects[subjectID]
	if !ok {
		st = &subjectState{seenTurns: make(map[string]struct{})}
		a.subjects[subjectID] = st
	}
	return st
}

// ProcessTurn processes one turn for a subject: redact, classify, apply,
// archive, acknowledge. The operation is atomic with respect to the profile:
// either the status and the chain move together or the profile stays in its
// last-known-good state. A turn id may be reused after a failed call, since a
// failed call commits nothing.
func (a *Agent) ProcessTurn(ctx context.Context, subjectID, turnID, text string) (core.Acknowledgment, error) {
	if turnID == "" {
		return core.Acknowledgment{}, fmt.Errorf("turn id is required")
	}
	if strings.TrimSpace(text) == "" {
		return core.Acknowledgment{}, fmt.Errorf("turn %s: %w", turnID, core.ErrEmptyTurnText)
	}

	st := a.subjectState(subjectID)
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, seen := st.seenTurns[turnID]; seen {
		return core.Acknowledgment{}, fmt.Errorf("turn %s: %w", turnID, core.ErrDuplicateTurn)
	}

	sanitized := a.redactor.Redact(text)

	prof, err := a.profiles.Get(subjectID)
	if err != nil {
		return core.Acknowledgment{}, fmt.Errorf("load profile for %s: %w", subjectID, err)
	}

	proposal, err := a.classifier.Classify(ctx, prof.Snapshot(), turnID, sanitized)
	if err != nil {
		return core.Acknowledgment{}, fmt.Errorf("classify turn %s: %w", turnID, err)
	}
	// The caller-supplied turn id is authoritative for provenance.
	proposal.SourceTurnID = turnID

	if proposal.Kind == core.MutationNoOp {
		st.seenTurns[turnID] = struct{}{}
		a.logger.Debug("Turn asserted nothing", "subject_id", subjectID, "turn_id", turnID)
		return core.NewAcknowledgment(turnID), nil
	}

	rec, err := prof.Apply(proposal)
	if err != nil {
		return core.Acknowledgment{}, fmt.Errorf("apply turn %s: %w", turnID, err)
	}
	st.seenTurns[turnID] = struct{}{}

	if a.archiver != nil {
		if err := a.archiver.Append(ctx, subjectID, core.Key(proposal.EntityName), rec); err != nil {
			// The in-memory chain stays authoritative; archiving is replayed
			// out of band when the sink recovers.
			a.logger.Warn("Chain archive append failed",
				"subject_id", subjectID, "turn_id", turnID, "record_id", rec.RecordID, "error", err.Error())
		}
	}

	chainLen := 0
	if e, ok := prof.Get(proposal.EntityName); ok {
		chainLen = len(e.Chain)
	}
	a.logger.Info("Mutation committed",
		"subject_id", subjectID,
		"turn_id", turnID,
		"entity", core.Key(proposal.EntityName),
		"mutation", proposal.Kind.String(),
		"status", proposal.Status.String(),
		"record_id", rec.RecordID,
		"chain_length", chainLen,
	)

	return core.NewMutationAcknowledgment(turnID, proposal.Kind, proposal.EntityName, rec), nil
}

// GetEntity returns a copy of the tracked entity for the subject, looked up
// case-insensitively, and whether it exists.
func (a *Agent) GetEntity(subjectID, name string) (*core.Entity, bool, error) {
	prof, err := a.profiles.Get(subjectID)
	if err != nil {
		return nil, false, fmt.Errorf("load profile for %s: %w", subjectID, err)
	}
	e, ok := prof.Get(name)
	return e, ok, nil
}

// VerifyChain audits the stored chain of one entity. It returns nil for an
// intact chain, a wrapped core.ErrUnknownEntity for an untracked name and a
// wrapped core.ErrChainIntegrity describing the first mismatch otherwise.
func (a *Agent) VerifyChain(subjectID, name string) error {
	prof, err := a.profiles.Get(subjectID)
	if err != nil {
		return fmt.Errorf("load profile for %s: %w", subjectID, err)
	}
	if err := prof.VerifyEntity(name); err != nil {
		a.logger.Error("Chain verification failed", "subject_id", subjectID, "entity", core.Key(name), "error", err.Error())
		return err
	}
	a.logger.Debug("Chain verification passed", "subject_id", subjectID, "entity", core.Key(name))
	return nil
}

// Subjects lists the subject ids the agent has a profile for.
func (a *Agent) Subjects() []string { return a.profiles.Subjects() }
