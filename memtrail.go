// Package memtrail provides a high-level façade over the provenance-tracked
// memory engine (profiles, classification, redaction, chain archiving &
// logging). Most applications interact with this package by:
//  1. Creating a MemTrail via New() (optionally overriding default in-memory services)
//  2. Feeding conversation turns through ProcessTurn
//  3. Reading tracked entities back via GetEntity and auditing them via VerifyChain
//
// The façade delegates turn processing to agent.Agent while keeping setup and
// usage ergonomics concise. All defaults are safe for local development and
// testing; production deployments typically supply a durable chain archiver,
// an LLM-backed classifier and a structured logger.
package memtrail

import (
	"context"

	"github.com/hupe1980/memtrail/agent"
	"github.com/hupe1980/memtrail/classifier"
	"github.com/hupe1980/memtrail/core"
	"github.com/hupe1980/memtrail/logging"
	"github.com/hupe1980/memtrail/profile"
	"github.com/hupe1980/memtrail/redact"
)

// Options configures the MemTrail instance.
type Options struct {
	// Profiles stores per-subject profiles (defaults to in-memory).
	Profiles core.ProfileStore

	// Classifier maps turns to proposed mutations. Defaults to the
	// deterministic keyword classifier; swap in classifier/anthropic or
	// classifier/openai for LLM-backed classification.
	Classifier core.Classifier

	// Redactor sanitizes turn text before it reaches the classifier or any
	// store (defaults to the pattern redactor with its default rules).
	Redactor redact.Redactor

	// Archiver, when set, receives every committed provenance record. Archive
	// failures are logged, never surfaced to the caller: the in-memory chain
	// stays authoritative.
	Archiver core.ChainArchiver

	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// MemTrail is the high-level façade aggregating the memory agent and its
// services.
type MemTrail struct {
	opts  Options
	agent *agent.Agent
}

// New creates a new MemTrail instance with optional overrides. Any unset
// service is initialized with an in-memory implementation.
func New(optFns ...func(o *Options)) *MemTrail {
	opts := Options{
		Profiles:   profile.NewInMemoryStore(),
		Classifier: classifier.NewRuleClassifier(),
		Redactor:   redact.NewPatternRedactor(),
		Logger:     logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	a := agent.New(func(o *agent.Options) {
		o.Profiles = opts.Profiles
		o.Classifier = opts.Classifier
		o.Redactor = opts.Redactor
		o.Archiver = opts.Archiver
		o.Logger = opts.Logger
	})

	return &MemTrail{opts: opts, agent: a}
}

// Agent exposes the underlying memory agent, e.g. for wrapping in an
// access.GuardedAgent.
func (m *MemTrail) Agent() *agent.Agent { return m.agent }

// ProcessTurn feeds one conversation turn into the engine and returns the
// acknowledgment describing what, if anything, was recorded.
func (m *MemTrail) ProcessTurn(ctx context.Context, subjectID, turnID, text string) (core.Acknowledgment, error) {
	return m.agent.ProcessTurn(ctx, subjectID, turnID, text)
}

// GetEntity returns a copy of the tracked entity for the subject, looked up
// case-insensitively, and whether it exists.
func (m *MemTrail) GetEntity(subjectID, name string) (*core.Entity, bool, error) {
	return m.agent.GetEntity(subjectID, name)
}

// VerifyChain audits the stored provenance chain of one entity.
func (m *MemTrail) VerifyChain(subjectID, name string) error {
	return m.agent.VerifyChain(subjectID, name)
}

// Subjects lists the subject ids the engine has a profile for.
func (m *MemTrail) Subjects() []string { return m.agent.Subjects() }
