package core

import (
	"fmt"
	"sort"
	"sync"
)

// Profile is the aggregate root for one subject: a mapping from normalized
// entity name to tracked entity. It is safe for concurrent access.
//
// Contract:
//   - An entity appears iff at least one turn asserted it (no fabrication)
//   - Lookup is case-insensitive (key = lowercased name)
//   - Apply commits a mutation atomically: status and chain move together or
//     not at all, and historical records are never touched
type Profile struct {
	mu       sync.RWMutex
	entities map[string]*Entity
}

// NewProfile creates an empty profile.
func NewProfile() *Profile {
	return &Profile{entities: make(map[string]*Entity)}
}

// Get returns a deep copy of the entity for the given name, looked up
// case-insensitively, and whether it exists. Returning a clone keeps callers
// from mutating chain history behind the profile's back.
func (p *Profile) Get(name string) (*Entity, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	e, ok := p.entities[Key(name)]
	if !ok {
		return nil, false
	}
	return e.Clone(), true
}

// Has reports whether an entity with the given name is tracked.
func (p *Profile) Has(name string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.entities[Key(name)]
	return ok
}

// Len returns the number of tracked entities.
func (p *Profile) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.entities)
}

// Names returns the normalized entity names in sorted order. Sorting keeps
// anything iterating over the profile (classifier referent resolution in
// particular) deterministic.
func (p *Profile) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	names := make([]string, 0, len(p.entities))
	for k := range p.entities {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns a deep copy of the whole profile for read-only use, such
// as the snapshot handed to classifiers.
func (p *Profile) Snapshot() *Profile {
	p.mu.RLock()
	defer p.mu.RUnlock()
	snap := NewProfile()
	for k, e := range p.entities {
		snap.entities[k] = e.Clone()
	}
	return snap
}

// VerifyEntity runs chain verification against the live stored entity.
func (p *Profile) VerifyEntity(name string) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	e, ok := p.entities[Key(name)]
	if !ok {
		return fmt.Errorf("entity %q: %w", name, ErrUnknownEntity)
	}
	return e.VerifyChain()
}

// Apply validates and commits a Create or Transition proposal under the
// profile lock, returning the provenance record it appended. Every check runs
// before any state changes, so a failed Apply leaves the profile untouched.
// NoOp proposals are rejected; callers handle them before reaching here.
func (p *Profile) Apply(prop Proposal) (ProvenanceRecord, error) {
	if !prop.Status.Valid() {
		return ProvenanceRecord{}, fmt.Errorf("proposal for %q: unknown status %q", prop.EntityName, prop.Status)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	key := Key(prop.EntityName)
	switch prop.Kind {
	case MutationCreate:
		// Defensive re-check: the classifier contract already forbids
		// creating a tracked entity, but the profile is the last line.
		if _, ok := p.entities[key]; ok {
			return ProvenanceRecord{}, fmt.Errorf("create %q: %w", prop.EntityName, ErrDuplicateEntity)
		}
		rec := NewProvenanceRecord(prop.SourceTurnID, prop.Snippet, prop.Reasoning, prop.Status, HashSentinel)
		entity, err := NewEntity(prop.EntityName, rec)
		if err != nil {
			return ProvenanceRecord{}, err
		}
		p.entities[key] = entity
		return rec, nil

	case MutationTransition:
		entity, ok := p.entities[key]
		if !ok {
			return ProvenanceRecord{}, fmt.Errorf("transition %q: %w", prop.EntityName, ErrUnknownEntity)
		}
		last, err := entity.CurrentRecord()
		if err != nil {
			return ProvenanceRecord{}, err
		}
		rec := NewProvenanceRecord(prop.SourceTurnID, prop.Snippet, prop.Reasoning, prop.Status, last.Hash())
		if err := entity.AppendRecord(rec); err != nil {
			return ProvenanceRecord{}, err
		}
		return rec, nil

	default:
		return ProvenanceRecord{}, fmt.Errorf("proposal kind %s cannot be applied", prop.Kind)
	}
}
