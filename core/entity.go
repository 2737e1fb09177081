package core

import (
	"fmt"
	"strings"
)

// Entity is a tracked fact: a canonical name, a current status, optional
// unverified attributes (dosage and the like) and the full hash-linked
// provenance chain explaining every mutation since creation.
//
// Contract:
//   - Chain is append-only and never empty once the entity exists
//   - Status always equals the status asserted by the newest record
//   - Records are immutable after append; the chain never reorders
type Entity struct {
	Name       string             `json:"name"`
	Status     Status             `json:"status"`
	Attributes map[string]string  `json:"attributes,omitempty"`
	Chain      []ProvenanceRecord `json:"provenance_chain"`
}

// NewEntity creates an entity from its first provenance record. The record
// must carry the sentinel previous-hash, otherwise the chain would claim a
// predecessor that cannot exist.
func NewEntity(name string, first ProvenanceRecord) (*Entity, error) {
	if !first.IsInitial() {
		return nil, fmt.Errorf("first record of %q must carry the sentinel previous hash, got %q", name, first.PrevHash)
	}
	return &Entity{
		Name:   name,
		Status: first.Status,
		Chain:  []ProvenanceRecord{first},
	}, nil
}

// Key returns the normalized lookup key for a tracked-entity name.
func Key(name string) string { return strings.ToLower(strings.TrimSpace(name)) }

// CurrentRecord returns the newest provenance record. It fails loudly with
// ErrEmptyChain if the non-empty-chain invariant has been violated.
func (e *Entity) CurrentRecord() (ProvenanceRecord, error) {
	if len(e.Chain) == 0 {
		return ProvenanceRecord{}, fmt.Errorf("entity %q: %w", e.Name, ErrEmptyChain)
	}
	return e.Chain[len(e.Chain)-1], nil
}

// AppendRecord appends rec to the chain and updates the denormalized status
// in the same step, keeping status and chain coherent. rec.PrevHash must link
// to the current newest record.
func (e *Entity) AppendRecord(rec ProvenanceRecord) error {
	last, err := e.CurrentRecord()
	if err != nil {
		return err
	}
	if rec.PrevHash != last.Hash() {
		return fmt.Errorf("entity %q: record %s does not link to current record %s: %w",
			e.Name, rec.RecordID, last.RecordID, ErrChainIntegrity)
	}
	e.Chain = append(e.Chain, rec)
	e.Status = rec.Status
	return nil
}

// VerifyChain walks the chain oldest to newest, recomputing every expected
// previous-record hash and comparing it to the stored value. It returns nil
// for an internally consistent chain and a wrapped ErrChainIntegrity naming
// the first offending record otherwise. It also re-checks the status/chain
// coherence invariant. Verification never mutates.
func (e *Entity) VerifyChain() error {
	if len(e.Chain) == 0 {
		return fmt.Errorf("entity %q: %w", e.Name, ErrEmptyChain)
	}
	if !e.Chain[0].IsInitial() {
		return fmt.Errorf("entity %q: first record %s carries previous hash %q instead of the sentinel: %w",
			e.Name, e.Chain[0].RecordID, e.Chain[0].PrevHash, ErrChainIntegrity)
	}
	for i := 1; i < len(e.Chain); i++ {
		expected := e.Chain[i-1].Hash()
		if e.Chain[i].PrevHash != expected {
			return fmt.Errorf("entity %q: record %s (index %d) stores previous hash %q, expected %q: %w",
				e.Name, e.Chain[i].RecordID, i, e.Chain[i].PrevHash, expected, ErrChainIntegrity)
		}
	}
	if last := e.Chain[len(e.Chain)-1]; e.Status != last.Status {
		return fmt.Errorf("entity %q: status %q diverges from newest record status %q: %w",
			e.Name, e.Status, last.Status, ErrChainIntegrity)
	}
	return nil
}

// Clone returns a deep copy safe for independent inspection. Records are
// value types, so copying the slice copies the records.
func (e *Entity) Clone() *Entity {
	clone := &Entity{
		Name:   e.Name,
		Status: e.Status,
		Chain:  make([]ProvenanceRecord, len(e.Chain)),
	}
	copy(clone.Chain, e.Chain)
	if e.Attributes != nil {
		clone.Attributes = make(map[string]string, len(e.Attributes))
		for k, v := range e.Attributes {
			clone.Attributes[k] = v
		}
	}
	return clone
}
