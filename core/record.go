package core

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// HashSentinel is the previous-record-hash value carried by the first record
// of every chain. A record holding it asserts "I have no predecessor".
const HashSentinel = "none"

// ProvenanceRecord explains one state mutation of a tracked entity: what turn
// triggered it, which text fragment justified it, why, and a hash link to the
// immediately preceding record of the same chain. After creation a record is
// treated as immutable; the chain it belongs to only ever grows.
type ProvenanceRecord struct {
	RecordID          string    `json:"record_id"`
	Timestamp         time.Time `json:"timestamp"`
	SourceTurnID      string    `json:"source_turn_id"`
	SourceTextSnippet string    `json:"source_text_snippet"`
	Reasoning         string    `json:"reasoning"`
	Status            Status    `json:"status"`
	PrevHash          string    `json:"previous_record_hash"`
}

// NewProvenanceRecord constructs a record for the given turn. prevHash must be
// the Hash() of the predecessor record, or HashSentinel for a chain's first
// record. The timestamp is wall-clock UTC; it never influences classification.
func NewProvenanceRecord(turnID, snippet, reasoning string, status Status, prevHash string) ProvenanceRecord {
	return ProvenanceRecord{
		RecordID:          NewRecordID(),
		Timestamp:         time.Now().UTC(),
		SourceTurnID:      turnID,
		SourceTextSnippet: snippet,
		Reasoning:         reasoning,
		Status:            status,
		PrevHash:          prevHash,
	}
}

// Hash returns the deterministic sha256 digest of the record's canonical
// content. Successor records store this value as PrevHash, which makes the
// chain tamper-evident: editing any stored field of a record changes its
// hash and breaks the link to its successor.
//
// The digest covers the full content, not just RecordID, so VerifyChain is a
// meaningful integrity check rather than an identifier comparison.
func (r ProvenanceRecord) Hash() string {
	canonical := strings.Join([]string{
		r.RecordID,
		r.Timestamp.UTC().Format(time.RFC3339Nano),
		r.SourceTurnID,
		r.SourceTextSnippet,
		r.Reasoning,
		string(r.Status),
		r.PrevHash,
	}, "\x1f")
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}

// IsInitial reports whether the record claims to start a chain.
func (r ProvenanceRecord) IsInitial() bool { return r.PrevHash == HashSentinel }

// NewRecordID generates a ULID for a provenance record. ULIDs sort by creation
// time, so record identifiers within a chain are naturally ordered.
func NewRecordID() string { return ulid.Make().String() }

// NewID generates a random unique identifier for turn-scoped values such as
// acknowledgments.
func NewID() string { return uuid.NewString() }
