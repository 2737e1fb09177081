package core

import "errors"

var (
	// ErrDuplicateEntity is returned when a Create proposal targets an entity
	// that already exists in the profile. The classifier contract forbids
	// this, so observing it indicates a classifier bug; the call is surfaced
	// to the caller and never retried internally.
	ErrDuplicateEntity = errors.New("entity already exists")

	// ErrUnknownEntity is returned when a Transition proposal targets an
	// entity absent from the profile. Surfaced rather than ignored so a
	// misclassified correction cannot silently drop data.
	ErrUnknownEntity = errors.New("entity not found")

	// ErrEmptyChain is returned when the current provenance record of an
	// entity with an empty chain is requested. The construction invariants
	// make this unreachable; hitting it signals model corruption.
	ErrEmptyChain = errors.New("no provenance records available")

	// ErrChainIntegrity is returned by chain verification when a stored
	// previous-record hash does not match the recomputed digest of its
	// predecessor. Never auto-repaired.
	ErrChainIntegrity = errors.New("provenance chain integrity violation")

	// ErrDuplicateTurn is returned when a turn identifier is replayed within
	// a subject session. Turn ids must be unique per session.
	ErrDuplicateTurn = errors.New("turn id already processed")

	// ErrEmptyTurnText is returned when a turn carries no text.
	ErrEmptyTurnText = errors.New("turn text is empty")
)
