package core

import "context"

// ProfileStore hands out the live profile for a subject, creating it lazily
// on first use. One profile exists per subject; distinct subjects are fully
// independent and may be processed in parallel.
type ProfileStore interface {
	// Get returns the live profile for the subject, creating an empty one if
	// none exists yet.
	Get(subjectID string) (*Profile, error)

	// Subjects lists the subject ids with an existing profile.
	Subjects() []string
}

// ChainArchiver is an optional durable sink for provenance records. The
// engine appends every committed record; the archive is append-only and holds
// no authority over the in-memory chain (durability and replay are the
// archiver's concern, correctness is not).
type ChainArchiver interface {
	// Append persists one committed record for the subject's entity.
	Append(ctx context.Context, subjectID, entityName string, rec ProvenanceRecord) error

	// Close releases underlying resources.
	Close() error
}
