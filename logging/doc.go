// Package logging provides a minimal logging interface and adapters for MemTrail.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) that the agent and collaborators use for observability. This
// package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//   - MemTrailLogger with subject/turn context and domain helpers
//
// Raw turn text is never passed to this package: provenance logging reports
// lengths, counts, rule names and record identifiers only, so log output
// cannot leak values the redaction collaborator scrubbed.
package logging
