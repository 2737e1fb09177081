// Package core provides the foundational domain types, interfaces and
// invariants used by MemTrail. It defines the core abstractions for:
//
//   - ProvenanceRecord (immutable, hash-linked explanation of one mutation)
//   - Entity (a tracked fact with a status and an append-only provenance chain)
//   - Profile (the per-subject aggregate mapping normalized names to entities)
//   - Proposal / Classifier (the pluggable turn-classification capability)
//   - Pluggable stores for profiles and durable chain archiving
//
// The package intentionally keeps implementation concerns (persistence,
// concrete classifiers, the orchestrating agent) out of scope, exposing small
// interfaces to enable custom backends and extensions. Every mutation path in
// this package is validate-then-commit: a failure leaves the profile in its
// last-known-good state.
package core
