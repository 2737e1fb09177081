// Package triage provides the risk-escalation collaborator: a deterministic,
// keyword-priority classifier mapping turn text to a risk level and an
// escalation decision. It inspects text independently of the memory core and
// never influences whether a mutation is recorded.
//
// Safety invariant: when escalation is required, no advice is returned.
package triage
