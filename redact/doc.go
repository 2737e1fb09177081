// Package redact provides the PII redaction collaborator. Turn text passes
// through a Redactor before it reaches any classifier and before any snippet
// derived from it is stored in a provenance record, so stored provenance
// never contains raw sensitive values beyond what policy permits.
package redact
