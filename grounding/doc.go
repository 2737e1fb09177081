// Package grounding provides the citation-verification collaborator. A
// generated answer carries citations pointing into a source corpus; Verify
// proves every citation resolves to a verbatim span of its source, turning
// "the model said so" into a checkable claim. A quote that does not exist in
// its source is a detected hallucination, not a formatting problem.
package grounding
