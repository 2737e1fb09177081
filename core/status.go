package core

import "fmt"

// Status is the closed set of lifecycle states a tracked entity can hold.
// The state machine permits every transition between stored states; deciding
// which transitions a given turn actually justifies is the classifier's job.
// "absent" is deliberately not a Status: it is the precondition for Create.
type Status string

const (
	// StatusActive marks a fact as currently in effect.
	StatusActive Status = "active"
	// StatusPaused marks a fact as temporarily suspended.
	StatusPaused Status = "paused"
	// StatusDiscontinued marks a fact as stopped. Not terminal: a later turn
	// may reactivate it.
	StatusDiscontinued Status = "discontinued"
)

// Valid reports whether s is a member of the closed status set.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPaused, StatusDiscontinued:
		return true
	}
	return false
}

// String returns the canonical lowercase form.
func (s Status) String() string { return string(s) }

// ParseStatus converts a string into a Status, rejecting unknown values.
func ParseStatus(v string) (Status, error) {
	s := Status(v)
	if !s.Valid() {
		return "", fmt.Errorf("unknown status %q", v)
	}
	return s, nil
}
