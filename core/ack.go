package core

import (
	"fmt"
	"time"
)

// Outcome summarizes what processing a turn did to the profile.
type Outcome string

const (
	// OutcomeRecorded means a new entity was created.
	OutcomeRecorded Outcome = "recorded"
	// OutcomeUpdated means an existing entity changed status.
	OutcomeUpdated Outcome = "updated"
	// OutcomeAcknowledged means the turn asserted nothing; no mutation.
	OutcomeAcknowledged Outcome = "acknowledged"
)

// Acknowledgment is the agent's reply to one processed turn.
type Acknowledgment struct {
	ID         string    `json:"id"`
	TurnID     string    `json:"turn_id"`
	Outcome    Outcome   `json:"outcome"`
	EntityName string    `json:"entity_name,omitempty"`
	Status     Status    `json:"status,omitempty"`
	RecordID   string    `json:"record_id,omitempty"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewAcknowledgment builds the neutral acknowledgment for a no-op turn.
func NewAcknowledgment(turnID string) Acknowledgment {
	return Acknowledgment{
		ID:        NewID(),
		TurnID:    turnID,
		Outcome:   OutcomeAcknowledged,
		Message:   "Acknowledged",
		Timestamp: time.Now().UTC(),
	}
}

// NewMutationAcknowledgment builds the confirmation for an applied mutation.
func NewMutationAcknowledgment(turnID string, kind MutationKind, entityName string, rec ProvenanceRecord) Acknowledgment {
	ack := NewAcknowledgment(turnID)
	ack.EntityName = entityName
	ack.Status = rec.Status
	ack.RecordID = rec.RecordID
	if kind == MutationCreate {
		ack.Outcome = OutcomeRecorded
		ack.Message = fmt.Sprintf("Recorded: %s (%s)", entityName, rec.Status)
	} else {
		ack.Outcome = OutcomeUpdated
		ack.Message = fmt.Sprintf("Updated: %s (%s)", entityName, rec.Status)
	}
	return ack
}
