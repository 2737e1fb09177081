package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvenanceRecordHashDeterministic(t *testing.T) {
	rec := NewProvenanceRecord("turn_001", "I take Advil", "Reported active usage.", StatusActive, HashSentinel)
	assert.Equal(t, rec.Hash(), rec.Hash())

	// Any content change must change the digest.
	tampered := rec
	tampered.SourceTextSnippet = "I take Tylenol"
	assert.NotEqual(t, rec.Hash(), tampered.Hash())
}

func TestNewEntityRequiresSentinel(t *testing.T) {
	bad := NewProvenanceRecord("turn_001", "snippet", "reason", StatusActive, "deadbeef")
	_, err := NewEntity("advil", bad)
	assert.Error(t, err)

	good := NewProvenanceRecord("turn_001", "snippet", "reason", StatusActive, HashSentinel)
	e, err := NewEntity("advil", good)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, e.Status)
	assert.Len(t, e.Chain, 1)
}

func TestAppendRecordKeepsStatusAndChainCoherent(t *testing.T) {
	first := NewProvenanceRecord("turn_001", "I take Advil", "Reported active usage.", StatusActive, HashSentinel)
	e, err := NewEntity("advil", first)
	require.NoError(t, err)

	second := NewProvenanceRecord("turn_002", "stopped last week", "Corrected to discontinued.", StatusDiscontinued, first.Hash())
	require.NoError(t, e.AppendRecord(second))

	assert.Equal(t, StatusDiscontinued, e.Status)
	assert.Len(t, e.Chain, 2)

	current, err := e.CurrentRecord()
	require.NoError(t, err)
	assert.Equal(t, second.RecordID, current.RecordID)
}

func TestAppendRecordRejectsBrokenLink(t *testing.T) {
	first := NewProvenanceRecord("turn_001", "snippet", "reason", StatusActive, HashSentinel)
	e, err := NewEntity("advil", first)
	require.NoError(t, err)

	unlinked := NewProvenanceRecord("turn_002", "snippet", "reason", StatusPaused, "not-the-hash")
	err = e.AppendRecord(unlinked)
	assert.ErrorIs(t, err, ErrChainIntegrity)
	assert.Len(t, e.Chain, 1, "failed append must not grow the chain")
	assert.Equal(t, StatusActive, e.Status, "failed append must not move the status")
}

func TestVerifyChainDetectsTamper(t *testing.T) {
	first := NewProvenanceRecord("turn_001", "I take Advil", "Reported active usage.", StatusActive, HashSentinel)
	e, err := NewEntity("advil", first)
	require.NoError(t, err)
	second := NewProvenanceRecord("turn_002", "stopped", "Corrected.", StatusDiscontinued, first.Hash())
	require.NoError(t, e.AppendRecord(second))

	require.NoError(t, e.VerifyChain())

	// Out-of-band edit of a historical record breaks the link to its successor.
	e.Chain[0].Reasoning = "rewritten history"
	err = e.VerifyChain()
	assert.ErrorIs(t, err, ErrChainIntegrity)
}

func TestVerifyChainChecksSentinelAndStatus(t *testing.T) {
	first := NewProvenanceRecord("turn_001", "snippet", "reason", StatusActive, HashSentinel)
	e, err := NewEntity("advil", first)
	require.NoError(t, err)

	e.Chain[0].PrevHash = "bogus"
	assert.ErrorIs(t, e.VerifyChain(), ErrChainIntegrity)
	e.Chain[0].PrevHash = HashSentinel

	e.Status = StatusPaused // diverge the denormalized status
	assert.ErrorIs(t, e.VerifyChain(), ErrChainIntegrity)
}

func TestCurrentRecordFailsLoudlyOnEmptyChain(t *testing.T) {
	e := &Entity{Name: "advil", Status: StatusActive}
	_, err := e.CurrentRecord()
	assert.ErrorIs(t, err, ErrEmptyChain)
	assert.ErrorIs(t, e.VerifyChain(), ErrEmptyChain)
}

func TestCloneIsIndependent(t *testing.T) {
	first := NewProvenanceRecord("turn_001", "snippet", "reason", StatusActive, HashSentinel)
	e, err := NewEntity("advil", first)
	require.NoError(t, err)
	e.Attributes = map[string]string{"dosage": "200mg"}

	clone := e.Clone()
	clone.Status = StatusPaused
	clone.Chain[0].Reasoning = "edited"
	clone.Attributes["dosage"] = "400mg"

	assert.Equal(t, StatusActive, e.Status)
	assert.Equal(t, "reason", e.Chain[0].Reasoning)
	assert.Equal(t, "200mg", e.Attributes["dosage"])
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("active")
	require.NoError(t, err)
	assert.Equal(t, StatusActive, s)

	_, err = ParseStatus("archived")
	assert.Error(t, err)
	assert.False(t, Status("archived").Valid())
}
