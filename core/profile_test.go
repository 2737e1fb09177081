package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileApplyCreate(t *testing.T) {
	p := NewProfile()

	rec, err := p.Apply(Create("turn_001", "Advil", StatusActive, "I take Advil", "Reported active usage."))
	require.NoError(t, err)
	assert.Equal(t, HashSentinel, rec.PrevHash)

	e, ok := p.Get("advil")
	require.True(t, ok)
	assert.Equal(t, "Advil", e.Name)
	assert.Equal(t, StatusActive, e.Status)
	assert.Len(t, e.Chain, 1)
}

func TestProfileApplyCreateRejectsDuplicate(t *testing.T) {
	p := NewProfile()
	_, err := p.Apply(Create("turn_001", "Advil", StatusActive, "s", "r"))
	require.NoError(t, err)

	_, err = p.Apply(Create("turn_002", "ADVIL", StatusActive, "s", "r"))
	assert.ErrorIs(t, err, ErrDuplicateEntity)

	e, _ := p.Get("advil")
	assert.Len(t, e.Chain, 1, "rejected create must not touch the existing chain")
}

func TestProfileApplyTransition(t *testing.T) {
	p := NewProfile()
	first, err := p.Apply(Create("turn_001", "Advil", StatusActive, "I take Advil", "r"))
	require.NoError(t, err)

	second, err := p.Apply(Transition("turn_002", "advil", StatusDiscontinued, "stopped last week", "Corrected."))
	require.NoError(t, err)
	assert.Equal(t, first.Hash(), second.PrevHash)

	e, _ := p.Get("Advil")
	assert.Equal(t, StatusDiscontinued, e.Status)
	assert.Len(t, e.Chain, 2)
	require.NoError(t, p.VerifyEntity("advil"))
}

func TestProfileApplyTransitionUnknownEntity(t *testing.T) {
	p := NewProfile()
	_, err := p.Apply(Transition("turn_001", "tylenol", StatusDiscontinued, "s", "r"))
	assert.ErrorIs(t, err, ErrUnknownEntity)
	assert.Equal(t, 0, p.Len())
}

func TestProfileApplyRejectsNoOpAndBadStatus(t *testing.T) {
	p := NewProfile()
	_, err := p.Apply(NoOp())
	assert.Error(t, err)

	_, err = p.Apply(Create("turn_001", "Advil", Status("archived"), "s", "r"))
	assert.Error(t, err)
	assert.Equal(t, 0, p.Len())
}

func TestProfileLookupNormalization(t *testing.T) {
	p := NewProfile()
	_, err := p.Apply(Create("turn_001", "Advil", StatusActive, "s", "r"))
	require.NoError(t, err)

	lower, ok1 := p.Get("advil")
	mixed, ok2 := p.Get("Advil")
	upper, ok3 := p.Get("ADVIL")
	require.True(t, ok1 && ok2 && ok3)
	assert.Equal(t, lower.Chain[0].RecordID, mixed.Chain[0].RecordID)
	assert.Equal(t, lower.Chain[0].RecordID, upper.Chain[0].RecordID)
}

func TestProfileGetReturnsClone(t *testing.T) {
	p := NewProfile()
	_, err := p.Apply(Create("turn_001", "Advil", StatusActive, "s", "r"))
	require.NoError(t, err)

	e, _ := p.Get("advil")
	e.Chain[0].Reasoning = "tampered copy"
	e.Status = StatusPaused

	stored, _ := p.Get("advil")
	assert.Equal(t, "r", stored.Chain[0].Reasoning)
	assert.Equal(t, StatusActive, stored.Status)
	require.NoError(t, p.VerifyEntity("advil"))
}

func TestProfileSnapshotIsIndependent(t *testing.T) {
	p := NewProfile()
	_, err := p.Apply(Create("turn_001", "Advil", StatusActive, "s", "r"))
	require.NoError(t, err)

	snap := p.Snapshot()
	_, err = p.Apply(Transition("turn_002", "advil", StatusPaused, "s", "r"))
	require.NoError(t, err)

	snapEntity, _ := snap.Get("advil")
	assert.Equal(t, StatusActive, snapEntity.Status)
	assert.Len(t, snapEntity.Chain, 1)
}

func TestProfileNamesSorted(t *testing.T) {
	p := NewProfile()
	for _, name := range []string{"Zyrtec", "Advil", "Metformin"} {
		_, err := p.Apply(Create(NewID(), name, StatusActive, "s", "r"))
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"advil", "metformin", "zyrtec"}, p.Names())
}
