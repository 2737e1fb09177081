package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrushingChestPainEscalates(t *testing.T) {
	a := Evaluate("I have crushing chest pain radiating to my jaw.")

	assert.Equal(t, RiskHigh, a.Level)
	assert.True(t, a.EscalationRequired)
	assert.Contains(t, a.RedFlags, "Crushing Chest Pain")
	assert.Contains(t, a.RedFlags, "Pain Radiation")
	assert.Empty(t, a.Advice)
}

func TestNeurologicalRedFlags(t *testing.T) {
	for _, tc := range []struct {
		text string
		flag string
	}{
		{"The worst thunderclap headache of my life started an hour ago.", "Thunderclap Headache"},
		{"My husband has slurred speech all of a sudden.", "Speech Disturbance"},
		{"She has one sided weakness in her arm.", "Unilateral Weakness"},
		{"I fainted twice this morning.", "Syncope"},
	} {
		a := Evaluate(tc.text)
		assert.Equal(t, RiskHigh, a.Level, tc.text)
		assert.True(t, a.EscalationRequired, tc.text)
		assert.Contains(t, a.RedFlags, tc.flag)
	}
}

func TestRespiratoryRedFlags(t *testing.T) {
	a := Evaluate("He is gasping and cannot finish a sentence, and he has blue lips.")

	assert.Equal(t, RiskHigh, a.Level)
	assert.Contains(t, a.RedFlags, "Acute Dyspnea")
	assert.Contains(t, a.RedFlags, "Cyanosis")
}

func TestNoAdviceWhenEscalated(t *testing.T) {
	for _, text := range []string{
		"I have crushing chest pain.",
		"Sudden thunderclap headache.",
		"Can you diagnose what is happening to me?",
	} {
		a := Evaluate(text)
		assert.True(t, a.EscalationRequired, text)
		assert.Empty(t, a.Advice, "escalated assessments must carry no advice: %s", text)
	}
}

func TestAmbiguousChestPainIsMediumNotHigh(t *testing.T) {
	a := Evaluate("I have some chest pain but I am not sure what it is.")

	assert.Equal(t, RiskMedium, a.Level)
	assert.True(t, a.EscalationRequired)
	assert.True(t, a.Uncertain)
	assert.Empty(t, a.RedFlags)
	assert.Empty(t, a.Advice)
}

func TestDiagnosticSeekingIsMedium(t *testing.T) {
	a := Evaluate("Can you diagnose my symptoms?")

	assert.Equal(t, RiskMedium, a.Level)
	assert.True(t, a.Uncertain)
}

func TestBenignTextIsLow(t *testing.T) {
	a := Evaluate("I have a mild sore throat and no fever.")

	assert.Equal(t, RiskLow, a.Level)
	assert.False(t, a.EscalationRequired)
	assert.False(t, a.Uncertain)
	assert.NotEmpty(t, a.Advice)
	assert.Empty(t, a.RedFlags)
}

func TestCaseInsensitive(t *testing.T) {
	a := Evaluate("CRUSHING CHEST PAIN")
	assert.Equal(t, RiskHigh, a.Level)
}
