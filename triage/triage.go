package triage

import "strings"

// RiskLevel orders clinical risk from education-safe to emergency.
type RiskLevel string

const (
	// RiskLow is safe for education-only responses.
	RiskLow RiskLevel = "low"
	// RiskMedium is ambiguous but unsafe to ignore; escalated with an
	// uncertainty flag.
	RiskMedium RiskLevel = "medium"
	// RiskHigh carries red flags requiring immediate clinician escalation.
	RiskHigh RiskLevel = "high"
)

// Assessment is the triage verdict for one turn of text.
type Assessment struct {
	Level              RiskLevel `json:"risk_level"`
	EscalationRequired bool      `json:"escalation_required"`
	Advice             string    `json:"provided_advice,omitempty"`
	Rationale          string    `json:"clinical_rationale"`
	RedFlags           []string  `json:"red_flags_detected"`
	Uncertain          bool      `json:"uncertainty_flag"`
}

// redFlag maps trigger phrases to the clinical label they raise.
type redFlag struct {
	label    string
	triggers []string
}

// highRiskRedFlags are evaluated in fixed order across the cardiovascular,
// neurological and respiratory protocols. Bare "chest pain" is deliberately
// absent: without a qualifier it is medium risk, not a red flag.
var highRiskRedFlags = []redFlag{
	{label: "Crushing Chest Pain", triggers: []string{"crushing chest pain"}},
	{label: "Syncope", triggers: []string{"syncope", "lost consciousness", "fainted"}},
	{label: "Thunderclap Headache", triggers: []string{"thunderclap"}},
	{label: "Speech Disturbance", triggers: []string{"slurred speech", "cannot speak clearly"}},
	{label: "Unilateral Weakness", triggers: []string{"one sided weakness", "one-sided weakness"}},
	{label: "Cyanosis", triggers: []string{"blue lips"}},
	{label: "Acute Dyspnea", triggers: []string{"gasping", "cannot finish a sentence", "shortness of breath"}},
}

// radiationQualifiers add the Pain Radiation flag alongside a chest pain flag.
var radiationQualifiers = []string{"radiating", "jaw", "back", "arm"}

// mediumRiskKeywords are ambiguous-but-unsafe signals, including
// diagnostic-seeking language.
var mediumRiskKeywords = []string{
	"chest pain",
	"unexplained fatigue",
	"persistent vomiting",
	"weight loss",
	"i feel anxious",
	"can you diagnose",
	"i am not sure",
	"not sure what this is",
}

const lowRiskAdvice = "Monitor symptoms and seek care if they worsen."

// Evaluate classifies the text. Red flags outrank medium keywords, which
// outrank the low-risk default, so any input has exactly one outcome.
func Evaluate(text string) Assessment {
	lower := strings.ToLower(text)

	var flags []string
	for _, rf := range highRiskRedFlags {
		for _, trigger := range rf.triggers {
			if strings.Contains(lower, trigger) {
				flags = append(flags, rf.label)
				break
			}
		}
	}
	if containsAny(lower, []string{"crushing chest pain"}) && containsAny(lower, radiationQualifiers) {
		flags = append(flags, "Pain Radiation")
	}

	if len(flags) > 0 {
		return Assessment{
			Level:              RiskHigh,
			EscalationRequired: true,
			Rationale:          "High-risk clinical red flags detected; immediate clinician escalation is required.",
			RedFlags:           flags,
		}
	}

	if containsAny(lower, mediumRiskKeywords) {
		return Assessment{
			Level:              RiskMedium,
			EscalationRequired: true,
			Rationale:          "Ambiguous but clinically significant language detected; clinician review is required.",
			Uncertain:          true,
		}
	}

	return Assessment{
		Level:     RiskLow,
		Advice:    lowRiskAdvice,
		Rationale: "No red flags detected.",
	}
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
