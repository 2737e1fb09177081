package redact

import (
	"regexp"
	"strings"

	"github.com/hupe1980/memtrail/logging"
)

// Redactor sanitizes free text before it enters classification or storage.
type Redactor interface {
	Redact(text string) string
}

// Rule is one ordered substitution: a pattern and the token replacing it.
type Rule struct {
	Name        string
	Pattern     *regexp.Regexp
	Replacement string
}

// NRICRule matches Singapore NRIC/FIN identifiers (S1234567A and variants).
func NRICRule() Rule {
	return Rule{
		Name:        "national_id",
		Pattern:     regexp.MustCompile(`(?i)[STFG]\d{7}[A-Z]`),
		Replacement: "[REDACTED_IC]",
	}
}

// NameRule matches any of the given personal names. A production deployment
// substitutes an NER-backed rule here; the engine only requires the Redactor
// contract.
func NameRule(names ...string) Rule {
	escaped := make([]string, len(names))
	for i, n := range names {
		escaped[i] = regexp.QuoteMeta(n)
	}
	return Rule{
		Name:        "person_name",
		Pattern:     regexp.MustCompile(`(?i)` + strings.Join(escaped, "|")),
		Replacement: "[REDACTED_NAME]",
	}
}

// PatternRedactor applies an ordered list of substitution rules. Text with no
// sensitive matches passes through byte-identical; only detections are
// logged, never the matched values.
type PatternRedactor struct {
	rules  []Rule
	logger logging.Logger
}

// PatternRedactorOptions configure a PatternRedactor.
type PatternRedactorOptions struct {
	// Rules are applied in order. Defaults to the national id rule.
	Rules []Rule
	// Logger receives detection notices (rule names only).
	Logger logging.Logger
}

// NewPatternRedactor constructs a PatternRedactor.
func NewPatternRedactor(optFns ...func(o *PatternRedactorOptions)) *PatternRedactor {
	opts := PatternRedactorOptions{
		Rules:  []Rule{NRICRule()},
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &PatternRedactor{rules: opts.Rules, logger: opts.Logger}
}

var _ Redactor = (*PatternRedactor)(nil)

// Redact applies every rule in order and returns the sanitized text.
func (r *PatternRedactor) Redact(text string) string {
	out := text
	for _, rule := range r.rules {
		if !rule.Pattern.MatchString(out) {
			continue
		}
		out = rule.Pattern.ReplaceAllString(out, rule.Replacement)
		r.logger.Info("Sensitive value detected and redacted", "rule", rule.Name)
	}
	return out
}

// NoOpRedactor passes text through unchanged. Useful when an upstream
// collaborator already sanitized the input.
type NoOpRedactor struct{}

// Redact returns the text unchanged.
func (NoOpRedactor) Redact(text string) string { return text }
